package ai

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
)

func newTestClient(t *testing.T, responseText string) *Gemini {
	t.Helper()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Errorf("expected POST, got %s", r.Method)
		}
		var req GenerateRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Errorf("decode request: %v", err)
		}
		body := map[string]interface{}{
			"candidates": []map[string]interface{}{
				{"content": map[string]interface{}{
					"parts": []map[string]interface{}{{"text": responseText}},
				}},
			},
		}
		json.NewEncoder(w).Encode(body)
	}))
	t.Cleanup(server.Close)

	t.Setenv("GEMINI_API_KEY", "test-key")
	t.Setenv("GEMINI_API_URL", server.URL)

	client, err := New()
	if err != nil {
		t.Fatalf("new client: %v", err)
	}
	return client
}

func TestGenerateWordsParsesJSONArray(t *testing.T) {
	client := newTestClient(t, "Here are your words:\n"+
		`[{"word":"resilient","part_of_speech":"adjective","pronunciation":"/rɪˈzɪliənt/",`+
		`"definition":"able to recover quickly","examples":["She is resilient.","A resilient team."]}]`+
		"\nLet me know if you need more.")

	words, err := client.GenerateWords("B2", 1, "")
	if err != nil {
		t.Fatalf("generate words: %v", err)
	}
	if len(words) != 1 {
		t.Fatalf("expected 1 word, got %d", len(words))
	}
	if words[0].Word != "resilient" || words[0].PartOfSpeech != "adjective" {
		t.Fatalf("unexpected word record: %+v", words[0])
	}
	if len(words[0].Examples) != 2 {
		t.Fatalf("expected 2 examples, got %d", len(words[0].Examples))
	}
}

func TestGenerateWordsProseIsParseFailure(t *testing.T) {
	client := newTestClient(t, "I'm sorry, I cannot produce structured output right now.")

	_, err := client.GenerateWords("A1", 3, "travel")
	if !errors.Is(err, ErrParseFailure) {
		t.Fatalf("expected ErrParseFailure, got %v", err)
	}
}

func TestGenerateWordsIncompleteRecordIsParseFailure(t *testing.T) {
	client := newTestClient(t, `[{"word":"gap","part_of_speech":"","pronunciation":"","definition":"","examples":[]}]`)

	_, err := client.GenerateWords("A2", 1, "")
	if !errors.Is(err, ErrParseFailure) {
		t.Fatalf("expected ErrParseFailure for incomplete record, got %v", err)
	}
}

func TestGenerateExamplesFallsBackToLines(t *testing.T) {
	client := newTestClient(t, "The cat gathered its strength.\n\nWe gather every week.\nUnrelated line.\nThey gather wood for winter.\nGather round, everyone.")

	examples, err := client.GenerateExamples("gather")
	if err != nil {
		t.Fatalf("generate examples: %v", err)
	}
	if len(examples) != 3 {
		t.Fatalf("expected 3 examples, got %d: %v", len(examples), examples)
	}
	for _, e := range examples {
		if e == "Unrelated line." {
			t.Fatalf("fallback kept a line without the word: %v", examples)
		}
	}
}

func TestGenerateExamplesPrefersJSONArray(t *testing.T) {
	client := newTestClient(t, `["First gather sentence.","Second gather sentence."]`)

	examples, err := client.GenerateExamples("gather")
	if err != nil {
		t.Fatalf("generate examples: %v", err)
	}
	if len(examples) != 2 || examples[0] != "First gather sentence." {
		t.Fatalf("unexpected examples: %v", examples)
	}
}

func TestGeneratePronunciationExtractsIPA(t *testing.T) {
	client := newTestClient(t, "The pronunciation is /ˈɡæðər/ in American English.")

	pronunciation, audioURL, err := client.GeneratePronunciation("Gather")
	if err != nil {
		t.Fatalf("generate pronunciation: %v", err)
	}
	if pronunciation != "/ˈɡæðər/" {
		t.Fatalf("expected /ˈɡæðər/, got %s", pronunciation)
	}
	if audioURL != "https://api.dictionaryapi.dev/media/pronunciations/en/gather-us.mp3" {
		t.Fatalf("unexpected audio url: %s", audioURL)
	}
}

func TestGeneratePronunciationFallback(t *testing.T) {
	client := newTestClient(t, "I cannot provide IPA notation.")

	pronunciation, _, err := client.GeneratePronunciation("gather")
	if err != nil {
		t.Fatalf("generate pronunciation: %v", err)
	}
	if pronunciation != "/gather/" {
		t.Fatalf("expected fallback /gather/, got %s", pronunciation)
	}
}

func TestGenerateSurfacesAPIError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
	}))
	t.Cleanup(server.Close)

	t.Setenv("GEMINI_API_KEY", "test-key")
	t.Setenv("GEMINI_API_URL", server.URL)

	client, err := New()
	if err != nil {
		t.Fatalf("new client: %v", err)
	}

	if _, err := client.GenerateWords("B1", 2, ""); err == nil {
		t.Fatalf("expected upstream error")
	}
}

func TestNewRequiresAPIKey(t *testing.T) {
	t.Setenv("GEMINI_API_KEY", "")

	if _, err := New(); err == nil {
		t.Fatalf("expected error when GEMINI_API_KEY is unset")
	}
}

func TestExtractJSONArray(t *testing.T) {
	if _, ok := extractJSONArray("no array here"); ok {
		t.Fatalf("expected no match")
	}
	payload, ok := extractJSONArray(`prefix ["a","b"] suffix`)
	if !ok || payload != `["a","b"]` {
		t.Fatalf("unexpected payload: %q", payload)
	}
}
