package ai

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"os"
	"regexp"
	"strings"
	"time"
)

const defaultAPIURL = "https://generativelanguage.googleapis.com/v1beta/models/gemini-2.0-flash:generateContent"

// ErrParseFailure is returned when the model's free-text response cannot be
// decoded into the requested shape. Callers must not persist partial results.
var ErrParseFailure = errors.New("generation response could not be parsed")

// Gemini represents a client for the Gemini generative-language API
type Gemini struct {
	apiKey     string
	apiURL     string
	httpClient *http.Client
}

// New creates a new Gemini client
func New() (*Gemini, error) {
	apiKey := os.Getenv("GEMINI_API_KEY")
	if apiKey == "" {
		return nil, fmt.Errorf("GEMINI_API_KEY environment variable is not set")
	}

	apiURL := os.Getenv("GEMINI_API_URL")
	if apiURL == "" {
		apiURL = defaultAPIURL
	}

	return &Gemini{
		apiKey:     apiKey,
		apiURL:     apiURL,
		httpClient: &http.Client{Timeout: 30 * time.Second},
	}, nil
}

type generatePart struct {
	Text string `json:"text"`
}

type generateContent struct {
	Parts []generatePart `json:"parts"`
}

type generationConfig struct {
	Temperature     float64 `json:"temperature"`
	MaxOutputTokens int     `json:"maxOutputTokens"`
}

// GenerateRequest represents a request to the generateContent endpoint
type GenerateRequest struct {
	Contents         []generateContent `json:"contents"`
	GenerationConfig generationConfig  `json:"generationConfig"`
}

// GenerateResponse represents a response from the generateContent endpoint
type GenerateResponse struct {
	Candidates []struct {
		Content struct {
			Parts []generatePart `json:"parts"`
		} `json:"content"`
	} `json:"candidates"`
	Error *struct {
		Message string `json:"message"`
	} `json:"error,omitempty"`
}

// GeneratedWord is one word record produced by bulk generation.
type GeneratedWord struct {
	Word          string   `json:"word"`
	PartOfSpeech  string   `json:"part_of_speech"`
	Pronunciation string   `json:"pronunciation"`
	Definition    string   `json:"definition"`
	Examples      []string `json:"examples"`
}

func (g *Gemini) generate(prompt string, temperature float64, maxTokens int) (string, error) {
	request := GenerateRequest{
		Contents: []generateContent{
			{Parts: []generatePart{{Text: prompt}}},
		},
		GenerationConfig: generationConfig{
			Temperature:     temperature,
			MaxOutputTokens: maxTokens,
		},
	}

	requestData, err := json.Marshal(request)
	if err != nil {
		return "", fmt.Errorf("failed to marshal request: %v", err)
	}

	req, err := http.NewRequest("POST", g.apiURL+"?key="+g.apiKey, bytes.NewBuffer(requestData))
	if err != nil {
		return "", fmt.Errorf("failed to create request: %v", err)
	}

	req.Header.Set("Content-Type", "application/json")

	resp, err := g.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("failed to send request: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("API request failed with status %d", resp.StatusCode)
	}

	var response GenerateResponse
	if err := json.NewDecoder(resp.Body).Decode(&response); err != nil {
		return "", fmt.Errorf("failed to decode response: %v", err)
	}

	if response.Error != nil {
		return "", fmt.Errorf("API error: %s", response.Error.Message)
	}

	if len(response.Candidates) == 0 || len(response.Candidates[0].Content.Parts) == 0 {
		return "", fmt.Errorf("no response candidates returned")
	}

	return strings.TrimSpace(response.Candidates[0].Content.Parts[0].Text), nil
}

// GenerateWords generates count vocabulary word records at the given CEFR
// level, optionally constrained to a topic. A response without a decodable
// JSON array is a hard failure: partial or fabricated word records must never
// reach the catalog.
func (g *Gemini) GenerateWords(level string, count int, topic string) ([]GeneratedWord, error) {
	prompt := fmt.Sprintf("Generate %d vocabulary words at CEFR level %s", count, level)

	if topic != "" {
		prompt += fmt.Sprintf(" related to the topic of %s", topic)
	}

	prompt += `. For each word, provide the following in JSON format:
1. word: the vocabulary word
2. part_of_speech: the part of speech (noun, verb, adjective, etc.)
3. pronunciation: the IPA pronunciation
4. definition: a clear definition of the word
5. examples: an array of 2-3 example sentences using the word

Return the result as a JSON array of objects.`

	text, err := g.generate(prompt, 0.7, 2048)
	if err != nil {
		return nil, err
	}

	payload, ok := extractJSONArray(text)
	if !ok {
		return nil, ErrParseFailure
	}

	var words []GeneratedWord
	if err := json.Unmarshal([]byte(payload), &words); err != nil {
		return nil, ErrParseFailure
	}

	if len(words) == 0 {
		return nil, ErrParseFailure
	}

	for _, w := range words {
		if w.Word == "" || w.PartOfSpeech == "" || w.Definition == "" || len(w.Examples) == 0 {
			return nil, ErrParseFailure
		}
	}

	return words, nil
}

// GenerateExamples generates up to three example sentences for a word. A
// response without a JSON array degrades to non-empty lines mentioning the
// word; single sentences are safe to surface even when imperfectly formatted.
func (g *Gemini) GenerateExamples(word string) ([]string, error) {
	prompt := fmt.Sprintf(
		"Generate 3 example sentences using the word %q in different contexts. "+
			"Each sentence should clearly demonstrate the meaning of the word. "+
			"Return only the sentences as a JSON array of strings.",
		word,
	)

	text, err := g.generate(prompt, 0.7, 1024)
	if err != nil {
		return nil, err
	}

	if payload, ok := extractJSONArray(text); ok {
		var examples []string
		if err := json.Unmarshal([]byte(payload), &examples); err == nil && len(examples) > 0 {
			return examples, nil
		}
	}

	var examples []string
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line == "" || !strings.Contains(strings.ToLower(line), strings.ToLower(word)) {
			continue
		}
		examples = append(examples, line)
		if len(examples) == 3 {
			break
		}
	}

	if len(examples) == 0 {
		return nil, ErrParseFailure
	}

	return examples, nil
}

var ipaPattern = regexp.MustCompile(`/[^/]+/`)

// GeneratePronunciation returns the IPA pronunciation for a word and a
// reference audio URL. Falls back to a plain /word/ rendering when the model
// response holds no IPA-shaped fragment.
func (g *Gemini) GeneratePronunciation(word string) (pronunciation string, audioURL string, err error) {
	prompt := fmt.Sprintf(
		"Generate the IPA pronunciation for the English word %q. "+
			"Return only the IPA pronunciation in the format /pronunciation/ without any additional text or explanation.",
		word,
	)

	text, err := g.generate(prompt, 0.2, 100)
	if err != nil {
		return "", "", err
	}

	pronunciation = ipaPattern.FindString(text)
	if pronunciation == "" {
		pronunciation = "/" + word + "/"
	}

	audioURL = fmt.Sprintf("https://api.dictionaryapi.dev/media/pronunciations/en/%s-us.mp3", strings.ToLower(word))

	return pronunciation, audioURL, nil
}

// extractJSONArray returns the first JSON-array-shaped substring of text:
// everything from the first '[' through the last ']'.
func extractJSONArray(text string) (string, bool) {
	start := strings.Index(text, "[")
	end := strings.LastIndex(text, "]")

	if start == -1 || end == -1 || end < start {
		return "", false
	}

	return text[start : end+1], true
}
