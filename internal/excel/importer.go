package excel

import (
	"fmt"
	"io"
	"strings"

	"github.com/vocably-dev/vocably/internal/models"
	"github.com/vocably-dev/vocably/internal/types"
	"github.com/xuri/excelize/v2"
	"gorm.io/datatypes"
)

// Expected column layout, first row is a header:
// A word, B cefr, C part_of_speech, D pronunciation, E definition,
// F examples (separated by ";"), G audio_url (optional).

// ImportResult holds the outcome of parsing one workbook.
type ImportResult struct {
	TotalProcessed int
	Parsed         int
	Skipped        int
	Errors         []string
}

// ParseWords reads vocabulary word rows from an .xlsx workbook. Rows that
// fail validation are reported in the result and skipped; only a workbook
// that cannot be opened at all is an error.
func ParseWords(r io.Reader) ([]models.VocabularyWord, *ImportResult, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open workbook: %v", err)
	}
	defer f.Close()

	sheet := f.GetSheetName(0)
	if sheet == "" {
		return nil, nil, fmt.Errorf("workbook has no sheets")
	}

	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to read rows: %v", err)
	}

	result := &ImportResult{Errors: make([]string, 0)}
	var words []models.VocabularyWord

	for i, row := range rows {
		// Skip the header row
		if i == 0 {
			continue
		}

		result.TotalProcessed++

		word, err := parseRow(row)
		if err != nil {
			result.Skipped++
			result.Errors = append(result.Errors, fmt.Sprintf("Row %d: %v", i+1, err))
			continue
		}

		words = append(words, word)
		result.Parsed++
	}

	return words, result, nil
}

func parseRow(row []string) (models.VocabularyWord, error) {
	cell := func(i int) string {
		if i < len(row) {
			return strings.TrimSpace(row[i])
		}
		return ""
	}

	word := cell(0)
	cefr := strings.ToUpper(cell(1))
	partOfSpeech := cell(2)
	pronunciation := cell(3)
	definition := cell(4)
	audioURL := cell(6)

	if word == "" {
		return models.VocabularyWord{}, fmt.Errorf("missing word")
	}
	if !types.IsValidCEFR(cefr) {
		return models.VocabularyWord{}, fmt.Errorf("invalid CEFR level %q", cell(1))
	}
	if partOfSpeech == "" {
		return models.VocabularyWord{}, fmt.Errorf("missing part of speech")
	}
	if definition == "" {
		return models.VocabularyWord{}, fmt.Errorf("missing definition")
	}

	var examples []string
	for _, example := range strings.Split(cell(5), ";") {
		if example = strings.TrimSpace(example); example != "" {
			examples = append(examples, example)
		}
	}
	if len(examples) == 0 {
		return models.VocabularyWord{}, fmt.Errorf("missing examples")
	}

	return models.VocabularyWord{
		Word:          word,
		CEFR:          cefr,
		PartOfSpeech:  partOfSpeech,
		Pronunciation: pronunciation,
		Definition:    definition,
		Examples:      datatypes.NewJSONSlice(examples),
		AudioURL:      audioURL,
	}, nil
}
