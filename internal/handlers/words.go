package handlers

import (
	"errors"
	"log"
	"net/http"
	"sync"

	"github.com/gin-gonic/gin"
	"github.com/vocably-dev/vocably/db"
	"github.com/vocably-dev/vocably/internal/ai"
	"github.com/vocably-dev/vocably/internal/excel"
	"github.com/vocably-dev/vocably/internal/models"
	"github.com/vocably-dev/vocably/internal/services"
	"github.com/vocably-dev/vocably/internal/types"
	"github.com/vocably-dev/vocably/internal/utils"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type CreateWordRequest struct {
	Word          string   `json:"word" binding:"required"`
	CEFR          string   `json:"cefr" binding:"required,oneof=A1 A2 B1 B2 C1 C2"`
	PartOfSpeech  string   `json:"part_of_speech" binding:"required"`
	Pronunciation string   `json:"pronunciation"`
	Definition    string   `json:"definition" binding:"required"`
	Examples      []string `json:"examples" binding:"required,min=1"`
	AudioURL      string   `json:"audio_url"`
}

type UpdateWordRequest struct {
	Word          string   `json:"word" binding:"required"`
	CEFR          string   `json:"cefr" binding:"required,oneof=A1 A2 B1 B2 C1 C2"`
	PartOfSpeech  string   `json:"part_of_speech" binding:"required"`
	Pronunciation string   `json:"pronunciation"`
	Definition    string   `json:"definition" binding:"required"`
	Examples      []string `json:"examples" binding:"required,min=1"`
	AudioURL      string   `json:"audio_url"`
}

type GenerateWordsRequest struct {
	Level string `json:"level" binding:"required,oneof=A1 A2 B1 B2 C1 C2"`
	Count int    `json:"count" binding:"required,min=1,max=20"`
	Topic string `json:"topic"`
}

type GenerateFieldRequest struct {
	Word string `json:"word" binding:"required"`
}

type AssignWordRequest struct {
	UserIDs []uint `json:"user_ids" binding:"required,min=1"`
}

type BulkAssignRequest struct {
	UserID uint `json:"user_id" binding:"required"`
	Count  int  `json:"count" binding:"omitempty,min=1,max=20"`
}

var (
	gemini     *ai.Gemini
	geminiOnce sync.Once
	geminiErr  error
)

// generationClient builds the shared AI client on first use. Handlers run
// concurrently, so construction is guarded by sync.Once; a configuration
// error sticks until restart.
func generationClient() (*ai.Gemini, error) {
	geminiOnce.Do(func() {
		gemini, geminiErr = ai.New()
	})
	return gemini, geminiErr
}

func wordResponse(word models.VocabularyWord) types.WordResponse {
	return types.WordResponse{
		ID:            word.ID,
		Word:          word.Word,
		CEFR:          word.CEFR,
		PartOfSpeech:  word.PartOfSpeech,
		Pronunciation: word.Pronunciation,
		Definition:    word.Definition,
		Examples:      word.Examples,
		AudioURL:      word.AudioURL,
		CreatedByID:   word.CreatedByID,
	}
}

func ListWords(ctx *gin.Context) {
	query := db.DB.Order("created_at DESC")

	if cefr := ctx.Query("cefr"); cefr != "" {
		if !types.IsValidCEFR(cefr) {
			ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid CEFR level"})
			return
		}
		query = query.Where("cefr = ?", cefr)
	}

	var words []models.VocabularyWord
	if err := query.Find(&words).Error; err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve words"})
		return
	}

	response := make([]types.WordResponse, 0, len(words))
	for _, word := range words {
		response = append(response, wordResponse(word))
	}

	ctx.JSON(http.StatusOK, gin.H{"words": response})
}

func CreateWord(ctx *gin.Context) {
	var req CreateWordRequest

	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	userID, err := utils.GetCurrentUserID(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	word := models.VocabularyWord{
		Word:          req.Word,
		CEFR:          req.CEFR,
		PartOfSpeech:  req.PartOfSpeech,
		Pronunciation: req.Pronunciation,
		Definition:    req.Definition,
		Examples:      datatypes.NewJSONSlice(req.Examples),
		AudioURL:      req.AudioURL,
		CreatedByID:   &userID,
	}

	if err := db.DB.Create(&word).Error; err != nil {
		log.Printf("Failed to create word: %v", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create word"})
		return
	}

	ctx.JSON(http.StatusCreated, gin.H{"word": wordResponse(word)})
}

func UpdateWord(ctx *gin.Context) {
	wordID, err := utils.GetWordID(ctx)

	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var req UpdateWordRequest

	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var word models.VocabularyWord

	if err := db.DB.First(&word, wordID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			ctx.JSON(http.StatusNotFound, gin.H{"error": "Word not found"})
		} else {
			ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve word"})
		}
		return
	}

	word.Word = req.Word
	word.CEFR = req.CEFR
	word.PartOfSpeech = req.PartOfSpeech
	word.Pronunciation = req.Pronunciation
	word.Definition = req.Definition
	word.Examples = datatypes.NewJSONSlice(req.Examples)
	word.AudioURL = req.AudioURL

	if err := db.DB.Save(&word).Error; err != nil {
		log.Printf("Failed to update word %d: %v", wordID, err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update word"})
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"word": wordResponse(word)})
}

func DeleteWord(ctx *gin.Context) {
	wordID, err := utils.GetWordID(ctx)

	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var word models.VocabularyWord

	if err := db.DB.First(&word, wordID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			ctx.JSON(http.StatusNotFound, gin.H{"error": "Word not found"})
		} else {
			ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve word"})
		}
		return
	}

	if err := db.DB.Unscoped().Delete(&word).Error; err != nil {
		log.Printf("Failed to delete word %d: %v", wordID, err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete word"})
		return
	}

	ctx.Status(http.StatusNoContent)
}

// GenerateWords asks the generation gateway for a batch of word records and
// persists them as one insert. A parse failure aborts before anything is
// written: partial records never reach the catalog.
func GenerateWords(ctx *gin.Context) {
	var req GenerateWordsRequest

	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"success": false, "error": err.Error()})
		return
	}

	userID, err := utils.GetCurrentUserID(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"success": false, "error": "User not authenticated"})
		return
	}

	client, err := generationClient()
	if err != nil {
		log.Printf("Generation gateway unavailable: %v", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "Generation gateway is not configured"})
		return
	}

	generated, err := client.GenerateWords(req.Level, req.Count, req.Topic)
	if err != nil {
		log.Printf("Failed to generate vocabulary: %v", err)
		if errors.Is(err, ai.ErrParseFailure) {
			ctx.JSON(http.StatusBadGateway, gin.H{"success": false, "error": "Generation response could not be parsed"})
		} else {
			ctx.JSON(http.StatusBadGateway, gin.H{"success": false, "error": "Failed to generate vocabulary"})
		}
		return
	}

	words := make([]models.VocabularyWord, 0, len(generated))
	for _, g := range generated {
		words = append(words, models.VocabularyWord{
			Word:          g.Word,
			CEFR:          req.Level,
			PartOfSpeech:  g.PartOfSpeech,
			Pronunciation: g.Pronunciation,
			Definition:    g.Definition,
			Examples:      datatypes.NewJSONSlice(g.Examples),
			CreatedByID:   &userID,
		})
	}

	if err := db.DB.Create(&words).Error; err != nil {
		log.Printf("Failed to persist generated words: %v", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "Failed to save generated vocabulary"})
		return
	}

	response := make([]types.WordResponse, 0, len(words))
	for _, word := range words {
		response = append(response, wordResponse(word))
	}

	ctx.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Vocabulary generated successfully",
		"data":    response,
	})
}

func GenerateExamples(ctx *gin.Context) {
	var req GenerateFieldRequest

	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"success": false, "error": err.Error()})
		return
	}

	client, err := generationClient()
	if err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "Generation gateway is not configured"})
		return
	}

	examples, err := client.GenerateExamples(req.Word)
	if err != nil {
		log.Printf("Failed to generate examples for %q: %v", req.Word, err)
		ctx.JSON(http.StatusBadGateway, gin.H{"success": false, "error": "Failed to generate examples"})
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"success": true, "data": gin.H{"examples": examples}})
}

func GeneratePronunciation(ctx *gin.Context) {
	var req GenerateFieldRequest

	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"success": false, "error": err.Error()})
		return
	}

	client, err := generationClient()
	if err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "Generation gateway is not configured"})
		return
	}

	pronunciation, audioURL, err := client.GeneratePronunciation(req.Word)
	if err != nil {
		log.Printf("Failed to generate pronunciation for %q: %v", req.Word, err)
		ctx.JSON(http.StatusBadGateway, gin.H{"success": false, "error": "Failed to generate pronunciation"})
		return
	}

	ctx.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    gin.H{"pronunciation": pronunciation, "audio_url": audioURL},
	})
}

// ImportWords accepts an .xlsx upload and adds its valid rows to the catalog.
func ImportWords(ctx *gin.Context) {
	userID, err := utils.GetCurrentUserID(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"success": false, "error": "User not authenticated"})
		return
	}

	fileHeader, err := ctx.FormFile("file")
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "A workbook file is required"})
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "Failed to open uploaded file"})
		return
	}
	defer file.Close()

	words, result, err := excel.ParseWords(file)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"success": false, "error": err.Error()})
		return
	}

	if len(words) > 0 {
		for i := range words {
			words[i].CreatedByID = &userID
		}
		if err := db.DB.Create(&words).Error; err != nil {
			log.Printf("Failed to persist imported words: %v", err)
			ctx.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "Failed to save imported vocabulary"})
			return
		}
	}

	ctx.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Import finished",
		"data": gin.H{
			"processed": result.TotalProcessed,
			"imported":  result.Parsed,
			"skipped":   result.Skipped,
			"errors":    result.Errors,
		},
	})
}

func AssignWord(ctx *gin.Context) {
	wordID, err := utils.GetWordID(ctx)

	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"success": false, "error": err.Error()})
		return
	}

	var req AssignWordRequest

	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"success": false, "error": err.Error()})
		return
	}

	count, err := services.AssignWordToUsers(db.DB, wordID, req.UserIDs)
	if err != nil {
		if errors.Is(err, services.ErrWordNotFound) {
			ctx.JSON(http.StatusNotFound, gin.H{"success": false, "error": "Word not found"})
			return
		}
		log.Printf("Failed to assign word %d: %v", wordID, err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "Failed to assign word"})
		return
	}

	ctx.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Word assigned",
		"count":   count,
	})
}

// BulkAssign hands a user a batch of new words on demand, outside the login
// refill. Count defaults to the user's daily quota.
func BulkAssign(ctx *gin.Context) {
	var req BulkAssignRequest

	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"success": false, "error": err.Error()})
		return
	}

	count := req.Count
	if count == 0 {
		var user models.User
		if err := db.DB.First(&user, req.UserID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				ctx.JSON(http.StatusNotFound, gin.H{"success": false, "error": "User not found"})
			} else {
				ctx.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "Failed to retrieve user"})
			}
			return
		}
		count = user.WordsPerDay
	}

	assigned, err := services.AssignDaily(db.DB, req.UserID, count)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrUserNotFound):
			ctx.JSON(http.StatusNotFound, gin.H{"success": false, "error": "User not found"})
		case errors.Is(err, services.ErrInvalidQuota):
			ctx.JSON(http.StatusBadRequest, gin.H{"success": false, "error": err.Error()})
		default:
			log.Printf("Failed to bulk-assign for user %d: %v", req.UserID, err)
			ctx.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "Failed to assign vocabulary"})
		}
		return
	}

	message := "Vocabulary assigned"
	if assigned == 0 {
		message = "No new vocabulary available to assign"
	}

	ctx.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": message,
		"count":   assigned,
	})
}
