package handlers

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/vocably-dev/vocably/db"
	"github.com/vocably-dev/vocably/internal/models"
	"github.com/vocably-dev/vocably/internal/services"
	"github.com/vocably-dev/vocably/internal/types"
	"github.com/vocably-dev/vocably/internal/utils"
)

type CreateSubmissionRequest struct {
	WordID    uint     `json:"word_id" binding:"required"`
	Sentences []string `json:"sentences" binding:"required"`
}

type ReviewSubmissionRequest struct {
	Decision string `json:"decision" binding:"required,oneof=approved rejected"`
	Feedback string `json:"feedback"`
	Override bool   `json:"override"`
}

func submissionResponse(submission models.Submission) types.SubmissionResponse {
	response := types.SubmissionResponse{
		ID:          submission.ID,
		UserID:      submission.UserID,
		WordID:      submission.WordID,
		Sentences:   submission.Sentences,
		Status:      submission.Status,
		Feedback:    submission.Feedback,
		SubmittedAt: submission.SubmittedAt,
		ReviewedAt:  submission.ReviewedAt,
		ReviewedBy:  submission.ReviewedByID,
	}

	if submission.User.ID != 0 {
		response.UserName = submission.User.Name
	}
	if submission.Word.ID != 0 {
		response.Word = submission.Word.Word
	}

	return response
}

func CreateSubmission(ctx *gin.Context) {
	userID, err := utils.GetCurrentUserID(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	var req CreateSubmissionRequest

	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	submission, err := services.Submit(db.DB, userID, req.WordID, req.Sentences)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrWordNotFound):
			ctx.JSON(http.StatusNotFound, gin.H{"error": "Word not found"})
		case errors.Is(err, services.ErrNoSentences), errors.Is(err, services.ErrTooManySentences):
			ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		default:
			log.Printf("Failed to create submission: %v", err)
			ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create submission"})
		}
		return
	}

	if err := db.DB.Preload("Word").First(submission, submission.ID).Error; err != nil {
		log.Printf("Failed to reload submission %d: %v", submission.ID, err)
	}

	ctx.JSON(http.StatusCreated, gin.H{"submission": submissionResponse(*submission)})
}

func ListMySubmissions(ctx *gin.Context) {
	userID, err := utils.GetCurrentUserID(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	var submissions []models.Submission
	err = db.DB.Preload("Word").
		Where("user_id = ?", userID).
		Order("submitted_at DESC").
		Find(&submissions).Error

	if err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve submissions"})
		return
	}

	response := make([]types.SubmissionResponse, 0, len(submissions))
	for _, submission := range submissions {
		response = append(response, submissionResponse(submission))
	}

	ctx.JSON(http.StatusOK, gin.H{"submissions": response})
}

// ListSubmissions is the admin review queue. Defaults to every submission;
// ?status=pending narrows it to the ones still waiting.
func ListSubmissions(ctx *gin.Context) {
	query := db.DB.Preload("User").Preload("Word").Order("submitted_at DESC")

	if status := ctx.Query("status"); status != "" {
		if status != types.SubmissionPending && !types.IsValidDecision(status) {
			ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid status filter"})
			return
		}
		query = query.Where("status = ?", status)
	}

	var submissions []models.Submission
	if err := query.Find(&submissions).Error; err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve submissions"})
		return
	}

	response := make([]types.SubmissionResponse, 0, len(submissions))
	for _, submission := range submissions {
		response = append(response, submissionResponse(submission))
	}

	ctx.JSON(http.StatusOK, gin.H{"submissions": response})
}

func ReviewSubmission(ctx *gin.Context) {
	reviewerID, err := utils.GetCurrentUserID(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	submissionID, err := utils.GetSubmissionID(ctx)

	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var req ReviewSubmissionRequest

	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	submission, err := services.Review(db.DB, submissionID, reviewerID, req.Decision, req.Feedback, req.Override)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrSubmissionNotFound):
			ctx.JSON(http.StatusNotFound, gin.H{"error": "Submission not found"})
		case errors.Is(err, services.ErrInvalidDecision):
			ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		case errors.Is(err, services.ErrAlreadyReviewed):
			ctx.JSON(http.StatusConflict, gin.H{"error": "Submission has already been reviewed"})
		default:
			log.Printf("Failed to review submission %d: %v", submissionID, err)
			ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to review submission"})
		}
		return
	}

	if err := db.DB.Preload("User").Preload("Word").First(submission, submission.ID).Error; err != nil {
		log.Printf("Failed to reload submission %d: %v", submission.ID, err)
	}

	ctx.JSON(http.StatusOK, gin.H{"submission": submissionResponse(*submission)})
}
