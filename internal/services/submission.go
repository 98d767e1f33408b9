package services

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/vocably-dev/vocably/internal/models"
	"github.com/vocably-dev/vocably/internal/types"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

var (
	ErrWordNotFound       = errors.New("vocabulary word not found")
	ErrSubmissionNotFound = errors.New("submission not found")
	ErrNoSentences        = errors.New("at least one non-empty sentence is required")
	ErrTooManySentences   = errors.New("a submission holds at most three sentences")
	ErrInvalidDecision    = errors.New("decision must be approved or rejected")
	ErrAlreadyReviewed    = errors.New("submission has already been reviewed")
)

// Submit creates a pending submission of 1-3 learner-written sentences for a
// word. The word must exist in the catalog; whether it is currently assigned
// to the submitting user is deliberately not checked here.
func Submit(db *gorm.DB, userID uint, wordID uint, sentences []string) (*models.Submission, error) {
	cleaned := make([]string, 0, len(sentences))
	for _, s := range sentences {
		if s = strings.TrimSpace(s); s != "" {
			cleaned = append(cleaned, s)
		}
	}

	if len(cleaned) == 0 {
		return nil, ErrNoSentences
	}
	if len(cleaned) > 3 {
		return nil, ErrTooManySentences
	}

	var word models.VocabularyWord
	if err := db.First(&word, wordID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrWordNotFound
		}
		return nil, fmt.Errorf("failed to look up word: %w", err)
	}

	submission := models.Submission{
		UserID:      userID,
		WordID:      wordID,
		Sentences:   datatypes.NewJSONSlice(cleaned),
		Status:      types.SubmissionPending,
		SubmittedAt: time.Now().UTC(),
	}

	if err := db.Create(&submission).Error; err != nil {
		return nil, fmt.Errorf("failed to create submission: %w", err)
	}

	return &submission, nil
}

// Review transitions a pending submission to approved or rejected, stamping
// the reviewer and review time. Approved and rejected are terminal: a second
// review is rejected unless the caller passes override, which re-stamps the
// decision and feedback without introducing a new state.
func Review(db *gorm.DB, submissionID uint, reviewerID uint, decision string, feedback string, override bool) (*models.Submission, error) {
	if !types.IsValidDecision(decision) {
		return nil, ErrInvalidDecision
	}

	var submission models.Submission
	if err := db.First(&submission, submissionID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrSubmissionNotFound
		}
		return nil, fmt.Errorf("failed to look up submission: %w", err)
	}

	if submission.Status != types.SubmissionPending && !override {
		return nil, ErrAlreadyReviewed
	}

	now := time.Now().UTC()
	submission.Status = decision
	submission.Feedback = feedback
	submission.ReviewedAt = &now
	submission.ReviewedByID = &reviewerID

	if err := db.Save(&submission).Error; err != nil {
		return nil, fmt.Errorf("failed to update submission: %w", err)
	}

	return &submission, nil
}
