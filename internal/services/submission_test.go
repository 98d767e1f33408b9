package services

import (
	"errors"
	"testing"

	"github.com/vocably-dev/vocably/internal/types"
)

func TestSubmitCreatesPending(t *testing.T) {
	db := setupTestDB(t)
	user := createTestUser(t, db, "learner")
	words := createTestWords(t, db, 1)

	submission, err := Submit(db, user.ID, words[0].ID, []string{"I used word0 here.", "  ", "Another word0 sentence."})
	if err != nil {
		t.Fatalf("submit: %v", err)
	}
	if submission.Status != types.SubmissionPending {
		t.Fatalf("expected pending, got %s", submission.Status)
	}
	if len(submission.Sentences) != 2 {
		t.Fatalf("expected blank sentence dropped, got %v", submission.Sentences)
	}
	if submission.SubmittedAt.IsZero() {
		t.Fatalf("expected submitted_at to be stamped")
	}
}

func TestSubmitRejectsEmptySentences(t *testing.T) {
	db := setupTestDB(t)
	user := createTestUser(t, db, "learner")
	words := createTestWords(t, db, 1)

	if _, err := Submit(db, user.ID, words[0].ID, []string{"  ", ""}); !errors.Is(err, ErrNoSentences) {
		t.Fatalf("expected ErrNoSentences, got %v", err)
	}
}

func TestSubmitRejectsTooManySentences(t *testing.T) {
	db := setupTestDB(t)
	user := createTestUser(t, db, "learner")
	words := createTestWords(t, db, 1)

	sentences := []string{"One.", "Two.", "Three.", "Four."}
	if _, err := Submit(db, user.ID, words[0].ID, sentences); !errors.Is(err, ErrTooManySentences) {
		t.Fatalf("expected ErrTooManySentences, got %v", err)
	}
}

func TestSubmitUnknownWord(t *testing.T) {
	db := setupTestDB(t)
	user := createTestUser(t, db, "learner")

	if _, err := Submit(db, user.ID, 404, []string{"A sentence."}); !errors.Is(err, ErrWordNotFound) {
		t.Fatalf("expected ErrWordNotFound, got %v", err)
	}
}

func TestReviewApproves(t *testing.T) {
	db := setupTestDB(t)
	learner := createTestUser(t, db, "learner")
	admin := createTestUser(t, db, "reviewer")
	words := createTestWords(t, db, 1)

	submission, err := Submit(db, learner.ID, words[0].ID, []string{"A word0 sentence."})
	if err != nil {
		t.Fatalf("submit: %v", err)
	}

	reviewed, err := Review(db, submission.ID, admin.ID, types.SubmissionApproved, "Nice work", false)
	if err != nil {
		t.Fatalf("review: %v", err)
	}
	if reviewed.Status != types.SubmissionApproved {
		t.Fatalf("expected approved, got %s", reviewed.Status)
	}
	if reviewed.Feedback != "Nice work" {
		t.Fatalf("expected feedback stored, got %q", reviewed.Feedback)
	}
	if reviewed.ReviewedAt == nil || reviewed.ReviewedByID == nil || *reviewed.ReviewedByID != admin.ID {
		t.Fatalf("expected reviewer stamped: %+v", reviewed)
	}
}

func TestReviewTerminalStatesAreSticky(t *testing.T) {
	db := setupTestDB(t)
	learner := createTestUser(t, db, "learner")
	admin := createTestUser(t, db, "reviewer")
	words := createTestWords(t, db, 1)

	submission, err := Submit(db, learner.ID, words[0].ID, []string{"A word0 sentence."})
	if err != nil {
		t.Fatalf("submit: %v", err)
	}

	if _, err := Review(db, submission.ID, admin.ID, types.SubmissionRejected, "Try again", false); err != nil {
		t.Fatalf("first review: %v", err)
	}

	_, err = Review(db, submission.ID, admin.ID, types.SubmissionApproved, "Changed my mind", false)
	if !errors.Is(err, ErrAlreadyReviewed) {
		t.Fatalf("expected ErrAlreadyReviewed, got %v", err)
	}
}

func TestReviewOverrideReplacesFeedback(t *testing.T) {
	db := setupTestDB(t)
	learner := createTestUser(t, db, "learner")
	admin := createTestUser(t, db, "reviewer")
	words := createTestWords(t, db, 1)

	submission, err := Submit(db, learner.ID, words[0].ID, []string{"A word0 sentence."})
	if err != nil {
		t.Fatalf("submit: %v", err)
	}

	if _, err := Review(db, submission.ID, admin.ID, types.SubmissionRejected, "Too short", false); err != nil {
		t.Fatalf("first review: %v", err)
	}

	reviewed, err := Review(db, submission.ID, admin.ID, types.SubmissionApproved, "On reflection, fine", true)
	if err != nil {
		t.Fatalf("override review: %v", err)
	}
	if reviewed.Status != types.SubmissionApproved || reviewed.Feedback != "On reflection, fine" {
		t.Fatalf("override did not replace decision/feedback: %+v", reviewed)
	}
}

func TestReviewInvalidDecision(t *testing.T) {
	db := setupTestDB(t)
	learner := createTestUser(t, db, "learner")
	admin := createTestUser(t, db, "reviewer")
	words := createTestWords(t, db, 1)

	submission, err := Submit(db, learner.ID, words[0].ID, []string{"A word0 sentence."})
	if err != nil {
		t.Fatalf("submit: %v", err)
	}

	if _, err := Review(db, submission.ID, admin.ID, "pending", "", false); !errors.Is(err, ErrInvalidDecision) {
		t.Fatalf("expected ErrInvalidDecision, got %v", err)
	}
}

func TestReviewMissingSubmission(t *testing.T) {
	db := setupTestDB(t)
	admin := createTestUser(t, db, "reviewer")

	if _, err := Review(db, 404, admin.ID, types.SubmissionApproved, "", false); !errors.Is(err, ErrSubmissionNotFound) {
		t.Fatalf("expected ErrSubmissionNotFound, got %v", err)
	}
}
