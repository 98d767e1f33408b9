package handlers

import (
	"errors"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/vocably-dev/vocably/db"
	"github.com/vocably-dev/vocably/internal/models"
	"github.com/vocably-dev/vocably/internal/types"
	"github.com/vocably-dev/vocably/internal/utils"
	"gorm.io/gorm"
)

type MarkLearnedRequest struct {
	Learned *bool `json:"learned" binding:"required"`
}

func assignmentResponse(assignment models.Assignment) types.AssignmentResponse {
	return types.AssignmentResponse{
		ID:            assignment.ID,
		AssignedDate:  assignment.AssignedDate.Format("2006-01-02"),
		Learned:       assignment.Learned,
		LastPracticed: assignment.LastPracticed,
		Word:          wordResponse(assignment.Word),
	}
}

// ListMyWords returns the caller's assigned vocabulary, newest batch first.
func ListMyWords(ctx *gin.Context) {
	userID, err := utils.GetCurrentUserID(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	var assignments []models.Assignment
	err = db.DB.Preload("Word").
		Where("user_id = ?", userID).
		Order("assigned_date DESC, id DESC").
		Find(&assignments).Error

	if err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve assignments"})
		return
	}

	response := make([]types.AssignmentResponse, 0, len(assignments))
	for _, assignment := range assignments {
		response = append(response, assignmentResponse(assignment))
	}

	ctx.JSON(http.StatusOK, gin.H{"assignments": response})
}

// currentUserAssignment loads an assignment only if it belongs to the caller.
// Rows of other users read as not found.
func currentUserAssignment(ctx *gin.Context) (*models.Assignment, bool) {
	userID, err := utils.GetCurrentUserID(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return nil, false
	}

	assignmentID, err := utils.GetAssignmentID(ctx)

	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return nil, false
	}

	var assignment models.Assignment
	err = db.DB.Preload("Word").
		Where("id = ? AND user_id = ?", assignmentID, userID).
		First(&assignment).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			ctx.JSON(http.StatusNotFound, gin.H{"error": "Assignment not found"})
		} else {
			ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve assignment"})
		}
		return nil, false
	}

	return &assignment, true
}

func MarkLearned(ctx *gin.Context) {
	var req MarkLearnedRequest

	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	assignment, ok := currentUserAssignment(ctx)
	if !ok {
		return
	}

	assignment.Learned = *req.Learned

	if err := db.DB.Save(assignment).Error; err != nil {
		log.Printf("Failed to update assignment %d: %v", assignment.ID, err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update assignment"})
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"assignment": assignmentResponse(*assignment)})
}

func RecordPractice(ctx *gin.Context) {
	assignment, ok := currentUserAssignment(ctx)
	if !ok {
		return
	}

	now := time.Now()
	assignment.LastPracticed = &now

	if err := db.DB.Save(assignment).Error; err != nil {
		log.Printf("Failed to record practice for assignment %d: %v", assignment.ID, err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to record practice"})
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"assignment": assignmentResponse(*assignment)})
}
