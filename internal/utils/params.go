package utils

import (
	"errors"
	"strconv"

	"github.com/gin-gonic/gin"
)

func paramID(ctx *gin.Context, name string) (uint, error) {
	raw := ctx.Param(name)

	if raw == "" {
		return 0, errors.New("missing " + name)
	}

	id, err := strconv.ParseUint(raw, 10, 32)

	if err != nil {
		return 0, errors.New("invalid " + name)
	}

	return uint(id), nil
}

func GetUserID(ctx *gin.Context) (uint, error) {
	return paramID(ctx, "user_id")
}

func GetWordID(ctx *gin.Context) (uint, error) {
	return paramID(ctx, "word_id")
}

func GetAssignmentID(ctx *gin.Context) (uint, error) {
	return paramID(ctx, "assignment_id")
}

func GetSubmissionID(ctx *gin.Context) (uint, error) {
	return paramID(ctx, "submission_id")
}
