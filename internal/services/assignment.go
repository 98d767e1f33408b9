package services

import (
	"errors"
	"fmt"
	"time"

	"github.com/vocably-dev/vocably/internal/models"
	"github.com/vocably-dev/vocably/internal/types"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var (
	ErrUserNotFound = errors.New("user not found")
	ErrInvalidQuota = errors.New("quota must be a positive integer")
)

// Today returns the current assignment date, truncated to a day in UTC.
func Today() time.Time {
	return time.Now().UTC().Truncate(24 * time.Hour)
}

// AssignDaily selects up to quota catalog words not yet assigned to the user
// and inserts assignment rows dated today. An empty catalog (or a fully
// assigned one) is a no-op success with count 0. Duplicate (user, word) rows
// are impossible: the insert carries ON CONFLICT DO NOTHING against the
// composite unique index, so concurrent refills converge instead of failing.
func AssignDaily(db *gorm.DB, userID uint, quota int) (int, error) {
	if quota < 1 {
		return 0, ErrInvalidQuota
	}
	if quota > types.MaxDailyQuota {
		quota = types.MaxDailyQuota
	}

	var user models.User
	if err := db.First(&user, userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return 0, ErrUserNotFound
		}
		return 0, fmt.Errorf("failed to look up user: %w", err)
	}

	var assignedIDs []uint
	if err := db.Model(&models.Assignment{}).
		Where("user_id = ?", userID).
		Pluck("word_id", &assignedIDs).Error; err != nil {
		return 0, fmt.Errorf("failed to fetch existing assignments: %w", err)
	}

	var catalogSize int64
	if err := db.Model(&models.VocabularyWord{}).Count(&catalogSize).Error; err != nil {
		return 0, fmt.Errorf("failed to count catalog: %w", err)
	}

	if catalogSize == 0 {
		return 0, nil
	}

	query := db.Model(&models.VocabularyWord{}).Limit(quota)
	if len(assignedIDs) > 0 {
		query = query.Where("id NOT IN ?", assignedIDs)
	}

	var wordIDs []uint
	if err := query.Pluck("id", &wordIDs).Error; err != nil {
		return 0, fmt.Errorf("failed to select new words: %w", err)
	}

	if len(wordIDs) == 0 {
		return 0, nil
	}

	today := Today()
	rows := make([]models.Assignment, 0, len(wordIDs))
	for _, wordID := range wordIDs {
		rows = append(rows, models.Assignment{
			UserID:       userID,
			WordID:       wordID,
			AssignedDate: today,
			Learned:      false,
		})
	}

	result := db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}, {Name: "word_id"}},
		DoNothing: true,
	}).Create(&rows)

	if result.Error != nil {
		return 0, fmt.Errorf("failed to insert assignments: %w", result.Error)
	}

	return int(result.RowsAffected), nil
}

// AssignWordToUsers assigns one word to each listed user, today. Users that
// already hold the word keep their existing row untouched.
func AssignWordToUsers(db *gorm.DB, wordID uint, userIDs []uint) (int, error) {
	var word models.VocabularyWord
	if err := db.First(&word, wordID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return 0, ErrWordNotFound
		}
		return 0, fmt.Errorf("failed to look up word: %w", err)
	}

	// gorm rejects a zero-row Create, so an empty user list is a no-op here.
	if len(userIDs) == 0 {
		return 0, nil
	}

	today := Today()
	rows := make([]models.Assignment, 0, len(userIDs))
	for _, userID := range userIDs {
		rows = append(rows, models.Assignment{
			UserID:       userID,
			WordID:       wordID,
			AssignedDate: today,
			Learned:      false,
		})
	}

	result := db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}, {Name: "word_id"}},
		DoNothing: true,
	}).Create(&rows)

	if result.Error != nil {
		return 0, fmt.Errorf("failed to insert assignments: %w", result.Error)
	}

	return int(result.RowsAffected), nil
}

// TodayAssignmentCount reports how many assignments the user received today.
// Login uses it to decide whether a lazy refill is due.
func TodayAssignmentCount(db *gorm.DB, userID uint) (int64, error) {
	var count int64
	err := db.Model(&models.Assignment{}).
		Where("user_id = ? AND assigned_date = ?", userID, Today()).
		Count(&count).Error
	return count, err
}
