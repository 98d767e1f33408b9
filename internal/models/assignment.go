package models

import (
	"time"
)

// Assignment grants a user a specific word on a specific date. The composite
// unique index is what makes re-assignment an upsert instead of a duplicate.
type Assignment struct {
	BaseModel

	UserID        uint      `gorm:"not null;uniqueIndex:idx_user_word"`
	WordID        uint      `gorm:"not null;uniqueIndex:idx_user_word"`
	AssignedDate  time.Time `gorm:"not null;index"`
	Learned       bool      `gorm:"not null;default:false"`
	LastPracticed *time.Time

	// Relationships
	User User           `gorm:"foreignKey:UserID;constraint:OnUpdate:Cascade,OnDelete:CASCADE" json:"-"`
	Word VocabularyWord `gorm:"foreignKey:WordID;constraint:OnUpdate:Cascade,OnDelete:CASCADE" json:"-"`
}
