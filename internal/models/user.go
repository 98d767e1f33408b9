package models

import (
	"time"

	"gorm.io/gorm"
)

type User struct {
	gorm.Model

	Username     string `gorm:"uniqueIndex;not null"`
	PasswordHash string `gorm:"not null"`
	Name         string `gorm:"not null"`
	Email        string `gorm:"index"`
	Role         string `gorm:"not null;default:user"` // "admin", "user"
	WordsPerDay  int    `gorm:"not null;default:5"`    // daily assignment quota
	LastLogin    *time.Time

	// Relationships
	CreatedWords []VocabularyWord `gorm:"foreignKey:CreatedByID;constraint:OnUpdate:Cascade,OnDelete:SET NULL"`
	Assignments  []Assignment     `gorm:"foreignKey:UserID;constraint:OnUpdate:Cascade,OnDelete:CASCADE"`
	Submissions  []Submission     `gorm:"foreignKey:UserID;constraint:OnUpdate:Cascade,OnDelete:CASCADE"`
}
