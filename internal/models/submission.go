package models

import (
	"time"

	"gorm.io/datatypes"
)

type Submission struct {
	BaseModel

	UserID       uint                        `gorm:"not null;index"`
	WordID       uint                        `gorm:"not null;index"`
	Sentences    datatypes.JSONSlice[string] `gorm:"not null"` // 1-3 learner-written sentences
	Status       string                      `gorm:"not null;default:pending;index"` // "pending", "approved", "rejected"
	Feedback     string
	SubmittedAt  time.Time `gorm:"not null"`
	ReviewedAt   *time.Time
	ReviewedByID *uint

	// Relationships
	User       User           `gorm:"foreignKey:UserID;constraint:OnUpdate:Cascade,OnDelete:CASCADE" json:"-"`
	Word       VocabularyWord `gorm:"foreignKey:WordID;constraint:OnUpdate:Cascade,OnDelete:CASCADE" json:"-"`
	ReviewedBy *User          `gorm:"foreignKey:ReviewedByID;constraint:OnUpdate:Cascade,OnDelete:SET NULL" json:"-"`
}
