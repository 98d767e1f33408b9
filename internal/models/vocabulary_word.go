package models

import (
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type VocabularyWord struct {
	gorm.Model

	Word          string                      `gorm:"not null;index"`
	CEFR          string                      `gorm:"not null;index"` // "A1".."C2"
	PartOfSpeech  string                      `gorm:"not null"`
	Pronunciation string
	Definition    string                      `gorm:"not null"`
	Examples      datatypes.JSONSlice[string] `gorm:"not null"` // ordered example sentences
	AudioURL      string
	CreatedByID   *uint `gorm:"index"`

	// Relationships
	CreatedBy   *User        `gorm:"foreignKey:CreatedByID;constraint:OnUpdate:Cascade,OnDelete:SET NULL" json:"-"`
	Assignments []Assignment `gorm:"foreignKey:WordID;constraint:OnUpdate:Cascade,OnDelete:CASCADE" json:"-"`
	Submissions []Submission `gorm:"foreignKey:WordID;constraint:OnUpdate:Cascade,OnDelete:CASCADE" json:"-"`
}
