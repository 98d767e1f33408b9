package types

import "time"

// UserResponse is the client-held identity record. It gates which views the
// frontend renders; it is not a credential.
type UserResponse struct {
	ID          uint       `json:"id"`
	Username    string     `json:"username"`
	Name        string     `json:"name"`
	Email       string     `json:"email,omitempty"`
	Role        string     `json:"role"`
	WordsPerDay int        `json:"words_per_day"`
	LastLogin   *time.Time `json:"last_login,omitempty"`
}

type WordResponse struct {
	ID            uint     `json:"id"`
	Word          string   `json:"word"`
	CEFR          string   `json:"cefr"`
	PartOfSpeech  string   `json:"part_of_speech"`
	Pronunciation string   `json:"pronunciation"`
	Definition    string   `json:"definition"`
	Examples      []string `json:"examples"`
	AudioURL      string   `json:"audio_url,omitempty"`
	CreatedByID   *uint    `json:"created_by,omitempty"`
}

type AssignmentResponse struct {
	ID            uint         `json:"id"`
	AssignedDate  string       `json:"assigned_date"` // YYYY-MM-DD
	Learned       bool         `json:"learned"`
	LastPracticed *time.Time   `json:"last_practiced,omitempty"`
	Word          WordResponse `json:"word"`
}

type SubmissionResponse struct {
	ID          uint       `json:"id"`
	UserID      uint       `json:"user_id"`
	UserName    string     `json:"user_name,omitempty"`
	WordID      uint       `json:"word_id"`
	Word        string     `json:"word"`
	Sentences   []string   `json:"sentences"`
	Status      string     `json:"status"`
	Feedback    string     `json:"feedback,omitempty"`
	SubmittedAt time.Time  `json:"submitted_at"`
	ReviewedAt  *time.Time `json:"reviewed_at,omitempty"`
	ReviewedBy  *uint      `json:"reviewed_by,omitempty"`
}
