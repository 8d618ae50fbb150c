package store

import (
	"time"

	"gorm.io/datatypes"
)

// Question is one persisted quiz question. Rows are written only by the
// generation pipeline after validation and never mutated afterwards.
type Question struct {
	ID         string `gorm:"primaryKey"`
	Topic      string `gorm:"index;not null"`
	Difficulty string `gorm:"index;not null"`

	// QuestionText is the sole deduplication key: exact, case- and
	// whitespace-sensitive match.
	QuestionText string `gorm:"column:question;uniqueIndex;not null"`

	// Options and DistractorRationale are stored as JSON arrays in the
	// same shape the wire format uses.
	Options             datatypes.JSON `gorm:"not null"`
	Explanation         string         `gorm:"not null"`
	DistractorRationale datatypes.JSON `gorm:"not null"`

	Source     string  `gorm:"not null"`
	Confidence float64 `gorm:"not null"`

	CreatedAt time.Time
}

// Attempt is one answer submission. Rows are append-only and always
// reference an existing Question.
type Attempt struct {
	ID         string `gorm:"primaryKey"`
	QuestionID string `gorm:"index;not null"`

	Selected string `gorm:"not null"`
	Correct  bool   `gorm:"not null"`
	UserID   string

	CreatedAt time.Time

	Question Question `gorm:"constraint:OnDelete:CASCADE"`
}

// LLMEvent records one completion backend call for diagnosis and cost
// tracking. Not exposed through the API.
type LLMEvent struct {
	ID uint `gorm:"primaryKey"`

	Provider         string
	Model            string
	Purpose          string
	InputTokens      int
	OutputTokens     int
	LatencyMs        int64
	EstimatedCostUSD float64
	Success          bool
	ErrorMessage     string

	CreatedAt time.Time
}
