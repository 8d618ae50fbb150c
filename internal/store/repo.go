package store

import (
	"context"
	"errors"
)

// ErrQuestionNotFound is returned when an attempt references a question
// id that does not exist.
var ErrQuestionNotFound = errors.New("question not found")

// QuestionRepo manages persisted quiz questions.
type QuestionRepo interface {
	// Save inserts a question. Returns false with no write if a question
	// with identical text already exists. The existence check and the
	// insert run in one transaction.
	Save(ctx context.Context, q *Question) (bool, error)

	// Next returns the most-recently-created question matching the given
	// filters. Empty topic or difficulty means no filter on that field.
	// Returns nil if no question matches.
	Next(ctx context.Context, topic, difficulty string) (*Question, error)

	// GetByID returns the question with the given id, or nil if absent.
	GetByID(ctx context.Context, id string) (*Question, error)
}

// AttemptRepo manages answer submissions.
type AttemptRepo interface {
	// Record appends an attempt. Returns ErrQuestionNotFound if the
	// referenced question does not exist; the check and the insert run
	// in one transaction.
	Record(ctx context.Context, a *Attempt) error
}

// TopicDifficultyCount is one row of the question-count aggregate.
type TopicDifficultyCount struct {
	Topic      string `json:"topic"`
	Difficulty string `json:"difficulty"`
	Count      int64  `json:"count"`
}

// TopicCorrectness is one row of the attempt-correctness aggregate.
type TopicCorrectness struct {
	Topic   string `json:"topic"`
	Correct bool   `json:"correct"`
	Count   int64  `json:"count"`
}

// Analytics holds aggregate counts only; no row-level detail is exposed.
type Analytics struct {
	QuestionsByTopic []TopicDifficultyCount `json:"questions_by_topic"`
	AttemptStats     []TopicCorrectness     `json:"attempt_stats"`
}

// LLMEventData captures the data for a single backend call event.
type LLMEventData struct {
	Provider         string
	Model            string
	Purpose          string
	InputTokens      int
	OutputTokens     int
	LatencyMs        int64
	EstimatedCostUSD float64
	Success          bool
	ErrorMessage     string
}

// PurposeUsage is aggregated backend usage for one call purpose.
type PurposeUsage struct {
	Purpose      string
	Calls        int
	InputTokens  int
	OutputTokens int
	AvgLatencyMs int64
}

// ModelUsage is aggregated backend usage for one model.
type ModelUsage struct {
	Model        string
	Calls        int
	InputTokens  int
	OutputTokens int
}

// EventRepo provides access to backend call events.
type EventRepo interface {
	AppendLLMEvent(ctx context.Context, data LLMEventData) error
	RecentLLMEvents(ctx context.Context, limit int) ([]LLMEvent, error)
	LLMUsageByPurpose(ctx context.Context) ([]PurposeUsage, error)
	LLMUsageByModel(ctx context.Context) ([]ModelUsage, error)
}
