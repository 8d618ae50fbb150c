package quiz

import (
	"fmt"
	"strings"
)

// Difficulty is the requested difficulty level for generated questions.
type Difficulty string

const (
	DifficultyEasy   Difficulty = "easy"
	DifficultyMedium Difficulty = "medium"
	DifficultyHard   Difficulty = "hard"
)

// ParseDifficulty normalizes and validates a difficulty token.
func ParseDifficulty(s string) (Difficulty, error) {
	switch Difficulty(strings.ToLower(strings.TrimSpace(s))) {
	case DifficultyEasy:
		return DifficultyEasy, nil
	case DifficultyMedium:
		return DifficultyMedium, nil
	case DifficultyHard:
		return DifficultyHard, nil
	default:
		return "", fmt.Errorf("invalid difficulty %q: use easy, medium, or hard", s)
	}
}

// Item provenance tags.
const (
	SourceFromContext = "FROM_CONTEXT"
	SourceGenerated   = "GENERATED"
)

// Structural limits for a quiz item. These match the bounds the prompt
// asks the model to respect.
const (
	OptionCount       = 4
	MaxQuestionLen    = 200
	MaxOptionLen      = 80
	MaxExplanationLen = 240

	MinGenerateCount = 1
	MaxGenerateCount = 20
)

// optionLabels is the fixed label alphabet, in presentation order.
var optionLabels = [OptionCount]string{"A", "B", "C", "D"}

// ValidLabel reports whether s is one of the four option labels.
func ValidLabel(s string) bool {
	for _, l := range optionLabels {
		if s == l {
			return true
		}
	}
	return false
}

// Option is one candidate answer of an Item.
type Option struct {
	Label     string `json:"label"`
	Text      string `json:"text"`
	IsCorrect bool   `json:"is_correct"`
}

// Item is one validated multiple-choice question.
//
// Every persisted Item satisfies the structural invariants enforced by
// checkItem: exactly one correct option, pairwise distinct option texts,
// exactly four options with labels {A,B,C,D}, and four positionally
// aligned distractor rationales. Items are immutable after creation.
type Item struct {
	ID         string     `json:"id"`
	Topic      string     `json:"topic"`
	Difficulty Difficulty `json:"difficulty"`
	Question   string     `json:"question"`
	Options    []Option   `json:"options"`

	// Explanation explains the correct answer, shown after an attempt.
	Explanation string `json:"explanation"`

	// DistractorRationale is aligned with Options: entry i explains why
	// an examinee might pick or reject option i.
	DistractorRationale []string `json:"distractor_rationale"`

	Source string `json:"source"`

	// EstimatedConfidence is the model's self-assessed confidence in
	// [0,1]. Stored as metadata only; never used for filtering or
	// ranking.
	EstimatedConfidence float64 `json:"estimated_confidence"`
}

// CorrectLabel returns the label of the correct option. The second
// return is false only for items that bypassed validation.
func (it *Item) CorrectLabel() (string, bool) {
	for _, o := range it.Options {
		if o.IsCorrect {
			return o.Label, true
		}
	}
	return "", false
}

// GenerateRequest describes one quiz generation call.
type GenerateRequest struct {
	Topic      string     `json:"topic"`
	Difficulty Difficulty `json:"difficulty"`
	Count      int        `json:"count"`
	Context    string     `json:"context"`
}

// Validate checks request preconditions. Failures are client errors and
// must be surfaced before any backend call.
func (r *GenerateRequest) Validate() error {
	if strings.TrimSpace(r.Topic) == "" {
		return &InputError{Field: "topic", Message: "topic cannot be empty"}
	}
	if _, err := ParseDifficulty(string(r.Difficulty)); err != nil {
		return &InputError{Field: "difficulty", Message: err.Error()}
	}
	if r.Count < MinGenerateCount || r.Count > MaxGenerateCount {
		return &InputError{
			Field:   "count",
			Message: fmt.Sprintf("count must be between %d and %d", MinGenerateCount, MaxGenerateCount),
		}
	}
	return nil
}

// AttemptFeedback is the result of one answer submission.
type AttemptFeedback struct {
	Correct      bool   `json:"correct"`
	Explanation  string `json:"explanation"`
	CorrectLabel string `json:"correct_label"`
	QuestionID   string `json:"question_id"`
}
