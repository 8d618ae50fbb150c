package quiz

import (
	"encoding/json"
	"fmt"

	"github.com/abhisek/teenquiz/internal/store"
	"gorm.io/datatypes"
)

// itemToRow converts a validated Item to its persisted form. Options and
// rationales keep their wire shape as JSON columns.
func itemToRow(it *Item) (*store.Question, error) {
	opts, err := json.Marshal(it.Options)
	if err != nil {
		return nil, fmt.Errorf("marshal options: %w", err)
	}
	rationale, err := json.Marshal(it.DistractorRationale)
	if err != nil {
		return nil, fmt.Errorf("marshal rationale: %w", err)
	}

	return &store.Question{
		ID:                  it.ID,
		Topic:               it.Topic,
		Difficulty:          string(it.Difficulty),
		QuestionText:        it.Question,
		Options:             datatypes.JSON(opts),
		Explanation:         it.Explanation,
		DistractorRationale: datatypes.JSON(rationale),
		Source:              it.Source,
		Confidence:          it.EstimatedConfidence,
	}, nil
}

// rowToItem reconstructs an Item from its persisted form.
func rowToItem(q *store.Question) (*Item, error) {
	it := &Item{
		ID:                  q.ID,
		Topic:               q.Topic,
		Difficulty:          Difficulty(q.Difficulty),
		Question:            q.QuestionText,
		Explanation:         q.Explanation,
		Source:              q.Source,
		EstimatedConfidence: q.Confidence,
	}
	if err := json.Unmarshal(q.Options, &it.Options); err != nil {
		return nil, fmt.Errorf("unmarshal options for %s: %w", q.ID, err)
	}
	if err := json.Unmarshal(q.DistractorRationale, &it.DistractorRationale); err != nil {
		return nil, fmt.Errorf("unmarshal rationale for %s: %w", q.ID, err)
	}
	return it, nil
}
