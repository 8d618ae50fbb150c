package quiz

import (
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
)

// placeholderID is the id sentinel embedded in the prompt's example.
// Models copy it verbatim often enough that it must never be persisted.
const placeholderID = "generated-uuid"

// legacyPlaceholderIDs are sentinels from earlier prompt revisions,
// still seen from models with stale fine-tuning data.
var legacyPlaceholderIDs = map[string]bool{
	"a1b2c3d4-e5f6-7890-1234-567890abcdef": true,
}

// Rejection records why one candidate element was dropped from a batch.
// Index is the element's position in the payload, or -1 when the whole
// payload was unusable.
type Rejection struct {
	Index  int
	Reason string
}

// BatchResult is the outcome of validating one extracted payload:
// the accepted items in payload order, and the per-element rejections.
// Only Accepted crosses the service boundary; Rejected exists for
// diagnosability.
type BatchResult struct {
	Accepted []Item
	Rejected []Rejection
}

// itemPayload is the raw wire shape of one candidate element before
// defaults are applied.
type itemPayload struct {
	ID                  string   `json:"id"`
	Topic               string   `json:"topic"`
	Difficulty          string   `json:"difficulty"`
	Question            string   `json:"question"`
	Options             []Option `json:"options"`
	Explanation         string   `json:"explanation"`
	DistractorRationale []string `json:"distractor_rationale"`
	Source              string   `json:"source"`
	EstimatedConfidence *float64 `json:"estimated_confidence"`
}

// ParseItems parses an extracted payload into validated quiz items.
//
// Generation is probabilistic and partially unreliable, so the fold is
// tolerant of per-element failure: a bad element is recorded and
// skipped, never propagated. A request for N items may legitimately
// yield fewer than N accepted items, down to zero.
func ParseItems(payload string, topic string, difficulty Difficulty) BatchResult {
	var res BatchResult

	var elems []json.RawMessage
	if err := json.Unmarshal([]byte(payload), &elems); err != nil {
		res.Rejected = append(res.Rejected, Rejection{
			Index:  -1,
			Reason: fmt.Sprintf("payload is not a JSON list: %v", err),
		})
		return res
	}

	shape, err := itemShapeSchema()
	if err != nil {
		res.Rejected = append(res.Rejected, Rejection{Index: -1, Reason: err.Error()})
		return res
	}

	for i, elem := range elems {
		var v any
		if err := json.Unmarshal(elem, &v); err != nil {
			res.Rejected = append(res.Rejected, Rejection{Index: i, Reason: fmt.Sprintf("invalid JSON: %v", err)})
			continue
		}
		if err := shape.Validate(v); err != nil {
			res.Rejected = append(res.Rejected, Rejection{Index: i, Reason: fmt.Sprintf("shape check failed: %v", err)})
			continue
		}

		var p itemPayload
		if err := json.Unmarshal(elem, &p); err != nil {
			res.Rejected = append(res.Rejected, Rejection{Index: i, Reason: fmt.Sprintf("decode element: %v", err)})
			continue
		}

		it, err := buildItem(p, topic, difficulty)
		if err != nil {
			res.Rejected = append(res.Rejected, Rejection{Index: i, Reason: err.Error()})
			continue
		}

		res.Accepted = append(res.Accepted, *it)
	}

	return res
}

// buildItem applies defaults to a decoded element and enforces the
// data-model invariants. A returned error means the candidate must be
// discarded before persistence; no partial item is ever kept.
func buildItem(p itemPayload, topic string, difficulty Difficulty) (*Item, error) {
	if p.Topic == "" {
		p.Topic = topic
	}
	if p.Difficulty == "" {
		p.Difficulty = string(difficulty)
	}
	if p.Source == "" {
		p.Source = SourceGenerated
	}
	confidence := 0.8
	if p.EstimatedConfidence != nil {
		confidence = *p.EstimatedConfidence
	}
	if p.ID == "" || p.ID == placeholderID || legacyPlaceholderIDs[p.ID] {
		p.ID = uuid.NewString()
	}

	diff, err := ParseDifficulty(p.Difficulty)
	if err != nil {
		return nil, err
	}

	it := &Item{
		ID:                  p.ID,
		Topic:               p.Topic,
		Difficulty:          diff,
		Question:            p.Question,
		Options:             p.Options,
		Explanation:         p.Explanation,
		DistractorRationale: p.DistractorRationale,
		Source:              p.Source,
		EstimatedConfidence: confidence,
	}

	if err := checkItem(it); err != nil {
		return nil, err
	}
	return it, nil
}

// checkItem enforces the structural invariants on a candidate item.
func checkItem(it *Item) error {
	if it.Question == "" {
		return fmt.Errorf("question is empty")
	}
	if len(it.Question) > MaxQuestionLen {
		return fmt.Errorf("question exceeds %d characters", MaxQuestionLen)
	}
	if len(it.Explanation) > MaxExplanationLen {
		return fmt.Errorf("explanation exceeds %d characters", MaxExplanationLen)
	}
	if it.Source != SourceFromContext && it.Source != SourceGenerated {
		return fmt.Errorf("source must be %q or %q", SourceFromContext, SourceGenerated)
	}
	if it.EstimatedConfidence < 0 || it.EstimatedConfidence > 1 {
		return fmt.Errorf("estimated_confidence must be in [0,1]")
	}

	if len(it.Options) != OptionCount {
		return fmt.Errorf("expected %d options, got %d", OptionCount, len(it.Options))
	}
	if len(it.DistractorRationale) != OptionCount {
		return fmt.Errorf("expected %d distractor rationales, got %d", OptionCount, len(it.DistractorRationale))
	}

	correct := 0
	seenLabels := map[string]bool{}
	seenTexts := map[string]bool{}
	for _, o := range it.Options {
		if !ValidLabel(o.Label) {
			return fmt.Errorf("invalid option label %q", o.Label)
		}
		if seenLabels[o.Label] {
			return fmt.Errorf("duplicate option label %q", o.Label)
		}
		seenLabels[o.Label] = true

		if o.Text == "" {
			return fmt.Errorf("option %s text is empty", o.Label)
		}
		if len(o.Text) > MaxOptionLen {
			return fmt.Errorf("option %s text exceeds %d characters", o.Label, MaxOptionLen)
		}
		if seenTexts[o.Text] {
			return fmt.Errorf("duplicate option text %q", o.Text)
		}
		seenTexts[o.Text] = true

		if o.IsCorrect {
			correct++
		}
	}
	if correct != 1 {
		return fmt.Errorf("expected exactly one correct option, got %d", correct)
	}

	return nil
}
