package quiz

import (
	"encoding/json"
	"fmt"
	"strings"
	"testing"
)

// elem builds a valid candidate element, then lets the caller mutate it.
func elem(mutate func(m map[string]any)) string {
	m := map[string]any{
		"id":         "generated-uuid",
		"question":   "How much sleep do teens need?",
		"options": []any{
			map[string]any{"label": "A", "text": "6 hours", "is_correct": false},
			map[string]any{"label": "B", "text": "8-10 hours", "is_correct": true},
			map[string]any{"label": "C", "text": "4 hours", "is_correct": false},
			map[string]any{"label": "D", "text": "12+ hours", "is_correct": false},
		},
		"explanation":          "Teens need 8-10 hours of sleep for healthy development.",
		"distractor_rationale": []any{"too little", "recommended range", "far too little", "usually too much"},
	}
	if mutate != nil {
		mutate(m)
	}
	b, _ := json.Marshal(m)
	return string(b)
}

func payloadOf(elems ...string) string {
	return "[" + strings.Join(elems, ",") + "]"
}

func TestParseItems_ValidElement(t *testing.T) {
	res := ParseItems(payloadOf(elem(nil)), "Sleep", DifficultyEasy)

	if len(res.Rejected) != 0 {
		t.Fatalf("unexpected rejections: %+v", res.Rejected)
	}
	if len(res.Accepted) != 1 {
		t.Fatalf("expected 1 accepted item, got %d", len(res.Accepted))
	}

	it := res.Accepted[0]
	if it.Topic != "Sleep" {
		t.Errorf("topic default not applied: %q", it.Topic)
	}
	if it.Difficulty != DifficultyEasy {
		t.Errorf("difficulty default not applied: %q", it.Difficulty)
	}
	if it.Source != SourceGenerated {
		t.Errorf("source default not applied: %q", it.Source)
	}
	if it.EstimatedConfidence != 0.8 {
		t.Errorf("confidence default not applied: %v", it.EstimatedConfidence)
	}
	if it.ID == "" || it.ID == placeholderID {
		t.Errorf("placeholder id must be replaced, got %q", it.ID)
	}
	label, ok := it.CorrectLabel()
	if !ok || label != "B" {
		t.Errorf("correct label = %q, want B", label)
	}
}

func TestParseItems_ProvidedFieldsKept(t *testing.T) {
	e := elem(func(m map[string]any) {
		m["id"] = "keep-this-id"
		m["topic"] = "Hydration"
		m["difficulty"] = "hard"
		m["source"] = "FROM_CONTEXT"
		m["estimated_confidence"] = 0.25
	})
	res := ParseItems(payloadOf(e), "Sleep", DifficultyEasy)

	if len(res.Accepted) != 1 {
		t.Fatalf("expected 1 accepted, rejections: %+v", res.Rejected)
	}
	it := res.Accepted[0]
	if it.ID != "keep-this-id" || it.Topic != "Hydration" || it.Difficulty != DifficultyHard {
		t.Errorf("explicit fields overwritten: %+v", it)
	}
	if it.Source != SourceFromContext || it.EstimatedConfidence != 0.25 {
		t.Errorf("explicit metadata overwritten: %+v", it)
	}
}

func TestParseItems_InvariantViolationsRejected(t *testing.T) {
	setCorrect := func(m map[string]any, flags [4]bool) {
		opts := m["options"].([]any)
		for i, f := range flags {
			opts[i].(map[string]any)["is_correct"] = f
		}
	}

	tests := []struct {
		name   string
		elem   string
		reason string
	}{
		{
			name:   "zero correct options",
			elem:   elem(func(m map[string]any) { setCorrect(m, [4]bool{false, false, false, false}) }),
			reason: "exactly one correct",
		},
		{
			name:   "two correct options",
			elem:   elem(func(m map[string]any) { setCorrect(m, [4]bool{true, true, false, false}) }),
			reason: "exactly one correct",
		},
		{
			name: "duplicate option texts",
			elem: elem(func(m map[string]any) {
				m["options"].([]any)[0].(map[string]any)["text"] = "8-10 hours"
			}),
			reason: "duplicate option text",
		},
		{
			name: "three options",
			elem: elem(func(m map[string]any) {
				m["options"] = m["options"].([]any)[:3]
			}),
			reason: "expected 4 options",
		},
		{
			name: "duplicate labels",
			elem: elem(func(m map[string]any) {
				m["options"].([]any)[3].(map[string]any)["label"] = "A"
			}),
			reason: "duplicate option label",
		},
		{
			name: "label outside alphabet",
			elem: elem(func(m map[string]any) {
				m["options"].([]any)[3].(map[string]any)["label"] = "E"
			}),
			reason: "invalid option label",
		},
		{
			name: "short rationale list",
			elem: elem(func(m map[string]any) {
				m["distractor_rationale"] = []any{"only", "three", "entries"}
			}),
			reason: "distractor rationales",
		},
		{
			name: "question too long",
			elem: elem(func(m map[string]any) {
				m["question"] = strings.Repeat("x", MaxQuestionLen+1)
			}),
			reason: "question exceeds",
		},
		{
			name: "option too long",
			elem: elem(func(m map[string]any) {
				m["options"].([]any)[2].(map[string]any)["text"] = strings.Repeat("y", MaxOptionLen+1)
			}),
			reason: "exceeds 80",
		},
		{
			name: "explanation too long",
			elem: elem(func(m map[string]any) {
				m["explanation"] = strings.Repeat("z", MaxExplanationLen+1)
			}),
			reason: "explanation exceeds",
		},
		{
			name: "confidence out of range",
			elem: elem(func(m map[string]any) {
				m["estimated_confidence"] = 1.5
			}),
			reason: "estimated_confidence",
		},
		{
			name: "bad difficulty token",
			elem: elem(func(m map[string]any) {
				m["difficulty"] = "impossible"
			}),
			reason: "invalid difficulty",
		},
		{
			name: "missing required field",
			elem: `{"question":"q?","options":[],"explanation":"e"}`,
			reason: "shape check failed",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := ParseItems(payloadOf(tt.elem), "Sleep", DifficultyEasy)
			if len(res.Accepted) != 0 {
				t.Fatalf("expected rejection, got accepted: %+v", res.Accepted)
			}
			if len(res.Rejected) != 1 {
				t.Fatalf("expected 1 rejection, got %+v", res.Rejected)
			}
			if !strings.Contains(res.Rejected[0].Reason, tt.reason) {
				t.Errorf("reason = %q, want substring %q", res.Rejected[0].Reason, tt.reason)
			}
		})
	}
}

func TestParseItems_PartialBatch(t *testing.T) {
	bad := elem(func(m map[string]any) {
		m["options"] = m["options"].([]any)[:2]
	})
	good2 := elem(func(m map[string]any) { m["question"] = "Second valid question?" })
	good3 := elem(func(m map[string]any) { m["question"] = "Third valid question?" })

	res := ParseItems(payloadOf(elem(nil), bad, good2, bad, good3), "Sleep", DifficultyEasy)

	if len(res.Accepted) != 3 {
		t.Fatalf("expected 3 accepted, got %d", len(res.Accepted))
	}
	if len(res.Rejected) != 2 {
		t.Fatalf("expected 2 rejected, got %d", len(res.Rejected))
	}
	// Order preserved from source payload.
	if res.Accepted[1].Question != "Second valid question?" ||
		res.Accepted[2].Question != "Third valid question?" {
		t.Errorf("payload order not preserved: %+v", res.Accepted)
	}
	if res.Rejected[0].Index != 1 || res.Rejected[1].Index != 3 {
		t.Errorf("rejection indexes wrong: %+v", res.Rejected)
	}
}

func TestParseItems_UnusablePayload(t *testing.T) {
	tests := []string{
		"not json at all",
		`{"a": 1}`,
		`"just a string"`,
		"",
	}
	for i, payload := range tests {
		t.Run(fmt.Sprintf("case_%d", i), func(t *testing.T) {
			res := ParseItems(payload, "Sleep", DifficultyEasy)
			if len(res.Accepted) != 0 {
				t.Fatalf("expected no items for %q", payload)
			}
			if len(res.Rejected) != 1 || res.Rejected[0].Index != -1 {
				t.Fatalf("expected one whole-payload rejection, got %+v", res.Rejected)
			}
		})
	}
}

func TestParseItems_FreshIDsForSentinels(t *testing.T) {
	legacy := elem(func(m map[string]any) {
		m["id"] = "a1b2c3d4-e5f6-7890-1234-567890abcdef"
		m["question"] = "Legacy sentinel question?"
	})
	missing := elem(func(m map[string]any) {
		delete(m, "id")
		m["question"] = "Missing id question?"
	})

	res := ParseItems(payloadOf(legacy, missing), "Sleep", DifficultyEasy)
	if len(res.Accepted) != 2 {
		t.Fatalf("expected 2 accepted, rejections: %+v", res.Rejected)
	}
	for _, it := range res.Accepted {
		if it.ID == "" || it.ID == placeholderID || legacyPlaceholderIDs[it.ID] {
			t.Errorf("sentinel id not replaced: %q", it.ID)
		}
	}
	if res.Accepted[0].ID == res.Accepted[1].ID {
		t.Error("fresh ids must be unique")
	}
}
