package quiz

import (
	"fmt"
	"strings"
)

const systemPrompt = `You are creating multiple choice quizzes for teenagers.

Rules:
- Keep question and option text short, clear, and age-appropriate.
- Avoid sensitive topics.
- Distractors should be plausible mistakes, not random values.
- Return only the JSON array described in the request, with no markdown
  formatting and no surrounding prose.`

// buildUserMessage renders a generation request into the instruction
// payload for the completion backend. Building is pure and deterministic:
// same inputs, same payload.
func buildUserMessage(req GenerateRequest) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Create a multiple choice quiz about %q at %s difficulty.\n", req.Topic, req.Difficulty)
	if req.Context != "" {
		b.WriteString("\nAdditional context:\n")
		b.WriteString(req.Context)
		b.WriteString("\n")
	}

	fmt.Fprintf(&b, "\nGenerate exactly %d question(s) and return them as a valid JSON array.\n", req.Count)

	fmt.Fprintf(&b, `
CRITICAL REQUIREMENTS:
1. Return ONLY valid JSON - no explanations, no markdown formatting
2. Each question has exactly %d options labeled A, B, C, D
3. Exactly ONE option marked correct (is_correct: true); all others false
4. distractor_rationale has exactly %d entries, one per option in order
5. question under %d characters, each option under %d characters, explanation under %d characters

JSON FORMAT (copy exactly):
`, OptionCount, OptionCount, MaxQuestionLen, MaxOptionLen, MaxExplanationLen)

	fmt.Fprintf(&b, `[
  {
    "id": "%s",
    "topic": %q,
    "difficulty": %q,
    "question": "Your question here",
    "options": [
      {"label": "A", "text": "Option A text", "is_correct": false},
      {"label": "B", "text": "Option B text", "is_correct": true},
      {"label": "C", "text": "Option C text", "is_correct": false},
      {"label": "D", "text": "Option D text", "is_correct": false}
    ],
    "explanation": "Why B is correct",
    "distractor_rationale": ["Why A is tempting", "Why B is right", "Why C is tempting", "Why D is tempting"],
    "source": "GENERATED",
    "estimated_confidence": 0.85
  }
]
`, placeholderID, req.Topic, req.Difficulty)

	b.WriteString("\nReturn only the JSON array above with your content filled in.")

	return b.String()
}
