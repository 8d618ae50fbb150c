package quiz

import (
	"errors"
	"strings"
)

// ErrNoPayload indicates no well-bracketed JSON array could be located
// in the model reply.
var ErrNoPayload = errors.New("no JSON payload found in model reply")

// ExtractPayload isolates the JSON array span from a raw model reply.
//
// Backends frequently wrap structured output in explanatory prose or
// markdown fences, and items contain nested arrays and objects, so a
// naive first-bracket-to-last-bracket scan would corrupt the span.
// Instead: strip fence markers, find the first top-level '[', then scan
// forward tracking bracket depth until it returns to zero. The scanner
// is string-literal aware so brackets inside option or rationale text do
// not confuse the depth count.
//
// Extraction is purely syntactic; it makes no judgment about whether the
// span parses as valid JSON.
func ExtractPayload(raw string) (string, error) {
	clean := stripFences(raw)

	start := strings.IndexByte(clean, '[')
	if start == -1 {
		return "", ErrNoPayload
	}

	depth := 0
	inString := false
	escaped := false
	for i := start; i < len(clean); i++ {
		c := clean[i]

		if inString {
			switch {
			case escaped:
				escaped = false
			case c == '\\':
				escaped = true
			case c == '"':
				inString = false
			}
			continue
		}

		switch c {
		case '"':
			inString = true
		case '[':
			depth++
		case ']':
			depth--
			if depth == 0 {
				return clean[start : i+1], nil
			}
		}
	}

	// Depth never returned to zero: unbalanced payload.
	return "", ErrNoPayload
}

// stripFences removes markdown code-fence markers the model may have
// wrapped around the payload.
func stripFences(s string) string {
	s = strings.ReplaceAll(s, "```json", "")
	s = strings.ReplaceAll(s, "```", "")
	return strings.TrimSpace(s)
}
