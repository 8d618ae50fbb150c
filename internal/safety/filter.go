// Package safety screens chat traffic for content that is not
// appropriate for a teen audience. Both user input and model output
// pass through the same filter; the model's own safety settings are a
// second, independent layer.
package safety

import (
	"regexp"
	"strings"
)

// category is one class of disallowed content with its match pattern.
type category struct {
	name string
	re   *regexp.Regexp
}

var categories = []category{
	{"profanity", regexp.MustCompile(`(?i)\b(fuck|shit|damn|bitch|asshole|cunt|pussy|dick|cock)\b`)},
	{"drugs", regexp.MustCompile(`(?i)\b(weed|marijuana|cocaine|heroin|meth|ecstasy|molly|get drugs|buy drugs)\b`)},
	{"sexual", regexp.MustCompile(`(?i)\b(sex|porn|naked|nude|orgasm|masturbat)\b`)},
	{"violence", regexp.MustCompile(`(?i)\b(kill|murder|suicide|self-harm|cut|die)\b`)},
	{"hate", regexp.MustCompile(`(?i)\b(racist|homophob|transphob|sexist)\b`)},
}

// safeTopics are conversation areas the redirect message can name.
var safeTopics = []string{
	"school", "homework", "friends", "family", "hobbies",
	"sports", "music", "movies", "books", "games",
	"health", "fitness", "nutrition", "mental health",
	"career", "college", "future", "goals", "dreams",
}

const redirectMessage = "I'm here to help with schoolwork, hobbies, and positive topics. What would you like to talk about?"

// Filter screens text against the disallowed-content categories.
type Filter struct{}

// NewFilter creates a Filter.
func NewFilter() *Filter {
	return &Filter{}
}

// IsSafe reports whether the text matches no disallowed category.
func (f *Filter) IsSafe(text string) bool {
	for _, c := range categories {
		if c.re.MatchString(text) {
			return false
		}
	}
	return true
}

// Violations returns the names of all categories the text matches, in
// category order. Empty for safe text.
func (f *Filter) Violations(text string) []string {
	var out []string
	for _, c := range categories {
		if c.re.MatchString(text) {
			out = append(out, c.name)
		}
	}
	return out
}

// FilterResponse passes safe text through unchanged. Unsafe text is
// replaced with a redirect; when the original mentions a known safe
// topic, the redirect names that topic so the conversation can
// continue. The bool reports whether a replacement happened.
func (f *Filter) FilterResponse(text string) (string, bool) {
	if f.IsSafe(text) {
		return text, false
	}
	lower := strings.ToLower(text)
	for _, topic := range safeTopics {
		if strings.Contains(lower, topic) {
			return "That's an interesting topic! I'd be happy to help you learn more about " +
				topic + " in a positive way.", true
		}
	}
	return redirectMessage, true
}
