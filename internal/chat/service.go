// Package chat implements the teen health chat pipeline: topic
// detection, specialized prompting, response filtering, caching, and
// per-user conversation context.
package chat

import (
	"context"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/abhisek/teenquiz/internal/cache"
	"github.com/abhisek/teenquiz/internal/llm"
	"github.com/abhisek/teenquiz/internal/safety"
)

// MaxMessageLen is the longest accepted user message.
const MaxMessageLen = 1000

const (
	fallbackEmpty = "I'm sorry, I couldn't generate a response. Please try rephrasing your question."
	fallbackError = "I'm experiencing technical difficulties. Please try again later."
)

// RequestError is a client-input failure; the message is safe to show.
type RequestError struct {
	Message string
}

func (e *RequestError) Error() string { return e.Message }

// Reply is the outcome of one chat turn.
type Reply struct {
	Response  string   `json:"response"`
	IsSafe    bool     `json:"is_safe"`
	Filtered  bool     `json:"filtered"`
	Cached    bool     `json:"cached"`
	Topic     string   `json:"topic,omitempty"`
	FollowUps []string `json:"follow_up_questions,omitempty"`
}

// Service runs chat turns against an LLM backend with safety filtering
// on both sides of the call.
type Service struct {
	provider llm.Provider
	filter   *safety.Filter
	cache    *cache.Cache
	history  *historyStore
	log      *zap.Logger
	cfg      Config
}

// Config holds chat generation parameters.
type Config struct {
	MaxTokens   int
	Temperature float64
}

// DefaultConfig returns the chat defaults.
func DefaultConfig() Config {
	return Config{MaxTokens: 1024, Temperature: 0.7}
}

// NewService creates a chat Service.
func NewService(provider llm.Provider, filter *safety.Filter, c *cache.Cache, log *zap.Logger, cfg Config) *Service {
	return &Service{
		provider: provider,
		filter:   filter,
		cache:    c,
		history:  newHistoryStore(),
		log:      log,
		cfg:      cfg,
	}
}

// IdentifyTopic returns the first health topic whose keywords appear in
// the message, or "" when none match.
func IdentifyTopic(message string) Topic {
	lower := strings.ToLower(message)
	for _, t := range topicOrder {
		for _, kw := range topicKeywords[t] {
			if strings.Contains(lower, kw) {
				return t
			}
		}
	}
	return ""
}

// FollowUpQuestions returns the suggested questions for a topic, or nil
// for an unknown topic.
func FollowUpQuestions(t Topic) []string {
	return followUps[t]
}

// Topics returns all health topics in listing order.
func Topics() []Topic {
	return topicOrder
}

// TopicDescription returns the human-readable label for a topic.
func TopicDescription(t Topic) string {
	return topicDescriptions[t]
}

// Respond runs one chat turn. Client-input failures return a
// RequestError; backend failures degrade to a canned reply rather than
// an error, so the conversation never hard-fails on the model.
func (s *Service) Respond(ctx context.Context, message, userID string) (*Reply, error) {
	if strings.TrimSpace(message) == "" {
		return nil, &RequestError{Message: "Message cannot be empty"}
	}
	if len(message) > MaxMessageLen {
		return nil, &RequestError{Message: "Message too long (max 1000 characters)"}
	}
	if !s.filter.IsSafe(message) {
		s.log.Warn("unsafe chat input blocked",
			zap.Strings("violations", s.filter.Violations(message)),
		)
		return nil, &RequestError{
			Message: "Your message contains inappropriate content. Please keep conversations appropriate.",
		}
	}

	if cached, ok := s.cache.Get(ctx, message); ok {
		s.log.Info("chat cache hit")
		return &Reply{Response: cached, IsSafe: true, Cached: true}, nil
	}

	topic := IdentifyTopic(message)
	prompt := buildPrompt(topic, message, s.history.promptContext(userID))

	ctx = llm.WithPurpose(ctx, "chat")
	resp, err := s.provider.Generate(ctx, llm.Request{
		Messages:    []llm.Message{{Role: llm.RoleUser, Content: prompt}},
		MaxTokens:   s.cfg.MaxTokens,
		Temperature: s.cfg.Temperature,
	})
	if err != nil {
		s.log.Warn("chat backend failure", zap.Error(err))
		return &Reply{Response: fallbackError, IsSafe: true}, nil
	}
	text := strings.TrimSpace(resp.Text)
	if text == "" {
		return &Reply{Response: fallbackEmpty, IsSafe: true}, nil
	}

	filtered, wasFiltered := s.filter.FilterResponse(text)
	if wasFiltered {
		s.log.Info("chat response filtered for safety")
	}

	s.history.append(userID, exchange{
		User:      message,
		Assistant: filtered,
		Topic:     topic,
		At:        time.Now(),
	})
	s.cache.Set(ctx, message, filtered)

	reply := &Reply{
		Response: filtered,
		IsSafe:   true,
		Filtered: wasFiltered,
		Topic:    string(topic),
	}
	if topic != "" {
		fu := followUps[topic]
		if len(fu) > 3 {
			fu = fu[:3]
		}
		reply.FollowUps = fu
	}
	return reply, nil
}

// FollowUps suggests questions for a user. An explicit topic wins;
// otherwise the user's most recent identified topic is used, with
// generic suggestions as the fallback.
func (s *Service) FollowUps(userID string, topic Topic) ([]string, Topic) {
	if topic != "" {
		if qs, ok := followUps[topic]; ok {
			return capQuestions(qs), topic
		}
		return nil, topic
	}

	if s.history.known(userID) {
		if last := s.history.lastTopic(userID); last != "" {
			return capQuestions(followUps[last]), last
		}
		return capQuestions(recentTopicFollowUps), "general"
	}
	return capQuestions(generalFollowUps), "general"
}

func capQuestions(qs []string) []string {
	if len(qs) > 5 {
		return qs[:5]
	}
	return qs
}
