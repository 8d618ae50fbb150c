package quiz

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/abhisek/teenquiz/internal/llm"
	"github.com/abhisek/teenquiz/internal/store"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Service orchestrates the MCQ pipeline: prompt → backend → extraction →
// validation → persistence, plus the retrieval, attempt, and analytics
// operations.
//
// Failures internal to the generate pipeline (backend, extraction,
// per-item validation, duplicates) are absorbed: the caller sees only a
// result list, possibly empty. Input and lookup failures are surfaced
// explicitly. Nothing here retries automatically; re-issuing a failed
// generate is the caller's decision.
type Service struct {
	provider llm.Provider
	st       *store.Store
	log      *zap.Logger
	cfg      Config
}

// NewService creates a Service.
func NewService(provider llm.Provider, st *store.Store, log *zap.Logger, cfg Config) *Service {
	return &Service{provider: provider, st: st, log: log, cfg: cfg}
}

// Generate runs the full pipeline for one request and returns the items
// that were newly persisted, in payload order. Partial success (some
// items stored, others rejected) is the expected steady state.
func (s *Service) Generate(ctx context.Context, req GenerateRequest) ([]Item, error) {
	req.Topic = strings.TrimSpace(req.Topic)
	if err := req.Validate(); err != nil {
		return nil, err
	}

	ctx = llm.WithPurpose(ctx, "mcq-gen")

	resp, err := s.provider.Generate(ctx, llm.Request{
		System:      systemPrompt,
		Messages:    []llm.Message{{Role: llm.RoleUser, Content: buildUserMessage(req)}},
		MaxTokens:   s.cfg.MaxTokens,
		Temperature: s.cfg.Temperature,
	})
	if err != nil {
		s.log.Warn("mcq backend failure", zap.String("topic", req.Topic), zap.Error(err))
		return []Item{}, nil
	}
	if resp.Text == "" {
		s.log.Warn("mcq backend returned no text", zap.String("topic", req.Topic))
		return []Item{}, nil
	}

	payload, err := ExtractPayload(resp.Text)
	if err != nil {
		s.log.Warn("mcq extraction failure",
			zap.String("topic", req.Topic),
			zap.Int("reply_len", len(resp.Text)),
		)
		return []Item{}, nil
	}

	batch := ParseItems(payload, req.Topic, req.Difficulty)
	for _, rej := range batch.Rejected {
		s.log.Warn("mcq candidate rejected",
			zap.String("topic", req.Topic),
			zap.Int("index", rej.Index),
			zap.String("reason", rej.Reason),
		)
	}

	stored := make([]Item, 0, len(batch.Accepted))
	for _, it := range batch.Accepted {
		row, err := itemToRow(&it)
		if err != nil {
			s.log.Warn("mcq item not storable", zap.String("id", it.ID), zap.Error(err))
			continue
		}
		saved, err := s.st.Questions().Save(ctx, row)
		if err != nil {
			s.log.Warn("mcq store failure", zap.String("id", it.ID), zap.Error(err))
			continue
		}
		if !saved {
			s.log.Info("mcq duplicate dropped", zap.String("id", it.ID))
			continue
		}
		stored = append(stored, it)
	}

	s.log.Info("mcq generate complete",
		zap.String("topic", req.Topic),
		zap.Int("requested", req.Count),
		zap.Int("accepted", len(batch.Accepted)),
		zap.Int("rejected", len(batch.Rejected)),
		zap.Int("stored", len(stored)),
	)

	return stored, nil
}

// NextQuestion returns the most-recently-created item matching the
// optional filters. Returns ErrNotFound when nothing matches.
func (s *Service) NextQuestion(ctx context.Context, topic, difficulty string) (*Item, error) {
	diff := ""
	if difficulty != "" {
		d, err := ParseDifficulty(difficulty)
		if err != nil {
			return nil, &InputError{Field: "difficulty", Message: err.Error()}
		}
		diff = string(d)
	}

	row, err := s.st.Questions().Next(ctx, topic, diff)
	if err != nil {
		return nil, fmt.Errorf("next question: %w", err)
	}
	if row == nil {
		return nil, ErrNotFound
	}
	return rowToItem(row)
}

// SubmitAttempt records one answer submission and returns feedback.
// A missing question is a client error, not a transient fault; there are
// no retry semantics here.
func (s *Service) SubmitAttempt(ctx context.Context, questionID, selected, userID string) (*AttemptFeedback, error) {
	if !ValidLabel(selected) {
		return nil, &InputError{Field: "selected", Message: "must be A, B, C, or D"}
	}

	row, err := s.st.Questions().GetByID(ctx, questionID)
	if err != nil {
		return nil, fmt.Errorf("lookup question: %w", err)
	}
	if row == nil {
		return nil, ErrNotFound
	}

	it, err := rowToItem(row)
	if err != nil {
		return nil, err
	}

	correctLabel, ok := it.CorrectLabel()
	if !ok {
		// Unreachable for validated items; guard anyway.
		return nil, fmt.Errorf("question %s has no correct option", questionID)
	}
	correct := selected == correctLabel

	err = s.st.Attempts().Record(ctx, &store.Attempt{
		ID:         uuid.NewString(),
		QuestionID: questionID,
		Selected:   selected,
		Correct:    correct,
		UserID:     userID,
	})
	if errors.Is(err, store.ErrQuestionNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("record attempt: %w", err)
	}

	return &AttemptFeedback{
		Correct:      correct,
		Explanation:  it.Explanation,
		CorrectLabel: correctLabel,
		QuestionID:   questionID,
	}, nil
}

// Analytics returns aggregate quiz statistics, optionally narrowed to a
// topic.
func (s *Service) Analytics(ctx context.Context, topic string) (*store.Analytics, error) {
	return s.st.Analytics(ctx, topic)
}
