package store

import (
	"context"
	"fmt"
)

// Analytics returns aggregate counts for questions and attempts.
// An empty topic aggregates across all topics.
func (s *Store) Analytics(ctx context.Context, topic string) (*Analytics, error) {
	out := &Analytics{
		QuestionsByTopic: []TopicDifficultyCount{},
		AttemptStats:     []TopicCorrectness{},
	}

	qq := s.db.WithContext(ctx).Model(&Question{}).
		Select("topic, difficulty, COUNT(*) as count").
		Group("topic, difficulty").
		Order("topic, difficulty")
	if topic != "" {
		qq = qq.Where("topic = ?", topic)
	}
	if err := qq.Scan(&out.QuestionsByTopic).Error; err != nil {
		return nil, fmt.Errorf("question counts: %w", err)
	}

	aq := s.db.WithContext(ctx).Model(&Attempt{}).
		Select("questions.topic as topic, attempts.correct as correct, COUNT(*) as count").
		Joins("JOIN questions ON questions.id = attempts.question_id").
		Group("questions.topic, attempts.correct").
		Order("questions.topic, attempts.correct")
	if topic != "" {
		aq = aq.Where("questions.topic = ?", topic)
	}
	if err := aq.Scan(&out.AttemptStats).Error; err != nil {
		return nil, fmt.Errorf("attempt counts: %w", err)
	}

	return out, nil
}
