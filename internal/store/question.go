package store

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"
)

// questionRepo implements QuestionRepo backed by gorm.
type questionRepo struct {
	db *gorm.DB
}

func (r *questionRepo) Save(ctx context.Context, q *Question) (bool, error) {
	saved := false
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&Question{}).
			Where("question = ?", q.QuestionText).
			Count(&count).Error; err != nil {
			return fmt.Errorf("check duplicate: %w", err)
		}
		if count > 0 {
			return nil
		}
		if err := tx.Create(q).Error; err != nil {
			return fmt.Errorf("insert question: %w", err)
		}
		saved = true
		return nil
	})
	if err != nil {
		return false, err
	}
	return saved, nil
}

func (r *questionRepo) Next(ctx context.Context, topic, difficulty string) (*Question, error) {
	q := r.db.WithContext(ctx).Model(&Question{})
	if topic != "" {
		q = q.Where("topic = ?", topic)
	}
	if difficulty != "" {
		q = q.Where("difficulty = ?", difficulty)
	}

	var out Question
	err := q.Order("created_at DESC").First(&out).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("next question: %w", err)
	}
	return &out, nil
}

func (r *questionRepo) GetByID(ctx context.Context, id string) (*Question, error) {
	var out Question
	err := r.db.WithContext(ctx).First(&out, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get question %s: %w", id, err)
	}
	return &out, nil
}
