package store

import (
	"context"
	"fmt"

	"gorm.io/gorm"
)

// attemptRepo implements AttemptRepo backed by gorm.
type attemptRepo struct {
	db *gorm.DB
}

func (r *attemptRepo) Record(ctx context.Context, a *Attempt) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&Question{}).
			Where("id = ?", a.QuestionID).
			Count(&count).Error; err != nil {
			return fmt.Errorf("check question exists: %w", err)
		}
		if count == 0 {
			return ErrQuestionNotFound
		}
		if err := tx.Create(a).Error; err != nil {
			return fmt.Errorf("insert attempt: %w", err)
		}
		return nil
	})
}
