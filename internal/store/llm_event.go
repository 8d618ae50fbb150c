package store

import (
	"context"
	"fmt"

	"gorm.io/gorm"
)

// eventRepo implements EventRepo backed by gorm.
type eventRepo struct {
	db *gorm.DB
}

func (r *eventRepo) AppendLLMEvent(ctx context.Context, data LLMEventData) error {
	ev := LLMEvent{
		Provider:         data.Provider,
		Model:            data.Model,
		Purpose:          data.Purpose,
		InputTokens:      data.InputTokens,
		OutputTokens:     data.OutputTokens,
		LatencyMs:        data.LatencyMs,
		EstimatedCostUSD: data.EstimatedCostUSD,
		Success:          data.Success,
		ErrorMessage:     data.ErrorMessage,
	}
	if err := r.db.WithContext(ctx).Create(&ev).Error; err != nil {
		return fmt.Errorf("save LLM event: %w", err)
	}
	return nil
}

func (r *eventRepo) RecentLLMEvents(ctx context.Context, limit int) ([]LLMEvent, error) {
	if limit <= 0 {
		limit = 20
	}
	var events []LLMEvent
	err := r.db.WithContext(ctx).
		Order("created_at DESC").
		Limit(limit).
		Find(&events).Error
	if err != nil {
		return nil, fmt.Errorf("query LLM events: %w", err)
	}
	return events, nil
}

func (r *eventRepo) LLMUsageByPurpose(ctx context.Context) ([]PurposeUsage, error) {
	var rows []PurposeUsage
	err := r.db.WithContext(ctx).
		Model(&LLMEvent{}).
		Select("purpose, COUNT(*) AS calls, SUM(input_tokens) AS input_tokens, SUM(output_tokens) AS output_tokens, CAST(AVG(latency_ms) AS INTEGER) AS avg_latency_ms").
		Group("purpose").
		Order("purpose").
		Scan(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("aggregate usage by purpose: %w", err)
	}
	return rows, nil
}

func (r *eventRepo) LLMUsageByModel(ctx context.Context) ([]ModelUsage, error) {
	var rows []ModelUsage
	err := r.db.WithContext(ctx).
		Model(&LLMEvent{}).
		Select("model, COUNT(*) AS calls, SUM(input_tokens) AS input_tokens, SUM(output_tokens) AS output_tokens").
		Group("model").
		Order("model").
		Scan(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("aggregate usage by model: %w", err)
	}
	return rows, nil
}
