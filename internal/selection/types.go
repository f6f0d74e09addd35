package selection

import (
	"context"

	"assessment-service/internal/models"
)

// QuestionBank is the read-only query surface the selector needs. A zero
// min/max pair means no difficulty filter.
type QuestionBank interface {
	QueryActive(ctx context.Context, category string, minDifficulty, maxDifficulty int) ([]models.Question, error)
}

type DifficultyRange struct {
	Min int `json:"min"`
	Max int `json:"max"`
}

// FallbackMode controls when the difficulty filter is abandoned in favour of
// the full active pool. Both variants exist across assessment configurations.
type FallbackMode string

const (
	// FallbackAbsoluteMinimum drops the filter when fewer than MinimumPool
	// questions match the range.
	FallbackAbsoluteMinimum FallbackMode = "absolute_minimum"
	// FallbackTargetCount drops the filter when fewer questions match than
	// were requested.
	FallbackTargetCount FallbackMode = "target_count"
)

type Config struct {
	LevelRanges  map[string]DifficultyRange `json:"level_ranges"`
	DefaultRange DifficultyRange            `json:"default_range"`
	FallbackMode FallbackMode               `json:"fallback_mode"`
	// MinimumPool is the sufficiency threshold for FallbackAbsoluteMinimum.
	MinimumPool int `json:"minimum_pool"`
	// CategoryQuotas, when set, switches the selector to bucketed mode with a
	// fixed per-category draw before the global shuffle.
	CategoryQuotas map[string]int `json:"category_quotas,omitempty"`
}

func DefaultConfig() *Config {
	return &Config{
		LevelRanges: map[string]DifficultyRange{
			"junior": {Min: 1, Max: 2},
			"mid":    {Min: 2, Max: 4},
			"senior": {Min: 3, Max: 5},
		},
		DefaultRange: DifficultyRange{Min: 2, Max: 4},
		FallbackMode: FallbackAbsoluteMinimum,
		MinimumPool:  3,
	}
}
