package selection

import (
	"context"
	"fmt"
	"math/rand"
	"time"

	"assessment-service/internal/models"
)

// Selector builds the ordered question set for a new session.
type Selector struct {
	bank   QuestionBank
	config *Config
	rand   *rand.Rand
}

func NewSelector(bank QuestionBank, config *Config) *Selector {
	return NewSelectorWithSeed(bank, config, time.Now().UnixNano())
}

// NewSelectorWithSeed pins the shuffle order for reproducible tests.
func NewSelectorWithSeed(bank QuestionBank, config *Config, seed int64) *Selector {
	if config == nil {
		config = DefaultConfig()
	}
	return &Selector{
		bank:   bank,
		config: config,
		rand:   rand.New(rand.NewSource(seed)),
	}
}

// BuildQuestionSet resolves the level to a difficulty range, draws a pool with
// range fallback, shuffles and truncates to targetCount. An empty active pool
// yields an empty set; the caller treats that as "evaluate immediately".
func (s *Selector) BuildQuestionSet(ctx context.Context, level string, targetCount int) ([]string, error) {
	rng := s.resolveRange(level)

	var pool []models.Question
	var err error
	if len(s.config.CategoryQuotas) > 0 {
		pool, err = s.bucketedPool(ctx, rng)
	} else {
		pool, err = s.flatPool(ctx, rng, targetCount)
	}
	if err != nil {
		return nil, err
	}

	ids := make([]string, len(pool))
	for i, q := range pool {
		ids[i] = q.ID
	}
	// Final shuffle so the presented order never reveals category grouping.
	s.rand.Shuffle(len(ids), func(i, j int) {
		ids[i], ids[j] = ids[j], ids[i]
	})

	if targetCount > 0 && len(ids) > targetCount {
		ids = ids[:targetCount]
	}
	return ids, nil
}

func (s *Selector) resolveRange(level string) DifficultyRange {
	if rng, ok := s.config.LevelRanges[level]; ok {
		return rng
	}
	return s.config.DefaultRange
}

func (s *Selector) sufficiencyThreshold(targetCount int) int {
	if s.config.FallbackMode == FallbackTargetCount {
		return targetCount
	}
	return s.config.MinimumPool
}

// flatPool queries the range-filtered active pool, falling back to the whole
// active pool when too few questions match.
func (s *Selector) flatPool(ctx context.Context, rng DifficultyRange, targetCount int) ([]models.Question, error) {
	filtered, err := s.bank.QueryActive(ctx, "", rng.Min, rng.Max)
	if err != nil {
		return nil, fmt.Errorf("query active questions: %w", err)
	}
	if len(filtered) >= s.sufficiencyThreshold(targetCount) {
		return filtered, nil
	}
	full, err := s.bank.QueryActive(ctx, "", 0, 0)
	if err != nil {
		return nil, fmt.Errorf("query fallback pool: %w", err)
	}
	return full, nil
}

// bucketedPool draws a fixed quota per category, applying the range filter and
// fallback independently within each bucket.
func (s *Selector) bucketedPool(ctx context.Context, rng DifficultyRange) ([]models.Question, error) {
	var pool []models.Question
	for category, quota := range s.config.CategoryQuotas {
		if quota <= 0 {
			continue
		}
		candidates, err := s.bank.QueryActive(ctx, category, rng.Min, rng.Max)
		if err != nil {
			return nil, fmt.Errorf("query category %q: %w", category, err)
		}
		if len(candidates) < quota {
			candidates, err = s.bank.QueryActive(ctx, category, 0, 0)
			if err != nil {
				return nil, fmt.Errorf("query category %q fallback: %w", category, err)
			}
		}
		s.rand.Shuffle(len(candidates), func(i, j int) {
			candidates[i], candidates[j] = candidates[j], candidates[i]
		})
		if len(candidates) > quota {
			candidates = candidates[:quota]
		}
		pool = append(pool, candidates...)
	}
	return pool, nil
}
