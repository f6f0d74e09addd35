package selection

import (
	"context"
	"fmt"
	"testing"

	"assessment-service/internal/models"
)

// fakeBank filters an in-memory question list the same way the Mongo
// repository does.
type fakeBank struct {
	questions []models.Question
}

func (b *fakeBank) QueryActive(ctx context.Context, category string, minDifficulty, maxDifficulty int) ([]models.Question, error) {
	var out []models.Question
	for _, q := range b.questions {
		if !q.Active {
			continue
		}
		if category != "" && q.Category != category {
			continue
		}
		if (minDifficulty > 0 || maxDifficulty > 0) && (q.Difficulty < minDifficulty || q.Difficulty > maxDifficulty) {
			continue
		}
		out = append(out, q)
	}
	return out, nil
}

func makeQuestions(count int, category string, difficulty int) []models.Question {
	questions := make([]models.Question, count)
	for i := range questions {
		questions[i] = models.Question{
			ID:         fmt.Sprintf("%s-d%d-%d", category, difficulty, i),
			Category:   category,
			Difficulty: difficulty,
			Active:     true,
		}
	}
	return questions
}

func TestBuildQuestionSetUsesLevelRange(t *testing.T) {
	bank := &fakeBank{}
	bank.questions = append(bank.questions, makeQuestions(5, "seo", 1)...)
	bank.questions = append(bank.questions, makeQuestions(5, "seo", 4)...)

	selector := NewSelectorWithSeed(bank, DefaultConfig(), 1)

	ids, err := selector.BuildQuestionSet(context.Background(), "senior", 4)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if len(ids) != 4 {
		t.Fatalf("Expected 4 questions, got %d", len(ids))
	}
	for _, id := range ids {
		if id[:6] != "seo-d4" {
			t.Errorf("Question %s is outside the senior range [3,5]", id)
		}
	}
}

func TestBuildQuestionSetFallsBackWhenRangeTooSparse(t *testing.T) {
	// Only 2 questions match the senior range [3,5]; the minimum pool is 3,
	// so the filter must be dropped and the whole active pool used.
	bank := &fakeBank{}
	bank.questions = append(bank.questions, makeQuestions(8, "ppc", 1)...)
	bank.questions = append(bank.questions, makeQuestions(2, "ppc", 4)...)

	selector := NewSelectorWithSeed(bank, DefaultConfig(), 1)

	ids, err := selector.BuildQuestionSet(context.Background(), "senior", 5)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if len(ids) != 5 {
		t.Errorf("Expected fallback pool to supply 5 questions, got %d", len(ids))
	}
}

func TestBuildQuestionSetTargetCountFallback(t *testing.T) {
	config := DefaultConfig()
	config.FallbackMode = FallbackTargetCount

	// 4 questions in range: enough for target 4, not for target 6.
	bank := &fakeBank{}
	bank.questions = append(bank.questions, makeQuestions(4, "seo", 3)...)
	bank.questions = append(bank.questions, makeQuestions(4, "seo", 1)...)

	selector := NewSelectorWithSeed(bank, config, 1)

	ids, err := selector.BuildQuestionSet(context.Background(), "senior", 4)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	for _, id := range ids {
		if id[:6] != "seo-d3" {
			t.Errorf("Expected no fallback at target 4, got out-of-range question %s", id)
		}
	}

	ids, err = selector.BuildQuestionSet(context.Background(), "senior", 6)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if len(ids) != 6 {
		t.Errorf("Expected fallback to fill 6 questions, got %d", len(ids))
	}
}

func TestBuildQuestionSetUnknownLevelUsesDefaultRange(t *testing.T) {
	bank := &fakeBank{}
	bank.questions = append(bank.questions, makeQuestions(5, "seo", 3)...)
	bank.questions = append(bank.questions, makeQuestions(5, "seo", 5)...)

	selector := NewSelectorWithSeed(bank, DefaultConfig(), 1)

	// Default range is [2,4], so only the difficulty-3 questions qualify.
	ids, err := selector.BuildQuestionSet(context.Background(), "principal", 5)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	for _, id := range ids {
		if id[:6] != "seo-d3" {
			t.Errorf("Question %s is outside the default range [2,4]", id)
		}
	}
}

func TestBuildQuestionSetEmptyPool(t *testing.T) {
	selector := NewSelectorWithSeed(&fakeBank{}, DefaultConfig(), 1)

	ids, err := selector.BuildQuestionSet(context.Background(), "junior", 10)
	if err != nil {
		t.Fatalf("Expected empty set without error, got %v", err)
	}
	if len(ids) != 0 {
		t.Errorf("Expected empty question set, got %d", len(ids))
	}
}

func TestBuildQuestionSetDeterministicWithSeed(t *testing.T) {
	bank := &fakeBank{questions: makeQuestions(12, "analytics", 3)}

	first, err := NewSelectorWithSeed(bank, DefaultConfig(), 42).BuildQuestionSet(context.Background(), "mid", 8)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	second, err := NewSelectorWithSeed(bank, DefaultConfig(), 42).BuildQuestionSet(context.Background(), "mid", 8)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	if len(first) != len(second) {
		t.Fatalf("Seeded runs differ in length: %d vs %d", len(first), len(second))
	}
	for i := range first {
		if first[i] != second[i] {
			t.Errorf("Seeded runs diverge at %d: %s vs %s", i, first[i], second[i])
		}
	}
}

func TestBuildQuestionSetBucketedQuotas(t *testing.T) {
	config := DefaultConfig()
	config.CategoryQuotas = map[string]int{"seo": 2, "ppc": 3}

	bank := &fakeBank{}
	bank.questions = append(bank.questions, makeQuestions(6, "seo", 3)...)
	bank.questions = append(bank.questions, makeQuestions(6, "ppc", 3)...)
	bank.questions = append(bank.questions, makeQuestions(6, "content", 3)...)

	selector := NewSelectorWithSeed(bank, config, 7)

	ids, err := selector.BuildQuestionSet(context.Background(), "mid", 0)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if len(ids) != 5 {
		t.Fatalf("Expected 5 questions from quotas, got %d", len(ids))
	}

	counts := map[string]int{}
	for _, id := range ids {
		counts[id[:3]]++
	}
	if counts["seo"] != 2 || counts["ppc"] != 3 {
		t.Errorf("Expected 2 seo + 3 ppc, got %v", counts)
	}
	if counts["con"] != 0 {
		t.Errorf("Category without quota must not contribute, got %v", counts)
	}
}

func TestBuildQuestionSetBucketedFallbackPerCategory(t *testing.T) {
	config := DefaultConfig()
	config.CategoryQuotas = map[string]int{"seo": 3}

	// Only 1 seo question in the senior range; the quota of 3 forces the
	// bucket to fall back to all active seo questions.
	bank := &fakeBank{}
	bank.questions = append(bank.questions, makeQuestions(1, "seo", 4)...)
	bank.questions = append(bank.questions, makeQuestions(4, "seo", 1)...)

	selector := NewSelectorWithSeed(bank, config, 7)

	ids, err := selector.BuildQuestionSet(context.Background(), "senior", 0)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if len(ids) != 3 {
		t.Errorf("Expected bucket fallback to fill the quota of 3, got %d", len(ids))
	}
}
