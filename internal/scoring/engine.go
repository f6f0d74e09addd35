package scoring

import (
	"math"
	"sort"
	"time"

	"assessment-service/internal/models"
)

// Engine turns a complete session into a ScoreReport. Evaluation is
// deterministic weighted arithmetic over the config tables: the same session
// always yields the same report.
type Engine struct {
	config *Config
}

func NewEngine(config *Config) *Engine {
	if config == nil {
		config = DefaultConfig()
	}
	return &Engine{config: config}
}

type categoryTally struct {
	numerator   float64
	denominator float64
}

// Evaluate computes the report for a session. If the session already carries
// scores they are returned unchanged, so a second invocation is a no-op.
// Missing optional data never fails the report: empty categories score 0 and
// an absent behavioral signal yields the neutral soft midpoint of 50.
func (e *Engine) Evaluate(session *models.Session, questions map[string]*models.Question, now time.Time) *models.ScoreReport {
	if session.Scores != nil {
		return session.Scores
	}

	tallies := make(map[string]*categoryTally)
	var behavioral []int
	var manualReview []string

	for _, resp := range session.Responses {
		question, ok := questions[resp.QuestionID]
		if !ok {
			continue
		}
		switch {
		case question.IsBehavioral():
			if question.Type == models.TypeBehavioralMost {
				behavioral = append(behavioral, 1)
			} else {
				behavioral = append(behavioral, -1)
			}
		case question.IsAutoScored():
			tally := tallyFor(tallies, question.Category)
			weight := question.EffectiveWeight()
			tally.denominator += weight
			if resp.OptionID == question.CorrectAnswer {
				tally.numerator += weight
			}
		case question.Type == models.TypeOpenReasoning:
			// Only aggregated when a score was attached by the external
			// review channel; otherwise routed to manual review.
			if resp.ManualScore != nil {
				tally := tallyFor(tallies, question.Category)
				weight := question.EffectiveWeight()
				tally.denominator += weight
				tally.numerator += weight * clamp(*resp.ManualScore, 0, 100) / 100
			} else {
				manualReview = append(manualReview, question.ID)
			}
		case question.Type == models.TypeRanking:
			// Authored expected orders exist but no comparison rule is
			// defined for them; ranking always goes to manual review.
			manualReview = append(manualReview, question.ID)
		}
	}

	categoryScores := make(map[string]float64, len(tallies))
	for category, tally := range tallies {
		if tally.denominator == 0 {
			categoryScores[category] = 0
			continue
		}
		categoryScores[category] = round2(100 * tally.numerator / tally.denominator)
	}

	hard := 0.0
	for _, cw := range e.config.CategoryWeights {
		hard += categoryScores[cw.Category] * cw.Weight
	}
	hard = round2(hard)

	soft := e.softScore(behavioral)
	overall := round2(e.config.HardShare*hard + e.config.SoftShare*soft)

	return &models.ScoreReport{
		CategoryScores: categoryScores,
		HardScore:      hard,
		SoftScore:      soft,
		OverallScore:   overall,
		Label:          e.label(overall),
		FitScores:      e.fitScores(categoryScores),
		Strengths:      topN(e.rankCategories(categoryScores, false), e.config.TopStrengths),
		Development:    topN(e.rankCategories(categoryScores, true), e.config.TopDevelopment),
		ManualReview:   manualReview,
		EvaluatedAt:    now,
	}
}

// softScore maps the behavioral tally onto [0,100]: each most-like pick is +1,
// each least-like pick is -1, and 50*(1+mean) centers the absence of signal at
// the neutral midpoint rather than zero.
func (e *Engine) softScore(entries []int) float64 {
	if len(entries) == 0 {
		return 50
	}
	sum := 0
	for _, v := range entries {
		sum += v
	}
	mean := float64(sum) / float64(len(entries))
	return round2(clamp(50*(1+mean), 0, 100))
}

func (e *Engine) label(overall float64) string {
	for _, rule := range e.config.LabelRules {
		if overall >= rule.Threshold {
			return rule.Label
		}
	}
	return ""
}

func (e *Engine) fitScores(categoryScores map[string]float64) map[string]float64 {
	fits := make(map[string]float64, len(e.config.FitGroups))
	for domain, categories := range e.config.FitGroups {
		if len(categories) == 0 {
			fits[domain] = 0
			continue
		}
		sum := 0.0
		for _, category := range categories {
			sum += categoryScores[category]
		}
		fits[domain] = round2(sum / float64(len(categories)))
	}
	return fits
}

// rankCategories orders scored categories best first, or worst first when
// worstFirst is set. Ties resolve by the weight-table declaration order in
// both directions; categories outside the table sort last.
func (e *Engine) rankCategories(categoryScores map[string]float64, worstFirst bool) []string {
	order := make(map[string]int, len(e.config.CategoryWeights))
	for i, cw := range e.config.CategoryWeights {
		order[cw.Category] = i
	}
	declared := func(category string) int {
		if i, ok := order[category]; ok {
			return i
		}
		return len(order)
	}

	ranked := make([]string, 0, len(categoryScores))
	for category := range categoryScores {
		ranked = append(ranked, category)
	}
	sort.Slice(ranked, func(i, j int) bool {
		si, sj := categoryScores[ranked[i]], categoryScores[ranked[j]]
		if si != sj {
			if worstFirst {
				return si < sj
			}
			return si > sj
		}
		return declared(ranked[i]) < declared(ranked[j])
	})
	return ranked
}

func topN(ranked []string, n int) []string {
	if n > len(ranked) {
		n = len(ranked)
	}
	out := make([]string, n)
	copy(out, ranked[:n])
	return out
}

func tallyFor(tallies map[string]*categoryTally, category string) *categoryTally {
	tally, ok := tallies[category]
	if !ok {
		tally = &categoryTally{}
		tallies[category] = tally
	}
	return tally
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
