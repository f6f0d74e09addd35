package models

import "time"

// ScoreReport is the evaluated outcome of a submitted session. It is computed
// exactly once, on the transition to submitted, and never rewritten.
type ScoreReport struct {
	CategoryScores map[string]float64 `bson:"category_scores" json:"category_scores"` // 0-100 per category
	HardScore      float64            `bson:"hard_score" json:"hard_score"`
	SoftScore      float64            `bson:"soft_score" json:"soft_score"`
	OverallScore   float64            `bson:"overall_score" json:"overall_score"`
	Label          string             `bson:"label" json:"label"`
	FitScores      map[string]float64 `bson:"fit_scores" json:"fit_scores"`
	Strengths      []string           `bson:"strengths" json:"strengths"`
	Development    []string           `bson:"development" json:"development"`
	// ManualReview lists question ids whose responses need human scoring
	// (ranking and open reasoning without an attached manual score).
	ManualReview []string  `bson:"manual_review,omitempty" json:"manual_review,omitempty"`
	EvaluatedAt  time.Time `bson:"evaluated_at" json:"evaluated_at"`
}
