package models

type QuestionType string

const (
	TypeSingleChoice    QuestionType = "single_choice"
	TypeScenarioChoice  QuestionType = "scenario_choice"
	TypeRanking         QuestionType = "ranking"
	TypeBehavioralMost  QuestionType = "behavioral_most"
	TypeBehavioralLeast QuestionType = "behavioral_least"
	TypeOpenReasoning   QuestionType = "open_reasoning"
)

type Option struct {
	ID   string `bson:"id" json:"id"`
	Text string `bson:"text" json:"text"`
}

// QuestionOptions carries the type-dependent payload. Exactly one group of
// fields is populated, keyed by Question.Type.
type QuestionOptions struct {
	Choices    []Option `bson:"choices,omitempty" json:"choices,omitempty"`       // single_choice, scenario_choice
	RankItems  []string `bson:"rank_items,omitempty" json:"rank_items,omitempty"` // ranking
	Statements []string `bson:"statements,omitempty" json:"statements,omitempty"` // behavioral_most, behavioral_least
}

type Question struct {
	ID         string          `bson:"_id,omitempty" json:"id"`
	Text       string          `bson:"text" json:"text"`
	Type       QuestionType    `bson:"type" json:"type"`
	Category   string          `bson:"category" json:"category"`
	Difficulty int             `bson:"difficulty" json:"difficulty"` // 1-5
	Options    QuestionOptions `bson:"options" json:"options"`
	// CorrectAnswer is the option id; set only for auto-scoreable types.
	CorrectAnswer string `bson:"correct_answer,omitempty" json:"correct_answer,omitempty"`
	// ExpectedOrder is the authored reference order for ranking questions.
	// Stored for manual review, never compared automatically.
	ExpectedOrder []string `bson:"expected_order,omitempty" json:"expected_order,omitempty"`
	Weight        float64  `bson:"weight" json:"weight"`
	Explanation   string   `bson:"explanation,omitempty" json:"explanation,omitempty"`
	Active        bool     `bson:"active" json:"active"`
}

// IsAutoScored reports whether correctness can be decided by the engine alone.
func (q *Question) IsAutoScored() bool {
	return q.Type == TypeSingleChoice || q.Type == TypeScenarioChoice
}

func (q *Question) IsBehavioral() bool {
	return q.Type == TypeBehavioralMost || q.Type == TypeBehavioralLeast
}

// HasChoice reports whether the given option id is one of the offered choices.
func (q *Question) HasChoice(optionID string) bool {
	for _, opt := range q.Options.Choices {
		if opt.ID == optionID {
			return true
		}
	}
	return false
}

// EffectiveWeight returns the scoring weight, defaulting to 1.0 when the
// stored value is missing or non-positive.
func (q *Question) EffectiveWeight() float64 {
	if q.Weight <= 0 {
		return 1.0
	}
	return q.Weight
}
