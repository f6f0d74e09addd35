package models

import "time"

const (
	StatusDraft      = "draft"
	StatusInProgress = "in_progress"
	StatusSubmitted  = "submitted"
	StatusExpired    = "expired"
)

// Response is one recorded answer. The payload fields form a discriminated
// union keyed by the question's type: OptionID for choice types, Ranking for
// ranking questions, StatementIndex for behavioral blocks and Text for open
// reasoning. ManualScore is attached later by an external review channel.
type Response struct {
	QuestionID     string    `bson:"question_id" json:"question_id"`
	OptionID       string    `bson:"option_id,omitempty" json:"option_id,omitempty"`
	Ranking        []string  `bson:"ranking,omitempty" json:"ranking,omitempty"`
	StatementIndex *int      `bson:"statement_index,omitempty" json:"statement_index,omitempty"`
	Text           string    `bson:"text,omitempty" json:"text,omitempty"`
	ManualScore    *float64  `bson:"manual_score,omitempty" json:"manual_score,omitempty"` // 0-100
	AnsweredAt     time.Time `bson:"answered_at" json:"answered_at"`
}

type TelemetryEvent struct {
	Type          string    `bson:"type" json:"type"`
	At            time.Time `bson:"at" json:"at"`
	QuestionIndex int       `bson:"question_index" json:"question_index"`
	Details       string    `bson:"details,omitempty" json:"details,omitempty"`
}

// TelemetryState is the proctoring trust state for one session. The log is
// append-only; Flagged latches true and never clears within a session.
type TelemetryState struct {
	Log        []TelemetryEvent `bson:"log" json:"log"`
	Counters   map[string]int   `bson:"counters" json:"counters"`
	TrustScore int              `bson:"trust_score" json:"trust_score"` // clamped to [0,100]
	Flagged    bool             `bson:"flagged" json:"flagged"`
}

func NewTelemetryState() TelemetryState {
	return TelemetryState{
		Log:        []TelemetryEvent{},
		Counters:   map[string]int{},
		TrustScore: 100,
	}
}

type Session struct {
	ID          string `bson:"_id,omitempty" json:"id"`
	CandidateID string `bson:"candidate_id" json:"candidate_id"`
	Level       string `bson:"level" json:"level"`
	Status      string `bson:"status" json:"status"`
	// QuestionOrder is fixed at creation and never mutated afterwards.
	// Responses[i] answers QuestionOrder[i].
	QuestionOrder   []string       `bson:"question_order" json:"question_order"`
	Responses       []Response     `bson:"responses" json:"responses"`
	StartedAt       *time.Time     `bson:"started_at,omitempty" json:"started_at,omitempty"`
	DurationMinutes int            `bson:"duration_minutes" json:"duration_minutes"` // 0 = no expiry
	SubmittedAt     *time.Time     `bson:"submitted_at,omitempty" json:"submitted_at,omitempty"`
	Scores          *ScoreReport   `bson:"scores,omitempty" json:"scores,omitempty"`
	Telemetry       TelemetryState `bson:"telemetry" json:"telemetry"`
	Version         int64          `bson:"version" json:"version"`
	CreatedAt       time.Time      `bson:"created_at" json:"created_at"`
	UpdatedAt       time.Time      `bson:"updated_at" json:"updated_at"`
}

// Deadline returns the derived deadline. ok is false when the session has not
// started or has no time limit.
func (s *Session) Deadline() (deadline time.Time, ok bool) {
	if s.StartedAt == nil || s.DurationMinutes <= 0 {
		return time.Time{}, false
	}
	return s.StartedAt.Add(time.Duration(s.DurationMinutes) * time.Minute), true
}

// Terminal reports whether the session has reached a final state.
func (s *Session) Terminal() bool {
	return s.Status == StatusSubmitted || s.Status == StatusExpired
}

// NextIndex is the position of the next unanswered question.
func (s *Session) NextIndex() int {
	return len(s.Responses)
}

// Exhausted reports whether every question in the set has been answered.
func (s *Session) Exhausted() bool {
	return len(s.Responses) >= len(s.QuestionOrder)
}
