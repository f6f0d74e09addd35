package lifecycle

import (
	"fmt"
	"time"

	"assessment-service/internal/models"
)

// Manager drives the session state machine:
//
//	draft -> in_progress -> submitted
//	         in_progress -> expired
//
// Terminal states are never left. The manager is pure: it mutates the session
// in memory and leaves persistence to the caller.
type Manager struct{}

func NewManager() *Manager {
	return &Manager{}
}

// Start moves a draft session to in_progress and stamps started_at. Repeated
// calls are no-ops so a page reload never resets the clock. It returns true
// only on the first transition.
func (m *Manager) Start(session *models.Session, now time.Time) bool {
	if session.Terminal() {
		return false
	}
	started := false
	if session.StartedAt == nil {
		t := now
		session.StartedAt = &t
		started = true
	}
	if session.Status == models.StatusDraft {
		session.Status = models.StatusInProgress
		started = true
	}
	return started
}

// CheckExpiry lazily detects a passed deadline on access. When the deadline is
// behind now it routes the session to expired and returns an ExpiredError.
// Sessions without a time limit never expire.
func (m *Manager) CheckExpiry(session *models.Session, now time.Time) error {
	if session.Terminal() {
		if session.Status == models.StatusExpired {
			deadline, _ := session.Deadline()
			return &models.ExpiredError{Deadline: deadline}
		}
		return nil
	}
	deadline, ok := session.Deadline()
	if !ok || !now.After(deadline) {
		return nil
	}
	session.Status = models.StatusExpired
	return &models.ExpiredError{Deadline: deadline}
}

// Submit marks the session submitted. Submitting an already-submitted session
// is a no-op; submitting an expired one is rejected.
func (m *Manager) Submit(session *models.Session, now time.Time) error {
	switch session.Status {
	case models.StatusSubmitted:
		return nil
	case models.StatusExpired:
		return &models.StateError{Op: "submit", Reason: "session expired"}
	}
	session.Status = models.StatusSubmitted
	t := now
	session.SubmittedAt = &t
	return nil
}

// RecordResponse validates and appends one response. Answers are strictly
// sequential: the question must be the one at question_order[len(responses)].
// A retried submission for the previous index is detected and absorbed, even
// when that answer completed the session, so the operation is idempotent per
// (session, index). recorded is false when the response was already present.
func (m *Manager) RecordResponse(session *models.Session, question *models.Question, resp models.Response, now time.Time) (recorded bool, err error) {
	if session.Status != models.StatusInProgress {
		if session.Status == models.StatusSubmitted && isLastRecorded(session, question.ID) {
			// Retry of the answer that completed the session.
			return false, nil
		}
		return false, &models.StateError{
			Op:     "record response",
			Reason: fmt.Sprintf("session is %s", session.Status),
		}
	}
	if session.Exhausted() {
		return false, &models.StateError{Op: "record response", Reason: "question set exhausted"}
	}

	idx := session.NextIndex()
	if question.ID != session.QuestionOrder[idx] {
		if isLastRecorded(session, question.ID) {
			// Duplicate of the answer just recorded (client retry).
			return false, nil
		}
		return false, &models.StateError{
			Op:     "record response",
			Reason: fmt.Sprintf("question %s is not next in sequence", question.ID),
		}
	}

	if err := validatePayload(question, &resp); err != nil {
		return false, err
	}

	resp.QuestionID = question.ID
	resp.AnsweredAt = now
	session.Responses = append(session.Responses, resp)
	return true, nil
}

// isLastRecorded reports whether questionID is the most recently answered
// question, i.e. the retry case for both a mid-session duplicate and the
// final answer that flipped the session to submitted.
func isLastRecorded(session *models.Session, questionID string) bool {
	n := len(session.Responses)
	return n > 0 && n <= len(session.QuestionOrder) && session.QuestionOrder[n-1] == questionID
}

// validatePayload checks the response shape against the question type,
// exhaustively over the supported types.
func validatePayload(question *models.Question, resp *models.Response) error {
	switch question.Type {
	case models.TypeSingleChoice, models.TypeScenarioChoice:
		if resp.OptionID == "" {
			return &models.ValidationError{Reason: "choice answer requires an option id"}
		}
		if !question.HasChoice(resp.OptionID) {
			return &models.ValidationError{
				Reason: fmt.Sprintf("option %q is not offered by question %s", resp.OptionID, question.ID),
			}
		}
	case models.TypeRanking:
		if err := validateRanking(question, resp.Ranking); err != nil {
			return err
		}
	case models.TypeBehavioralMost, models.TypeBehavioralLeast:
		if resp.StatementIndex == nil {
			return &models.ValidationError{Reason: "behavioral answer requires a statement index"}
		}
		if *resp.StatementIndex < 0 || *resp.StatementIndex >= len(question.Options.Statements) {
			return &models.ValidationError{
				Reason: fmt.Sprintf("statement index %d out of range", *resp.StatementIndex),
			}
		}
	case models.TypeOpenReasoning:
		if resp.Text == "" {
			return &models.ValidationError{Reason: "open reasoning answer requires text"}
		}
	default:
		return &models.ValidationError{
			Reason: fmt.Sprintf("unsupported question type %q", question.Type),
		}
	}
	return nil
}

// validateRanking requires the submitted order to name exactly the items the
// question offers, each once.
func validateRanking(question *models.Question, ranking []string) error {
	items := question.Options.RankItems
	if len(ranking) != len(items) {
		return &models.ValidationError{
			Reason: fmt.Sprintf("ranking must order all %d items", len(items)),
		}
	}
	seen := make(map[string]bool, len(items))
	for _, item := range items {
		seen[item] = false
	}
	for _, label := range ranking {
		used, ok := seen[label]
		if !ok {
			return &models.ValidationError{Reason: fmt.Sprintf("unknown ranking item %q", label)}
		}
		if used {
			return &models.ValidationError{Reason: fmt.Sprintf("ranking item %q repeated", label)}
		}
		seen[label] = true
	}
	return nil
}
