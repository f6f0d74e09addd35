package service

import (
	"context"
	"fmt"
	"log"
	"time"

	"assessment-service/internal/cache"
	"assessment-service/internal/event"
	"assessment-service/internal/lifecycle"
	"assessment-service/internal/metrics"
	"assessment-service/internal/models"
	"assessment-service/internal/scoring"
	"assessment-service/internal/selection"
	"assessment-service/internal/telemetry"

	"github.com/google/uuid"
)

// SessionStore is the transactional persistence surface for sessions. Save
// applies only when the stored version matches expectedVersion.
type SessionStore interface {
	Create(ctx context.Context, session *models.Session) error
	FindByID(ctx context.Context, id string) (*models.Session, error)
	Save(ctx context.Context, session *models.Session, expectedVersion int64) error
}

// QuestionBank is the read-only question surface the engine consumes.
type QuestionBank interface {
	selection.QuestionBank
	FindByID(ctx context.Context, id string) (*models.Question, error)
	FindByIDs(ctx context.Context, ids []string) ([]models.Question, error)
}

const telemetrySaveRetries = 3

// SessionService drives sessions through their lifecycle and is the only
// writer of session state. Event publisher and report cache are optional.
type SessionService struct {
	store     SessionStore
	bank      QuestionBank
	selector  *selection.Selector
	lifecycle *lifecycle.Manager
	scorer    *scoring.Engine
	monitor   *telemetry.Monitor
	publisher *event.Publisher
	reports   cache.ReportCache

	// Now is the wall clock; tests pin it for deterministic deadlines.
	Now func() time.Time
}

func NewSessionService(
	store SessionStore,
	bank QuestionBank,
	selector *selection.Selector,
	scorer *scoring.Engine,
	monitor *telemetry.Monitor,
	publisher *event.Publisher,
	reports cache.ReportCache,
) *SessionService {
	return &SessionService{
		store:     store,
		bank:      bank,
		selector:  selector,
		lifecycle: lifecycle.NewManager(),
		scorer:    scorer,
		monitor:   monitor,
		publisher: publisher,
		reports:   reports,
		Now:       time.Now,
	}
}

// SessionView is the candidate-facing snapshot returned by start and answer
// operations: either the current question or the terminal state.
type SessionView struct {
	SessionID        string           `json:"session_id"`
	Status           string           `json:"status"`
	CurrentQuestion  *models.Question `json:"current_question,omitempty"`
	StepNumber       int              `json:"step_number"`
	TotalSteps       int              `json:"total_steps"`
	ProgressPercent  int              `json:"progress_percent"`
	RemainingMinutes *int             `json:"remaining_minutes,omitempty"`
}

// CreateSession builds a question set for the level and stores a draft
// session under an unguessable id.
func (s *SessionService) CreateSession(ctx context.Context, candidateID, level string, questionCount, durationMinutes int) (*models.Session, error) {
	if candidateID == "" {
		return nil, &models.ValidationError{Reason: "candidate id is required"}
	}
	questionIDs, err := s.selector.BuildQuestionSet(ctx, level, questionCount)
	if err != nil {
		return nil, fmt.Errorf("build question set: %w", err)
	}

	now := s.Now()
	session := &models.Session{
		ID:              uuid.NewString(),
		CandidateID:     candidateID,
		Level:           level,
		Status:          models.StatusDraft,
		QuestionOrder:   questionIDs,
		Responses:       []models.Response{},
		DurationMinutes: durationMinutes,
		Telemetry:       models.NewTelemetryState(),
		CreatedAt:       now,
		UpdatedAt:       now,
	}
	if err := s.store.Create(ctx, session); err != nil {
		return nil, fmt.Errorf("create session: %w", err)
	}

	s.publish(event.SessionCreated, map[string]interface{}{
		"session_id":   session.ID,
		"candidate_id": session.CandidateID,
		"level":        session.Level,
		"questions":    len(session.QuestionOrder),
	})
	return session, nil
}

// StartOrResume is the candidate's entry point. First access starts the clock;
// later accesses resume. A passed deadline routes to expired, an exhausted
// question set to evaluation; both return the terminal view rather than an
// error so repeated calls behave consistently.
func (s *SessionService) StartOrResume(ctx context.Context, sessionID string) (*SessionView, error) {
	session, err := s.store.FindByID(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if session.Terminal() {
		return s.buildView(ctx, session)
	}

	now := s.Now()
	version := session.Version
	started := s.lifecycle.Start(session, now)

	if expErr := s.lifecycle.CheckExpiry(session, now); expErr != nil {
		if err := s.store.Save(ctx, session, version); err != nil {
			return nil, err
		}
		s.noteExpired(session)
		return s.buildView(ctx, session)
	}

	if session.Exhausted() {
		// Nothing left to answer (possibly an empty question set):
		// evaluate immediately.
		if err := s.finalize(ctx, session); err != nil {
			return nil, err
		}
		if err := s.store.Save(ctx, session, version); err != nil {
			return nil, err
		}
		return s.buildView(ctx, session)
	}

	if started {
		if err := s.store.Save(ctx, session, version); err != nil {
			return nil, err
		}
		metrics.SessionsStarted.Inc()
		s.publish(event.SessionStarted, map[string]interface{}{
			"session_id":   session.ID,
			"candidate_id": session.CandidateID,
		})
	}
	return s.buildView(ctx, session)
}

// SubmitAnswer validates and appends one response, submitting the session
// when the set is exhausted. Retrying the same answer for an already-recorded
// index returns the current state without mutating anything.
func (s *SessionService) SubmitAnswer(ctx context.Context, sessionID, questionID string, resp models.Response) (*SessionView, error) {
	session, err := s.store.FindByID(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	now := s.Now()
	version := session.Version
	wasExpired := session.Status == models.StatusExpired
	s.lifecycle.Start(session, now)

	if expErr := s.lifecycle.CheckExpiry(session, now); expErr != nil {
		if !wasExpired {
			if err := s.store.Save(ctx, session, version); err != nil {
				return nil, err
			}
			s.noteExpired(session)
		}
		return nil, expErr
	}

	question, err := s.bank.FindByID(ctx, questionID)
	if err != nil {
		return nil, err
	}

	recorded, err := s.lifecycle.RecordResponse(session, question, resp, now)
	if err != nil {
		return nil, err
	}
	if !recorded {
		// Duplicate retry for the previous index; state already persisted.
		return s.buildView(ctx, session)
	}

	if session.Exhausted() {
		if err := s.finalize(ctx, session); err != nil {
			return nil, err
		}
	}
	if err := s.store.Save(ctx, session, version); err != nil {
		return nil, err
	}

	metrics.AnswersRecorded.Inc()
	s.publish(event.AnswerRecorded, map[string]interface{}{
		"session_id":  session.ID,
		"question_id": questionID,
		"index":       len(session.Responses) - 1,
	})
	return s.buildView(ctx, session)
}

// SubmitSession submits explicitly, scoring whatever responses exist.
// Submitting an already-submitted session returns the stored report.
func (s *SessionService) SubmitSession(ctx context.Context, sessionID string) (*models.ScoreReport, error) {
	session, err := s.store.FindByID(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if session.Status == models.StatusSubmitted {
		return session.Scores, nil
	}

	now := s.Now()
	version := session.Version
	wasExpired := session.Status == models.StatusExpired
	s.lifecycle.Start(session, now)

	if expErr := s.lifecycle.CheckExpiry(session, now); expErr != nil {
		if !wasExpired {
			if err := s.store.Save(ctx, session, version); err != nil {
				return nil, err
			}
			s.noteExpired(session)
		}
		return nil, expErr
	}

	if err := s.finalize(ctx, session); err != nil {
		return nil, err
	}
	if err := s.store.Save(ctx, session, version); err != nil {
		return nil, err
	}
	return session.Scores, nil
}

// GetScoreReport returns the stored report, or ErrReportNotReady while the
// session is unscored (including expired sessions, which are never scored).
func (s *SessionService) GetScoreReport(ctx context.Context, sessionID string) (*models.ScoreReport, error) {
	if s.reports != nil {
		if report, err := s.reports.Get(ctx, sessionID); err == nil && report != nil {
			return report, nil
		}
	}

	session, err := s.store.FindByID(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if session.Scores == nil {
		return nil, models.ErrReportNotReady
	}
	s.cacheReport(ctx, sessionID, session.Scores)
	return session.Scores, nil
}

// LogTelemetry folds one proctoring event into the session's trust state.
// Terminal sessions absorb the call as a no-op. Saves retry on version
// conflicts because telemetry interleaves with answer recording.
func (s *SessionService) LogTelemetry(ctx context.Context, sessionID, eventType, details string) (trustScore int, flagged bool, err error) {
	for attempt := 0; attempt < telemetrySaveRetries; attempt++ {
		session, err := s.store.FindByID(ctx, sessionID)
		if err != nil {
			return 0, false, err
		}
		if session.Terminal() {
			return session.Telemetry.TrustScore, session.Telemetry.Flagged, nil
		}

		wasFlagged := session.Telemetry.Flagged
		s.monitor.LogEvent(&session.Telemetry, eventType, session.NextIndex(), details, s.Now())

		if err := s.store.Save(ctx, session, session.Version); err != nil {
			if err == models.ErrVersionConflict {
				continue
			}
			return 0, false, err
		}

		if !wasFlagged && session.Telemetry.Flagged {
			metrics.SessionsFlagged.Inc()
			s.publish(event.SessionFlagged, map[string]interface{}{
				"session_id":  session.ID,
				"trust_score": session.Telemetry.TrustScore,
				"event_type":  eventType,
			})
		}
		return session.Telemetry.TrustScore, session.Telemetry.Flagged, nil
	}
	return 0, false, models.ErrVersionConflict
}

// finalize evaluates the session and marks it submitted. Runs once per
// session; the scoring engine returns stored scores unchanged on re-entry.
func (s *SessionService) finalize(ctx context.Context, session *models.Session) error {
	questions, err := s.bank.FindByIDs(ctx, session.QuestionOrder)
	if err != nil {
		return fmt.Errorf("load questions for scoring: %w", err)
	}
	questionMap := make(map[string]*models.Question, len(questions))
	for i := range questions {
		questionMap[questions[i].ID] = &questions[i]
	}

	now := s.Now()
	session.Scores = s.scorer.Evaluate(session, questionMap, now)
	if err := s.lifecycle.Submit(session, now); err != nil {
		return err
	}

	s.cacheReport(ctx, session.ID, session.Scores)
	metrics.SessionsSubmitted.WithLabelValues("submitted").Inc()
	s.publish(event.SessionSubmitted, map[string]interface{}{
		"session_id":    session.ID,
		"candidate_id":  session.CandidateID,
		"overall_score": session.Scores.OverallScore,
		"label":         session.Scores.Label,
	})
	return nil
}

func (s *SessionService) buildView(ctx context.Context, session *models.Session) (*SessionView, error) {
	view := &SessionView{
		SessionID:       session.ID,
		Status:          session.Status,
		StepNumber:      session.NextIndex() + 1,
		TotalSteps:      len(session.QuestionOrder),
		ProgressPercent: progressPercent(session),
	}

	if deadline, ok := session.Deadline(); ok && !session.Terminal() {
		remaining := int(deadline.Sub(s.Now()).Minutes())
		if remaining < 0 {
			remaining = 0
		}
		view.RemainingMinutes = &remaining
	}

	if session.Terminal() || session.Exhausted() {
		view.StepNumber = len(session.QuestionOrder)
		return view, nil
	}

	question, err := s.bank.FindByID(ctx, session.QuestionOrder[session.NextIndex()])
	if err != nil {
		return nil, fmt.Errorf("load current question: %w", err)
	}
	// Never leak the answer key to the candidate.
	question.CorrectAnswer = ""
	question.ExpectedOrder = nil
	view.CurrentQuestion = question
	return view, nil
}

func progressPercent(session *models.Session) int {
	total := len(session.QuestionOrder)
	if total == 0 {
		return 100
	}
	return int(float64(len(session.Responses)) / float64(total) * 100)
}

func (s *SessionService) noteExpired(session *models.Session) {
	metrics.SessionsSubmitted.WithLabelValues("expired").Inc()
	s.publish(event.SessionExpired, map[string]interface{}{
		"session_id":   session.ID,
		"candidate_id": session.CandidateID,
	})
}

func (s *SessionService) cacheReport(ctx context.Context, sessionID string, report *models.ScoreReport) {
	if s.reports == nil {
		return
	}
	if err := s.reports.Set(ctx, sessionID, report); err != nil {
		log.Printf("report cache set failed for %s: %v", sessionID, err)
	}
}

func (s *SessionService) publish(eventType string, payload map[string]interface{}) {
	if err := s.publisher.Publish(eventType, payload); err != nil {
		log.Printf("publish %s failed: %v", eventType, err)
	}
}
