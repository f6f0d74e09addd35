package handlers

import (
	"errors"
	"net/http"

	"assessment-service/internal/models"
	"assessment-service/internal/service"

	"github.com/gin-gonic/gin"
)

type SessionHandler struct {
	Service *service.SessionService
}

func NewSessionHandler(svc *service.SessionService) *SessionHandler {
	return &SessionHandler{Service: svc}
}

type createSessionRequest struct {
	CandidateID     string `json:"candidate_id" binding:"required"`
	Level           string `json:"level"`
	QuestionCount   int    `json:"question_count"`
	DurationMinutes int    `json:"duration_minutes"`
}

type submitAnswerRequest struct {
	QuestionID     string   `json:"question_id" binding:"required"`
	OptionID       string   `json:"option_id,omitempty"`
	Ranking        []string `json:"ranking,omitempty"`
	StatementIndex *int     `json:"statement_index,omitempty"`
	Text           string   `json:"text,omitempty"`
}

type telemetryRequest struct {
	EventType string `json:"event_type" binding:"required"`
	Details   string `json:"details,omitempty"`
}

// CreateSession handles POST /api/v1/sessions.
func (h *SessionHandler) CreateSession(c *gin.Context) {
	var req createSessionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	session, err := h.Service.CreateSession(c.Request.Context(), req.CandidateID, req.Level, req.QuestionCount, req.DurationMinutes)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"session_id":       session.ID,
		"status":           session.Status,
		"level":            session.Level,
		"total_questions":  len(session.QuestionOrder),
		"duration_minutes": session.DurationMinutes,
	})
}

// StartSession handles POST /api/v1/sessions/:id/start. Safe to call again
// to resume; the clock only starts once.
func (h *SessionHandler) StartSession(c *gin.Context) {
	view, err := h.Service.StartOrResume(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, view)
}

// SubmitAnswer handles POST /api/v1/sessions/:id/answers.
func (h *SessionHandler) SubmitAnswer(c *gin.Context) {
	var req submitAnswerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	resp := models.Response{
		QuestionID:     req.QuestionID,
		OptionID:       req.OptionID,
		Ranking:        req.Ranking,
		StatementIndex: req.StatementIndex,
		Text:           req.Text,
	}
	view, err := h.Service.SubmitAnswer(c.Request.Context(), c.Param("id"), req.QuestionID, resp)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, view)
}

// SubmitSession handles POST /api/v1/sessions/:id/submit.
func (h *SessionHandler) SubmitSession(c *gin.Context) {
	report, err := h.Service.SubmitSession(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": models.StatusSubmitted, "report": report})
}

// GetReport handles GET /api/v1/sessions/:id/report.
func (h *SessionHandler) GetReport(c *gin.Context) {
	report, err := h.Service.GetScoreReport(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, report)
}

// LogTelemetry handles POST /api/v1/sessions/:id/telemetry.
func (h *SessionHandler) LogTelemetry(c *gin.Context) {
	var req telemetryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	trust, flagged, err := h.Service.LogTelemetry(c.Request.Context(), c.Param("id"), req.EventType, req.Details)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"trust_score": trust, "flagged": flagged})
}

func respondError(c *gin.Context, err error) {
	var validationErr *models.ValidationError
	var stateErr *models.StateError
	var expiredErr *models.ExpiredError

	switch {
	case errors.As(err, &validationErr):
		c.JSON(http.StatusBadRequest, gin.H{"error": validationErr.Error()})
	case errors.As(err, &expiredErr):
		c.JSON(http.StatusGone, gin.H{"error": expiredErr.Error(), "status": models.StatusExpired})
	case errors.As(err, &stateErr):
		c.JSON(http.StatusConflict, gin.H{"error": stateErr.Error()})
	case errors.Is(err, models.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "session or question not found"})
	case errors.Is(err, models.ErrReportNotReady):
		c.JSON(http.StatusConflict, gin.H{"error": "score report is not ready"})
	case errors.Is(err, models.ErrVersionConflict):
		c.JSON(http.StatusConflict, gin.H{"error": "session was modified concurrently, retry"})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
	}
}
