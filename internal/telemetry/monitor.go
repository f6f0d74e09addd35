package telemetry

import (
	"time"

	"assessment-service/internal/models"
)

// Event types reported by the candidate's browser.
const (
	EventTabSwitch      = "tab_switch"
	EventCopyAttempt    = "copy_attempt"
	EventPasteAttempt   = "paste_attempt"
	EventFullscreenExit = "fullscreen_exit"
)

// Config holds the proctoring rule table. Every assessment variant tunes its
// own penalties, so nothing here is a package constant.
type Config struct {
	// Penalties maps event type to trust-score deduction. Unknown event
	// types are logged with a penalty of 0.
	Penalties map[string]int `json:"penalties"`
	// FlagThreshold flags the session once the trust score drops below it.
	FlagThreshold int `json:"flag_threshold"`
	// MaxViolations flags the session once the number of penalized events
	// exceeds it. 0 disables the limit.
	MaxViolations int `json:"max_violations"`
}

func DefaultConfig() *Config {
	return &Config{
		Penalties: map[string]int{
			EventTabSwitch:      10,
			EventCopyAttempt:    5,
			EventPasteAttempt:   5,
			EventFullscreenExit: 15,
		},
		FlagThreshold: 50,
		MaxViolations: 0,
	}
}

// Monitor folds proctoring events into a session's trust state. It is
// deliberately decoupled from scoring: a flagged session is still evaluated,
// the flag only marks it for human review.
type Monitor struct {
	config *Config
}

func NewMonitor(config *Config) *Monitor {
	if config == nil {
		config = DefaultConfig()
	}
	return &Monitor{config: config}
}

// LogEvent appends the event, applies its penalty with the trust score
// clamped to [0,100], and re-evaluates the review flag. The flag latches:
// once true it never clears within the session.
func (m *Monitor) LogEvent(state *models.TelemetryState, eventType string, questionIndex int, details string, now time.Time) {
	if state.Counters == nil {
		state.Counters = map[string]int{}
	}
	state.Log = append(state.Log, models.TelemetryEvent{
		Type:          eventType,
		At:            now,
		QuestionIndex: questionIndex,
		Details:       details,
	})
	state.Counters[eventType]++

	state.TrustScore -= m.config.Penalties[eventType]
	if state.TrustScore < 0 {
		state.TrustScore = 0
	}
	if state.TrustScore > 100 {
		state.TrustScore = 100
	}

	if state.TrustScore < m.config.FlagThreshold {
		state.Flagged = true
	}
	if m.config.MaxViolations > 0 && m.violationCount(state) > m.config.MaxViolations {
		state.Flagged = true
	}
}

// violationCount totals the events that carry a penalty.
func (m *Monitor) violationCount(state *models.TelemetryState) int {
	total := 0
	for eventType, count := range state.Counters {
		if m.config.Penalties[eventType] > 0 {
			total += count
		}
	}
	return total
}
