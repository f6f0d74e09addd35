package telemetry

import (
	"testing"
	"time"

	"assessment-service/internal/models"
)

var eventTime = time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC)

func TestLogEventAppliesPenalty(t *testing.T) {
	monitor := NewMonitor(nil)
	state := models.NewTelemetryState()

	monitor.LogEvent(&state, EventTabSwitch, 2, "", eventTime)

	if state.TrustScore != 90 {
		t.Errorf("Expected trust 90 after tab switch, got %d", state.TrustScore)
	}
	if len(state.Log) != 1 || state.Log[0].QuestionIndex != 2 {
		t.Errorf("Event not logged correctly: %+v", state.Log)
	}
	if state.Counters[EventTabSwitch] != 1 {
		t.Errorf("Counter not incremented: %v", state.Counters)
	}
	if state.Flagged {
		t.Error("One tab switch must not flag the session")
	}
}

func TestLogEventUnknownTypeNoPenalty(t *testing.T) {
	monitor := NewMonitor(nil)
	state := models.NewTelemetryState()

	monitor.LogEvent(&state, "devtools_open", 0, "", eventTime)

	if state.TrustScore != 100 {
		t.Errorf("Unknown event must not deduct, got trust %d", state.TrustScore)
	}
	if len(state.Log) != 1 {
		t.Error("Unknown event must still be logged")
	}
}

func TestTrustScoreClampedAtZero(t *testing.T) {
	monitor := NewMonitor(nil)
	state := models.NewTelemetryState()

	for i := 0; i < 10; i++ {
		monitor.LogEvent(&state, EventFullscreenExit, i, "", eventTime)
	}

	if state.TrustScore != 0 {
		t.Errorf("Expected trust clamped to 0, got %d", state.TrustScore)
	}
	if !state.Flagged {
		t.Error("Zero trust must flag the session")
	}
}

func TestFlagBelowThresholdAndLatch(t *testing.T) {
	monitor := NewMonitor(nil)
	state := models.NewTelemetryState()

	// 5 tab switches: 100 -> 50, still at the threshold, not below.
	for i := 0; i < 5; i++ {
		monitor.LogEvent(&state, EventTabSwitch, i, "", eventTime)
	}
	if state.Flagged {
		t.Fatalf("Trust %d is not below the threshold, must not flag", state.TrustScore)
	}

	monitor.LogEvent(&state, EventTabSwitch, 5, "", eventTime)
	if state.TrustScore != 40 || !state.Flagged {
		t.Fatalf("Expected trust 40 and flagged, got %d flagged=%v", state.TrustScore, state.Flagged)
	}

	// The flag latches even if no further penalties apply.
	monitor.LogEvent(&state, "harmless", 6, "", eventTime)
	if !state.Flagged {
		t.Error("Flag must never clear within a session")
	}
}

func TestMaxViolationsFlagsBeforeThreshold(t *testing.T) {
	config := DefaultConfig()
	config.MaxViolations = 3
	monitor := NewMonitor(config)
	state := models.NewTelemetryState()

	for i := 0; i < 3; i++ {
		monitor.LogEvent(&state, EventTabSwitch, i, "", eventTime)
	}
	if state.Flagged {
		t.Fatalf("3 violations are within the limit, got flagged at trust %d", state.TrustScore)
	}

	// 4th violation exceeds the limit while trust (60) is still above the
	// threshold of 50.
	monitor.LogEvent(&state, EventTabSwitch, 3, "", eventTime)
	if state.TrustScore != 60 {
		t.Errorf("Expected trust 60, got %d", state.TrustScore)
	}
	if !state.Flagged {
		t.Error("Exceeding max violations must flag the session")
	}
}

func TestViolationCountIgnoresUnpenalizedEvents(t *testing.T) {
	config := DefaultConfig()
	config.MaxViolations = 2
	monitor := NewMonitor(config)
	state := models.NewTelemetryState()

	for i := 0; i < 5; i++ {
		monitor.LogEvent(&state, "window_resize", i, "", eventTime)
	}
	if state.Flagged {
		t.Error("Unpenalized events must not count as violations")
	}
}
