package logging

import "time"

// #region event-kinds
// Health event kinds. The health_log table is the operator's first stop
// when a cycle misbehaves; kinds stay stable across releases.
const (
	EventRangeClamped = "range_clamped"
	EventStaleSkip    = "stale_skip"
	EventDriftBreach  = "drift_breach"
	EventFeedbackDLQ  = "feedback_dlq"
)

// #endregion event-kinds

// #region health-entry
// HealthEntry is a single row in the health_log table.
type HealthEntry struct {
	Instrument string
	CycleID    string
	Kind       string
	Detail     string
	CreatedAt  time.Time
}

// #endregion health-entry
