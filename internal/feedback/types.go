package feedback

import "time"

// #region severity

// Severity grades a corrective feedback message.
type Severity string

const (
	SeverityPositive Severity = "positive"
	SeverityNeutral  Severity = "neutral"
	SeverityNegative Severity = "negative"
)

// #endregion severity

// #region message

// Message is corrective feedback routed from the auditor back into the
// adaptive layers. Created once per rejected decision; consumed exactly
// once by the evolution engine (consumers deduplicate by SourceCycleID).
type Message struct {
	SourceCycleID  string
	Instrument     string
	CorrectionHint string
	Severity       Severity
	TIIScore       float64
	BiasDelta      float64
	CreatedAt      time.Time
}

// #endregion message

// #region consumer

// Consumer receives feedback messages from the bus. Accept must be
// idempotent: redelivery of a message with a known SourceCycleID is a no-op.
type Consumer interface {
	Accept(msg Message) error
}

// #endregion consumer

// #region config

// Config holds bus delivery parameters.
type Config struct {
	DeliveryTimeout time.Duration // per-message delivery budget
	QueueDepth      int           // retained messages per instrument; the oldest overflows to the dead-letter sink
}

// DefaultConfig returns the reference bus parameters.
func DefaultConfig() Config {
	return Config{
		DeliveryTimeout: 2 * time.Second,
		QueueDepth:      16,
	}
}

// #endregion config
