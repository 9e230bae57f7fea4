package audit

import "time"

// Epsilon stabilizes the TII quotient against near-zero variance.
// The one constant in the core that is fixed by contract.
const Epsilon = 0.001

// #region integrity-state

// IntegrityState classifies one audited decision. Closed and exhaustive;
// a record is never reclassified after creation.
type IntegrityState string

const (
	StateAccepted IntegrityState = "ACCEPTED"
	StateReview   IntegrityState = "REVIEW"
	StateRejected IntegrityState = "REJECTED"
)

// #endregion integrity-state

// #region decision-context

// DecisionContext is the pending trade decision under audit, delivered by
// the upstream provider alongside the signal snapshot.
type DecisionContext struct {
	Instrument          string
	Decision            string  // "BUY" | "SELL" | "WAIT"
	ConfidenceFusion    float64 // Cf, [0, 1]
	ReflectiveResonance float64 // Rr, [0, 1]
	BiasDelta           float64 // Δb, [-1, 1]
	DeviationVariance   float64 // Vd, ≥ 0
}

// #endregion decision-context

// #region record

// Record is the immutable audit outcome for one decision. Field names and
// types are stable for the external audit store; archived append-only.
type Record struct {
	Timestamp           time.Time      `json:"timestamp"`
	CycleID             string         `json:"cycle_id"`
	Instrument          string         `json:"instrument"`
	Decision            string         `json:"decision"`
	Confidence          float64        `json:"confidence"`
	TIIScore            float64        `json:"tii_score"`
	ReflectiveResonance float64        `json:"reflective_resonance"`
	BiasDelta           float64        `json:"bias_delta"`
	IntegrityState      IntegrityState `json:"integrity_state"`
	Reason              string         `json:"reason"`
	FeedbackSent        bool           `json:"feedback_sent"`
}

// #endregion record

// #region config

// Config holds the classification and feedback-severity boundaries.
type Config struct {
	AcceptFloor float64 `yaml:"accept_floor"` // TII at or above this is ACCEPTED
	ReviewFloor float64 `yaml:"review_floor"` // TII at or above this (below AcceptFloor) is REVIEW

	// Feedback severity boundaries on the TII score.
	PositiveFloor float64 `yaml:"positive_floor"`
	NeutralFloor  float64 `yaml:"neutral_floor"`

	// FeedbackScale converts a TII score into the correction strength
	// carried in the feedback hint.
	FeedbackScale float64 `yaml:"feedback_scale"`
}

// DefaultConfig returns the reference audit boundaries.
func DefaultConfig() Config {
	return Config{
		AcceptFloor:   0.90,
		ReviewFloor:   0.75,
		PositiveFloor: 0.85,
		NeutralFloor:  0.70,
		FeedbackScale: 0.95,
	}
}

// #endregion config
