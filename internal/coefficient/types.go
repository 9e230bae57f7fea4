package coefficient

import "time"

// #region snapshot

// SignalSnapshot is one immutable upstream reading for an instrument.
// Produced externally, consumed once per cycle.
type SignalSnapshot struct {
	FusionStrength      float64 // [0, 1]
	ReflectiveCoherence float64 // [0, 1]
	EnergyGradient      float64 // [-1, 1]
	Timestamp           time.Time
}

// #endregion snapshot

// #region propagation-state

// PropagationState labels how tightly the fusion and reflective layers
// are synchronized. Informational; logged with evolution snapshots.
type PropagationState string

const (
	StateFullSync    PropagationState = "full_sync"
	StatePartialSync PropagationState = "partial_sync"
	StateDrift       PropagationState = "drift"
	StateDesync      PropagationState = "desync"
)

// #endregion propagation-state

// #region result

// Result carries the composite coefficient and its smoothed statistics.
// Owned by the cycle that produced it; never mutated after creation.
type Result struct {
	Coefficient    float64 // fusion_reflective coefficient, [0, 1]
	MeanEnergy     float64 // smoothed coefficient over the window, [0, 1]
	Gradient       float64 // smoothed per-cycle coefficient change, [-1, 1]
	IntegrityIndex float64 // closeness of this sample to the smoothed mean, [0, 1]
	Unstable       bool    // energy gradient magnitude past the instability limit
	State          PropagationState
}

// #endregion result

// #region warning

// Warning reports a non-fatal input clamped into its declared range.
type Warning struct {
	Field   string
	Raw     float64
	Clamped float64
}

// #endregion warning

// #region config

// Config holds smoothing and instability parameters.
type Config struct {
	SmoothingAlpha   float64 `yaml:"smoothing_alpha"`   // EWMA coefficient for mean energy and gradient
	WindowSize       int     `yaml:"window_size"`       // number of recent samples the smoothing covers
	InstabilityLimit float64 `yaml:"instability_limit"` // |energy_gradient| above this sets Unstable

	// Propagation state boundaries on the coefficient.
	FullSyncFloor    float64 `yaml:"full_sync_floor"`
	PartialSyncFloor float64 `yaml:"partial_sync_floor"`
	DriftFloor       float64 `yaml:"drift_floor"`
}

// DefaultConfig returns the reference smoothing parameters.
func DefaultConfig() Config {
	return Config{
		SmoothingAlpha:   0.4,
		WindowSize:       8,
		InstabilityLimit: 0.5,
		FullSyncFloor:    0.95,
		PartialSyncFloor: 0.85,
		DriftFloor:       0.70,
	}
}

// #endregion config
