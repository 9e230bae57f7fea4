package evolution

import (
	"errors"

	"github.com/danielpatrickdp/reflex-controller/internal/coefficient"
	"github.com/danielpatrickdp/reflex-controller/internal/feedback"
)

// ErrInvariantViolation reports a weight update that could not be kept
// inside the bounded-delta invariant. It indicates a logic defect and
// aborts only the offending instrument's cycle.
var ErrInvariantViolation = errors.New("evolution: weight update breaks bounded-delta invariant")

// #region mode

// Mode is the engine's only stateful mode transition: STABLE ⇄ RECOVERING.
type Mode string

const (
	ModeStable     Mode = "STABLE"
	ModeRecovering Mode = "RECOVERING"
)

// #endregion mode

// #region weights

// Weights is the bounded adaptive weight vector. Each component stays in
// [0, 1]; per-cycle change per component never exceeds the configured bound.
// Owned exclusively by the engine; read-only everywhere else.
type Weights struct {
	Alpha float64
	Beta  float64
	Gamma float64
}

// Sum returns alpha + beta + gamma.
func (w Weights) Sum() float64 { return w.Alpha + w.Beta + w.Gamma }

// UniformWeights is the known-safe configuration recovery falls back to
// when no last-known-good snapshot exists.
func UniformWeights() Weights {
	return Weights{Alpha: 1.0 / 3, Beta: 1.0 / 3, Gamma: 1.0 / 3}
}

// #endregion weights

// #region state

// State is the engine's persistent health state, the longest-lived entity
// in the core. Mutated once per cycle by the engine only.
type State struct {
	ReflectiveFieldResonance float64 // [0, 1]
	EvolutionDriftRate       float64 // [-1, 1], signed change of resonance
	MetaIntegrityScore       float64 // [0, 1]
	FieldVariance            float64 // ≥ 0
}

// #endregion state

// #region step-io

// StepInput is the immutable per-cycle input to the engine.
type StepInput struct {
	CycleID     string
	Coefficient coefficient.Result
}

// StepResult reports what one engine cycle did.
type StepResult struct {
	Weights  Weights
	State    State
	Mode     Mode
	Gradient float64 // accumulated reflective gradient ΔR

	DriftBreach    bool     // this cycle crossed into RECOVERING
	Recovered      bool     // this cycle returned to STABLE
	ConsumedCycles []string // feedback source cycle ids applied this step
}

// #endregion step-io

// #region config

// Config holds learning, smoothing, and recovery parameters. The recovery
// boundary is configurable because the source material cites both 0.93 and
// 0.95; the default follows the stricter value.
type Config struct {
	LearningRate   float64 `yaml:"learning_rate"`    // scales per-weight deltas
	MaxWeightDelta float64 `yaml:"max_weight_delta"` // hard per-cycle bound on each weight's change
	RenormFloor    float64 `yaml:"renorm_floor"`     // renormalize when the weight sum leaves [floor, ceiling]
	RenormCeiling  float64 `yaml:"renorm_ceiling"`

	ResonanceSmoothing float64 `yaml:"resonance_smoothing"` // pull of resonance toward its target
	IntegritySmoothing float64 `yaml:"integrity_smoothing"` // EWMA coefficient for integrity history
	VarianceDecay      float64 `yaml:"variance_decay"`      // EWMA coefficient for field variance
	ResonanceWeight    float64 `yaml:"resonance_weight"`    // blend weights for the meta-integrity score
	IntegrityWeight    float64 `yaml:"integrity_weight"`

	RecoveryFloor     float64 `yaml:"recovery_floor"`      // meta integrity below this counts as a breach
	VarianceCeiling   float64 `yaml:"variance_ceiling"`    // field variance at or above this counts as a breach
	BreachCycles      int     `yaml:"breach_cycles"`       // consecutive breaches before entering RECOVERING
	MaxRecoveryCycles int     `yaml:"max_recovery_cycles"` // corrective pulls stop after this many cycles

	DedupCapacity int `yaml:"dedup_capacity"` // remembered feedback source ids
}

// DefaultConfig returns the reference engine parameters.
func DefaultConfig() Config {
	return Config{
		LearningRate:       0.02,
		MaxWeightDelta:     0.05,
		RenormFloor:        0.95,
		RenormCeiling:      1.05,
		ResonanceSmoothing: 0.3,
		IntegritySmoothing: 0.3,
		VarianceDecay:      0.25,
		ResonanceWeight:    0.4,
		IntegrityWeight:    0.6,
		RecoveryFloor:      0.95,
		VarianceCeiling:    0.1,
		BreachCycles:       2,
		MaxRecoveryCycles:  12,
		DedupCapacity:      1024,
	}
}

// #endregion config

// compile-time check: the engine is a bus consumer.
var _ feedback.Consumer = (*Engine)(nil)
