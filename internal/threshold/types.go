package threshold

// #region set

// Set holds the operating thresholds consumed by the external analytic
// layers. Recomputed every cycle; never read back into this core.
type Set struct {
	EMAAlignmentWeight        float64 `yaml:"ema_alignment_weight"`
	VWAPSensitivity           float64 `yaml:"vwap_sensitivity"`
	FusionPrecisionTolerance  float64 `yaml:"fusion_precision_tolerance"`
	ReflexConfidenceMultiplier float64 `yaml:"reflex_confidence_multiplier"`
}

// #endregion set

// #region rule

// Rule is the affine adaptation for one threshold:
// value = clamp(Base + GradientGain·gradient + IntegrityGain·(integrity−1), Floor, Ceiling).
type Rule struct {
	Base          float64 `yaml:"base"`
	GradientGain  float64 `yaml:"gradient_gain"`
	IntegrityGain float64 `yaml:"integrity_gain"`
	Floor         float64 `yaml:"floor"`
	Ceiling       float64 `yaml:"ceiling"`
}

// #endregion rule

// #region config

// Config holds one rule per threshold plus the one-shot instability step.
type Config struct {
	EMAAlignment    Rule `yaml:"ema_alignment"`
	VWAPSensitivity Rule `yaml:"vwap_sensitivity"`
	FusionPrecision Rule `yaml:"fusion_precision"`
	ReflexConfidence Rule `yaml:"reflex_confidence"`

	// UnstableAmplifier scales the gradient term when the coefficient
	// carries the instability flag, replacing gradual adaptation with a
	// single amplified step.
	UnstableAmplifier float64 `yaml:"unstable_amplifier"`
}

// DefaultConfig approximates the original fusion controller's multipliers.
func DefaultConfig() Config {
	return Config{
		EMAAlignment:     Rule{Base: 0.75, GradientGain: 0.375, IntegrityGain: 0.15, Floor: 0.40, Ceiling: 1.00},
		VWAPSensitivity:  Rule{Base: 1.25, GradientGain: 0.25, IntegrityGain: 0.50, Floor: 0.80, Ceiling: 1.60},
		FusionPrecision:  Rule{Base: 0.02, GradientGain: 0.01, IntegrityGain: -0.005, Floor: 0.005, Ceiling: 0.05},
		ReflexConfidence: Rule{Base: 0.30, GradientGain: 0.10, IntegrityGain: 0.20, Floor: 0.05, Ceiling: 0.60},
		UnstableAmplifier: 2.5,
	}
}

// #endregion config
