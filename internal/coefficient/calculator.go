package coefficient

import "math"

// #region calculator

// Calculator combines upstream signals into the composite coefficient and
// keeps a small smoothing window to damp single-sample noise. One instance
// per instrument; not safe for concurrent use.
type Calculator struct {
	config Config
	window []float64 // most recent coefficient samples, oldest first
}

// NewCalculator creates a calculator with the given configuration.
func NewCalculator(config Config) *Calculator {
	if config.WindowSize < 1 {
		config.WindowSize = 1
	}
	return &Calculator{config: config}
}

// #endregion calculator

// #region compute

// Compute derives the coefficient for one snapshot and updates the smoothing
// window. Inputs outside their declared ranges are clamped and reported as
// warnings; computation always proceeds.
func (c *Calculator) Compute(snap SignalSnapshot) (Result, []Warning) {
	var warnings []Warning

	fs := clampField("fusion_strength", snap.FusionStrength, 0, 1, &warnings)
	rc := clampField("reflective_coherence", snap.ReflectiveCoherence, 0, 1, &warnings)
	de := clampField("energy_gradient", snap.EnergyGradient, -1, 1, &warnings)

	coeff := fs * rc * (1 - math.Abs(de))

	c.push(coeff)
	mean := c.smoothedMean()
	grad := c.smoothedGradient()

	// Stability of this sample relative to the smoothed mean.
	integrity := clamp01(1 - math.Abs(coeff-mean))

	return Result{
		Coefficient:    coeff,
		MeanEnergy:     mean,
		Gradient:       grad,
		IntegrityIndex: integrity,
		Unstable:       math.Abs(de) > c.config.InstabilityLimit,
		State:          c.propagationState(coeff),
	}, warnings
}

// #endregion compute

// #region smoothing

// push appends a sample, dropping the oldest once the window is full.
func (c *Calculator) push(sample float64) {
	c.window = append(c.window, sample)
	if len(c.window) > c.config.WindowSize {
		c.window = c.window[1:]
	}
}

// smoothedMean folds the window through an EWMA, oldest sample first.
func (c *Calculator) smoothedMean() float64 {
	mean := c.window[0]
	for _, s := range c.window[1:] {
		mean += c.config.SmoothingAlpha * (s - mean)
	}
	return mean
}

// smoothedGradient applies the same EWMA to successive sample deltas.
// Returns 0 until the window holds at least two samples.
func (c *Calculator) smoothedGradient() float64 {
	if len(c.window) < 2 {
		return 0
	}
	grad := c.window[1] - c.window[0]
	for i := 2; i < len(c.window); i++ {
		d := c.window[i] - c.window[i-1]
		grad += c.config.SmoothingAlpha * (d - grad)
	}
	return grad
}

// #endregion smoothing

// #region state-label

func (c *Calculator) propagationState(coeff float64) PropagationState {
	switch {
	case coeff >= c.config.FullSyncFloor:
		return StateFullSync
	case coeff >= c.config.PartialSyncFloor:
		return StatePartialSync
	case coeff >= c.config.DriftFloor:
		return StateDrift
	default:
		return StateDesync
	}
}

// #endregion state-label

// #region helpers

// clampField restricts v to [lo, hi], recording a warning when it was outside.
func clampField(name string, v, lo, hi float64, warnings *[]Warning) float64 {
	if v < lo {
		*warnings = append(*warnings, Warning{Field: name, Raw: v, Clamped: lo})
		return lo
	}
	if v > hi {
		*warnings = append(*warnings, Warning{Field: name, Raw: v, Clamped: hi})
		return hi
	}
	return v
}

// clamp01 restricts v to [0, 1].
func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

// #endregion helpers
