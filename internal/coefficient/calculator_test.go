package coefficient

import (
	"math"
	"testing"
	"time"
)

func snap(fs, rc, de float64) SignalSnapshot {
	return SignalSnapshot{
		FusionStrength:      fs,
		ReflectiveCoherence: rc,
		EnergyGradient:      de,
		Timestamp:           time.Now(),
	}
}

func TestCoefficientFormula(t *testing.T) {
	calc := NewCalculator(DefaultConfig())

	result, warnings := calc.Compute(snap(0.82, 0.77, 0.0003))
	if len(warnings) != 0 {
		t.Fatalf("unexpected warnings: %v", warnings)
	}

	want := 0.82 * 0.77 * (1 - 0.0003)
	if math.Abs(result.Coefficient-want) > 1e-9 {
		t.Fatalf("coefficient = %f, want %f", result.Coefficient, want)
	}
	if math.Abs(result.Coefficient-0.6312) > 0.0005 {
		t.Fatalf("coefficient = %f, want ≈ 0.6312", result.Coefficient)
	}
}

func TestCoefficientAlwaysInRange(t *testing.T) {
	cases := []struct{ fs, rc, de float64 }{
		{0, 0, 0},
		{1, 1, 0},
		{1, 1, 1},
		{1, 1, -1},
		{0.5, 0.5, 0.5},
		{1, 0.001, -0.999},
	}
	for _, tc := range cases {
		calc := NewCalculator(DefaultConfig())
		result, _ := calc.Compute(snap(tc.fs, tc.rc, tc.de))
		if result.Coefficient < 0 || result.Coefficient > 1 {
			t.Fatalf("coefficient %f out of [0,1] for inputs %+v", result.Coefficient, tc)
		}
		if result.IntegrityIndex < 0 || result.IntegrityIndex > 1 {
			t.Fatalf("integrity index %f out of [0,1] for inputs %+v", result.IntegrityIndex, tc)
		}
	}
}

func TestOutOfRangeInputsClamped(t *testing.T) {
	calc := NewCalculator(DefaultConfig())

	result, warnings := calc.Compute(snap(1.4, -0.2, 2.0))
	if len(warnings) != 3 {
		t.Fatalf("expected 3 warnings, got %d: %v", len(warnings), warnings)
	}

	// fs→1, rc→0, de→1 ⇒ coefficient 0
	if result.Coefficient != 0 {
		t.Fatalf("coefficient = %f, want 0 after clamping", result.Coefficient)
	}

	fields := map[string]bool{}
	for _, w := range warnings {
		fields[w.Field] = true
	}
	for _, f := range []string{"fusion_strength", "reflective_coherence", "energy_gradient"} {
		if !fields[f] {
			t.Fatalf("missing clamp warning for %s", f)
		}
	}
}

func TestInstabilityFlag(t *testing.T) {
	calc := NewCalculator(DefaultConfig())

	result, _ := calc.Compute(snap(0.9, 0.9, 0.6))
	if !result.Unstable {
		t.Fatal("expected unstable for |energy_gradient| = 0.6")
	}

	result, _ = calc.Compute(snap(0.9, 0.9, 0.5))
	if result.Unstable {
		t.Fatal("|energy_gradient| = 0.5 is at the limit, not past it")
	}
}

func TestSmoothingDampsNoise(t *testing.T) {
	calc := NewCalculator(DefaultConfig())

	// Steady samples, then one spike.
	for i := 0; i < 6; i++ {
		calc.Compute(snap(0.8, 0.8, 0))
	}
	result, _ := calc.Compute(snap(0.2, 0.2, 0))

	steady := 0.8 * 0.8
	spike := 0.2 * 0.2
	if result.MeanEnergy <= spike || result.MeanEnergy >= steady {
		t.Fatalf("mean energy %f should sit between spike %f and steady %f", result.MeanEnergy, spike, steady)
	}
	if result.Gradient >= 0 {
		t.Fatalf("gradient %f should be negative after a drop", result.Gradient)
	}
}

func TestGradientZeroWhileWindowPrimes(t *testing.T) {
	calc := NewCalculator(DefaultConfig())
	result, _ := calc.Compute(snap(0.7, 0.7, 0))
	if result.Gradient != 0 {
		t.Fatalf("gradient = %f on first sample, want 0", result.Gradient)
	}
}

func TestPropagationStateBoundaries(t *testing.T) {
	cases := []struct {
		coeff float64
		want  PropagationState
	}{
		{0.96, StateFullSync},
		{0.95, StateFullSync},
		{0.90, StatePartialSync},
		{0.85, StatePartialSync},
		{0.80, StateDrift},
		{0.70, StateDrift},
		{0.69, StateDesync},
	}
	calc := NewCalculator(DefaultConfig())
	for _, tc := range cases {
		if got := calc.propagationState(tc.coeff); got != tc.want {
			t.Errorf("propagationState(%f) = %s, want %s", tc.coeff, got, tc.want)
		}
	}
}
