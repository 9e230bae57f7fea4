package threshold

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/danielpatrickdp/reflex-controller/internal/coefficient"
)

func TestRecomputeAtBaseline(t *testing.T) {
	ctrl := NewController(DefaultConfig())

	// Zero gradient, perfect integrity: every threshold sits at its base.
	set := ctrl.Recompute(coefficient.Result{Gradient: 0, IntegrityIndex: 1})

	cfg := DefaultConfig()
	if set.EMAAlignmentWeight != cfg.EMAAlignment.Base {
		t.Fatalf("ema = %f, want base %f", set.EMAAlignmentWeight, cfg.EMAAlignment.Base)
	}
	if set.VWAPSensitivity != cfg.VWAPSensitivity.Base {
		t.Fatalf("vwap = %f, want base %f", set.VWAPSensitivity, cfg.VWAPSensitivity.Base)
	}
	if set.FusionPrecisionTolerance != cfg.FusionPrecision.Base {
		t.Fatalf("precision = %f, want base %f", set.FusionPrecisionTolerance, cfg.FusionPrecision.Base)
	}
	if set.ReflexConfidenceMultiplier != cfg.ReflexConfidence.Base {
		t.Fatalf("reflex = %f, want base %f", set.ReflexConfidenceMultiplier, cfg.ReflexConfidence.Base)
	}
}

func TestBoundsAlwaysHeld(t *testing.T) {
	ctrl := NewController(DefaultConfig())
	cfg := DefaultConfig()

	results := []coefficient.Result{
		{Gradient: 1, IntegrityIndex: 0},
		{Gradient: -1, IntegrityIndex: 0},
		{Gradient: 1, IntegrityIndex: 1, Unstable: true},
		{Gradient: -1, IntegrityIndex: 0, Unstable: true},
	}

	for _, r := range results {
		set := ctrl.Recompute(r)
		checks := []struct {
			name  string
			value float64
			rule  Rule
		}{
			{"ema", set.EMAAlignmentWeight, cfg.EMAAlignment},
			{"vwap", set.VWAPSensitivity, cfg.VWAPSensitivity},
			{"precision", set.FusionPrecisionTolerance, cfg.FusionPrecision},
			{"reflex", set.ReflexConfidenceMultiplier, cfg.ReflexConfidence},
		}
		for _, c := range checks {
			if c.value < c.rule.Floor || c.value > c.rule.Ceiling {
				t.Fatalf("%s = %f outside [%f, %f] for input %+v", c.name, c.value, c.rule.Floor, c.rule.Ceiling, r)
			}
		}
	}
}

func TestUnstableAmplifiesStep(t *testing.T) {
	ctrl := NewController(DefaultConfig())

	smooth := ctrl.Recompute(coefficient.Result{Gradient: 0.1, IntegrityIndex: 1})
	amplified := ctrl.Recompute(coefficient.Result{Gradient: 0.1, IntegrityIndex: 1, Unstable: true})

	base := DefaultConfig().EMAAlignment.Base
	smoothStep := smooth.EMAAlignmentWeight - base
	amplifiedStep := amplified.EMAAlignmentWeight - base

	if amplifiedStep <= smoothStep {
		t.Fatalf("unstable step %f should exceed smooth step %f", amplifiedStep, smoothStep)
	}
}

func TestStatelessAcrossCycles(t *testing.T) {
	ctrl := NewController(DefaultConfig())
	input := coefficient.Result{Gradient: -0.3, IntegrityIndex: 0.8}

	first := ctrl.Recompute(input)
	// Interleave an unrelated cycle; the next identical input must match.
	ctrl.Recompute(coefficient.Result{Gradient: 0.9, IntegrityIndex: 0.1, Unstable: true})
	second := ctrl.Recompute(input)

	if first != second {
		t.Fatalf("controller kept state between cycles: %+v vs %+v", first, second)
	}
}

func TestExportWritesYAML(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "thresholds.yml")

	set := Set{
		EMAAlignmentWeight:         0.75,
		VWAPSensitivity:            1.25,
		FusionPrecisionTolerance:   0.02,
		ReflexConfidenceMultiplier: 0.3,
	}
	if err := Export(path, "EURUSD", set); err != nil {
		t.Fatalf("export: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read exported file: %v", err)
	}
	text := string(data)
	for _, want := range []string{"instrument: EURUSD", "ema_alignment_weight: 0.75", "vwap_sensitivity: 1.25"} {
		if !strings.Contains(text, want) {
			t.Fatalf("exported YAML missing %q:\n%s", want, text)
		}
	}
}
