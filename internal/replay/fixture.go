package replay

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/danielpatrickdp/reflex-controller/internal/audit"
	"github.com/danielpatrickdp/reflex-controller/internal/coefficient"
)

// #region fixture-types

// Fixture is the top-level JSON structure for a replay fixture.
type Fixture struct {
	Description     string                  `json:"description"`
	Instrument      string                  `json:"instrument"`
	Config          FixtureConfig           `json:"config"`
	Cycles          []FixtureCycle          `json:"cycles"`
	ExpectedResults []FixtureExpectedResult `json:"expected_results"`
}

// FixtureSnapshot mirrors coefficient.SignalSnapshot with JSON tags.
type FixtureSnapshot struct {
	FusionStrength      float64 `json:"fusion_strength"`
	ReflectiveCoherence float64 `json:"reflective_coherence"`
	EnergyGradient      float64 `json:"energy_gradient"`
	TimestampUnix       int64   `json:"timestamp_unix"`
}

// FixtureDecision mirrors audit.DecisionContext with JSON tags.
type FixtureDecision struct {
	Decision            string  `json:"decision"`
	ConfidenceFusion    float64 `json:"confidence_fusion"`
	ReflectiveResonance float64 `json:"reflective_resonance"`
	BiasDelta           float64 `json:"bias_delta"`
	DeviationVariance   float64 `json:"deviation_variance"`
}

// FixtureCycle is one recorded cycle.
type FixtureCycle struct {
	CycleID   string            `json:"cycle_id"`
	Snapshot  FixtureSnapshot   `json:"snapshot"`
	Decisions []FixtureDecision `json:"decisions"`
}

// FixtureExpectedResult captures the expected classification per cycle.
type FixtureExpectedResult struct {
	CycleID         string   `json:"cycle_id"`
	IntegrityStates []string `json:"integrity_states"`
	Mode            string   `json:"mode,omitempty"`
}

// FixtureConfig overrides stage defaults. Zero-valued fields keep the
// reference defaults.
type FixtureConfig struct {
	LearningRate   float64 `json:"learning_rate,omitempty"`
	MaxWeightDelta float64 `json:"max_weight_delta,omitempty"`
	AcceptFloor    float64 `json:"accept_floor,omitempty"`
	ReviewFloor    float64 `json:"review_floor,omitempty"`
	SmoothingAlpha float64 `json:"smoothing_alpha,omitempty"`
}

// #endregion fixture-types

// #region fixture-loader

// LoadFixture reads and parses a JSON fixture file.
func LoadFixture(path string) (*Fixture, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read fixture %s: %w", path, err)
	}
	var f Fixture
	if err := json.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parse fixture %s: %w", path, err)
	}
	return &f, nil
}

// ToRecordedCycle converts a FixtureCycle to a domain RecordedCycle.
func (fc *FixtureCycle) ToRecordedCycle(instrument string) RecordedCycle {
	rc := RecordedCycle{
		CycleID: fc.CycleID,
		At:      time.Unix(fc.Snapshot.TimestampUnix, 0).UTC(),
		Snapshot: coefficient.SignalSnapshot{
			FusionStrength:      fc.Snapshot.FusionStrength,
			ReflectiveCoherence: fc.Snapshot.ReflectiveCoherence,
			EnergyGradient:      fc.Snapshot.EnergyGradient,
			Timestamp:           time.Unix(fc.Snapshot.TimestampUnix, 0).UTC(),
		},
	}
	for _, d := range fc.Decisions {
		rc.Decisions = append(rc.Decisions, audit.DecisionContext{
			Instrument:          instrument,
			Decision:            d.Decision,
			ConfidenceFusion:    d.ConfidenceFusion,
			ReflectiveResonance: d.ReflectiveResonance,
			BiasDelta:           d.BiasDelta,
			DeviationVariance:   d.DeviationVariance,
		})
	}
	return rc
}

// ToReplayConfig converts fixture overrides to a full ReplayConfig.
func (fc *FixtureConfig) ToReplayConfig() ReplayConfig {
	config := DefaultReplayConfig()
	if fc.LearningRate != 0 {
		config.Evolution.LearningRate = fc.LearningRate
	}
	if fc.MaxWeightDelta != 0 {
		config.Evolution.MaxWeightDelta = fc.MaxWeightDelta
	}
	if fc.AcceptFloor != 0 {
		config.Audit.AcceptFloor = fc.AcceptFloor
	}
	if fc.ReviewFloor != 0 {
		config.Audit.ReviewFloor = fc.ReviewFloor
	}
	if fc.SmoothingAlpha != 0 {
		config.Coefficient.SmoothingAlpha = fc.SmoothingAlpha
	}
	return config
}

// #endregion fixture-loader

// #region verify

// Mismatch is one divergence between a replay result and its expectation.
type Mismatch struct {
	CycleID string
	Field   string
	Want    string
	Got     string
}

// Verify compares replay results against the fixture's expectations.
// Cycles without an expectation are not checked.
func Verify(f *Fixture, results []CycleResult) []Mismatch {
	byID := make(map[string]CycleResult, len(results))
	for _, r := range results {
		byID[r.CycleID] = r
	}

	var mismatches []Mismatch
	for _, exp := range f.ExpectedResults {
		got, ok := byID[exp.CycleID]
		if !ok {
			mismatches = append(mismatches, Mismatch{CycleID: exp.CycleID, Field: "cycle", Want: "present", Got: "missing"})
			continue
		}
		if len(exp.IntegrityStates) != len(got.States) {
			mismatches = append(mismatches, Mismatch{
				CycleID: exp.CycleID, Field: "integrity_states",
				Want: fmt.Sprintf("%d states", len(exp.IntegrityStates)),
				Got:  fmt.Sprintf("%d states", len(got.States)),
			})
			continue
		}
		for i, want := range exp.IntegrityStates {
			if string(got.States[i]) != want {
				mismatches = append(mismatches, Mismatch{
					CycleID: exp.CycleID, Field: fmt.Sprintf("integrity_states[%d]", i),
					Want: want, Got: string(got.States[i]),
				})
			}
		}
		if exp.Mode != "" && string(got.Mode) != exp.Mode {
			mismatches = append(mismatches, Mismatch{
				CycleID: exp.CycleID, Field: "mode", Want: exp.Mode, Got: string(got.Mode),
			})
		}
	}
	return mismatches
}

// #endregion verify
