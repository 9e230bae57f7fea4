package replay

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/danielpatrickdp/reflex-controller/internal/audit"
	"github.com/danielpatrickdp/reflex-controller/internal/evolution"
)

// #region fixture-tests

// TestFixture_RecordedSession loads the recorded_session fixture, runs
// Replay(), and compares each cycle's classifications against the expected
// states. Catches drift when classification parameters change.
func TestFixture_RecordedSession(t *testing.T) {
	fixturePath := filepath.Join("testdata", "recorded_session.json")
	f, err := LoadFixture(fixturePath)
	if err != nil {
		t.Fatalf("LoadFixture: %v", err)
	}

	cycles := make([]RecordedCycle, len(f.Cycles))
	for i := range f.Cycles {
		cycles[i] = f.Cycles[i].ToRecordedCycle(f.Instrument)
	}

	results := Replay(f.Instrument, cycles, f.Config.ToReplayConfig())
	if len(results) != len(f.Cycles) {
		t.Fatalf("expected %d results, got %d", len(f.Cycles), len(results))
	}

	for _, m := range Verify(f, results) {
		t.Errorf("cycle %s: %s: want %s, got %s", m.CycleID, m.Field, m.Want, m.Got)
	}
}

func TestLoadFixture_MissingFile(t *testing.T) {
	_, err := LoadFixture(filepath.Join("testdata", "does_not_exist.json"))
	if err == nil {
		t.Fatal("expected error for missing fixture")
	}
}

func TestLoadFixture_BadJSON(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "bad.json")
	os.WriteFile(path, []byte("not json"), 0o644)

	_, err := LoadFixture(path)
	if err == nil {
		t.Fatal("expected parse error")
	}
}

// #endregion fixture-tests

// #region config-tests

func TestFixtureConfigOverrides(t *testing.T) {
	fc := FixtureConfig{LearningRate: 0.1, AcceptFloor: 0.95}
	config := fc.ToReplayConfig()

	if config.Evolution.LearningRate != 0.1 {
		t.Errorf("learning rate override lost: %f", config.Evolution.LearningRate)
	}
	if config.Audit.AcceptFloor != 0.95 {
		t.Errorf("accept floor override lost: %f", config.Audit.AcceptFloor)
	}
	// Untouched fields keep defaults.
	if config.Evolution.MaxWeightDelta != evolution.DefaultConfig().MaxWeightDelta {
		t.Errorf("unset field lost its default: %f", config.Evolution.MaxWeightDelta)
	}
}

// #endregion config-tests

// #region verify-tests

func TestVerifyReportsMismatches(t *testing.T) {
	f := &Fixture{
		ExpectedResults: []FixtureExpectedResult{
			{CycleID: "c-1", IntegrityStates: []string{"ACCEPTED"}},
			{CycleID: "c-missing", IntegrityStates: []string{"ACCEPTED"}},
		},
	}
	results := []CycleResult{
		{CycleID: "c-1", States: []audit.IntegrityState{audit.StateRejected}},
	}

	mismatches := Verify(f, results)
	if len(mismatches) != 2 {
		t.Fatalf("expected 2 mismatches, got %d: %+v", len(mismatches), mismatches)
	}
}

// #endregion verify-tests
