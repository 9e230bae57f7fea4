package main

import (
	"database/sql"
	"encoding/json"
	"flag"
	"fmt"
	"math"
	"os"
	"strings"
	"time"

	"github.com/danielpatrickdp/reflex-controller/internal/audit"
	"github.com/danielpatrickdp/reflex-controller/internal/replay"
	"github.com/danielpatrickdp/reflex-controller/internal/state"
	_ "modernc.org/sqlite"
)

// #region main

func main() {
	dbPath := flag.String("db", "", "path to reflex_controller.db")
	instrument := flag.String("instrument", "EURUSD", "instrument to export")
	last := flag.Int("last", 8, "number of most recent cycles to export")
	outPath := flag.String("out", "", "output fixture JSON path")
	flag.Parse()

	if *dbPath == "" || *outPath == "" {
		fmt.Fprintln(os.Stderr, "usage: fixture-export --db path/to/db --out path/to/fixture.json [--instrument X] [--last N]")
		os.Exit(2)
	}

	if err := run(*dbPath, *instrument, *last, *outPath); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

// #endregion main

// #region extract

// cycleGroup collects one cycle's audit rows under its base cycle id.
type cycleGroup struct {
	CycleID   string
	Timestamp time.Time
	Records   []audit.Record
}

func run(dbPath, instrument string, last int, outPath string) error {
	store, err := state.NewStore(dbPath)
	if err != nil {
		return fmt.Errorf("open db: %w", err)
	}
	defer store.Close()

	groups, err := recentCycles(store.DB(), instrument, last)
	if err != nil {
		return err
	}
	if len(groups) == 0 {
		return fmt.Errorf("no audit records found for %s", instrument)
	}

	fmt.Printf("Found %d cycles (%s)\n", len(groups), instrument)

	fixture := buildFixture(instrument, groups)
	return writeFixture(fixture, outPath)
}

// recentCycles reads the last N audited cycles in chronological order,
// grouping batch rows ("<cycle>/<i>") under their base cycle id.
func recentCycles(db *sql.DB, instrument string, last int) ([]cycleGroup, error) {
	rows, err := db.Query(
		`SELECT timestamp, cycle_id, decision, confidence, tii_score, reflective_resonance, bias_delta, integrity_state FROM (
			SELECT id, timestamp, cycle_id, decision, confidence, tii_score, reflective_resonance, bias_delta, integrity_state
			FROM audit_log WHERE instrument = ?
			ORDER BY id DESC LIMIT ?
		) sub ORDER BY id ASC`, instrument, last*4,
	)
	if err != nil {
		return nil, fmt.Errorf("query audit log: %w", err)
	}
	defer rows.Close()

	var groups []cycleGroup
	index := map[string]int{}
	for rows.Next() {
		var rec audit.Record
		var tsStr, integrityState string
		if err := rows.Scan(&tsStr, &rec.CycleID, &rec.Decision, &rec.Confidence,
			&rec.TIIScore, &rec.ReflectiveResonance, &rec.BiasDelta, &integrityState); err != nil {
			return nil, fmt.Errorf("scan row: %w", err)
		}
		rec.IntegrityState = audit.IntegrityState(integrityState)
		rec.Timestamp, _ = time.Parse(time.RFC3339Nano, tsStr)

		base := rec.CycleID
		if i := strings.LastIndex(base, "/"); i > 0 {
			base = base[:i]
		}
		if at, ok := index[base]; ok {
			groups[at].Records = append(groups[at].Records, rec)
			continue
		}
		if len(groups) == last {
			break
		}
		index[base] = len(groups)
		groups = append(groups, cycleGroup{CycleID: base, Timestamp: rec.Timestamp, Records: []audit.Record{rec}})
	}
	return groups, rows.Err()
}

// #endregion extract

// #region output

// buildFixture converts audited cycles into a replay fixture. The audit
// log does not retain the raw signal snapshot, so every cycle carries a
// reference snapshot; the export is a regression baseline for the audit
// stage, not the coefficient stage.
func buildFixture(instrument string, groups []cycleGroup) replay.Fixture {
	cycles := make([]replay.FixtureCycle, len(groups))
	expected := make([]replay.FixtureExpectedResult, len(groups))

	for i, g := range groups {
		fc := replay.FixtureCycle{
			CycleID: g.CycleID,
			Snapshot: replay.FixtureSnapshot{
				FusionStrength:      0.82,
				ReflectiveCoherence: 0.77,
				EnergyGradient:      0.0003,
				TimestampUnix:       g.Timestamp.Unix(),
			},
		}
		exp := replay.FixtureExpectedResult{CycleID: g.CycleID}

		for _, rec := range g.Records {
			fc.Decisions = append(fc.Decisions, replay.FixtureDecision{
				Decision:            rec.Decision,
				ConfidenceFusion:    rec.Confidence,
				ReflectiveResonance: rec.ReflectiveResonance,
				BiasDelta:           rec.BiasDelta,
				DeviationVariance:   deviationVariance(rec),
			})
			exp.IntegrityStates = append(exp.IntegrityStates, string(rec.IntegrityState))
		}

		cycles[i] = fc
		expected[i] = exp
	}

	return replay.Fixture{
		Description:     fmt.Sprintf("Production export: %d audited %s cycles", len(groups), instrument),
		Instrument:      instrument,
		Config:          replay.FixtureConfig{},
		Cycles:          cycles,
		ExpectedResults: expected,
	}
}

// deviationVariance recovers Vd by inverting the stored TII quotient.
func deviationVariance(rec audit.Record) float64 {
	if rec.TIIScore <= 0 {
		return 0
	}
	numerator := rec.Confidence * rec.ReflectiveResonance * (1 - math.Abs(rec.BiasDelta))
	vd := numerator/rec.TIIScore - audit.Epsilon
	if vd < 0 {
		return 0
	}
	return vd
}

func writeFixture(fixture replay.Fixture, outPath string) error {
	data, err := json.MarshalIndent(fixture, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal fixture: %w", err)
	}

	if err := os.WriteFile(outPath, data, 0644); err != nil {
		return fmt.Errorf("write %s: %w", outPath, err)
	}

	fmt.Printf("Wrote fixture to %s (%d bytes, %d cycles)\n", outPath, len(data), len(fixture.Cycles))
	return nil
}

// #endregion output
