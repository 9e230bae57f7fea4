package evolution

import (
	"errors"
	"math"
	"testing"

	"github.com/danielpatrickdp/reflex-controller/internal/coefficient"
	"github.com/danielpatrickdp/reflex-controller/internal/feedback"
)

// healthyResult mirrors a perfectly stable upstream cycle.
func healthyResult() coefficient.Result {
	return coefficient.Result{
		Coefficient:    0.8,
		MeanEnergy:     0.8,
		Gradient:       0,
		IntegrityIndex: 1,
	}
}

// degradedResult mirrors a cycle with collapsing integrity.
func degradedResult() coefficient.Result {
	return coefficient.Result{
		Coefficient:    0.3,
		MeanEnergy:     0.6,
		Gradient:       -0.4,
		IntegrityIndex: 0.2,
	}
}

func TestWeightDeltaAlwaysBounded(t *testing.T) {
	config := DefaultConfig()
	config.LearningRate = 50 // force the clamp to do the work

	engine := NewEngine(config)
	engine.Accept(feedback.Message{SourceCycleID: "c-1", TIIScore: 0.1, BiasDelta: 0.9})

	inputs := []coefficient.Result{
		healthyResult(),
		degradedResult(),
		{Coefficient: 1, MeanEnergy: 0, Gradient: 1, IntegrityIndex: 0},
		{Coefficient: 0, MeanEnergy: 1, Gradient: -1, IntegrityIndex: 1},
	}
	for i, in := range inputs {
		before := engine.Weights()
		result, err := engine.Step(StepInput{CycleID: "cycle", Coefficient: in})
		if err != nil {
			t.Fatalf("step %d: %v", i, err)
		}
		after := result.Weights

		deltas := []float64{
			after.Alpha - before.Alpha,
			after.Beta - before.Beta,
			after.Gamma - before.Gamma,
		}
		for j, d := range deltas {
			if math.Abs(d) > config.MaxWeightDelta+1e-9 {
				t.Fatalf("step %d weight %d delta %f exceeds bound %f", i, j, d, config.MaxWeightDelta)
			}
		}
		for _, w := range []float64{after.Alpha, after.Beta, after.Gamma} {
			if w < 0 || w > 1 {
				t.Fatalf("step %d weight %f outside [0,1]", i, w)
			}
		}
	}
}

func TestNoFeedbackDefaultsToZeroTerms(t *testing.T) {
	engine := NewEngine(DefaultConfig())

	// Zero gradient and no feedback: the accumulated gradient must be zero
	// and the weights must not move.
	before := engine.Weights()
	result, err := engine.Step(StepInput{CycleID: "c-1", Coefficient: healthyResult()})
	if err != nil {
		t.Fatalf("step: %v", err)
	}
	if result.Gradient != 0 {
		t.Fatalf("gradient = %f with no inputs, want 0", result.Gradient)
	}
	if result.Weights != before {
		t.Fatalf("weights moved without any signal: %+v → %+v", before, result.Weights)
	}
}

func TestFeedbackDeduplicatedBySourceCycle(t *testing.T) {
	engine := NewEngine(DefaultConfig())

	msg := feedback.Message{SourceCycleID: "c-7", TIIScore: 0.4, BiasDelta: 0.2}
	engine.Accept(msg)
	engine.Accept(msg) // redelivery
	engine.Accept(msg)

	result, err := engine.Step(StepInput{CycleID: "c-8", Coefficient: healthyResult()})
	if err != nil {
		t.Fatalf("step: %v", err)
	}
	if len(result.ConsumedCycles) != 1 || result.ConsumedCycles[0] != "c-7" {
		t.Fatalf("consumed %v, want exactly one c-7", result.ConsumedCycles)
	}

	// A later redelivery must also be a no-op.
	engine.Accept(msg)
	result, err = engine.Step(StepInput{CycleID: "c-9", Coefficient: healthyResult()})
	if err != nil {
		t.Fatalf("step: %v", err)
	}
	if len(result.ConsumedCycles) != 0 {
		t.Fatalf("redelivered message consumed again: %v", result.ConsumedCycles)
	}
}

func TestAbortedStepRetainsFeedback(t *testing.T) {
	// A zero weight vector cannot be renormalized; the step must abort
	// without consuming the pending correction.
	engine := NewEngineFrom(DefaultConfig(), Weights{},
		State{ReflectiveFieldResonance: 1, MetaIntegrityScore: 1}, ModeStable)

	msg := feedback.Message{SourceCycleID: "c-pending", TIIScore: 0.4, BiasDelta: 0.1}
	engine.Accept(msg)

	_, err := engine.Step(StepInput{CycleID: "c-1", Coefficient: healthyResult()})
	if !errors.Is(err, ErrInvariantViolation) {
		t.Fatalf("expected invariant violation, got %v", err)
	}

	// Redelivery of the retained message stays a no-op.
	engine.Accept(msg)

	engine.weights = UniformWeights()
	result, err := engine.Step(StepInput{CycleID: "c-2", Coefficient: healthyResult()})
	if err != nil {
		t.Fatalf("step after repair: %v", err)
	}
	if len(result.ConsumedCycles) != 1 || result.ConsumedCycles[0] != "c-pending" {
		t.Fatalf("retained feedback not consumed exactly once: %v", result.ConsumedCycles)
	}
}

func TestRecoveryLiveness(t *testing.T) {
	engine := NewEngine(DefaultConfig())

	// Two consecutive degraded cycles force a breach streak of two.
	r1, err := engine.Step(StepInput{CycleID: "c-1", Coefficient: degradedResult()})
	if err != nil {
		t.Fatalf("step 1: %v", err)
	}
	if r1.Mode != ModeStable {
		t.Fatalf("one breach should not trigger recovery, mode = %s", r1.Mode)
	}

	r2, err := engine.Step(StepInput{CycleID: "c-2", Coefficient: degradedResult()})
	if err != nil {
		t.Fatalf("step 2: %v", err)
	}
	if r2.Mode != ModeRecovering || !r2.DriftBreach {
		t.Fatalf("expected RECOVERING with a drift breach after two degraded cycles, got mode=%s breach=%v", r2.Mode, r2.DriftBreach)
	}

	// Weight learning is suspended while recovering: weights may only move
	// toward the safe configuration.
	safe := UniformWeights()
	before := engine.Weights()
	r3, err := engine.Step(StepInput{CycleID: "c-3", Coefficient: degradedResult()})
	if err != nil {
		t.Fatalf("step 3: %v", err)
	}
	distBefore := math.Abs(before.Alpha-safe.Alpha) + math.Abs(before.Beta-safe.Beta) + math.Abs(before.Gamma-safe.Gamma)
	distAfter := math.Abs(r3.Weights.Alpha-safe.Alpha) + math.Abs(r3.Weights.Beta-safe.Beta) + math.Abs(r3.Weights.Gamma-safe.Gamma)
	if distAfter > distBefore+1e-9 {
		t.Fatalf("recovery moved weights away from safe config: %f → %f", distBefore, distAfter)
	}

	// Feed healthy cycles until the meta integrity score clears the floor,
	// then exactly one more cycle must flip the engine back to STABLE.
	var healthyAt int
	for i := 0; i < 50; i++ {
		result, err := engine.Step(StepInput{CycleID: "c-h", Coefficient: healthyResult()})
		if err != nil {
			t.Fatalf("healthy step %d: %v", i, err)
		}
		if result.Mode == ModeStable {
			if !result.Recovered {
				t.Fatal("transition to STABLE must be reported as recovered")
			}
			healthyAt = i
			break
		}
	}
	if engine.Mode() != ModeStable {
		t.Fatal("engine never exited RECOVERING under healthy input")
	}
	if healthyAt == 0 {
		t.Fatal("engine exited RECOVERING without a full healthy cycle first")
	}
}

func TestRecoveredEngineResumesLearning(t *testing.T) {
	engine := NewEngine(DefaultConfig())

	// Drive into recovery and back out.
	for i := 0; i < 3; i++ {
		if _, err := engine.Step(StepInput{CycleID: "c-d", Coefficient: degradedResult()}); err != nil {
			t.Fatalf("degraded step: %v", err)
		}
	}
	for i := 0; i < 50 && engine.Mode() != ModeStable; i++ {
		if _, err := engine.Step(StepInput{CycleID: "c-h", Coefficient: healthyResult()}); err != nil {
			t.Fatalf("healthy step: %v", err)
		}
	}

	// A strong gradient must move weights again once stable.
	engine.Accept(feedback.Message{SourceCycleID: "c-fb", TIIScore: 0.2, BiasDelta: 0.5})
	before := engine.Weights()
	result, err := engine.Step(StepInput{
		CycleID: "c-s",
		Coefficient: coefficient.Result{
			Coefficient: 0.8, MeanEnergy: 0.8, Gradient: 0.3, IntegrityIndex: 1,
		},
	})
	if err != nil {
		t.Fatalf("stable step: %v", err)
	}
	if result.Weights == before {
		t.Fatal("weights did not move after recovery with live feedback")
	}
}

func TestWeightSumRenormalized(t *testing.T) {
	config := DefaultConfig()

	// Start with a sum outside the renorm band; one quiet cycle must pull
	// it back to 1.0 without breaking the per-weight delta bound.
	start := Weights{Alpha: 0.40, Beta: 0.36, Gamma: 0.30}
	engine := NewEngineFrom(config, start,
		State{ReflectiveFieldResonance: 1, MetaIntegrityScore: 1}, ModeStable)

	result, err := engine.Step(StepInput{CycleID: "c", Coefficient: healthyResult()})
	if err != nil {
		t.Fatalf("step: %v", err)
	}
	if s := result.Weights.Sum(); math.Abs(s-1.0) > 1e-9 {
		t.Fatalf("weight sum = %f after renormalization, want 1.0", s)
	}
	for _, pair := range [][2]float64{
		{start.Alpha, result.Weights.Alpha},
		{start.Beta, result.Weights.Beta},
		{start.Gamma, result.Weights.Gamma},
	} {
		if math.Abs(pair[1]-pair[0]) > config.MaxWeightDelta+1e-9 {
			t.Fatalf("renormalization moved a weight by %f, past the bound", math.Abs(pair[1]-pair[0]))
		}
	}
}

func TestSumInsideBandIsNotRenormalized(t *testing.T) {
	config := DefaultConfig()
	start := Weights{Alpha: 0.35, Beta: 0.34, Gamma: 0.33} // sum 1.02, inside band

	engine := NewEngineFrom(config, start,
		State{ReflectiveFieldResonance: 1, MetaIntegrityScore: 1}, ModeStable)
	result, err := engine.Step(StepInput{CycleID: "c", Coefficient: healthyResult()})
	if err != nil {
		t.Fatalf("step: %v", err)
	}
	if result.Weights != start {
		t.Fatalf("weights renormalized inside the tolerance band: %+v", result.Weights)
	}
}

func TestDeterministicAcrossEngines(t *testing.T) {
	run := func() []StepResult {
		engine := NewEngine(DefaultConfig())
		engine.Accept(feedback.Message{SourceCycleID: "c-1", TIIScore: 0.5, BiasDelta: -0.2})
		var results []StepResult
		for _, in := range []coefficient.Result{healthyResult(), degradedResult(), healthyResult()} {
			r, err := engine.Step(StepInput{CycleID: "c", Coefficient: in})
			if err != nil {
				t.Fatalf("step: %v", err)
			}
			results = append(results, r)
		}
		return results
	}

	a := run()
	b := run()
	for i := range a {
		if a[i].Weights != b[i].Weights || a[i].State != b[i].State || a[i].Mode != b[i].Mode {
			t.Fatalf("run diverged at step %d: %+v vs %+v", i, a[i], b[i])
		}
	}
}

func TestStateMetricsStayInRange(t *testing.T) {
	engine := NewEngine(DefaultConfig())
	inputs := []coefficient.Result{
		degradedResult(),
		{Coefficient: 1, MeanEnergy: 0, Gradient: 1, IntegrityIndex: 0},
		{Coefficient: 0, MeanEnergy: 1, Gradient: -1, IntegrityIndex: 1},
		healthyResult(),
	}
	for i := 0; i < 40; i++ {
		result, err := engine.Step(StepInput{CycleID: "c", Coefficient: inputs[i%len(inputs)]})
		if err != nil {
			t.Fatalf("step %d: %v", i, err)
		}
		s := result.State
		if s.ReflectiveFieldResonance < 0 || s.ReflectiveFieldResonance > 1 {
			t.Fatalf("resonance %f out of [0,1]", s.ReflectiveFieldResonance)
		}
		if s.MetaIntegrityScore < 0 || s.MetaIntegrityScore > 1 {
			t.Fatalf("meta integrity %f out of [0,1]", s.MetaIntegrityScore)
		}
		if s.EvolutionDriftRate < -1 || s.EvolutionDriftRate > 1 {
			t.Fatalf("drift rate %f out of [-1,1]", s.EvolutionDriftRate)
		}
		if s.FieldVariance < 0 {
			t.Fatalf("field variance %f negative", s.FieldVariance)
		}
	}
}
