package evolution

import (
	"math"
	"sync"

	"github.com/danielpatrickdp/reflex-controller/internal/feedback"
)

// #region engine

// Engine accumulates the reflective gradient, evolves the bounded weight
// vector, and maintains system-health metrics. One instance per instrument;
// Step is single-writer, Accept may be called from the bus concurrently.
type Engine struct {
	config Config

	weights Weights
	state   State
	mode    Mode

	integrityEWMA  float64
	breachStreak   int
	healthyStreak  int
	recoveryCycles int
	lastKnownGood  *Weights

	mu        sync.Mutex
	inbox     []feedback.Message
	seen      map[string]struct{}
	seenOrder []string
}

// NewEngine creates an engine in STABLE mode with uniform weights and
// fully healthy state.
func NewEngine(config Config) *Engine {
	return &Engine{
		config:  config,
		weights: UniformWeights(),
		state: State{
			ReflectiveFieldResonance: 1,
			MetaIntegrityScore:       1,
		},
		mode:          ModeStable,
		integrityEWMA: 1,
		seen:          make(map[string]struct{}),
	}
}

// NewEngineFrom restores an engine from persisted weights, state, and mode.
func NewEngineFrom(config Config, weights Weights, state State, mode Mode) *Engine {
	e := NewEngine(config)
	e.weights = weights
	e.state = state
	e.mode = mode
	e.integrityEWMA = state.MetaIntegrityScore
	return e
}

// Weights returns a copy of the current weight vector.
func (e *Engine) Weights() Weights { return e.weights }

// State returns a point-in-time copy of the health state.
func (e *Engine) State() State { return e.state }

// Mode returns the current mode.
func (e *Engine) Mode() Mode { return e.mode }

// #endregion engine

// #region accept

// Accept queues a feedback message for the next step. Redelivery of an
// already-seen source cycle id is a no-op, making delivery idempotent.
func (e *Engine) Accept(msg feedback.Message) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if _, ok := e.seen[msg.SourceCycleID]; ok {
		return nil
	}
	e.seen[msg.SourceCycleID] = struct{}{}
	e.seenOrder = append(e.seenOrder, msg.SourceCycleID)
	if e.config.DedupCapacity > 0 && len(e.seenOrder) > e.config.DedupCapacity {
		delete(e.seen, e.seenOrder[0])
		e.seenOrder = e.seenOrder[1:]
	}
	e.inbox = append(e.inbox, msg)
	return nil
}

// drainInbox removes and returns all pending feedback in arrival order.
func (e *Engine) drainInbox() []feedback.Message {
	e.mu.Lock()
	defer e.mu.Unlock()
	msgs := e.inbox
	e.inbox = nil
	return msgs
}

// requeue puts drained messages back at the head of the inbox, preserving
// arrival order ahead of anything accepted since the drain.
func (e *Engine) requeue(msgs []feedback.Message) {
	if len(msgs) == 0 {
		return
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	e.inbox = append(msgs, e.inbox...)
}

// #endregion accept

// #region step

// Step runs one engine cycle: consume pending feedback, accumulate the
// reflective gradient, update weights (or run the corrective pull while
// recovering), and refresh the health metrics. On ErrInvariantViolation
// nothing is mutated.
func (e *Engine) Step(in StepInput) (StepResult, error) {
	msgs := e.drainInbox()
	tiiTerm, biasTerm, consumed := aggregateFeedback(msgs)

	g := in.Coefficient.Gradient
	deltaR := e.weights.Alpha*g + e.weights.Beta*tiiTerm + e.weights.Gamma*biasTerm

	// Exit recovery after one full healthy cycle; normal updates resume now.
	recovered := false
	if e.mode == ModeRecovering && e.healthyStreak >= 1 {
		e.mode = ModeStable
		e.recoveryCycles = 0
		e.breachStreak = 0
		recovered = true
	}

	prev := e.weights
	var next Weights
	if e.mode == ModeStable {
		var err error
		next, err = e.learn(prev, g, tiiTerm, biasTerm, deltaR)
		if err != nil {
			// The drained feedback was not applied; put it back so a
			// later step still consumes it. Dedup entries stay, which is
			// correct: the messages are pending, not lost.
			e.requeue(msgs)
			return StepResult{}, err
		}
	} else {
		next = e.pullTowardSafe(prev)
		e.recoveryCycles++
	}

	// Health metrics. Resonance tracks coefficient stability; drift is its
	// signed change; meta integrity blends drift stability with the
	// integrity history; field variance follows the squared deviation of
	// the coefficient from its smoothed mean.
	prevRes := e.state.ReflectiveFieldResonance
	target := clamp01(in.Coefficient.IntegrityIndex * (1 - math.Abs(g)))
	res := clamp01(prevRes + e.config.ResonanceSmoothing*(target-prevRes))
	drift := clampRange(res-prevRes, -1, 1)

	e.integrityEWMA += e.config.IntegritySmoothing * (in.Coefficient.IntegrityIndex - e.integrityEWMA)
	dev := in.Coefficient.Coefficient - in.Coefficient.MeanEnergy
	variance := e.state.FieldVariance + e.config.VarianceDecay*(dev*dev-e.state.FieldVariance)
	meta := clamp01(e.config.ResonanceWeight*(1-math.Abs(drift)) + e.config.IntegrityWeight*e.integrityEWMA)

	e.weights = next
	e.state = State{
		ReflectiveFieldResonance: res,
		EvolutionDriftRate:       drift,
		MetaIntegrityScore:       meta,
		FieldVariance:            variance,
	}

	breach := meta < e.config.RecoveryFloor || variance >= e.config.VarianceCeiling
	if breach {
		e.breachStreak++
	} else {
		e.breachStreak = 0
	}

	driftBreach := false
	switch e.mode {
	case ModeStable:
		if e.breachStreak >= e.config.BreachCycles {
			e.mode = ModeRecovering
			e.recoveryCycles = 0
			e.healthyStreak = 0
			driftBreach = true
		} else if !breach {
			lkg := e.weights
			e.lastKnownGood = &lkg
		}
	case ModeRecovering:
		if breach {
			e.healthyStreak = 0
		} else {
			e.healthyStreak++
		}
	}

	return StepResult{
		Weights:        e.weights,
		State:          e.state,
		Mode:           e.mode,
		Gradient:       deltaR,
		DriftBreach:    driftBreach,
		Recovered:      recovered,
		ConsumedCycles: consumed,
	}, nil
}

// #endregion step

// #region learn

// learn applies the bounded, signal-proportional weight update. Each weight
// moves toward the feedback source it weights; the delta is clamped to the
// configured bound before application.
func (e *Engine) learn(w Weights, g, tiiTerm, biasTerm, deltaR float64) (Weights, error) {
	terms := [3]float64{w.Alpha * g, w.Beta * tiiTerm, w.Gamma * biasTerm}
	cur := [3]float64{w.Alpha, w.Beta, w.Gamma}
	mean := deltaR / 3

	var out [3]float64
	for i := range cur {
		delta := clampRange(e.config.LearningRate*(terms[i]-mean), -e.config.MaxWeightDelta, e.config.MaxWeightDelta)
		out[i] = clamp01(cur[i] + delta)
	}

	next := Weights{Alpha: out[0], Beta: out[1], Gamma: out[2]}
	if s := next.Sum(); s < e.config.RenormFloor || s > e.config.RenormCeiling {
		if s <= 0 {
			return Weights{}, ErrInvariantViolation
		}
		// Renormalize toward sum 1.0. The per-cycle delta bound takes
		// precedence: each weight's total change this cycle stays clamped,
		// so an extreme sum may need more than one cycle to settle.
		next.Alpha = cur[0] + clampRange(next.Alpha/s-cur[0], -e.config.MaxWeightDelta, e.config.MaxWeightDelta)
		next.Beta = cur[1] + clampRange(next.Beta/s-cur[1], -e.config.MaxWeightDelta, e.config.MaxWeightDelta)
		next.Gamma = cur[2] + clampRange(next.Gamma/s-cur[2], -e.config.MaxWeightDelta, e.config.MaxWeightDelta)
	}

	// Post-conditions. Failing here means the update logic itself is
	// broken, so the cycle aborts without mutating anything.
	after := [3]float64{next.Alpha, next.Beta, next.Gamma}
	for i := range after {
		if math.Abs(after[i]-cur[i]) > e.config.MaxWeightDelta+1e-9 {
			return Weights{}, ErrInvariantViolation
		}
		if after[i] < 0 || after[i] > 1 {
			return Weights{}, ErrInvariantViolation
		}
	}
	return next, nil
}

// pullTowardSafe steps each weight toward the known-safe configuration,
// at most the delta bound per cycle. Pulls stop once the corrective budget
// is exhausted; the engine then holds until health recovers.
func (e *Engine) pullTowardSafe(w Weights) Weights {
	if e.recoveryCycles >= e.config.MaxRecoveryCycles {
		return w
	}
	target := UniformWeights()
	if e.lastKnownGood != nil {
		target = *e.lastKnownGood
	}
	return Weights{
		Alpha: w.Alpha + clampRange(target.Alpha-w.Alpha, -e.config.MaxWeightDelta, e.config.MaxWeightDelta),
		Beta:  w.Beta + clampRange(target.Beta-w.Beta, -e.config.MaxWeightDelta, e.config.MaxWeightDelta),
		Gamma: w.Gamma + clampRange(target.Gamma-w.Gamma, -e.config.MaxWeightDelta, e.config.MaxWeightDelta),
	}
}

// #endregion learn

// #region helpers

// aggregateFeedback folds pending messages into the TII and bias terms.
// Rejected decisions exert negative corrective pressure; absent feedback
// defaults both terms to zero.
func aggregateFeedback(msgs []feedback.Message) (tiiTerm, biasTerm float64, consumed []string) {
	if len(msgs) == 0 {
		return 0, 0, nil
	}
	for _, m := range msgs {
		tiiTerm += clampRange(m.TIIScore-1, -1, 1)
		biasTerm += clampRange(m.BiasDelta, -1, 1)
		consumed = append(consumed, m.SourceCycleID)
	}
	n := float64(len(msgs))
	return tiiTerm / n, biasTerm / n, consumed
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

func clampRange(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// #endregion helpers
