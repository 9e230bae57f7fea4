package audit

import (
	"math"
	"testing"
	"time"

	"github.com/danielpatrickdp/reflex-controller/internal/coefficient"
	"github.com/danielpatrickdp/reflex-controller/internal/evolution"
)

func ctxWithTII(tii float64) DecisionContext {
	// Cf = Rr = 1, Δb = 0 ⇒ TII = 1/(Vd+ε); solve Vd for the target.
	return DecisionContext{
		Instrument:          "EURUSD",
		Decision:            "BUY",
		ConfidenceFusion:    1,
		ReflectiveResonance: 1,
		BiasDelta:           0,
		DeviationVariance:   1/tii - Epsilon,
	}
}

func TestClassificationBoundaries(t *testing.T) {
	auditor := NewAuditor(DefaultConfig())
	now := time.Now()

	cases := []struct {
		tii  float64
		want IntegrityState
	}{
		{0.90, StateAccepted},
		{0.89999, StateReview},
		{0.75, StateReview},
		{0.74999, StateRejected},
		{0, StateRejected},
		{5.0, StateAccepted},
	}
	for _, tc := range cases {
		got, _ := auditor.classify(tc.tii, coefficient.Result{}, evolution.State{})
		if got != tc.want {
			t.Errorf("TII %f classified %s, want %s", tc.tii, got, tc.want)
		}
	}

	// The full path agrees with direct classification away from boundaries.
	outcome := auditor.Audit("c-1", now, coefficient.Result{}, evolution.State{}, ctxWithTII(0.82))
	if outcome.Record.IntegrityState != StateReview {
		t.Fatalf("TII 0.82 classified %s, want REVIEW", outcome.Record.IntegrityState)
	}
}

func TestTIIFormula(t *testing.T) {
	ctx := DecisionContext{
		ConfidenceFusion:    0.83,
		ReflectiveResonance: 0.954,
		BiasDelta:           -0.012,
		DeviationVariance:   0.10,
	}
	tii := ComputeTII(ctx)

	want := 0.83 * 0.954 * (1 - 0.012) / (0.10 + Epsilon)
	if math.Abs(tii-want) > 1e-9 {
		t.Fatalf("TII = %f, want %f", tii, want)
	}

	auditor := NewAuditor(DefaultConfig())
	outcome := auditor.Audit("c-1", time.Now(), coefficient.Result{}, evolution.State{}, ctx)
	if outcome.Record.IntegrityState != StateAccepted {
		t.Fatalf("scenario classified %s, want ACCEPTED", outcome.Record.IntegrityState)
	}
}

func TestEpsilonStabilizesZeroVariance(t *testing.T) {
	ctx := DecisionContext{
		ConfidenceFusion:    0.5,
		ReflectiveResonance: 0.5,
		BiasDelta:           0,
		DeviationVariance:   0,
	}
	tii := ComputeTII(ctx)
	if math.IsInf(tii, 0) || math.IsNaN(tii) {
		t.Fatalf("TII not finite at zero variance: %f", tii)
	}
	if want := 0.25 / Epsilon; math.Abs(tii-want) > 1e-9 {
		t.Fatalf("TII = %f, want %f", tii, want)
	}
}

func TestRejectionBuildsFeedback(t *testing.T) {
	auditor := NewAuditor(DefaultConfig())
	now := time.Now()

	ctx := DecisionContext{
		Instrument:          "GBPJPY",
		Decision:            "SELL",
		ConfidenceFusion:    0.5,
		ReflectiveResonance: 0.6,
		BiasDelta:           0.3,
		DeviationVariance:   0.5,
	}
	outcome := auditor.Audit("c-9", now, coefficient.Result{}, evolution.State{}, ctx)

	if outcome.Record.IntegrityState != StateRejected {
		t.Fatalf("expected REJECTED, got %s", outcome.Record.IntegrityState)
	}
	if !outcome.Record.FeedbackSent {
		t.Fatal("rejected record must mark feedback_sent")
	}
	if outcome.Feedback == nil {
		t.Fatal("rejected decision must carry a feedback message")
	}
	if outcome.Feedback.SourceCycleID != "c-9" {
		t.Fatalf("feedback source cycle = %s, want c-9", outcome.Feedback.SourceCycleID)
	}
	if outcome.Feedback.BiasDelta != ctx.BiasDelta {
		t.Fatalf("feedback bias delta = %f, want %f", outcome.Feedback.BiasDelta, ctx.BiasDelta)
	}
}

func TestReviewAndAcceptDoNotFeedback(t *testing.T) {
	auditor := NewAuditor(DefaultConfig())
	now := time.Now()

	for _, tii := range []float64{0.80, 0.95} {
		outcome := auditor.Audit("c-1", now, coefficient.Result{}, evolution.State{}, ctxWithTII(tii))
		if outcome.Feedback != nil {
			t.Fatalf("TII %f produced feedback, only rejections should", tii)
		}
		if outcome.Record.FeedbackSent {
			t.Fatalf("TII %f marked feedback_sent", tii)
		}
	}
}

func TestAuditDeterministic(t *testing.T) {
	auditor := NewAuditor(DefaultConfig())
	now := time.Unix(1756000000, 0).UTC()

	coeff := coefficient.Result{Coefficient: 0.63, MeanEnergy: 0.6, Gradient: 0.01, IntegrityIndex: 0.97}
	state := evolution.State{ReflectiveFieldResonance: 0.95, MetaIntegrityScore: 0.96}
	ctx := ctxWithTII(0.82)

	a := auditor.Audit("c-42", now, coeff, state, ctx)
	b := auditor.Audit("c-42", now, coeff, state, ctx)
	if a.Record != b.Record {
		t.Fatalf("identical inputs produced different records:\n%+v\n%+v", a.Record, b.Record)
	}
}

func TestAuditBatch(t *testing.T) {
	auditor := NewAuditor(DefaultConfig())
	now := time.Now()

	outcomes := auditor.AuditBatch("c-1", now, coefficient.Result{}, evolution.State{}, []DecisionContext{
		ctxWithTII(0.95),
		ctxWithTII(0.50),
	})
	if len(outcomes) != 2 {
		t.Fatalf("expected 2 outcomes, got %d", len(outcomes))
	}
	if outcomes[0].Record.IntegrityState != StateAccepted {
		t.Fatalf("first outcome %s, want ACCEPTED", outcomes[0].Record.IntegrityState)
	}
	if outcomes[1].Record.IntegrityState != StateRejected {
		t.Fatalf("second outcome %s, want REJECTED", outcomes[1].Record.IntegrityState)
	}
	if outcomes[0].Record.CycleID == outcomes[1].Record.CycleID {
		t.Fatal("batch outcomes must carry distinct cycle ids")
	}
}
