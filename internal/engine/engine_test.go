package engine

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/MikeSquared-Agency/augur/internal/mode"
	"github.com/MikeSquared-Agency/augur/internal/signals"
)

func TestClassify_EndToEnd(t *testing.T) {
	e := New(nil)

	tests := []struct {
		name string
		text string
		prev mode.Mode
		want mode.Mode
	}{
		{"lots to do but no traction", "해야 할 일은 많은데 손이 잘 안 간다", mode.None, mode.Delay},
		{"start now, finish today", "지금 바로 시작해서 오늘 안에 끝내자", mode.None, mode.Decisive},
		{"excited by a new idea", "새로운 아이디어가 떠올라서 설레고 실험해보고 싶다", mode.None, mode.Exploratory},
		{"empty entry", "", mode.None, mode.Decisive},
		{"overwhelmed", "할 게 너무 많아서 뭐부터 해야 할지 모르겠다", mode.None, mode.Simplify},
		{"sad rumination", "계속 생각나서 슬프고 마음이 무겁다", mode.None, mode.Reflect},
		{"anxious but holding routine", "피곤하고 실패할까 걱정돼서 평소 루틴을 차분하게 유지했다", mode.None, mode.Stabilize},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := e.Classify(tt.text, tt.prev)
			if got.Mode != tt.want {
				t.Errorf("Classify(%q) = %s, want %s (scores %v)", tt.text, got.Mode, tt.want, got.Scores)
			}
		})
	}
}

func TestClassify_EmptyEntryUsesBaseline(t *testing.T) {
	got := New(nil).Classify("", mode.None)
	if diff := cmp.Diff(signals.Baseline(), got.Signals); diff != "" {
		t.Errorf("signals mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff(mode.NewBoosts(), got.Boosts); diff != "" {
		t.Errorf("boosts mismatch (-want +got):\n%s", diff)
	}
}

func TestClassify_Deterministic(t *testing.T) {
	e := New(nil)
	texts := []string{"", "피곤하다", "지금 바로 시작해서 오늘 안에 끝내자", "계속 생각나서 슬프다"}
	prevs := append(mode.All(), mode.None)

	for _, text := range texts {
		for _, prev := range prevs {
			first := e.Classify(text, prev)
			second := e.Classify(text, prev)
			if diff := cmp.Diff(first, second); diff != "" {
				t.Errorf("Classify(%q, %q) not deterministic (-first +second):\n%s", text, prev, diff)
			}
			if !first.Mode.Valid() {
				t.Errorf("Classify(%q, %q) returned invalid mode %q", text, prev, first.Mode)
			}
		}
	}
}

func TestClassify_InvalidPreviousTreatedAsEmpty(t *testing.T) {
	e := New(nil)
	text := "계속 생각나서 슬프다"
	got := e.Classify(text, mode.Mode("WHATEVER"))
	want := e.Classify(text, mode.None)
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("invalid previous mode changed the result (-want +got):\n%s", diff)
	}
	if got.Changed() {
		t.Error("expected Changed() false without a previous mode")
	}
}

func TestClassify_HysteresisKeepsPrevious(t *testing.T) {
	e := New(nil)
	// Empty entry: DECISIVE 9.545 vs STABILIZE 5.04 is beyond the margin.
	if got := e.Classify("", mode.Stabilize); got.Mode != mode.Decisive {
		t.Errorf("expected DECISIVE, got %s", got.Mode)
	}

	// DECISIVE 8.97 edges out REFLECT 8.4 on its own; with REFLECT as the
	// previous mode (8.925 after retention) the margin keeps it.
	text := "슬프고 불안해서 피하고 싶다"
	if got := e.Classify(text, mode.None); got.Mode != mode.Decisive {
		t.Errorf("expected nominal DECISIVE, got %s (scores %v)", got.Mode, got.Scores)
	}
	res := e.Classify(text, mode.Reflect)
	if res.Mode != mode.Reflect {
		t.Errorf("expected REFLECT to be retained, got %s (scores %v)", res.Mode, res.Scores)
	}
	if res.Changed() {
		t.Error("expected Changed() false when previous mode retained")
	}
}

func TestClassifyWithSignals_ClampsExternalVector(t *testing.T) {
	e := New(nil)
	external := signals.Vector{EmotionVsLogic: 11, EnergyLevel: -2}
	got := e.ClassifyWithSignals("아무 일도 없었다", external, mode.None)
	if got.Signals.EmotionVsLogic != 3 || got.Signals.EnergyLevel != 0 {
		t.Errorf("expected clamped signals, got %+v", got.Signals)
	}
	if !got.Mode.Valid() {
		t.Errorf("invalid mode %q", got.Mode)
	}
}

func TestExplain_MatchesClassify(t *testing.T) {
	e := New(nil)
	text := "해야 할 일은 많은데 손이 잘 안 간다"

	ex := e.Explain(text, mode.None)
	if diff := cmp.Diff(e.Classify(text, mode.None), ex.Result); diff != "" {
		t.Errorf("Explain disagrees with Classify (-classify +explain):\n%s", diff)
	}
	if len(ex.SignalRules) == 0 || len(ex.PatternRules) == 0 {
		t.Errorf("expected fired rules, got signals=%v patterns=%v", ex.SignalRules, ex.PatternRules)
	}
	if len(ex.BaseScores) != mode.Count {
		t.Errorf("expected base scores for every mode, got %v", ex.BaseScores)
	}
}
