package eval

import (
	"context"
	"math"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/MikeSquared-Agency/augur/internal/engine"
	"github.com/MikeSquared-Agency/augur/internal/mode"
	"github.com/MikeSquared-Agency/augur/internal/scorer"
)

func scenarioSamples() []Sample {
	return []Sample{
		{ID: "s1", Text: "해야 할 일은 많은데 손이 잘 안 간다", Expected: mode.Delay},
		{ID: "s2", Text: "지금 바로 시작해서 오늘 안에 끝내자", Expected: mode.Decisive},
		{ID: "s3", Text: "새로운 아이디어가 떠올라서 설레고 실험해보고 싶다", Expected: mode.Exploratory},
		{ID: "mislabelled", Text: "할 게 너무 많아서 뭐부터 해야 할지 모르겠다", Expected: mode.Delay},
	}
}

func TestLoadSamples(t *testing.T) {
	got, err := LoadSamples(filepath.Join("testdata", "samples.yaml"))
	if err != nil {
		t.Fatalf("LoadSamples: %v", err)
	}
	want := []Sample{
		{ID: "delay-workload", Text: "해야 할 일은 많은데 손이 잘 안 간다", Expected: mode.Delay},
		{ID: "sample-002", Text: "지금 바로 시작해서 오늘 안에 끝내자", Expected: mode.Decisive},
		{ID: "keep-reflect", Text: "슬프고 불안해서 피하고 싶다", Previous: mode.Reflect, Expected: mode.Reflect},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("samples mismatch (-want +got):\n%s", diff)
	}
}

func TestLoadSamples_Invalid(t *testing.T) {
	_, err := LoadSamples(filepath.Join("testdata", "invalid.yaml"))
	if err == nil {
		t.Fatal("expected validation error")
	}
	for _, want := range []string{"bad-expected", "bad-previous"} {
		if !strings.Contains(err.Error(), want) {
			t.Errorf("expected error to mention %s, got: %v", want, err)
		}
	}
}

func TestRun_Report(t *testing.T) {
	r, err := Run(context.Background(), engine.New(nil), scenarioSamples())
	if err != nil {
		t.Fatalf("Run: %v", err)
	}

	if r.Total != 4 || r.Correct != 3 {
		t.Errorf("expected 3/4 correct, got %d/%d", r.Correct, r.Total)
	}
	if math.Abs(r.Accuracy-0.75) > 1e-9 {
		t.Errorf("expected accuracy 0.75, got %f", r.Accuracy)
	}
	if r.Confusion[mode.Delay][mode.Delay] != 1 || r.Confusion[mode.Delay][mode.Simplify] != 1 {
		t.Errorf("unexpected DELAY row: %v", r.Confusion[mode.Delay])
	}

	wantDelay := ModeStats{Support: 2, Predicted: 1, Correct: 1, Precision: 1, Recall: 0.5}
	if diff := cmp.Diff(wantDelay, r.PerMode[mode.Delay]); diff != "" {
		t.Errorf("DELAY stats mismatch (-want +got):\n%s", diff)
	}
	if st := r.PerMode[mode.Simplify]; st.Predicted != 1 || st.Precision != 0 {
		t.Errorf("unexpected SIMPLIFY stats: %+v", st)
	}

	if len(r.Misses) != 1 || r.Misses[0].Sample.ID != "mislabelled" || r.Misses[0].Got != mode.Simplify {
		t.Fatalf("unexpected misses: %+v", r.Misses)
	}
	if len(r.Misses[0].Scores) != mode.Count {
		t.Errorf("expected miss to carry all scores, got %v", r.Misses[0].Scores)
	}
}

func TestRun_StableAcrossRuns(t *testing.T) {
	e := engine.New(nil)
	first, err := Run(context.Background(), e, scenarioSamples())
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	for i := 0; i < 3; i++ {
		again, err := Run(context.Background(), e, scenarioSamples())
		if err != nil {
			t.Fatalf("Run: %v", err)
		}
		if diff := cmp.Diff(first, again); diff != "" {
			t.Fatalf("report changed between runs (-first +again):\n%s", diff)
		}
	}
}

func TestRun_Empty(t *testing.T) {
	r, err := Run(context.Background(), engine.New(nil), nil)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if r.Total != 0 || r.Accuracy != 0 {
		t.Errorf("expected empty report, got %+v", r)
	}
}

func TestRun_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := Run(ctx, engine.New(nil), scenarioSamples()); err == nil {
		t.Error("expected error for cancelled context")
	}
}

func TestReport_Format(t *testing.T) {
	r, err := Run(context.Background(), engine.New(nil), scenarioSamples())
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	out := r.Format()
	for _, want := range []string{"accuracy: 3/4 (75.0%)", "EXPLORATORY", "misses (1):", "mislabelled: expected DELAY, got SIMPLIFY"} {
		if !strings.Contains(out, want) {
			t.Errorf("expected output to contain %q:\n%s", want, out)
		}
	}
}

func TestTuneCalibration_FixesNearMiss(t *testing.T) {
	samples := []Sample{
		{ID: "s1", Text: "해야 할 일은 많은데 손이 잘 안 간다", Expected: mode.Delay},
		{ID: "s2", Text: "지금 바로 시작해서 오늘 안에 끝내자", Expected: mode.Decisive},
		{ID: "s3", Text: "새로운 아이디어가 떠올라서 설레고 실험해보고 싶다", Expected: mode.Exploratory},
		{ID: "near-miss", Text: "슬프고 불안해서 피하고 싶다", Expected: mode.Reflect},
	}
	base := scorer.DefaultWeights()

	tuned, report, err := TuneCalibration(context.Background(), base, samples, []float64{-0.1, 0.1})
	if err != nil {
		t.Fatalf("TuneCalibration: %v", err)
	}
	if report.Accuracy != 1 {
		t.Errorf("expected tuned accuracy 1.0, got %f\n%s", report.Accuracy, report.Format())
	}
	if math.Abs(tuned.Calibration[mode.Reflect]-1.15) > 1e-9 {
		t.Errorf("expected REFLECT calibration 1.15, got %f", tuned.Calibration[mode.Reflect])
	}
	if tuned.Name != "canonical-tuned" {
		t.Errorf("expected tuned name, got %q", tuned.Name)
	}
	if base.Calibration[mode.Reflect] != 1.05 {
		t.Error("tuner mutated the base weights")
	}
}

func TestTuneCalibration_NoImprovementKeepsWeights(t *testing.T) {
	samples := scenarioSamples()[:3]
	base := scorer.DefaultWeights()

	tuned, report, err := TuneCalibration(context.Background(), base, samples, nil)
	if err != nil {
		t.Fatalf("TuneCalibration: %v", err)
	}
	if report.Accuracy != 1 {
		t.Errorf("expected accuracy 1.0, got %f", report.Accuracy)
	}
	if diff := cmp.Diff(base.Calibration, tuned.Calibration); diff != "" {
		t.Errorf("calibration changed without improvement (-base +tuned):\n%s", diff)
	}
}
