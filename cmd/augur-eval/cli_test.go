package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/MikeSquared-Agency/augur/internal/engine"
	"github.com/MikeSquared-Agency/augur/internal/mode"
	"github.com/MikeSquared-Agency/augur/internal/scorer"
)

func execute(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func writeSamples(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "samples.yaml")
	data := `samples:
  - id: s1
    text: 해야 할 일은 많은데 손이 잘 안 간다
    expected: DELAY
  - id: s2
    text: 지금 바로 시작해서 오늘 안에 끝내자
    expected: DECISIVE
  - id: near-miss
    text: 슬프고 불안해서 피하고 싶다
    expected: REFLECT
`
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatalf("write samples: %v", err)
	}
	return path
}

func TestClassifyCmd(t *testing.T) {
	out, err := execute(t, "", "classify", "해야 할 일은 많은데 손이 잘 안 간다")
	if err != nil {
		t.Fatalf("classify: %v", err)
	}
	if !strings.HasPrefix(out, "mode: DELAY\n") {
		t.Errorf("expected DELAY, got:\n%s", out)
	}
	if strings.Contains(out, "signal rules") {
		t.Errorf("expected no explanation without --explain:\n%s", out)
	}
}

func TestClassifyCmd_ExplainFromStdin(t *testing.T) {
	out, err := execute(t, "지금 바로 시작해서 오늘 안에 끝내자", "classify", "--previous", "delay", "--explain")
	if err != nil {
		t.Fatalf("classify: %v", err)
	}
	for _, want := range []string{"mode: DECISIVE", "previous: DELAY (changed: true)", "immediate-action", "decisive-pattern"} {
		if !strings.Contains(out, want) {
			t.Errorf("expected %q in output:\n%s", want, out)
		}
	}
}

func TestClassifyCmd_JSON(t *testing.T) {
	out, err := execute(t, "", "classify", "--json", "새로운 아이디어가 떠올라서 설레고 실험해보고 싶다")
	if err != nil {
		t.Fatalf("classify: %v", err)
	}
	var res engine.Result
	if err := json.Unmarshal([]byte(out), &res); err != nil {
		t.Fatalf("decode: %v\n%s", err, out)
	}
	if res.Mode != mode.Exploratory {
		t.Errorf("expected EXPLORATORY, got %s", res.Mode)
	}
}

func TestClassifyCmd_UnknownPrevious(t *testing.T) {
	if _, err := execute(t, "", "classify", "--previous", "PANIC", "피곤하다"); err == nil {
		t.Fatal("expected error for unknown previous mode")
	}
}

func TestRunCmd(t *testing.T) {
	samples := writeSamples(t)

	out, err := execute(t, "", "run", "--samples", samples)
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if !strings.Contains(out, "accuracy: 2/3") {
		t.Errorf("expected 2/3 accuracy, got:\n%s", out)
	}

	if _, err := execute(t, "", "run", "--samples", samples, "--min-accuracy", "0.9"); err == nil {
		t.Error("expected error below minimum accuracy")
	}
}

func TestRunCmd_CustomWeights(t *testing.T) {
	w := scorer.DefaultWeights()
	w.Calibration[mode.Reflect] = 1.15
	path := filepath.Join(t.TempDir(), "weights.yaml")
	if err := scorer.SaveWeights(path, w); err != nil {
		t.Fatalf("save weights: %v", err)
	}

	out, err := execute(t, "", "--weights", path, "run", "--samples", writeSamples(t))
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if !strings.Contains(out, "accuracy: 3/3") {
		t.Errorf("expected 3/3 with tuned REFLECT calibration, got:\n%s", out)
	}
}

func TestTuneCmd_WritesWeights(t *testing.T) {
	outPath := filepath.Join(t.TempDir(), "tuned.yaml")

	out, err := execute(t, "", "tune", "--samples", writeSamples(t), "--steps", "-0.1,0.1", "--out", outPath)
	if err != nil {
		t.Fatalf("tune: %v", err)
	}
	if !strings.Contains(out, "accuracy: 0.667 -> 1.000") {
		t.Errorf("expected accuracy improvement, got:\n%s", out)
	}

	tuned, err := scorer.LoadWeights(outPath)
	if err != nil {
		t.Fatalf("load tuned weights: %v", err)
	}
	if tuned.Name != "canonical-tuned" {
		t.Errorf("expected tuned name, got %q", tuned.Name)
	}
	if got := tuned.Calibration[mode.Reflect]; got < 1.149 || got > 1.151 {
		t.Errorf("expected REFLECT calibration 1.15, got %f", got)
	}
}

func TestMissingWeightsFile(t *testing.T) {
	if _, err := execute(t, "", "--weights", "/nonexistent/weights.yaml", "classify", "피곤하다"); err == nil {
		t.Fatal("expected error for missing weights file")
	}
}
