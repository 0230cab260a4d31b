package eval

import (
	"context"
	"errors"
	"fmt"
	"os"
	"runtime"
	"strings"
	"text/tabwriter"

	"golang.org/x/sync/errgroup"
	"gopkg.in/yaml.v3"

	"github.com/MikeSquared-Agency/augur/internal/engine"
	"github.com/MikeSquared-Agency/augur/internal/mode"
)

type sampleFile struct {
	Samples []Sample `yaml:"samples"`
}

// LoadSamples reads a YAML gold-sample file.
func LoadSamples(path string) ([]Sample, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read samples: %w", err)
	}
	return ParseSamples(data)
}

// ParseSamples decodes and validates gold samples. Labels are parsed
// case-insensitively; every sample needs a valid expected mode.
func ParseSamples(data []byte) ([]Sample, error) {
	var f sampleFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parse samples: %w", err)
	}

	var errs []error
	for i := range f.Samples {
		s := &f.Samples[i]
		if s.ID == "" {
			s.ID = fmt.Sprintf("sample-%03d", i+1)
		}
		expected, ok := mode.Parse(string(s.Expected))
		if !ok {
			errs = append(errs, fmt.Errorf("%s: invalid expected mode %q", s.ID, s.Expected))
		}
		s.Expected = expected
		if s.Previous != mode.None {
			prev, ok := mode.Parse(string(s.Previous))
			if !ok {
				errs = append(errs, fmt.Errorf("%s: invalid previous mode %q", s.ID, s.Previous))
			}
			s.Previous = prev
		}
	}
	if err := errors.Join(errs...); err != nil {
		return nil, err
	}
	return f.Samples, nil
}

// Run classifies every sample and builds a report. Samples are classified in
// parallel; the report does not depend on scheduling order.
func Run(ctx context.Context, c Classifier, samples []Sample) (Report, error) {
	results := make([]engine.Result, len(samples))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.NumCPU())
	for i, s := range samples {
		i, s := i, s
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			results[i] = c.Classify(s.Text, s.Previous)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return Report{}, fmt.Errorf("classify samples: %w", err)
	}

	return buildReport(samples, results), nil
}

func buildReport(samples []Sample, results []engine.Result) Report {
	r := Report{
		Total:     len(samples),
		Confusion: make(map[mode.Mode]map[mode.Mode]int, mode.Count),
		PerMode:   make(map[mode.Mode]ModeStats, mode.Count),
	}
	for _, m := range mode.All() {
		r.Confusion[m] = make(map[mode.Mode]int, mode.Count)
	}

	for i, s := range samples {
		got := results[i].Mode
		r.Confusion[s.Expected][got]++

		exp := r.PerMode[s.Expected]
		exp.Support++
		r.PerMode[s.Expected] = exp

		pred := r.PerMode[got]
		pred.Predicted++
		if got == s.Expected {
			pred.Correct++
			r.Correct++
		}
		r.PerMode[got] = pred

		if got != s.Expected {
			r.Misses = append(r.Misses, Miss{Sample: s, Got: got, Scores: results[i].Scores})
		}
	}

	for _, m := range mode.All() {
		st := r.PerMode[m]
		if st.Predicted > 0 {
			st.Precision = float64(st.Correct) / float64(st.Predicted)
		}
		if st.Support > 0 {
			st.Recall = float64(st.Correct) / float64(st.Support)
		}
		r.PerMode[m] = st
	}
	if r.Total > 0 {
		r.Accuracy = float64(r.Correct) / float64(r.Total)
	}
	return r
}

// Format renders the accuracy line, the confusion matrix and the misses.
func (r Report) Format() string {
	var b strings.Builder
	fmt.Fprintf(&b, "accuracy: %d/%d (%.1f%%)\n\n", r.Correct, r.Total, r.Accuracy*100)

	modes := mode.All()
	tw := tabwriter.NewWriter(&b, 0, 0, 2, ' ', tabwriter.AlignRight)
	fmt.Fprint(tw, "expected\\got\t")
	for _, m := range modes {
		fmt.Fprintf(tw, "%s\t", abbrev(m))
	}
	fmt.Fprint(tw, "recall\t\n")
	for _, exp := range modes {
		fmt.Fprintf(tw, "%s\t", exp)
		for _, got := range modes {
			fmt.Fprintf(tw, "%d\t", r.Confusion[exp][got])
		}
		fmt.Fprintf(tw, "%.2f\t\n", r.PerMode[exp].Recall)
	}
	fmt.Fprint(tw, "precision\t")
	for _, m := range modes {
		fmt.Fprintf(tw, "%.2f\t", r.PerMode[m].Precision)
	}
	fmt.Fprint(tw, "\t\n")
	tw.Flush()

	if len(r.Misses) > 0 {
		fmt.Fprintf(&b, "\nmisses (%d):\n", len(r.Misses))
		for _, m := range r.Misses {
			fmt.Fprintf(&b, "  %s: expected %s, got %s: %s\n", m.Sample.ID, m.Sample.Expected, m.Got, m.Sample.Text)
		}
	}
	return b.String()
}

func abbrev(m mode.Mode) string {
	s := string(m)
	if len(s) > 4 {
		return s[:4]
	}
	return s
}
