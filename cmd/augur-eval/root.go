package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/MikeSquared-Agency/augur/internal/engine"
	"github.com/MikeSquared-Agency/augur/internal/scorer"
)

const defaultSamplesPath = "configs/gold_samples.yaml"

type rootOptions struct {
	weightsPath string
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}
	root := &cobra.Command{
		Use:          "augur-eval",
		Short:        "Classify entries and evaluate mode weights offline",
		SilenceUsage: true,
	}
	root.PersistentFlags().StringVar(&opts.weightsPath, "weights", "", "weights YAML file (default: canonical weights)")

	root.AddCommand(
		newClassifyCmd(opts),
		newRunCmd(opts),
		newTuneCmd(opts),
	)
	return root
}

func (o *rootOptions) loadWeights() (scorer.Weights, error) {
	if o.weightsPath == "" {
		return scorer.DefaultWeights(), nil
	}
	w, err := scorer.LoadWeights(o.weightsPath)
	if err != nil {
		return scorer.Weights{}, fmt.Errorf("load weights: %w", err)
	}
	return w, nil
}

func (o *rootOptions) engine() (*engine.Engine, error) {
	w, err := o.loadWeights()
	if err != nil {
		return nil, err
	}
	s, err := scorer.New(w)
	if err != nil {
		return nil, fmt.Errorf("invalid weights: %w", err)
	}
	return engine.New(s), nil
}
