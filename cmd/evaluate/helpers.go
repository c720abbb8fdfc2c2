package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/FrenchMajesty/classresult"
	"github.com/FrenchMajesty/classresult/report"
)

// loadResults reads results from a .csv file written by report.WriteCSV, or from a
// JSON results file otherwise
func loadResults(ctx context.Context, path string) ([]classresult.Result, error) {
	if strings.EqualFold(filepath.Ext(path), ".csv") {
		file, err := os.Open(path)
		if err != nil {
			return nil, fmt.Errorf("failed to open results file: %w", err)
		}
		defer file.Close()

		return report.ReadCSV(file)
	}

	if _, err := os.Stat(path); err != nil {
		return nil, fmt.Errorf("failed to open results file: %w", err)
	}
	return classresult.NewFileStore(path).Load(ctx)
}

// newEvaluator builds an evaluator from cfg holding results
func newEvaluator(ctx context.Context, cfg classresult.Config, results []classresult.Result) (*classresult.Evaluator, error) {
	eval, err := classresult.NewEvaluator(ctx, cfg)
	if err != nil {
		return nil, err
	}
	for _, r := range results {
		if err := eval.Add(ctx, r); err != nil {
			return nil, err
		}
	}
	return eval, nil
}
