package main

import (
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/FrenchMajesty/classresult"
	"github.com/FrenchMajesty/classresult/internal/logging"
	"github.com/spf13/cobra"
)

func newSummaryCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "summary <results>",
		Short: "Print evaluation metrics for a results file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			asJSON, _ := cmd.Flags().GetBool("json")
			validate, _ := cmd.Flags().GetBool("validate")

			cfg, err := configFromFlags(cmd)
			if err != nil {
				return err
			}

			results, err := loadResults(ctx, args[0])
			if err != nil {
				return err
			}

			if validate {
				logInvalid(results)
			}

			eval, err := newEvaluator(ctx, cfg.evaluatorConfig(), results)
			if err != nil {
				return err
			}
			metrics := eval.Metrics()

			if asJSON {
				return writeMetricsJSON(cmd.OutOrStdout(), metrics)
			}
			printMetrics(cmd.OutOrStdout(), metrics)
			return nil
		},
	}

	cmd.Flags().Bool("json", false, "Print metrics as JSON")
	cmd.Flags().Bool("validate", false, "Log results that fail consistency checks")

	return cmd
}

// logInvalid logs every result that fails Validate
func logInvalid(results []classresult.Result) {
	logger := logging.New("summary")
	invalid := 0
	for i, r := range results {
		if err := r.Validate(); err != nil {
			invalid++
			logger.Warn("inconsistent result", slog.Int("trial", i), slog.Any("error", err))
		}
	}
	logger.Info("validated results", slog.Int("total", len(results)), slog.Int("invalid", invalid))
}

// metricsJSON is the JSON form of the summary
type metricsJSON struct {
	TotalTrials           int                        `json:"total_trials"`
	Correct               int                        `json:"correct"`
	Accuracy              float64                    `json:"accuracy"`
	RawAccuracy           float64                    `json:"raw_accuracy"`
	PostProcessingChanges int                        `json:"post_processing_changes"`
	RejectionPrecision    float64                    `json:"rejection_precision"`
	RejectionRecall       float64                    `json:"rejection_recall"`
	Precision             float64                    `json:"precision"`
	Recall                float64                    `json:"recall"`
	FMeasure              float64                    `json:"f_measure"`
	Classes               []classresult.ClassMetrics `json:"classes"`
	ConfusionLabels       []uint                     `json:"confusion_labels"`
	Confusion             [][]int                    `json:"confusion"`
	Likelihood            likelihoodJSON             `json:"likelihood"`
	ConfusionClusters     [][]uint                   `json:"confusion_clusters"`
	SeparableClasses      int                        `json:"separable_classes"`
}

// likelihoodJSON is the JSON form of a LikelihoodSummary. A NaN or infinite
// likelihood in the input makes the summary non-finite too.
type likelihoodJSON struct {
	Mean   classresult.Float `json:"mean"`
	StdDev classresult.Float `json:"std_dev"`
	Median classresult.Float `json:"median"`
	P25    classresult.Float `json:"p25"`
	P75    classresult.Float `json:"p75"`
}

func toLikelihoodJSON(s classresult.LikelihoodSummary) likelihoodJSON {
	return likelihoodJSON{
		Mean:   classresult.Float(s.Mean),
		StdDev: classresult.Float(s.StdDev),
		Median: classresult.Float(s.Median),
		P25:    classresult.Float(s.P25),
		P75:    classresult.Float(s.P75),
	}
}

func writeMetricsJSON(w io.Writer, m classresult.Metrics) error {
	out := metricsJSON{
		TotalTrials:           m.TotalTrials,
		Correct:               m.Correct,
		Accuracy:              m.Accuracy,
		RawAccuracy:           m.RawAccuracy,
		PostProcessingChanges: m.PostProcessingChanges,
		RejectionPrecision:    m.RejectionPrecision,
		RejectionRecall:       m.RejectionRecall,
		Precision:             m.Precision,
		Recall:                m.Recall,
		FMeasure:              m.FMeasure,
		Classes:               m.Classes,
		Likelihood:            toLikelihoodJSON(m.Likelihood),
		ConfusionClusters:     m.ConfusionClusters,
		SeparableClasses:      m.SeparableClasses,
	}
	if m.Confusion != nil {
		out.ConfusionLabels = m.Confusion.Labels()
		out.Confusion = m.Confusion.Rows()
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}

func printMetrics(w io.Writer, m classresult.Metrics) {
	fmt.Fprintf(w, "Trials:               %d\n", m.TotalTrials)
	fmt.Fprintf(w, "Accuracy:             %.4f (%d correct)\n", m.Accuracy, m.Correct)
	fmt.Fprintf(w, "Raw accuracy:         %.4f\n", m.RawAccuracy)
	fmt.Fprintf(w, "Post-processing:      %d changed\n", m.PostProcessingChanges)
	fmt.Fprintf(w, "Precision/Recall/F1:  %.4f / %.4f / %.4f\n", m.Precision, m.Recall, m.FMeasure)
	fmt.Fprintf(w, "Rejection P/R:        %.4f / %.4f\n", m.RejectionPrecision, m.RejectionRecall)
	fmt.Fprintf(w, "Likelihood:           mean %.4f, sd %.4f, median %.4f\n",
		m.Likelihood.Mean, m.Likelihood.StdDev, m.Likelihood.Median)

	fmt.Fprintln(w)
	fmt.Fprintf(w, "%-7s  %-8s  %-9s  %-9s  %s\n", "Class", "Support", "Precision", "Recall", "F1")
	fmt.Fprintln(w, strings.Repeat("─", 48))
	for _, cls := range m.Classes {
		fmt.Fprintf(w, "%-7d  %-8d  %-9.4f  %-9.4f  %.4f\n",
			cls.Label, cls.Support, cls.Precision, cls.Recall, cls.FMeasure)
	}

	if len(m.ConfusionClusters) > 0 {
		fmt.Fprintln(w)
		fmt.Fprintf(w, "Confusion clusters (separable classes: %d):\n", m.SeparableClasses)
		for _, cluster := range m.ConfusionClusters {
			fmt.Fprintf(w, "  %v\n", cluster)
		}
	}
}
