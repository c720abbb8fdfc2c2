package report

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/FrenchMajesty/classresult"
)

// ResultHeaders are the column names of a results table
var ResultHeaders = []string{
	"trial",
	"true_label",
	"predicted_label",
	"raw_predicted_label",
	"correct",
	"maximum_likelihood",
	"class_likelihoods",
	"class_distances",
}

// vectorSeparator joins the values of a per-class vector inside one cell
const vectorSeparator = ";"

// WriteCSV writes a header row followed by one row per result
func WriteCSV(w io.Writer, results []classresult.Result) error {
	cw := csv.NewWriter(w)

	if err := cw.Write(ResultHeaders); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}

	for i, r := range results {
		if err := cw.Write(resultRow(i, r)); err != nil {
			return fmt.Errorf("failed to write result %d: %w", i, err)
		}
	}

	cw.Flush()
	return cw.Error()
}

// resultRow renders a result as table cells
func resultRow(trial int, r classresult.Result) []string {
	return []string{
		strconv.Itoa(trial),
		strconv.FormatUint(uint64(r.TrueLabel()), 10),
		strconv.FormatUint(uint64(r.PredictedLabel()), 10),
		strconv.FormatUint(uint64(r.RawPredictedLabel()), 10),
		strconv.FormatBool(r.IsCorrectPrediction()),
		classresult.FormatFloat(r.MaximumLikelihood()),
		joinVector(r.ClassLikelihoods()),
		joinVector(r.ClassDistances()),
	}
}

// ReadCSV parses results written by WriteCSV. The trial and correct columns are
// derived values and are ignored.
func ReadCSV(r io.Reader) ([]classresult.Result, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = len(ResultHeaders)

	records, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to parse CSV: %w", err)
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("CSV must have at least a header row")
	}

	results := make([]classresult.Result, 0, len(records)-1)
	for i, record := range records[1:] {
		result, err := parseRow(record)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", i+2, err)
		}
		results = append(results, result)
	}
	return results, nil
}

// parseRow is the inverse of resultRow
func parseRow(record []string) (classresult.Result, error) {
	var f classresult.Fields
	var err error

	if f.TrueLabel, err = parseLabel(record[1]); err != nil {
		return classresult.Result{}, fmt.Errorf("true_label: %w", err)
	}
	if f.PredictedLabel, err = parseLabel(record[2]); err != nil {
		return classresult.Result{}, fmt.Errorf("predicted_label: %w", err)
	}
	if f.RawPredictedLabel, err = parseLabel(record[3]); err != nil {
		return classresult.Result{}, fmt.Errorf("raw_predicted_label: %w", err)
	}
	if f.MaximumLikelihood, err = classresult.ParseFloat(record[5]); err != nil {
		return classresult.Result{}, fmt.Errorf("maximum_likelihood: %w", err)
	}
	if f.ClassLikelihoods, err = splitVector(record[6]); err != nil {
		return classresult.Result{}, fmt.Errorf("class_likelihoods: %w", err)
	}
	if f.ClassDistances, err = splitVector(record[7]); err != nil {
		return classresult.Result{}, fmt.Errorf("class_distances: %w", err)
	}

	return classresult.NewResult(f), nil
}

func parseLabel(s string) (uint, error) {
	v, err := strconv.ParseUint(strings.TrimSpace(s), 10, 0)
	return uint(v), err
}

func splitVector(s string) ([]float64, error) {
	if strings.TrimSpace(s) == "" {
		return nil, nil
	}

	parts := strings.Split(s, vectorSeparator)
	v := make([]float64, len(parts))
	for i, p := range parts {
		x, err := classresult.ParseFloat(strings.TrimSpace(p))
		if err != nil {
			return nil, err
		}
		v[i] = x
	}
	return v, nil
}

func joinVector(v []float64) string {
	parts := make([]string, len(v))
	for i, x := range v {
		parts[i] = classresult.FormatFloat(x)
	}
	return strings.Join(parts, vectorSeparator)
}
