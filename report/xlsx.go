package report

import (
	"fmt"

	"github.com/FrenchMajesty/classresult"
	"github.com/xuri/excelize/v2"
)

// Sheet names written by WriteXLSX
const (
	SheetResults   = "Results"
	SheetClasses   = "Classes"
	SheetConfusion = "Confusion"
)

// ClassHeaders are the column names of the per-class sheet
var ClassHeaders = []string{"label", "support", "precision", "recall", "f_measure"}

// WriteXLSX writes results and their metrics to a workbook at path
func WriteXLSX(path string, results []classresult.Result, metrics classresult.Metrics) error {
	f := excelize.NewFile()
	defer f.Close()

	// Rename the default sheet so the workbook opens on the results.
	if err := f.SetSheetName("Sheet1", SheetResults); err != nil {
		return err
	}

	rows := make([][]any, 0, len(results)+1)
	rows = append(rows, toCells(ResultHeaders))
	for i, r := range results {
		rows = append(rows, []any{
			i,
			r.TrueLabel(),
			r.PredictedLabel(),
			r.RawPredictedLabel(),
			r.IsCorrectPrediction(),
			r.MaximumLikelihood(),
			joinVector(r.ClassLikelihoods()),
			joinVector(r.ClassDistances()),
		})
	}
	if err := writeRows(f, SheetResults, rows); err != nil {
		return err
	}

	if _, err := f.NewSheet(SheetClasses); err != nil {
		return err
	}
	rows = [][]any{toCells(ClassHeaders)}
	for _, cls := range metrics.Classes {
		rows = append(rows, []any{cls.Label, cls.Support, cls.Precision, cls.Recall, cls.FMeasure})
	}
	rows = append(rows,
		[]any{},
		[]any{"accuracy", metrics.Accuracy},
		[]any{"raw_accuracy", metrics.RawAccuracy},
		[]any{"precision", metrics.Precision},
		[]any{"recall", metrics.Recall},
		[]any{"f_measure", metrics.FMeasure},
	)
	if err := writeRows(f, SheetClasses, rows); err != nil {
		return err
	}

	if _, err := f.NewSheet(SheetConfusion); err != nil {
		return err
	}
	if metrics.Confusion != nil {
		labels := metrics.Confusion.Labels()
		header := []any{"true \\ predicted"}
		for _, label := range labels {
			header = append(header, label)
		}
		rows = [][]any{header}
		for i, counts := range metrics.Confusion.Rows() {
			row := []any{labels[i]}
			for _, c := range counts {
				row = append(row, c)
			}
			rows = append(rows, row)
		}
		if err := writeRows(f, SheetConfusion, rows); err != nil {
			return err
		}
	}

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("failed to save workbook %s: %w", path, err)
	}
	return nil
}

// writeRows writes rows to sheet starting at A1
func writeRows(f *excelize.File, sheet string, rows [][]any) error {
	for r, row := range rows {
		for c, v := range row {
			cell, err := excelize.CoordinatesToCellName(c+1, r+1)
			if err != nil {
				return err
			}
			if err := f.SetCellValue(sheet, cell, v); err != nil {
				return fmt.Errorf("failed to write %s!%s: %w", sheet, cell, err)
			}
		}
	}
	return nil
}

func toCells(headers []string) []any {
	cells := make([]any, len(headers))
	for i, h := range headers {
		cells[i] = h
	}
	return cells
}
