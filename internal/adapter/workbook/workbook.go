// Package workbook exports the derived tables of a run to an XLSX workbook
// and reads them back.
package workbook

import (
	"context"
	"fmt"
	"path/filepath"
	"strconv"

	"github.com/xuri/excelize/v2"

	"github.com/couchcryptid/temperature-anomaly-etl/internal/domain"
)

// FileName is the workbook name inside the output directory.
const FileName = "derived_tables.xlsx"

// Sheet names, one per derived table.
const (
	SheetCleaned = "cleaned"
	SheetYearly  = "yearly_average"
	SheetWrapped = "seasonal_wrap"
	SheetFrames  = "animation_frames"
)

var headers = map[string][]any{
	SheetCleaned: {"year", "month", "monthly_anomaly"},
	SheetYearly:  {"year", "yearly_avg_anomaly"},
	SheetWrapped: {"year", "month_label", "monthly_anomaly", "month_number", "is_current_year"},
	SheetFrames:  {"year", "month_number", "monthly_anomaly", "step_number"},
}

// Writer saves derived tables into a workbook in dir. It implements
// pipeline.TableWriter.
type Writer struct {
	dir string
}

// NewWriter creates a Writer targeting dir.
func NewWriter(dir string) *Writer {
	return &Writer{dir: dir}
}

// WriteTables writes every table to its own sheet and returns the artifact.
func (w *Writer) WriteTables(ctx context.Context, tables domain.DerivedTables) (domain.Artifact, error) {
	if err := ctx.Err(); err != nil {
		return domain.Artifact{}, err
	}
	if err := domain.CheckOutputDir(w.dir); err != nil {
		return domain.Artifact{}, err
	}
	path := filepath.Join(w.dir, FileName)
	if err := Write(path, tables); err != nil {
		return domain.Artifact{}, err
	}
	return domain.Artifact{Kind: domain.TableWorkbook, Path: path}, nil
}

// Write saves tables to the workbook at path.
func Write(path string, tables domain.DerivedTables) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", SheetCleaned); err != nil {
		return fmt.Errorf("rename default sheet: %w", err)
	}
	for _, sheet := range []string{SheetYearly, SheetWrapped, SheetFrames} {
		if _, err := f.NewSheet(sheet); err != nil {
			return fmt.Errorf("create sheet %s: %w", sheet, err)
		}
	}

	cleaned := make([][]any, len(tables.Cleaned))
	for i, r := range tables.Cleaned {
		cleaned[i] = []any{r.Year, r.Month, cell(r.MonthlyAnomaly)}
	}
	yearly := make([][]any, len(tables.Yearly))
	for i, r := range tables.Yearly {
		yearly[i] = []any{r.Year, r.AvgAnomaly}
	}
	wrapped := make([][]any, len(tables.Wrapped))
	for i, r := range tables.Wrapped {
		wrapped[i] = []any{r.Year, string(r.Label), cell(r.MonthlyAnomaly), r.MonthNumber, strconv.FormatBool(r.IsCurrentYear)}
	}
	frames := make([][]any, len(tables.Frames))
	for i, r := range tables.Frames {
		frames[i] = []any{r.Year, r.MonthNumber, cell(r.MonthlyAnomaly), r.Step}
	}

	for sheet, rows := range map[string][][]any{
		SheetCleaned: cleaned,
		SheetYearly:  yearly,
		SheetWrapped: wrapped,
		SheetFrames:  frames,
	} {
		if err := writeSheet(f, sheet, rows); err != nil {
			return err
		}
	}

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("save workbook %s: %w", path, err)
	}
	return nil
}

// cell leaves absent anomalies as empty cells.
func cell(a domain.Anomaly) any {
	if !a.Valid {
		return nil
	}
	return a.Celsius
}

func writeSheet(f *excelize.File, sheet string, rows [][]any) error {
	header := headers[sheet]
	if err := f.SetSheetRow(sheet, "A1", &header); err != nil {
		return fmt.Errorf("write %s header: %w", sheet, err)
	}
	for i := range rows {
		axis, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(sheet, axis, &rows[i]); err != nil {
			return fmt.Errorf("write %s row %d: %w", sheet, i+2, err)
		}
	}
	return nil
}
