package domain

import (
	"encoding/json"
	"fmt"
	"os"
	"time"
)

// Chart kinds produced by a run.
const (
	ChartYearlyLine  = "yearly_line"
	ChartYearlyTrend = "yearly_trend"
	ChartSeasonal    = "seasonal"
	ChartSpiral      = "spiral"
	TableWorkbook    = "derived_tables"
)

// Artifact is a file written by a run.
type Artifact struct {
	Kind string `json:"kind"`
	Path string `json:"path"`
}

// RunReport summarizes one pipeline run.
type RunReport struct {
	GeneratedAt          time.Time  `json:"generated_at"`
	Input                string     `json:"input"`
	Observations         int        `json:"observations"`
	Cleaned              int        `json:"cleaned"`
	Dropped              int        `json:"dropped"`
	FirstYear            int        `json:"first_year,omitempty"`
	LastYear             int        `json:"last_year,omitempty"`
	YearsAggregated      int        `json:"years_aggregated"`
	YearsWithoutReadings []int      `json:"years_without_readings,omitempty"`
	Trend                *Trend     `json:"trend,omitempty"`
	Artifacts            []Artifact `json:"artifacts"`
	Duration             string     `json:"duration"`
}

// NewRunReport starts a report for the given input, stamped with the
// package clock.
func NewRunReport(input string) RunReport {
	return RunReport{GeneratedAt: clock.Now().UTC(), Input: input}
}

// WriteJSON writes the report as indented JSON.
func (r RunReport) WriteJSON(path string) error {
	data, err := json.MarshalIndent(r, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal run report: %w", err)
	}
	data = append(data, '\n')
	if err := os.WriteFile(path, data, 0o600); err != nil {
		return fmt.Errorf("write run report: %w", err)
	}
	return nil
}
