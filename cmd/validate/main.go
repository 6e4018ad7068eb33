// Command validate re-derives the tables from an anomaly file and checks the
// properties every run must hold: the annual filter, yearly means, the
// wrapped month axis, and animation step numbering. Given -workbook, it also
// checks that an exported workbook matches the re-derived tables.
//
// Usage:
//
//	go run ./cmd/validate \
//	  -input data/global_temperature_anomaly.csv \
//	  -workbook output/derived_tables.xlsx
package main

import (
	"flag"
	"fmt"
	"math"
	"os"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"

	"github.com/couchcryptid/temperature-anomaly-etl/internal/adapter/frame"
	"github.com/couchcryptid/temperature-anomaly-etl/internal/adapter/workbook"
	"github.com/couchcryptid/temperature-anomaly-etl/internal/domain"
	"github.com/couchcryptid/temperature-anomaly-etl/internal/pipeline"
)

// phase tracks pass/fail for a validation phase.
type phase struct {
	name   string
	errors []string
}

func (p *phase) errorf(format string, args ...any) {
	p.errors = append(p.errors, fmt.Sprintf(format, args...))
}

func (p *phase) passed() bool { return len(p.errors) == 0 }

func main() {
	input := flag.String("input", "", "path to the anomaly CSV")
	delimiter := flag.String("delimiter", ",", "input field delimiter")
	book := flag.String("workbook", "", "optional exported workbook to compare")
	flag.Parse()

	if *input == "" || len([]rune(*delimiter)) != 1 {
		flag.Usage()
		os.Exit(1)
	}

	if code := run(*input, []rune(*delimiter)[0], *book); code != 0 {
		os.Exit(code)
	}
}

func run(input string, delimiter rune, bookPath string) int {
	fmt.Println("=== Temperature Anomaly Table Validation ===")
	fmt.Println()

	tbl, err := frame.Load(input, delimiter)
	if err != nil {
		fmt.Fprintf(os.Stderr, "FATAL: load input: %v\n", err)
		return 1
	}
	obs, err := tbl.Observations()
	if err != nil {
		fmt.Fprintf(os.Stderr, "FATAL: parse input: %v\n", err)
		return 1
	}
	tables, err := pipeline.Derive(obs)
	if err != nil {
		fmt.Fprintf(os.Stderr, "FATAL: derive tables: %v\n", err)
		return 1
	}

	phases := []*phase{
		validateCleaning(obs, tables.Cleaned),
		validateYearly(tables.Cleaned, tables.Yearly),
		validateWrapped(tables.Cleaned, tables.Wrapped),
		validateFrames(tables.Cleaned, tables.Frames),
	}
	if bookPath != "" {
		phases = append(phases, validateWorkbook(bookPath, tables))
	}

	fmt.Println()
	allPassed := true
	for _, p := range phases {
		status := "\033[32mPASS\033[0m"
		if !p.passed() {
			status = fmt.Sprintf("\033[31mFAIL (%d errors)\033[0m", len(p.errors))
			allPassed = false
		}
		fmt.Printf("  %-42s %s\n", p.name, status)
	}

	fmt.Println()
	fmt.Printf("Rows: %d observations, %d cleaned, %d years, %d wrapped, %d frames\n",
		len(obs), len(tables.Cleaned), len(tables.Yearly), len(tables.Wrapped), len(tables.Frames))

	for _, p := range phases {
		if p.passed() {
			continue
		}
		fmt.Printf("\n--- %s ---\n", p.name)
		for i, e := range p.errors {
			fmt.Printf("  [%d] %s\n", i+1, e)
		}
	}

	if allPassed {
		fmt.Println("\nAll validations passed.")
		return 0
	}
	fmt.Println("\nValidation FAILED.")
	return 1
}

// ── Phase 1: Cleaning ──
// Every cleaned row came from an observation carrying an annual anomaly.

func validateCleaning(obs []domain.Observation, cleaned []domain.CleanedObservation) *phase {
	p := &phase{name: "Phase 1: Annual Filter"}

	var kept []domain.Observation
	for _, o := range obs {
		if o.AnnualAnomaly.Valid {
			kept = append(kept, o)
		}
	}
	if len(kept) != len(cleaned) {
		p.errorf("cleaned rows: expected %d, got %d", len(kept), len(cleaned))
		return p
	}
	for i, c := range cleaned {
		o := kept[i]
		if c.Year != o.Year || c.Month != o.Month || c.MonthlyAnomaly != o.MonthlyAnomaly {
			p.errorf("cleaned row %d: expected %d-%02d %v, got %d-%02d %v",
				i, o.Year, o.Month, o.MonthlyAnomaly, c.Year, c.Month, c.MonthlyAnomaly)
		}
	}
	return p
}

// ── Phase 2: Yearly Averages ──

func validateYearly(cleaned []domain.CleanedObservation, yearly []domain.YearlyAverage) *phase {
	p := &phase{name: "Phase 2: Yearly Means"}

	sums := map[int]float64{}
	counts := map[int]int{}
	for _, c := range cleaned {
		if c.MonthlyAnomaly.Valid {
			sums[c.Year] += c.MonthlyAnomaly.Celsius
			counts[c.Year]++
		}
	}

	if len(yearly) != len(counts) {
		p.errorf("years: expected %d with readings, got %d", len(counts), len(yearly))
	}
	for i, y := range yearly {
		if i > 0 && y.Year <= yearly[i-1].Year {
			p.errorf("year %d out of order after %d", y.Year, yearly[i-1].Year)
		}
		n := counts[y.Year]
		if n == 0 {
			p.errorf("year %d averaged without any reading", y.Year)
			continue
		}
		if want := sums[y.Year] / float64(n); !floatEq(want, y.AvgAnomaly) {
			p.errorf("year %d: expected mean %.6f, got %.6f", y.Year, want, y.AvgAnomaly)
		}
	}
	return p
}

// ── Phase 3: Seasonal Wrap ──
// Labels and month numbers correspond one-to-one over 0..13, every year lies
// inside the observed range, and only the last year is flagged current.

func validateWrapped(cleaned []domain.CleanedObservation, wrapped []domain.WrappedRow) *phase {
	p := &phase{name: "Phase 3: Seasonal Wrap"}
	first, last, _ := domain.YearRange(cleaned)

	labelFor := map[int]domain.MonthLabel{}
	for i, w := range wrapped {
		if w.MonthNumber < 0 || w.MonthNumber > 13 {
			p.errorf("row %d: month_number %d outside 0..13", i, w.MonthNumber)
		}
		if w.Label.MonthNumber() != w.MonthNumber {
			p.errorf("row %d: label %s does not map to month_number %d", i, w.Label, w.MonthNumber)
		}
		if prev, ok := labelFor[w.MonthNumber]; ok && prev != w.Label {
			p.errorf("month_number %d carries labels %s and %s", w.MonthNumber, prev, w.Label)
		}
		labelFor[w.MonthNumber] = w.Label
		if w.Year < first || w.Year > last {
			p.errorf("row %d: year %d outside %d..%d", i, w.Year, first, last)
		}
		if w.IsCurrentYear != (w.Year == last) {
			p.errorf("row %d: year %d is_current_year=%t", i, w.Year, w.IsCurrentYear)
		}
	}
	return p
}

// ── Phase 4: Animation Frames ──

func validateFrames(cleaned []domain.CleanedObservation, frames []domain.FrameRow) *phase {
	p := &phase{name: "Phase 4: Animation Steps"}
	first, _, _ := domain.YearRange(cleaned)

	for i, f := range frames {
		if f.Step != i+1 {
			p.errorf("row %d: step %d, expected %d", i, f.Step, i+1)
		}
		if f.MonthNumber < 1 || f.MonthNumber > 13 {
			p.errorf("row %d: month_number %d outside 1..13", i, f.MonthNumber)
		}
		if f.Year < first {
			p.errorf("row %d: year %d before first observed year %d", i, f.Year, first)
		}
		if i == 0 {
			continue
		}
		prev := frames[i-1]
		if f.Year < prev.Year || (f.Year == prev.Year && f.MonthNumber < prev.MonthNumber) {
			p.errorf("row %d: (%d, %d) out of order after (%d, %d)", i, f.Year, f.MonthNumber, prev.Year, prev.MonthNumber)
		}
	}
	return p
}

// ── Phase 5: Workbook Parity ──

func validateWorkbook(path string, tables domain.DerivedTables) *phase {
	p := &phase{name: "Phase 5: Workbook Parity"}

	exported, err := workbook.Read(path)
	if err != nil {
		p.errorf("read workbook: %v", err)
		return p
	}

	compare := func(name string, want, got any) {
		if diff := cmp.Diff(want, got, cmpopts.EquateEmpty()); diff != "" {
			p.errorf("%s differs (-derived +workbook):\n%s", name, diff)
		}
	}
	compare(workbook.SheetCleaned, tables.Cleaned, exported.Cleaned)
	compare(workbook.SheetYearly, tables.Yearly, exported.Yearly)
	compare(workbook.SheetWrapped, tables.Wrapped, exported.Wrapped)
	compare(workbook.SheetFrames, tables.Frames, exported.Frames)
	return p
}

func floatEq(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}
