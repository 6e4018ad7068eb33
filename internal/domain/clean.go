package domain

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"unicode"
)

// Column names after normalization.
const (
	ColYear           = "year"
	ColMonth          = "month"
	ColMonthlyAnomaly = "monthly_anomaly"
	ColAnnualAnomaly  = "annual_anomaly"
)

// RequiredColumns lists the projection applied by the cleaner, in order.
var RequiredColumns = []string{ColYear, ColMonth, ColMonthlyAnomaly, ColAnnualAnomaly}

// NormalizeColumnName lower-cases a header and collapses every run of
// non-alphanumeric characters into a single underscore:
// " Monthly Anomaly " -> "monthly_anomaly", "Annual Unc." -> "annual_unc".
func NormalizeColumnName(name string) string {
	var b strings.Builder
	pendingSep := false
	for _, r := range strings.ToLower(strings.TrimSpace(name)) {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			if pendingSep && b.Len() > 0 {
				b.WriteByte('_')
			}
			pendingSep = false
			b.WriteRune(r)
			continue
		}
		pendingSep = true
	}
	return b.String()
}

// ParseObservation converts the four projected cells of a row into an
// Observation. line is used in error messages only.
func ParseObservation(line int, year, month, monthly, annual string) (Observation, error) {
	y, err := parseInt(year)
	if err != nil || y <= 0 {
		return Observation{}, fmt.Errorf("%w: line %d: year %q", ErrParse, line, year)
	}
	m, err := parseInt(month)
	if err != nil || m < 1 || m > 12 {
		return Observation{}, fmt.Errorf("%w: line %d: month %q", ErrParse, line, month)
	}
	mon, ok := ParseAnomaly(monthly)
	if !ok {
		return Observation{}, fmt.Errorf("%w: line %d: monthly anomaly %q", ErrParse, line, monthly)
	}
	ann, ok := ParseAnomaly(annual)
	if !ok {
		return Observation{}, fmt.Errorf("%w: line %d: annual anomaly %q", ErrParse, line, annual)
	}
	return Observation{Year: y, Month: m, MonthlyAnomaly: mon, AnnualAnomaly: ann}, nil
}

// Clean drops observations without an annual anomaly.
func Clean(obs []Observation) []CleanedObservation {
	out := make([]CleanedObservation, 0, len(obs))
	for _, o := range obs {
		if !o.AnnualAnomaly.Valid {
			continue
		}
		out = append(out, CleanedObservation{
			Year:           o.Year,
			Month:          o.Month,
			MonthlyAnomaly: o.MonthlyAnomaly,
		})
	}
	return out
}

// parseInt accepts plain integers and whole-number floats ("1850.0"), which
// spreadsheet exports produce. Values outside the int32 range are rejected.
func parseInt(s string) (int, error) {
	s = strings.TrimSpace(s)
	if n, err := strconv.ParseInt(s, 10, 32); err == nil {
		return int(n), nil
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || f != math.Trunc(f) || f > math.MaxInt32 || f < math.MinInt32 {
		return 0, fmt.Errorf("not an integer: %q", s)
	}
	return int(f), nil
}
