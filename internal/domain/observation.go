package domain

import (
	"math"
	"strconv"
	"strings"
)

// Anomaly is a temperature deviation from the baseline in degrees Celsius.
// Valid is false when the source cell was absent.
type Anomaly struct {
	Celsius float64
	Valid   bool
}

// Celsius returns a present anomaly. NaN is treated as absent.
func Celsius(v float64) Anomaly {
	if math.IsNaN(v) {
		return Anomaly{}
	}
	return Anomaly{Celsius: v, Valid: true}
}

// Finite reports whether a present anomaly holds a usable number.
func (a Anomaly) Finite() bool {
	return !a.Valid || !math.IsInf(a.Celsius, 0)
}

// absentTokens are the spellings data providers use for a missing reading.
var absentTokens = map[string]bool{"": true, "na": true, "nan": true, "null": true}

// ParseAnomaly parses an anomaly cell. Absent spellings yield an invalid
// Anomaly with ok=true; any other non-numeric text yields ok=false.
func ParseAnomaly(s string) (a Anomaly, ok bool) {
	s = strings.TrimSpace(s)
	if absentTokens[strings.ToLower(s)] {
		return Anomaly{}, true
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return Anomaly{}, false
	}
	return Celsius(v), true
}

// Observation is one row of the raw dataset.
type Observation struct {
	Year           int
	Month          int // 1-12
	MonthlyAnomaly Anomaly
	AnnualAnomaly  Anomaly
}

// CleanedObservation is an Observation that carried an annual anomaly.
type CleanedObservation struct {
	Year           int
	Month          int
	MonthlyAnomaly Anomaly
}

// YearlyAverage is the mean monthly anomaly of one year.
type YearlyAverage struct {
	Year       int
	AvgAnomaly float64
}

// MonthLabel names a position on the wrapped 14-slot month axis.
type MonthLabel string

const (
	LastDec MonthLabel = "last_Dec"
	NextJan MonthLabel = "next_Jan"
)

var monthAbbrev = [12]MonthLabel{"Jan", "Feb", "Mar", "Apr", "May", "Jun", "Jul", "Aug", "Sep", "Oct", "Nov", "Dec"}

// MonthLabelFor returns the label for a calendar month (1-12).
func MonthLabelFor(month int) MonthLabel {
	if month < 1 || month > 12 {
		return ""
	}
	return monthAbbrev[month-1]
}

// MonthNumber returns the position of a label on the wrapped axis:
// last_Dec=0, Jan=1 ... Dec=12, next_Jan=13. Unknown labels return -1.
func (l MonthLabel) MonthNumber() int {
	switch l {
	case LastDec:
		return 0
	case NextJan:
		return 13
	}
	for i, m := range monthAbbrev {
		if m == l {
			return i + 1
		}
	}
	return -1
}

// WrappedRow is a row of the seasonal chart table.
type WrappedRow struct {
	Year           int
	Label          MonthLabel
	MonthlyAnomaly Anomaly
	MonthNumber    int // 0-13
	IsCurrentYear  bool
}

// FrameRow is a row of the spiral animation table.
type FrameRow struct {
	Year           int
	MonthNumber    int // 1-13
	MonthlyAnomaly Anomaly
	Step           int
}

// DerivedTables bundles every table computed from one input.
type DerivedTables struct {
	Cleaned []CleanedObservation
	Yearly  []YearlyAverage
	Wrapped []WrappedRow
	Frames  []FrameRow
}
