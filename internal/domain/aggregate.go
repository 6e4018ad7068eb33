package domain

import (
	"sort"

	"gonum.org/v1/gonum/stat"
)

// YearlyAverages returns the mean of the present monthly anomalies per year,
// sorted by year. Years without any present value are omitted; see
// YearsWithoutReadings.
func YearlyAverages(rows []CleanedObservation) []YearlyAverage {
	byYear := make(map[int][]float64)
	for _, r := range rows {
		if _, ok := byYear[r.Year]; !ok {
			byYear[r.Year] = nil
		}
		if r.MonthlyAnomaly.Valid {
			byYear[r.Year] = append(byYear[r.Year], r.MonthlyAnomaly.Celsius)
		}
	}

	out := make([]YearlyAverage, 0, len(byYear))
	for year, values := range byYear {
		if len(values) == 0 {
			continue
		}
		out = append(out, YearlyAverage{Year: year, AvgAnomaly: stat.Mean(values, nil)})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Year < out[j].Year })
	return out
}

// YearsWithoutReadings lists, ascending, the years present in rows whose
// monthly anomalies are all absent.
func YearsWithoutReadings(rows []CleanedObservation) []int {
	seen := make(map[int]bool)
	for _, r := range rows {
		seen[r.Year] = seen[r.Year] || r.MonthlyAnomaly.Valid
	}
	var out []int
	for year, hasReading := range seen {
		if !hasReading {
			out = append(out, year)
		}
	}
	sort.Ints(out)
	return out
}

// YearRange returns the smallest and largest year in rows. ok is false for
// an empty table.
func YearRange(rows []CleanedObservation) (first, last int, ok bool) {
	for i, r := range rows {
		if i == 0 || r.Year < first {
			first = r.Year
		}
		if i == 0 || r.Year > last {
			last = r.Year
		}
	}
	return first, last, len(rows) > 0
}
