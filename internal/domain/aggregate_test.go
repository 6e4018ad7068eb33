package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestYearlyAverages(t *testing.T) {
	rows := []CleanedObservation{
		{Year: 2001, Month: 1, MonthlyAnomaly: Celsius(0.5)},
		{Year: 2000, Month: 1, MonthlyAnomaly: Celsius(0.2)},
		{Year: 2000, Month: 2, MonthlyAnomaly: Celsius(0.4)},
		{Year: 2000, Month: 3, MonthlyAnomaly: Anomaly{}},
		{Year: 2001, Month: 2, MonthlyAnomaly: Celsius(0.7)},
		{Year: 2001, Month: 3, MonthlyAnomaly: Celsius(0.9)},
	}

	avgs := YearlyAverages(rows)

	if assert.Len(t, avgs, 2) {
		assert.Equal(t, 2000, avgs[0].Year)
		assert.InDelta(t, 0.3, avgs[0].AvgAnomaly, 1e-12)
		assert.Equal(t, 2001, avgs[1].Year)
		assert.InDelta(t, 0.7, avgs[1].AvgAnomaly, 1e-12)
	}
}

func TestYearlyAverages_YearWithoutReadingsIsAbsent(t *testing.T) {
	rows := []CleanedObservation{
		{Year: 1990, Month: 1, MonthlyAnomaly: Celsius(0.1)},
		{Year: 1991, Month: 1, MonthlyAnomaly: Anomaly{}},
		{Year: 1991, Month: 2, MonthlyAnomaly: Anomaly{}},
		{Year: 1992, Month: 1, MonthlyAnomaly: Celsius(0.3)},
	}

	avgs := YearlyAverages(rows)

	assert.Equal(t, []YearlyAverage{{Year: 1990, AvgAnomaly: 0.1}, {Year: 1992, AvgAnomaly: 0.3}}, avgs)
	assert.Equal(t, []int{1991}, YearsWithoutReadings(rows))
}

func TestYearlyAverages_MatchesMeanPerYear(t *testing.T) {
	var rows []CleanedObservation
	for y := 1950; y < 1960; y++ {
		for m := 1; m <= 12; m++ {
			a := Celsius(float64(y-1950)*0.05 + float64(m)*0.01)
			if (y+m)%7 == 0 {
				a = Anomaly{}
			}
			rows = append(rows, CleanedObservation{Year: y, Month: m, MonthlyAnomaly: a})
		}
	}

	for _, avg := range YearlyAverages(rows) {
		var sum float64
		var n int
		for _, r := range rows {
			if r.Year == avg.Year && r.MonthlyAnomaly.Valid {
				sum += r.MonthlyAnomaly.Celsius
				n++
			}
		}
		assert.InDelta(t, sum/float64(n), avg.AvgAnomaly, 1e-12, "year %d", avg.Year)
	}
}

func TestYearlyAverages_Empty(t *testing.T) {
	assert.Empty(t, YearlyAverages(nil))
	assert.Empty(t, YearsWithoutReadings(nil))
}

func TestYearRange(t *testing.T) {
	first, last, ok := YearRange([]CleanedObservation{{Year: 1900}, {Year: 1880}, {Year: 2024}})
	assert.True(t, ok)
	assert.Equal(t, 1880, first)
	assert.Equal(t, 2024, last)

	_, _, ok = YearRange(nil)
	assert.False(t, ok)
}
