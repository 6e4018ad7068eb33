package domain

import (
	"fmt"

	"gonum.org/v1/gonum/stat"
)

// Trend is an ordinary least squares fit anomaly = Intercept + Slope*year.
type Trend struct {
	Intercept float64 `json:"intercept"`
	Slope     float64 `json:"slope"` // °C per year
}

// At evaluates the fitted line.
func (t Trend) At(year float64) float64 {
	return t.Intercept + t.Slope*year
}

// FitTrend fits a linear trend through the yearly averages.
func FitTrend(avgs []YearlyAverage) (Trend, error) {
	if len(avgs) < 2 {
		return Trend{}, fmt.Errorf("fit trend over %d years: %w", len(avgs), ErrInsufficientData)
	}
	xs := make([]float64, len(avgs))
	ys := make([]float64, len(avgs))
	for i, a := range avgs {
		xs[i] = float64(a.Year)
		ys[i] = a.AvgAnomaly
	}
	if stat.Variance(xs, nil) == 0 {
		return Trend{}, fmt.Errorf("fit trend: all points share year %d: %w", avgs[0].Year, ErrInsufficientData)
	}
	alpha, beta := stat.LinearRegression(xs, ys, nil, false)
	return Trend{Intercept: alpha, Slope: beta}, nil
}
