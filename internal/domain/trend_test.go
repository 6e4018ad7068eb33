package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFitTrend_SlopeSignFollowsSeries(t *testing.T) {
	avgs := []YearlyAverage{{Year: 2020, AvgAnomaly: 1.0}, {Year: 2021, AvgAnomaly: 1.2}, {Year: 2022, AvgAnomaly: 1.1}}

	trend, err := FitTrend(avgs)

	require.NoError(t, err)
	assert.Greater(t, trend.Slope, 0.0)
	assert.InDelta(t, 0.05, trend.Slope, 1e-9)
	assert.InDelta(t, 1.1, trend.At(2021), 1e-9)
}

func TestFitTrend_ExactLine(t *testing.T) {
	var avgs []YearlyAverage
	for y := 1900; y <= 1910; y++ {
		avgs = append(avgs, YearlyAverage{Year: y, AvgAnomaly: -38 + 0.02*float64(y)})
	}

	trend, err := FitTrend(avgs)

	require.NoError(t, err)
	assert.InDelta(t, 0.02, trend.Slope, 1e-9)
	assert.InDelta(t, -38, trend.Intercept, 1e-6)
}

func TestFitTrend_InsufficientData(t *testing.T) {
	_, err := FitTrend([]YearlyAverage{{Year: 2000, AvgAnomaly: 0.4}})
	require.ErrorIs(t, err, ErrInsufficientData)

	_, err = FitTrend([]YearlyAverage{{Year: 2000, AvgAnomaly: 0.4}, {Year: 2000, AvgAnomaly: 0.5}})
	require.ErrorIs(t, err, ErrInsufficientData)
}
