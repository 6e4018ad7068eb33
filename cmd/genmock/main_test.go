package main

import (
	"math"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/couchcryptid/temperature-anomaly-etl/internal/adapter/frame"
	"github.com/couchcryptid/temperature-anomaly-etl/internal/domain"
)

func TestMovingAverage(t *testing.T) {
	values := make([]float64, 24)
	for i := range values {
		values[i] = float64(i)
	}

	avg := movingAverage(values, 12)

	assert.True(t, math.IsNaN(avg[4]))
	assert.InDelta(t, 5.5, avg[5], 1e-12)
	assert.InDelta(t, 17.5, avg[17], 1e-12)
	assert.True(t, math.IsNaN(avg[18]))
}

func TestMovingAverage_GapPropagates(t *testing.T) {
	values := make([]float64, 30)
	values[15] = math.NaN()

	avg := movingAverage(values, 12)

	assert.True(t, math.IsNaN(avg[10]))
	assert.True(t, math.IsNaN(avg[20]))
	assert.False(t, math.IsNaN(avg[21]))
}

func TestSynthesize_Deterministic(t *testing.T) {
	assert.Equal(t, synthesize(1900, 1905, 7), synthesize(1900, 1905, 7))
	assert.NotEqual(t, synthesize(1900, 1905, 7), synthesize(1900, 1905, 8))
}

func TestWriteCSV_LoadsThroughExtractor(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "mock.csv")
	require.NoError(t, writeCSV(path, synthesize(1990, 1999, 1)))

	tbl, err := frame.Load(path, ',')
	require.NoError(t, err)
	assert.Equal(t, header, tbl.Columns())

	obs, err := tbl.Observations()
	require.NoError(t, err)
	require.Len(t, obs, 120)

	assert.Equal(t, 1990, obs[0].Year)
	assert.Equal(t, 1, obs[0].Month)
	assert.False(t, obs[0].AnnualAnomaly.Valid, "window runs off the start")
	assert.False(t, obs[119].AnnualAnomaly.Valid, "window runs off the end")
	assert.False(t, obs[gapEvery-1].MonthlyAnomaly.Valid)
	assert.True(t, obs[60].MonthlyAnomaly.Valid)

	cleaned := domain.Clean(obs)
	assert.NotEmpty(t, cleaned)
	assert.Less(t, len(cleaned), len(obs))
}
