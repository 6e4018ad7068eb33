package domain

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRunReport_WriteJSON(t *testing.T) {
	frozen := time.Date(2024, time.March, 1, 9, 30, 0, 0, time.UTC)
	SetClock(clockwork.NewFakeClockAt(frozen))
	defer SetClock(nil)

	report := NewRunReport("data/anomalies.csv")
	report.Observations = 24
	report.Cleaned = 12
	report.Dropped = 12
	report.Trend = &Trend{Intercept: -1, Slope: 0.01}
	report.Artifacts = []Artifact{{Kind: ChartSpiral, Path: "out/climate_spiral.gif"}}

	path := filepath.Join(t.TempDir(), "manifest.json")
	require.NoError(t, report.WriteJSON(path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	var got map[string]any
	require.NoError(t, json.Unmarshal(data, &got))
	assert.Equal(t, "2024-03-01T09:30:00Z", got["generated_at"])
	assert.Equal(t, "data/anomalies.csv", got["input"])
	assert.EqualValues(t, 12, got["dropped"])
	assert.NotContains(t, got, "years_without_readings")
	assert.Equal(t, 0.01, got["trend"].(map[string]any)["slope"])
}

func TestRunReport_WriteJSON_BadPath(t *testing.T) {
	err := NewRunReport("x").WriteJSON(filepath.Join(t.TempDir(), "missing", "manifest.json"))
	require.Error(t, err)
}

func TestClock_Since(t *testing.T) {
	fake := clockwork.NewFakeClock()
	SetClock(fake)
	defer SetClock(nil)

	start := Now()
	fake.Advance(3 * time.Second)
	assert.Equal(t, 3*time.Second, Since(start))
}
