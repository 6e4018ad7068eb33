package domain

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fullYears returns complete monthly rows for [first, last] with anomaly
// year-first/100 + month/1000 so every cell is distinguishable.
func fullYears(first, last int) []CleanedObservation {
	var rows []CleanedObservation
	for y := first; y <= last; y++ {
		for m := 1; m <= 12; m++ {
			rows = append(rows, CleanedObservation{
				Year:           y,
				Month:          m,
				MonthlyAnomaly: Celsius(float64(y-first)/100 + float64(m)/1000),
			})
		}
	}
	return rows
}

func threeRowExample() []CleanedObservation {
	return []CleanedObservation{
		{Year: 1850, Month: 1, MonthlyAnomaly: Celsius(0.1)},
		{Year: 1850, Month: 12, MonthlyAnomaly: Celsius(0.3)},
		{Year: 1851, Month: 1, MonthlyAnomaly: Celsius(0.2)},
	}
}

func TestSeasonalWrap_ThreeRowExample(t *testing.T) {
	got := SeasonalWrap(threeRowExample())

	want := []WrappedRow{
		{Year: 1850, Label: "Jan", MonthlyAnomaly: Celsius(0.1), MonthNumber: 1},
		{Year: 1850, Label: "Dec", MonthlyAnomaly: Celsius(0.3), MonthNumber: 12},
		{Year: 1850, Label: NextJan, MonthlyAnomaly: Celsius(0.2), MonthNumber: 13},
		{Year: 1851, Label: LastDec, MonthlyAnomaly: Celsius(0.3), MonthNumber: 0, IsCurrentYear: true},
		{Year: 1851, Label: "Jan", MonthlyAnomaly: Celsius(0.2), MonthNumber: 1, IsCurrentYear: true},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("SeasonalWrap mismatch (-want +got):\n%s", diff)
	}
}

func TestSeasonalWrap_LabelsBijectOntoMonthNumbers(t *testing.T) {
	rows := SeasonalWrap(fullYears(1990, 1993))

	byYear := make(map[int]map[MonthLabel]int)
	for _, r := range rows {
		if byYear[r.Year] == nil {
			byYear[r.Year] = make(map[MonthLabel]int)
		}
		_, dup := byYear[r.Year][r.Label]
		require.False(t, dup, "duplicate %s in %d", r.Label, r.Year)
		byYear[r.Year][r.Label] = r.MonthNumber
		assert.Equal(t, r.Label.MonthNumber(), r.MonthNumber)
		assert.GreaterOrEqual(t, r.MonthNumber, 0)
		assert.LessOrEqual(t, r.MonthNumber, 13)
	}

	// Inner years carry all 14 slots, edges lose the padding that would leave the range.
	assert.Len(t, byYear[1991], 14)
	assert.Len(t, byYear[1992], 14)
	assert.Len(t, byYear[1990], 13)
	assert.NotContains(t, byYear[1990], LastDec)
	assert.Len(t, byYear[1993], 13)
	assert.NotContains(t, byYear[1993], NextJan)
	assert.NotContains(t, byYear, 1989)
	assert.NotContains(t, byYear, 1994)
}

func TestSeasonalWrap_PaddingCopiesNeighbourValues(t *testing.T) {
	src := fullYears(2000, 2002)
	rows := SeasonalWrap(src)

	find := func(year int, label MonthLabel) WrappedRow {
		for _, r := range rows {
			if r.Year == year && r.Label == label {
				return r
			}
		}
		t.Fatalf("no %s row for %d", label, year)
		return WrappedRow{}
	}

	assert.Equal(t, find(2000, "Dec").MonthlyAnomaly, find(2001, LastDec).MonthlyAnomaly)
	assert.Equal(t, find(2002, "Jan").MonthlyAnomaly, find(2001, NextJan).MonthlyAnomaly)
}

func TestSeasonalWrap_CurrentYearFlag(t *testing.T) {
	for _, r := range SeasonalWrap(fullYears(2020, 2023)) {
		assert.Equal(t, r.Year == 2023, r.IsCurrentYear, "year %d %s", r.Year, r.Label)
	}
}

func TestSeasonalWrap_MissingBoundaryMonths(t *testing.T) {
	// 2011 has no January and 2010 no December: no padding across that boundary.
	rows := []CleanedObservation{
		{Year: 2010, Month: 1, MonthlyAnomaly: Celsius(0.1)},
		{Year: 2010, Month: 6, MonthlyAnomaly: Celsius(0.2)},
		{Year: 2011, Month: 6, MonthlyAnomaly: Celsius(0.3)},
		{Year: 2011, Month: 12, MonthlyAnomaly: Celsius(0.4)},
	}

	for _, r := range SeasonalWrap(rows) {
		assert.NotEqual(t, LastDec, r.Label)
		assert.NotEqual(t, NextJan, r.Label)
	}
}

func TestSeasonalWrap_Empty(t *testing.T) {
	assert.Nil(t, SeasonalWrap(nil))
}

func TestAnimationSeries_ThreeRowExample(t *testing.T) {
	got := AnimationSeries(threeRowExample())

	want := []FrameRow{
		{Year: 1850, MonthNumber: 1, MonthlyAnomaly: Celsius(0.1), Step: 1},
		{Year: 1850, MonthNumber: 12, MonthlyAnomaly: Celsius(0.3), Step: 2},
		{Year: 1850, MonthNumber: 13, MonthlyAnomaly: Celsius(0.2), Step: 3},
		{Year: 1851, MonthNumber: 1, MonthlyAnomaly: Celsius(0.2), Step: 4},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("AnimationSeries mismatch (-want +got):\n%s", diff)
	}
}

func TestAnimationSeries_StepsAreContiguous(t *testing.T) {
	// Shuffled input must still come out ordered and numbered.
	src := fullYears(1880, 1885)
	for i, j := 0, len(src)-1; i < j; i, j = i+1, j-1 {
		src[i], src[j] = src[j], src[i]
	}

	rows := AnimationSeries(src)

	require.Len(t, rows, 6*12+5)
	for i, r := range rows {
		assert.Equal(t, i+1, r.Step)
		if i > 0 {
			prev := rows[i-1]
			ordered := prev.Year < r.Year || (prev.Year == r.Year && prev.MonthNumber < r.MonthNumber)
			assert.True(t, ordered, "row %d out of order", i)
		}
	}
	assert.Equal(t, 1880, rows[0].Year, "no synthetic year before the first observed year")
	assert.Equal(t, 12, rows[len(rows)-1].MonthNumber, "last year has no following January")
}

func TestAnimationSeries_Empty(t *testing.T) {
	assert.Nil(t, AnimationSeries(nil))
}

func TestFrameYears(t *testing.T) {
	rows := AnimationSeries(fullYears(1900, 1903))
	assert.Equal(t, []int{1900, 1901, 1902, 1903}, FrameYears(rows))
	assert.Empty(t, FrameYears(nil))
}

func TestReshape_DoesNotMutateInput(t *testing.T) {
	src := fullYears(1950, 1952)
	snapshot := append([]CleanedObservation(nil), src...)

	SeasonalWrap(src)
	AnimationSeries(src)

	assert.Equal(t, snapshot, src)
}

func TestMonthLabels(t *testing.T) {
	assert.Equal(t, MonthLabel("Jan"), MonthLabelFor(1))
	assert.Equal(t, MonthLabel("Dec"), MonthLabelFor(12))
	assert.Equal(t, MonthLabel(""), MonthLabelFor(0))
	assert.Equal(t, 0, LastDec.MonthNumber())
	assert.Equal(t, 7, MonthLabel("Jul").MonthNumber())
	assert.Equal(t, 13, NextJan.MonthNumber())
	assert.Equal(t, -1, MonthLabel("Smarch").MonthNumber())
}
