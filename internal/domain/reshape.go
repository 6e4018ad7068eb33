package domain

import "sort"

// SpiralFloor is the anomaly drawn at the centre of the climate spiral.
const SpiralFloor = -2.0

// SpiralReferences are the anomalies outlined as fixed circles on every
// spiral frame.
var SpiralReferences = []float64{1.5, 2.0}

// SeasonalWrap builds the seasonal chart table: every row labelled by its
// month, plus each December repeated as last_Dec of the next year and each
// January repeated as next_Jan of the previous year. Padding rows that would
// land outside the observed year range are not emitted. Rows of the latest
// observed year are flagged IsCurrentYear.
func SeasonalWrap(rows []CleanedObservation) []WrappedRow {
	first, last, ok := YearRange(rows)
	if !ok {
		return nil
	}

	out := make([]WrappedRow, 0, len(rows)+len(rows)/6)
	for _, r := range rows {
		out = append(out, WrappedRow{
			Year:           r.Year,
			Label:          MonthLabelFor(r.Month),
			MonthlyAnomaly: r.MonthlyAnomaly,
			MonthNumber:    r.Month,
		})
		switch {
		case r.Month == 12 && r.Year+1 <= last:
			out = append(out, WrappedRow{
				Year:           r.Year + 1,
				Label:          LastDec,
				MonthlyAnomaly: r.MonthlyAnomaly,
				MonthNumber:    LastDec.MonthNumber(),
			})
		case r.Month == 1 && r.Year-1 >= first:
			out = append(out, WrappedRow{
				Year:           r.Year - 1,
				Label:          NextJan,
				MonthlyAnomaly: r.MonthlyAnomaly,
				MonthNumber:    NextJan.MonthNumber(),
			})
		}
	}

	for i := range out {
		out[i].IsCurrentYear = out[i].Year == last
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Year != out[j].Year {
			return out[i].Year < out[j].Year
		}
		return out[i].MonthNumber < out[j].MonthNumber
	})
	return out
}

// AnimationSeries builds the spiral animation table: every row at its
// calendar month plus a next_Jan row (month_number 13) per year taken from
// the following January, ordered by (year, month_number) and numbered from
// 1. The year before the first observed year, which would only hold such a
// synthetic January, is excluded.
func AnimationSeries(rows []CleanedObservation) []FrameRow {
	first, _, ok := YearRange(rows)
	if !ok {
		return nil
	}

	out := make([]FrameRow, 0, len(rows)+len(rows)/12)
	for _, r := range rows {
		out = append(out, FrameRow{
			Year:           r.Year,
			MonthNumber:    r.Month,
			MonthlyAnomaly: r.MonthlyAnomaly,
		})
		if r.Month == 1 && r.Year-1 >= first {
			out = append(out, FrameRow{
				Year:           r.Year - 1,
				MonthNumber:    NextJan.MonthNumber(),
				MonthlyAnomaly: r.MonthlyAnomaly,
			})
		}
	}

	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Year != out[j].Year {
			return out[i].Year < out[j].Year
		}
		return out[i].MonthNumber < out[j].MonthNumber
	})
	for i := range out {
		out[i].Step = i + 1
	}
	return out
}

// FrameYears returns the distinct years of a frame table in ascending order.
func FrameYears(rows []FrameRow) []int {
	var years []int
	for i, r := range rows {
		if i == 0 || r.Year != rows[i-1].Year {
			years = append(years, r.Year)
		}
	}
	return years
}
