// Package domain models monthly global temperature anomaly data and the
// derived tables used to chart it.
//
// # Data Source
//
// The input is a delimited export of a monthly land/ocean temperature series
// (Berkeley Earth and NASA GISTEMP publish this shape). Headers vary in case
// and spacing between releases, so they are normalized before projection:
//
//	"Year", "Month", "Monthly Anomaly", "Annual Anomaly"
//	  ->  year, month, monthly_anomaly, annual_anomaly
//
// Extra columns (uncertainties, five-year averages) are ignored.
//
// # Anomaly Conventions
//
// Anomalies are deviations in degrees Celsius from a fixed baseline period.
// The annual anomaly column is a centred 12-month moving average, so it is
// absent for the first and last six months of the record. Absent cells appear
// as empty strings, "NA", or "NaN" and are modelled as an invalid [Anomaly].
//
// Rows without an annual anomaly are dropped by [Clean]. Monthly values that
// are absent are skipped by aggregation and charting rather than treated as
// fatal.
//
// # Wrap-around Rows
//
// Month-aligned charts need continuity across year boundaries. Each year is
// padded with the previous December and the following January:
//
//	month_number:  0         1   ...  12   13
//	label:         last_Dec  Jan ...  Dec  next_Jan
//
// [SeasonalWrap] emits both padding rows; [AnimationSeries] emits only the
// trailing next_Jan row and numbers the result for frame-by-frame rendering.
// Padding rows are never created for years outside the observed range.
//
// # Spiral Geometry
//
// The climate spiral maps month_number to angle (January at twelve o'clock,
// clockwise, next_Jan closing the loop) and anomaly to radius. Radius zero
// is [SpiralFloor] so that negative anomalies stay inside the plot.
package domain
