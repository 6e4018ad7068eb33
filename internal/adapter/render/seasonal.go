package render

import (
	"fmt"
	"image/color"
	"sort"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"

	"github.com/couchcryptid/temperature-anomaly-etl/internal/domain"
)

var currentYearColor = color.RGBA{A: 255}

// monthTicks labels the display window [1, 12] of the wrapped month axis.
func monthTicks() plot.ConstantTicks {
	ticks := make(plot.ConstantTicks, 0, 12)
	for m := 1; m <= 12; m++ {
		ticks = append(ticks, plot.Tick{Value: float64(m), Label: string(domain.MonthLabelFor(m))})
	}
	return ticks
}

// segments splits points at absent values so gaps are not bridged.
func segments[T any](rows []T, point func(T) (plotter.XY, bool)) []plotter.XYs {
	var out []plotter.XYs
	var cur plotter.XYs
	for _, row := range rows {
		xy, ok := point(row)
		if !ok {
			if len(cur) > 0 {
				out = append(out, cur)
				cur = nil
			}
			continue
		}
		cur = append(cur, xy)
	}
	if len(cur) > 0 {
		out = append(out, cur)
	}
	return out
}

// Seasonal draws one line per year over the wrapped month axis, coloured by
// year, with the current year emphasized and labelled.
func (r *Renderer) Seasonal(rows []domain.WrappedRow) (domain.Artifact, error) {
	if len(rows) == 0 {
		return domain.Artifact{}, fmt.Errorf("seasonal wrap: %w", domain.ErrEmptyTable)
	}

	byYear := make(map[int][]domain.WrappedRow)
	for i, row := range rows {
		if err := checkAnomaly(i, row.MonthlyAnomaly); err != nil {
			return domain.Artifact{}, err
		}
		byYear[row.Year] = append(byYear[row.Year], row)
	}
	years := make([]int, 0, len(byYear))
	for y := range byYear {
		years = append(years, y)
	}
	sort.Ints(years)
	first, last := years[0], years[len(years)-1]

	p := plot.New()
	p.Title.Text = "Monthly temperature anomaly by year"
	p.Title.TextStyle.Font.Size = vg.Points(14)
	p.X.Label.Text = "Month"
	p.Y.Label.Text = "Temperature anomaly (°C)"
	p.X.Tick.Marker = monthTicks()

	var current []domain.WrappedRow
	for _, year := range years {
		yearRows := byYear[year]
		sort.SliceStable(yearRows, func(i, j int) bool { return yearRows[i].MonthNumber < yearRows[j].MonthNumber })
		if yearRows[0].IsCurrentYear {
			current = yearRows
			continue
		}
		if err := addYearLines(p, yearRows, yearColor(year, first, last), vg.Points(0.5)); err != nil {
			return domain.Artifact{}, err
		}
	}

	p.Add(zeroLine())
	if current != nil {
		if err := addYearLines(p, current, currentYearColor, vg.Points(2.5)); err != nil {
			return domain.Artifact{}, err
		}
		if err := labelCurrentYear(p, current); err != nil {
			return domain.Artifact{}, err
		}
	}

	// Padding rows at 0 and 13 extend each line to the window edges; the
	// plotters clip them to the data area.
	p.X.Min, p.X.Max = 1, 12

	return r.save(p, domain.ChartSeasonal, FileSeasonal)
}

func addYearLines(p *plot.Plot, rows []domain.WrappedRow, c color.Color, width vg.Length) error {
	for _, seg := range segments(rows, wrappedPoint) {
		line, err := plotter.NewLine(seg)
		if err != nil {
			return fmt.Errorf("seasonal line %d: %w", rows[0].Year, err)
		}
		line.LineStyle.Color = c
		line.LineStyle.Width = width
		p.Add(line)
	}
	return nil
}

func wrappedPoint(row domain.WrappedRow) (plotter.XY, bool) {
	if !row.MonthlyAnomaly.Valid {
		return plotter.XY{}, false
	}
	return plotter.XY{X: float64(row.MonthNumber), Y: row.MonthlyAnomaly.Celsius}, true
}

// labelCurrentYear annotates the last present value inside the display
// window.
func labelCurrentYear(p *plot.Plot, rows []domain.WrappedRow) error {
	for i := len(rows) - 1; i >= 0; i-- {
		row := rows[i]
		if !row.MonthlyAnomaly.Valid || row.MonthNumber < 1 || row.MonthNumber > 12 {
			continue
		}
		labels, err := plotter.NewLabels(plotter.XYLabels{
			XYs:    []plotter.XY{{X: float64(row.MonthNumber), Y: row.MonthlyAnomaly.Celsius}},
			Labels: []string{fmt.Sprint(row.Year)},
		})
		if err != nil {
			return fmt.Errorf("current year label: %w", err)
		}
		labels.Offset = vg.Point{X: vg.Points(4), Y: vg.Points(4)}
		p.Add(labels)
		return nil
	}
	return nil
}
