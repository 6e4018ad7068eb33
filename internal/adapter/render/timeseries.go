package render

import (
	"fmt"
	"image/color"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"

	"github.com/couchcryptid/temperature-anomaly-etl/internal/domain"
)

var (
	seriesColor = color.RGBA{R: 33, G: 102, B: 172, A: 255}
	trendColor  = color.RGBA{R: 178, G: 24, B: 43, A: 255}
	zeroColor   = color.RGBA{R: 120, G: 120, B: 120, A: 255}
)

func yearlyXYs(avgs []domain.YearlyAverage) (plotter.XYs, error) {
	if len(avgs) == 0 {
		return nil, fmt.Errorf("yearly averages: %w", domain.ErrEmptyTable)
	}
	xys := make(plotter.XYs, len(avgs))
	for i, a := range avgs {
		if err := checkFinite("yearly_avg_anomaly", i, a.AvgAnomaly); err != nil {
			return nil, err
		}
		xys[i] = plotter.XY{X: float64(a.Year), Y: a.AvgAnomaly}
	}
	return xys, nil
}

func newYearlyPlot(title string) *plot.Plot {
	p := plot.New()
	p.Title.Text = title
	p.Title.TextStyle.Font.Size = vg.Points(14)
	p.X.Label.Text = "Year"
	p.Y.Label.Text = "Temperature anomaly (°C)"
	p.Add(plotter.NewGrid())
	return p
}

func zeroLine() *plotter.Function {
	zero := plotter.NewFunction(func(float64) float64 { return 0 })
	zero.LineStyle.Color = zeroColor
	zero.LineStyle.Width = vg.Points(0.75)
	zero.LineStyle.Dashes = []vg.Length{vg.Points(4), vg.Points(3)}
	return zero
}

// YearlyLine draws the yearly average anomaly as a line with points.
func (r *Renderer) YearlyLine(avgs []domain.YearlyAverage) (domain.Artifact, error) {
	xys, err := yearlyXYs(avgs)
	if err != nil {
		return domain.Artifact{}, err
	}

	p := newYearlyPlot("Global mean temperature anomaly by year")
	line, points, err := plotter.NewLinePoints(xys)
	if err != nil {
		return domain.Artifact{}, fmt.Errorf("yearly line: %w", err)
	}
	line.LineStyle.Color = seriesColor
	line.LineStyle.Width = vg.Points(1.2)
	points.GlyphStyle.Color = seriesColor
	points.GlyphStyle.Radius = vg.Points(1.5)
	points.GlyphStyle.Shape = draw.CircleGlyph{}
	p.Add(zeroLine(), line, points)

	return r.save(p, domain.ChartYearlyLine, FileYearlyLine)
}

// YearlyTrend draws the yearly averages as a scatter with the fitted linear
// trend.
func (r *Renderer) YearlyTrend(avgs []domain.YearlyAverage, trend domain.Trend) (domain.Artifact, error) {
	xys, err := yearlyXYs(avgs)
	if err != nil {
		return domain.Artifact{}, err
	}
	if err := checkFinite("trend_slope", 0, trend.Slope); err != nil {
		return domain.Artifact{}, err
	}
	if err := checkFinite("trend_intercept", 0, trend.Intercept); err != nil {
		return domain.Artifact{}, err
	}

	p := newYearlyPlot("Yearly anomaly with linear trend")
	scatter, err := plotter.NewScatter(xys)
	if err != nil {
		return domain.Artifact{}, fmt.Errorf("yearly scatter: %w", err)
	}
	scatter.GlyphStyle.Color = seriesColor
	scatter.GlyphStyle.Radius = vg.Points(2.5)
	scatter.GlyphStyle.Shape = draw.CircleGlyph{}

	fit := plotter.NewFunction(trend.At)
	fit.XMin = xys[0].X
	fit.XMax = xys[len(xys)-1].X
	fit.LineStyle.Color = trendColor
	fit.LineStyle.Width = vg.Points(2)

	p.Add(zeroLine(), scatter, fit)
	p.Legend.Add("yearly average", scatter)
	p.Legend.Add(fmt.Sprintf("trend %+.3f °C/decade", trend.Slope*10), fit)
	p.Legend.Top = true
	p.Legend.Left = true

	return r.save(p, domain.ChartYearlyTrend, FileYearlyTrend)
}
