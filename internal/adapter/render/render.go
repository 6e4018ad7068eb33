// Package render draws the anomaly charts with gonum/plot. Static charts are
// written as PNG, the climate spiral as an animated GIF.
package render

import (
	"fmt"
	"image/color"
	"log/slog"
	"math"
	"path/filepath"
	"time"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/vg"

	"github.com/couchcryptid/temperature-anomaly-etl/internal/domain"
)

// Output file names inside the output directory.
const (
	FileYearlyLine  = "yearly_average.png"
	FileYearlyTrend = "yearly_trend.png"
	FileSeasonal    = "seasonal.png"
	FileSpiral      = "climate_spiral.gif"
)

// Options configures a Renderer.
type Options struct {
	OutputDir  string
	FrameDelay time.Duration // spiral frame delay; GIF resolution is 10ms
	Width      vg.Length     // static chart size
	Height     vg.Length
	SpiralSize int // spiral frame edge in pixels
}

// Renderer writes charts into a single output directory. It is safe for
// concurrent use since every call builds its own plot.
type Renderer struct {
	opts   Options
	logger *slog.Logger
}

// New creates a Renderer, filling unset sizes with defaults.
func New(opts Options, logger *slog.Logger) *Renderer {
	if opts.Width == 0 {
		opts.Width = 10 * vg.Inch
	}
	if opts.Height == 0 {
		opts.Height = 6 * vg.Inch
	}
	if opts.SpiralSize == 0 {
		opts.SpiralSize = 600
	}
	if opts.FrameDelay <= 0 {
		opts.FrameDelay = 100 * time.Millisecond
	}
	return &Renderer{opts: opts, logger: logger}
}

// target resolves name inside the output directory, failing when the
// directory is missing.
func (r *Renderer) target(name string) (string, error) {
	if err := domain.CheckOutputDir(r.opts.OutputDir); err != nil {
		return "", err
	}
	return filepath.Join(r.opts.OutputDir, name), nil
}

func (r *Renderer) save(p *plot.Plot, kind, name string) (domain.Artifact, error) {
	path, err := r.target(name)
	if err != nil {
		return domain.Artifact{}, err
	}
	if err := p.Save(r.opts.Width, r.opts.Height, path); err != nil {
		return domain.Artifact{}, fmt.Errorf("save %s chart: %w", kind, err)
	}
	r.logger.Debug("chart written", "chart", kind, "path", path)
	return domain.Artifact{Kind: kind, Path: path}, nil
}

// checkFinite rejects NaN and Inf in a column that must be numeric.
func checkFinite(column string, row int, v float64) error {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return fmt.Errorf("%w: %s row %d is %v", domain.ErrNonNumeric, column, row, v)
	}
	return nil
}

func checkAnomaly(row int, a domain.Anomaly) error {
	if !a.Finite() {
		return fmt.Errorf("%w: monthly_anomaly row %d is %v", domain.ErrNonNumeric, row, a.Celsius)
	}
	return nil
}

// yearPalette runs from cool blue for the oldest year through pale yellow to
// red for the newest.
var yearPalette = []color.RGBA{
	{R: 49, G: 54, B: 149, A: 255},
	{R: 116, G: 173, B: 209, A: 255},
	{R: 255, G: 255, B: 191, A: 255},
	{R: 244, G: 109, B: 67, A: 255},
	{R: 165, G: 0, B: 38, A: 255},
}

// yearColor interpolates yearPalette for year within [first, last].
func yearColor(year, first, last int) color.RGBA {
	if last <= first {
		return yearPalette[len(yearPalette)-1]
	}
	pos := float64(year-first) / float64(last-first) * float64(len(yearPalette)-1)
	i := int(math.Floor(pos))
	if i >= len(yearPalette)-1 {
		return yearPalette[len(yearPalette)-1]
	}
	if i < 0 {
		return yearPalette[0]
	}
	frac := pos - float64(i)
	a, b := yearPalette[i], yearPalette[i+1]
	mix := func(x, y uint8) uint8 { return uint8(math.Round(float64(x) + (float64(y)-float64(x))*frac)) }
	return color.RGBA{R: mix(a.R, b.R), G: mix(a.G, b.G), B: mix(a.B, b.B), A: 255}
}
