package render

import (
	"context"
	"fmt"
	"image"
	"image/color"
	"image/color/palette"
	imgdraw "image/draw"
	"image/gif"
	"math"
	"os"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
	"gonum.org/v1/plot/vg/vgimg"

	"github.com/couchcryptid/temperature-anomaly-etl/internal/domain"
)

var (
	spiralBackground = color.RGBA{R: 20, G: 20, B: 20, A: 255}
	referenceColor   = color.RGBA{R: 230, G: 230, B: 230, A: 255}
	yearLabelColor   = color.RGBA{R: 255, G: 255, B: 255, A: 255}
)

// spiralPoint maps a month position (1 = January, 13 = next January) and an
// anomaly onto the plane: January at twelve o'clock, months clockwise,
// radius measured from domain.SpiralFloor.
func spiralPoint(monthNumber int, anomaly float64) plotter.XY {
	theta := math.Pi/2 - 2*math.Pi*float64(monthNumber-1)/12
	radius := math.Max(anomaly-domain.SpiralFloor, 0)
	return plotter.XY{X: radius * math.Cos(theta), Y: radius * math.Sin(theta)}
}

// spiralExtent is the half-width of every frame so all frames share one
// scale.
func spiralExtent() float64 {
	maxRef := domain.SpiralReferences[len(domain.SpiralReferences)-1]
	return maxRef - domain.SpiralFloor + 0.5
}

// Spiral renders one cumulative frame per year and writes them as an
// animated GIF.
func (r *Renderer) Spiral(ctx context.Context, rows []domain.FrameRow) (domain.Artifact, error) {
	if len(rows) == 0 {
		return domain.Artifact{}, fmt.Errorf("animation frames: %w", domain.ErrEmptyTable)
	}
	for i, row := range rows {
		if err := checkAnomaly(i, row.MonthlyAnomaly); err != nil {
			return domain.Artifact{}, err
		}
	}
	path, err := r.target(FileSpiral)
	if err != nil {
		return domain.Artifact{}, err
	}

	years := domain.FrameYears(rows)
	first, last := years[0], years[len(years)-1]
	delay := int(r.opts.FrameDelay.Milliseconds() / 10)

	anim := &gif.GIF{LoopCount: 0}
	end := 0
	for _, year := range years {
		if err := ctx.Err(); err != nil {
			return domain.Artifact{}, fmt.Errorf("spiral interrupted at %d: %w", year, err)
		}
		for end < len(rows) && rows[end].Year <= year {
			end++
		}
		frame, err := r.spiralFrame(rows[:end], year, first, last)
		if err != nil {
			return domain.Artifact{}, err
		}
		anim.Image = append(anim.Image, frame)
		anim.Delay = append(anim.Delay, delay)
	}
	// Hold the final frame.
	anim.Delay[len(anim.Delay)-1] = delay * 20

	if err := writeGIF(path, anim); err != nil {
		return domain.Artifact{}, err
	}

	r.logger.Debug("chart written", "chart", domain.ChartSpiral, "path", path, "frames", len(anim.Image))
	return domain.Artifact{Kind: domain.ChartSpiral, Path: path}, nil
}

// writeGIF encodes anim to path. A failed write leaves no file behind.
func writeGIF(path string, anim *gif.GIF) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create spiral: %w", err)
	}
	defer func() {
		if err != nil {
			_ = os.Remove(path)
		}
	}()

	if err := gif.EncodeAll(f, anim); err != nil {
		f.Close()
		return fmt.Errorf("encode spiral: %w", err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("close spiral: %w", err)
	}
	return nil
}

// spiralFrame draws every row up to and including year.
func (r *Renderer) spiralFrame(rows []domain.FrameRow, year, first, last int) (*image.Paletted, error) {
	p := plot.New()
	p.HideAxes()
	p.BackgroundColor = spiralBackground
	extent := spiralExtent()
	p.X.Min, p.X.Max = -extent, extent
	p.Y.Min, p.Y.Max = -extent, extent

	for _, ref := range domain.SpiralReferences {
		if err := addReferenceCircle(p, ref); err != nil {
			return nil, err
		}
	}

	start := 0
	for start < len(rows) {
		end := start
		for end < len(rows) && rows[end].Year == rows[start].Year {
			end++
		}
		for _, seg := range segments(rows[start:end], framePoint) {
			line, err := plotter.NewLine(seg)
			if err != nil {
				return nil, fmt.Errorf("spiral line %d: %w", rows[start].Year, err)
			}
			line.LineStyle.Color = yearColor(rows[start].Year, first, last)
			line.LineStyle.Width = vg.Points(1)
			p.Add(line)
		}
		start = end
	}

	size := vg.Length(r.opts.SpiralSize)
	canvas := vgimg.NewWith(vgimg.UseWH(size, size), vgimg.UseDPI(72))
	p.Draw(draw.New(canvas))
	img := canvas.Image()
	drawCentredText(img, fmt.Sprint(year))

	bounds := img.Bounds()
	frame := image.NewPaletted(bounds, palette.Plan9)
	imgdraw.Draw(frame, bounds, img, bounds.Min, imgdraw.Src)
	return frame, nil
}

func framePoint(row domain.FrameRow) (plotter.XY, bool) {
	if !row.MonthlyAnomaly.Valid {
		return plotter.XY{}, false
	}
	return spiralPoint(row.MonthNumber, row.MonthlyAnomaly.Celsius), true
}

// addReferenceCircle outlines the given anomaly and labels it at twelve
// o'clock.
func addReferenceCircle(p *plot.Plot, anomaly float64) error {
	const steps = 120
	radius := anomaly - domain.SpiralFloor
	pts := make(plotter.XYs, steps+1)
	for i := range pts {
		theta := math.Pi/2 - 2*math.Pi*float64(i)/steps
		pts[i] = plotter.XY{X: radius * math.Cos(theta), Y: radius * math.Sin(theta)}
	}
	circle, err := plotter.NewLine(pts)
	if err != nil {
		return fmt.Errorf("reference circle %.1f: %w", anomaly, err)
	}
	circle.LineStyle.Color = referenceColor
	circle.LineStyle.Width = vg.Points(1.5)
	p.Add(circle)

	top := spiralPoint(1, anomaly)
	labels, err := plotter.NewLabels(plotter.XYLabels{
		XYs:    []plotter.XY{top},
		Labels: []string{fmt.Sprintf("%.1f°C", anomaly)},
	})
	if err != nil {
		return fmt.Errorf("reference label %.1f: %w", anomaly, err)
	}
	for i := range labels.TextStyle {
		labels.TextStyle[i].Color = referenceColor
	}
	labels.Offset = vg.Point{X: vg.Points(3), Y: vg.Points(2)}
	p.Add(labels)
	return nil
}

// drawCentredText writes s in the middle of img with the fixed 7x13 face.
func drawCentredText(img imgdraw.Image, s string) {
	face := basicfont.Face7x13
	d := &font.Drawer{Dst: img, Src: image.NewUniform(yearLabelColor), Face: face}
	b := img.Bounds()
	width := d.MeasureString(s).Ceil()
	ascent := face.Metrics().Ascent.Ceil()
	x := b.Min.X + (b.Dx()-width)/2
	y := b.Min.Y + (b.Dy()+ascent)/2
	d.Dot = fixed.Point26_6{X: fixed.I(x), Y: fixed.I(y)}
	d.DrawString(s)
}
