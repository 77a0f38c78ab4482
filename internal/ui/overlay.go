//go:build ebiten

package ui

import (
	"image/color"
	"math"

	"invasion-ca/internal/metrics"
	"invasion-ca/internal/species"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// HistorySource supplies the density history.
type HistorySource interface {
	History() *metrics.History
}

// Overlay draws the density history plot on top of the grid. Key 1 toggles
// it.
type Overlay struct {
	src     HistorySource
	palette []color.RGBA
	w, h    int
	scale   int
	show    bool

	pixel *ebiten.Image
}

// NewOverlay constructs an overlay covering a w×h grid drawn at scale.
func NewOverlay(src HistorySource, palette []color.RGBA, w, h, scale int) *Overlay {
	o := &Overlay{src: src, palette: palette, w: w, h: h, scale: scale, show: true}
	o.pixel = ebiten.NewImage(1, 1)
	o.pixel.Fill(color.White)
	return o
}

// Rebind swaps the history source, e.g. after a reset.
func (o *Overlay) Rebind(src HistorySource) { o.src = src }

// Update handles the toggle key.
func (o *Overlay) Update() {
	if inpututil.IsKeyJustPressed(ebiten.KeyDigit1) {
		o.show = !o.show
	}
}

// Draw renders the plot into the bottom quarter of the grid view.
func (o *Overlay) Draw(screen *ebiten.Image) {
	if !o.show || o.src == nil {
		return
	}
	scale := o.scale
	if scale <= 0 {
		scale = 1
	}
	viewW := float64(o.w * scale)
	viewH := float64(o.h * scale)
	if viewW <= 0 || viewH <= 0 {
		return
	}

	const margin = 6.0
	plotH := math.Max(40, viewH/4)
	left, right := margin, viewW-margin
	bottom := viewH - margin
	top := bottom - plotH

	o.drawRect(screen, left, top, right-left, plotH, color.RGBA{R: 16, G: 16, B: 20, A: 170})

	h := o.src.History()
	for _, s := range species.Living {
		vals := h.Series(s).Values()
		if len(vals) < 2 {
			continue
		}
		col := color.RGBA{R: 255, G: 255, B: 255, A: 255}
		if int(s) < len(o.palette) {
			col = o.palette[s]
		}
		span := float64(metrics.DefaultHistoryLength - 1)
		dx := (right - left) / span
		for i := 1; i < len(vals); i++ {
			x1 := left + float64(i-1)*dx
			x2 := left + float64(i)*dx
			y1 := bottom - clamp01(vals[i-1]/100)*plotH
			y2 := bottom - clamp01(vals[i]/100)*plotH
			o.drawLine(screen, x1, y1, x2, y2, 1.5, col)
		}
	}
}

func (o *Overlay) drawRect(screen *ebiten.Image, x, y, w, h float64, col color.RGBA) {
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(w, h)
	op.GeoM.Translate(x, y)
	op.ColorScale.ScaleWithColor(col)
	screen.DrawImage(o.pixel, op)
}

func (o *Overlay) drawLine(screen *ebiten.Image, x1, y1, x2, y2, thickness float64, col color.RGBA) {
	if o.pixel == nil || thickness <= 0 {
		return
	}
	dx := x2 - x1
	dy := y2 - y1
	length := math.Hypot(dx, dy)
	if length <= 1e-4 {
		return
	}
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(length, thickness)
	op.GeoM.Translate(0, -thickness/2)
	op.GeoM.Rotate(math.Atan2(dy, dx))
	op.GeoM.Translate(x1, y1)
	op.ColorScale.ScaleWithColor(col)
	screen.DrawImage(o.pixel, op)
}

func clamp01(v float64) float64 {
	return math.Max(0, math.Min(1, v))
}
