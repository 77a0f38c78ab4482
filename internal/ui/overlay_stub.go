//go:build !ebiten

package ui

import (
	"image/color"

	"invasion-ca/internal/metrics"
)

// HistorySource supplies the density history.
type HistorySource interface {
	History() *metrics.History
}

// Overlay is a no-op placeholder used when the ebiten build tag is absent.
type Overlay struct{}

// NewOverlay constructs a stub overlay.
func NewOverlay(HistorySource, []color.RGBA, int, int, int) *Overlay { return &Overlay{} }

// Rebind is a no-op in headless builds.
func (o *Overlay) Rebind(HistorySource) {}

// Update is a no-op in headless builds.
func (o *Overlay) Update() {}

// Draw is a no-op placeholder.
func (o *Overlay) Draw(any) {}
