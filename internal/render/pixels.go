// Package render converts species grids into RGBA pixels.
package render

import (
	"image"
	"image/color"
	"image/png"
	"io"
)

// fillPaletteRGBA converts cell values into RGBA pixels using a palette. When
// the palette is empty the buffer is cleared to transparent black. Values past
// the end of the palette use its last entry.
func fillPaletteRGBA(buf []byte, cells []uint8, palette []color.RGBA) {
	if len(palette) == 0 {
		clear(buf[:4*len(cells)])
		return
	}

	last := len(palette) - 1
	for i, c := range cells {
		idx := min(int(c), last)
		base := i * 4
		col := palette[idx]
		buf[base+0] = col.R
		buf[base+1] = col.G
		buf[base+2] = col.B
		buf[base+3] = col.A
	}
}

// Snapshot renders a w×h grid into an image, each cell scale×scale pixels.
func Snapshot(w, h int, cells []uint8, palette []color.RGBA, scale int) *image.RGBA {
	if scale < 1 {
		scale = 1
	}
	base := image.NewRGBA(image.Rect(0, 0, w, h))
	if len(cells) == w*h {
		fillPaletteRGBA(base.Pix, cells, palette)
	}
	if scale == 1 {
		return base
	}
	out := image.NewRGBA(image.Rect(0, 0, w*scale, h*scale))
	for y := 0; y < h*scale; y++ {
		for x := 0; x < w*scale; x++ {
			out.SetRGBA(x, y, base.RGBAAt(x/scale, y/scale))
		}
	}
	return out
}

// WritePNG encodes a Snapshot of the grid as PNG.
func WritePNG(dst io.Writer, w, h int, cells []uint8, palette []color.RGBA, scale int) error {
	return png.Encode(dst, Snapshot(w, h, cells, palette, scale))
}
