package invasion

import (
	"image/color"

	"invasion-ca/internal/species"
)

var invasionPalette = []color.RGBA{
	species.Empty:      {R: 255, G: 255, B: 255, A: 255},
	species.Native:     {R: 46, G: 204, B: 113, A: 255},
	species.Invasive:   {R: 231, G: 76, B: 60, A: 255},
	species.Endangered: {R: 241, G: 196, B: 15, A: 255},
}

// Palette exposes the colour of every species tag, indexed by tag.
func (w *World) Palette() []color.RGBA {
	return invasionPalette
}

// SpeciesColor returns the display colour of s, or black for unknown tags.
func SpeciesColor(s species.Species) color.RGBA {
	if int(s) < len(invasionPalette) {
		return invasionPalette[s]
	}
	return color.RGBA{A: 255}
}
