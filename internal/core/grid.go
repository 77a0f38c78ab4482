package core

// Grid stores a 2D grid of byte-sized cell values in row-major order.
type Grid struct {
	W, H int
	data []uint8
}

// NewGrid allocates a zeroed grid. Callers validate dimensions first.
func NewGrid(w, h int) *Grid {
	return &Grid{W: w, H: h, data: make([]uint8, w*h)}
}

// Cells exposes the backing slice so callers can read/write values directly.
func (g *Grid) Cells() []uint8 { return g.data }

// Len returns the number of cells.
func (g *Grid) Len() int { return len(g.data) }

// Index returns the linear slice index for coordinates (x, y).
func (g *Grid) Index(x, y int) int { return y*g.W + x }

// InBounds reports whether (x, y) addresses a cell.
func (g *Grid) InBounds(x, y int) bool {
	return x >= 0 && x < g.W && y >= 0 && y < g.H
}

// At returns the value at (x, y).
func (g *Grid) At(x, y int) uint8 { return g.data[y*g.W+x] }

// Set writes v at (x, y).
func (g *Grid) Set(x, y int, v uint8) { g.data[y*g.W+x] = v }

// CountMoore counts the cells equal to v in the 8-connected neighbourhood of
// (x, y). Offsets falling outside the grid are skipped rather than wrapped.
func (g *Grid) CountMoore(x, y int, v uint8) int {
	n := 0
	for dy := -1; dy <= 1; dy++ {
		ny := y + dy
		if ny < 0 || ny >= g.H {
			continue
		}
		row := ny * g.W
		for dx := -1; dx <= 1; dx++ {
			if dx == 0 && dy == 0 {
				continue
			}
			nx := x + dx
			if nx < 0 || nx >= g.W {
				continue
			}
			if g.data[row+nx] == v {
				n++
			}
		}
	}
	return n
}

// Histogram counts occurrences of every byte value below len(out) and
// ignores the rest.
func (g *Grid) Histogram(out []int) {
	for i := range out {
		out[i] = 0
	}
	for _, v := range g.data {
		if int(v) < len(out) {
			out[v]++
		}
	}
}

// CopyFrom overwrites g with the contents of src. Sizes must match.
func (g *Grid) CopyFrom(src *Grid) { copy(g.data, src.data) }

// Clear fills the grid with zeros.
func (g *Grid) Clear() {
	for i := range g.data {
		g.data[i] = 0
	}
}
