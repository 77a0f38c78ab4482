package core

import "testing"

func TestCountMooreClampsAtEdges(t *testing.T) {
	g := NewGrid(3, 3)
	for i := range g.Cells() {
		g.Cells()[i] = 1
	}

	tests := []struct {
		x, y int
		want int
	}{
		{0, 0, 3},
		{1, 0, 5},
		{1, 1, 8},
		{2, 2, 3},
	}
	for _, tt := range tests {
		if got := g.CountMoore(tt.x, tt.y, 1); got != tt.want {
			t.Errorf("CountMoore(%d,%d) = %d, want %d", tt.x, tt.y, got, tt.want)
		}
	}
}

func TestCountMooreIgnoresCentre(t *testing.T) {
	g := NewGrid(3, 3)
	g.Set(1, 1, 2)
	if got := g.CountMoore(1, 1, 2); got != 0 {
		t.Fatalf("centre counted as neighbour: %d", got)
	}
	if got := g.CountMoore(0, 0, 2); got != 1 {
		t.Fatalf("expected corner to see centre, got %d", got)
	}
}

func TestHistogram(t *testing.T) {
	g := NewGrid(4, 1)
	copy(g.Cells(), []uint8{0, 1, 1, 9})
	counts := make([]int, 4)
	g.Histogram(counts)
	if counts[0] != 1 || counts[1] != 2 || counts[2] != 0 || counts[3] != 0 {
		t.Fatalf("unexpected histogram %v", counts)
	}
}
