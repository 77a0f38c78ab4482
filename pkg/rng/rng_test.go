package rng

import "testing"

func TestNewDeterministic(t *testing.T) {
	a := New(42)
	b := New(42)
	for i := 0; i < 32; i++ {
		if x, y := a.Float64(), b.Float64(); x != y {
			t.Fatalf("draw %d differs: %v vs %v", i, x, y)
		}
	}
}

func TestUniformBounds(t *testing.T) {
	r := New(7)
	for i := 0; i < 1000; i++ {
		v := Uniform(r, -3, 3)
		if v < -3 || v >= 3 {
			t.Fatalf("Uniform out of bounds: %v", v)
		}
	}
}

func TestPickCoversItems(t *testing.T) {
	r := New(1)
	seen := map[string]bool{}
	items := []string{"a", "b", "c"}
	for i := 0; i < 200; i++ {
		seen[Pick(r, items)] = true
	}
	if len(seen) != len(items) {
		t.Fatalf("expected all items picked, saw %v", seen)
	}
}
