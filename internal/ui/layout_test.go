package ui

import (
	"slices"
	"testing"

	"invasion-ca/internal/core"
)

func TestStepTargetClamps(t *testing.T) {
	ctrl := core.ParameterControl{Key: "temperature", Step: 1, Min: 0, Max: 40}
	if got, ok := stepTarget(ctrl, 20, 1); !ok || got != 21 {
		t.Fatalf("stepTarget(20, +1) = %v, %v", got, ok)
	}
	if got, ok := stepTarget(ctrl, 40, 1); ok || got != 40 {
		t.Fatalf("stepTarget at max = %v, %v; want 40, false", got, ok)
	}
	if got, ok := stepTarget(ctrl, 0.5, -1); !ok || got != 0 {
		t.Fatalf("stepTarget(0.5, -1) = %v, %v; want 0, true", got, ok)
	}
	if _, ok := stepTarget(ctrl, 10, 0); ok {
		t.Fatal("zero direction must not adjust")
	}
}

func TestFormatFloat(t *testing.T) {
	tests := []struct {
		ctrl core.ParameterControl
		v    float64
		want string
	}{
		{core.ParameterControl{Step: 1, Unit: "°C"}, 21.4, "21°C"},
		{core.ParameterControl{Step: 0.5}, 3.26, "3.3"},
		{core.ParameterControl{Step: 0.05}, 0.126, "0.13"},
		{core.ParameterControl{}, 0.5, "0.50"},
	}
	for _, tt := range tests {
		if got := formatFloat(tt.ctrl, tt.v); got != tt.want {
			t.Errorf("formatFloat(%+v, %v) = %q, want %q", tt.ctrl, tt.v, got, tt.want)
		}
	}
}

func TestWrapText(t *testing.T) {
	got := wrapText("Alert: Endangered species declining (4.0%)", 16)
	want := []string{"Alert:", "Endangered", "species", "declining (4.0%)"}
	if !slices.Equal(got, want) {
		t.Fatalf("wrapText = %q, want %q", got, want)
	}
	got = wrapText("abcdefghij kl", 4)
	want = []string{"abcd", "efgh", "ij", "kl"}
	if !slices.Equal(got, want) {
		t.Fatalf("wrapText long word = %q, want %q", got, want)
	}
	if wrapText("anything", 0) != nil {
		t.Fatal("zero width must produce no lines")
	}
}

func TestTail(t *testing.T) {
	lines := []string{"a", "b", "c"}
	if got := tail(lines, 2); !slices.Equal(got, []string{"b", "c"}) {
		t.Fatalf("tail = %v", got)
	}
	if got := tail(lines, 5); len(got) != 3 {
		t.Fatalf("tail longer than input = %v", got)
	}
}
