package species

import (
	"errors"
	"testing"
)

func TestCheck(t *testing.T) {
	for _, s := range Living {
		if err := Check(s); err != nil {
			t.Fatalf("Check(%v) = %v, want nil", s, err)
		}
	}
	for _, s := range []Species{Empty, 4, 200} {
		if err := Check(s); !errors.Is(err, ErrInvalidSpecies) {
			t.Fatalf("Check(%d) = %v, want ErrInvalidSpecies", s, err)
		}
	}
}

func TestRangeContainsWithTolerance(t *testing.T) {
	r := Range{Min: 15, Max: 30}
	tests := []struct {
		v    float64
		want bool
	}{
		{15, true},
		{12, true},
		{11.9, false},
		{33, true},
		{33.5, false},
	}
	for _, tt := range tests {
		if got := r.ContainsWithTolerance(tt.v, 0.2); got != tt.want {
			t.Errorf("ContainsWithTolerance(%v) = %v, want %v", tt.v, got, tt.want)
		}
	}
}

func TestStringNames(t *testing.T) {
	if Native.String() != "native" || Endangered.String() != "endangered" {
		t.Fatalf("unexpected names %q %q", Native, Endangered)
	}
	if got := Species(9).String(); got != "species(9)" {
		t.Fatalf("unexpected fallback %q", got)
	}
}
