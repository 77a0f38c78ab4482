// Package directive turns free-form "Key: value" text into environment
// updates. Input is untrusted: nothing is applied unless every line parses.
package directive

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/agnivade/levenshtein"

	"invasion-ca/internal/environment"
)

var (
	// ErrUnknownKey reports a line whose key matches no dial.
	ErrUnknownKey = errors.New("unknown directive key")
	// ErrBadValue reports a value that is not a finite number.
	ErrBadValue = errors.New("invalid directive value")
	// ErrMalformed reports a line without a key/value separator.
	ErrMalformed = errors.New("malformed directive")
)

// WeatherKey is the only non-numeric key.
const WeatherKey = "weather"

// Update is one validated change. Weather updates carry Label; dial updates
// carry Dial and Value.
type Update struct {
	Dial    environment.Dial
	Value   float64
	Weather bool
	Label   string
}

func (u Update) String() string {
	if u.Weather {
		return fmt.Sprintf("%s = %s", WeatherKey, u.Label)
	}
	return fmt.Sprintf("%s = %g", u.Dial.Key(), u.Value)
}

// Target receives applied updates. *invasion.World satisfies it.
type Target interface {
	SetDial(d environment.Dial, v float64)
	SetWeather(label string)
}

type phrase struct {
	alias  string
	dial   environment.Dial
	isWind bool
}

var phrases = buildPhrases()

func buildPhrases() []phrase {
	out := []phrase{{alias: WeatherKey, isWind: true}}
	for _, d := range environment.Dials {
		out = append(out,
			phrase{alias: d.Key(), dial: d},
			phrase{alias: strings.ToLower(d.Label()), dial: d},
		)
	}
	out = append(out,
		phrase{alias: "temp", dial: environment.Temperature},
		phrase{alias: "pollution", dial: environment.PollutionReduction},
	)
	return out
}

// Parse reads one directive per line (semicolons also separate). Blank lines
// and lines starting with '#' are skipped. Keys are case-insensitive and
// tolerate small typos. All line errors are returned joined; on error no
// updates are returned.
func Parse(text string) ([]Update, error) {
	var (
		updates []Update
		errs    []error
	)
	lines := strings.FieldsFunc(text, func(r rune) bool { return r == '\n' || r == ';' })
	for i, raw := range lines {
		line := strings.TrimSpace(raw)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		u, err := parseLine(line)
		if err != nil {
			errs = append(errs, fmt.Errorf("directive %d: %w", i+1, err))
			continue
		}
		updates = append(updates, u)
	}
	if len(errs) > 0 {
		return nil, errors.Join(errs...)
	}
	return updates, nil
}

func parseLine(line string) (Update, error) {
	idx := strings.IndexAny(line, ":=")
	if idx < 0 {
		return Update{}, fmt.Errorf("%w: %q", ErrMalformed, line)
	}
	key := strings.TrimSpace(line[:idx])
	value := strings.TrimSpace(line[idx+1:])
	p, err := resolve(key)
	if err != nil {
		return Update{}, err
	}
	if p.isWind {
		if value == "" {
			return Update{}, fmt.Errorf("%w: empty weather", ErrBadValue)
		}
		return Update{Weather: true, Label: value}, nil
	}
	v, err := parseNumber(value, p.dial)
	if err != nil {
		return Update{}, err
	}
	return Update{Dial: p.dial, Value: v}, nil
}

// parseNumber accepts an optional suffix matching the dial's unit ("25°C",
// "25 C", "60%"). Any other unit is rejected rather than reinterpreted.
func parseNumber(value string, d environment.Dial) (float64, error) {
	trimmed := strings.TrimSpace(value)
	for _, suffix := range unitSuffixes(d) {
		if rest, ok := strings.CutSuffix(trimmed, suffix); ok {
			trimmed = strings.TrimSpace(rest)
			break
		}
	}
	v, err := strconv.ParseFloat(trimmed, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, fmt.Errorf("%w: %q", ErrBadValue, value)
	}
	return v, nil
}

// unitSuffixes lists the accepted spellings of d's unit, longest first.
func unitSuffixes(d environment.Dial) []string {
	unit := d.Bounds().Unit
	if unit == "°C" {
		return []string{"°C", "°c", "C", "c"}
	}
	return []string{unit}
}

func resolve(key string) (phrase, error) {
	compare := strings.ToLower(strings.Join(strings.Fields(key), " "))
	if compare == "" {
		return phrase{}, fmt.Errorf("%w: empty key", ErrUnknownKey)
	}
	best := -1
	bestDist := math.MaxInt
	for i, p := range phrases {
		if p.alias == compare {
			return p, nil
		}
		dist := levenshtein.ComputeDistance(compare, p.alias)
		if dist > levenshteinLimit(len(p.alias)) {
			continue
		}
		if dist < bestDist {
			best, bestDist = i, dist
		}
	}
	if best < 0 {
		return phrase{}, fmt.Errorf("%w: %q", ErrUnknownKey, key)
	}
	return phrases[best], nil
}

func levenshteinLimit(length int) int {
	switch {
	case length <= 4:
		return 1
	case length <= 8:
		return 2
	default:
		return 3
	}
}

// Apply pushes updates through t in order. Dial values are clamped by the
// target.
func Apply(t Target, updates []Update) {
	for _, u := range updates {
		if u.Weather {
			t.SetWeather(u.Label)
			continue
		}
		t.SetDial(u.Dial, u.Value)
	}
}
