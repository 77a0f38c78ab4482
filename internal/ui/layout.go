package ui

import (
	"math"
	"strconv"
	"strings"

	"invasion-ca/internal/core"
)

const defaultFloatStep = 0.05

// PanelMinHeight is the smallest height of the HUD panel in pixels.
const PanelMinHeight = 480

// stepTarget returns the value one step from current in direction, clamped
// to the control's bounds, and whether it differs from current.
func stepTarget(ctrl core.ParameterControl, current float64, direction int) (float64, bool) {
	if direction == 0 {
		return current, false
	}
	step := ctrl.Step
	if step <= 0 {
		step = defaultFloatStep
	}
	target := current + float64(direction)*step
	if ctrl.Min < ctrl.Max {
		target = math.Max(ctrl.Min, math.Min(ctrl.Max, target))
	}
	return target, math.Abs(target-current) >= 1e-9
}

func formatFloat(ctrl core.ParameterControl, value float64) string {
	step := ctrl.Step
	if step <= 0 {
		step = defaultFloatStep
	}
	var precision int
	switch {
	case step < 0.001:
		precision = 4
	case step < 0.01:
		precision = 3
	case step < 0.1:
		precision = 2
	case step < 1:
		precision = 1
	default:
		precision = 0
	}
	s := strconv.FormatFloat(value, 'f', precision, 64)
	if ctrl.Unit != "" {
		s += ctrl.Unit
	}
	return s
}

// wrapText breaks s into lines of at most width characters, splitting on
// spaces where possible.
func wrapText(s string, width int) []string {
	if width <= 0 {
		return nil
	}
	var lines []string
	var cur strings.Builder
	for _, word := range strings.Fields(s) {
		for len(word) > width {
			if cur.Len() > 0 {
				lines = append(lines, cur.String())
				cur.Reset()
			}
			lines = append(lines, word[:width])
			word = word[width:]
		}
		switch {
		case cur.Len() == 0:
			cur.WriteString(word)
		case cur.Len()+1+len(word) <= width:
			cur.WriteByte(' ')
			cur.WriteString(word)
		default:
			lines = append(lines, cur.String())
			cur.Reset()
			cur.WriteString(word)
		}
	}
	if cur.Len() > 0 {
		lines = append(lines, cur.String())
	}
	return lines
}

// tail returns the last n entries of lines.
func tail(lines []string, n int) []string {
	if n <= 0 {
		return nil
	}
	if len(lines) <= n {
		return lines
	}
	return lines[len(lines)-n:]
}
