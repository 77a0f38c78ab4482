//go:build ebiten

package ui

import (
	"fmt"
	"image"
	"image/color"
	"strconv"

	"invasion-ca/internal/core"
	"invasion-ca/internal/session"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/text"
	"golang.org/x/image/font/basicfont"
)

// HUD renders the dial panel and session status to the right of the grid.
type HUD struct {
	sess       *session.Session
	width      int
	panel      *ebiten.Image
	lastHeight int
	snapshot   core.ParameterSnapshot
	report     session.TickReport

	controls     []hudControlState
	floatSetter  core.FloatParameterSetter
	panelOffsetX int
	title        string

	// directive is the text being typed; editing is true while the prompt
	// is open.
	directive string
	editing   bool

	pixel *ebiten.Image
}

// NewHUD constructs a HUD for the session and panel width.
func NewHUD(sess *session.Session, width int) *HUD {
	if width < 0 {
		width = 0
	}
	h := &HUD{sess: sess, width: width}
	if width > 0 {
		h.pixel = ebiten.NewImage(1, 1)
		h.pixel.Fill(color.White)
	}
	h.Rebind(sess)
	return h
}

// Rebind points the HUD at a new session, e.g. after a reset.
func (h *HUD) Rebind(sess *session.Session) {
	h.sess = sess
	world := sess.World()
	h.title = fmt.Sprintf("Invasion: %s", world.Strategy().Theory())
	controls := world.ParameterControls()
	h.controls = make([]hudControlState, len(controls))
	for i, ctrl := range controls {
		h.controls[i] = hudControlState{control: ctrl, value: "--"}
	}
	h.floatSetter = sess
	h.layoutControls()
	h.report = sess.Report()
}

// Editing reports whether the directive prompt has keyboard focus.
func (h *HUD) Editing() bool { return h != nil && h.editing }

// Update refreshes the cached snapshot and handles HUD interactions.
func (h *HUD) Update(panelOffsetX int) {
	if h == nil {
		return
	}
	h.panelOffsetX = panelOffsetX
	h.snapshot = h.sess.World().Parameters()
	h.report = h.sess.Report()
	h.refreshControlValues()
	h.handleDirectiveInput()
	h.handleInput()
}

// Draw paints the HUD panel anchored to the right edge of the grid.
func (h *HUD) Draw(screen *ebiten.Image, offsetX int, scale int) {
	if h == nil || h.width <= 0 {
		return
	}
	if scale <= 0 {
		scale = 1
	}
	height := max(h.sess.World().Size().H*scale, PanelMinHeight)
	if h.panel == nil || h.panel.Bounds().Dx() != h.width || h.lastHeight != height {
		h.panel = ebiten.NewImage(h.width, height)
		h.lastHeight = height
	}
	h.panel.Fill(color.RGBA{R: 16, G: 16, B: 20, A: 255})
	h.drawControls()
	h.drawStatus()
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Translate(float64(offsetX), 0)
	screen.DrawImage(h.panel, op)
}

func (h *HUD) refreshControlValues() {
	for i := range h.controls {
		state := &h.controls[i]
		param, ok := h.snapshot.Lookup(state.control.Key)
		if !ok {
			state.hasValue = false
			state.value = "--"
			continue
		}
		parsed, err := strconv.ParseFloat(param.Value, 64)
		if err != nil {
			state.hasValue = false
			state.value = "--"
			continue
		}
		state.floatValue = parsed
		state.value = formatFloat(state.control, parsed)
		state.hasValue = true
	}
}

// handleDirectiveInput drives the "Key: value" prompt. Tab opens it, Enter
// applies, Escape cancels.
func (h *HUD) handleDirectiveInput() {
	if !h.editing {
		if inpututil.IsKeyJustPressed(ebiten.KeyTab) {
			h.editing = true
			h.directive = ""
		}
		return
	}
	switch {
	case inpututil.IsKeyJustPressed(ebiten.KeyEscape):
		h.editing = false
		h.directive = ""
		return
	case inpututil.IsKeyJustPressed(ebiten.KeyEnter):
		if h.directive != "" {
			// rejected directives are reported through the feedback log
			_, _ = h.sess.ApplyDirective(h.directive)
		}
		h.editing = false
		h.directive = ""
		return
	case inpututil.IsKeyJustPressed(ebiten.KeyBackspace):
		if n := len(h.directive); n > 0 {
			r := []rune(h.directive)
			h.directive = string(r[:len(r)-1])
		}
	}
	h.directive += string(ebiten.AppendInputChars(nil))
}

func (h *HUD) handleInput() {
	if len(h.controls) == 0 {
		return
	}
	if !inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		return
	}
	mx, my := ebiten.CursorPosition()
	if mx < h.panelOffsetX {
		return
	}
	px := mx - h.panelOffsetX
	for i := range h.controls {
		state := &h.controls[i]
		if !state.hasValue {
			continue
		}
		if pointInRect(px, my, state.minusRect) {
			h.applyAdjustment(state, -1)
			return
		}
		if pointInRect(px, my, state.plusRect) {
			h.applyAdjustment(state, 1)
			return
		}
	}
}

func (h *HUD) applyAdjustment(state *hudControlState, direction int) {
	if state == nil || h.floatSetter == nil {
		return
	}
	target, ok := stepTarget(state.control, state.floatValue, direction)
	if !ok {
		return
	}
	if h.floatSetter.SetFloatParameter(state.control.Key, target) {
		state.floatValue = target
		state.value = formatFloat(state.control, target)
	}
}

func (h *HUD) drawControls() {
	face := basicfont.Face7x13
	headerY := panelPadding + headerBaseline
	text.Draw(h.panel, h.title, face, panelPadding, headerY, color.RGBA{R: 200, G: 200, B: 210, A: 255})
	for i := range h.controls {
		state := &h.controls[i]
		top := state.top
		labelY := top + labelBaseline
		text.Draw(h.panel, state.control.Label, face, panelPadding, labelY, color.RGBA{R: 220, G: 220, B: 230, A: 255})
		valueColor := color.RGBA{R: 220, G: 220, B: 230, A: 255}
		if !state.hasValue {
			valueColor = color.RGBA{R: 160, G: 160, B: 170, A: 255}
		}
		bounds := text.BoundString(face, state.value)
		valueX := state.minusRect.Min.X - buttonGap - bounds.Dx()
		text.Draw(h.panel, state.value, face, valueX, labelY, valueColor)

		_, minusOK := stepTarget(state.control, state.floatValue, -1)
		_, plusOK := stepTarget(state.control, state.floatValue, 1)
		h.drawButton(state.minusRect, "-", state.hasValue && minusOK)
		h.drawButton(state.plusRect, "+", state.hasValue && plusOK)
	}
}

func (h *HUD) drawStatus() {
	face := basicfont.Face7x13
	r := h.report
	y := controlsTop + len(h.controls)*lineHeight + infoSpacing/2
	dim := color.RGBA{R: 160, G: 160, B: 170, A: 255}
	bright := color.RGBA{R: 220, G: 220, B: 230, A: 255}

	lines := []hudLine{{fmt.Sprintf("Tick %d  Weather: %s", r.Tick, r.Environment.Weather), bright}}
	if r.Date != nil {
		lines = append(lines, hudLine{fmt.Sprintf("%s %d, week %d", r.Date.Month, r.Date.Year, r.Date.Week), dim})
	}
	for _, l := range lines {
		text.Draw(h.panel, l.s, face, panelPadding, y, l.col)
		y += textLine
	}
	y += textLine / 2

	world := h.sess.World()
	pal := world.Palette()
	densities := []struct {
		label string
		value float64
		tag   int
	}{
		{"Native", r.Densities.Native, 1},
		{"Invasive", r.Densities.Invasive, 2},
		{"Endangered", r.Densities.Endangered, 3},
	}
	for _, d := range densities {
		text.Draw(h.panel, fmt.Sprintf("%-11s %5.1f%%", d.label, d.value), face, panelPadding, y, pal[d.tag])
		y += textLine
	}
	y += textLine / 2

	chars := (h.width - 2*panelPadding) / glyphWidth
	for _, l := range wrapText(r.StatusMessage, chars) {
		text.Draw(h.panel, l, face, panelPadding, y, bright)
		y += textLine
	}
	switch {
	case r.GameOver:
		text.Draw(h.panel, "GAME OVER", face, panelPadding, y, color.RGBA{R: 231, G: 76, B: 60, A: 255})
		y += textLine
	case r.Victory:
		text.Draw(h.panel, "VICTORY", face, panelPadding, y, color.RGBA{R: 46, G: 204, B: 113, A: 255})
		y += textLine
	}
	y += textLine / 2

	prompt := "[Tab] directive"
	if h.editing {
		prompt = "> " + h.directive + "_"
	}
	for _, l := range wrapText(prompt, chars) {
		text.Draw(h.panel, l, face, panelPadding, y, color.RGBA{R: 241, G: 196, B: 15, A: 255})
		y += textLine
	}
	y += textLine / 2

	var feedback []string
	for _, msg := range h.sess.Feedback() {
		feedback = append(feedback, wrapText(msg, chars)...)
	}
	room := (h.lastHeight - y) / textLine
	for _, l := range tail(feedback, room) {
		text.Draw(h.panel, l, face, panelPadding, y, dim)
		y += textLine
	}
}

func (h *HUD) drawButton(rect image.Rectangle, label string, enabled bool) {
	if h.pixel == nil {
		return
	}
	bg := color.RGBA{R: 54, G: 56, B: 64, A: 255}
	fg := color.RGBA{R: 230, G: 230, B: 240, A: 255}
	if !enabled {
		bg = color.RGBA{R: 32, G: 34, B: 40, A: 255}
		fg = color.RGBA{R: 120, G: 120, B: 130, A: 255}
	}
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(float64(rect.Dx()), float64(rect.Dy()))
	op.GeoM.Translate(float64(rect.Min.X), float64(rect.Min.Y))
	op.ColorScale.ScaleWithColor(bg)
	h.panel.DrawImage(h.pixel, op)

	face := basicfont.Face7x13
	bounds := text.BoundString(face, label)
	x := rect.Min.X + (rect.Dx()-bounds.Dx())/2
	y := rect.Min.Y + (rect.Dy()-bounds.Dy())/2 + bounds.Dy()
	text.Draw(h.panel, label, face, x, y, fg)
}

func (h *HUD) layoutControls() {
	if len(h.controls) == 0 || h.width <= 0 {
		return
	}
	for i := range h.controls {
		top := controlsTop + i*lineHeight
		buttonY := top + (lineHeight-buttonSize)/2
		plusRect := image.Rect(h.width-panelPadding-buttonSize, buttonY, h.width-panelPadding, buttonY+buttonSize)
		minusRect := image.Rect(plusRect.Min.X-buttonGap-buttonSize, buttonY, plusRect.Min.X-buttonGap, buttonY+buttonSize)
		h.controls[i].top = top
		h.controls[i].minusRect = minusRect
		h.controls[i].plusRect = plusRect
	}
}

func pointInRect(x, y int, rect image.Rectangle) bool {
	return x >= rect.Min.X && x < rect.Max.X && y >= rect.Min.Y && y < rect.Max.Y
}

type hudLine struct {
	s   string
	col color.Color
}

type hudControlState struct {
	control core.ParameterControl
	value   string

	floatValue float64
	hasValue   bool

	top       int
	minusRect image.Rectangle
	plusRect  image.Rectangle
}

const (
	panelPadding   = 12
	lineHeight     = 36
	buttonSize     = 24
	buttonGap      = 6
	headerBaseline = 18
	labelBaseline  = 24
	infoSpacing    = 36
	textLine       = 16
	glyphWidth     = 7
	controlsTop    = panelPadding + headerBaseline + 14
)
