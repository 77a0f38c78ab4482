// Package session wires the invasion grid to the seasonal weather driver and
// keeps the per-run history and feedback log.
package session

import (
	"errors"
	"fmt"
	"log/slog"
	"math"
	"strings"

	"invasion-ca/internal/conditions"
	"invasion-ca/internal/config"
	"invasion-ca/internal/directive"
	"invasion-ca/internal/environment"
	"invasion-ca/internal/metrics"
	"invasion-ca/internal/sims/invasion"
	"invasion-ca/pkg/rng"
)

// ErrGameOver is returned by Tick once the loss condition has latched.
var ErrGameOver = errors.New("session: game over")

// EnvironmentReport is the environment as seen by the grid after a tick.
type EnvironmentReport struct {
	Temperature        float64 `json:"temperature"`
	Humidity           float64 `json:"humidity"`
	PollutionReduction float64 `json:"pollution_reduction"`
	Weather            string  `json:"weather"`
}

// TickReport summarises one tick for collaborators.
type TickReport struct {
	Tick          int                `json:"tick"`
	Date          *conditions.Report `json:"date,omitempty"`
	Environment   EnvironmentReport  `json:"environment"`
	Densities     metrics.Densities  `json:"densities"` // percent of the grid
	Endangered    invasion.Status    `json:"endangered_status"`
	StatusMessage string             `json:"status_message"`
	Victory       bool               `json:"victory"`
	GameOver      bool               `json:"game_over"`
	// Concepts holds the cognitive-map node values: environment dials and
	// species percentages plus the derived ecological nodes in [0, 1].
	Concepts map[string]float64 `json:"concepts"`
	Feedback []string           `json:"feedback,omitempty"` // messages added during this tick
}

// Session owns one grid, its weather driver and the logs built from them.
// It is not safe for concurrent use.
type Session struct {
	cfg    *config.Config
	logger *slog.Logger

	world   *invasion.World
	cond    *conditions.Conditions
	history *metrics.History

	feedback      []string
	feedbackLimit int
	pending       []string

	tick       int
	lastStatus invasion.Status
}

// New builds and seeds a session. A nil logger discards output.
func New(cfg *config.Config, logger *slog.Logger) (*Session, error) {
	if cfg == nil {
		cfg = config.Default()
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	ic, err := cfg.InvasionConfig()
	if err != nil {
		return nil, err
	}
	world, err := invasion.New(ic)
	if err != nil {
		return nil, fmt.Errorf("building grid: %w", err)
	}
	for _, d := range environment.Dials {
		world.SetDial(d, cfg.Environment.Dial(d))
	}
	world.SetWeather(cfg.Environment.Weather)

	s := &Session{
		cfg:           cfg,
		logger:        logger,
		world:         world,
		history:       metrics.NewHistory(cfg.Session.HistoryLength),
		feedbackLimit: cfg.Session.FeedbackLimit,
	}
	if cfg.Conditions.Enabled {
		s.cond = conditions.New(conditions.MaritimeClimate(), rng.New(cfg.Conditions.Seed))
		s.cond.SetPollutionReduction(world.Environment().PollutionReduction())
		world.Apply(s.cond.Current())
	}

	world.Reset(0)
	s.history.Record(world.Densities())
	s.lastStatus = world.EndangeredStatus()

	s.addFeedback(fmt.Sprintf("Simulation started: %s, %dx%d grid", ic.Theory, ic.Width, ic.Height))
	logger.Info("session started",
		"theory", string(ic.Theory),
		"width", ic.Width,
		"height", ic.Height,
		"seed", ic.Seed,
		"seeding", string(ic.Seeding.Kind),
		"conditions", cfg.Conditions.Enabled,
	)
	return s, nil
}

// Tick advances the weather driver (if enabled), steps the grid once and
// evaluates the win and loss conditions.
func (s *Session) Tick() (TickReport, error) {
	if s.world.GameOver() {
		return TickReport{}, ErrGameOver
	}
	s.pending = s.pending[:0]
	s.tick++

	if s.cond != nil {
		s.world.Apply(s.cond.Advance())
	}
	s.world.Step()
	s.history.Record(s.world.Densities())

	status, pct := s.world.EndangeredReport()
	if status != s.lastStatus {
		s.lastStatus = status
		s.addFeedback(status.Message(pct))
	}

	alreadyWon := s.world.Victory()
	if s.world.CheckVictory() && !alreadyWon {
		s.addFeedback("Victory! Invasive species brought under control")
		s.logger.Info("victory", "tick", s.tick, "invasive_pct", s.world.Densities().Invasive*100)
	}
	if s.world.CheckGameOver() {
		s.addFeedback("Game over: native and invasive cover collapsed")
		s.logger.Warn("game over", "tick", s.tick)
	}

	r := s.Report()
	if len(s.pending) > 0 {
		r.Feedback = append([]string(nil), s.pending...)
	}
	s.logger.Debug("tick",
		"tick", s.tick,
		"native", r.Densities.Native,
		"invasive", r.Densities.Invasive,
		"endangered", r.Densities.Endangered,
		"temperature", r.Environment.Temperature,
		"humidity", r.Environment.Humidity,
	)
	return r, nil
}

// Report describes the current state without stepping.
func (s *Session) Report() TickReport {
	env := s.world.Environment()
	d := s.world.Densities()
	status, pct := s.world.EndangeredReport()
	r := TickReport{
		Tick: s.tick,
		Environment: EnvironmentReport{
			Temperature:        env.Temperature(),
			Humidity:           env.Humidity(),
			PollutionReduction: env.PollutionReduction(),
			Weather:            env.Weather(),
		},
		Densities:     d.Percent(),
		Endangered:    status,
		StatusMessage: status.Message(pct),
		Victory:       s.world.Victory(),
		GameOver:      s.world.GameOver(),
		Concepts:      Concepts(env, d),
	}
	if s.cond != nil {
		date := s.cond.Snapshot()
		r.Date = &date
	}
	return r
}

// Concepts derives the cognitive-map node values from the environment and
// the densities (fractions).
func Concepts(env environment.State, d metrics.Densities) map[string]float64 {
	p := d.Percent()
	return map[string]float64{
		"temperature":          env.Temperature(),
		"humidity":             env.Humidity(),
		"pollution":            env.PollutionReduction(),
		"native":               p.Native,
		"invasive":             p.Invasive,
		"endangered":           p.Endangered,
		"resource_competition": math.Min(1, d.Competitors()),
		"invasive_dominance":   d.Invasive,
		"native_biodiversity":  d.Native,
		"ecosystem_stability":  math.Max(0, 1-math.Abs(d.Native-d.Invasive)),
	}
}

// ApplyDirective parses untrusted "Key: value" text and applies it. On a
// parse error nothing changes.
func (s *Session) ApplyDirective(text string) ([]directive.Update, error) {
	updates, err := directive.Parse(text)
	if err != nil {
		s.logger.Warn("directive rejected", "err", err)
		s.addFeedback("Directive rejected: " + firstLine(err.Error()))
		return nil, err
	}
	directive.Apply(sessionTarget{s}, updates)
	env := s.world.Environment()
	for _, u := range updates {
		if u.Weather {
			s.addFeedback(fmt.Sprintf("Weather set to %s", env.Weather()))
			continue
		}
		s.addFeedback(fmt.Sprintf("%s set to %.1f%s", u.Dial.Label(), env.Get(u.Dial), u.Dial.Bounds().Unit))
	}
	s.logger.Info("directive applied", "updates", len(updates))
	return updates, nil
}

// sessionTarget keeps the weather driver's pollution dial in step with the
// grid so the next sample does not undo it.
type sessionTarget struct{ s *Session }

func (t sessionTarget) SetDial(d environment.Dial, v float64) {
	t.s.world.SetDial(d, v)
	if d == environment.PollutionReduction && t.s.cond != nil {
		t.s.cond.SetPollutionReduction(t.s.world.Environment().PollutionReduction())
	}
}

func (t sessionTarget) SetWeather(label string) { t.s.world.SetWeather(label) }

// SetFloatParameter adjusts an environment dial by key, keeping the weather
// driver in step like ApplyDirective. It reports false for unknown keys.
func (s *Session) SetFloatParameter(key string, value float64) bool {
	d, err := environment.ParseDial(key)
	if err != nil {
		return false
	}
	sessionTarget{s}.SetDial(d, value)
	env := s.world.Environment()
	s.addFeedback(fmt.Sprintf("%s set to %.1f%s", d.Label(), env.Get(d), d.Bounds().Unit))
	return true
}

func (s *Session) addFeedback(msg string) {
	s.feedback = append(s.feedback, msg)
	s.pending = append(s.pending, msg)
	if over := len(s.feedback) - s.feedbackLimit; over > 0 {
		s.feedback = append(s.feedback[:0], s.feedback[over:]...)
	}
}

func firstLine(s string) string {
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		return s[:i]
	}
	return s
}

// Feedback returns a copy of the message log, oldest first.
func (s *Session) Feedback() []string {
	return append([]string(nil), s.feedback...)
}

// World exposes the grid for rendering.
func (s *Session) World() *invasion.World { return s.world }

// Conditions returns the weather driver, or nil when disabled.
func (s *Session) Conditions() *conditions.Conditions { return s.cond }

// History returns the per-species percentage history.
func (s *Session) History() *metrics.History { return s.history }

// Ticks returns the number of completed ticks.
func (s *Session) Ticks() int { return s.tick }

// Config returns the configuration the session was built with.
func (s *Session) Config() *config.Config { return s.cfg }
