//go:build ebiten

package app

import (
	"errors"
	"log/slog"
	"time"

	"invasion-ca/internal/config"
	"invasion-ca/internal/core"
	"invasion-ca/internal/render"
	"invasion-ca/internal/session"
	"invasion-ca/internal/ui"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// Game adapts an invasion session to the ebiten.Game interface.
type Game struct {
	cfg    *config.Config
	logger *slog.Logger

	sess    *session.Session
	painter *render.GridPainter
	hud     *ui.HUD
	overlay *ui.Overlay
	timer   *core.FixedStep

	scale      int
	panelWidth int
	paused     bool
	tickOnce   bool
	finished   bool
}

// New constructs a Game for the session. The grid advances at the session's
// configured TPS independently of the frame rate.
func New(sess *session.Session, scale, panelWidth int, logger *slog.Logger) *Game {
	world := sess.World()
	size := world.Size()
	return &Game{
		cfg:        sess.Config(),
		logger:     logger,
		sess:       sess,
		painter:    render.NewGridPainter(size.W, size.H),
		hud:        ui.NewHUD(sess, panelWidth),
		overlay:    ui.NewOverlay(sess, world.Palette(), size.W, size.H, scale),
		timer:      core.NewFixedStep(sess.Config().Session.TPS),
		scale:      scale,
		panelWidth: panelWidth,
	}
}

// Reset rebuilds the session with the provided seed.
func (g *Game) Reset(seed int64) error {
	cfg := *g.cfg
	cfg.Grid.Seed = seed
	sess, err := session.New(&cfg, g.logger)
	if err != nil {
		return err
	}
	g.sess = sess
	g.hud.Rebind(sess)
	g.overlay.Rebind(sess)
	g.tickOnce = false
	g.finished = false
	return nil
}

// Update handles per-frame logic and advances the session.
func (g *Game) Update() error {
	if !g.hud.Editing() {
		if err := g.handleKeys(); err != nil {
			return err
		}
	}

	g.hud.Update(g.gridWidth())
	g.overlay.Update()

	if g.finished {
		return nil
	}
	due := g.timer.ShouldStep()
	if (!g.paused && due) || g.tickOnce {
		g.tickOnce = false
		if _, err := g.sess.Tick(); err != nil {
			if errors.Is(err, session.ErrGameOver) {
				g.finished = true
				return nil
			}
			return err
		}
	}
	return nil
}

func (g *Game) handleKeys() error {
	if inpututil.IsKeyJustPressed(ebiten.KeyQ) || inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		return ebiten.Termination
	}
	if inpututil.IsKeyJustPressed(ebiten.KeySpace) {
		g.paused = !g.paused
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyEnter) {
		g.paused = false
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyN) {
		g.tickOnce = true
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyR) {
		return g.Reset(g.cfg.Grid.Seed)
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyS) {
		return g.Reset(time.Now().UnixNano())
	}
	return nil
}

// Draw renders the grid, the history overlay and the HUD.
func (g *Game) Draw(screen *ebiten.Image) {
	world := g.sess.World()
	g.painter.Blit(screen, world.Cells(), world.Palette(), g.scale)
	g.overlay.Draw(screen)
	g.hud.Draw(screen, g.gridWidth(), g.scale)
}

// Layout returns the logical screen size.
func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	s := g.sess.World().Size()
	return s.W*g.scale + g.panelWidth, max(s.H*g.scale, ui.PanelMinHeight)
}

func (g *Game) gridWidth() int {
	return g.sess.World().Size().W * g.scale
}
