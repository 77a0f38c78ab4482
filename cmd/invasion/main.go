//go:build ebiten

package main

import (
	"errors"
	"flag"
	"log"
	"log/slog"
	"os"

	"invasion-ca/internal/app"
	"invasion-ca/internal/session"
	"invasion-ca/internal/ui"

	"github.com/hajimehoshi/ebiten/v2"
)

func main() {
	cfg := app.NewConfig()
	cfg.Bind(flag.CommandLine)
	flag.Parse()

	simCfg, err := cfg.Load()
	if err != nil {
		log.Fatal(err)
	}

	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))
	sess, err := session.New(simCfg, logger)
	if err != nil {
		log.Fatal(err)
	}

	game := app.New(sess, cfg.Scale, cfg.PanelWidth, logger)
	size := sess.World().Size()

	ebiten.SetWindowTitle("invasion-ca: " + simCfg.Grid.Theory)
	ebiten.SetWindowSize(size.W*cfg.Scale+cfg.PanelWidth, max(size.H*cfg.Scale, ui.PanelMinHeight))

	if err := ebiten.RunGame(game); err != nil && !errors.Is(err, ebiten.Termination) {
		log.Fatal(err)
	}
}
