// Command invasion-run drives a session without a window. It writes the
// per-tick CSV, a density chart and a grid snapshot, and can stream tick
// reports to websocket clients.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"invasion-ca/internal/config"
	"invasion-ca/internal/core"
	"invasion-ca/internal/render"
	"invasion-ca/internal/report"
	"invasion-ca/internal/session"
)

const snapshotScale = 4

type options struct {
	configPath string
	ticks      int
	tps        int
	outputDir  string
	listen     string
}

func main() {
	var opts options
	flag.StringVar(&opts.configPath, "config", "", "YAML config overlaid on the embedded defaults")
	flag.IntVar(&opts.ticks, "ticks", -1, "ticks to run (-1 uses the configured value)")
	flag.IntVar(&opts.tps, "tps", -1, "ticks per second, 0 runs unpaced (-1 uses the configured value)")
	flag.StringVar(&opts.outputDir, "output-dir", "", "directory for CSV, chart and snapshot output")
	flag.StringVar(&opts.listen, "listen", "", "address serving the websocket tick stream, e.g. :8080")
	flag.Parse()

	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, opts, logger); err != nil {
		logger.Error("run failed", "err", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, opts options, logger *slog.Logger) error {
	cfg, err := config.Load(opts.configPath)
	if err != nil {
		return err
	}
	opts.apply(cfg)

	sess, err := session.New(cfg, logger)
	if err != nil {
		return err
	}

	var csvOut *report.CSVWriter
	if path := cfg.CSVPath(); path != "" {
		csvOut, err = report.CreateCSV(path)
		if err != nil {
			return err
		}
		defer csvOut.Close()
		if err := csvOut.Write(sess.Report()); err != nil {
			return err
		}
	}

	var hub *report.Hub
	if cfg.Output.Listen != "" {
		hub = report.NewHub(logger)
		defer hub.Close()
		srv, err := serve(cfg.Output.Listen, hub, logger)
		if err != nil {
			return err
		}
		defer shutdown(srv, logger)
	}

	var pace *core.FixedStep
	if cfg.Session.TPS > 0 {
		pace = core.NewFixedStep(cfg.Session.TPS)
	}

	logger.Info("run started", "ticks", cfg.Session.Ticks, "tps", cfg.Session.TPS, "theory", cfg.Grid.Theory)
	for sess.Ticks() < cfg.Session.Ticks {
		if err := ctx.Err(); err != nil {
			logger.Warn("run interrupted", "tick", sess.Ticks())
			break
		}
		if pace != nil && !pace.ShouldStep() {
			time.Sleep(pace.Interval() / 4)
			continue
		}
		rep, err := sess.Tick()
		if errors.Is(err, session.ErrGameOver) {
			break
		}
		if err != nil {
			return err
		}
		if csvOut != nil {
			if err := csvOut.Write(rep); err != nil {
				return err
			}
		}
		if hub != nil {
			if err := hub.Publish(ctx, rep); err != nil && !errors.Is(err, context.Canceled) {
				logger.Warn("publish failed", "tick", rep.Tick, "err", err)
			}
		}
		if rep.GameOver {
			break
		}
	}

	final := sess.Report()
	logger.Info("run finished",
		"ticks", final.Tick,
		"native_pct", final.Densities.Native,
		"invasive_pct", final.Densities.Invasive,
		"endangered_pct", final.Densities.Endangered,
		"victory", final.Victory,
		"game_over", final.GameOver,
	)
	return writeArtifacts(cfg, sess, logger)
}

func (o options) apply(cfg *config.Config) {
	if o.ticks >= 0 {
		cfg.Session.Ticks = o.ticks
	}
	if o.tps >= 0 {
		cfg.Session.TPS = o.tps
	}
	if o.outputDir != "" {
		cfg.Output.Dir = o.outputDir
	}
	if o.listen != "" {
		cfg.Output.Listen = o.listen
	}
}

// writeArtifacts stores the chart, the final grid and the effective config
// in the output directory.
func writeArtifacts(cfg *config.Config, sess *session.Session, logger *slog.Logger) error {
	if cfg.Output.Dir == "" {
		return nil
	}
	if err := os.MkdirAll(cfg.Output.Dir, 0o755); err != nil {
		return err
	}
	if path := cfg.ChartPath(); path != "" {
		err := report.WriteDensityChart(path, sess.History())
		switch {
		case errors.Is(err, report.ErrNotEnoughData):
			logger.Warn("chart skipped", "err", err)
		case err != nil:
			return err
		}
	}

	world := sess.World()
	size := world.Size()
	f, err := os.Create(filepath.Join(cfg.Output.Dir, "grid.png"))
	if err != nil {
		return err
	}
	if err := render.WritePNG(f, size.W, size.H, world.Cells(), world.Palette(), snapshotScale); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return err
	}

	if err := cfg.WriteYAML(filepath.Join(cfg.Output.Dir, "config.yaml")); err != nil {
		return err
	}
	logger.Info("artifacts written", "dir", cfg.Output.Dir)
	return nil
}

func serve(addr string, hub *report.Hub, logger *slog.Logger) (*http.Server, error) {
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return nil, fmt.Errorf("listen %s: %w", addr, err)
	}
	mux := http.NewServeMux()
	mux.Handle("/ws", hub)
	srv := &http.Server{Handler: mux, ReadHeaderTimeout: 5 * time.Second}
	go func() {
		if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("stream server stopped", "err", err)
		}
	}()
	logger.Info("streaming tick reports", "addr", ln.Addr().String(), "path", "/ws")
	return srv, nil
}

func shutdown(srv *http.Server, logger *slog.Logger) {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Warn("stream server shutdown", "err", err)
	}
}
