// Command invasion-sweep runs independent trials of every requested theory on
// a worker pool and summarises how the invasive/native ratio moves.
package main

import (
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"runtime"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/gocarina/gocsv"

	"invasion-ca/internal/config"
	"invasion-ca/internal/metrics"
	"invasion-ca/internal/session"
	"invasion-ca/internal/theory"
)

type trial struct {
	theory theory.Theory
	index  int
}

type trialResult struct {
	theory     theory.Theory
	ratioTrend float64
	final      metrics.Densities
	victory    bool
	gameOver   bool
	err        error
}

// SummaryRow is one line of the sweep CSV.
type SummaryRow struct {
	Theory         string  `csv:"theory"`
	Trials         int     `csv:"trials"`
	MedianTrend    float64 `csv:"median_ratio_trend"`
	LowerQuartile  float64 `csv:"q25_ratio_trend"`
	UpperQuartile  float64 `csv:"q75_ratio_trend"`
	MeanNative     float64 `csv:"mean_native_pct"`
	MeanInvasive   float64 `csv:"mean_invasive_pct"`
	MeanEndangered float64 `csv:"mean_endangered_pct"`
	Victories      int     `csv:"victories"`
	GameOvers      int     `csv:"game_overs"`
	FailedTrials   int     `csv:"failed_trials"`
}

func main() {
	configPath := flag.String("config", "", "YAML config overlaid on the embedded defaults")
	trials := flag.Int("trials", 9, "trials per theory")
	steps := flag.Int("steps", 50, "ticks per trial")
	workers := flag.Int("workers", runtime.NumCPU(), "number of worker goroutines")
	theories := flag.String("theories", "", "comma-separated theories (default: all)")
	out := flag.String("out", "", "summary CSV path (default: stdout)")
	flag.Parse()

	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))

	base, err := config.Load(*configPath)
	if err != nil {
		logger.Error("load config", "err", err)
		os.Exit(1)
	}
	selected, err := parseTheories(*theories)
	if err != nil {
		logger.Error("parse theories", "err", err)
		os.Exit(2)
	}
	if *trials < 1 || *steps < 1 || *workers < 1 {
		logger.Error("trials, steps and workers must be positive")
		os.Exit(2)
	}

	logger.Info("sweep started", "theories", len(selected), "trials", *trials, "steps", *steps, "workers", *workers)
	start := time.Now()

	jobs := make(chan trial)
	results := make(chan trialResult)
	var wg sync.WaitGroup

	for i := 0; i < *workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for t := range jobs {
				results <- runTrial(base, t, *steps)
			}
		}()
	}

	go func() {
		wg.Wait()
		close(results)
	}()

	go func() {
		for _, th := range selected {
			for i := 0; i < *trials; i++ {
				jobs <- trial{theory: th, index: i}
			}
		}
		close(jobs)
	}()

	byTheory := make(map[theory.Theory][]trialResult, len(selected))
	for res := range results {
		if res.err != nil {
			logger.Warn("trial failed", "theory", res.theory, "err", res.err)
		}
		byTheory[res.theory] = append(byTheory[res.theory], res)
	}

	rows := make([]SummaryRow, 0, len(selected))
	for _, th := range selected {
		row := summarize(th, byTheory[th])
		rows = append(rows, row)
		logger.Info("theory summary",
			"theory", row.Theory,
			"median_ratio_trend", row.MedianTrend,
			"victories", row.Victories,
			"game_overs", row.GameOvers,
		)
	}
	logger.Info("sweep finished", "elapsed", time.Since(start).Round(time.Millisecond))

	if err := writeSummary(*out, rows); err != nil {
		logger.Error("write summary", "err", err)
		os.Exit(1)
	}
}

func parseTheories(list string) ([]theory.Theory, error) {
	if strings.TrimSpace(list) == "" {
		return slices.Clone(theory.All), nil
	}
	var out []theory.Theory
	for _, name := range strings.Split(list, ",") {
		th, err := theory.Parse(name)
		if err != nil {
			return nil, err
		}
		if !slices.Contains(out, th) {
			out = append(out, th)
		}
	}
	return out, nil
}

// runTrial plays one session and tracks the invasive/native ratio after
// every tick. Trials differ only in their grid and weather seeds.
func runTrial(base *config.Config, t trial, steps int) trialResult {
	res := trialResult{theory: t.theory}

	cfg := *base
	cfg.Grid.Theory = string(t.theory)
	cfg.Grid.Seed = base.Grid.Seed + int64(t.index)
	cfg.Conditions.Seed = base.Conditions.Seed + int64(t.index)
	cfg.Output = config.OutputConfig{}

	sess, err := session.New(&cfg, nil)
	if err != nil {
		res.err = err
		return res
	}

	ratios := metrics.NewWindow(steps + 1)
	rep := sess.Report()
	ratios.Push(ratio(rep.Densities))
	for i := 0; i < steps; i++ {
		rep, err = sess.Tick()
		if err != nil {
			break
		}
		ratios.Push(ratio(rep.Densities))
		if rep.GameOver {
			break
		}
	}

	res.ratioTrend = ratios.Trend()
	res.final = rep.Densities
	res.victory = rep.Victory
	res.gameOver = rep.GameOver
	return res
}

// ratio returns invasive over native density. A vanished native population
// reports the invasive percentage itself.
func ratio(d metrics.Densities) float64 {
	if d.Native <= 0 {
		return d.Invasive
	}
	return d.Invasive / d.Native
}

func summarize(th theory.Theory, results []trialResult) SummaryRow {
	row := SummaryRow{Theory: string(th)}
	var trends []float64
	for _, r := range results {
		if r.err != nil {
			row.FailedTrials++
			continue
		}
		trends = append(trends, r.ratioTrend)
		row.MeanNative += r.final.Native
		row.MeanInvasive += r.final.Invasive
		row.MeanEndangered += r.final.Endangered
		if r.victory {
			row.Victories++
		}
		if r.gameOver {
			row.GameOvers++
		}
	}
	row.Trials = len(trends)
	if row.Trials == 0 {
		return row
	}
	n := float64(row.Trials)
	row.MeanNative /= n
	row.MeanInvasive /= n
	row.MeanEndangered /= n
	row.MedianTrend = metrics.Median(trends)
	row.LowerQuartile = metrics.Quantile(0.25, trends)
	row.UpperQuartile = metrics.Quantile(0.75, trends)
	return row
}

func writeSummary(path string, rows []SummaryRow) error {
	var w io.Writer = os.Stdout
	if path != "" {
		f, err := os.Create(path)
		if err != nil {
			return err
		}
		defer f.Close()
		w = f
	}
	if err := gocsv.Marshal(rows, w); err != nil {
		return fmt.Errorf("marshal summary: %w", err)
	}
	return nil
}
