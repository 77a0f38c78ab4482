package main

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/gocarina/gocsv"

	"invasion-ca/internal/config"
	"invasion-ca/internal/metrics"
	"invasion-ca/internal/theory"
)

func TestParseTheories(t *testing.T) {
	all, err := parseTheories("")
	if err != nil || len(all) != len(theory.All) {
		t.Fatalf("expected every theory, got %v (%v)", all, err)
	}
	got, err := parseTheories("er, novel_weapons,enemy_release")
	if err != nil {
		t.Fatalf("parseTheories: %v", err)
	}
	if len(got) != 2 || got[0] != theory.EnemyRelease || got[1] != theory.NovelWeapons {
		t.Fatalf("unexpected theories %v", got)
	}
	if _, err := parseTheories("bogus"); !errors.Is(err, theory.ErrUnknownTheory) {
		t.Fatalf("expected ErrUnknownTheory, got %v", err)
	}
}

func TestRatio(t *testing.T) {
	if got := ratio(metrics.Densities{Native: 40, Invasive: 20}); got != 0.5 {
		t.Fatalf("ratio = %v, want 0.5", got)
	}
	if got := ratio(metrics.Densities{Invasive: 12}); got != 12 {
		t.Fatalf("ratio without natives = %v, want 12", got)
	}
}

func TestSummarize(t *testing.T) {
	results := []trialResult{
		{ratioTrend: 0.1, final: metrics.Densities{Native: 10, Invasive: 30}},
		{ratioTrend: 0.3, final: metrics.Densities{Native: 20, Invasive: 40}, victory: true},
		{ratioTrend: 0.2, final: metrics.Densities{Native: 30, Invasive: 50}, gameOver: true},
		{err: errors.New("boom")},
	}
	row := summarize(theory.EnemyRelease, results)
	if row.Trials != 3 || row.FailedTrials != 1 {
		t.Fatalf("unexpected trial counts %+v", row)
	}
	if row.MedianTrend != 0.2 {
		t.Fatalf("median trend = %v, want 0.2", row.MedianTrend)
	}
	if row.MeanNative != 20 || row.MeanInvasive != 40 {
		t.Fatalf("unexpected means %+v", row)
	}
	if row.Victories != 1 || row.GameOvers != 1 {
		t.Fatalf("unexpected outcome counts %+v", row)
	}
}

func TestRunTrialIsDeterministic(t *testing.T) {
	base := config.Default()
	base.Grid.Width, base.Grid.Height = 20, 20
	a := runTrial(base, trial{theory: theory.EmptyNiche, index: 2}, 10)
	b := runTrial(base, trial{theory: theory.EmptyNiche, index: 2}, 10)
	if a.err != nil || b.err != nil {
		t.Fatalf("runTrial errors: %v %v", a.err, b.err)
	}
	if a.ratioTrend != b.ratioTrend || a.final != b.final {
		t.Fatalf("trials diverged: %+v vs %+v", a, b)
	}
}

func TestSummaryCSVHeader(t *testing.T) {
	var buf bytes.Buffer
	rows := []SummaryRow{{Theory: "enemy_release", Trials: 9}}
	if err := gocsv.Marshal(rows, &buf); err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	header := strings.SplitN(buf.String(), "\n", 2)[0]
	if !strings.HasPrefix(header, "theory,trials,median_ratio_trend") {
		t.Fatalf("unexpected header %q", header)
	}
}
