package report

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/gocarina/gocsv"
	"github.com/gorilla/websocket"

	"invasion-ca/internal/config"
	"invasion-ca/internal/metrics"
	"invasion-ca/internal/session"
)

func runSession(t *testing.T, ticks int) (*session.Session, []session.TickReport) {
	t.Helper()
	cfg := config.Default()
	cfg.Grid.Width = 16
	cfg.Grid.Height = 16
	s, err := session.New(cfg, nil)
	if err != nil {
		t.Fatalf("session.New: %v", err)
	}
	reports := make([]session.TickReport, 0, ticks)
	for i := 0; i < ticks; i++ {
		r, err := s.Tick()
		if err != nil {
			t.Fatalf("Tick: %v", err)
		}
		reports = append(reports, r)
	}
	return s, reports
}

func TestCSVWriterWritesHeaderOnce(t *testing.T) {
	_, reports := runSession(t, 4)
	path := filepath.Join(t.TempDir(), "out", "densities.csv")
	cw, err := CreateCSV(path)
	if err != nil {
		t.Fatalf("CreateCSV: %v", err)
	}
	for _, r := range reports {
		if err := cw.Write(r); err != nil {
			t.Fatalf("Write: %v", err)
		}
	}
	if err := cw.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if got := strings.Count(string(data), "tick,year"); got != 1 {
		t.Fatalf("expected one header line, found %d", got)
	}
	var rows []Row
	if err := gocsv.UnmarshalBytes(data, &rows); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if len(rows) != len(reports) {
		t.Fatalf("expected %d rows, got %d", len(reports), len(rows))
	}
	last := rows[len(rows)-1]
	want := reports[len(reports)-1]
	if last.Tick != want.Tick || last.Month != want.Date.Month || last.NativePct != want.Densities.Native {
		t.Fatalf("row %+v does not match report %+v", last, want)
	}
}

func TestRenderDensityChart(t *testing.T) {
	s, _ := runSession(t, 5)
	var buf bytes.Buffer
	if err := RenderDensityChart(&buf, s.History()); err != nil {
		t.Fatalf("RenderDensityChart: %v", err)
	}
	if !bytes.HasPrefix(buf.Bytes(), []byte("\x89PNG")) {
		t.Fatal("expected PNG output")
	}

	path := filepath.Join(t.TempDir(), "charts", "densities.png")
	if err := WriteDensityChart(path, s.History()); err != nil {
		t.Fatalf("WriteDensityChart: %v", err)
	}
	if info, err := os.Stat(path); err != nil || info.Size() == 0 {
		t.Fatalf("chart file missing or empty: %v", err)
	}
}

func TestRenderDensityChartNeedsTwoSamples(t *testing.T) {
	h := metrics.NewHistory(10)
	h.Record(metrics.Densities{Native: 0.5})
	if err := RenderDensityChart(&bytes.Buffer{}, h); !errors.Is(err, ErrNotEnoughData) {
		t.Fatalf("expected ErrNotEnoughData, got %v", err)
	}
}

func TestHubBroadcastsReports(t *testing.T) {
	hub := NewHub(nil)
	defer hub.Close()
	srv := httptest.NewServer(hub)
	defer srv.Close()

	url := "ws" + strings.TrimPrefix(srv.URL, "http")
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	defer conn.Close()

	deadline := time.Now().Add(2 * time.Second)
	for hub.ClientCount() == 0 {
		if time.Now().After(deadline) {
			t.Fatal("client never registered")
		}
		time.Sleep(5 * time.Millisecond)
	}

	_, reports := runSession(t, 1)
	if err := hub.Publish(context.Background(), reports[0]); err != nil {
		t.Fatalf("Publish: %v", err)
	}

	conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	_, msg, err := conn.ReadMessage()
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	var got session.TickReport
	if err := json.Unmarshal(msg, &got); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if got.Tick != 1 || got.Endangered != reports[0].Endangered {
		t.Fatalf("unexpected report %+v", got)
	}
}

func TestHubPublishAfterClose(t *testing.T) {
	hub := NewHub(nil)
	if err := hub.Close(); err != nil {
		t.Fatal(err)
	}
	if err := hub.Close(); err != nil {
		t.Fatalf("second Close: %v", err)
	}
	_, reports := runSession(t, 1)
	if err := hub.Publish(context.Background(), reports[0]); !errors.Is(err, ErrHubClosed) {
		t.Fatalf("expected ErrHubClosed, got %v", err)
	}
}
