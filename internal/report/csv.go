// Package report writes per-tick results to CSV and PNG files and streams
// them to websocket clients.
package report

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/gocarina/gocsv"

	"invasion-ca/internal/session"
)

// Row is the flat CSV rendering of a tick report.
type Row struct {
	Tick               int     `csv:"tick"`
	Year               int     `csv:"year"`
	Month              string  `csv:"month"`
	Week               int     `csv:"week"`
	Temperature        float64 `csv:"temperature"`
	Humidity           float64 `csv:"humidity"`
	PollutionReduction float64 `csv:"pollution_reduction"`
	Weather            string  `csv:"weather"`
	NativePct          float64 `csv:"native_pct"`
	InvasivePct        float64 `csv:"invasive_pct"`
	EndangeredPct      float64 `csv:"endangered_pct"`
	EndangeredStatus   string  `csv:"endangered_status"`
	Victory            bool    `csv:"victory"`
	GameOver           bool    `csv:"game_over"`
}

// RowFrom flattens r.
func RowFrom(r session.TickReport) Row {
	row := Row{
		Tick:               r.Tick,
		Temperature:        r.Environment.Temperature,
		Humidity:           r.Environment.Humidity,
		PollutionReduction: r.Environment.PollutionReduction,
		Weather:            r.Environment.Weather,
		NativePct:          r.Densities.Native,
		InvasivePct:        r.Densities.Invasive,
		EndangeredPct:      r.Densities.Endangered,
		EndangeredStatus:   string(r.Endangered),
		Victory:            r.Victory,
		GameOver:           r.GameOver,
	}
	if r.Date != nil {
		row.Year = r.Date.Year
		row.Month = r.Date.Month
		row.Week = r.Date.Week
	}
	return row
}

// CSVWriter appends one row per tick, writing the header with the first row.
type CSVWriter struct {
	w             io.Writer
	closer        io.Closer
	headerWritten bool
}

// NewCSVWriter writes rows to w. Close does not close w.
func NewCSVWriter(w io.Writer) *CSVWriter {
	return &CSVWriter{w: w}
}

// CreateCSV creates (or truncates) path, making parent directories.
func CreateCSV(path string) (*CSVWriter, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("creating output directory: %w", err)
	}
	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("creating %s: %w", filepath.Base(path), err)
	}
	return &CSVWriter{w: f, closer: f}, nil
}

// Write appends the row for r.
func (cw *CSVWriter) Write(r session.TickReport) error {
	return cw.WriteRows([]Row{RowFrom(r)})
}

// WriteRows appends rows.
func (cw *CSVWriter) WriteRows(rows []Row) error {
	if len(rows) == 0 {
		return nil
	}
	if !cw.headerWritten {
		if err := gocsv.Marshal(rows, cw.w); err != nil {
			return fmt.Errorf("writing densities: %w", err)
		}
		cw.headerWritten = true
		return nil
	}
	if err := gocsv.MarshalWithoutHeaders(rows, cw.w); err != nil {
		return fmt.Errorf("writing densities: %w", err)
	}
	return nil
}

// Close closes the underlying file if CreateCSV opened it.
func (cw *CSVWriter) Close() error {
	if cw.closer == nil {
		return nil
	}
	return cw.closer.Close()
}
