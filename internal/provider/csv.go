package provider

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"math"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/guttosm/stockr/internal/domain/models"
)

// csvHeaders is the exact column layout of a Yahoo Finance "download" file.
var csvHeaders = []string{"Date", "Open", "High", "Low", "Close", "Adj Close", "Volume"}

// CSVProvider reads quotes from <Dir>/<SYMBOL>.csv files. Useful offline and
// for reproducible runs; the interval is ignored (files hold daily bars).
type CSVProvider struct {
	Dir string
}

// NewCSVProvider returns a provider reading files under dir.
func NewCSVProvider(dir string) *CSVProvider {
	return &CSVProvider{Dir: dir}
}

func (p *CSVProvider) Name() string { return "csv" }

// FetchDailyQuotes parses the symbol's file and keeps the rows inside rng,
// counted back from the last row. File order is preserved.
//
// It fails on:
//   - a missing file (ErrSymbolNotFound)
//   - a header not matching the expected order/length
//   - malformed numbers or dates
//
// It tolerates rows whose prices are "null", which are skipped.
func (p *CSVProvider) FetchDailyQuotes(ctx context.Context, symbol, _ string, rng string) ([]models.RawQuote, error) {
	path := filepath.Join(p.Dir, symbol+".csv")
	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrSymbolNotFound, symbol)
		}
		return nil, fmt.Errorf("%w: open %s: %w", ErrProvider, path, err)
	}
	defer func() { _ = f.Close() }()

	quotes, err := readQuotesCSV(ctx, f)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrProvider, path, err)
	}
	if len(quotes) == 0 {
		return quotes, nil
	}

	cutoff, ok, err := rangeCutoff(time.Unix(quotes[len(quotes)-1].Timestamp, 0).UTC(), rng)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrProvider, err)
	}
	if !ok {
		return quotes, nil
	}
	kept := quotes[:0]
	for _, q := range quotes {
		if q.Timestamp >= cutoff.Unix() {
			kept = append(kept, q)
		}
	}
	return kept, nil
}

// readQuotesCSV validates the header strictly, then parses rows streaming.
func readQuotesCSV(ctx context.Context, r io.Reader) ([]models.RawQuote, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1 // checked explicitly

	header, err := cr.Read()
	if err != nil {
		return nil, fmt.Errorf("read header: %w", err)
	}
	if len(header) != len(csvHeaders) {
		return nil, fmt.Errorf("invalid header length: expected %d, got %d", len(csvHeaders), len(header))
	}
	for i, h := range header {
		if strings.TrimSpace(strings.TrimPrefix(h, "\ufeff")) != csvHeaders[i] {
			return nil, fmt.Errorf("invalid header at col %d: expected %q, got %q", i+1, csvHeaders[i], h)
		}
	}

	quotes := make([]models.RawQuote, 0, 128)
	line := 1
	for {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		rec, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read line after %d: %w", line, err)
		}
		line++

		if len(rec) != len(csvHeaders) {
			return nil, fmt.Errorf("invalid column count on line %d: expected %d got %d", line, len(csvHeaders), len(rec))
		}

		q, skip, err := recordToQuote(rec)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
		if !skip {
			quotes = append(quotes, q)
		}
	}
	return quotes, nil
}

// recordToQuote converts one row. Dates become midnight UTC timestamps.
//
//	0 Date      → Timestamp ("2006-01-02")
//	1 Open      → Open
//	2 High      → High
//	3 Low       → Low
//	4 Close     → Close
//	5 Adj Close → AdjClose (empty → Close)
//	6 Volume    → Volume (empty → 0)
func recordToQuote(rec []string) (models.RawQuote, bool, error) {
	var q models.RawQuote

	d, err := time.Parse("2006-01-02", strings.TrimSpace(rec[0]))
	if err != nil {
		return q, false, fmt.Errorf("invalid Date: %v", err)
	}
	q.Timestamp = d.Unix()

	prices := []*float64{&q.Open, &q.High, &q.Low, &q.Close}
	for i, dst := range prices {
		s := strings.TrimSpace(rec[i+1])
		if s == "" || strings.EqualFold(s, "null") {
			return q, true, nil
		}
		v, err := parsePrice(s)
		if err != nil {
			return q, false, fmt.Errorf("invalid %s: %v", csvHeaders[i+1], err)
		}
		*dst = v
	}

	q.AdjClose = q.Close
	if s := strings.TrimSpace(rec[5]); s != "" && !strings.EqualFold(s, "null") {
		v, err := parsePrice(s)
		if err != nil {
			return q, false, fmt.Errorf("invalid Adj Close: %v", err)
		}
		q.AdjClose = v
	}

	if s := strings.TrimSpace(rec[6]); s != "" && !strings.EqualFold(s, "null") {
		v, err := strconv.ParseUint(s, 10, 64)
		if err != nil {
			return q, false, fmt.Errorf("invalid Volume: %v", err)
		}
		q.Volume = v
	}

	return q, false, nil
}

// rangeCutoff turns a chart range ("5d", "1wk", "6mo", "1y", "ytd", "max")
// into the earliest date kept, counted back from last. ok is false when
// everything is kept.
func rangeCutoff(last time.Time, rng string) (time.Time, bool, error) {
	rng = strings.ToLower(strings.TrimSpace(rng))
	switch rng {
	case "", "max":
		return time.Time{}, false, nil
	case "ytd":
		return time.Date(last.Year(), time.January, 1, 0, 0, 0, 0, time.UTC), true, nil
	}

	units := []struct {
		suffix string
		apply  func(n int) time.Time
	}{
		{"wk", func(n int) time.Time { return last.AddDate(0, 0, -7*n) }},
		{"mo", func(n int) time.Time { return last.AddDate(0, -n, 0) }},
		{"d", func(n int) time.Time { return last.AddDate(0, 0, -n) }},
		{"y", func(n int) time.Time { return last.AddDate(-n, 0, 0) }},
	}
	for _, u := range units {
		if !strings.HasSuffix(rng, u.suffix) {
			continue
		}
		n, err := strconv.Atoi(strings.TrimSuffix(rng, u.suffix))
		if err != nil || n <= 0 {
			return time.Time{}, false, fmt.Errorf("invalid range %q", rng)
		}
		// the last row is day one of the window
		return u.apply(n).AddDate(0, 0, 1), true, nil
	}
	return time.Time{}, false, fmt.Errorf("invalid range %q", rng)
}

// parsePrice is strconv.ParseFloat without the NaN and Inf spellings.
func parsePrice(s string) (float64, error) {
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, err
	}
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, fmt.Errorf("%q is not a finite price", s)
	}
	return v, nil
}
