// Package barsource implements bar streams. CSVSource reads OHLCV rows
// from a file: header-skip, positional columns, graceful skip of
// malformed rows. WSSource (ws.go) is a supplemental live aggregator.
package barsource

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/evdnx/fluxback/types"
)

// ErrExhausted is returned by Next once the source has no further bars.
var ErrExhausted = errors.New("barsource: exhausted")

// Source is the bar stream contract every strategy/orchestrator consumes.
type Source interface {
	HasNext() bool
	Next() (types.Bar, error)
}

// CSVSource reads timestamp,open,high,low,close,volume rows from a CSV
// file, skipping the header line.
type CSVSource struct {
	file    *os.File
	reader  *csv.Reader
	pending *types.Bar
	err     error
}

// NewCSVSource opens path and skips its header row.
func NewCSVSource(path string) (*CSVSource, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("barsource: opening %s: %w", path, err)
	}
	r := csv.NewReader(f)
	r.FieldsPerRecord = -1
	if _, err := r.Read(); err != nil && err != io.EOF {
		f.Close()
		return nil, fmt.Errorf("barsource: reading header of %s: %w", path, err)
	}
	s := &CSVSource{file: f, reader: r}
	s.advance()
	return s, nil
}

// HasNext reports whether another bar is available.
func (s *CSVSource) HasNext() bool {
	return s.pending != nil
}

// Next returns the next bar, advancing the cursor. Malformed rows are
// skipped rather than surfaced as errors, so a single bad row does not
// abort a run; Next only returns an error once the stream is exhausted.
func (s *CSVSource) Next() (types.Bar, error) {
	if s.pending == nil {
		return types.Bar{}, ErrExhausted
	}
	bar := *s.pending
	s.advance()
	return bar, nil
}

// Close releases the underlying file handle.
func (s *CSVSource) Close() error {
	return s.file.Close()
}

func (s *CSVSource) advance() {
	for {
		record, err := s.reader.Read()
		if err == io.EOF {
			s.pending = nil
			return
		}
		if err != nil {
			var parseErr *csv.ParseError
			if errors.As(err, &parseErr) {
				continue
			}
			s.pending = nil
			return
		}
		bar, ok := parseRow(record)
		if !ok {
			continue
		}
		s.pending = &bar
		return
	}
}

func parseRow(record []string) (types.Bar, bool) {
	if len(record) < 6 {
		return types.Bar{}, false
	}
	open, err1 := strconv.ParseFloat(record[1], 64)
	high, err2 := strconv.ParseFloat(record[2], 64)
	low, err3 := strconv.ParseFloat(record[3], 64)
	close, err4 := strconv.ParseFloat(record[4], 64)
	volume, err5 := strconv.ParseFloat(record[5], 64)
	if err1 != nil || err2 != nil || err3 != nil || err4 != nil || err5 != nil {
		return types.Bar{}, false
	}
	return types.Bar{
		Timestamp: record[0],
		Open:      open,
		High:      high,
		Low:       low,
		Close:     close,
		Volume:    volume,
	}, true
}
