package barsource

import (
	"os"
	"path/filepath"
	"testing"
)

func writeTempCSV(t *testing.T, contents string) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "bars.csv")
	if err := os.WriteFile(path, []byte(contents), 0o644); err != nil {
		t.Fatalf("writing temp csv: %v", err)
	}
	return path
}

func TestCSVSourceSkipsHeaderAndReadsRows(t *testing.T) {
	path := writeTempCSV(t, "timestamp,open,high,low,close,volume\n"+
		"2024-01-01T00:00:00,100,101,99,100.5,1000\n"+
		"2024-01-01T00:01:00,100.5,102,100,101,1200\n")

	src, err := NewCSVSource(path)
	if err != nil {
		t.Fatalf("NewCSVSource: %v", err)
	}
	defer src.Close()

	if !src.HasNext() {
		t.Fatalf("expected a bar available")
	}
	bar, err := src.Next()
	if err != nil {
		t.Fatalf("Next: %v", err)
	}
	if bar.Close != 100.5 || bar.Volume != 1000 {
		t.Fatalf("unexpected first bar: %+v", bar)
	}

	if !src.HasNext() {
		t.Fatalf("expected a second bar available")
	}
	bar2, _ := src.Next()
	if bar2.Timestamp != "2024-01-01T00:01:00" {
		t.Fatalf("unexpected second bar: %+v", bar2)
	}

	if src.HasNext() {
		t.Fatalf("expected exhaustion after two rows")
	}
	if _, err := src.Next(); err != ErrExhausted {
		t.Fatalf("expected ErrExhausted, got %v", err)
	}
}

func TestCSVSourceSkipsMalformedRows(t *testing.T) {
	path := writeTempCSV(t, "timestamp,open,high,low,close,volume\n"+
		"bad,row\n"+
		"2024-01-01T00:00:00,100,101,99,100.5,1000\n")

	src, err := NewCSVSource(path)
	if err != nil {
		t.Fatalf("NewCSVSource: %v", err)
	}
	defer src.Close()

	bar, err := src.Next()
	if err != nil {
		t.Fatalf("expected the malformed row to be skipped, got error: %v", err)
	}
	if bar.Close != 100.5 {
		t.Fatalf("expected the first valid row, got %+v", bar)
	}
}
