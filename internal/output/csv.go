// Package output delivers per-run snapshot streams to their consumers:
// per-scenario CSV file trees and an optional SQLite results store.
package output

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/talgya/classroomsim/internal/sim"
)

// RunPath returns the output file path for one run, creating its directory:
// <root>/{full_class|half_class}/zero_patient_<k>/simulation<rep>.csv.
func RunPath(root string, halfClass bool, zeroPatient, rep int) (string, error) {
	class := "full_class"
	if halfClass {
		class = "half_class"
	}
	dir := filepath.Join(root, class, fmt.Sprintf("zero_patient_%d", zeroPatient))
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("create output dir: %w", err)
	}
	return filepath.Join(dir, fmt.Sprintf("simulation%d.csv", rep)), nil
}

// CSVWriter streams one run's snapshots to a CSV file: a header row of
// occupant indices, then one row of status codes per snapshot.
type CSVWriter struct {
	f *os.File
	w *bufio.Writer
}

// NewCSVWriter creates (truncating) the run's output file.
func NewCSVWriter(path string) (*CSVWriter, error) {
	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("create run file: %w", err)
	}
	return &CSVWriter{f: f, w: bufio.NewWriter(f)}, nil
}

// WriteHeader writes the participating occupant indices.
func (c *CSVWriter) WriteHeader(roster []int) error {
	for i, id := range roster {
		if i > 0 {
			c.w.WriteByte(',')
		}
		c.w.WriteString(strconv.Itoa(id))
	}
	return c.w.WriteByte('\n')
}

// WriteSnapshot writes one row of status codes in roster order.
func (c *CSVWriter) WriteSnapshot(_ int, statuses []sim.Status) error {
	for i, s := range statuses {
		if i > 0 {
			c.w.WriteByte(',')
		}
		c.w.WriteString(strconv.Itoa(int(s)))
	}
	return c.w.WriteByte('\n')
}

// Close flushes and closes the file.
func (c *CSVWriter) Close() error {
	if err := c.w.Flush(); err != nil {
		c.f.Close()
		return fmt.Errorf("flush run file: %w", err)
	}
	return c.f.Close()
}

// Multi fans one snapshot stream out to several sinks.
type Multi []sim.Sink

// WriteHeader forwards the roster header to every sink.
func (m Multi) WriteHeader(roster []int) error {
	for _, s := range m {
		if err := s.WriteHeader(roster); err != nil {
			return err
		}
	}
	return nil
}

// WriteSnapshot forwards one snapshot to every sink.
func (m Multi) WriteSnapshot(tSeconds int, statuses []sim.Status) error {
	for _, s := range m {
		if err := s.WriteSnapshot(tSeconds, statuses); err != nil {
			return err
		}
	}
	return nil
}
