package neuroevolution

import (
	"fmt"
	"io"

	"github.com/gocarina/gocsv"
)

// StatsWriter appends GenerationStats rows to a CSV stream, writing the
// header only before the first row.
type StatsWriter struct {
	w             io.Writer
	headerWritten bool
}

// NewStatsWriter creates a writer for a fresh CSV stream.
func NewStatsWriter(w io.Writer) *StatsWriter {
	return &StatsWriter{w: w}
}

// Write appends the given rows.
func (sw *StatsWriter) Write(stats ...GenerationStats) error {
	if len(stats) == 0 {
		return nil
	}
	if !sw.headerWritten {
		if err := gocsv.Marshal(stats, sw.w); err != nil {
			return fmt.Errorf("writing generation stats: %w", err)
		}
		sw.headerWritten = true
		return nil
	}
	if err := gocsv.MarshalWithoutHeaders(stats, sw.w); err != nil {
		return fmt.Errorf("writing generation stats: %w", err)
	}
	return nil
}
