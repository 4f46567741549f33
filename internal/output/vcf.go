// Package output assembles and emits scored VCF lines.
package output

import (
	"bufio"
	"io"
	"sort"
)

// Line is a finalized output line with the sort key used for final
// ordering.
type Line struct {
	Chrom string
	Pos   int64
	Text  string
}

// Writer buffers scored data lines in memory and emits them on Flush,
// sorted by chromosome (lexicographic string comparison) then position.
// The sort is not karyotype-aware: chromosome "10" sorts before "2".
// Header lines bypass the buffer and are written immediately.
type Writer struct {
	w     *bufio.Writer
	lines []Line
}

// NewWriter creates a writer emitting to w.
func NewWriter(w io.Writer) *Writer {
	return &Writer{w: bufio.NewWriter(w)}
}

// WriteHeader writes the captured header lines unchanged.
func (w *Writer) WriteHeader(lines []string) error {
	for _, line := range lines {
		if _, err := w.w.WriteString(line + "\n"); err != nil {
			return err
		}
	}
	return nil
}

// Add buffers finalized data lines for the final sort.
func (w *Writer) Add(lines ...Line) {
	w.lines = append(w.lines, lines...)
}

// Len returns the number of buffered data lines.
func (w *Writer) Len() int {
	return len(w.lines)
}

// Flush sorts the buffered lines and writes them out. Lines with equal
// keys keep their input order.
func (w *Writer) Flush() error {
	sort.SliceStable(w.lines, func(i, j int) bool {
		if w.lines[i].Chrom != w.lines[j].Chrom {
			return w.lines[i].Chrom < w.lines[j].Chrom
		}
		return w.lines[i].Pos < w.lines[j].Pos
	})
	for _, line := range w.lines {
		if _, err := w.w.WriteString(line.Text + "\n"); err != nil {
			return err
		}
	}
	return w.w.Flush()
}
