// Package genes provides the gene coordinate table used for truncation
// scoring.
package genes

import (
	"bufio"
	"compress/gzip"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
)

// Interval is the merged genomic extent of a gene on one chromosome.
type Interval struct {
	Start  int64 // 1-based start
	Stop   int64 // 1-based stop, inclusive
	Strand string
}

// Table indexes gene coordinates by symbol and chromosome. It is built
// once at startup and immutable for the rest of the run.
type Table struct {
	bySymbol map[string]map[string]*Interval
	count    int
}

// NewTable returns an empty gene table.
func NewTable() *Table {
	return &Table{bySymbol: make(map[string]map[string]*Interval)}
}

// Add inserts one gene row. Repeated rows for the same symbol+chrom widen
// the stored interval to [min(starts), max(stops)]; the strand from the
// first insertion is kept.
func (t *Table) Add(chrom string, start, stop int64, strand, symbol string) {
	chroms, ok := t.bySymbol[symbol]
	if !ok {
		chroms = make(map[string]*Interval)
		t.bySymbol[symbol] = chroms
	}
	iv, ok := chroms[chrom]
	if !ok {
		chroms[chrom] = &Interval{Start: start, Stop: stop, Strand: strand}
		t.count++
		return
	}
	if start < iv.Start {
		iv.Start = start
	}
	if stop > iv.Stop {
		iv.Stop = stop
	}
}

// Lookup returns the merged interval for a gene symbol on a chromosome.
// A miss means the gene table does not match the annotation source used
// upstream; callers treat it as fatal.
func (t *Table) Lookup(symbol, chrom string) (Interval, error) {
	if chroms, ok := t.bySymbol[symbol]; ok {
		if iv, ok := chroms[chrom]; ok {
			return *iv, nil
		}
	}
	return Interval{}, fmt.Errorf("gene %s on chromosome %s not in gene table", symbol, chrom)
}

// Len returns the number of distinct symbol+chromosome entries.
func (t *Table) Len() int {
	return t.count
}

// Load reads a tab-delimited gene file with columns
// (chrom, start, stop, strand, symbol), sorted by chrom then start.
// Gzipped files are handled transparently; lines starting with "#" are
// skipped.
func Load(path string) (*Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open gene file: %w", err)
	}
	defer f.Close()

	var reader io.Reader = f
	if strings.HasSuffix(path, ".gz") {
		gz, err := gzip.NewReader(f)
		if err != nil {
			return nil, fmt.Errorf("open gzip reader: %w", err)
		}
		defer gz.Close()
		reader = gz
	}

	t := NewTable()
	scanner := bufio.NewScanner(reader)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	lineNum := 0
	for scanner.Scan() {
		lineNum++
		line := scanner.Text()
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		fields := strings.Split(line, "\t")
		if len(fields) < 5 {
			return nil, fmt.Errorf("gene file line %d: expected 5 columns, found %d", lineNum, len(fields))
		}
		start, err := strconv.ParseInt(fields[1], 10, 64)
		if err != nil {
			return nil, fmt.Errorf("gene file line %d: invalid start %q", lineNum, fields[1])
		}
		stop, err := strconv.ParseInt(fields[2], 10, 64)
		if err != nil {
			return nil, fmt.Errorf("gene file line %d: invalid stop %q", lineNum, fields[2])
		}
		t.Add(fields[0], start, stop, fields[3], fields[4])
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read gene file: %w", err)
	}

	return t, nil
}
