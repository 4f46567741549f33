// Package svscore scores structural variants with interval-based
// pathogenicity scores and gene truncation analysis.
package svscore

import (
	"fmt"
	"sort"
	"strings"

	"go.uber.org/zap"

	"github.com/inodb/svscore/internal/genes"
	"github.com/inodb/svscore/internal/output"
	"github.com/inodb/svscore/internal/scores"
	"github.com/inodb/svscore/internal/vcf"
)

// Spans longer than this are not queried; SVSCORE_SPAN is forced to
// spanTooLongScore instead (cost avoidance, not a real score).
const (
	maxSpanLength    = 1000000
	spanTooLongScore = 100
)

// UnsupportedTypeError is returned for an SVTYPE outside
// {DEL, DUP, INV, BND, INS}. It aborts the entire run.
type UnsupportedTypeError struct {
	Type  string
	Chrom string
	Pos   int64
}

func (e *UnsupportedTypeError) Error() string {
	return fmt.Sprintf("unsupported SVTYPE %q at %s:%d", e.Type, e.Chrom, e.Pos)
}

// Scorer computes SVSCORE_* fields for structural variant records. It
// holds the run-scoped pairing state for breakends; create one per run
// and discard it afterwards.
type Scorer struct {
	genes  *genes.Table
	source scores.Source
	logger *zap.Logger
	pairs  *pairer
}

// New creates a scorer over the given gene table and score source.
func New(gt *genes.Table, src scores.Source) *Scorer {
	return &Scorer{
		genes:  gt,
		source: src,
		logger: zap.NewNop(),
		pairs:  newPairer(),
	}
}

// SetLogger sets the logger for diagnostic messages.
func (s *Scorer) SetLogger(l *zap.Logger) {
	s.logger = l
}

// Score processes one variant record and returns its finalized output
// lines. A BND record emits nothing until its mate arrives; a completed
// pair emits two lines carrying identical score fields.
func (s *Scorer) Score(v *vcf.Variant) ([]output.Line, error) {
	switch v.SVType() {
	case "DEL", "DUP":
		return s.scoreSpan(v)
	case "INV":
		return s.scoreInversion(v)
	case "BND":
		return s.scoreBreakend(v)
	case "INS":
		return s.scoreInsertion(v)
	default:
		return nil, &UnsupportedTypeError{Type: v.SVType(), Chrom: v.Chrom, Pos: v.Pos}
	}
}

// Finish reports run-end state. Unpaired breakend mates are dropped with
// no user-facing diagnostic; the count is only visible at debug level.
func (s *Scorer) Finish() {
	if n := s.pairs.unpaired(); n > 0 {
		s.logger.Debug("dropped unpaired breakend mates", zap.Int("count", n))
	}
}

// interval is a 1-based inclusive genomic interval.
type interval struct {
	start, stop int64
}

// breakpointInterval widens a breakpoint position by its confidence
// interval offsets.
func breakpointInterval(pos int64, ci [2]int64) interval {
	return interval{start: pos + ci[0] - 1, stop: pos + ci[1]}
}

// scoreSpan handles DEL and DUP records.
func (s *Scorer) scoreSpan(v *vcf.Variant) ([]output.Line, error) {
	end, err := v.InfoInt64("END")
	if err != nil {
		return nil, err
	}
	left := breakpointInterval(v.Pos, v.ConfidenceInterval("CIPOS"))
	right := breakpointInterval(end, v.ConfidenceInterval("CIEND"))

	span := scores.Num(spanTooLongScore)
	if right.stop-left.start <= maxSpanLength {
		max, err := s.source.MaxScore(v.Chrom, left.start, right.stop)
		if err != nil {
			return nil, err
		}
		span = scores.Num(max)
	}
	leftScore, err := s.source.MaxScore(v.Chrom, left.start, left.stop)
	if err != nil {
		return nil, err
	}
	rightScore, err := s.source.MaxScore(v.Chrom, right.start, right.stop)
	if err != nil {
		return nil, err
	}

	entries := []string{
		"SVSCORE_SPAN=" + span.String(),
		"SVSCORE_LEFT=" + scores.Num(leftScore).String(),
		"SVSCORE_RIGHT=" + scores.Num(rightScore).String(),
	}
	return []output.Line{s.line(v, entries)}, nil
}

// scoreInversion handles INV records. Both breakends are on the record's
// own chromosome, with the right side at END.
func (s *Scorer) scoreInversion(v *vcf.Variant) ([]output.Line, error) {
	end, err := v.InfoInt64("END")
	if err != nil {
		return nil, err
	}
	left := breakpointInterval(v.Pos, v.ConfidenceInterval("CIPOS"))
	right := breakpointInterval(end, v.ConfidenceInterval("CIEND"))

	entries, err := s.scoreEnds("INV", v.Chrom, left, v.Chrom, right, v)
	if err != nil {
		return nil, err
	}
	return []output.Line{s.line(v, entries)}, nil
}

// scoreBreakend handles BND records. The first sighting of a pair id is
// stashed and suppressed; the second resolves both sides and scores once.
func (s *Scorer) scoreBreakend(v *vcf.Variant) ([]output.Line, error) {
	id, ok := mateID(v.ID)
	if !ok {
		return nil, fmt.Errorf("BND id %q at %s:%d does not match <numericID>_<1|2>", v.ID, v.Chrom, v.Pos)
	}
	mate := s.pairs.offer(id, v)
	if mate == nil {
		return nil, nil
	}

	// The record lacking SECONDARY is the left (primary) breakend. The
	// primary record's CIPOS bounds the left interval and its CIEND
	// bounds the right interval around the secondary record's position.
	primary, secondary := v, mate
	if v.HasFlag("SECONDARY") {
		primary, secondary = mate, v
	}
	left := breakpointInterval(primary.Pos, primary.ConfidenceInterval("CIPOS"))
	right := breakpointInterval(secondary.Pos, primary.ConfidenceInterval("CIEND"))

	entries, err := s.scoreEnds("BND", primary.Chrom, left, secondary.Chrom, right, primary)
	if err != nil {
		return nil, err
	}
	return []output.Line{s.line(v, entries), s.line(mate, entries)}, nil
}

// scoreInsertion handles INS records: single-base queries on either side
// of the insertion point, with the span fixed to the INS label.
func (s *Scorer) scoreInsertion(v *vcf.Variant) ([]output.Line, error) {
	leftScore, err := s.source.MaxScore(v.Chrom, v.Pos, v.Pos)
	if err != nil {
		return nil, err
	}
	rightScore, err := s.source.MaxScore(v.Chrom, v.Pos+1, v.Pos+1)
	if err != nil {
		return nil, err
	}
	entries := []string{
		"SVSCORE_SPAN=INS",
		"SVSCORE_LEFT=" + scores.Num(leftScore).String(),
		"SVSCORE_RIGHT=" + scores.Num(rightScore).String(),
	}
	return []output.Line{s.line(v, entries)}, nil
}

// scoreEnds computes the shared INV/BND fields: LEFT/RIGHT over the CI
// intervals, then either a symbolic SPAN for non-truncating variants or
// LTRUNC/RTRUNC truncation scores. Gene and intron annotations are read
// from ann, the primary record.
func (s *Scorer) scoreEnds(typ, leftChrom string, left interval, rightChrom string, right interval, ann *vcf.Variant) ([]string, error) {
	leftScore, err := s.source.MaxScore(leftChrom, left.start, left.stop)
	if err != nil {
		return nil, err
	}
	rightScore, err := s.source.MaxScore(rightChrom, right.start, right.stop)
	if err != nil {
		return nil, err
	}
	leftEntry := "SVSCORE_LEFT=" + scores.Num(leftScore).String()
	rightEntry := "SVSCORE_RIGHT=" + scores.Num(rightScore).String()

	leftGenes := sideGenes(ann, "left")
	rightGenes := sideGenes(ann, "right")

	// An inversion starting and ending inside the same introns leaves
	// every transcript intact, as does one hitting no gene at all.
	sameIntrons := typ == "INV" && equalNonempty(sideIntrons(ann, "left"), sideIntrons(ann, "right"))
	if sameIntrons || (len(leftGenes) == 0 && len(rightGenes) == 0) {
		label := typ + "NoGenes"
		if sameIntrons {
			label = typ + "SameIntrons"
		}
		return []string{"SVSCORE_SPAN=" + label, leftEntry, rightEntry}, nil
	}

	entries := []string{leftEntry, rightEntry}
	ltrunc, scored, err := s.truncationScore(leftGenes, leftChrom, left)
	if err != nil {
		return nil, err
	}
	if scored {
		entries = append(entries, "SVSCORE_LTRUNC="+scores.Num(ltrunc).String())
	}
	rtrunc, scored, err := s.truncationScore(rightGenes, rightChrom, right)
	if err != nil {
		return nil, err
	}
	if scored {
		entries = append(entries, "SVSCORE_RTRUNC="+scores.Num(rtrunc).String())
	}
	return entries, nil
}

// truncationScore computes the maximum score over the disrupted portion
// of each gene hit by a breakend, then the maximum across genes. A gene
// table miss is fatal: the table must match the annotation source.
func (s *Scorer) truncationScore(geneNames []string, chrom string, iv interval) (float64, bool, error) {
	var best float64
	scored := false
	for _, name := range geneNames {
		g, err := s.genes.Lookup(name, chrom)
		if err != nil {
			return 0, false, err
		}
		trunc := interval{start: g.Start, stop: g.Stop}
		if g.Strand == "-" {
			if iv.stop < trunc.stop {
				trunc.stop = iv.stop
			}
		} else {
			if iv.start > trunc.start {
				trunc.start = iv.start
			}
		}
		max, err := s.source.MaxScore(chrom, trunc.start, trunc.stop)
		if err != nil {
			return 0, false, err
		}
		if !scored || max > best {
			best = max
			scored = true
		}
	}
	return best, scored, nil
}

// line finalizes one output line by appending the score entries to the
// record's INFO column.
func (s *Scorer) line(v *vcf.Variant, entries []string) output.Line {
	info := v.InfoText()
	joined := strings.Join(entries, ";")
	if info == "." || info == "" {
		info = joined
	} else {
		info += ";" + joined
	}
	return output.Line{Chrom: v.Chrom, Pos: v.Pos, Text: v.RenderWithInfo(info)}
}

// sideGenes returns the sorted gene symbols annotated at one breakend:
// the union of <side>_Gene and <side>_ExonGeneNames, falling back to the
// unsided Gene/ExonGeneNames keys when neither sided key is present.
func sideGenes(v *vcf.Variant, side string) []string {
	g, gok := v.Info(side + "_Gene")
	e, eok := v.Info(side + "_ExonGeneNames")
	if !gok && !eok {
		g, gok = v.Info("Gene")
		e, eok = v.Info("ExonGeneNames")
	}
	set := splitSet(g, gok)
	for name := range splitSet(e, eok) {
		set[name] = struct{}{}
	}
	names := make([]string, 0, len(set))
	for name := range set {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// sideIntrons returns the intron-id annotations at one breakend.
func sideIntrons(v *vcf.Variant, side string) map[string]struct{} {
	s, ok := v.Info(side + "_Intron")
	return splitSet(s, ok)
}

// splitSet splits a comma-separated annotation value into a set,
// dropping empty elements.
func splitSet(s string, present bool) map[string]struct{} {
	set := make(map[string]struct{})
	if !present {
		return set
	}
	for _, part := range strings.Split(s, ",") {
		if part != "" {
			set[part] = struct{}{}
		}
	}
	return set
}

// equalNonempty reports whether two sets are equal and nonempty.
func equalNonempty(a, b map[string]struct{}) bool {
	if len(a) == 0 || len(a) != len(b) {
		return false
	}
	for k := range a {
		if _, ok := b[k]; !ok {
			return false
		}
	}
	return true
}
