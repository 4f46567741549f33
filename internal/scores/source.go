// Package scores provides interval-based pathogenicity score lookups.
package scores

import "strconv"

// NoScore is the sentinel returned when a query matches no rows. It is
// distinct from a true zero score.
const NoScore = -1

// Source answers maximum-score queries over genomic intervals.
// Coordinates are 1-based and inclusive. A query matching no rows
// returns NoScore with a nil error.
type Source interface {
	MaxScore(chrom string, start, stop int64) (float64, error)
	Close() error
}

// Value is a score field value: either a number or a symbolic label such
// as "INS" or "INVSameIntrons".
type Value struct {
	label string
	num   float64
}

// Num returns a numeric score value.
func Num(v float64) Value {
	return Value{num: v}
}

// Label returns a symbolic score value.
func Label(s string) Value {
	return Value{label: s}
}

// String serializes the value in the textual form written to INFO fields.
func (v Value) String() string {
	if v.label != "" {
		return v.label
	}
	return strconv.FormatFloat(v.num, 'f', -1, 64)
}
