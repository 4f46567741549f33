// Package vcf provides VCF file parsing functionality.
package vcf

import (
	"fmt"
	"strconv"
	"strings"
)

// infoField is one INFO entry in original order. HasValue distinguishes
// "KEY=" (present, empty value) from the flag form "KEY".
type infoField struct {
	Key      string
	Value    string
	HasValue bool
}

// Variant represents a single genomic variant from a VCF file.
// The original columns are retained so the line can be re-emitted with
// everything except INFO byte-identical to the input.
type Variant struct {
	Chrom string // Chromosome name (e.g., "12", "chr12")
	Pos   int64  // 1-based genomic position
	ID    string // Variant identifier (e.g., mate pair ID for BND)
	Ref   string // Reference allele
	Alt   string // Alternate allele

	fields  []string // original columns
	info    []infoField
	infoIdx map[string]int // key -> index into info, first occurrence wins
}

// parseInfoInto parses the INFO column into the variant's ordered field list.
func (v *Variant) parseInfoInto(info string) {
	v.infoIdx = make(map[string]int)
	if info == "." || info == "" {
		return
	}
	for _, kv := range strings.Split(info, ";") {
		if kv == "" {
			continue
		}
		f := infoField{Key: kv}
		if i := strings.IndexByte(kv, '='); i >= 0 {
			f.Key = kv[:i]
			f.Value = kv[i+1:]
			f.HasValue = true
		}
		if _, dup := v.infoIdx[f.Key]; dup {
			continue
		}
		v.infoIdx[f.Key] = len(v.info)
		v.info = append(v.info, f)
	}
}

// Info returns the value for an INFO key. The second return value is true
// when the key is present, even with an empty value.
func (v *Variant) Info(key string) (string, bool) {
	i, ok := v.infoIdx[key]
	if !ok {
		return "", false
	}
	return v.info[i].Value, true
}

// HasFlag reports whether an INFO key is present in flag form (no "=").
func (v *Variant) HasFlag(key string) bool {
	i, ok := v.infoIdx[key]
	return ok && !v.info[i].HasValue
}

// InfoInt64 returns an INFO value parsed as an integer.
func (v *Variant) InfoInt64(key string) (int64, error) {
	s, ok := v.Info(key)
	if !ok {
		return 0, fmt.Errorf("INFO key %s missing at %s:%d", key, v.Chrom, v.Pos)
	}
	n, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("INFO key %s=%q at %s:%d: not an integer", key, s, v.Chrom, v.Pos)
	}
	return n, nil
}

// ConfidenceInterval returns a CIPOS/CIEND-style pair of offsets.
// Absent or malformed values default to [0,0].
func (v *Variant) ConfidenceInterval(key string) [2]int64 {
	s, ok := v.Info(key)
	if !ok {
		return [2]int64{}
	}
	parts := strings.SplitN(s, ",", 2)
	if len(parts) != 2 {
		return [2]int64{}
	}
	lo, err1 := strconv.ParseInt(parts[0], 10, 64)
	hi, err2 := strconv.ParseInt(parts[1], 10, 64)
	if err1 != nil || err2 != nil {
		return [2]int64{}
	}
	return [2]int64{lo, hi}
}

// SVType returns the SVTYPE INFO value (a 3-character code such as DEL).
func (v *Variant) SVType() string {
	t, _ := v.Info("SVTYPE")
	return t
}

// InfoText returns the original INFO column text.
func (v *Variant) InfoText() string {
	return v.fields[7]
}

// RenderWithInfo returns the original line with the INFO column replaced.
// All other columns are emitted verbatim in their original order.
func (v *Variant) RenderWithInfo(info string) string {
	out := make([]string, len(v.fields))
	copy(out, v.fields)
	out[7] = info
	return strings.Join(out, "\t")
}
