package svscore

import (
	"regexp"

	"github.com/inodb/svscore/internal/vcf"
)

// BND ids follow the pattern <numericID>_<1|2>; the numeric part keys the
// pairing map.
var mateIDPattern = regexp.MustCompile(`^(\d+)_[12]$`)

// mateID extracts the numeric pair id from a BND record id.
func mateID(id string) (string, bool) {
	m := mateIDPattern.FindStringSubmatch(id)
	if m == nil {
		return "", false
	}
	return m[1], true
}

// pairer holds BND records waiting for their mates. An id appears at most
// twice in well-formed input; a third sighting is not guarded.
type pairer struct {
	pending map[string]*vcf.Variant
}

func newPairer() *pairer {
	return &pairer{pending: make(map[string]*vcf.Variant)}
}

// offer records a BND sighting. On the first sighting of a pair id the
// record is stashed and nil returned; on the second the stored mate is
// returned and the entry removed.
func (p *pairer) offer(id string, v *vcf.Variant) *vcf.Variant {
	mate, ok := p.pending[id]
	if !ok {
		p.pending[id] = v
		return nil
	}
	delete(p.pending, id)
	return mate
}

// unpaired returns the number of ids still waiting for a mate.
func (p *pairer) unpaired() int {
	return len(p.pending)
}
