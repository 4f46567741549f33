package scores

import (
	"fmt"
	"os/exec"
	"strconv"
	"strings"
)

// Tabix answers score queries by running one tabix process per call
// against a bgzipped, tabix-indexed score file. No caching or batching:
// overlapping intervals for the same variant each issue a fresh query.
type Tabix struct {
	path string
	exe  string
}

// NewTabix creates a tabix-backed score source for the given file.
func NewTabix(path string) *Tabix {
	return &Tabix{path: path, exe: "tabix"}
}

// SetExecutable overrides the tabix binary name (mainly for tests).
func (t *Tabix) SetExecutable(exe string) {
	t.exe = exe
}

// MaxScore runs tabix over the 1-based inclusive region and returns the
// maximum value across the comma-separated score lists in the 5th column
// of every result row, or NoScore when the region has no rows.
// A failing tabix process is a fatal error for the whole run.
func (t *Tabix) MaxScore(chrom string, start, stop int64) (float64, error) {
	region := fmt.Sprintf("%s:%d-%d", chrom, start, stop)
	out, err := exec.Command(t.exe, t.path, region).Output()
	if err != nil {
		if ee, ok := err.(*exec.ExitError); ok && len(ee.Stderr) > 0 {
			return 0, fmt.Errorf("tabix %s %s: %s", t.path, region, strings.TrimSpace(string(ee.Stderr)))
		}
		return 0, fmt.Errorf("tabix %s %s: %w", t.path, region, err)
	}

	best := 0.0
	found := false
	for _, line := range strings.Split(string(out), "\n") {
		fields := strings.Fields(line)
		if len(fields) < 5 {
			continue
		}
		for _, s := range strings.Split(fields[4], ",") {
			v, err := strconv.ParseFloat(s, 64)
			if err != nil {
				continue
			}
			if !found || v > best {
				best = v
				found = true
			}
		}
	}
	if !found {
		return NoScore, nil
	}
	return best, nil
}

// Close implements Source; a tabix source holds no resources.
func (t *Tabix) Close() error {
	return nil
}
