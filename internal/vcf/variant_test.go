package vcf

import (
	"strings"
	"testing"
)

func parseOne(t *testing.T, line string) *Variant {
	t.Helper()
	p := newTestParser(t, line+"\n")
	v, err := p.Next()
	if err != nil {
		t.Fatalf("Failed to read variant: %v", err)
	}
	if v == nil {
		t.Fatal("Expected a variant, got nil")
	}
	return v
}

func TestInfo_AbsentVsEmpty(t *testing.T) {
	v := parseOne(t, "1\t100\t.\tN\t<DEL>\t.\t.\tSVTYPE=DEL;Gene=;END=200")

	if _, ok := v.Info("CIPOS"); ok {
		t.Error("CIPOS should be absent")
	}
	val, ok := v.Info("Gene")
	if !ok {
		t.Error("Gene should be present")
	}
	if val != "" {
		t.Errorf("Gene should have empty value, got %q", val)
	}
}

func TestInfo_FirstOccurrenceWins(t *testing.T) {
	v := parseOne(t, "1\t100\t.\tN\t<DEL>\t.\t.\tEND=200;SVTYPE=DEL;END=999")

	val, _ := v.Info("END")
	if val != "200" {
		t.Errorf("Expected first END value 200, got %q", val)
	}
}

func TestHasFlag(t *testing.T) {
	v := parseOne(t, "1\t100\t7_2\tN\tN]2:500]\t.\t.\tSVTYPE=BND;SECONDARY;MATEID=7_1")

	if !v.HasFlag("SECONDARY") {
		t.Error("SECONDARY flag should be detected")
	}
	if v.HasFlag("SVTYPE") {
		t.Error("SVTYPE has a value and is not a flag")
	}
	if v.HasFlag("MISSING") {
		t.Error("Absent key should not be a flag")
	}
}

func TestConfidenceInterval(t *testing.T) {
	v := parseOne(t, "1\t100\t.\tN\t<DEL>\t.\t.\tSVTYPE=DEL;END=200;CIPOS=-10,15")

	ci := v.ConfidenceInterval("CIPOS")
	if ci[0] != -10 || ci[1] != 15 {
		t.Errorf("Expected CIPOS [-10,15], got %v", ci)
	}

	// Absent defaults to [0,0]
	ci = v.ConfidenceInterval("CIEND")
	if ci[0] != 0 || ci[1] != 0 {
		t.Errorf("Expected default CIEND [0,0], got %v", ci)
	}
}

func TestInfoInt64(t *testing.T) {
	v := parseOne(t, "1\t100\t.\tN\t<DEL>\t.\t.\tSVTYPE=DEL;END=2000")

	end, err := v.InfoInt64("END")
	if err != nil {
		t.Fatalf("InfoInt64(END): %v", err)
	}
	if end != 2000 {
		t.Errorf("Expected END 2000, got %d", end)
	}

	if _, err := v.InfoInt64("MISSING"); err == nil {
		t.Error("Expected error for missing key")
	}
}

func TestRenderWithInfo(t *testing.T) {
	v := parseOne(t, "1\t100\trs1\tN\t<DEL>\t60\tPASS\tSVTYPE=DEL;END=200")

	line := v.RenderWithInfo("SVTYPE=DEL;END=200;SVSCORE_SPAN=35")
	want := "1\t100\trs1\tN\t<DEL>\t60\tPASS\tSVTYPE=DEL;END=200;SVSCORE_SPAN=35"
	if line != want {
		t.Errorf("RenderWithInfo:\n got %q\nwant %q", line, want)
	}

	// Original columns untouched by the rewrite
	if v.InfoText() != "SVTYPE=DEL;END=200" {
		t.Errorf("InfoText changed: %q", v.InfoText())
	}
}

func TestRenderWithInfo_ExtraColumns(t *testing.T) {
	v := parseOne(t, "1\t100\t.\tN\t<DEL>\t.\tPASS\tSVTYPE=DEL\tGT\t0/1")

	line := v.RenderWithInfo("SVTYPE=DEL;SVSCORE_SPAN=INS")
	if !strings.HasSuffix(line, "\tGT\t0/1") {
		t.Errorf("Trailing columns not preserved: %q", line)
	}
}
