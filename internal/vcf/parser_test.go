package vcf

import (
	"strings"
	"testing"
)

const testHeader = "##fileformat=VCFv4.2\n" +
	"##source=test\n" +
	"#CHROM\tPOS\tID\tREF\tALT\tQUAL\tFILTER\tINFO\n"

func newTestParser(t *testing.T, body string) *Parser {
	t.Helper()
	p, err := NewParserFromReader(strings.NewReader(testHeader + body))
	if err != nil {
		t.Fatalf("Failed to create parser: %v", err)
	}
	return p
}

func TestParser_Header(t *testing.T) {
	p := newTestParser(t, "")

	header := p.Header()
	if len(header) != 3 {
		t.Fatalf("Expected 3 header lines, got %d", len(header))
	}
	if header[0] != "##fileformat=VCFv4.2" {
		t.Errorf("Header line not passed through unchanged: %q", header[0])
	}
	if !strings.HasPrefix(header[2], "#CHROM") {
		t.Errorf("Expected #CHROM as last header line, got %q", header[2])
	}
}

func TestParser_NoHeader(t *testing.T) {
	_, err := NewParserFromReader(strings.NewReader("1\t1000\t.\tN\t<DEL>\t.\t.\tSVTYPE=DEL\n"))
	if err == nil {
		t.Fatal("Expected error for missing #CHROM header")
	}
}

func TestParser_SingleVariant(t *testing.T) {
	p := newTestParser(t, "2\t321682\t1_1\tN\t<DEL>\t6\tPASS\tSVTYPE=DEL;END=321887\n")

	v, err := p.Next()
	if err != nil {
		t.Fatalf("Failed to read variant: %v", err)
	}
	if v == nil {
		t.Fatal("Expected a variant, got nil")
	}

	if v.Chrom != "2" {
		t.Errorf("Expected chrom 2, got %s", v.Chrom)
	}
	if v.Pos != 321682 {
		t.Errorf("Expected pos 321682, got %d", v.Pos)
	}
	if v.ID != "1_1" {
		t.Errorf("Expected id 1_1, got %s", v.ID)
	}
	if v.Alt != "<DEL>" {
		t.Errorf("Expected alt <DEL>, got %s", v.Alt)
	}
	if v.SVType() != "DEL" {
		t.Errorf("Expected SVTYPE DEL, got %s", v.SVType())
	}

	// No more variants
	v2, err := p.Next()
	if err != nil {
		t.Fatalf("Error checking for more variants: %v", err)
	}
	if v2 != nil {
		t.Error("Expected no more variants")
	}
}

func TestParser_WhitespaceDelimited(t *testing.T) {
	// Data lines split on any whitespace, not just tabs.
	p := newTestParser(t, "1 1000 . N <DUP> . PASS SVTYPE=DUP;END=2000\n")

	v, err := p.Next()
	if err != nil {
		t.Fatalf("Failed to read variant: %v", err)
	}
	if v.Chrom != "1" || v.Pos != 1000 || v.SVType() != "DUP" {
		t.Errorf("Unexpected parse: chrom=%s pos=%d svtype=%s", v.Chrom, v.Pos, v.SVType())
	}
}

func TestParser_SkipsEmptyLines(t *testing.T) {
	p := newTestParser(t, "\n1\t100\t.\tN\t<INS>\t.\t.\tSVTYPE=INS\n\n")

	v, err := p.Next()
	if err != nil {
		t.Fatalf("Failed to read variant: %v", err)
	}
	if v == nil || v.Pos != 100 {
		t.Fatal("Expected variant at pos 100 after empty line")
	}

	v, err = p.Next()
	if err != nil {
		t.Fatalf("Error after last variant: %v", err)
	}
	if v != nil {
		t.Error("Expected no more variants")
	}
}

func TestParser_NoTrailingNewline(t *testing.T) {
	p := newTestParser(t, "1\t100\t.\tN\t<INS>\t.\t.\tSVTYPE=INS")

	v, err := p.Next()
	if err != nil {
		t.Fatalf("Failed to read variant: %v", err)
	}
	if v == nil || v.Pos != 100 {
		t.Fatal("Expected final variant without trailing newline")
	}
}

func TestParser_TooFewColumns(t *testing.T) {
	p := newTestParser(t, "1\t100\t.\tN\t<DEL>\n")

	_, err := p.Next()
	if err == nil {
		t.Fatal("Expected parse error for short line")
	}
	if _, ok := err.(*ParseError); !ok {
		t.Errorf("Expected *ParseError, got %T", err)
	}
}

func TestParser_InvalidPosition(t *testing.T) {
	p := newTestParser(t, "1\tabc\t.\tN\t<DEL>\t.\t.\tSVTYPE=DEL\n")

	_, err := p.Next()
	if err == nil {
		t.Fatal("Expected parse error for invalid position")
	}
}
