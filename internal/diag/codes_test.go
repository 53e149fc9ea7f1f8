package diag_test

import (
	"testing"

	"rash/internal/diag"
	"rash/internal/source"
)

func TestCodeIDPrefixes(t *testing.T) {
	tests := []struct {
		code diag.Code
		want string
	}{
		{diag.LexUnknownChar, "LEX1001"},
		{diag.SynUnexpectedToken, "SYN2001"},
		{diag.ValNestingTooDeep, "VAL3004"},
		{diag.ValCommandName, "VAL3014"},
		{diag.InjShellshock, "INJ4013"},
		{diag.LowBadArgPosition, "LOW5006"},
		{diag.EmtUnsupportedNode, "EMT6001"},
		{diag.VerParseFailed, "VER7001"},
		{diag.IOLoadFileError, "IO8001"},
		{diag.ObsTimings, "OBS9001"},
		{diag.UnknownCode, "E0000"},
	}
	for _, tt := range tests {
		if got := tt.code.ID(); got != tt.want {
			t.Errorf("%d.ID() = %q, want %q", tt.code, got, tt.want)
		}
	}
}

func TestCodeTitleFallback(t *testing.T) {
	if got := diag.Code(4999).Title(); got != "Unknown error" {
		t.Fatalf("unexpected fallback title %q", got)
	}
	if got := diag.ValRecursion.String(); got != "[VAL3006]: Recursive call graph" {
		t.Fatalf("unexpected String(): %q", got)
	}
}

func TestSeverityNames(t *testing.T) {
	tests := []struct {
		sev          diag.Severity
		label, sarif string
	}{
		{diag.SevInfo, "INFO", "note"},
		{diag.SevWarning, "WARNING", "warning"},
		{diag.SevError, "ERROR", "error"},
		{diag.Severity(9), "UNKNOWN", "none"},
	}
	for _, tt := range tests {
		if got := tt.sev.String(); got != tt.label {
			t.Errorf("String() = %q, want %q", got, tt.label)
		}
		if got := tt.sev.SARIFLevel(); got != tt.sarif {
			t.Errorf("SARIFLevel() = %q, want %q", got, tt.sarif)
		}
	}
}

func TestBagLimitAndSort(t *testing.T) {
	bag := diag.NewBag(2)
	sp := func(start uint32) source.Span { return source.Span{File: 0, Start: start, End: start + 1} }
	if !bag.Add(diag.NewWarning(diag.VerNetworkEffect, sp(10), "curl")) {
		t.Fatal("first add rejected")
	}
	if !bag.Add(diag.NewError(diag.ValRecursion, sp(2), "f calls itself")) {
		t.Fatal("second add rejected")
	}
	if bag.Add(diag.NewError(diag.ValRecursion, sp(3), "dropped")) {
		t.Fatal("limit not enforced")
	}
	if !bag.HasErrors() || !bag.HasWarnings() {
		t.Fatal("expected both errors and warnings")
	}
	bag.Sort()
	items := bag.Items()
	if items[0].Code != diag.ValRecursion || items[1].Code != diag.VerNetworkEffect {
		t.Fatalf("unexpected order: %v, %v", items[0].Code, items[1].Code)
	}
}

func TestBagReporter(t *testing.T) {
	bag := diag.NewBag(0)
	d := diag.NewError(diag.LowBadArgPosition, source.Span{}, "arg(0) is the script name").
		WithNote(source.Span{Start: 4, End: 5}, "position 0").
		WithHint("use arg(1)")
	diag.Emit(diag.BagReporter{Bag: bag}, d)
	diag.Emit(diag.NopReporter{}, d)
	if bag.Len() != 1 {
		t.Fatalf("expected 1 diagnostic, got %d", bag.Len())
	}
	got := bag.Items()[0]
	if len(got.Notes) != 1 || len(got.Fixes) != 1 || got.Fixes[0].Title != "use arg(1)" {
		t.Fatalf("notes/fixes not forwarded: %+v", got)
	}
}
