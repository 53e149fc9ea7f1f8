package version

import (
	"strings"
	"testing"
)

func TestVersion_DefaultValues(t *testing.T) {
	if Version == "" {
		t.Error("Version should have a default value")
	}
	if strings.Contains(Version, "\x1b[") {
		t.Error("Version must not carry terminal escapes")
	}
}

func TestColored(t *testing.T) {
	orig := Version
	t.Cleanup(func() { Version = orig })

	tests := []struct {
		version string
		enabled bool
		plain   string
	}{
		{"1.2.3", false, "1.2.3"},
		{"1.2.3-rc.1+build.123", true, "1.2.3-rc.1+build.123"},
		{"0.1.0-dev", true, "0.1.0-dev"},
		{"not-a-version", true, "not-a-version"},
	}
	for _, tt := range tests {
		Version = tt.version
		got := Colored(tt.enabled)
		if stripped := stripANSI(got); stripped != tt.plain {
			t.Errorf("%s: got %q", tt.version, stripped)
		}
		hasEscapes := strings.Contains(got, "\x1b[")
		if wantEscapes := tt.enabled && tt.version != "not-a-version"; hasEscapes != wantEscapes {
			t.Errorf("%s: escapes=%v, want %v", tt.version, hasEscapes, wantEscapes)
		}
	}
}

func TestBanner(t *testing.T) {
	origV, origC, origM, origD := Version, GitCommit, GitMessage, BuildDate
	t.Cleanup(func() { Version, GitCommit, GitMessage, BuildDate = origV, origC, origM, origD })

	Version, GitCommit, GitMessage, BuildDate = "1.0.0", "", "", ""
	if got := Banner(false); got != "rash 1.0.0\n" {
		t.Errorf("bare banner = %q", got)
	}

	GitCommit, GitMessage, BuildDate = "abc123", "fix quoting", "2024-01-15T10:30:00Z"
	want := "rash 1.0.0\ncommit: abc123 (fix quoting)\nbuilt:  2024-01-15T10:30:00Z\n"
	if got := Banner(false); got != want {
		t.Errorf("banner = %q, want %q", got, want)
	}
}

func stripANSI(s string) string {
	var b strings.Builder
	for i := 0; i < len(s); i++ {
		if s[i] == 0x1b {
			for i < len(s) && s[i] != 'm' {
				i++
			}
			continue
		}
		b.WriteByte(s[i])
	}
	return b.String()
}
