// Package version holds the build identity of the rash CLI.
package version

import (
	"fmt"
	"strings"

	"github.com/Masterminds/semver/v3"
	"github.com/fatih/color"
)

// Version information for the rash CLI.
// These variables can be overridden at build time via -ldflags.
var (
	// Version is the semantic version of the CLI. It is part of every cache
	// key and proof, so it stays free of terminal escapes.
	Version = "0.1.0-dev"

	// GitCommit is an optional git commit hash.
	GitCommit = ""

	// GitMessage is an optional git commit message.
	GitMessage = ""

	// BuildDate is an optional build date in ISO-8601.
	BuildDate = ""
)

var (
	versionMajorColor = color.New(color.FgYellow, color.Bold)
	versionMinorColor = color.New(color.FgGreen, color.Bold)
	versionPatchColor = color.New(color.FgBlue, color.Bold)
)

// Colored renders Version with major, minor and patch in their own colour.
// Versions that are not semver are returned as is.
func Colored(enabled bool) string {
	v, err := semver.NewVersion(Version)
	if err != nil || !enabled {
		return Version
	}
	parts := []*color.Color{versionMajorColor, versionMinorColor, versionPatchColor}
	for _, c := range parts {
		c.EnableColor()
	}
	s := versionMajorColor.Sprint(v.Major()) + "." + versionMinorColor.Sprint(v.Minor()) + "." + versionPatchColor.Sprint(v.Patch())
	if pre := v.Prerelease(); pre != "" {
		s += "-" + pre
	}
	if meta := v.Metadata(); meta != "" {
		s += "+" + meta
	}
	return s
}

// Banner is the text printed by `rash version`.
func Banner(enabled bool) string {
	var b strings.Builder
	fmt.Fprintf(&b, "rash %s\n", Colored(enabled))
	if GitCommit != "" {
		fmt.Fprintf(&b, "commit: %s", GitCommit)
		if GitMessage != "" {
			fmt.Fprintf(&b, " (%s)", GitMessage)
		}
		b.WriteByte('\n')
	}
	if BuildDate != "" {
		fmt.Fprintf(&b, "built:  %s\n", BuildDate)
	}
	return b.String()
}
