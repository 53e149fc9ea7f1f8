package diagfmt

import (
	"os"
	"path/filepath"

	"rash/internal/source"
)

// autoPathLimit is the longest path PathModeAuto prints in full.
const autoPathLimit = 40

func formatPath(path string, mode PathMode, baseDir string) string {
	switch mode {
	case PathModeAbsolute:
		if abs, err := filepath.Abs(path); err == nil {
			return abs
		}
		return path
	case PathModeRelative:
		base := baseDir
		if base == "" {
			wd, err := os.Getwd()
			if err != nil {
				return path
			}
			base = wd
		}
		abs, err := filepath.Abs(path)
		if err != nil {
			return path
		}
		if rel, err := filepath.Rel(base, abs); err == nil {
			return rel
		}
		return path
	case PathModeBasename:
		return filepath.Base(path)
	case PathModeAuto:
		if len(path) > autoPathLimit {
			return filepath.Base(path)
		}
		return path
	}
	return path
}

// hasLocation reports whether span points into a file of fs.
func hasLocation(span source.Span, fs *source.FileSet) bool {
	if fs == nil || span == source.NoSpan {
		return false
	}
	return fs.Get(span.File) != nil
}
