package diagfmt

import (
	"errors"
	"fmt"
	"strings"

	"fortio.org/safecast"

	"rash/internal/diag"
	"rash/internal/source"
)

type fixEditPreview struct {
	before []string
	after  []string
}

// buildFixEditPreview renders the lines touched by edit before and after applying it.
func buildFixEditPreview(fs *source.FileSet, edit diag.FixEdit) (fixEditPreview, error) {
	if fs == nil {
		return fixEditPreview{}, errors.New("nil FileSet")
	}
	file := fs.Get(edit.Span.File)
	if file == nil {
		return fixEditPreview{}, fmt.Errorf("file %d not found in FileSet", edit.Span.File)
	}
	size, err := safecast.Conv[uint32](len(file.Content))
	if err != nil {
		return fixEditPreview{}, fmt.Errorf("len file content overflow: %w", err)
	}
	if edit.Span.End < edit.Span.Start || edit.Span.End > size {
		return fixEditPreview{}, fmt.Errorf("edit span %s out of range", edit.Span)
	}

	startPos, endPos := fs.Resolve(edit.Span)
	blockStart := lineStart(file, startPos.Line)
	blockEnd := min(lineEnd(file, max(endPos.Line, startPos.Line), size), size)

	original := file.Content[blockStart:blockEnd]
	relStart := edit.Span.Start - blockStart
	relEnd := edit.Span.End - blockStart

	after := make([]byte, 0, len(original)+len(edit.NewText))
	after = append(after, original[:relStart]...)
	after = append(after, edit.NewText...)
	after = append(after, original[relEnd:]...)

	return fixEditPreview{
		before: splitPreviewLines(original),
		after:  splitPreviewLines(after),
	}, nil
}

func splitPreviewLines(content []byte) []string {
	if len(content) == 0 {
		return nil
	}
	return strings.Split(strings.TrimRight(string(content), "\n"), "\n")
}

func lineStart(f *source.File, line uint32) uint32 {
	if line <= 1 || int(line-2) >= len(f.LineIdx) {
		return 0
	}
	return f.LineIdx[line-2] + 1
}

// lineEnd is the offset just past the newline ending line, or size for the last line.
func lineEnd(f *source.File, line, size uint32) uint32 {
	if line == 0 || int(line-1) >= len(f.LineIdx) {
		return size
	}
	return f.LineIdx[line-1] + 1
}
