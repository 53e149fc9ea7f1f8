package diagfmt

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/mattn/go-runewidth"

	"rash/internal/diag"
	"rash/internal/source"
)

const tabWidth = 4

type palette struct {
	err, warn, info, code, note, help, gutter, caret *color.Color
}

func newPalette(enabled bool) palette {
	p := palette{
		err:    color.New(color.FgRed, color.Bold),
		warn:   color.New(color.FgYellow, color.Bold),
		info:   color.New(color.FgCyan, color.Bold),
		code:   color.New(color.Bold),
		note:   color.New(color.FgBlue, color.Bold),
		help:   color.New(color.FgGreen, color.Bold),
		gutter: color.New(color.FgBlue),
		caret:  color.New(color.FgRed, color.Bold),
	}
	for _, c := range []*color.Color{p.err, p.warn, p.info, p.code, p.note, p.help, p.gutter, p.caret} {
		if enabled {
			c.EnableColor()
		} else {
			c.DisableColor()
		}
	}
	return p
}

func (p palette) severity(s diag.Severity) *color.Color {
	switch s {
	case diag.SevError:
		return p.err
	case diag.SevWarning:
		return p.warn
	case diag.SevInfo:
		return p.info
	}
	return p.info
}

// Pretty форматирует диагностики в человекочитаемый вид.
// Для каждой печатает
//
//	<path>:<line>:<col>: <SEV> <CODE>: <Message>
//
// затем строку исходника с подчёркиванием ^~~~ по Span, затем заметки и исправления.
func Pretty(w io.Writer, bag *diag.Bag, fs *source.FileSet, opts PrettyOpts) {
	pal := newPalette(opts.Color)
	for i, d := range bag.Items() {
		if i > 0 {
			fmt.Fprintln(w)
		}
		prettyOne(w, d, fs, opts, pal)
	}
}

func prettyOne(w io.Writer, d diag.Diagnostic, fs *source.FileSet, opts PrettyOpts, pal palette) {
	header := pal.severity(d.Severity).Sprint(d.Severity.String()) + " " + pal.code.Sprint(d.Code.ID()) + ": " + d.Message
	if hasLocation(d.Primary, fs) {
		fmt.Fprintf(w, "%s: %s\n", location(d.Primary, fs, opts), header)
		snippet(w, d.Primary, fs, opts.Context, pal)
	} else {
		fmt.Fprintln(w, header)
	}

	if opts.ShowNotes {
		for _, n := range d.Notes {
			if hasLocation(n.Span, fs) {
				fmt.Fprintf(w, "  %s %s: %s\n", pal.note.Sprint("note:"), location(n.Span, fs, opts), n.Msg)
			} else {
				fmt.Fprintf(w, "  %s %s\n", pal.note.Sprint("note:"), n.Msg)
			}
		}
	}
	if opts.ShowFixes {
		for i, fix := range d.Fixes {
			fmt.Fprintf(w, "  %s fix #%d: %s\n", pal.help.Sprint("help:"), i+1, fix.Title)
			for _, edit := range fix.Edits {
				if hasLocation(edit.Span, fs) {
					fmt.Fprintf(w, "      at %s apply=%q\n", location(edit.Span, fs, opts), edit.NewText)
				}
				if !opts.ShowPreview {
					continue
				}
				preview, err := buildFixEditPreview(fs, edit)
				if err != nil {
					continue
				}
				fmt.Fprintln(w, "      preview:")
				for _, line := range preview.before {
					fmt.Fprintf(w, "        - %s\n", line)
				}
				for _, line := range preview.after {
					fmt.Fprintf(w, "        + %s\n", line)
				}
			}
		}
	}
}

func location(span source.Span, fs *source.FileSet, opts PrettyOpts) string {
	start, _ := fs.Resolve(span)
	path := formatPath(fs.Get(span.File).Path, opts.PathMode, opts.BaseDir)
	return fmt.Sprintf("%s:%d:%d", path, start.Line, start.Col)
}

// snippet prints the primary line with up to context lines before it and a
// caret line underneath. Columns are measured in display cells.
func snippet(w io.Writer, span source.Span, fs *source.FileSet, context int, pal palette) {
	f := fs.Get(span.File)
	start, end := fs.Resolve(span)
	first := start.Line
	for range max(context, 0) {
		if first <= 1 {
			break
		}
		first--
	}
	gutterWidth := len(fmt.Sprint(start.Line))
	blank := strings.Repeat(" ", gutterWidth)

	for n := first; n <= start.Line; n++ {
		fmt.Fprintf(w, " %s %s\n", pal.gutter.Sprintf("%*d |", gutterWidth, n), expandTabs(f.GetLine(n)))
	}

	line := f.GetLine(start.Line)
	col := min(int(start.Col)-1, len(line))
	stop := len(line)
	if end.Line == start.Line {
		stop = min(max(int(end.Col)-1, col), len(line))
	}
	pad := runewidth.StringWidth(expandTabs(line[:col]))
	width := max(runewidth.StringWidth(expandTabs(line[col:stop])), 1)
	marks := "^" + strings.Repeat("~", width-1)
	fmt.Fprintf(w, " %s %s%s\n", pal.gutter.Sprintf("%s |", blank), strings.Repeat(" ", pad), pal.caret.Sprint(marks))
}

func expandTabs(s string) string {
	return strings.ReplaceAll(s, "\t", strings.Repeat(" ", tabWidth))
}
