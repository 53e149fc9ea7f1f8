package ir

import (
	"strings"

	"rash/internal/ast"
	"rash/internal/diag"
)

// lowerFormat turns a format macro into a concatenation. `{}` and `{:?}`
// take the next argument; `{{` and `}}` are literal braces.
func (l *lowerer) lowerFormat(e *ast.Expr) (*Value, error) {
	m := e.Macro()
	segments, holes, err := splitFormat(m.Format)
	if err != nil {
		return nil, lowerErr(diag.LowBadFormatString, e.Span, "%s!: %v", m.Name, err)
	}
	if holes != len(m.Args) {
		return nil, lowerErr(diag.LowBadFormatString, e.Span,
			"%s!: format string has %d placeholders but %d arguments were given", m.Name, holes, len(m.Args))
	}
	var parts []*Value
	for i, seg := range segments {
		if seg != "" {
			parts = append(parts, Str(seg))
		}
		if i < len(m.Args) {
			v, _, err := l.lowerWord(m.Args[i])
			if err != nil {
				return nil, err
			}
			parts = append(parts, v)
		}
	}
	switch len(parts) {
	case 0:
		return Str(""), nil
	case 1:
		return parts[0], nil
	}
	v := Concat(parts...)
	if l.opts.Optimize {
		return foldConcat(v), nil
	}
	return v, nil
}

type formatError string

func (e formatError) Error() string { return string(e) }

// splitFormat returns the literal text around each placeholder; there is
// always one more segment than placeholders.
func splitFormat(f string) ([]string, int, error) {
	var segments []string
	var cur strings.Builder
	holes := 0
	for i := 0; i < len(f); i++ {
		c := f[i]
		switch {
		case c == '{' && i+1 < len(f) && f[i+1] == '{':
			cur.WriteByte('{')
			i++
		case c == '}' && i+1 < len(f) && f[i+1] == '}':
			cur.WriteByte('}')
			i++
		case c == '{':
			end := strings.IndexByte(f[i:], '}')
			if end < 0 {
				return nil, 0, formatError("unclosed '{' in format string")
			}
			spec := f[i+1 : i+end]
			if spec != "" && spec != ":?" && spec != ":" {
				return nil, 0, formatError("unsupported placeholder {" + spec + "}; use {}")
			}
			segments = append(segments, cur.String())
			cur.Reset()
			holes++
			i += end
		case c == '}':
			return nil, 0, formatError("unmatched '}' in format string")
		default:
			cur.WriteByte(c)
		}
	}
	segments = append(segments, cur.String())
	return segments, holes, nil
}
