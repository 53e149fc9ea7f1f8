package ast

import "rash/internal/source"

// PatternKind enumerates match/for pattern kinds.
type PatternKind uint8

const (
	PatLiteral PatternKind = iota
	PatVariable
	PatWildcard
	PatTuple
	PatStruct
)

func (k PatternKind) String() string {
	switch k {
	case PatLiteral:
		return "Literal"
	case PatVariable:
		return "Variable"
	case PatWildcard:
		return "Wildcard"
	case PatTuple:
		return "Tuple"
	case PatStruct:
		return "Struct"
	default:
		return "Unknown"
	}
}

type FieldPattern struct {
	Name    string
	Pattern *Pattern
}

// Pattern is a flat node; only the fields of its Kind are set.
type Pattern struct {
	Kind    PatternKind
	Span    source.Span
	Literal *LiteralData   // PatLiteral
	Name    string         // PatVariable binding, PatStruct type name
	Elems   []*Pattern     // PatTuple
	Fields  []FieldPattern // PatStruct
}

// Bindings returns every variable name bound by p, depth first.
func (p *Pattern) Bindings() []string {
	if p == nil {
		return nil
	}
	switch p.Kind {
	case PatVariable:
		return []string{p.Name}
	case PatTuple:
		var out []string
		for _, e := range p.Elems {
			out = append(out, e.Bindings()...)
		}
		return out
	case PatStruct:
		var out []string
		for _, f := range p.Fields {
			out = append(out, f.Pattern.Bindings()...)
		}
		return out
	case PatLiteral, PatWildcard:
		return nil
	}
	return nil
}

// Literals returns every literal nested in p.
func (p *Pattern) Literals() []*LiteralData {
	if p == nil {
		return nil
	}
	switch p.Kind {
	case PatLiteral:
		return []*LiteralData{p.Literal}
	case PatTuple:
		var out []*LiteralData
		for _, e := range p.Elems {
			out = append(out, e.Literals()...)
		}
		return out
	case PatStruct:
		var out []*LiteralData
		for _, f := range p.Fields {
			out = append(out, f.Pattern.Literals()...)
		}
		return out
	case PatVariable, PatWildcard:
		return nil
	}
	return nil
}
