package ast

import "rash/internal/source"

// TypeKind enumerates the closed set of source types.
type TypeKind uint8

const (
	TypeVoid TypeKind = iota
	TypeBool
	TypeU32
	TypeStr
	TypeOption
	TypeResult
	// TypeUnsupported is any spelling outside the closed set (f64, Vec<T>, ...).
	TypeUnsupported
)

// Type is a (possibly nested) source type annotation.
type Type struct {
	Kind     TypeKind
	Span     source.Span
	Inner    *Type  // Option<T> payload, Result<T, E> ok type
	Err      *Type  // Result<T, E> error type
	Spelling string // TypeUnsupported only
}

var (
	VoidType = &Type{Kind: TypeVoid}
	BoolType = &Type{Kind: TypeBool}
	U32Type  = &Type{Kind: TypeU32}
	StrType  = &Type{Kind: TypeStr}
)

// IsAllowed reports whether the type and every nested type belong to the closed set.
func (t *Type) IsAllowed() bool {
	if t == nil {
		return true
	}
	switch t.Kind {
	case TypeVoid, TypeBool, TypeU32, TypeStr:
		return true
	case TypeOption:
		return t.Inner.IsAllowed()
	case TypeResult:
		return t.Inner.IsAllowed() && t.Err.IsAllowed()
	case TypeUnsupported:
		return false
	}
	return false
}

// Disallowed returns the first nested type that is not allowed, or nil.
func (t *Type) Disallowed() *Type {
	if t == nil {
		return nil
	}
	switch t.Kind {
	case TypeVoid, TypeBool, TypeU32, TypeStr:
		return nil
	case TypeOption:
		return t.Inner.Disallowed()
	case TypeResult:
		if d := t.Inner.Disallowed(); d != nil {
			return d
		}
		return t.Err.Disallowed()
	case TypeUnsupported:
		return t
	}
	return t
}

func (t *Type) IsVoid() bool { return t == nil || t.Kind == TypeVoid }

func (t *Type) String() string {
	if t == nil {
		return "()"
	}
	switch t.Kind {
	case TypeVoid:
		return "()"
	case TypeBool:
		return "bool"
	case TypeU32:
		return "u32"
	case TypeStr:
		return "&str"
	case TypeOption:
		return "Option<" + t.Inner.String() + ">"
	case TypeResult:
		return "Result<" + t.Inner.String() + ", " + t.Err.String() + ">"
	case TypeUnsupported:
		return t.Spelling
	}
	return "?"
}
