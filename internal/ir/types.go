package ir

import "rash/internal/ast"

// valueType is the coarse type lowering needs to pick shell constructs.
type valueType uint8

const (
	tyUnknown valueType = iota
	tyU32
	tyStr
	tyBool
)

func (t valueType) String() string {
	switch t {
	case tyU32:
		return "u32"
	case tyStr:
		return "&str"
	case tyBool:
		return "bool"
	case tyUnknown:
		return "unknown"
	}
	return "unknown"
}

func typeOf(t *ast.Type) valueType {
	if t == nil {
		return tyUnknown
	}
	switch t.Kind {
	case ast.TypeBool:
		return tyBool
	case ast.TypeU32:
		return tyU32
	case ast.TypeStr:
		return tyStr
	case ast.TypeVoid, ast.TypeOption, ast.TypeResult, ast.TypeUnsupported:
		return tyUnknown
	}
	return tyUnknown
}

// binding is a source variable and the shell variable that holds it.
type binding struct {
	shell string
	t     valueType
}

// scope is a stack of block-level variable tables keyed by source name.
type scope struct {
	frames []map[string]binding
}

func (s *scope) push() { s.frames = append(s.frames, make(map[string]binding)) }
func (s *scope) pop()  { s.frames = s.frames[:len(s.frames)-1] }

func (s *scope) declare(name, shell string, t valueType) {
	s.frames[len(s.frames)-1][name] = binding{shell: shell, t: t}
}

func (s *scope) lookup(name string) (binding, bool) {
	for i := len(s.frames) - 1; i >= 0; i-- {
		if b, ok := s.frames[i][name]; ok {
			return b, true
		}
	}
	return binding{}, false
}

// innermost returns the binding of name declared in the current frame.
func (s *scope) innermost(name string) (binding, bool) {
	b, ok := s.frames[len(s.frames)-1][name]
	return b, ok
}

// holds reports whether a live binding is stored in the shell variable shell.
func (s *scope) holds(shell string) bool {
	for _, f := range s.frames {
		for _, b := range f {
			if b.shell == shell {
				return true
			}
		}
	}
	return false
}
