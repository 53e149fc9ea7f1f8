package token

var keywords = map[string]Kind{
	"fn":       KwFn,
	"let":      KwLet,
	"mut":      KwMut,
	"if":       KwIf,
	"else":     KwElse,
	"match":    KwMatch,
	"for":      KwFor,
	"in":       KwIn,
	"while":    KwWhile,
	"loop":     KwLoop,
	"break":    KwBreak,
	"continue": KwContinue,
	"return":   KwReturn,
	"true":     KwTrue,
	"false":    KwFalse,
	"pub":      KwPub,
}

// reserved lists keywords of the wider language with no rash equivalent.
var reserved = map[string]struct{}{
	"as": {}, "async": {}, "await": {}, "const": {}, "crate": {}, "dyn": {},
	"enum": {}, "extern": {}, "impl": {}, "mod": {}, "move": {}, "ref": {},
	"self": {}, "Self": {}, "static": {}, "struct": {}, "super": {}, "trait": {},
	"type": {}, "unsafe": {}, "use": {}, "where": {}, "yield": {},
}

// LookupKeyword возвращает тип и bool если это ключевое слово.
// Ключевые слова регистрозависимые.
func LookupKeyword(ident string) (Kind, bool) {
	if k, ok := keywords[ident]; ok {
		return k, true
	}
	if _, ok := reserved[ident]; ok {
		return Reserved, true
	}
	return Invalid, false
}
