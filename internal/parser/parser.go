package parser

import (
	"slices"

	"rash/internal/ast"
	"rash/internal/diag"
	"rash/internal/lexer"
	"rash/internal/source"
	"rash/internal/token"
)

// DefaultMaxDepth bounds syntactic recursion so adversarial input cannot
// exhaust the stack before validation gets to see it.
const DefaultMaxDepth = 256

type Options struct {
	MaxDepth int
	Reporter diag.Reporter // получает все диагностики лексера и парсера, может быть nil
}

// Parser — состояние парсера на один файл
type Parser struct {
	lx       *lexer.Lexer
	file     *source.File
	opts     Options
	rep      *firstErrorReporter
	depth    int
	lastSpan source.Span // span последнего съеденного токена для лучшей диагностики
}

// ParseFile разбирает один файл. Разбор останавливается на первой ошибке,
// которая возвращается как *Error.
func ParseFile(fs *source.FileSet, id source.FileID, opts Options) (*ast.Program, error) {
	file := fs.Get(id)
	if file == nil {
		return nil, &Error{Code: diag.IOLoadFileError, Msg: "unknown source file"}
	}
	if opts.MaxDepth <= 0 {
		opts.MaxDepth = DefaultMaxDepth
	}
	rep := &firstErrorReporter{next: opts.Reporter}
	p := &Parser{
		lx:   lexer.New(file, lexer.Options{Reporter: rep}),
		file: file,
		opts: opts,
		rep:  rep,
	}
	p.lastSpan = p.lx.EmptySpan()
	prog := p.parseProgram()
	if rep.first != nil {
		return nil, errorFromDiagnostic(*rep.first)
	}
	return prog, nil
}

// ParseSource is ParseFile over an in-memory file.
func ParseSource(name string, src []byte) (*ast.Program, *source.FileSet, error) {
	fs := source.NewFileSet()
	id := fs.AddVirtual(name, src)
	prog, err := ParseFile(fs, id, Options{})
	return prog, fs, err
}

func (p *Parser) at(k token.Kind) bool {
	return p.lx.Peek().Kind == k
}

func (p *Parser) atOr(kinds ...token.Kind) bool {
	return slices.Contains(kinds, p.lx.Peek().Kind)
}

// failed reports whether an error has been recorded; every loop stops on it.
func (p *Parser) failed() bool {
	return p.rep.first != nil
}

// parseProgram — основной цикл верхнего уровня: только функции.
func (p *Parser) parseProgram() *ast.Program {
	prog := &ast.Program{EntryPoint: ast.DefaultEntryPoint}
	start := p.lx.Peek().Span
	entryAttr := ""
	for !p.at(token.EOF) && !p.failed() {
		fn, isEntry, ok := p.parseItem()
		if !ok {
			break
		}
		if isEntry {
			if entryAttr != "" {
				p.report(diag.SynBadAttribute, diag.SevError, fn.NameSpan, "more than one function is marked #[rash::main]")
				break
			}
			entryAttr = fn.Name
		}
		prog.Functions = append(prog.Functions, fn)
	}
	if entryAttr != "" {
		prog.EntryPoint = entryAttr
	}
	prog.Span = start.Cover(p.lastSpan)
	return prog
}

// parseItem выбирает по первому токену нужный распознаватель top-level конструкции.
func (p *Parser) parseItem() (*ast.Function, bool, bool) {
	attrs, ok := p.parseAttributes()
	if !ok {
		return nil, false, false
	}
	isEntry := false
	for _, a := range attrs {
		switch a.Name {
		case "rash::main":
			isEntry = true
		case "allow", "inline", "must_use":
		default:
			p.report(diag.SynBadAttribute, diag.SevError, a.Span, "attribute #["+a.Name+"] is not allowed on functions")
			return nil, false, false
		}
	}
	if p.at(token.KwPub) {
		p.advance()
	}
	switch tok := p.lx.Peek(); tok.Kind {
	case token.KwFn:
		fn, ok := p.parseFn()
		return fn, isEntry, ok
	case token.Reserved:
		p.report(diag.SynFeatureNotAllowed, diag.SevError, tok.Span, "'"+tok.Text+"' items are not supported; only functions are allowed")
	default:
		p.report(diag.SynUnexpectedTopLevel, diag.SevError, tok.Span, "expected 'fn', got "+describe(tok))
	}
	return nil, false, false
}

// enter/leave ограничивают глубину рекурсии парсера.
func (p *Parser) enter() bool {
	p.depth++
	if p.depth > p.opts.MaxDepth {
		p.err(diag.SynNestingTooDeep, "expression nesting exceeds the parser limit")
		return false
	}
	return true
}

func (p *Parser) leave() { p.depth-- }
