package lexer_test

import (
	"testing"

	"rash/internal/diag"
	"rash/internal/lexer"
	"rash/internal/source"
	"rash/internal/token"
)

// makeTestLexer создаёт лексер для тестовой строки
func makeTestLexer(input string) (*lexer.Lexer, *diag.Bag) {
	fs := source.NewFileSet()
	fileID := fs.AddVirtual("test.rs", []byte(input))
	bag := diag.NewBag(0)
	return lexer.New(fs.Get(fileID), lexer.Options{Reporter: diag.BagReporter{Bag: bag}}), bag
}

func kinds(lx *lexer.Lexer) []token.Kind {
	var out []token.Kind
	for {
		tok := lx.Next()
		out = append(out, tok.Kind)
		if tok.Kind == token.EOF {
			return out
		}
	}
}

func TestTokenKinds(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []token.Kind
	}{
		{"fn header", "fn add(a: u32) -> u32 {}", []token.Kind{
			token.KwFn, token.Ident, token.LParen, token.Ident, token.Colon, token.Ident,
			token.RParen, token.Arrow, token.Ident, token.LBrace, token.RBrace, token.EOF,
		}},
		{"operators", "== != <= >= && || ..= .. :: => += %=", []token.Kind{
			token.EqEq, token.BangEq, token.LtEq, token.GtEq, token.AndAnd, token.OrOr,
			token.DotDotEq, token.DotDot, token.ColonColon, token.FatArrow, token.PlusAssign,
			token.PercentAssign, token.EOF,
		}},
		{"macro", `println!("x")`, []token.Kind{
			token.Ident, token.Bang, token.LParen, token.StringLit, token.RParen, token.EOF,
		}},
		{"attribute", "#[max_iterations(10)]", []token.Kind{
			token.Hash, token.LBracket, token.Ident, token.LParen, token.IntLit, token.RParen,
			token.RBracket, token.EOF,
		}},
		{"underscore", "_ _x", []token.Kind{token.Underscore, token.Ident, token.EOF}},
		{"reserved", "impl struct", []token.Kind{token.Reserved, token.Reserved, token.EOF}},
		{"comments", "// line\n/* block /* nested */ */ let", []token.Kind{token.KwLet, token.EOF}},
		{"suffix", "10u32", []token.Kind{token.IntLit, token.EOF}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			lx, bag := makeTestLexer(tt.input)
			got := kinds(lx)
			if bag.HasErrors() {
				t.Fatalf("unexpected diagnostics: %+v", bag.Items())
			}
			if len(got) != len(tt.want) {
				t.Fatalf("got %v, want %v", got, tt.want)
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Fatalf("token %d: got %v, want %v", i, got[i], tt.want[i])
				}
			}
		})
	}
}

func TestStringEscapes(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{`"plain"`, "plain"},
		{`"a\nb"`, "a\nb"},
		{`"tab\there"`, "tab\there"},
		{`"q\"q"`, `q"q`},
		{`"back\\slash"`, `back\slash`},
		{`"nul\0"`, "nul\x00"},
		{`"\u{48}i"`, "Hi"},
		{"\"multi\nline\"", "multi\nline"},
		{`"héllo"`, "héllo"},
	}
	for _, tt := range tests {
		lx, bag := makeTestLexer(tt.input)
		tok := lx.Next()
		if tok.Kind != token.StringLit {
			t.Fatalf("%s: kind %v, diags %+v", tt.input, tok.Kind, bag.Items())
		}
		if tok.Text != tt.want {
			t.Errorf("%s: got %q, want %q", tt.input, tok.Text, tt.want)
		}
		if int(tok.Span.Len()) != len(tt.input) {
			t.Errorf("%s: span covers %d bytes, want %d", tt.input, tok.Span.Len(), len(tt.input))
		}
	}
}

func TestLexErrors(t *testing.T) {
	tests := []struct {
		input string
		code  diag.Code
	}{
		{`"open`, diag.LexUnterminatedString},
		{`"bad \q"`, diag.LexBadEscape},
		{`"\u{110000}"`, diag.LexBadEscape},
		{"/* never closed", diag.LexUnterminatedBlockComment},
		{"1.5", diag.LexBadNumber},
		{"7i64", diag.LexBadNumber},
		{"$", diag.LexUnknownChar},
		{"`", diag.LexUnknownChar},
		{"\xff", diag.LexInvalidUTF8},
		{"→", diag.LexUnknownChar},
	}
	for _, tt := range tests {
		lx, bag := makeTestLexer(tt.input)
		kinds(lx)
		if !bag.HasErrors() {
			t.Fatalf("%q: expected error", tt.input)
		}
		if got := bag.Items()[0].Code; got != tt.code {
			t.Errorf("%q: got %s, want %s", tt.input, got.ID(), tt.code.ID())
		}
	}
}

func TestPeekDoesNotConsume(t *testing.T) {
	lx, _ := makeTestLexer("let x")
	if lx.Peek().Kind != token.KwLet || lx.Peek().Kind != token.KwLet {
		t.Fatal("peek should be stable")
	}
	if lx.Next().Kind != token.KwLet || lx.Next().Kind != token.Ident {
		t.Fatal("next after peek returned wrong tokens")
	}
	if lx.Next().Kind != token.EOF || lx.Next().Kind != token.EOF {
		t.Fatal("EOF must be sticky")
	}
}

func TestLeadingTrivia(t *testing.T) {
	lx, _ := makeTestLexer("  // note\nfn")
	tok := lx.Next()
	if tok.Kind != token.KwFn {
		t.Fatalf("got %v", tok.Kind)
	}
	if len(tok.Leading) != 3 {
		t.Fatalf("expected space, comment, newline trivia; got %d", len(tok.Leading))
	}
	if tok.Leading[1].Kind != token.TriviaLineComment || tok.Leading[1].Text != "// note" {
		t.Fatalf("unexpected comment trivia %+v", tok.Leading[1])
	}
}

func TestDocCommentsAreLineComments(t *testing.T) {
	lx, bag := makeTestLexer("/// docs\n/*/ still open */ a /= b")
	tok := lx.Next()
	if tok.Kind != token.Ident || tok.Text != "a" {
		t.Fatalf("got %v %q", tok.Kind, tok.Text)
	}
	want := []token.TriviaKind{token.TriviaLineComment, token.TriviaNewline, token.TriviaBlockComment, token.TriviaSpace}
	if len(tok.Leading) != len(want) {
		t.Fatalf("leading trivia %+v", tok.Leading)
	}
	for i, k := range want {
		if tok.Leading[i].Kind != k {
			t.Errorf("trivia %d = %s, want %s", i, tok.Leading[i].Kind, k)
		}
	}
	if tok.Leading[2].Text != "/*/ still open */" {
		t.Errorf("block comment text %q", tok.Leading[2].Text)
	}
	if lx.Next().Kind != token.SlashAssign || lx.Next().Kind != token.Ident {
		t.Fatal("operator after comments lexed wrongly")
	}
	if bag.Len() != 0 {
		t.Fatalf("unexpected diagnostics: %d", bag.Len())
	}
}

func TestTokenize(t *testing.T) {
	fs := source.NewFileSet()
	id := fs.AddVirtual("t.rs", []byte("fn main() {}"))
	toks := lexer.Tokenize(fs.Get(id), lexer.Options{})
	if len(toks) != 7 || toks[len(toks)-1].Kind != token.EOF {
		t.Fatalf("unexpected tokens: %v", toks)
	}
	if toks[1].Text != "main" || toks[1].Span.Start != 3 || toks[1].Span.End != 7 {
		t.Fatalf("unexpected ident token %+v", toks[1])
	}
}
