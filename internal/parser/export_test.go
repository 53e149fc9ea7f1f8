package parser_test

import (
	"rash/internal/ast"
	"rash/internal/diag"
	"rash/internal/parser"
	"rash/internal/source"
)

func parseWithReporter(src string, bag *diag.Bag) (*ast.Program, error) {
	fs := source.NewFileSet()
	id := fs.AddVirtual("test.rs", []byte(src))
	return parser.ParseFile(fs, id, parser.Options{Reporter: diag.BagReporter{Bag: bag}})
}
