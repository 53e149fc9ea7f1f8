package driver

import (
	"os"

	"rash/internal/ast"
	"rash/internal/config"
	"rash/internal/diag"
	"rash/internal/ir"
	"rash/internal/lexer"
	"rash/internal/parser"
	"rash/internal/safety"
	"rash/internal/source"
	"rash/internal/token"
	"rash/internal/validate"
)

// TokenizeResult holds the token stream of one file.
type TokenizeResult struct {
	FileSet *source.FileSet
	File    *source.File
	Tokens  []token.Token
	Bag     *diag.Bag
}

// Tokenize lexes path, collecting lexical diagnostics instead of stopping.
func Tokenize(path string, maxDiagnostics int) (*TokenizeResult, error) {
	fs := source.NewFileSet()
	fileID, err := fs.Load(path)
	if err != nil {
		return nil, &IOError{Code: diag.IOLoadFileError, Path: path, Err: err}
	}
	file := fs.Get(fileID)
	bag := diag.NewBag(maxDiagnostics)
	tokens := lexer.Tokenize(file, lexer.Options{Reporter: diag.BagReporter{Bag: bag}})
	return &TokenizeResult{FileSet: fs, File: file, Tokens: tokens, Bag: bag}, nil
}

// ParseResult is a parsed file.
type ParseResult struct {
	FileSet *source.FileSet
	Program *ast.Program
}

// Parse reads and parses path.
func Parse(path string) (*ParseResult, error) {
	// #nosec G304 -- path is supplied by the user on the command line
	src, err := os.ReadFile(path)
	if err != nil {
		return nil, &IOError{Code: diag.IOLoadFileError, Path: path, Err: err}
	}
	prog, fs, err := parser.ParseSource(path, src)
	return &ParseResult{FileSet: fs, Program: prog}, err
}

// LowerFile parses, validates and lowers path without emitting, for IR dumps.
func LowerFile(path string, opts Options) (*Result, error) {
	pr, err := Parse(path)
	if err != nil {
		res := &Result{Name: path}
		if pr != nil {
			res.FileSet = pr.FileSet
		}
		return res, err
	}
	res := &Result{Name: path, FileSet: pr.FileSet, Program: pr.Program}
	if err := validateAndScan(pr.Program, opts); err != nil {
		return res, err
	}
	mod, err := ir.Lower(pr.Program, ir.Options{Optimize: opts.Config.Optimize})
	res.Module = mod
	if mod != nil {
		res.Effects = mod.Effects
	}
	return res, err
}

func validateAndScan(prog *ast.Program, opts Options) error {
	if err := validate.Program(prog, opts.Config.Validation); err != nil {
		return err
	}
	if opts.Config.Validation == config.ValidationNone {
		return nil
	}
	return safety.CheckProgram(prog)
}
