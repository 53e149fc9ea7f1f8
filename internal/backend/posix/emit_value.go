package posix

import (
	"fmt"
	"strings"

	"rash/internal/diag"
	"rash/internal/ir"
	"rash/internal/source"
)

// word renders v as exactly one shell word, or as "$@" for all arguments.
// Anything that is not a constant free of metacharacters is quoted.
func (e *Emitter) word(v *ir.Value) (string, error) {
	switch v.Kind {
	case ir.ValString:
		return literal(v.Str().Text), nil
	case ir.ValBool:
		if v.Bool().Value {
			return "true", nil
		}
		return "false", nil
	case ir.ValVariable:
		name := v.Variable().Name
		if !ir.IsShellName(name) {
			return "", emitErr(diag.EmtBadName, source.NoSpan, "invalid variable name %q", name)
		}
		if v.Variable().Env {
			return `"${` + name + `:-}"`, nil
		}
		return `"$` + name + `"`, nil
	case ir.ValCommandSubst:
		inner, err := e.subst(v)
		if err != nil {
			return "", err
		}
		return `"` + inner + `"`, nil
	case ir.ValConcat:
		if text, ok := v.ConstText(); ok {
			return literal(text), nil
		}
		var sb strings.Builder
		for _, p := range v.Concat().Parts {
			if err := e.quotedPart(&sb, p); err != nil {
				return "", err
			}
		}
		return `"` + sb.String() + `"`, nil
	case ir.ValArithmetic:
		expr, err := e.arith(v)
		if err != nil {
			return "", err
		}
		return `"$((` + expr + `))"`, nil
	case ir.ValArg:
		pos := v.Arg().Position
		if pos == nil {
			return `"$@"`, nil
		}
		if *pos == 0 {
			return "", emitErr(diag.EmtBadArgPosition, source.NoSpan, "argument positions start at 1")
		}
		return fmt.Sprintf(`"${%d:-}"`, *pos), nil
	case ir.ValArgCount:
		return `"$#"`, nil
	case ir.ValComparison, ir.ValLogical:
		return "", emitErr(diag.EmtUnsupportedValue, source.NoSpan, "%s value used as a word", v.Kind)
	}
	return "", emitErr(diag.EmtUnsupportedValue, source.NoSpan, "value kind %s has no shell rendering", v.Kind)
}

// quotedPart appends v's rendering for use inside double quotes.
func (e *Emitter) quotedPart(sb *strings.Builder, v *ir.Value) error {
	switch v.Kind {
	case ir.ValString:
		sb.WriteString(escapeDouble(v.Str().Text))
		return nil
	case ir.ValBool:
		fmt.Fprintf(sb, "%t", v.Bool().Value)
		return nil
	case ir.ValVariable:
		name := v.Variable().Name
		if !ir.IsShellName(name) {
			return emitErr(diag.EmtBadName, source.NoSpan, "invalid variable name %q", name)
		}
		if v.Variable().Env {
			sb.WriteString("${" + name + ":-}")
			return nil
		}
		sb.WriteString("${" + name + "}")
		return nil
	case ir.ValCommandSubst:
		inner, err := e.subst(v)
		if err != nil {
			return err
		}
		sb.WriteString(inner)
		return nil
	case ir.ValConcat:
		for _, p := range v.Concat().Parts {
			if err := e.quotedPart(sb, p); err != nil {
				return err
			}
		}
		return nil
	case ir.ValArithmetic:
		expr, err := e.arith(v)
		if err != nil {
			return err
		}
		sb.WriteString("$((" + expr + "))")
		return nil
	case ir.ValArg:
		pos := v.Arg().Position
		if pos == nil {
			sb.WriteString("$*")
			return nil
		}
		if *pos == 0 {
			return emitErr(diag.EmtBadArgPosition, source.NoSpan, "argument positions start at 1")
		}
		fmt.Fprintf(sb, "${%d:-}", *pos)
		return nil
	case ir.ValArgCount:
		sb.WriteString("$#")
		return nil
	case ir.ValComparison, ir.ValLogical:
		return emitErr(diag.EmtUnsupportedValue, source.NoSpan, "%s value inside a string", v.Kind)
	}
	return emitErr(diag.EmtUnsupportedValue, source.NoSpan, "value kind %s has no shell rendering", v.Kind)
}

// subst renders $(command ...) without surrounding quotes.
func (e *Emitter) subst(v *ir.Value) (string, error) {
	cmd := v.CommandSubst().Command
	if cmd == nil || cmd.Kind != ir.NodeExec {
		return "", emitErr(diag.EmtUnsupportedValue, source.NoSpan, "command substitution must wrap a command")
	}
	text, err := e.command(cmd.Exec(), cmd.Span)
	if err != nil {
		return "", err
	}
	return "$(" + text + ")", nil
}

// arith renders the inside of $(( )). Nested operations are parenthesized.
func (e *Emitter) arith(v *ir.Value) (string, error) {
	switch v.Kind {
	case ir.ValString:
		if _, ok := v.ConstNumber(); !ok {
			return "", emitErr(diag.EmtBadArithmeticOperand, source.NoSpan, "%q is not a decimal number", v.Str().Text)
		}
		return v.Str().Text, nil
	case ir.ValVariable:
		name := v.Variable().Name
		if !ir.IsShellName(name) {
			return "", emitErr(diag.EmtBadName, source.NoSpan, "invalid variable name %q", name)
		}
		if v.Variable().Env {
			return "", emitErr(diag.EmtBadArithmeticOperand, source.NoSpan, "environment variable %s used as a number", name)
		}
		return name, nil
	case ir.ValArithmetic:
		a := v.Arithmetic()
		l, err := e.arithOperand(a.Left)
		if err != nil {
			return "", err
		}
		r, err := e.arithOperand(a.Right)
		if err != nil {
			return "", err
		}
		op := a.Op.String()
		if op == "?" {
			return "", emitErr(diag.EmtUnsupportedValue, source.NoSpan, "unknown arithmetic operator")
		}
		return l + " " + op + " " + r, nil
	case ir.ValArgCount:
		return "$#", nil
	case ir.ValArg, ir.ValCommandSubst, ir.ValBool, ir.ValConcat, ir.ValComparison, ir.ValLogical:
		return "", emitErr(diag.EmtBadArithmeticOperand, source.NoSpan, "%s value used as a number", v.Kind)
	}
	return "", emitErr(diag.EmtBadArithmeticOperand, source.NoSpan, "value kind %s used as a number", v.Kind)
}

func (e *Emitter) arithOperand(v *ir.Value) (string, error) {
	s, err := e.arith(v)
	if err != nil {
		return "", err
	}
	if v.Kind == ir.ValArithmetic {
		return "(" + s + ")", nil
	}
	return s, nil
}

var testOps = map[ir.CompareOp][2]string{
	ir.CmpEq: {"-eq", "="},
	ir.CmpNe: {"-ne", "!="},
	ir.CmpLt: {"-lt", ""},
	ir.CmpLe: {"-le", ""},
	ir.CmpGt: {"-gt", ""},
	ir.CmpGe: {"-ge", ""},
}

// condition renders v as a command list whose exit status is the value.
func (e *Emitter) condition(v *ir.Value) (string, error) {
	switch v.Kind {
	case ir.ValBool:
		if v.Bool().Value {
			return "true", nil
		}
		return "false", nil
	case ir.ValComparison:
		c := v.Comparison()
		ops, ok := testOps[c.Op]
		op := ops[1]
		if c.Numeric {
			op = ops[0]
		}
		if !ok || op == "" {
			return "", emitErr(diag.EmtUnsupportedValue, source.NoSpan, "operator %s has no test form", c.Op)
		}
		l, err := e.word(c.Left)
		if err != nil {
			return "", err
		}
		r, err := e.word(c.Right)
		if err != nil {
			return "", err
		}
		return "[ " + l + " " + op + " " + r + " ]", nil
	case ir.ValLogical:
		lv := v.Logical()
		l, err := e.subCondition(lv.Left)
		if err != nil {
			return "", err
		}
		if lv.Op == ir.LogicNot {
			return "! " + l, nil
		}
		r, err := e.subCondition(lv.Right)
		if err != nil {
			return "", err
		}
		if lv.Op == ir.LogicAnd {
			return l + " && " + r, nil
		}
		return l + " || " + r, nil
	case ir.ValVariable, ir.ValCommandSubst, ir.ValArg:
		w, err := e.word(v)
		if err != nil {
			return "", err
		}
		return "[ " + w + " = true ]", nil
	case ir.ValString, ir.ValConcat, ir.ValArithmetic, ir.ValArgCount:
		return "", emitErr(diag.EmtUnsupportedValue, source.NoSpan, "%s value used as a condition", v.Kind)
	}
	return "", emitErr(diag.EmtUnsupportedValue, source.NoSpan, "value kind %s used as a condition", v.Kind)
}

// subCondition groups nested logical operands in braces.
func (e *Emitter) subCondition(v *ir.Value) (string, error) {
	s, err := e.condition(v)
	if err != nil {
		return "", err
	}
	if v.Kind == ir.ValLogical {
		return "{ " + s + "; }", nil
	}
	return s, nil
}
