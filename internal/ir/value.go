package ir

import "strconv"

// ValueKind enumerates shell values.
type ValueKind uint8

const (
	ValString ValueKind = iota
	ValBool
	ValVariable
	ValCommandSubst
	ValConcat
	ValComparison
	ValArithmetic
	ValArg
	ValArgCount
	ValLogical
)

func (k ValueKind) String() string {
	switch k {
	case ValString:
		return "String"
	case ValBool:
		return "Bool"
	case ValVariable:
		return "Variable"
	case ValCommandSubst:
		return "CommandSubst"
	case ValConcat:
		return "Concat"
	case ValComparison:
		return "Comparison"
	case ValArithmetic:
		return "Arithmetic"
	case ValArg:
		return "Arg"
	case ValArgCount:
		return "ArgCount"
	case ValLogical:
		return "Logical"
	default:
		return "Unknown"
	}
}

// Value is a shell-level value. Numbers are carried as decimal strings.
type Value struct {
	Kind ValueKind
	Data ValueData
}

// ValueData is the interface for value-specific data.
type ValueData interface {
	valueData()
}

type StringValue struct{ Text string }

type BoolValue struct{ Value bool }

// VariableValue reads a shell variable. Env variables come from the caller's
// environment and read as empty when unset.
type VariableValue struct {
	Name string
	Env  bool
}

// CommandSubstValue captures the output of an Exec node.
type CommandSubstValue struct{ Command *Node }

type ConcatValue struct{ Parts []*Value }

// CompareOp enumerates comparison operators.
type CompareOp uint8

const (
	CmpEq CompareOp = iota
	CmpNe
	CmpLt
	CmpLe
	CmpGt
	CmpGe
)

func (op CompareOp) String() string {
	switch op {
	case CmpEq:
		return "=="
	case CmpNe:
		return "!="
	case CmpLt:
		return "<"
	case CmpLe:
		return "<="
	case CmpGt:
		return ">"
	case CmpGe:
		return ">="
	default:
		return "?"
	}
}

// ComparisonValue compares two values; Numeric selects integer comparison.
type ComparisonValue struct {
	Op          CompareOp
	Numeric     bool
	Left, Right *Value
}

// ArithOp enumerates arithmetic operators.
type ArithOp uint8

const (
	ArithAdd ArithOp = iota
	ArithSub
	ArithMul
	ArithDiv
	ArithMod
)

func (op ArithOp) String() string {
	switch op {
	case ArithAdd:
		return "+"
	case ArithSub:
		return "-"
	case ArithMul:
		return "*"
	case ArithDiv:
		return "/"
	case ArithMod:
		return "%"
	default:
		return "?"
	}
}

type ArithmeticValue struct {
	Op          ArithOp
	Left, Right *Value
}

// ArgValue is a positional parameter; a nil Position means all of them.
type ArgValue struct{ Position *uint32 }

type ArgCountValue struct{}

// LogicalOp enumerates boolean connectives.
type LogicalOp uint8

const (
	LogicAnd LogicalOp = iota
	LogicOr
	LogicNot
)

func (op LogicalOp) String() string {
	switch op {
	case LogicAnd:
		return "&&"
	case LogicOr:
		return "||"
	case LogicNot:
		return "!"
	default:
		return "?"
	}
}

// LogicalValue combines conditions. Right is nil for LogicNot.
type LogicalValue struct {
	Op          LogicalOp
	Left, Right *Value
}

func (StringValue) valueData()       {}
func (BoolValue) valueData()         {}
func (VariableValue) valueData()     {}
func (CommandSubstValue) valueData() {}
func (ConcatValue) valueData()       {}
func (ComparisonValue) valueData()   {}
func (ArithmeticValue) valueData()   {}
func (ArgValue) valueData()          {}
func (ArgCountValue) valueData()     {}
func (LogicalValue) valueData()      {}

func Str(s string) *Value { return &Value{Kind: ValString, Data: &StringValue{Text: s}} }

func Num(n uint32) *Value { return Str(strconv.FormatUint(uint64(n), 10)) }

func Bool(b bool) *Value { return &Value{Kind: ValBool, Data: &BoolValue{Value: b}} }

func Var(name string) *Value { return &Value{Kind: ValVariable, Data: &VariableValue{Name: name}} }

func EnvVar(name string) *Value {
	return &Value{Kind: ValVariable, Data: &VariableValue{Name: name, Env: true}}
}

func CommandSubst(cmd *Node) *Value {
	return &Value{Kind: ValCommandSubst, Data: &CommandSubstValue{Command: cmd}}
}

func Concat(parts ...*Value) *Value { return &Value{Kind: ValConcat, Data: &ConcatValue{Parts: parts}} }

func Compare(op CompareOp, numeric bool, l, r *Value) *Value {
	return &Value{Kind: ValComparison, Data: &ComparisonValue{Op: op, Numeric: numeric, Left: l, Right: r}}
}

func Arith(op ArithOp, l, r *Value) *Value {
	return &Value{Kind: ValArithmetic, Data: &ArithmeticValue{Op: op, Left: l, Right: r}}
}

func Arg(pos uint32) *Value { return &Value{Kind: ValArg, Data: &ArgValue{Position: &pos}} }

func AllArgs() *Value { return &Value{Kind: ValArg, Data: &ArgValue{}} }

func ArgCount() *Value { return &Value{Kind: ValArgCount, Data: &ArgCountValue{}} }

func Logic(op LogicalOp, l, r *Value) *Value {
	return &Value{Kind: ValLogical, Data: &LogicalValue{Op: op, Left: l, Right: r}}
}

func Not(v *Value) *Value { return Logic(LogicNot, v, nil) }

func (v *Value) Str() *StringValue                { return v.Data.(*StringValue) }
func (v *Value) Bool() *BoolValue                 { return v.Data.(*BoolValue) }
func (v *Value) Variable() *VariableValue         { return v.Data.(*VariableValue) }
func (v *Value) CommandSubst() *CommandSubstValue { return v.Data.(*CommandSubstValue) }
func (v *Value) Concat() *ConcatValue             { return v.Data.(*ConcatValue) }
func (v *Value) Comparison() *ComparisonValue     { return v.Data.(*ComparisonValue) }
func (v *Value) Arithmetic() *ArithmeticValue     { return v.Data.(*ArithmeticValue) }
func (v *Value) Arg() *ArgValue                   { return v.Data.(*ArgValue) }
func (v *Value) Logical() *LogicalValue           { return v.Data.(*LogicalValue) }

// IsConstant holds for strings, booleans and concatenations of constants.
func (v *Value) IsConstant() bool {
	switch v.Kind {
	case ValString, ValBool:
		return true
	case ValConcat:
		for _, p := range v.Concat().Parts {
			if !p.IsConstant() {
				return false
			}
		}
		return true
	case ValVariable, ValCommandSubst, ValComparison, ValArithmetic, ValArg, ValArgCount, ValLogical:
		return false
	}
	return false
}

// IsCondition reports whether v is rendered as a shell test rather than a word.
func (v *Value) IsCondition() bool {
	return v.Kind == ValComparison || v.Kind == ValLogical
}

// ConstText returns the text of a constant value.
func (v *Value) ConstText() (string, bool) {
	switch v.Kind {
	case ValString:
		return v.Str().Text, true
	case ValBool:
		return strconv.FormatBool(v.Bool().Value), true
	case ValConcat:
		out := ""
		for _, p := range v.Concat().Parts {
			s, ok := p.ConstText()
			if !ok {
				return "", false
			}
			out += s
		}
		return out, true
	case ValVariable, ValCommandSubst, ValComparison, ValArithmetic, ValArg, ValArgCount, ValLogical:
		return "", false
	}
	return "", false
}

// ConstNumber returns the value of a constant decimal string.
func (v *Value) ConstNumber() (uint64, bool) {
	if v.Kind != ValString {
		return 0, false
	}
	text := v.Str().Text
	if text == "" || len(text) > 1 && text[0] == '0' {
		return 0, false
	}
	n, err := strconv.ParseUint(text, 10, 32)
	if err != nil {
		return 0, false
	}
	return n, true
}
