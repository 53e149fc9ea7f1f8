package ir

import "fortio.org/safecast"

// foldArith evaluates literal arithmetic. It declines when the result would
// leave the u32 range or divide by zero, leaving the failure to run time.
func foldArith(op ArithOp, left, right *Value) (*Value, bool) {
	a, ok := left.ConstNumber()
	if !ok {
		return nil, false
	}
	b, ok := right.ConstNumber()
	if !ok {
		return nil, false
	}
	var r uint64
	switch op {
	case ArithAdd:
		r = a + b
	case ArithSub:
		if b > a {
			return nil, false
		}
		r = a - b
	case ArithMul:
		r = a * b
	case ArithDiv:
		if b == 0 {
			return nil, false
		}
		r = a / b
	case ArithMod:
		if b == 0 {
			return nil, false
		}
		r = a % b
	}
	n, err := safecast.Conv[uint32](r)
	if err != nil {
		return nil, false
	}
	return Num(n), true
}

// foldConcat flattens nested concatenations and merges adjacent constants.
func foldConcat(v *Value) *Value {
	var parts []*Value
	var flatten func(p *Value)
	flatten = func(p *Value) {
		if p.Kind == ValConcat {
			for _, q := range p.Concat().Parts {
				flatten(q)
			}
			return
		}
		if text, ok := p.ConstText(); ok && len(parts) > 0 {
			if prev, ok := parts[len(parts)-1].ConstText(); ok {
				parts[len(parts)-1] = Str(prev + text)
				return
			}
		}
		parts = append(parts, p)
	}
	flatten(v)
	switch len(parts) {
	case 0:
		return Str("")
	case 1:
		if text, ok := parts[0].ConstText(); ok {
			return Str(text)
		}
		return parts[0]
	}
	return Concat(parts...)
}

// foldCompare evaluates comparisons between constants.
func foldCompare(v *Value) (*Value, bool) {
	c := v.Comparison()
	if c.Numeric {
		a, ok := c.Left.ConstNumber()
		if !ok {
			return nil, false
		}
		b, ok := c.Right.ConstNumber()
		if !ok {
			return nil, false
		}
		switch c.Op {
		case CmpEq:
			return Bool(a == b), true
		case CmpNe:
			return Bool(a != b), true
		case CmpLt:
			return Bool(a < b), true
		case CmpLe:
			return Bool(a <= b), true
		case CmpGt:
			return Bool(a > b), true
		case CmpGe:
			return Bool(a >= b), true
		}
		return nil, false
	}
	a, ok := c.Left.ConstText()
	if !ok {
		return nil, false
	}
	b, ok := c.Right.ConstText()
	if !ok {
		return nil, false
	}
	switch c.Op {
	case CmpEq:
		return Bool(a == b), true
	case CmpNe:
		return Bool(a != b), true
	case CmpLt, CmpLe, CmpGt, CmpGe:
	}
	return nil, false
}

// foldLogic simplifies connectives with a constant operand.
func foldLogic(v *Value) *Value {
	lg := v.Logical()
	constBool := func(x *Value) (bool, bool) {
		if x != nil && x.Kind == ValBool {
			return x.Bool().Value, true
		}
		return false, false
	}
	lb, lok := constBool(lg.Left)
	rb, rok := constBool(lg.Right)
	switch lg.Op {
	case LogicNot:
		if lok {
			return Bool(!lb)
		}
	case LogicAnd:
		switch {
		case lok && !lb, rok && !rb && !runsCommand(lg.Left):
			return Bool(false)
		case lok:
			return lg.Right
		case rok && rb:
			return lg.Left
		}
	case LogicOr:
		switch {
		case lok && lb, rok && rb && !runsCommand(lg.Left):
			return Bool(true)
		case lok:
			return lg.Right
		case rok && !rb:
			return lg.Left
		}
	}
	return v
}

// runsCommand reports whether evaluating v executes a command substitution.
func runsCommand(v *Value) bool {
	if v == nil {
		return false
	}
	switch v.Kind {
	case ValCommandSubst:
		return true
	case ValConcat:
		for _, p := range v.Concat().Parts {
			if runsCommand(p) {
				return true
			}
		}
	case ValComparison:
		c := v.Comparison()
		return runsCommand(c.Left) || runsCommand(c.Right)
	case ValArithmetic:
		a := v.Arithmetic()
		return runsCommand(a.Left) || runsCommand(a.Right)
	case ValLogical:
		lg := v.Logical()
		return runsCommand(lg.Left) || runsCommand(lg.Right)
	case ValString, ValBool, ValVariable, ValArg, ValArgCount:
	}
	return false
}
