package ast

// BinaryOp enumerates binary operators.
type BinaryOp uint8

const (
	BinEq BinaryOp = iota
	BinNe
	BinLt
	BinLe
	BinGt
	BinGe
	BinAdd
	BinSub
	BinMul
	BinDiv
	BinMod
	BinAnd
	BinOr
)

// BinaryOps lists every operator in declaration order.
var BinaryOps = []BinaryOp{BinEq, BinNe, BinLt, BinLe, BinGt, BinGe, BinAdd, BinSub, BinMul, BinDiv, BinMod, BinAnd, BinOr}

func (op BinaryOp) String() string {
	switch op {
	case BinEq:
		return "=="
	case BinNe:
		return "!="
	case BinLt:
		return "<"
	case BinLe:
		return "<="
	case BinGt:
		return ">"
	case BinGe:
		return ">="
	case BinAdd:
		return "+"
	case BinSub:
		return "-"
	case BinMul:
		return "*"
	case BinDiv:
		return "/"
	case BinMod:
		return "%"
	case BinAnd:
		return "&&"
	case BinOr:
		return "||"
	default:
		return "?"
	}
}

// UnaryOp enumerates unary operators.
type UnaryOp uint8

const (
	UnaryNot UnaryOp = iota // !
	UnaryNeg                // -
)

func (op UnaryOp) String() string {
	switch op {
	case UnaryNot:
		return "!"
	case UnaryNeg:
		return "-"
	default:
		return "?"
	}
}
