package parser

import (
	"rash/internal/ast"
	"rash/internal/token"
)

// Таблица приоритетов для бинарных операторов.
// Чем больше число, тем выше приоритет. Диапазоны разбираются отдельно, ниже всех.
const (
	precLogicalOr      = 1 // ||
	precLogicalAnd     = 2 // &&
	precComparison     = 3 // == != < <= > >=
	precAdditive       = 4 // + -
	precMultiplicative = 5 // * / %
)

// binaryPrec возвращает приоритет оператора и сам оператор; ok=false если токен не бинарный.
func binaryPrec(kind token.Kind) (int, ast.BinaryOp, bool) {
	switch kind {
	case token.OrOr:
		return precLogicalOr, ast.BinOr, true
	case token.AndAnd:
		return precLogicalAnd, ast.BinAnd, true
	case token.EqEq:
		return precComparison, ast.BinEq, true
	case token.BangEq:
		return precComparison, ast.BinNe, true
	case token.Lt:
		return precComparison, ast.BinLt, true
	case token.LtEq:
		return precComparison, ast.BinLe, true
	case token.Gt:
		return precComparison, ast.BinGt, true
	case token.GtEq:
		return precComparison, ast.BinGe, true
	case token.Plus:
		return precAdditive, ast.BinAdd, true
	case token.Minus:
		return precAdditive, ast.BinSub, true
	case token.Star:
		return precMultiplicative, ast.BinMul, true
	case token.Slash:
		return precMultiplicative, ast.BinDiv, true
	case token.Percent:
		return precMultiplicative, ast.BinMod, true
	default:
		return -1, 0, false
	}
}

// compoundOp maps += -= *= /= %= onto their binary operator.
func compoundOp(kind token.Kind) ast.BinaryOp {
	switch kind {
	case token.MinusAssign:
		return ast.BinSub
	case token.StarAssign:
		return ast.BinMul
	case token.SlashAssign:
		return ast.BinDiv
	case token.PercentAssign:
		return ast.BinMod
	default:
		return ast.BinAdd
	}
}
