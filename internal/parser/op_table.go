package parser

import (
	"jsslice/internal/ast"
	"jsslice/internal/token"
)

// Таблица приоритетов для бинарных операторов
// Чем больше число, тем выше приоритет
const (
	precComma          = 1 // ,
	precAssignment     = 2 // =
	precAdditive       = 3 // + -
	precMultiplicative = 4 // * /
)

// getBinaryOperatorPrec возвращает приоритет и правоассоциативность
// оператора; -1 для токенов, которые не являются бинарными операторами.
func getBinaryOperatorPrec(kind token.Kind) (int, bool) {
	switch kind {
	case token.Comma:
		return precComma, false
	case token.Assign:
		return precAssignment, true
	case token.Plus, token.Minus:
		return precAdditive, false
	case token.Star, token.Slash:
		return precMultiplicative, false
	default:
		return -1, false
	}
}

func tokenKindToBinaryOp(kind token.Kind) ast.BinaryOp {
	switch kind {
	case token.Minus:
		return ast.OpSub
	case token.Star:
		return ast.OpMul
	case token.Slash:
		return ast.OpDiv
	default:
		return ast.OpAdd
	}
}
