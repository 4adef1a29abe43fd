package ast

import (
	"jsslice/internal/source"
)

type ExprKind uint8

const (
	ExprNumber ExprKind = iota
	ExprString
	ExprIdent
	ExprBinary
	ExprAssign
	ExprParen
	ExprComma
)

func (k ExprKind) String() string {
	switch k {
	case ExprNumber:
		return "Number"
	case ExprString:
		return "String"
	case ExprIdent:
		return "Ident"
	case ExprBinary:
		return "Binary"
	case ExprAssign:
		return "Assign"
	case ExprParen:
		return "Paren"
	case ExprComma:
		return "Comma"
	}
	return "Expr(?)"
}

type Expr struct {
	Kind    ExprKind
	Span    source.Span
	Payload PayloadID
}

// BinaryOp is an arithmetic operator.
type BinaryOp uint8

const (
	OpAdd BinaryOp = iota
	OpSub
	OpMul
	OpDiv
)

// String returns the operator symbol.
func (op BinaryOp) String() string {
	switch op {
	case OpAdd:
		return "+"
	case OpSub:
		return "-"
	case OpMul:
		return "*"
	case OpDiv:
		return "/"
	}
	return "?"
}

// Name is the word form used in JSON and YAML dumps.
func (op BinaryOp) Name() string {
	switch op {
	case OpAdd:
		return "Add"
	case OpSub:
		return "Sub"
	case OpMul:
		return "Mul"
	case OpDiv:
		return "Div"
	}
	return "Unknown"
}

type ExprNumberData struct {
	Value float64 // значение как распарсено, без свёртки констант
	Raw   source.StringID
}

type ExprStringData struct {
	Value source.StringID // содержимое между кавычками, escape не декодируются
	Raw   source.StringID
}

type ExprIdentData struct {
	Name source.StringID
}

type ExprBinaryData struct {
	Op    BinaryOp
	Left  ExprID
	Right ExprID
}

type ExprAssignData struct {
	Target ExprID // всегда ExprIdent
	Value  ExprID
}

type ExprParenData struct {
	Inner ExprID
}

type ExprCommaData struct {
	Left  ExprID
	Right ExprID
}
