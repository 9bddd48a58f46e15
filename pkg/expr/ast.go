package expr

import "github.com/aiquest/classifier/pkg/value"

// Node is a compiled condition's abstract syntax tree. Evaluation never
// panics: type mismatches are caught by Eval and folded into `false`.
type Node interface {
	isNode()
}

type OrExpr struct{ Left, Right Node }
type AndExpr struct{ Left, Right Node }
type NotExpr struct{ Operand Node }

type CmpOp int

const (
	CmpEq CmpOp = iota
	CmpNeq
	CmpContains
	CmpIn
	CmpIsDefined
)

type CmpExpr struct {
	Op          CmpOp
	Left, Right Node // Right is nil for CmpIsDefined
}

type InListExpr struct {
	Target Node
	Items  []Node
}

type IdentExpr struct{ Name string } // normalized
type LiteralExpr struct{ Value value.Value }

func (OrExpr) isNode()      {}
func (AndExpr) isNode()     {}
func (NotExpr) isNode()     {}
func (CmpExpr) isNode()     {}
func (InListExpr) isNode()  {}
func (IdentExpr) isNode()   {}
func (LiteralExpr) isNode() {}
