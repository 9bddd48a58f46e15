package expr

import (
	"fmt"
	"strings"

	"github.com/aiquest/classifier/pkg/value"
)

// FaultError wraps a structural/grammar problem recorded by Compile and
// reported only when the offending condition is evaluated. Callers
// surface this as a 500-class authoring fault, never a 400.
type FaultError struct {
	Condition string
	Err       error
}

func (e *FaultError) Error() string {
	return fmt.Sprintf("invalid condition %q: %v", e.Condition, e.Err)
}

func (e *FaultError) Unwrap() error { return e.Err }

// Eval evaluates a compiled condition against env. Runtime type mismatches
// never produce an error — they fold to false per the soft-fail contract.
// A parse-time (structural) fault is returned as *FaultError.
func (c *Condition) Eval(env Env) (bool, error) {
	if c.isElse {
		return true, nil
	}
	if c.parseErr != nil {
		return false, &FaultError{Condition: c.raw, Err: c.parseErr}
	}
	v := evalNode(c.root, env)
	return v.Truthy(), nil
}

func evalNode(n Node, env Env) value.Value {
	switch t := n.(type) {
	case OrExpr:
		if evalNode(t.Left, env).Truthy() {
			return value.Bool(true)
		}
		return value.Bool(evalNode(t.Right, env).Truthy())
	case AndExpr:
		if !evalNode(t.Left, env).Truthy() {
			return value.Bool(false)
		}
		return value.Bool(evalNode(t.Right, env).Truthy())
	case NotExpr:
		return value.Bool(!evalNode(t.Operand, env).Truthy())
	case CmpExpr:
		return evalCmp(t, env)
	case InListExpr:
		target := evalNode(t.Target, env)
		for _, item := range t.Items {
			if value.Equal(target, evalNode(item, env)) {
				return value.Bool(true)
			}
		}
		return value.Bool(false)
	case IdentExpr:
		if v, ok := env[t.Name]; ok {
			return v
		}
		return value.Null()
	case LiteralExpr:
		return t.Value
	default:
		return value.Bool(false)
	}
}

func evalCmp(c CmpExpr, env Env) value.Value {
	left := evalNode(c.Left, env)

	switch c.Op {
	case CmpIsDefined:
		return value.Bool(!left.IsNull())
	case CmpEq:
		right := evalNode(c.Right, env)
		return value.Bool(value.Equal(left, right))
	case CmpNeq:
		right := evalNode(c.Right, env)
		return value.Bool(!value.Equal(left, right))
	case CmpIn:
		right := evalNode(c.Right, env)
		return value.Bool(membership(left, right))
	default:
		return value.Bool(false)
	}
}

// membership implements "needle in container": list membership, string
// substring, or false for any other container shape — a runtime type
// mismatch, soft-failed per the expression engine's contract.
func membership(needle, container value.Value) bool {
	if items, ok := container.ListVal(); ok {
		for _, it := range items {
			if value.Equal(needle, it) {
				return true
			}
		}
		return false
	}
	if s, ok := container.StringVal(); ok {
		if ns, ok := needle.StringVal(); ok {
			return strings.Contains(s, ns)
		}
	}
	return false
}
