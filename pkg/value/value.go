// Package value implements the tagged dynamic value used for answers,
// parameters, and expression results throughout the engine.
package value

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// Kind tags the variant currently held by a Value.
type Kind int

const (
	KindNull Kind = iota
	KindBool
	KindString
	KindInt
	KindFloat
	KindList
)

// Value is a tagged sum of the dynamic types that flow through YAML
// resources, submitted answers, and derived parameters: { Bool, String,
// Int, Float, List<Value>, Null }.
type Value struct {
	kind Kind
	b    bool
	s    string
	i    int64
	f    float64
	list []Value
}

func Null() Value            { return Value{kind: KindNull} }
func Bool(b bool) Value      { return Value{kind: KindBool, b: b} }
func String(s string) Value  { return Value{kind: KindString, s: s} }
func Int(i int64) Value      { return Value{kind: KindInt, i: i} }
func Float(f float64) Value  { return Value{kind: KindFloat, f: f} }
func List(vs []Value) Value  { return Value{kind: KindList, list: vs} }

func (v Value) Kind() Kind      { return v.kind }
func (v Value) IsNull() bool    { return v.kind == KindNull }
func (v Value) IsList() bool    { return v.kind == KindList }
func (v Value) IsString() bool  { return v.kind == KindString }
func (v Value) IsBool() bool    { return v.kind == KindBool }

// Truthy reports whether v, interpreted loosely, is "true": false for
// Bool(false) and Null, true for everything else. The expression
// evaluator uses it for and/or/not operands and for a condition's final
// result; comparisons themselves are strict (see Equal).
func (v Value) Truthy() bool {
	switch v.kind {
	case KindBool:
		return v.b
	case KindNull:
		return false
	default:
		return true
	}
}

func (v Value) Bool() (bool, bool) {
	if v.kind != KindBool {
		return false, false
	}
	return v.b, true
}

func (v Value) StringVal() (string, bool) {
	if v.kind != KindString {
		return "", false
	}
	return v.s, true
}

func (v Value) ListVal() ([]Value, bool) {
	if v.kind != KindList {
		return nil, false
	}
	return v.list, true
}

// AsFloat returns the numeric value of v when it is an Int or Float.
func (v Value) AsFloat() (float64, bool) {
	switch v.kind {
	case KindInt:
		return float64(v.i), true
	case KindFloat:
		return v.f, true
	default:
		return 0, false
	}
}

// AsDisplayString stringifies v for template rendering: "" for null,
// elements joined with "; " for lists, scalars via their natural form.
func (v Value) AsDisplayString() string {
	switch v.kind {
	case KindNull:
		return ""
	case KindBool:
		return strconv.FormatBool(v.b)
	case KindString:
		return v.s
	case KindInt:
		return strconv.FormatInt(v.i, 10)
	case KindFloat:
		return strconv.FormatFloat(v.f, 'g', -1, 64)
	case KindList:
		parts := make([]string, len(v.list))
		for i, e := range v.list {
			parts[i] = e.AsDisplayString()
		}
		return strings.Join(parts, "; ")
	default:
		return ""
	}
}

// Equal implements the "==" / "!=" comparison used by the expression
// engine: equal kind and equal payload, with Int/Float compared
// numerically across kinds. Mismatched kinds are never equal (the caller
// treats that as the "false" soft-fail branch).
func Equal(a, b Value) bool {
	if a.kind == KindNull || b.kind == KindNull {
		return a.kind == KindNull && b.kind == KindNull
	}
	if (a.kind == KindInt || a.kind == KindFloat) && (b.kind == KindInt || b.kind == KindFloat) {
		af, _ := a.AsFloat()
		bf, _ := b.AsFloat()
		return af == bf
	}
	if a.kind != b.kind {
		return false
	}
	switch a.kind {
	case KindBool:
		return a.b == b.b
	case KindString:
		return a.s == b.s
	case KindList:
		if len(a.list) != len(b.list) {
			return false
		}
		for i := range a.list {
			if !Equal(a.list[i], b.list[i]) {
				return false
			}
		}
		return true
	default:
		return false
	}
}

// FromAny converts a generically-decoded YAML/JSON value (as produced by
// unmarshalling into `any`) into a Value.
func FromAny(v any) Value {
	switch t := v.(type) {
	case nil:
		return Null()
	case bool:
		return Bool(t)
	case string:
		return String(t)
	case int:
		return Int(int64(t))
	case int64:
		return Int(t)
	case uint64:
		return Int(int64(t))
	case float64:
		if t == float64(int64(t)) {
			return Int(int64(t))
		}
		return Float(t)
	case float32:
		return FromAny(float64(t))
	case []any:
		out := make([]Value, len(t))
		for i, e := range t {
			out[i] = FromAny(e)
		}
		return List(out)
	case []Value:
		return List(t)
	case []string:
		out := make([]Value, len(t))
		for i, e := range t {
			out[i] = String(e)
		}
		return List(out)
	case Value:
		return t
	default:
		return String(fmt.Sprintf("%v", t))
	}
}

// ToAny unwraps a Value into a plain any for JSON encoding/comparison
// against client-submitted answers.
func (v Value) ToAny() any {
	switch v.kind {
	case KindNull:
		return nil
	case KindBool:
		return v.b
	case KindString:
		return v.s
	case KindInt:
		return v.i
	case KindFloat:
		return v.f
	case KindList:
		out := make([]any, len(v.list))
		for i, e := range v.list {
			out[i] = e.ToAny()
		}
		return out
	default:
		return nil
	}
}

func (v Value) MarshalJSON() ([]byte, error) {
	return json.Marshal(v.ToAny())
}

func (v *Value) UnmarshalJSON(data []byte) error {
	var raw any
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	*v = FromAny(raw)
	return nil
}
