package evaluator

import "github.com/aiquest/classifier/pkg/value"

// Conclusion is the fixed 4-field projection of parameters returned at a
// terminal state, each defaulting to null when the corresponding
// parameter was never derived.
type Conclusion struct {
	Role      value.Value `json:"role"`
	Type      value.Value `json:"type"`
	RiskLevel value.Value `json:"risk_level"`
	View      value.Value `json:"view"`
}

// BuildConclusion projects params onto the fixed Role/Type/Risk_level/View
// shape.
func BuildConclusion(params Params) Conclusion {
	get := func(name string) value.Value {
		if v, ok := params[name]; ok {
			return v
		}
		return value.Null()
	}
	return Conclusion{
		Role:      get("Role"),
		Type:      get("Type"),
		RiskLevel: get("Risk_level"),
		View:      get("View"),
	}
}
