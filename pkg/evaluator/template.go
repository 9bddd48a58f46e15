package evaluator

import (
	"regexp"
	"strings"

	"github.com/aiquest/classifier/pkg/value"
)

var placeholderPattern = regexp.MustCompile(`\{\{\s*([0-9A-Za-z_]+)\s*\}\}`)

// renderTemplates performs the second parameter-derivation pass: every
// "{{ name }}" placeholder inside a string parameter (or a string element
// of a list parameter) is substituted by looking name up in params first,
// then answers.
func renderTemplates(params Params, answers Answers) Params {
	out := make(Params, len(params))
	for name, v := range params {
		out[name] = renderValue(v, params, answers)
	}
	return out
}

func renderValue(v value.Value, params Params, answers Answers) value.Value {
	if s, ok := v.StringVal(); ok {
		return value.String(renderString(s, params, answers))
	}
	if items, ok := v.ListVal(); ok {
		out := make([]value.Value, len(items))
		for i, item := range items {
			out[i] = renderValue(item, params, answers)
		}
		return value.List(out)
	}
	return v
}

func renderString(s string, params Params, answers Answers) string {
	return placeholderPattern.ReplaceAllStringFunc(s, func(match string) string {
		sub := placeholderPattern.FindStringSubmatch(match)
		name := strings.TrimSpace(sub[1])

		if pv, ok := params[name]; ok {
			return pv.AsDisplayString()
		}
		if av, ok := answers[name]; ok {
			return av.AsDisplayString()
		}
		return ""
	})
}
