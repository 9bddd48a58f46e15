package engine

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/goccy/go-yaml"

	"github.com/aiquest/classifier/pkg/expr"
	"github.com/aiquest/classifier/pkg/value"
)

var citationInline = regexp.MustCompile(`\[cite:[^\]]*\]`)

// stripCitations removes the "[cite_end]" and "[cite:...]" annotation
// artifacts that show up in the source questionnaire content — they are
// authoring-tool leftovers, not data.
func stripCitations(src string) string {
	src = strings.ReplaceAll(src, "[cite_end]", "")
	return citationInline.ReplaceAllString(src, "")
}

var firstIntRun = regexp.MustCompile(`\d+`)

// extractModuleNum derives the ordering key for a module: the first
// integer run in id, else in filename, else 9999.
func extractModuleNum(id, filename string) int {
	if m := firstIntRun.FindString(id); m != "" {
		if n, err := strconv.Atoi(m); err == nil {
			return n
		}
	}
	if m := firstIntRun.FindString(filename); m != "" {
		if n, err := strconv.Atoi(m); err == nil {
			return n
		}
	}
	return 9999
}

// parseModuleFile parses one module YAML document (post citation-strip)
// into a *Module. filename is used only for module_num derivation when the
// id carries no digits.
func parseModuleFile(filename string, data []byte) (*Module, error) {
	var doc map[string]any
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, &LoadFault{File: filename, Reason: fmt.Sprintf("invalid yaml: %v", err)}
	}

	id := firstNonEmptyString(doc, "module_id", "module")
	if id == "" {
		return nil, &LoadFault{File: filename, Reason: "missing module id"}
	}

	mod := &Module{
		ID:            id,
		ModuleNum:     extractModuleNum(id, filename),
		Title:         stringField(doc, "title"),
		Description:   stringField(doc, "description"),
		QuestionsByID: make(map[string]*Question),
	}

	for _, raw := range listField(doc, "questions") {
		qm, ok := raw.(map[string]any)
		if !ok {
			continue
		}
		q, err := parseQuestion(filename, qm)
		if err != nil {
			return nil, err
		}
		mod.Questions = append(mod.Questions, q)
		mod.QuestionsByID[q.ID] = q
	}

	for _, raw := range listField(doc, "variables") {
		vm, ok := raw.(map[string]any)
		if !ok {
			continue
		}
		v, err := parseVariable(filename, vm)
		if err != nil {
			return nil, err
		}
		mod.Variables = append(mod.Variables, v)
	}

	for _, raw := range listField(doc, "router") {
		rm, ok := raw.(map[string]any)
		if !ok {
			continue
		}
		rule, err := parseRouterRule(filename, rm)
		if err != nil {
			return nil, err
		}
		mod.Router = append(mod.Router, rule)
	}

	return mod, nil
}

func parseQuestion(filename string, m map[string]any) (*Question, error) {
	id := stringField(m, "id")
	if id == "" {
		return nil, &LoadFault{File: filename, Reason: "question missing id"}
	}

	q := &Question{
		ID:            id,
		Type:          strings.ToLower(stringField(m, "type")),
		DependencyRaw: stringField(m, "dependency"),
		Raw:           m,
	}
	if q.DependencyRaw != "" {
		q.Dependency = expr.Compile(q.DependencyRaw)
	}

	for _, raw := range listField(m, "options") {
		om, ok := raw.(map[string]any)
		if !ok {
			continue
		}
		q.Options = append(q.Options, Option{
			Value:     value.FromAny(om["value"]),
			Exclusive: boolField(om, "exclusive"),
			Raw:       om,
		})
	}

	return q, nil
}

func parseVariable(filename string, m map[string]any) (Variable, error) {
	name := stringField(m, "name")
	if name == "" {
		return Variable{}, &LoadFault{File: filename, Reason: "variable missing name"}
	}

	v := Variable{
		Name: name,
		Type: strings.ToLower(stringField(m, "type")),
	}
	if raw, ok := m["initial_value"]; ok {
		iv := value.FromAny(raw)
		v.InitialValue = &iv
	}

	for _, raw := range listField(m, "rules") {
		rm, ok := raw.(map[string]any)
		if !ok {
			continue
		}
		cond := stringField(rm, "condition")
		v.Rules = append(v.Rules, VariableRule{
			ConditionRaw: cond,
			Condition:    expr.Compile(cond),
			Value:        value.FromAny(rm["value"]),
		})
	}

	return v, nil
}

func parseRouterRule(filename string, m map[string]any) (RouterRule, error) {
	cond := stringField(m, "condition")
	rule := RouterRule{
		ConditionRaw: cond,
		Condition:    expr.Compile(cond),
		Action:       RouterAction(strings.ToLower(strings.TrimSpace(stringField(m, "action")))),
		Message:      stringField(m, "message"),
	}

	if target := stringField(m, "target_module_id"); target != "" {
		rule.TargetModuleID = target
	} else if raw := stringField(m, "target_module"); raw != "" {
		if n := firstIntRun.FindString(raw); n != "" {
			rule.TargetModuleID = n
		}
	}

	return rule, nil
}

func firstNonEmptyString(m map[string]any, keys ...string) string {
	for _, k := range keys {
		if s := stringField(m, k); s != "" {
			return s
		}
	}
	return ""
}

func stringField(m map[string]any, key string) string {
	v, ok := m[key]
	if !ok || v == nil {
		return ""
	}
	switch t := v.(type) {
	case string:
		return t
	default:
		return fmt.Sprintf("%v", t)
	}
}

func boolField(m map[string]any, key string) bool {
	v, ok := m[key].(bool)
	return ok && v
}

func listField(m map[string]any, key string) []any {
	v, ok := m[key].([]any)
	if !ok {
		return nil
	}
	return v
}

func parseConstants(data []byte) (map[string]value.Value, error) {
	var doc map[string]any
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("invalid constants.yaml: %w", err)
	}

	raw, ok := doc["constants"].(map[string]any)
	if !ok {
		return map[string]value.Value{}, nil
	}

	out := make(map[string]value.Value, len(raw))
	for k, v := range raw {
		out[k] = value.FromAny(v)
	}
	return out, nil
}
