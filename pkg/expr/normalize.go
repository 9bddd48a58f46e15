package expr

import (
	"strings"

	"github.com/aiquest/classifier/pkg/value"
)

// NormalizeIdent replaces every character outside [0-9A-Za-z_] with '_'
// and prefixes a leading digit with '_', so that source identifiers like
// "q3.1-a" and "q3_1_a" resolve to the same environment binding. Applied
// both when parsing a condition and when building the environment that
// conditions are evaluated against.
func NormalizeIdent(name string) string {
	if name == "" {
		return name
	}

	var b strings.Builder
	b.Grow(len(name) + 1)

	if c := name[0]; c >= '0' && c <= '9' {
		b.WriteByte('_')
	}

	for _, r := range name {
		switch {
		case r >= '0' && r <= '9', r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r == '_':
			b.WriteRune(r)
		default:
			b.WriteByte('_')
		}
	}

	return b.String()
}

// Env is the flat identifier -> value environment a compiled condition is
// evaluated against.
type Env map[string]value.Value

// NormalizedEnv builds an Env from raw name/value pairs, normalizing every
// key the way the parser normalizes identifier references.
func NormalizedEnv(raw map[string]value.Value) Env {
	out := make(Env, len(raw))
	for k, v := range raw {
		out[NormalizeIdent(k)] = v
	}
	return out
}
