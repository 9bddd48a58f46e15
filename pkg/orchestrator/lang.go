package orchestrator

import "strings"

var cnAliases = map[string]bool{
	"zh":         true,
	"cn":         true,
	"zh-cn":      true,
	"zh-hans":    true,
	"zh-hans-cn": true,
}

// NormalizeLang implements §6's language normalisation: a lower-cased
// "zh"/"cn"/"zh-cn"/"zh-hans"/"zh-hans-cn" (any case) maps to "cn";
// everything else maps to "en". An empty raw value prefers sessionLang,
// falling back to "en" when that is also empty. The mapping is total and
// idempotent: normalizing an already-normalized value returns it unchanged.
func NormalizeLang(raw, sessionLang string) string {
	if strings.TrimSpace(raw) == "" {
		if sessionLang != "" {
			return sessionLang
		}
		return "en"
	}
	if cnAliases[strings.ToLower(strings.TrimSpace(raw))] {
		return "cn"
	}
	return "en"
}
