package model

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// DisplayName converts grammar name to exported Go identifier:
// underscores and dashes are dropped, each following letter is capitalized.
func DisplayName(name string) string {
	var sb strings.Builder
	upper := true
	for _, r := range name {
		if r == '_' || r == '-' {
			upper = true
			continue
		}

		if upper {
			r = unicode.ToUpper(r)
			upper = false
		}
		sb.WriteRune(r)
	}

	result := sb.String()
	if result == "" {
		return "X"
	}
	if r, _ := utf8.DecodeRuneInString(result); unicode.IsDigit(r) {
		return "X" + result
	}
	return result
}

// LocalName converts grammar name to unexported Go identifier.
func LocalName(name string) string {
	d := DisplayName(name)
	r, size := utf8.DecodeRuneInString(d)
	return string(unicode.ToLower(r)) + d[size:]
}

// Exported identifiers of generated code other than type names.
const (
	ParseFunc    = "Parse"
	PrintFunc    = "Print"
	VisitorType  = "Visitor"
	WalkPrefix   = "Walk"
	DetachMethod = "Detach"
	DetachPrefix = "Detach"
)

// VariantName returns Go type name of an enum variant, or constant name of a simple enum item.
func (d *LangData) VariantName(enum, item string) string {
	return d.DisplayName(enum) + d.DisplayName(item)
}
