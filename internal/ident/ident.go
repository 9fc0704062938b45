// Package ident shapes raw TOML keys into Go identifiers. Module segments
// are snake_case, type names PascalCase, and keys colliding with Go reserved
// words are rewritten through a fixed substitution table before shaping.
package ident

import (
	"strings"
	"unicode"

	"github.com/cockroachdb/errors"
)

// ErrKeyInvalid marks keys that cannot be shaped into a legal identifier.
var ErrKeyInvalid = errors.New("key invalid")

// reservedWords maps each Go keyword to its replacement segment. The mapping
// is stable: generated names must not change between releases, so entries are
// never edited, only appended if the language grows keywords.
var reservedWords = map[string]string{
	"break":       "brk",
	"case":        "branch",
	"chan":        "channel",
	"const":       "constant",
	"continue":    "cont",
	"default":     "fallback",
	"defer":       "deferred",
	"else":        "otherwise",
	"fallthrough": "fallthru",
	"for":         "foreach",
	"func":        "fn",
	"go":          "spawn",
	"goto":        "jump",
	"if":          "cond",
	"import":      "include",
	"interface":   "iface",
	"map":         "mapping",
	"package":     "pkg",
	"range":       "span",
	"return":      "ret",
	"select":      "choose",
	"struct":      "record",
	"switch":      "toggle",
	"type":        "kind",
	"var":         "variable",
}

// Module shapes key into a snake_case module segment, rewriting reserved
// words. It fails with ErrKeyInvalid when the shaped segment is not a legal
// identifier (empty key, leading digit, ...).
func Module(key string) (string, error) {
	seg := ToSnake(key)
	if sub, ok := reservedWords[seg]; ok {
		seg = sub
	}
	if !IsValid(seg) {
		return "", errors.Mark(errors.Newf("`%s` cannot be converted to a valid identifier", key), ErrKeyInvalid)
	}
	return seg, nil
}

// IsValid reports whether s is a legal identifier: first character a letter
// or underscore, every subsequent character alphanumeric or underscore.
func IsValid(s string) bool {
	for i, r := range s {
		if i == 0 {
			if !unicode.IsLetter(r) && r != '_' {
				return false
			}
			continue
		}
		if !unicode.IsLetter(r) && !unicode.IsDigit(r) && r != '_' {
			return false
		}
	}
	return s != ""
}

// ToSnake converts a raw key to snake_case. Word boundaries are case
// transitions (including acronym ends, "HTTPServer" -> "http_server") and
// runs of non-alphanumeric characters. Already-snake input is unchanged.
func ToSnake(s string) string {
	runes := []rune(s)
	var b strings.Builder
	prevWritten := false
	for i := 0; i < len(runes); i++ {
		r := runes[i]
		if !unicode.IsLetter(r) && !unicode.IsDigit(r) {
			// Separator run; collapse into a single underscore.
			if prevWritten {
				b.WriteRune('_')
				prevWritten = false
			}
			continue
		}
		if unicode.IsUpper(r) && i > 0 {
			prevUpper := unicode.IsUpper(runes[i-1])
			nextLower := i+1 < len(runes) && unicode.IsLower(runes[i+1])
			if prevWritten && (!prevUpper || nextLower) {
				b.WriteRune('_')
			}
		}
		b.WriteRune(unicode.ToLower(r))
		prevWritten = true
	}
	return strings.Trim(b.String(), "_")
}

// ToPascal converts a snake_case or kebab-case segment to PascalCase. Parts
// keep their inner casing, so already-Pascal input is unchanged.
func ToPascal(s string) string {
	parts := strings.FieldsFunc(s, func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
	var b strings.Builder
	for _, part := range parts {
		runes := []rune(part)
		b.WriteRune(unicode.ToUpper(runes[0]))
		b.WriteString(string(runes[1:]))
	}
	return b.String()
}
