package util

import (
	"strings"

	"github.com/gosimple/slug"
)

// NormalizeName lowercases and slugifies an object name the way route
// segments expect, preserving the c_ custom prefix.
func NormalizeName(name string) string {
	if rest, ok := strings.CutPrefix(name, "c_"); ok {
		return "c_" + slug.Make(rest)
	}
	return slug.Make(name)
}

// PluralName derives the route name for an object class from its singular
// name, e.g. "account" -> "accounts", "c_study" -> "c_studies". The name
// is normalized into a route-safe segment first. The server payload wins
// whenever it supplies an explicit plural.
func PluralName(name string) string {
	if name == "" {
		return ""
	}
	name = NormalizeName(name)
	prefix := ""
	if rest, ok := strings.CutPrefix(name, "c_"); ok {
		prefix, name = "c_", rest
	}
	switch {
	case strings.HasSuffix(name, "s"), strings.HasSuffix(name, "x"),
		strings.HasSuffix(name, "z"), strings.HasSuffix(name, "ch"),
		strings.HasSuffix(name, "sh"):
		return prefix + name + "es"
	case strings.HasSuffix(name, "y") && !hasVowelBeforeY(name):
		return prefix + name[:len(name)-1] + "ies"
	default:
		return prefix + name + "s"
	}
}

func hasVowelBeforeY(name string) bool {
	if len(name) < 2 {
		return false
	}
	return strings.ContainsRune("aeiou", rune(name[len(name)-2]))
}
