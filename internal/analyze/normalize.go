package analyze

import (
	"strings"
	"unicode"
)

// Built-in primitive kinds. Names in this set are never analysed.
const (
	TypeObject  = "object"
	TypeArray   = "array"
	TypeString  = "string"
	TypeBoolean = "boolean"
	TypeInteger = "integer"
	TypeDouble  = "double"
)

// typeAliases maps host spellings to the canonical vocabulary.
// An empty value means "no constraint" and drops the token.
var typeAliases = map[string]string{
	"int":         TypeInteger,
	"int8":        TypeInteger,
	"int16":       TypeInteger,
	"int32":       TypeInteger,
	"int64":       TypeInteger,
	"uint":        TypeInteger,
	"uint8":       TypeInteger,
	"uint16":      TypeInteger,
	"uint32":      TypeInteger,
	"uint64":      TypeInteger,
	"uintptr":     TypeInteger,
	"byte":        TypeInteger,
	"rune":        TypeInteger,
	"float":       TypeDouble,
	"float32":     TypeDouble,
	"float64":     TypeDouble,
	"decimal":     TypeDouble,
	"complex64":   TypeDouble,
	"complex128":  TypeDouble,
	"bool":        TypeBoolean,
	"stdClass":    TypeObject,
	"any":         TypeObject,
	"interface{}": TypeObject,
	"mixed":       "",
	"resource":    "",
}

// Normalize canonicalizes a raw type-name token.
// The normalization pipeline:
// 1. Strip leading spaces, namespace separators (\) and pointer markers (*),
//    then trailing spaces.
// 2. Collapse collection spellings ([]T, [N]T, map[K]V, T[]) to "array".
// 3. Apply the alias table; unknown names pass through unchanged.
//
// Normalize is idempotent.
func Normalize(raw string) string {
	name := strings.TrimRightFunc(strings.TrimLeftFunc(raw, isLeadingNoise), unicode.IsSpace)

	if isCollection(name) {
		return TypeArray
	}

	if alias, ok := typeAliases[name]; ok {
		return alias
	}

	return name
}

func isLeadingNoise(r rune) bool {
	return r == '\\' || r == '*' || unicode.IsSpace(r)
}

// isCollection reports whether name spells a slice, array or map.
func isCollection(name string) bool {
	return strings.HasPrefix(name, "[") ||
		strings.HasPrefix(name, "map[") ||
		strings.HasSuffix(name, "[]")
}

// IsPrimitive reports whether name is one of the built-in primitive kinds.
func IsPrimitive(name string) bool {
	switch name {
	case TypeObject, TypeArray, TypeString, TypeBoolean, TypeInteger, TypeDouble:
		return true
	default:
		return false
	}
}

// isOpaque reports whether name is accepted without a descriptor:
// there is nothing to analyse, but it is not an error either.
func isOpaque(name string) bool {
	switch name {
	case "callable", "resource", "null", "void":
		return true
	default:
		return false
	}
}
