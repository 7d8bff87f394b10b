package common

import (
	"regexp"
	"strings"
)

// namePattern matches the tokens of a composite type spelling such as
// "(example.com/m/geo.Point|null, boolean)".
var namePattern = regexp.MustCompile(`[^\s|(),]+`)

// ShortName spells a qualified "import/path.Name" as "alias.Name".
// Names without a package path are returned unchanged.
func ShortName(name string) string {
	slash := strings.LastIndex(name, "/")

	dot := strings.LastIndex(name, ".")
	if dot <= slash || slash < 0 {
		return name
	}

	return PkgAlias(name[:dot]) + name[dot:]
}

// TrimModule removes the module path prefix from a qualified name, leaving
// the package path relative to the module root.
func TrimModule(name, module string) string {
	if module == "" {
		return name
	}

	return strings.TrimPrefix(name, module+"/")
}

// RewriteNames applies fn to every name inside a composite type spelling.
func RewriteNames(s string, fn func(string) string) string {
	return namePattern.ReplaceAllStringFunc(s, fn)
}
