package match

import (
	"strings"
)

// NormalizeIdent folds a type name for fuzzy comparison: the package
// qualifier is dropped and the rest is lowercased without separators.
// "typegraph/examples/graph.Node_ID" becomes "nodeid".
func NormalizeIdent(s string) string {
	return strings.Map(func(r rune) rune {
		if isSeparator(r) {
			return -1
		}

		return r
	}, strings.ToLower(baseName(s)))
}

// baseName strips a Go package qualifier ("path/pkg.") or a namespace
// (`Vendor\Pkg\`) from a type name.
func baseName(s string) string {
	if i := strings.LastIndexAny(s, `./\`); i >= 0 {
		return s[i+1:]
	}

	return s
}

// isSeparator returns true if the rune is a common separator.
func isSeparator(r rune) bool {
	return r == '_' || r == '-' || r == ' '
}
