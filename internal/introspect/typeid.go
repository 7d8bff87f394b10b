package introspect

import "strings"

// TypeID uniquely identifies a Go type by its package path and name.
type TypeID struct {
	PkgPath string // e.g., "typegraph/examples/geometry"
	Name    string // e.g., "Point"
}

// String returns the canonical "path.Name" spelling of the TypeID.
func (t TypeID) String() string {
	if t.PkgPath == "" {
		return t.Name
	}

	return t.PkgPath + "." + t.Name
}

// ParseTypeID splits a qualified name at its last dot.
// "typegraph/examples/geometry.Point" yields the path and "Point";
// a name without a dot yields a TypeID with an empty PkgPath.
func ParseTypeID(s string) TypeID {
	// The package path may contain dots (e.g. "example.com/x"), but only
	// before the last slash.
	slash := strings.LastIndex(s, "/")

	dot := strings.LastIndex(s, ".")
	if dot <= slash {
		return TypeID{Name: s}
	}

	return TypeID{PkgPath: s[:dot], Name: s[dot+1:]}
}
