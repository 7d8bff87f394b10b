package introspect

// TypeKind is the structural kind of a class-like type.
type TypeKind string

const (
	KindClass     TypeKind = "class"
	KindInterface TypeKind = "interface"
)

// Capabilities describes which structural type information a host exposes.
type Capabilities struct {
	ParamTypes  bool `yaml:"param_types"`  // parameters carry declared types
	ReturnTypes bool `yaml:"return_types"` // methods carry declared result types
}

// TypeRef is a structurally declared type.
type TypeRef struct {
	Name     string `yaml:"name"`               // host spelling, e.g. "int64" or "typegraph/examples/geometry.Point"
	Nullable bool   `yaml:"nullable,omitempty"` // the value may be nil/null
}

// Type describes a class or interface as reported by the host.
type Type struct {
	Name       string     `yaml:"name"` // canonical name
	Kind       TypeKind   `yaml:"kind"`
	Doc        string     `yaml:"doc,omitempty"`
	Properties []Property `yaml:"properties,omitempty"`
	Methods    []Method   `yaml:"methods,omitempty"`
}

// Property is a publicly visible property (struct field).
type Property struct {
	Name string   `yaml:"name"`
	Doc  string   `yaml:"doc,omitempty"`
	Type *TypeRef `yaml:"type,omitempty"` // nil when untyped
}

// Method is a publicly visible method.
type Method struct {
	Name    string    `yaml:"name"`
	Doc     string    `yaml:"doc,omitempty"`
	Params  []Param   `yaml:"params,omitempty"`
	Results []TypeRef `yaml:"results,omitempty"`
}

// Param is a single method parameter.
type Param struct {
	Name string   `yaml:"name"`
	Type *TypeRef `yaml:"type,omitempty"` // nil when untyped
}
