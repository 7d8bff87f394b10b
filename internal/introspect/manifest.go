package introspect

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// Manifest is a host described as data: a YAML document listing classes and
// interfaces with their members. It serves programs whose metadata is
// exported offline.
//
//	capabilities:
//	  param_types: true
//	  return_types: true
//	types:
//	  - name: Point
//	    aliases: [geo.Point]
//	    doc: |
//	      A location.
//	      @property int $z depth
//	    properties:
//	      - name: x
//	        type: int
//	      - name: next
//	        type: "?Point"        # "?" marks a nullable type
//	    methods:
//	      - name: distanceTo
//	        params:
//	          - name: other
//	            type: Point
//	        results: [float]
type Manifest struct {
	Caps  *Capabilities   `yaml:"capabilities,omitempty"`
	Types []ManifestEntry `yaml:"types"`

	index   map[string]*Type
	aliases map[string]string
}

// ManifestEntry is a Type plus the alternative spellings it answers to.
type ManifestEntry struct {
	Type    `yaml:",inline"`
	Aliases []string `yaml:"aliases,omitempty"`
}

// LoadManifest loads and parses a YAML manifest from the given path.
func LoadManifest(path string) (*Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read manifest %s: %w", path, err)
	}

	return ParseManifest(data)
}

// ParseManifest parses YAML data into a Manifest.
func ParseManifest(data []byte) (*Manifest, error) {
	var m Manifest

	if err := yaml.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("failed to parse manifest YAML: %w", err)
	}

	if err := m.build(); err != nil {
		return nil, err
	}

	return &m, nil
}

// NewManifest builds a Manifest from in-memory entries.
func NewManifest(caps Capabilities, entries ...ManifestEntry) (*Manifest, error) {
	m := &Manifest{Caps: &caps, Types: entries}
	if err := m.build(); err != nil {
		return nil, err
	}

	return m, nil
}

// build applies defaults and indexes entries by name and alias.
func (m *Manifest) build() error {
	if m.Caps == nil {
		m.Caps = &Capabilities{ParamTypes: true, ReturnTypes: true}
	}

	m.index = make(map[string]*Type, len(m.Types))
	m.aliases = make(map[string]string)

	var errs []error

	for i := range m.Types {
		entry := &m.Types[i]
		if entry.Kind == "" {
			entry.Kind = KindClass
		}

		switch {
		case entry.Name == "":
			errs = append(errs, fmt.Errorf("types[%d]: name is required", i))

			continue
		case entry.Kind != KindClass && entry.Kind != KindInterface:
			errs = append(errs, fmt.Errorf("type %s: unknown kind %q", entry.Name, entry.Kind))
		}

		if _, dup := m.index[entry.Name]; dup {
			errs = append(errs, fmt.Errorf("type %s: declared more than once", entry.Name))

			continue
		}

		m.index[entry.Name] = &entry.Type

		for _, alias := range entry.Aliases {
			m.aliases[alias] = entry.Name
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("invalid manifest: %w", errors.Join(errs...))
	}

	return nil
}

// Lookup returns the class or interface with the given name or alias.
func (m *Manifest) Lookup(name string) (*Type, bool) {
	t, ok := m.index[m.Canonical(name)]

	return t, ok
}

// Canonical maps an alias to the declared name; other names are returned as is.
func (m *Manifest) Canonical(name string) string {
	if canonical, ok := m.aliases[name]; ok {
		return canonical
	}

	return name
}

// Names returns the declared type names in manifest order.
func (m *Manifest) Names() []string {
	names := make([]string, 0, len(m.Types))
	for _, entry := range m.Types {
		names = append(names, entry.Name)
	}

	return names
}

// Capabilities returns the declared capabilities of the described host.
func (m *Manifest) Capabilities() Capabilities {
	return *m.Caps
}

// UnmarshalYAML accepts either a mapping or a scalar such as "?int".
func (r *TypeRef) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind == yaml.ScalarNode {
		name := strings.TrimSpace(value.Value)
		r.Nullable = strings.HasPrefix(name, "?")
		r.Name = strings.TrimPrefix(name, "?")

		return nil
	}

	type plain TypeRef

	return value.Decode((*plain)(r))
}
