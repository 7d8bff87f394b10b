package analyze

import (
	"fmt"
	"strings"
)

//go:generate go tool stringer -type=MemberKind -trimprefix=Kind -output=member_kind_string.go
//go:generate go tool stringer -type=MemberSource -trimprefix=Source -output=member_source_string.go

// MethodType is the single declared type of every method descriptor.
// The return type lives in the signature instead.
const MethodType = "method"

// MemberKind tells properties, methods and parameters apart.
type MemberKind int

const (
	KindProperty MemberKind = iota
	KindMethod
	KindParameter
)

// MarshalText implements encoding.TextMarshaler.
func (k MemberKind) MarshalText() ([]byte, error) {
	return []byte(strings.ToLower(k.String())), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (k *MemberKind) UnmarshalText(text []byte) error {
	for v := KindProperty; v <= KindParameter; v++ {
		if strings.EqualFold(v.String(), string(text)) {
			*k = v

			return nil
		}
	}

	return fmt.Errorf("unknown member kind %q", text)
}

// MemberSource records which metadata source described a member.
type MemberSource int

const (
	SourceAnnotation MemberSource = iota // documentation tag
	SourceStructural                     // structural introspection
)

// MarshalText implements encoding.TextMarshaler.
func (s MemberSource) MarshalText() ([]byte, error) {
	return []byte(strings.ToLower(s.String())), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (s *MemberSource) UnmarshalText(text []byte) error {
	for v := SourceAnnotation; v <= SourceStructural; v++ {
		if strings.EqualFold(v.String(), string(text)) {
			*s = v

			return nil
		}
	}

	return fmt.Errorf("unknown member source %q", text)
}

// MemberDescriptor describes a property, method or parameter.
type MemberDescriptor struct {
	Name          string       `yaml:"name"`       // identifier without sigil
	Kind          MemberKind   `yaml:"kind"`
	Source        MemberSource `yaml:"source"`     // where DeclaredTypes came from
	DeclaredTypes []string     `yaml:"types,flow"` // canonical names, union order
	Summary       string       `yaml:"summary,omitempty"`
	Link          string       `yaml:"link,omitempty"`

	// Method descriptors only.
	Signature  string              `yaml:"-"`
	ReturnType string              `yaml:"return,omitempty"`
	Params     []*MemberDescriptor `yaml:"params,omitempty"` // nil entries mark unparsable @param lines
}

// HasTypes returns true if the member declares at least one type.
func (m *MemberDescriptor) HasTypes() bool {
	return len(m.DeclaredTypes) > 0
}

// HasHint returns true if the member carries a summary.
func (m *MemberDescriptor) HasHint() bool {
	return m.Summary != ""
}

// TypeDescriptor describes a discovered class or interface.
type TypeDescriptor struct {
	Name    string              `yaml:"name"`
	Summary string              `yaml:"summary,omitempty"`
	Link    string              `yaml:"link,omitempty"`
	Members []*MemberDescriptor `yaml:"members"` // annotated properties, then properties, then methods
}

// Member returns the member with the given name, or nil if not found.
func (t *TypeDescriptor) Member(name string) *MemberDescriptor {
	for _, m := range t.Members {
		if m.Name == name {
			return m
		}
	}

	return nil
}

// entryState is the state of a registry entry.
type entryState int

const (
	statePending  entryState = iota // analysis in progress
	stateResolved                   // descriptor complete
)

// entry is a registry slot: pending while the type is being analysed,
// resolved once its members are known. A pending entry never carries a
// descriptor.
type entry struct {
	state entryState
	desc  *TypeDescriptor
}
