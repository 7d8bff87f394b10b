package analyze

import (
	"fmt"
	"slices"
	"strings"

	"typegraph/internal/docblock"
	"typegraph/internal/introspect"
)

// memberBuilder turns annotation lines and structural members of one type
// into MemberDescriptors. The deep flag is fixed for the whole crawl.
type memberBuilder struct {
	a     *Analyzer
	owner string
	deep  bool
}

// fromAnnotation builds a descriptor from a "<types> $name summary" line
// found on the type itself or, for parameters, on method. It returns nil
// without error when the line does not follow the grammar.
func (b *memberBuilder) fromAnnotation(line string, kind MemberKind, method string) (*MemberDescriptor, error) {
	parsed, ok := docblock.ParseMember(line)
	if !ok {
		b.a.skipAnnotation(b.owner, method, line)

		return nil, nil
	}

	declared, err := b.resolveTypes(parsed.Types)
	if err != nil {
		return nil, err
	}

	return &MemberDescriptor{
		Name:          parsed.Name,
		Kind:          kind,
		Source:        SourceAnnotation,
		DeclaredTypes: declared,
		Summary:       parsed.Summary,
	}, nil
}

// fromProperty builds a descriptor from a structural property.
// A @var tag wins over the structural type; the two are never merged.
func (b *memberBuilder) fromProperty(p introspect.Property) (*MemberDescriptor, error) {
	doc := docblock.Parse(p.Doc)

	m := &MemberDescriptor{
		Name:    p.Name,
		Kind:    KindProperty,
		Summary: doc.Comment(),
		Link:    doc.Link(),
	}

	var err error

	if tag := docblock.FirstToken(doc.Tag("var", "")); tag != "" {
		m.Source = SourceAnnotation
		m.DeclaredTypes, err = b.resolveTypes(strings.Split(tag, "|"))
	} else {
		m.Source = SourceStructural
		m.DeclaredTypes, err = b.structuralTypes(p.Type)
	}

	if err != nil {
		return nil, fmt.Errorf("property %s: %w", p.Name, err)
	}

	return m, nil
}

// fromMethod builds a descriptor from a structural method. Methods whose
// name starts with "__" are lifecycle hooks and yield nil.
//
// When the doc comment declares any @param, the return type and the
// parameters come from the tags only; otherwise from the structure.
func (b *memberBuilder) fromMethod(method introspect.Method) (*MemberDescriptor, error) {
	if strings.HasPrefix(method.Name, "__") {
		return nil, nil
	}

	doc := docblock.Parse(method.Doc)

	m := &MemberDescriptor{
		Name:          method.Name,
		Kind:          KindMethod,
		DeclaredTypes: []string{MethodType},
		Link:          doc.Link(),
	}

	if doc.HasTag("param") {
		m.Source = SourceAnnotation
		m.ReturnType = b.displayType(docblock.FirstToken(doc.Tag("return", "void")))

		for _, line := range doc.Tags("param") {
			param, err := b.fromAnnotation(line, KindParameter, method.Name)
			if err != nil {
				return nil, fmt.Errorf("method %s: %w", method.Name, err)
			}
			m.Params = append(m.Params, param)
		}
	} else {
		m.Source = SourceStructural
		if b.a.caps.ReturnTypes {
			m.ReturnType = b.resultType(method.Results)
		}

		for _, p := range method.Params {
			param, err := b.fromParam(p)
			if err != nil {
				return nil, fmt.Errorf("method %s: %w", method.Name, err)
			}
			m.Params = append(m.Params, param)
		}
	}

	signature, err := FormatSignature(m.ReturnType, m.Name, m.Params)
	if err != nil {
		return nil, fmt.Errorf("method %s: %w", method.Name, err)
	}

	m.Signature = signature
	m.Summary = signature + doc.Comment()

	return m, nil
}

// fromParam builds a descriptor from a structural parameter.
func (b *memberBuilder) fromParam(p introspect.Param) (*MemberDescriptor, error) {
	m := &MemberDescriptor{
		Name:   p.Name,
		Kind:   KindParameter,
		Source: SourceStructural,
	}

	if !b.a.caps.ParamTypes {
		return m, nil
	}

	declared, err := b.structuralTypes(p.Type)
	if err != nil {
		return nil, fmt.Errorf("parameter %s: %w", p.Name, err)
	}
	m.DeclaredTypes = declared

	return m, nil
}

// structuralTypes resolves a structural type; a nullable type contributes
// an extra "null" entry.
func (b *memberBuilder) structuralTypes(ref *introspect.TypeRef) ([]string, error) {
	if ref == nil {
		return nil, nil
	}

	declared, err := b.resolveTypes(strings.Split(ref.Name, "|"))
	if err != nil {
		return nil, err
	}

	if ref.Nullable && !slices.Contains(declared, "null") {
		declared = append(declared, "null")
	}

	return declared, nil
}

// resolveTypes canonicalizes each raw token, analyses it when crawling
// deeply, and drops tokens that carry no constraint. Order is preserved
// and duplicates are removed.
func (b *memberBuilder) resolveTypes(raw []string) ([]string, error) {
	var declared []string

	for _, token := range raw {
		name := b.a.canonical(token)
		if name == "" {
			continue
		}

		if b.deep {
			if err := b.a.analyse(name, true); err != nil {
				return nil, err
			}
		}

		if !slices.Contains(declared, name) {
			declared = append(declared, name)
		}
	}

	return declared, nil
}

// displayType canonicalizes a return type for the signature without
// analysing it. Tokens that normalize to nothing are shown as written.
func (b *memberBuilder) displayType(raw string) string {
	if raw == "" {
		return "void"
	}

	var parts []string
	for _, token := range strings.Split(raw, "|") {
		if name := b.a.canonical(token); name != "" {
			parts = append(parts, name)
		}
	}

	if len(parts) == 0 {
		return raw
	}

	return strings.Join(parts, "|")
}

// resultType spells structural method results: "void" for none, a single
// type as is, several as a parenthesized list.
func (b *memberBuilder) resultType(results []introspect.TypeRef) string {
	if len(results) == 0 {
		return "void"
	}

	parts := make([]string, 0, len(results))
	for _, r := range results {
		name := b.displayType(r.Name)
		if r.Nullable {
			name += "|null"
		}
		parts = append(parts, name)
	}

	if len(parts) == 1 {
		return parts[0]
	}

	return "(" + strings.Join(parts, ", ") + ")"
}
