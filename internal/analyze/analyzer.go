package analyze

import (
	"errors"
	"fmt"
	"log/slog"

	"typegraph/internal/diagnostic"
	"typegraph/internal/docblock"
	"typegraph/internal/introspect"
	"typegraph/internal/match"
)

// Diagnostic codes reported by the Analyzer.
const (
	CodeMalformedAnnotation = "annotation.malformed"
	CodePendingType         = "type.pending"
	CodeUnsupportedType     = "type.unsupported"
)

// Source is the introspection host the analyser reads structure from.
type Source interface {
	// Lookup returns the class or interface with the given name.
	Lookup(name string) (*introspect.Type, bool)
	// Canonical returns the host's canonical spelling of name.
	Canonical(name string) string
	// Capabilities reports which structural type information is available.
	Capabilities() introspect.Capabilities
}

// Lister is implemented by sources that can enumerate their types. The
// analyser uses it to suggest names for unsupported types.
type Lister interface {
	Names() []string
}

// Analyzer crawls the type graph reachable from root type names.
//
// The registry is owned by one Analyzer and only grows. An Analyzer is not
// safe for concurrent use; after a failed crawl it should be discarded.
type Analyzer struct {
	src    Source
	caps   introspect.Capabilities // resolved once in New
	logger *slog.Logger

	registry map[string]*entry
	order    []string // registry keys in discovery order
	diags    diagnostic.Diagnostics
}

// Option configures an Analyzer.
type Option func(*Analyzer)

// WithLogger sets the logger used for debug output.
func WithLogger(logger *slog.Logger) Option {
	return func(a *Analyzer) {
		if logger != nil {
			a.logger = logger
		}
	}
}

// New creates an Analyzer reading from src.
func New(src Source, opts ...Option) *Analyzer {
	a := &Analyzer{
		src:      src,
		caps:     src.Capabilities(),
		logger:   slog.Default(),
		registry: make(map[string]*entry),
	}

	for _, opt := range opts {
		opt(a)
	}

	return a
}

// Analyse analyses each name in order, deeply: every class or interface
// referenced by a discovered member or parameter is analysed as well.
func (a *Analyzer) Analyse(names ...string) error {
	return a.analyseAll(names, true)
}

// AnalyseShallow analyses each name in order without following member
// types; they are recorded by name only.
func (a *Analyzer) AnalyseShallow(names ...string) error {
	return a.analyseAll(names, false)
}

func (a *Analyzer) analyseAll(names []string, deep bool) error {
	for _, name := range names {
		if err := a.analyse(name, deep); err != nil {
			var unsupported *UnsupportedTypeError
			if errors.As(err, &unsupported) {
				a.reportUnsupported(unsupported, err)
			}

			return err
		}
	}

	return nil
}

// analyse resolves a single name. Empty, primitive and already registered
// names (pending or resolved) are skipped; the pending case is what breaks
// cycles.
func (a *Analyzer) analyse(raw string, deep bool) error {
	name := a.canonical(raw)
	if name == "" || IsPrimitive(name) {
		return nil
	}

	if _, known := a.registry[name]; known {
		return nil
	}

	if t, ok := a.src.Lookup(name); ok {
		if _, known := a.registry[t.Name]; known {
			return nil
		}

		return a.analyseClass(t, deep)
	}

	if isOpaque(name) {
		return nil
	}

	return &UnsupportedTypeError{Name: name}
}

// canonical normalizes raw and maps it to the source's spelling.
func (a *Analyzer) canonical(raw string) string {
	name := Normalize(raw)
	if name == "" {
		return ""
	}

	return Normalize(a.src.Canonical(name))
}

// analyseClass builds the descriptor of a class or interface.
func (a *Analyzer) analyseClass(t *introspect.Type, deep bool) error {
	// Mark as pending before looking at members so that any reference back
	// to this type stops at the registry check.
	a.registry[t.Name] = &entry{state: statePending}
	a.order = append(a.order, t.Name)

	a.logger.Debug("analysing type",
		slog.String("type", t.Name),
		slog.String("kind", string(t.Kind)),
		slog.Bool("deep", deep))

	doc := docblock.Parse(t.Doc)
	b := &memberBuilder{a: a, owner: t.Name, deep: deep}

	members := make([]*MemberDescriptor, 0, len(t.Properties)+len(t.Methods))

	for _, line := range doc.Tags("property") {
		m, err := b.fromAnnotation(line, KindProperty, "")
		if err != nil {
			return fmt.Errorf("analyse %s: %w", t.Name, err)
		}
		if m != nil {
			members = append(members, m)
		}
	}

	for _, p := range t.Properties {
		m, err := b.fromProperty(p)
		if err != nil {
			return fmt.Errorf("analyse %s: %w", t.Name, err)
		}
		members = append(members, m)
	}

	for _, method := range t.Methods {
		m, err := b.fromMethod(method)
		if err != nil {
			return fmt.Errorf("analyse %s: %w", t.Name, err)
		}
		if m != nil {
			members = append(members, m)
		}
	}

	a.registry[t.Name] = &entry{
		state: stateResolved,
		desc: &TypeDescriptor{
			Name:    t.Name,
			Summary: doc.Comment(),
			Link:    doc.Link(),
			Members: members,
		},
	}

	a.logger.Debug("resolved type",
		slog.String("type", t.Name),
		slog.Int("members", len(members)))

	return nil
}

// reportUnsupported records an error diagnostic for a type the source
// cannot describe, with similar known names when the source lists them.
func (a *Analyzer) reportUnsupported(unsupported *UnsupportedTypeError, err error) {
	diag := diagnostic.Diagnostic{
		Severity: diagnostic.DiagnosticError,
		Code:     CodeUnsupportedType,
		Message:  err.Error(),
		TypeName: unsupported.Name,
	}

	if lister, ok := a.src.(Lister); ok {
		diag.Suggestions = match.Suggest(unsupported.Name, lister.Names(), match.DefaultLimit)
	}

	a.diags.Add(diag)
}

// skipAnnotation records a member annotation that does not follow the grammar.
func (a *Analyzer) skipAnnotation(owner, member, line string) {
	a.diags.AddInfo(CodeMalformedAnnotation, fmt.Sprintf("skipped annotation %q", line), owner, member)
	a.logger.Debug("skipping malformed annotation",
		slog.String("type", owner),
		slog.String("member", member),
		slog.String("line", line))
}

// Types returns all resolved descriptors by canonical name.
// Entries still pending after an aborted crawl are not included.
func (a *Analyzer) Types() map[string]*TypeDescriptor {
	types := make(map[string]*TypeDescriptor, len(a.registry))
	for name, e := range a.registry {
		if e.state == stateResolved {
			types[name] = e.desc
		}
	}

	return types
}

// Descriptors returns all resolved descriptors in discovery order.
func (a *Analyzer) Descriptors() []*TypeDescriptor {
	descs := make([]*TypeDescriptor, 0, len(a.order))
	for _, name := range a.order {
		if e := a.registry[name]; e.state == stateResolved {
			descs = append(descs, e.desc)
		}
	}

	return descs
}

// Type returns the resolved descriptor for name, accepting any spelling
// the source understands.
func (a *Analyzer) Type(name string) (*TypeDescriptor, bool) {
	e, ok := a.registry[a.canonical(name)]
	if !ok || e.state != stateResolved {
		return nil, false
	}

	return e.desc, true
}

// Pending returns the names whose analysis started but never completed.
func (a *Analyzer) Pending() []string {
	var pending []string
	for _, name := range a.order {
		if a.registry[name].state == statePending {
			pending = append(pending, name)
		}
	}

	return pending
}

// Diagnostics returns the findings collected so far, including a warning
// for every type left pending.
func (a *Analyzer) Diagnostics() diagnostic.Diagnostics {
	var diags diagnostic.Diagnostics
	diags.Merge(a.diags)

	for _, name := range a.Pending() {
		diags.AddWarning(CodePendingType, "analysis did not complete", name, "")
	}

	return diags
}
