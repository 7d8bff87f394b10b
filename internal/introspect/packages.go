package introspect

import (
	"errors"
	"fmt"
	"go/ast"
	"go/token"
	"go/types"
	"sort"
	"strings"

	"golang.org/x/tools/go/packages"
)

// LoadMode specifies what information to load from packages.
const LoadMode = packages.NeedName |
	packages.NeedFiles |
	packages.NeedSyntax |
	packages.NeedTypes |
	packages.NeedTypesInfo |
	packages.NeedImports

// Packages is a host backed by Go packages: structs are classes,
// interfaces are interfaces, and doc comments come from the syntax trees.
type Packages struct {
	roots  []*types.Package          // packages matched by the load patterns
	byPath map[string]*types.Package // roots and everything they import
	docs   map[token.Pos]string      // doc text by declaring identifier position
	cache  map[string]*Type          // built descriptions by canonical name
}

// LoadPackages loads the packages matching patterns from the current directory.
// Patterns are standard Go package patterns (e.g., "./...", "typegraph/examples/geometry").
func LoadPackages(patterns ...string) (*Packages, error) {
	return LoadPackagesFrom("", patterns...)
}

// LoadPackagesFrom loads the packages matching patterns relative to dir.
func LoadPackagesFrom(dir string, patterns ...string) (*Packages, error) {
	cfg := &packages.Config{
		Mode: LoadMode,
		Dir:  dir,
	}

	pkgs, err := packages.Load(cfg, patterns...)
	if err != nil {
		return nil, fmt.Errorf("failed to load packages: %w", err)
	}

	// Check for package errors
	var errs []error
	for _, pkg := range pkgs {
		for _, e := range pkg.Errors {
			errs = append(errs, e)
		}
	}
	if len(errs) > 0 {
		return nil, fmt.Errorf("package errors: %w", errors.Join(errs...))
	}

	p := &Packages{
		byPath: make(map[string]*types.Package),
		docs:   make(map[token.Pos]string),
		cache:  make(map[string]*Type),
	}

	for _, pkg := range pkgs {
		p.roots = append(p.roots, pkg.Types)
		p.addPackage(pkg.Types)

		for _, file := range pkg.Syntax {
			p.indexDocs(file)
		}
	}

	return p, nil
}

// addPackage registers pkg and, transitively, its imports.
func (p *Packages) addPackage(pkg *types.Package) {
	if pkg == nil {
		return
	}

	if _, seen := p.byPath[pkg.Path()]; seen {
		return
	}

	p.byPath[pkg.Path()] = pkg

	for _, imp := range pkg.Imports() {
		p.addPackage(imp)
	}
}

// indexDocs records the doc comment of every type, field and method
// declared in file, keyed by the position of the declaring identifier.
// go/types objects report the same position, which makes promoted methods
// and fields find their docs without knowing where they were declared.
func (p *Packages) indexDocs(file *ast.File) {
	for _, decl := range file.Decls {
		switch d := decl.(type) {
		case *ast.GenDecl:
			if d.Tok != token.TYPE {
				continue
			}

			for _, spec := range d.Specs {
				s, ok := spec.(*ast.TypeSpec)
				if !ok {
					continue
				}

				doc := s.Doc
				if doc == nil && len(d.Specs) == 1 {
					doc = d.Doc
				}
				p.setDoc(s.Name.Pos(), doc)

				switch tt := s.Type.(type) {
				case *ast.StructType:
					p.indexFields(tt.Fields)
				case *ast.InterfaceType:
					p.indexFields(tt.Methods)
				}
			}

		case *ast.FuncDecl:
			if d.Recv != nil {
				p.setDoc(d.Name.Pos(), d.Doc)
			}
		}
	}
}

func (p *Packages) indexFields(fields *ast.FieldList) {
	if fields == nil {
		return
	}

	for _, field := range fields.List {
		doc := field.Doc
		if doc == nil {
			doc = field.Comment
		}

		if len(field.Names) == 0 {
			if ident := embeddedIdent(field.Type); ident != nil {
				p.setDoc(ident.Pos(), doc)
			}

			continue
		}

		for _, name := range field.Names {
			p.setDoc(name.Pos(), doc)
		}
	}
}

func (p *Packages) setDoc(pos token.Pos, doc *ast.CommentGroup) {
	if doc == nil {
		return
	}

	if text := strings.TrimSpace(doc.Text()); text != "" {
		p.docs[pos] = text
	}
}

// embeddedIdent returns the identifier naming an embedded field.
func embeddedIdent(expr ast.Expr) *ast.Ident {
	switch e := expr.(type) {
	case *ast.Ident:
		return e
	case *ast.StarExpr:
		return embeddedIdent(e.X)
	case *ast.SelectorExpr:
		return e.Sel
	case *ast.IndexExpr:
		return embeddedIdent(e.X)
	case *ast.IndexListExpr:
		return embeddedIdent(e.X)
	default:
		return nil
	}
}

// Capabilities reports that Go always declares parameter and result types.
func (p *Packages) Capabilities() Capabilities {
	return Capabilities{ParamTypes: true, ReturnTypes: true}
}

// Lookup returns the struct or interface type with the given name.
// Accepted spellings are "import/path.Name", "pkgname.Name" and a bare
// "Name" when exactly one loaded root package declares it.
func (p *Packages) Lookup(name string) (*Type, bool) {
	named, ok := p.lookupNamed(name)
	if !ok || !isClassLike(named) {
		return nil, false
	}

	canonical := canonicalName(named)
	if t, ok := p.cache[canonical]; ok {
		return t, true
	}

	t := p.describe(named)
	p.cache[canonical] = t

	return t, true
}

// Canonical returns the canonical spelling of name: the qualified name for
// structs and interfaces, the rendering of the underlying type for other
// defined types (so "store.OrderStatus" becomes "string"), and name itself
// when it is unknown.
func (p *Packages) Canonical(name string) string {
	named, ok := p.lookupNamed(name)
	if !ok {
		return name
	}

	return p.render(named)
}

// Names returns the canonical names of the exported structs and interfaces
// declared by the root packages, sorted.
func (p *Packages) Names() []string {
	var names []string

	for _, pkg := range p.roots {
		scope := pkg.Scope()
		for _, name := range scope.Names() {
			obj, ok := scope.Lookup(name).(*types.TypeName)
			if !ok || !obj.Exported() {
				continue
			}

			if named, ok := types.Unalias(obj.Type()).(*types.Named); ok && isClassLike(named) {
				names = append(names, canonicalName(named))
			}
		}
	}

	sort.Strings(names)

	return names
}

func (p *Packages) lookupNamed(name string) (*types.Named, bool) {
	obj := p.lookupObject(name)
	if obj == nil {
		return nil, false
	}

	named, ok := types.Unalias(obj.Type()).(*types.Named)

	return named, ok
}

func (p *Packages) lookupObject(name string) *types.TypeName {
	if name == "" {
		return nil
	}

	if name == "error" {
		obj, _ := types.Universe.Lookup(name).(*types.TypeName)

		return obj
	}

	id := ParseTypeID(name)
	if id.PkgPath == "" {
		return p.lookupUnique(p.roots, id.Name)
	}

	if pkg, ok := p.byPath[id.PkgPath]; ok {
		obj, _ := pkg.Scope().Lookup(id.Name).(*types.TypeName)

		return obj
	}

	// "pkgname.Name": match on package name, roots first.
	var candidates []*types.Package
	for _, pkg := range p.roots {
		if pkg.Name() == id.PkgPath {
			candidates = append(candidates, pkg)
		}
	}
	if len(candidates) == 0 {
		for _, pkg := range p.byPath {
			if pkg.Name() == id.PkgPath {
				candidates = append(candidates, pkg)
			}
		}
	}

	return p.lookupUnique(candidates, id.Name)
}

// lookupUnique finds an exported type name declared by exactly one of pkgs.
func (p *Packages) lookupUnique(pkgs []*types.Package, name string) *types.TypeName {
	var found *types.TypeName

	for _, pkg := range pkgs {
		obj, ok := pkg.Scope().Lookup(name).(*types.TypeName)
		if !ok || !obj.Exported() {
			continue
		}

		if found != nil && found != obj {
			return nil
		}
		found = obj
	}

	return found
}

// describe builds the host description of a struct or interface type.
func (p *Packages) describe(named *types.Named) *Type {
	t := &Type{
		Name: canonicalName(named),
		Kind: KindClass,
		Doc:  p.docs[named.Obj().Pos()],
	}

	var recv types.Type = named

	switch ut := named.Underlying().(type) {
	case *types.Struct:
		recv = types.NewPointer(named)

		for i := range ut.NumFields() {
			field := ut.Field(i)

			// Only exported fields are public properties
			if !field.Exported() {
				continue
			}

			t.Properties = append(t.Properties, Property{
				Name: field.Name(),
				Doc:  p.docs[field.Pos()],
				Type: p.ref(field.Type()),
			})
		}

	case *types.Interface:
		t.Kind = KindInterface
	}

	methods := types.NewMethodSet(recv)
	for i := range methods.Len() {
		fn, ok := methods.At(i).Obj().(*types.Func)
		if !ok || !fn.Exported() {
			continue
		}

		t.Methods = append(t.Methods, p.describeMethod(fn))
	}

	return t
}

func (p *Packages) describeMethod(fn *types.Func) Method {
	sig := fn.Type().(*types.Signature)

	m := Method{
		Name: fn.Name(),
		Doc:  p.docs[fn.Pos()],
	}

	params := sig.Params()
	for i := range params.Len() {
		v := params.At(i)

		name := v.Name()
		if name == "" || name == "_" {
			name = fmt.Sprintf("arg%d", i)
		}

		m.Params = append(m.Params, Param{Name: name, Type: p.ref(v.Type())})
	}

	results := sig.Results()
	for i := range results.Len() {
		m.Results = append(m.Results, *p.ref(results.At(i).Type()))
	}

	return m
}

// ref converts a structural type into a TypeRef; pointers are nullable.
func (p *Packages) ref(t types.Type) *TypeRef {
	if ptr, ok := types.Unalias(t).(*types.Pointer); ok {
		return &TypeRef{Name: p.render(ptr.Elem()), Nullable: true}
	}

	return &TypeRef{Name: p.render(t)}
}

// render spells a structural type in the host vocabulary.
func (p *Packages) render(t types.Type) string {
	switch tt := types.Unalias(t).(type) {
	case *types.Named:
		if isClassLike(tt) {
			return canonicalName(tt)
		}

		return p.render(tt.Underlying())

	case *types.Basic:
		if tt.Kind() == types.UnsafePointer {
			return "uintptr"
		}

		return tt.Name()

	case *types.Pointer:
		return p.render(tt.Elem())

	case *types.Slice, *types.Array, *types.Map:
		return "array"

	case *types.Signature:
		return "callable"

	case *types.Chan:
		return "resource"

	case *types.Interface:
		if tt.Empty() {
			return "any"
		}

		return "object"

	case *types.Struct:
		return "object"

	default:
		// Type parameters and anything else carry no constraint
		return "mixed"
	}
}

func isClassLike(named *types.Named) bool {
	switch named.Underlying().(type) {
	case *types.Struct, *types.Interface:
		return true
	default:
		return false
	}
}

func canonicalName(named *types.Named) string {
	obj := named.Origin().Obj()
	if obj.Pkg() == nil {
		return obj.Name()
	}

	return TypeID{PkgPath: obj.Pkg().Path(), Name: obj.Name()}.String()
}
