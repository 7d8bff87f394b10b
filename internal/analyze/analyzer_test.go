package analyze

import (
	"errors"
	"testing"

	"github.com/davecgh/go-spew/spew"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"typegraph/internal/introspect"
)

func newManifest(t *testing.T, doc string) *introspect.Manifest {
	t.Helper()

	m, err := introspect.ParseManifest([]byte(doc))
	require.NoError(t, err)

	return m
}

const pointManifest = `
types:
  - name: Point
    aliases: [geo.Point]
    doc: |
      A location on a plane.
      @link https://example.com/point
    properties:
      - name: x
        doc: "@var int"
        type: float
      - name: "y"
        type: int
    methods:
      - name: __construct
        params:
          - name: x
            type: int
      - name: distanceTo
        doc: Distance between two points.
        params:
          - name: other
            type: Point
        results: [double]
`

func TestAnalyzer_PointEndToEnd(t *testing.T) {
	a := New(newManifest(t, pointManifest))
	require.NoError(t, a.Analyse("Point"))

	types := a.Types()
	require.Len(t, types, 1, spew.Sdump(types))

	point := types["Point"]
	require.NotNil(t, point)
	assert.Equal(t, "Point", point.Name)
	assert.Equal(t, "A location on a plane.", point.Summary)
	assert.Equal(t, "https://example.com/point", point.Link)
	require.Len(t, point.Members, 3)

	x := point.Members[0]
	assert.Equal(t, "x", x.Name)
	assert.Equal(t, []string{"integer"}, x.DeclaredTypes)
	assert.Equal(t, SourceAnnotation, x.Source)

	y := point.Members[1]
	assert.Equal(t, "y", y.Name)
	assert.Equal(t, []string{"integer"}, y.DeclaredTypes)
	assert.Equal(t, SourceStructural, y.Source)

	dist := point.Members[2]
	assert.Equal(t, "distanceTo", dist.Name)
	assert.Equal(t, KindMethod, dist.Kind)
	assert.Equal(t, []string{MethodType}, dist.DeclaredTypes)
	assert.Equal(t, "double", dist.ReturnType)
	assert.Contains(t, dist.Signature, "double")
	assert.Contains(t, dist.Signature, "distanceTo")
	assert.Contains(t, dist.Signature, "Point </span>$other")
	assert.Equal(t, dist.Signature+"Distance between two points.", dist.Summary)

	require.Len(t, dist.Params, 1)
	assert.Equal(t, "other", dist.Params[0].Name)
	assert.Equal(t, []string{"Point"}, dist.Params[0].DeclaredTypes)
}

func TestAnalyzer_Idempotent(t *testing.T) {
	a := New(newManifest(t, pointManifest))
	require.NoError(t, a.Analyse("Point"))
	first := a.Types()

	require.NoError(t, a.Analyse("Point"))
	second := a.Types()

	assert.Equal(t, first, second)
	assert.Same(t, first["Point"], second["Point"])
	assert.Len(t, a.Descriptors(), 1)
}

func TestAnalyzer_AliasesShareOneEntry(t *testing.T) {
	a := New(newManifest(t, pointManifest))
	require.NoError(t, a.Analyse("geo.Point", `\Point`, "Point"))

	assert.Len(t, a.Types(), 1)

	desc, ok := a.Type("geo.Point")
	require.True(t, ok)
	assert.Equal(t, "Point", desc.Name)
}

func TestAnalyzer_CycleTerminates(t *testing.T) {
	a := New(newManifest(t, `
types:
  - name: A
    properties:
      - name: b
        type: B
      - name: self
        type: "?A"
  - name: B
    properties:
      - name: a
        type: A
`))
	require.NoError(t, a.Analyse("A"))

	types := a.Types()
	require.Len(t, types, 2)
	assert.Equal(t, []string{"B"}, types["A"].Member("b").DeclaredTypes)
	assert.Equal(t, []string{"A", "null"}, types["A"].Member("self").DeclaredTypes)
	assert.Equal(t, []string{"A"}, types["B"].Member("a").DeclaredTypes)
	assert.Empty(t, a.Pending())

	names := make([]string, 0, 2)
	for _, d := range a.Descriptors() {
		names = append(names, d.Name)
	}
	assert.Equal(t, []string{"A", "B"}, names)
}

func TestAnalyzer_DocumentedTypeWins(t *testing.T) {
	a := New(newManifest(t, `
types:
  - name: Label
    properties:
      - name: text
        doc: |
          Display text.
          @var string
        type: "?int"
`))
	require.NoError(t, a.Analyse("Label"))

	text := a.Types()["Label"].Member("text")
	require.NotNil(t, text)
	assert.Equal(t, []string{"string"}, text.DeclaredTypes)
	assert.Equal(t, SourceAnnotation, text.Source)
	assert.Equal(t, "Display text.", text.Summary)
}

func TestAnalyzer_NullableStructuralType(t *testing.T) {
	a := New(newManifest(t, `
types:
  - name: Node
    properties:
      - name: next
        type: "?Node"
      - name: count
        type:
          name: int
          nullable: true
`))
	require.NoError(t, a.Analyse("Node"))

	node := a.Types()["Node"]
	assert.Equal(t, []string{"Node", "null"}, node.Member("next").DeclaredTypes)
	assert.Equal(t, []string{"integer", "null"}, node.Member("count").DeclaredTypes)
}

const shallowManifest = `
types:
  - name: Order
    doc: "@property Customer $customer who placed it"
    properties:
      - name: items
        type: Item
  - name: Customer
  - name: Item
    properties:
      - name: product
        type: Product
  - name: Product
`

func TestAnalyzer_ShallowVersusDeep(t *testing.T) {
	shallow := New(newManifest(t, shallowManifest))
	require.NoError(t, shallow.AnalyseShallow("Order"))

	types := shallow.Types()
	require.Len(t, types, 1)
	assert.Equal(t, []string{"Customer"}, types["Order"].Member("customer").DeclaredTypes)
	assert.Equal(t, []string{"Item"}, types["Order"].Member("items").DeclaredTypes)

	deep := New(newManifest(t, shallowManifest))
	require.NoError(t, deep.Analyse("Order"))

	types = deep.Types()
	assert.Len(t, types, 4)
	assert.Contains(t, types, "Customer")
	assert.Contains(t, types, "Item")
	assert.Contains(t, types, "Product")
}

func TestAnalyzer_ShallowDoesNotDeepenMidCrawl(t *testing.T) {
	a := New(newManifest(t, `
types:
  - name: Root
    methods:
      - name: visit
        doc: "@param Child $child"
  - name: Child
    properties:
      - name: grandchild
        type: Grandchild
  - name: Grandchild
`))
	require.NoError(t, a.AnalyseShallow("Root"))

	assert.Len(t, a.Types(), 1)
}

func TestAnalyzer_MagicMethodsExcluded(t *testing.T) {
	a := New(newManifest(t, pointManifest))
	require.NoError(t, a.Analyse("Point"))

	for _, m := range a.Types()["Point"].Members {
		assert.NotEqual(t, "__construct", m.Name)
	}
}

func TestAnalyzer_UnsupportedType(t *testing.T) {
	a := New(newManifest(t, pointManifest))

	err := a.Analyse("not_a_real_type_or_class")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrUnsupportedType)

	var unsupported *UnsupportedTypeError
	require.True(t, errors.As(err, &unsupported))
	assert.Equal(t, "not_a_real_type_or_class", unsupported.Name)

	assert.Empty(t, a.Types())
	assert.Empty(t, a.Pending())

	diags := a.Diagnostics()
	require.Len(t, diags.Errors, 1)
	assert.Equal(t, CodeUnsupportedType, diags.Errors[0].Code)
}

func TestAnalyzer_UnsupportedTypeSuggestions(t *testing.T) {
	a := New(newManifest(t, pointManifest))

	err := a.Analyse("Pointt")
	require.ErrorIs(t, err, ErrUnsupportedType)

	diags := a.Diagnostics()
	require.Len(t, diags.Errors, 1)
	assert.Equal(t, []string{"Point"}, diags.Errors[0].Suggestions)
	assert.Contains(t, diags.Errors[0].String(), "did you mean Point?")
}

func TestAnalyzer_UnsupportedNestedTypeLeavesPending(t *testing.T) {
	a := New(newManifest(t, `
types:
  - name: Broken
    properties:
      - name: ghost
        type: Ghost
`))

	err := a.Analyse("Broken")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrUnsupportedType)
	assert.Contains(t, err.Error(), "Ghost")

	assert.Empty(t, a.Types())
	assert.Empty(t, a.Descriptors())
	assert.Equal(t, []string{"Broken"}, a.Pending())

	_, ok := a.Type("Broken")
	assert.False(t, ok)

	diags := a.Diagnostics()
	require.Len(t, diags.Warnings, 1)
	assert.Equal(t, CodePendingType, diags.Warnings[0].Code)
	assert.Equal(t, "Broken", diags.Warnings[0].TypeName)
}

func TestAnalyzer_ShallowIgnoresUnknownMemberTypes(t *testing.T) {
	a := New(newManifest(t, `
types:
  - name: Broken
    properties:
      - name: ghost
        type: Ghost
`))
	require.NoError(t, a.AnalyseShallow("Broken"))

	assert.Equal(t, []string{"Ghost"}, a.Types()["Broken"].Member("ghost").DeclaredTypes)
}

func TestAnalyzer_PrimitivesAndOpaqueKinds(t *testing.T) {
	a := New(newManifest(t, pointManifest))

	require.NoError(t, a.Analyse("int", "float", "mixed", "resource", "callable", "null", "void", "", "string[]", "object"))
	assert.Empty(t, a.Types())
}

func TestAnalyzer_DocumentedMethod(t *testing.T) {
	a := New(newManifest(t, `
types:
  - name: Canvas
    methods:
      - name: draw
        doc: |
          Draws a shape.
          @param Shape|null $shape what to draw
          @param broken
          @param int $times
          @return bool whether anything changed
        params:
          - name: ignored
            type: string
        results: [string]
      - name: clear
        doc: |
          @return Canvas
  - name: Shape
    kind: interface
`))
	require.NoError(t, a.Analyse("Canvas"))
	assert.Contains(t, a.Types(), "Shape")

	draw := a.Types()["Canvas"].Member("draw")
	require.NotNil(t, draw)
	assert.Equal(t, SourceAnnotation, draw.Source)
	assert.Equal(t, "boolean", draw.ReturnType)
	require.Len(t, draw.Params, 3)
	assert.Equal(t, []string{"Shape", "null"}, draw.Params[0].DeclaredTypes)
	assert.Equal(t, "what to draw", draw.Params[0].Summary)
	assert.Nil(t, draw.Params[1])
	assert.Equal(t, "times", draw.Params[2].Name)

	assert.Contains(t, draw.Signature, `<span class="arg hint" title="what to draw">`)
	assert.Contains(t, draw.Signature, "???")
	assert.Contains(t, draw.Summary, "Draws a shape.")

	// @return alone does not switch the method to documentation
	clearMethod := a.Types()["Canvas"].Member("clear")
	require.NotNil(t, clearMethod)
	assert.Equal(t, SourceStructural, clearMethod.Source)
	assert.Equal(t, "void", clearMethod.ReturnType)

	diags := a.Diagnostics()
	require.Len(t, diags.Infos, 1)
	assert.Equal(t, CodeMalformedAnnotation, diags.Infos[0].Code)
	assert.Equal(t, "Canvas", diags.Infos[0].TypeName)
	assert.Equal(t, "draw", diags.Infos[0].Member)
}

func TestAnalyzer_DocumentedMethodDefaultsToVoid(t *testing.T) {
	a := New(newManifest(t, `
types:
  - name: Job
    methods:
      - name: run
        doc: "@param int $n"
        results: [string]
`))
	require.NoError(t, a.Analyse("Job"))

	assert.Equal(t, "void", a.Types()["Job"].Member("run").ReturnType)
}

func TestAnalyzer_PropertyAnnotations(t *testing.T) {
	a := New(newManifest(t, `
types:
  - name: Config
    doc: |
      Runtime configuration.
      @property string $name service name
      @property not a member line
      @property int|integer|mixed $port
    properties:
      - name: debug
        type: bool
`))
	require.NoError(t, a.Analyse("Config"))

	cfg := a.Types()["Config"]
	require.Len(t, cfg.Members, 3)
	assert.Equal(t, "name", cfg.Members[0].Name)
	assert.Equal(t, "service name", cfg.Members[0].Summary)
	assert.Equal(t, "port", cfg.Members[1].Name)
	assert.Equal(t, []string{"integer"}, cfg.Members[1].DeclaredTypes)
	assert.Equal(t, "debug", cfg.Members[2].Name)
	assert.Equal(t, []string{"boolean"}, cfg.Members[2].DeclaredTypes)
	assert.Equal(t, "Runtime configuration.", cfg.Summary)
}

func TestAnalyzer_CapabilitiesOff(t *testing.T) {
	a := New(newManifest(t, `
capabilities:
  param_types: false
  return_types: false
types:
  - name: Legacy
    methods:
      - name: run
        params:
          - name: input
            type: Input
        results: [string]
`))
	require.NoError(t, a.Analyse("Legacy"))

	run := a.Types()["Legacy"].Member("run")
	require.NotNil(t, run)
	assert.Empty(t, run.ReturnType)
	require.Len(t, run.Params, 1)
	assert.False(t, run.Params[0].HasTypes())
	assert.Len(t, a.Types(), 1)
}

func TestAnalyzer_MultipleResults(t *testing.T) {
	a := New(newManifest(t, `
types:
  - name: Reader
    kind: interface
    methods:
      - name: read
        results: ["?Reader", bool]
`))
	require.NoError(t, a.Analyse("Reader"))

	assert.Equal(t, "(Reader|null, boolean)", a.Types()["Reader"].Member("read").ReturnType)
}
