package inject

import (
	"go/ast"
	"go/parser"
	"go/token"
	"go/types"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var nsPackage = Package{Path: "example.com/app/ns", Name: "ns", Dir: "/src/ns"}

func member(name, expr string, imports ...Import) ResolvedMember {
	return ResolvedMember{Name: name, Type: TypeRef{Expr: expr, Imports: imports}}
}

//
// -----------------------------------------------------------------------------
// ParamName / ConstructorName
// -----------------------------------------------------------------------------

// TestParamName verifies only the first character is lowercased.
func TestParamName(t *testing.T) {
	t.Parallel()

	testCases := map[string]string{
		"Bar":         "bar",
		"bar":         "bar",
		"SomeService": "someService",
		"DB":          "dB",
		"HTTPClient":  "hTTPClient",
		"X":           "x",
		"Émile":       "émile",
		"_hidden":     "_hidden",
		"":            "",
	}

	for in, want := range testCases {
		assert.Equal(t, want, ParamName(in), in)
	}
}

// TestConstructorName verifies exported and unexported constructor names.
func TestConstructorName(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "NewFoo", ConstructorName("Foo"))
	assert.Equal(t, "newFoo", ConstructorName("foo"))
	assert.Equal(t, "newLocal", ConstructorName("local"))
}

//
// -----------------------------------------------------------------------------
// Synthesize
// -----------------------------------------------------------------------------

// TestSynthesize_TwoMembers verifies the exact output for a type with two marked members.
func TestSynthesize_TwoMembers(t *testing.T) {
	t.Parallel()

	got := Synthesize(nsPackage, "Foo", []ResolvedMember{
		member("Bar", "ServiceA"),
		member("Baz", "ServiceB"),
	})

	want := `// Code generated by autoinject. DO NOT EDIT.

package ns

// NewFoo returns a new Foo with its injected members assigned.
func NewFoo(bar ServiceA, baz ServiceB) *Foo {
	f := &Foo{}
	f.Bar = bar
	f.Baz = baz
	return f
}
`
	assert.Equal(t, want, got)
}

// TestSynthesize_Imports verifies imports are merged, de-duplicated and sorted by path.
func TestSynthesize_Imports(t *testing.T) {
	t.Parallel()

	got := Synthesize(nsPackage, "Repo", []ResolvedMember{
		member("Log", "*slog.Logger", Import{Path: "log/slog"}),
		member("Cache", "*rc.Client", Import{Name: "rc", Path: "github.com/redis/go-redis/v9"}),
		member("DB", "*sql.DB", Import{Path: "database/sql"}),
		member("Replica", "*sql.DB", Import{Path: "database/sql"}),
	})

	want := `// Code generated by autoinject. DO NOT EDIT.

package ns

import (
	"database/sql"
	rc "github.com/redis/go-redis/v9"
	"log/slog"
)

// NewRepo returns a new Repo with its injected members assigned.
func NewRepo(log *slog.Logger, cache *rc.Client, dB *sql.DB, replica *sql.DB) *Repo {
	r := &Repo{}
	r.Log = log
	r.Cache = cache
	r.DB = dB
	r.Replica = replica
	return r
}
`
	assert.Equal(t, want, got)
}

// TestSynthesize_OrderPreserved verifies parameters and assignments follow member order.
func TestSynthesize_OrderPreserved(t *testing.T) {
	t.Parallel()

	got := Synthesize(nsPackage, "Svc", []ResolvedMember{
		member("Zeta", "Z"),
		member("Alpha", "A"),
		member("Mid", "M"),
	})

	assert.Contains(t, got, "func NewSvc(zeta Z, alpha A, mid M) *Svc {")
	assert.Contains(t, got, "\ts.Zeta = zeta\n\ts.Alpha = alpha\n\ts.Mid = mid\n")
}

// TestSynthesize_Deterministic verifies identical inputs give byte-identical output.
func TestSynthesize_Deterministic(t *testing.T) {
	t.Parallel()

	members := []ResolvedMember{
		member("B", "*b.B", Import{Path: "example.com/b"}),
		member("A", "*a.A", Import{Path: "example.com/a"}),
	}

	first := Synthesize(nsPackage, "T", members)
	for i := 0; i < 10; i++ {
		assert.Equal(t, first, Synthesize(nsPackage, "T", members))
	}
}

// TestSynthesize_NameCollisions verifies keywords, repeated parameter names and the
// local variable never clash.
func TestSynthesize_NameCollisions(t *testing.T) {
	t.Parallel()

	got := Synthesize(nsPackage, "Foo", []ResolvedMember{
		member("Type", "string"),
		member("F", "int"),
		member("Map", "map[string]int"),
		member("Item", "int"),
		member("item", "int"),
	})

	assert.Contains(t, got, "func NewFoo(type_ string, f int, map_ map[string]int, item int, item_ int) *Foo {")
	assert.Contains(t, got, "\tf_ := &Foo{}\n")
	assert.Contains(t, got, "\tf_.Type = type_\n")
	assert.Contains(t, got, "\tf_.F = f\n")
	assert.Contains(t, got, "\tf_.item = item_\n")
	assert.Contains(t, got, "\treturn f_\n")
}

// TestSynthesize_TypeNameNotShadowed verifies a parameter named like an unexported
// type is renamed, so the constructor type-checks with its declaration.
func TestSynthesize_TypeNameNotShadowed(t *testing.T) {
	t.Parallel()

	got := Synthesize(nsPackage, "handler", []ResolvedMember{member("Handler", "Handler")})
	assert.Contains(t, got, "func newHandler(handler_ Handler) *handler {")
	assert.Contains(t, got, "\th := &handler{}\n")

	fset := token.NewFileSet()
	decl, err := parser.ParseFile(fset, "handler.go", `package ns

type Handler interface{ Handle() }

type handler struct{ Handler Handler }
`, 0)
	require.NoError(t, err)
	gen, err := parser.ParseFile(fset, "handler.g.go", got, 0)
	require.NoError(t, err)

	_, err = (&types.Config{}).Check(nsPackage.Path, fset, []*ast.File{decl, gen}, nil)
	require.NoError(t, err)
}

// TestSynthesize_SingleLetterType verifies the local variable never shadows the type.
func TestSynthesize_SingleLetterType(t *testing.T) {
	t.Parallel()

	got := Synthesize(nsPackage, "t", []ResolvedMember{member("N", "int")})
	assert.Contains(t, got, "func newT(n int) *t {\n\tt_ := &t{}\n\tt_.N = n\n\treturn t_\n}\n")
}

// TestSynthesize_Unexported verifies unexported types get an unexported constructor.
func TestSynthesize_Unexported(t *testing.T) {
	t.Parallel()

	got := Synthesize(nsPackage, "local", []ResolvedMember{member("DB", "*sql.DB", Import{Path: "database/sql"})})
	assert.Contains(t, got, "func newLocal(dB *sql.DB) *local {")
	assert.Contains(t, got, "\tl := &local{}\n")
}

// TestSynthesize_Empty verifies an empty member list renders a zero-argument constructor.
func TestSynthesize_Empty(t *testing.T) {
	t.Parallel()

	var got string
	require.NotPanics(t, func() { got = Synthesize(nsPackage, "Foo", nil) })
	assert.Contains(t, got, "func NewFoo() *Foo {\n\tf := &Foo{}\n\treturn f\n}\n")
	assert.NotContains(t, got, "import")
}

// TestSynthesize_ValidGo verifies output parses as Go source.
func TestSynthesize_ValidGo(t *testing.T) {
	t.Parallel()

	got := Synthesize(nsPackage, "Repo", []ResolvedMember{
		member("DB", "*sql.DB", Import{Path: "database/sql"}),
		member("Handlers", "map[string]func(ctx context.Context) error", Import{Path: "context"}),
	})

	_, err := parser.ParseFile(token.NewFileSet(), "Repo.g.go", got, parser.AllErrors)
	require.NoError(t, err)
}

// TestSynthesize_InvalidTypeKeepsRawText verifies unformattable input is returned unformatted.
func TestSynthesize_InvalidTypeKeepsRawText(t *testing.T) {
	t.Parallel()

	got := Synthesize(nsPackage, "Foo", []ResolvedMember{member("Bad", "[[")})
	assert.Contains(t, got, "func NewFoo(bad [[) *Foo {")
}

//
// -----------------------------------------------------------------------------
// MarkersFragment
// -----------------------------------------------------------------------------

// TestNewMarkerSet verifies the marker identities derived from a module path.
func TestNewMarkerSet(t *testing.T) {
	t.Parallel()

	ms := NewMarkerSet("example.com/app/")
	assert.Equal(t, QualifiedName{"example.com/app/internal/autoinject", "AutoInjection"}, ms.Type)
	assert.Equal(t, QualifiedName{"example.com/app/internal/autoinject", "AutoInject"}, ms.Member)
	assert.Equal(t, "autoinject", ms.PackageName())
}

// TestMarkersFragment verifies the marker package source declares both markers.
func TestMarkersFragment(t *testing.T) {
	t.Parallel()

	src := MarkersFragment(testMarkers)

	f, err := parser.ParseFile(token.NewFileSet(), "markers.g.go", src, parser.ParseComments)
	require.NoError(t, err)
	assert.Equal(t, "autoinject", f.Name.Name)

	assert.Contains(t, src, "// Code generated by autoinject. DO NOT EDIT.")
	assert.Contains(t, src, "type AutoInjection struct{}")
	assert.Contains(t, src, "type AutoInject struct{}")
	assert.Contains(t, src, `import _ "example.com/app/internal/autoinject"`)
	assert.Equal(t, src, MarkersFragment(testMarkers))
}
