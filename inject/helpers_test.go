package inject

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

//
// -----------------------------------------------------------------------------
// Shared fixtures
// -----------------------------------------------------------------------------

const testModule = "example.com/app"

var testMarkers = NewMarkerSet(testModule)

// fakeResolver resolves annotations by their raw text.
type fakeResolver map[string]QualifiedName

func (f fakeResolver) Resolve(a Annotation) (QualifiedName, bool) {
	q, ok := f[a.Raw]
	return q, ok
}

// markerResolver knows both markers plus an unrelated annotation.
func markerResolver() fakeResolver {
	return fakeResolver{
		"@autoinject.AutoInjection": testMarkers.Type,
		"@autoinject.AutoInject":    testMarkers.Member,
		"@other.Thing":              {Namespace: "example.com/other", Name: "Thing"},
	}
}

func ann(raw string) Annotation {
	a, ok := ParseAnnotation(raw)
	if !ok {
		panic("not an annotation: " + raw)
	}
	return a
}

func typeMarker() Annotation   { return ann("@autoinject.AutoInjection") }
func memberMarker() Annotation { return ann("@autoinject.AutoInject") }

func field(name, expr string, anns ...Annotation) Member {
	return Member{Name: name, Kind: MemberField, Type: TypeRef{Expr: expr}, Annotations: anns}
}

// writeSource writes a Go file under dir and returns its path.
func writeSource(t *testing.T, dir, name, content string) string {
	t.Helper()
	p := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(p, []byte(content), 0o644))
	return p
}

// shopSource exercises every front-end shape in one file.
const shopSource = `package shop

import (
	"database/sql"
	lg "log/slog"

	_ "example.com/app/internal/autoinject"
)

// Store persists orders.
type Store interface{ Save() error }

type Base struct{}

// Checkout wires the purchase flow.
//
// @autoinject.AutoInjection
type Checkout struct {
	// @autoinject.AutoInject
	Store Store
	DB    *sql.DB // @autoinject.AutoInject

	// @autoinject.AutoInject
	Log, Audit *lg.Logger

	_ struct{} // @autoinject.AutoInject

	// @autoinject.AutoInject
	*Base

	cache map[string][]Store
}

// @autoinject.AutoInjection
type Alias = struct {
	// @autoinject.AutoInject
	DB *sql.DB
}

// @autoinject.AutoInjection
type Box[T any] struct {
	// @autoinject.AutoInject
	Item T
}

// @missing.AutoInjection
type Unresolved struct {
	// @autoinject.AutoInject
	DB *sql.DB
}

func build() {
	// @autoinject.AutoInjection
	type local struct {
		// @autoinject.AutoInject
		DB *sql.DB
	}
	_ = local{}
}
`

func parseShop(t *testing.T) *ParsedPackage {
	t.Helper()
	dir := t.TempDir()
	writeSource(t, dir, "shop.go", shopSource)
	p, err := ParseDir(dir, testModule+"/shop")
	require.NoError(t, err)
	return p
}

func declByName(t *testing.T, decls []TypeDecl, name string) TypeDecl {
	t.Helper()
	for _, d := range decls {
		if d.Name == name {
			return d
		}
	}
	require.Failf(t, "decl not found", "no type %q", name)
	return TypeDecl{}
}
