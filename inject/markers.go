package inject

import (
	"path"
	"strings"
	"text/template"
)

const (
	// MarkerPackageDir is the module-relative directory of the generated marker package.
	MarkerPackageDir = "internal/autoinject"

	// TypeMarkerName marks a struct type that receives a generated constructor.
	TypeMarkerName = "AutoInjection"

	// MemberMarkerName marks a struct field that becomes a constructor parameter.
	MemberMarkerName = "AutoInject"

	// MarkersKey is the fixed output key of the marker package file.
	MarkersKey = "markers.g"
)

// QualifiedName identifies a declaration by the import path of its package and its name.
type QualifiedName struct {
	Namespace string
	Name      string
}

// String renders the name as namespace.Name, or just Name when the namespace is empty.
func (q QualifiedName) String() string {
	if q.Namespace == "" {
		return q.Name
	}
	return q.Namespace + "." + q.Name
}

// IsZero reports whether q carries no name.
func (q QualifiedName) IsZero() bool { return q.Name == "" }

// MarkerSet holds the two marker identities used by a run.
// It is derived once from the module path and never changes afterwards.
type MarkerSet struct {
	Type   QualifiedName
	Member QualifiedName
}

// NewMarkerSet returns the marker identities for the module with the given path.
func NewMarkerSet(modulePath string) MarkerSet {
	ns := strings.TrimSuffix(modulePath, "/") + "/" + MarkerPackageDir
	return MarkerSet{
		Type:   QualifiedName{Namespace: ns, Name: TypeMarkerName},
		Member: QualifiedName{Namespace: ns, Name: MemberMarkerName},
	}
}

// PackageName returns the Go package name of the marker package.
func (m MarkerSet) PackageName() string { return path.Base(m.Type.Namespace) }

var markersTpl = template.Must(template.New("markers").Parse(`// Code generated by autoinject. DO NOT EDIT.

// Package {{.Package}} declares the markers recognized by the autoinject generator.
//
// The markers are referenced from comments only, so import the package blank:
//
//	import _ "{{.Path}}"
package {{.Package}}

// {{.Type}} marks a struct type that receives a generated constructor.
//
// Target: type. Usage: // @{{.Package}}.{{.Type}}
type {{.Type}} struct{}

// {{.Member}} marks a struct field that becomes a constructor parameter.
//
// Target: field. Usage: // @{{.Package}}.{{.Member}}
type {{.Member}} struct{}
`))

// MarkersFragment renders the source of the marker package for m.
func MarkersFragment(m MarkerSet) string {
	var sb strings.Builder
	data := map[string]string{
		"Package": m.PackageName(),
		"Path":    m.Type.Namespace,
		"Type":    m.Type.Name,
		"Member":  m.Member.Name,
	}
	if err := markersTpl.Execute(&sb, data); err != nil {
		// the template is static and the data is plain strings
		panic(err)
	}
	return sb.String()
}
