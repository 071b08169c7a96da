package inject

import (
	"go/ast"
	"path"
	"regexp"
	"sort"
	"strconv"
	"strings"
)

// Resolver maps an annotation to the qualified name it refers to.
// ok is false when the reference cannot be resolved or is ambiguous.
type Resolver interface {
	Resolve(a Annotation) (name QualifiedName, ok bool)
}

// ImportResolver resolves annotations through the imports of the file they appear in.
type ImportResolver struct {
	files map[string]*importTable
}

// NewImportResolver returns an empty resolver.
func NewImportResolver() *ImportResolver {
	return &ImportResolver{files: map[string]*importTable{}}
}

// AddFile registers the import table of a parsed file declared in package pkgPath.
// Annotations are matched to the table by their Location.File.
func (r *ImportResolver) AddFile(fileName, pkgPath string, imports []*ast.ImportSpec) {
	r.files[fileName] = newImportTable(pkgPath, imports)
}

// Resolve implements Resolver.
func (r *ImportResolver) Resolve(a Annotation) (QualifiedName, bool) {
	if a.Name == "" {
		return QualifiedName{}, false
	}
	table, ok := r.files[a.Location.File]
	if !ok {
		return QualifiedName{}, false
	}

	if a.Qualifier == "" {
		// a dot import could provide the name as well
		if table.dot {
			return QualifiedName{}, false
		}
		return QualifiedName{Namespace: table.pkgPath, Name: a.Name}, true
	}

	paths := table.lookup(a.Qualifier, true)
	if len(paths) != 1 {
		return QualifiedName{}, false
	}
	return QualifiedName{Namespace: paths[0], Name: a.Name}, true
}

// importTable indexes the imports of one file by the identifier they are known under.
type importTable struct {
	pkgPath string
	// names holds imports usable as qualifiers in code.
	names map[string][]string
	// blank holds blank imports under their assumed package name; they only
	// take part in annotation resolution.
	blank map[string][]string
	dot   bool
}

func newImportTable(pkgPath string, imports []*ast.ImportSpec) *importTable {
	t := &importTable{
		pkgPath: pkgPath,
		names:   map[string][]string{},
		blank:   map[string][]string{},
	}
	for _, spec := range imports {
		importPath, err := strconv.Unquote(spec.Path.Value)
		if err != nil {
			continue
		}
		alias := ""
		if spec.Name != nil {
			alias = spec.Name.Name
		}
		switch alias {
		case ".":
			t.dot = true
		case "_":
			t.add(t.blank, assumedPackageName(importPath), importPath)
		case "":
			t.add(t.names, assumedPackageName(importPath), importPath)
		default:
			t.add(t.names, alias, importPath)
		}
	}
	return t
}

func (t *importTable) add(m map[string][]string, name, importPath string) {
	for _, existing := range m[name] {
		if existing == importPath {
			return
		}
	}
	m[name] = append(m[name], importPath)
}

// lookup returns the import paths known under name, sorted.
func (t *importTable) lookup(name string, includeBlank bool) []string {
	out := append([]string(nil), t.names[name]...)
	if includeBlank {
		for _, p := range t.blank[name] {
			if !contains(out, p) {
				out = append(out, p)
			}
		}
	}
	sort.Strings(out)
	return out
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}

var (
	versionSuffix = regexp.MustCompile(`^v[0-9]+$`)
	notIdentChar  = regexp.MustCompile(`[^A-Za-z0-9_]`)
)

// assumedPackageName guesses the package name of an import path the way
// goimports does: last element, without a /vN major suffix, a go- prefix or a -go suffix,
// cut at the first character that cannot appear in an identifier.
func assumedPackageName(importPath string) string {
	importPath = strings.TrimSpace(importPath)
	base := path.Base(importPath)
	if versionSuffix.MatchString(base) {
		if dir := path.Dir(importPath); dir != "." && dir != "/" {
			base = path.Base(dir)
		}
	}
	base = strings.TrimPrefix(base, "go-")
	base = strings.TrimSuffix(base, "-go")
	if loc := notIdentChar.FindStringIndex(base); loc != nil {
		base = base[:loc[0]]
	}
	return base
}
