package inject

import (
	"bytes"
	"errors"
	"fmt"
	"go/ast"
	"go/build"
	"go/parser"
	"go/printer"
	"go/token"
	"go/types"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
)

// GeneratedFileSuffix is the file name suffix of every generated output.
const GeneratedFileSuffix = ".g.go"

// ErrNoGoFiles is returned by ParseDir when a directory has no eligible Go files.
var ErrNoGoFiles = errors.New("inject: no Go source files")

// ParsedPackage is the result of parsing one package directory.
type ParsedPackage struct {
	Package  Package
	Decls    []TypeDecl
	Resolver *ImportResolver
}

// IsSourceFile reports whether a file name takes part in scanning.
// Test files and generated outputs are skipped.
func IsSourceFile(name string) bool {
	return strings.HasSuffix(name, ".go") &&
		!strings.HasSuffix(name, "_test.go") &&
		!strings.HasSuffix(name, GeneratedFileSuffix)
}

// buildContext decides which files belong to the build, by build constraints
// and GOOS/GOARCH file name suffixes.
var buildContext = &build.Default

// SourceFiles returns, sorted, the names of the files in dir that take part in
// scanning: IsSourceFile names that the current build would compile.
// A file whose header cannot be read is kept, so parsing reports the problem.
func SourceFiles(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}

	var names []string
	for _, e := range entries {
		if e.IsDir() || !IsSourceFile(e.Name()) {
			continue
		}
		if ok, err := buildContext.MatchFile(dir, e.Name()); err == nil && !ok {
			continue
		}
		names = append(names, e.Name())
	}
	sort.Strings(names)
	return names, nil
}

// ParseDir parses the Go sources of dir, whose import path is pkgPath.
// Files are visited in name order, so the result is stable across runs.
func ParseDir(dir, pkgPath string) (*ParsedPackage, error) {
	names, err := SourceFiles(dir)
	if err != nil {
		return nil, err
	}
	if len(names) == 0 {
		return nil, fmt.Errorf("%w in %s", ErrNoGoFiles, dir)
	}

	fset := token.NewFileSet()
	out := &ParsedPackage{
		Package:  Package{Path: pkgPath, Dir: dir},
		Resolver: NewImportResolver(),
	}

	for _, name := range names {
		fileName := filepath.Join(dir, name)
		file, err := parser.ParseFile(fset, fileName, nil, parser.ParseComments)
		if err != nil {
			return nil, fmt.Errorf("parsing %s: %w", fileName, err)
		}

		switch out.Package.Name {
		case "":
			out.Package.Name = file.Name.Name
		case file.Name.Name:
		default:
			return nil, fmt.Errorf("multiple packages in %s: %s and %s", dir, out.Package.Name, file.Name.Name)
		}

		out.Resolver.AddFile(fileName, pkgPath, file.Imports)
		fp := &fileParser{
			fset:  fset,
			table: out.Resolver.files[fileName],
		}
		out.Decls = append(out.Decls, fp.typeDecls(file)...)
	}

	return out, nil
}

type fileParser struct {
	fset  *token.FileSet
	table *importTable
}

// typeDecls returns the package-level type declarations of file followed by
// the ones declared inside function bodies.
func (p *fileParser) typeDecls(file *ast.File) []TypeDecl {
	var decls, local []TypeDecl

	for _, d := range file.Decls {
		switch d := d.(type) {
		case *ast.GenDecl:
			decls = append(decls, p.genDecl(d, "")...)
		case *ast.FuncDecl:
			if d.Body == nil {
				continue
			}
			fn := d.Name.Name
			ast.Inspect(d.Body, func(n ast.Node) bool {
				if stmt, ok := n.(*ast.DeclStmt); ok {
					if gd, ok := stmt.Decl.(*ast.GenDecl); ok {
						local = append(local, p.genDecl(gd, fn)...)
					}
				}
				return true
			})
		}
	}
	return append(decls, local...)
}

// genDecl converts the type specs of a declaration. fn is the enclosing function
// for local declarations and empty at package level.
func (p *fileParser) genDecl(gd *ast.GenDecl, fn string) []TypeDecl {
	if gd.Tok != token.TYPE {
		return nil
	}

	var out []TypeDecl
	for _, spec := range gd.Specs {
		ts, ok := spec.(*ast.TypeSpec)
		if !ok {
			continue
		}

		groups := []*ast.CommentGroup{ts.Doc, ts.Comment}
		if !gd.Lparen.IsValid() {
			groups = append([]*ast.CommentGroup{gd.Doc}, groups...)
		}

		decl := TypeDecl{
			Name:        ts.Name.Name,
			Annotations: annotationsOf(p.fset, groups...),
			Location:    locationOf(p.fset, ts.Name.Pos()),
		}
		decl.Extensible, decl.Reason = extensibility(ts, fn)
		if st, ok := ts.Type.(*ast.StructType); ok {
			decl.Members = p.members(st)
		}
		out = append(out, decl)
	}
	return out
}

func extensibility(ts *ast.TypeSpec, fn string) (bool, string) {
	switch {
	case fn != "":
		return false, "declared inside function " + fn
	case ts.Assign.IsValid():
		return false, "declared as an alias"
	case ts.TypeParams != nil && len(ts.TypeParams.List) > 0:
		return false, "declares type parameters"
	default:
		return true, ""
	}
}

func (p *fileParser) members(st *ast.StructType) []Member {
	var out []Member
	for _, field := range st.Fields.List {
		anns := annotationsOf(p.fset, field.Doc, field.Comment)
		ref := p.typeRef(field.Type)

		if len(field.Names) == 0 {
			out = append(out, Member{
				Name:        embeddedName(field.Type),
				Kind:        MemberEmbedded,
				Type:        ref,
				Annotations: anns,
				Location:    locationOf(p.fset, field.Type.Pos()),
			})
			continue
		}

		for _, ident := range field.Names {
			kind := MemberField
			if ident.Name == "_" {
				kind = MemberBlank
			}
			out = append(out, Member{
				Name:        ident.Name,
				Kind:        kind,
				Type:        ref,
				Annotations: anns,
				Location:    locationOf(p.fset, ident.Pos()),
			})
		}
	}
	return out
}

func embeddedName(expr ast.Expr) string {
	switch e := expr.(type) {
	case *ast.Ident:
		return e.Name
	case *ast.StarExpr:
		return embeddedName(e.X)
	case *ast.SelectorExpr:
		return e.Sel.Name
	case *ast.IndexExpr:
		return embeddedName(e.X)
	case *ast.IndexListExpr:
		return embeddedName(e.X)
	default:
		return ""
	}
}

// typeRef describes a field type expression in the context of the current file.
func (p *fileParser) typeRef(expr ast.Expr) TypeRef {
	var buf bytes.Buffer
	if err := printer.Fprint(&buf, p.fset, expr); err != nil {
		buf.Reset()
		buf.WriteString(types.ExprString(expr))
	}

	ref := TypeRef{
		Expr:      buf.String(),
		Qualified: p.qualified(expr),
	}

	seen := map[Import]bool{}
	ast.Inspect(expr, func(n ast.Node) bool {
		sel, ok := n.(*ast.SelectorExpr)
		if !ok {
			return true
		}
		x, ok := sel.X.(*ast.Ident)
		if !ok {
			return true
		}
		paths := p.table.lookup(x.Name, false)
		if len(paths) != 1 {
			if !contains(ref.Unqualified, x.Name) {
				ref.Unqualified = append(ref.Unqualified, x.Name)
			}
			return false
		}
		imp := Import{Path: paths[0]}
		if assumedPackageName(imp.Path) != x.Name {
			imp.Name = x.Name
		}
		if !seen[imp] {
			seen[imp] = true
			ref.Imports = append(ref.Imports, imp)
		}
		return false
	})
	sortImports(ref.Imports)
	sort.Strings(ref.Unqualified)
	return ref
}

// qualified renders expr with package qualifiers replaced by import paths.
func (p *fileParser) qualified(expr ast.Expr) string {
	switch e := expr.(type) {
	case *ast.Ident:
		if types.Universe.Lookup(e.Name) != nil {
			return e.Name
		}
		return p.table.pkgPath + "." + e.Name
	case *ast.SelectorExpr:
		if x, ok := e.X.(*ast.Ident); ok {
			if paths := p.table.lookup(x.Name, false); len(paths) == 1 {
				return paths[0] + "." + e.Sel.Name
			}
		}
		return types.ExprString(e)
	case *ast.StarExpr:
		return "*" + p.qualified(e.X)
	case *ast.ArrayType:
		if e.Len == nil {
			return "[]" + p.qualified(e.Elt)
		}
		return "[" + types.ExprString(e.Len) + "]" + p.qualified(e.Elt)
	case *ast.MapType:
		return "map[" + p.qualified(e.Key) + "]" + p.qualified(e.Value)
	case *ast.ChanType:
		switch e.Dir {
		case ast.SEND:
			return "chan<- " + p.qualified(e.Value)
		case ast.RECV:
			return "<-chan " + p.qualified(e.Value)
		default:
			return "chan " + p.qualified(e.Value)
		}
	case *ast.IndexExpr:
		return p.qualified(e.X) + "[" + p.qualified(e.Index) + "]"
	case *ast.IndexListExpr:
		args := make([]string, len(e.Indices))
		for i, idx := range e.Indices {
			args[i] = p.qualified(idx)
		}
		return p.qualified(e.X) + "[" + strings.Join(args, ", ") + "]"
	case *ast.ParenExpr:
		return "(" + p.qualified(e.X) + ")"
	default:
		return types.ExprString(expr)
	}
}

func sortImports(imports []Import) {
	sort.Slice(imports, func(i, j int) bool {
		if imports[i].Path == imports[j].Path {
			return imports[i].Name < imports[j].Name
		}
		return imports[i].Path < imports[j].Path
	})
}

// quoteImport renders an import spec line body.
func quoteImport(imp Import) string {
	if imp.Name != "" {
		return imp.Name + " " + strconv.Quote(imp.Path)
	}
	return strconv.Quote(imp.Path)
}
