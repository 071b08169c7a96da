package inject

import (
	"go/format"
	"go/token"
	"strings"
	"text/template"
	"unicode"
	"unicode/utf8"
)

// ParamName derives a parameter name from a member name by lowercasing its
// first character. The rest of the name is kept verbatim.
func ParamName(name string) string {
	r, size := utf8.DecodeRuneInString(name)
	if r == utf8.RuneError && size <= 1 {
		return name
	}
	return string(unicode.ToLower(r)) + name[size:]
}

// ConstructorName returns NewT for exported types and newT otherwise.
func ConstructorName(typeName string) string {
	r, size := utf8.DecodeRuneInString(typeName)
	if unicode.IsUpper(r) {
		return "New" + typeName
	}
	return "new" + string(unicode.ToUpper(r)) + typeName[size:]
}

type assignment struct {
	Member string
	Param  string
}

type synthData struct {
	Package     string
	Imports     []string
	Constructor string
	TypeName    string
	Params      string
	Var         string
	Assignments []assignment
}

var unitTpl = template.Must(template.New("unit").Parse(`// Code generated by autoinject. DO NOT EDIT.

package {{.Package}}
{{- if .Imports}}

import (
{{- range .Imports}}
	{{.}}
{{- end}}
)
{{- end}}

// {{.Constructor}} returns a new {{.TypeName}} with its injected members assigned.
func {{.Constructor}}({{.Params}}) *{{.TypeName}} {
	{{.Var}} := &{{.TypeName}}{}
{{- range .Assignments}}
	{{$.Var}}.{{.Member}} = {{.Param}}
{{- end}}
	return {{.Var}}
}
`))

// Synthesize renders the constructor file for typeName in pkg.
// The output depends on its arguments only.
func Synthesize(pkg Package, typeName string, members []ResolvedMember) string {
	data := synthData{
		Package:     pkg.Name,
		Constructor: ConstructorName(typeName),
		TypeName:    typeName,
	}

	// a parameter or local named like the type would shadow it in the body
	used := map[string]bool{typeName: true}
	params := make([]string, 0, len(members))
	var imports []Import
	seen := map[Import]bool{}

	for _, m := range members {
		p := uniqueIdent(ParamName(m.Name), used)
		used[p] = true
		params = append(params, p+" "+m.Type.Expr)
		data.Assignments = append(data.Assignments, assignment{Member: m.Name, Param: p})

		for _, imp := range m.Type.Imports {
			if !seen[imp] {
				seen[imp] = true
				imports = append(imports, imp)
			}
		}
	}

	data.Params = strings.Join(params, ", ")
	data.Var = uniqueIdent(localVarName(typeName), used)

	sortImports(imports)
	for _, imp := range imports {
		data.Imports = append(data.Imports, quoteImport(imp))
	}

	var sb strings.Builder
	if err := unitTpl.Execute(&sb, data); err != nil {
		// the template only formats strings
		panic(err)
	}

	src := []byte(sb.String())
	formatted, err := format.Source(src)
	if err != nil {
		// keep the raw text so the compiler reports the real problem at the use site
		return string(src)
	}
	return string(formatted)
}

// uniqueIdent appends '_' to name until it is neither a keyword nor already used.
func uniqueIdent(name string, used map[string]bool) string {
	for token.IsKeyword(name) || used[name] {
		name += "_"
	}
	return name
}

func localVarName(typeName string) string {
	r, _ := utf8.DecodeRuneInString(typeName)
	if !unicode.IsLetter(r) {
		return "v"
	}
	return string(unicode.ToLower(r))
}
