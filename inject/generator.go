package inject

import "fmt"

// Result is the outcome of generating one package.
type Result struct {
	Units       []GeneratedUnit
	Diagnostics []Diagnostic
	// Faults holds internal consistency errors, one per affected type.
	Faults []error
}

// Generator runs the pipeline for the declarations of one package.
type Generator struct {
	markers  MarkerSet
	resolver Resolver
}

// NewGenerator returns a generator matching against markers through r.
func NewGenerator(markers MarkerSet, r Resolver) *Generator {
	return &Generator{markers: markers, resolver: r}
}

// Generate scans decls and synthesizes one unit per qualifying type.
// Problems are scoped to the offending type; other types are still generated.
// When several qualifying types share a name, only the first in decls is
// generated, since they would share one output file.
func (g *Generator) Generate(pkg Package, decls []TypeDecl) Result {
	var res Result
	produced := map[string]Location{}

	for _, c := range Scan(decls, g.resolver, g.markers) {
		members := ResolveMembers(c, g.resolver, g.markers)
		if len(members) == 0 {
			res.Faults = append(res.Faults, &ConsistencyError{Type: c.Decl.Name, Location: c.Decl.Location})
			continue
		}

		key := OutputKey(c.Decl.Name)
		if first, ok := produced[key]; ok {
			res.Diagnostics = append(res.Diagnostics, Diagnostic{
				Code:     CodeDuplicateOutput,
				Severity: SeverityWarning,
				Message: fmt.Sprintf("type %s is not generated: %s.go is already produced by the type declared at %s",
					c.Decl.Name, key, first),
				Location: c.Decl.Location,
			})
			continue
		}
		produced[key] = c.Decl.Location

		if _, diag := Validate(c); diag != nil {
			res.Diagnostics = append(res.Diagnostics, *diag)
		}
		res.Diagnostics = append(res.Diagnostics, ValidateMembers(c.Decl.Name, members)...)

		res.Units = append(res.Units, GeneratedUnit{
			Package:  pkg,
			TypeName: c.Decl.Name,
			Members:  members,
			Text:     Synthesize(pkg, c.Decl.Name, members),
		})
	}
	return res
}

// GenerateParsed is a shorthand for generating a package returned by ParseDir.
func GenerateParsed(markers MarkerSet, p *ParsedPackage) Result {
	return NewGenerator(markers, p.Resolver).Generate(p.Package, p.Decls)
}
