package inject

import "fmt"

// Validate checks that generated declarations can join c's type.
// A violation yields a warning diagnostic; the caller still generates the unit.
func Validate(c Candidate) (ValidationResult, *Diagnostic) {
	res := ValidationResult{IsOpenDeclaration: c.Decl.Extensible}
	if res.IsOpenDeclaration {
		return res, nil
	}

	reason := c.Decl.Reason
	if reason == "" {
		reason = "not extensible"
	}
	return res, &Diagnostic{
		Code:     CodeNotExtensible,
		Severity: SeverityWarning,
		Message: fmt.Sprintf(
			"type %s must be a package-level, non-alias, non-generic struct to receive a generated constructor (%s)",
			c.Decl.Name, reason),
		Location: c.Decl.Location,
	}
}

// ValidateMembers reports injected members whose type needs an import the front
// end could not determine. The generated file lacks that import.
func ValidateMembers(typeName string, members []ResolvedMember) []Diagnostic {
	var out []Diagnostic
	for _, m := range members {
		for _, q := range m.Type.Unqualified {
			out = append(out, Diagnostic{
				Code:     CodeUnknownQualifier,
				Severity: SeverityWarning,
				Message: fmt.Sprintf(
					"field %s.%s: qualifier %s in %s matches no single import of its file; alias the import as %s",
					typeName, m.Name, q, m.Type.Expr, q),
				Location: m.Location,
			})
		}
	}
	return out
}
