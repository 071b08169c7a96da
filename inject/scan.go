package inject

// HasMarker reports whether any annotation resolves to want.
// Annotations the resolver cannot map are skipped.
func HasMarker(annotations []Annotation, r Resolver, want QualifiedName) bool {
	for _, a := range annotations {
		got, ok := r.Resolve(a)
		if !ok {
			continue
		}
		if got == want {
			return true
		}
	}
	return false
}

// isInjectable is the member predicate shared by Classify and ResolveMembers.
func isInjectable(m Member, r Resolver, markers MarkerSet) bool {
	return m.Kind == MemberField && HasMarker(m.Annotations, r, markers.Member)
}

// Classify tests a single declaration. It qualifies when the declaration carries
// the type marker and at least one of its direct fields carries the member marker.
func Classify(decl TypeDecl, r Resolver, markers MarkerSet) Candidate {
	c := Candidate{Decl: decl}
	if !HasMarker(decl.Annotations, r, markers.Type) {
		return c
	}
	for _, m := range decl.Members {
		if isInjectable(m, r, markers) {
			c.Qualifies = true
			break
		}
	}
	return c
}

// Scan returns the qualifying candidates among decls, in input order.
func Scan(decls []TypeDecl, r Resolver, markers MarkerSet) []Candidate {
	var out []Candidate
	for _, d := range decls {
		if c := Classify(d, r, markers); c.Qualifies {
			out = append(out, c)
		}
	}
	return out
}
