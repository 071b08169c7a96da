package inject

// ResolveMembers returns the marked fields of c in declaration order.
func ResolveMembers(c Candidate, r Resolver, markers MarkerSet) []ResolvedMember {
	var out []ResolvedMember
	for _, m := range c.Decl.Members {
		if !isInjectable(m, r, markers) {
			continue
		}
		out = append(out, ResolvedMember{
			Name:     m.Name,
			Type:     m.Type,
			Location: m.Location,
		})
	}
	return out
}
