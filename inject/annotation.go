package inject

import (
	"go/ast"
	"go/token"
	"strings"
)

// ParseAnnotation parses one comment line of the form @Name or @qualifier.Name.
// Anything after the reference (arguments, prose) is ignored. ok is false when the
// line is not an annotation at all; a malformed reference yields an Annotation
// with an empty Name, which never resolves.
func ParseAnnotation(line string) (Annotation, bool) {
	line = strings.TrimSpace(line)
	if !strings.HasPrefix(line, "@") {
		return Annotation{}, false
	}

	ref := line[1:]
	if i := strings.IndexAny(ref, " \t("); i >= 0 {
		ref = ref[:i]
	}
	a := Annotation{Raw: "@" + ref}

	parts := strings.Split(ref, ".")
	switch len(parts) {
	case 1:
		if token.IsIdentifier(parts[0]) {
			a.Name = parts[0]
		}
	case 2:
		if token.IsIdentifier(parts[0]) && token.IsIdentifier(parts[1]) {
			a.Qualifier, a.Name = parts[0], parts[1]
		}
	}
	return a, true
}

// annotationsOf collects the annotations of the given comment groups in order.
func annotationsOf(fset *token.FileSet, groups ...*ast.CommentGroup) []Annotation {
	var out []Annotation
	for _, g := range groups {
		if g == nil {
			continue
		}
		for _, c := range g.List {
			for _, line := range commentLines(c.Text) {
				a, ok := ParseAnnotation(line)
				if !ok {
					continue
				}
				a.Location = locationOf(fset, c.Pos())
				out = append(out, a)
			}
		}
	}
	return out
}

// commentLines strips comment markers and returns the text lines of a single comment.
func commentLines(text string) []string {
	if strings.HasPrefix(text, "//") {
		return []string{text[2:]}
	}
	text = strings.TrimSuffix(strings.TrimPrefix(text, "/*"), "*/")
	lines := strings.Split(text, "\n")
	for i, l := range lines {
		l = strings.TrimSpace(l)
		lines[i] = strings.TrimSpace(strings.TrimPrefix(l, "*"))
	}
	return lines
}

func locationOf(fset *token.FileSet, pos token.Pos) Location {
	p := fset.Position(pos)
	return Location{File: p.Filename, Line: p.Line, Column: p.Column}
}
