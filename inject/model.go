package inject

import "fmt"

// Location is a 1-based line:column position inside a source file.
type Location struct {
	File   string
	Line   int
	Column int
}

// String renders the location as file:line:column.
func (l Location) String() string {
	if l.File == "" {
		return "-"
	}
	return fmt.Sprintf("%s:%d:%d", l.File, l.Line, l.Column)
}

// Package describes the namespace a type is declared in.
type Package struct {
	// Path is the import path.
	Path string
	// Name is the package clause name.
	Name string
	// Dir is the directory holding the package sources; generated files land here.
	Dir string
}

// Annotation is a single @reference found in a comment attached to a declaration.
type Annotation struct {
	// Raw is the reference as written, including the leading '@'.
	Raw string
	// Qualifier is the package qualifier, empty for unqualified references.
	Qualifier string
	// Name is the referenced identifier, empty when the reference is malformed.
	Name     string
	Location Location
}

// MemberKind classifies struct members.
type MemberKind int

const (
	// MemberField is a named struct field.
	MemberField MemberKind = iota
	// MemberEmbedded is an embedded (anonymous) field.
	MemberEmbedded
	// MemberBlank is a field named _.
	MemberBlank
)

func (k MemberKind) String() string {
	switch k {
	case MemberField:
		return "field"
	case MemberEmbedded:
		return "embedded"
	case MemberBlank:
		return "blank"
	default:
		return fmt.Sprintf("MemberKind(%d)", int(k))
	}
}

// Import is one import required by generated code.
type Import struct {
	// Name is the explicit import name, empty when the default name matches.
	Name string
	Path string
}

// TypeRef describes the declared type of a member.
type TypeRef struct {
	// Expr is the type as written in the declaring package, e.g. *sql.DB.
	Expr string
	// Qualified is the fully qualified form, e.g. *database/sql.DB.
	Qualified string
	// Imports lists the imports Expr needs, sorted by path.
	Imports []Import
	// Unqualified lists, sorted, the package qualifiers of Expr that match no
	// import of the declaring file, or more than one. Their imports are missing
	// from Imports.
	Unqualified []string
}

// Member is a direct member of a type declaration.
type Member struct {
	Name        string
	Kind        MemberKind
	Type        TypeRef
	Annotations []Annotation
	Location    Location
}

// TypeDecl is the front-end independent view of a type declaration.
type TypeDecl struct {
	Name        string
	Annotations []Annotation
	Members     []Member
	// Extensible reports whether generated declarations can join this type
	// from a separate file of the same package.
	Extensible bool
	// Reason explains why the type is not extensible.
	Reason   string
	Location Location
}

// Candidate is a type declaration tested against the marker set.
type Candidate struct {
	Decl      TypeDecl
	Qualifies bool
}

// ResolvedMember is a marked field of a qualifying type.
type ResolvedMember struct {
	Name     string
	Type     TypeRef
	Location Location
}

// ValidationResult carries the structural checks of a qualifying type.
type ValidationResult struct {
	IsOpenDeclaration bool
}

// GeneratedUnit is the synthesized constructor of one qualifying type.
type GeneratedUnit struct {
	Package  Package
	TypeName string
	Members  []ResolvedMember
	Text     string
}

// Key returns the output key of the unit.
func (u GeneratedUnit) Key() string { return OutputKey(u.TypeName) }
