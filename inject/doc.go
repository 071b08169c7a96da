// Package inject implements the autoinject generation pipeline.
//
// Struct types carrying the type-level marker and at least one field carrying the
// member-level marker receive a generated constructor:
//
//	import _ "example.com/app/internal/autoinject"
//
//	// @autoinject.AutoInjection
//	type Foo struct {
//		// @autoinject.AutoInject
//		Bar ServiceA
//		Baz ServiceB // @autoinject.AutoInject
//	}
//
// produces Foo.g.go next to the declaration:
//
//	func NewFoo(bar ServiceA, baz ServiceB) *Foo {
//		f := &Foo{}
//		f.Bar = bar
//		f.Baz = baz
//		return f
//	}
//
// The pipeline is split into small pure stages so each can be tested on its own:
//
//   - Scan / Classify: decide which types qualify (both markers present).
//   - ResolveMembers: marked fields, in declaration order, with their types.
//   - Validate: structural preconditions; violations are warnings, never fatal.
//   - Synthesize: deterministic rendering of the constructor file.
//   - Sink: append-only registry of named outputs.
//
// ParseDir is the Go front end. It turns a package directory into TypeDecl values
// and an ImportResolver, which maps annotation references to qualified names
// through each file's imports. Generator ties the stages together per package.
//
// Nothing in this package performs I/O except ParseDir, and nothing logs.
// Identical inputs always produce byte-identical outputs.
package inject
