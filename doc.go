// Package autoinject generates constructors for annotated Go struct types.
//
// A struct opts in with a type annotation and marks each field it wants as a
// constructor parameter; the generator writes <Type>.g.go next to it:
//
//	// @autoinject.AutoInjection
//	type Checkout struct {
//		// @autoinject.AutoInject
//		Store Store
//	}
//
//	func NewCheckout(store Store) *Checkout
//
// Layout:
//   - inject: the generation pipeline (scan, resolve, validate, synthesize, sink)
//   - cmd/autoinject: the CLI driving the pipeline over a module
//   - internal/autoinject: the generated marker package of this module
//   - examples/*: consumers with their committed generated files
package autoinject
