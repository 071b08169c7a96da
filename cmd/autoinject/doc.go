// Command autoinject generates constructors for Go struct types.
//
// A type opts in with a type annotation and marks the fields it wants as
// constructor parameters with a member annotation:
//
//	import _ "example.com/app/internal/autoinject"
//
//	// @autoinject.AutoInjection
//	type Checkout struct {
//		// @autoinject.AutoInject
//		Store Store
//		// @autoinject.AutoInject
//		Log *slog.Logger
//
//		cache map[string]Order
//	}
//
// Running
//
//	autoinject generate ./...
//
// writes Checkout.g.go next to the declaration:
//
//	func NewCheckout(store Store, log *slog.Logger) *Checkout
//
// together with the marker package internal/autoinject of the module.
// A go:generate directive keeps the files current:
//
//	//go:generate go run github.com/sghaida/autoinject/cmd/autoinject generate .
//
// Flags:
//
//	generate [roots]   dir or dir/... (default ./...)
//	  --dry-run        report without touching the tree
//	  --report         table | none
//	  --concurrency    packages processed in parallel
//	  --no-prune       keep stale outputs
//	markers            write the marker package only
//	version            print the version
//	-C, --workdir      run as if started in this directory
//	--config           path to autoinject.yaml
//	--logformat, --loglevel, --logoutput
//
// Configuration is read from autoinject.yaml at the module root:
//
//	requires: ">= 1.0.0"
//	exclude: [examples/..., "*/legacy"]
//	concurrency: 4
//	cache: .autoinject.cache
//	prune: true
package main
