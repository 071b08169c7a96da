// Package enum provides a pflag.Value that only accepts a fixed set of options.
package enum

import (
	"fmt"
	"slices"
	"strings"

	"github.com/spf13/pflag"
)

// Flag is a pflag.Value restricted to its options. The first option is the default.
type Flag struct {
	options []string
	value   string
}

var _ pflag.Value = (*Flag)(nil)

// New returns a Flag set to its first option. It panics without options.
func New(options ...string) *Flag {
	if len(options) == 0 {
		panic("enum flag needs at least one option")
	}
	return &Flag{options: options, value: options[0]}
}

func (f *Flag) String() string { return f.value }

// Set rejects values outside the options and keeps the previous value.
func (f *Flag) Set(v string) error {
	if !slices.Contains(f.options, v) {
		return fmt.Errorf("must be one of %s", strings.Join(f.options, ", "))
	}
	f.value = v
	return nil
}

func (f *Flag) Type() string { return "enum" }

// Var registers an enum flag on fs.
func Var(fs *pflag.FlagSet, name string, options []string, usage string) {
	VarP(fs, name, "", options, usage)
}

// VarP is like Var with a shorthand.
func VarP(fs *pflag.FlagSet, name, shorthand string, options []string, usage string) {
	fs.VarP(New(options...), name, shorthand, usage+" ("+strings.Join(options, "|")+")")
}

// Get returns the value of the enum flag name in fs.
func Get(fs *pflag.FlagSet, name string) (string, error) {
	f := fs.Lookup(name)
	if f == nil {
		return "", fmt.Errorf("flag %q not defined", name)
	}
	e, ok := f.Value.(*Flag)
	if !ok {
		return "", fmt.Errorf("flag %q is not an enum flag", name)
	}
	return e.String(), nil
}
