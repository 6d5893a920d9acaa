package model

import (
	"sort"

	"github.com/pkg/errors"
)

// Factory creates a target of the given dimension. Fixed-dimension targets
// should reject anything but their own dimension.
type Factory func(dim int) (Model, error)

var registry = make(map[string]Factory)

// Register adds a named target factory. Host frameworks embedding the sampler
// register their targets here and the CLI picks them up by name; there is no
// implicit plugin loading.
func Register(name string, f Factory) error {
	if name == "" || f == nil {
		return errors.Errorf("Target registration requires a name and a factory")
	}
	if _, ok := registry[name]; ok {
		return errors.Errorf("Target %s is already registered", name)
	}
	registry[name] = f
	return nil
}

// New creates a registered target by name.
func New(name string, dim int) (Model, error) {
	f, ok := registry[name]
	if !ok {
		return nil, errors.Errorf("No target registered under name %s (known: %v)", name, Names())
	}
	return f(dim)
}

// Names returns the sorted names of all registered targets.
func Names() []string {
	names := make([]string, 0, len(registry))
	for n := range registry {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

func init() {
	// Built-in test targets. The error return on Register only matters for
	// external callers colliding with these names.
	must := func(e error) {
		if e != nil {
			panic(e)
		}
	}

	must(Register("normal", func(dim int) (Model, error) {
		return NewNormal(dim)
	}))
	must(Register("banana", func(dim int) (Model, error) {
		if dim != 0 && dim != 2 {
			return nil, errors.Errorf("The banana target is 2-dimensional (got %d)", dim)
		}
		return NewBanana(0.1)
	}))
	must(Register("funnel", func(dim int) (Model, error) {
		return NewFunnel(dim)
	}))
}
