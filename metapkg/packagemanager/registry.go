package packagemanager

import (
	"fmt"
)

type constructor func(options ...Option) PackageManager

// registry lists the known managers in report order.
var registry = []struct {
	id  string
	new constructor
}{
	{"homebrew", func(o ...Option) PackageManager { return NewHomebrew(o...) }},
	{"homebrew-cask", func(o ...Option) PackageManager { return NewHomebrewCask(o...) }},
	{"pip2", func(o ...Option) PackageManager { return NewPip2(o...) }},
	{"pip3", func(o ...Option) PackageManager { return NewPip3(o...) }},
	{"apm", func(o ...Option) PackageManager { return NewApm(o...) }},
	{"npm", func(o ...Option) PackageManager { return NewNpm(o...) }},
	{"gems", func(o ...Option) PackageManager { return NewGems(o...) }},
	{"mas", func(o ...Option) PackageManager { return NewMas(o...) }},
}

// IDs returns the identifiers of all known managers, in report order.
func IDs() []string {
	ids := make([]string, 0, len(registry))
	for _, entry := range registry {
		ids = append(ids, entry.id)
	}
	return ids
}

// New instantiates the manager registered under id.
func New(id string, options ...Option) (PackageManager, error) {
	for _, entry := range registry {
		if entry.id == id {
			return entry.new(options...), nil
		}
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownManager, id)
}

// All instantiates every known manager, in report order. perManager, when
// not nil, supplies extra options for a given ID.
func All(perManager func(id string) []Option, options ...Option) []PackageManager {
	managers := make([]PackageManager, 0, len(registry))
	for _, entry := range registry {
		opts := options
		if perManager != nil {
			opts = append(append([]Option(nil), options...), perManager(entry.id)...)
		}
		managers = append(managers, entry.new(opts...))
	}
	return managers
}
