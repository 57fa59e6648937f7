package source

import (
	"context"
	"fmt"

	"ReviewLens/internal/domain"
)

// Request carries all parameters required to execute a load.
type Request struct {
	Bank     string
	Location string
	Options  map[string]string
}

// Loader captures a single source strategy implementation (CSV export,
// store review page, etc.).
type Loader interface {
	Name() string
	Load(ctx context.Context, req Request) ([]domain.Review, error)
}

// Registry keeps a mapping from loader names to their implementations.
type Registry struct {
	loaders map[string]Loader
}

// NewRegistry builds an empty registry.
func NewRegistry() *Registry {
	return &Registry{loaders: map[string]Loader{}}
}

// Register adds or replaces a loader implementation.
func (r *Registry) Register(loader Loader) {
	if r.loaders == nil {
		r.loaders = map[string]Loader{}
	}
	r.loaders[loader.Name()] = loader
}

// Resolve returns a loader by name or an error if it is absent.
func (r *Registry) Resolve(name string) (Loader, error) {
	if loader, ok := r.loaders[name]; ok {
		return loader, nil
	}
	return nil, fmt.Errorf("source loader %s is not registered", name)
}
