package gateway

import (
	"fmt"
	"sync"

	"github.com/docsmith/docsmith/internal/domain"
	"github.com/docsmith/docsmith/internal/domain/provider"
	"github.com/docsmith/docsmith/internal/port/llm"
)

// Factory constructs a gateway for one provider.
type Factory func() (llm.Gateway, error)

// Registry maps each provider to its gateway constructor and caches one
// instance per provider. It is built once at process start and passed by
// reference; there is no ambient global registry.
type Registry struct {
	mu        sync.Mutex
	factories map[provider.Provider]Factory
	instances map[provider.Provider]llm.Gateway
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		factories: make(map[provider.Provider]Factory),
		instances: make(map[provider.Provider]llm.Gateway),
	}
}

// Register installs the factory for a provider. Registering a provider twice
// is a wiring bug.
func (r *Registry) Register(p provider.Provider, f Factory) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.factories[p]; exists {
		panic(fmt.Sprintf("gateway: duplicate registration for provider %q", p))
	}
	r.factories[p] = f
}

// ForProvider returns the cached gateway for the provider, constructing it
// on first use.
func (r *Registry) ForProvider(p provider.Provider) (llm.Gateway, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if g, ok := r.instances[p]; ok {
		return g, nil
	}

	f, ok := r.factories[p]
	if !ok {
		return nil, fmt.Errorf("%w: no gateway configured for provider %q", domain.ErrValidation, p)
	}

	g, err := f()
	if err != nil {
		return nil, fmt.Errorf("construct %s gateway: %w", p, err)
	}
	r.instances[p] = g
	return g, nil
}

// Providers returns the providers with a registered factory.
func (r *Registry) Providers() []provider.Provider {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := make([]provider.Provider, 0, len(r.factories))
	for p := range r.factories {
		out = append(out, p)
	}
	return out
}
