package indicator

import (
	"sync"

	"github.com/crestline-lab/tidal-trading/internal/types"
	"github.com/crestline-lab/tidal-trading/pkg/errors"
)

// Registry holds the set of available indicators keyed by name.
// It is safe for concurrent use.
type Registry struct {
	mu         sync.RWMutex
	indicators map[types.IndicatorType]Indicator
}

// NewRegistry creates an empty indicator registry.
func NewRegistry() *Registry {
	return &Registry{
		indicators: make(map[types.IndicatorType]Indicator),
	}
}

// NewDefaultRegistry creates a registry pre-populated with every built-in
// indicator at its default configuration.
func NewDefaultRegistry() *Registry {
	r := NewRegistry()
	r.Register(NewEMA())
	r.Register(NewATR())
	r.Register(NewRSI())
	r.Register(NewMACD())
	r.Register(NewSupertrend())

	return r
}

// Register adds an indicator to the registry, replacing any indicator
// already registered under the same name.
func (r *Registry) Register(ind Indicator) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.indicators[ind.Name()] = ind
}

// Get returns the indicator registered under the given name.
func (r *Registry) Get(name types.IndicatorType) (Indicator, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	ind, ok := r.indicators[name]
	if !ok {
		return nil, errors.Newf(errors.ErrCodeIndicatorNotFound, "indicator %s not found", name)
	}

	return ind, nil
}

// Remove deletes the indicator registered under the given name.
func (r *Registry) Remove(name types.IndicatorType) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.indicators, name)
}

// List returns the names of all registered indicators.
func (r *Registry) List() []types.IndicatorType {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]types.IndicatorType, 0, len(r.indicators))
	for name := range r.indicators {
		names = append(names, name)
	}

	return names
}
