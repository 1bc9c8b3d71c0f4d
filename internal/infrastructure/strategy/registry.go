package strategy

import (
	"fmt"
	"sync"

	"github.com/hrapi/backend/internal/domain/shared"
	"github.com/hrapi/backend/internal/domain/tenancy"
)

// StrategyRegistry is an ordered list of customization strategies.
// SelectStrategy walks the list front to back and the first strategy whose
// AppliesTo predicate holds wins, so position in the list is priority.
type StrategyRegistry struct {
	mu         sync.RWMutex
	strategies []tenancy.CustomizationStrategy
	fallback   tenancy.CustomizationStrategy
}

// NewStrategyRegistry creates an empty registry that falls back to fallback
func NewStrategyRegistry(fallback tenancy.CustomizationStrategy) *StrategyRegistry {
	return &StrategyRegistry{
		strategies: make([]tenancy.CustomizationStrategy, 0, 4),
		fallback:   fallback,
	}
}

// RegisterHighPriority inserts s at the head of the list, ahead of every
// strategy registered so far. Use it for instance-specific overrides.
func (r *StrategyRegistry) RegisterHighPriority(s tenancy.CustomizationStrategy) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if err := r.checkDuplicate(s.Name()); err != nil {
		return err
	}
	r.strategies = append([]tenancy.CustomizationStrategy{s}, r.strategies...)
	return nil
}

// RegisterLowPriority appends s at the tail of the list. Use it for generic
// type-based strategies so existing overrides keep winning.
func (r *StrategyRegistry) RegisterLowPriority(s tenancy.CustomizationStrategy) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if err := r.checkDuplicate(s.Name()); err != nil {
		return err
	}
	r.strategies = append(r.strategies, s)
	return nil
}

// Unregister removes a strategy by name
func (r *StrategyRegistry) Unregister(name string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i, s := range r.strategies {
		if s.Name() == name {
			r.strategies = append(r.strategies[:i:i], r.strategies[i+1:]...)
			return nil
		}
	}
	return fmt.Errorf("%w: customization strategy '%s' not found", shared.ErrNotFound, name)
}

// SelectStrategy returns the first strategy that applies to config, or the
// fallback when none does.
func (r *StrategyRegistry) SelectStrategy(config tenancy.TenantConfiguration) tenancy.CustomizationStrategy {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, s := range r.strategies {
		if s.AppliesTo(config.InstanceName, config.Type) {
			return s
		}
	}
	return r.fallback
}

// Names returns the registered strategy names in priority order
func (r *StrategyRegistry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, len(r.strategies))
	for i, s := range r.strategies {
		names[i] = s.Name()
	}
	return names
}

func (r *StrategyRegistry) checkDuplicate(name string) error {
	for _, s := range r.strategies {
		if s.Name() == name {
			return fmt.Errorf("%w: customization strategy '%s' already registered", shared.ErrDuplicateKey, name)
		}
	}
	return nil
}

var _ tenancy.StrategySelector = (*StrategyRegistry)(nil)
