package strategy

import (
	"time"

	"github.com/hrapi/backend/internal/domain/tenancy"
	"github.com/hrapi/backend/internal/infrastructure/strategy/customization"
)

// NewRegistryWithDefaults builds the registry in the documented order:
// Company1, Company2, Restricted, Standard. Instance strategies come first so a
// named deployment overrides its tenant type. now drives time-relative rules;
// nil means time.Now.
func NewRegistryWithDefaults(now func() time.Time) (*StrategyRegistry, error) {
	standard := customization.NewStandardStrategy()
	r := NewStrategyRegistry(standard)

	ordered := []tenancy.CustomizationStrategy{
		customization.NewCompany1Strategy(),
		customization.NewCompany2Strategy(now),
		customization.NewRestrictedStrategy(),
		standard,
	}
	for _, s := range ordered {
		if err := r.RegisterLowPriority(s); err != nil {
			return nil, err
		}
	}
	return r, nil
}
