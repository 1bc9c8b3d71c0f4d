package tenancy

import (
	"context"

	"github.com/google/uuid"
)

// Directory is the shared registry of all tenants.
// Finders return (nil, nil) when nothing matches.
type Directory interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Tenant, error)
	FindActiveByID(ctx context.Context, id uuid.UUID) (*Tenant, error)
	FindActiveBySubdomain(ctx context.Context, subdomain string) (*Tenant, error)
	ExistsBySubdomainOrName(ctx context.Context, subdomain, name string) (bool, error)
	FindAll(ctx context.Context) ([]Tenant, error)
	Save(ctx context.Context, tenant *Tenant) error
}
