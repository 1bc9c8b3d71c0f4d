package persistence

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/hrapi/backend/internal/domain/shared"
	"github.com/hrapi/backend/internal/infrastructure/persistence/tenant"
	"gorm.io/gorm"
)

// domainModel is a persistence model convertible to and from its domain entity
type domainModel[M any, T any] interface {
	*M
	ToDomain() *T
	FromDomain(*T)
}

// gormRepository implements shared.Repository for one tenant-scoped model.
// Every statement runs with the repository's tenant on its context, so the
// tenant callbacks stamp and filter tenant_id.
type gormRepository[M any, T any, PM domainModel[M, T]] struct {
	db       *gorm.DB
	tenantID uuid.UUID
	entity   string
	fields   map[string]bool
	order    string
}

func newGormRepository[M any, T any, PM domainModel[M, T]](db *gorm.DB, tenantID uuid.UUID, entity string, fields map[string]bool, order string) *gormRepository[M, T, PM] {
	return &gormRepository[M, T, PM]{
		db:       db,
		tenantID: tenantID,
		entity:   entity,
		fields:   fields,
		order:    order,
	}
}

func (r *gormRepository[M, T, PM]) session(ctx context.Context) *gorm.DB {
	return tenant.Bind(ctx, r.db, r.tenantID)
}

// GetByID returns (nil, nil) when no row matches
func (r *gormRepository[M, T, PM]) GetByID(ctx context.Context, id uuid.UUID) (*T, error) {
	return r.first(r.session(ctx).Where("id = ?", id))
}

// GetAll returns every live row of the tenant
func (r *gormRepository[M, T, PM]) GetAll(ctx context.Context) ([]T, error) {
	return r.find(r.session(ctx))
}

// GetWhere returns the rows matching p
func (r *gormRepository[M, T, PM]) GetWhere(ctx context.Context, p shared.Predicate) ([]T, error) {
	q, err := applyPredicate(r.session(ctx), p, r.fields)
	if err != nil {
		return nil, err
	}
	return r.find(q)
}

// GetFirstWhere returns the first row matching p in list order, or (nil, nil)
func (r *gormRepository[M, T, PM]) GetFirstWhere(ctx context.Context, p shared.Predicate) (*T, error) {
	q, err := applyPredicate(r.session(ctx), p, r.fields)
	if err != nil {
		return nil, err
	}
	return r.first(q.Order(r.order))
}

// ExistsWhere reports whether any row matches p
func (r *gormRepository[M, T, PM]) ExistsWhere(ctx context.Context, p shared.Predicate) (bool, error) {
	q, err := applyPredicate(r.session(ctx).Model(new(M)), p, r.fields)
	if err != nil {
		return false, err
	}
	var count int64
	if err := q.Count(&count).Error; err != nil {
		return false, fmt.Errorf("failed to count %s: %w", r.entity, err)
	}
	return count > 0, nil
}

// Add inserts a new row
func (r *gormRepository[M, T, PM]) Add(ctx context.Context, entity *T) error {
	m := PM(new(M))
	m.FromDomain(entity)
	if err := r.session(ctx).Create(m).Error; err != nil {
		return r.translateError("create", err)
	}
	return nil
}

// Update rewrites every column except identity and tenant. A missing row is NotFound.
func (r *gormRepository[M, T, PM]) Update(ctx context.Context, entity *T) error {
	id := entityID(entity)
	m := PM(new(M))
	m.FromDomain(entity)
	result := r.session(ctx).Model(m).
		Select("*").
		Omit("id", "tenant_id", "created_at", "deleted_at").
		Updates(m)
	if result.Error != nil {
		return r.translateError("update", result.Error)
	}
	if result.RowsAffected == 0 {
		return shared.NewNotFoundError(r.entity, id)
	}
	return nil
}

// Delete soft-deletes a row. A missing row is NotFound.
func (r *gormRepository[M, T, PM]) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.session(ctx).Where("id = ?", id).Delete(new(M))
	if result.Error != nil {
		return r.translateError("delete", result.Error)
	}
	if result.RowsAffected == 0 {
		return shared.NewNotFoundError(r.entity, id)
	}
	return nil
}

func (r *gormRepository[M, T, PM]) first(q *gorm.DB) (*T, error) {
	var rows []M
	if err := q.Limit(1).Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("failed to get %s: %w", r.entity, err)
	}
	if len(rows) == 0 {
		return nil, nil
	}
	return PM(&rows[0]).ToDomain(), nil
}

func (r *gormRepository[M, T, PM]) find(q *gorm.DB) ([]T, error) {
	var rows []M
	if err := q.Order(r.order).Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("failed to list %s: %w", r.entity, err)
	}
	result := make([]T, len(rows))
	for i := range rows {
		result[i] = *PM(&rows[i]).ToDomain()
	}
	return result, nil
}

func (r *gormRepository[M, T, PM]) translateError(op string, err error) error {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return shared.NewDomainErrorWithCause(shared.CodeDuplicateKey,
			fmt.Sprintf("%s already exists", r.entity), err)
	}
	return fmt.Errorf("failed to %s %s: %w", op, r.entity, err)
}

func entityID(entity any) uuid.UUID {
	if e, ok := entity.(shared.Entity); ok {
		return e.GetID()
	}
	return uuid.Nil
}
