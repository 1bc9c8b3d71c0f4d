package tenant

import (
	"errors"
	"fmt"
	"reflect"

	"github.com/google/uuid"
	"github.com/hrapi/backend/internal/infrastructure/logger"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	"gorm.io/gorm/schema"
)

// DefaultColumn is the tenant discriminator column of every tenant-scoped table
const DefaultColumn = "tenant_id"

// TenantCallback provides GORM callback hooks that stamp and filter the
// tenant column from the tenant id carried by the statement context.
// Only models whose schema has the tenant column are touched, so directory
// tables, raw SQL and migrations pass through unchanged.
type TenantCallback struct {
	tenantColumn string
	required     bool
}

// NewTenantCallback creates a new tenant callback handler
func NewTenantCallback(tenantColumn string, required bool) *TenantCallback {
	if tenantColumn == "" {
		tenantColumn = DefaultColumn
	}
	return &TenantCallback{
		tenantColumn: tenantColumn,
		required:     required,
	}
}

// RegisterCallbacks registers tenant callbacks with GORM
func (tc *TenantCallback) RegisterCallbacks(db *gorm.DB) error {
	cb := db.Callback()
	return errors.Join(
		cb.Create().Before("gorm:create").Register("tenant:before_create", tc.beforeCreate),
		cb.Query().Before("gorm:query").Register("tenant:before_query", tc.addTenantFilter),
		cb.Update().Before("gorm:update").Register("tenant:before_update", tc.addTenantFilter),
		cb.Delete().Before("gorm:delete").Register("tenant:before_delete", tc.addTenantFilter),
		cb.Row().Before("gorm:row").Register("tenant:before_row", tc.addTenantFilter),
	)
}

// beforeCreate stamps the context tenant on new rows and refuses rows that
// already name a different tenant
func (tc *TenantCallback) beforeCreate(db *gorm.DB) {
	field := tc.tenantField(db)
	if field == nil {
		return
	}
	tenantID, ok := tc.contextTenant(db)
	if !ok {
		return
	}

	rv := db.Statement.ReflectValue
	switch rv.Kind() {
	case reflect.Slice, reflect.Array:
		for i := 0; i < rv.Len(); i++ {
			tc.stamp(db, field, reflect.Indirect(rv.Index(i)), tenantID)
		}
	case reflect.Struct:
		tc.stamp(db, field, rv, tenantID)
	}
}

func (tc *TenantCallback) stamp(db *gorm.DB, field *schema.Field, rv reflect.Value, tenantID uuid.UUID) {
	ctx := db.Statement.Context
	current, zero := field.ValueOf(ctx, rv)
	if zero {
		if err := field.Set(ctx, rv, tenantID); err != nil {
			_ = db.AddError(fmt.Errorf("set %s: %w", tc.tenantColumn, err))
		}
		return
	}
	if fmt.Sprint(current) != tenantID.String() {
		_ = db.AddError(ErrTenantMismatch)
	}
}

// addTenantFilter adds WHERE tenant_id = ? to tenant-scoped statements
func (tc *TenantCallback) addTenantFilter(db *gorm.DB) {
	if tc.tenantField(db) == nil || tc.hasTenantCondition(db) {
		return
	}
	tenantID, ok := tc.contextTenant(db)
	if !ok {
		return
	}

	db.Statement.AddClause(clause.Where{
		Exprs: []clause.Expression{
			clause.Eq{
				Column: clause.Column{Table: clause.CurrentTable, Name: tc.tenantColumn},
				Value:  tenantID.String(),
			},
		},
	})
}

func (tc *TenantCallback) tenantField(db *gorm.DB) *schema.Field {
	if db.Statement.Schema == nil {
		return nil
	}
	return db.Statement.Schema.LookUpField(tc.tenantColumn)
}

// contextTenant reads the tenant from the statement context. It records an
// error on the statement and returns false when the statement must not run
// unscoped.
func (tc *TenantCallback) contextTenant(db *gorm.DB) (uuid.UUID, bool) {
	var raw string
	if db.Statement.Context != nil {
		raw = logger.GetTenantID(db.Statement.Context)
	}
	if raw == "" {
		if tc.required {
			_ = db.AddError(ErrTenantIDRequired)
		}
		return uuid.Nil, false
	}
	tenantID, err := uuid.Parse(raw)
	if err != nil {
		_ = db.AddError(ErrInvalidTenantID)
		return uuid.Nil, false
	}
	return tenantID, true
}

// hasTenantCondition checks if a tenant condition is already present
func (tc *TenantCallback) hasTenantCondition(db *gorm.DB) bool {
	whereClause, ok := db.Statement.Clauses["WHERE"]
	if !ok {
		return false
	}
	where, ok := whereClause.Expression.(clause.Where)
	if !ok {
		return false
	}
	for _, expr := range where.Exprs {
		if tc.exprContainsTenant(expr) {
			return true
		}
	}
	return false
}

func (tc *TenantCallback) exprContainsTenant(expr clause.Expression) bool {
	switch e := expr.(type) {
	case clause.Eq:
		if col, ok := e.Column.(clause.Column); ok {
			return col.Name == tc.tenantColumn
		}
	case clause.IN:
		if col, ok := e.Column.(clause.Column); ok {
			return col.Name == tc.tenantColumn
		}
	case clause.AndConditions:
		for _, cond := range e.Exprs {
			if tc.exprContainsTenant(cond) {
				return true
			}
		}
	}
	return false
}

// EnableAutoTenantFilter registers the tenant callbacks on db
func EnableAutoTenantFilter(db *gorm.DB, required bool) error {
	return NewTenantCallback(DefaultColumn, required).RegisterCallbacks(db)
}

// DisableAutoTenantFilter removes the tenant callbacks
func DisableAutoTenantFilter(db *gorm.DB) {
	cb := db.Callback()
	_ = cb.Create().Remove("tenant:before_create")
	_ = cb.Query().Remove("tenant:before_query")
	_ = cb.Update().Remove("tenant:before_update")
	_ = cb.Delete().Remove("tenant:before_delete")
	_ = cb.Row().Remove("tenant:before_row")
}
