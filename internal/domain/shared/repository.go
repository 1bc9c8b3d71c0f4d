package shared

import (
	"context"

	"github.com/google/uuid"
)

// Operator is a comparison used inside a Predicate
type Operator string

const (
	OpEq    Operator = "="
	OpNotEq Operator = "<>"
	OpLt    Operator = "<"
	OpLte   Operator = "<="
	OpGt    Operator = ">"
	OpGte   Operator = ">="
	OpIn    Operator = "IN"
	OpNotIn Operator = "NOT IN"
)

// Condition compares one stored field against a value
type Condition struct {
	Field string
	Op    Operator
	Value any
}

// Predicate is a conjunction of conditions. The zero value matches every row.
type Predicate []Condition

// Where starts a predicate with a single condition
func Where(field string, op Operator, value any) Predicate {
	return Predicate{{Field: field, Op: op, Value: value}}
}

// And returns a copy of p extended with another condition
func (p Predicate) And(field string, op Operator, value any) Predicate {
	out := make(Predicate, len(p), len(p)+1)
	copy(out, p)
	return append(out, Condition{Field: field, Op: op, Value: value})
}

// Repository is the persistence contract every entity store offers.
// GetByID and GetFirstWhere return (nil, nil) when nothing matches.
type Repository[T any] interface {
	GetByID(ctx context.Context, id uuid.UUID) (*T, error)
	GetAll(ctx context.Context) ([]T, error)
	GetWhere(ctx context.Context, p Predicate) ([]T, error)
	GetFirstWhere(ctx context.Context, p Predicate) (*T, error)
	ExistsWhere(ctx context.Context, p Predicate) (bool, error)
	Add(ctx context.Context, entity *T) error
	Update(ctx context.Context, entity *T) error
	Delete(ctx context.Context, id uuid.UUID) error
}
