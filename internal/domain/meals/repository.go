package meals

import (
	"context"
	"time"
)

// Repository devuelve ErrNotFound (envuelto) cuando la comida no existe.
// ListByPet ordena por served_at descendente.
type Repository interface {
	Create(ctx context.Context, m Meal) error
	GetByID(ctx context.Context, id string) (Meal, error)
	ListByPet(ctx context.Context, petID string, filter ListFilter) ([]Meal, error)
	Archive(ctx context.Context, id string) error
}

type ListFilter struct {
	From            *time.Time
	To              *time.Time
	IncludeArchived bool
	Limit           int
}
