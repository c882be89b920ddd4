package memory

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"sort"
	"sync"

	"pet-plates/internal/domain/meals"
)

type mealRepo struct {
	mu   sync.RWMutex
	byID map[string]meals.Meal
}

func NewMealRepo() meals.Repository {
	return &mealRepo{
		byID: make(map[string]meals.Meal),
	}
}

func (r *mealRepo) Create(ctx context.Context, m meals.Meal) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if m.ID == "" {
		return errors.New("meal id required")
	}
	if _, exists := r.byID[m.ID]; exists {
		return errors.New("meal already exists")
	}
	m.Ingredients = slices.Clone(m.Ingredients)
	r.byID[m.ID] = m
	return nil
}

func (r *mealRepo) GetByID(ctx context.Context, id string) (meals.Meal, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	m, ok := r.byID[id]
	if !ok {
		return meals.Meal{}, fmt.Errorf("%w: %s", meals.ErrNotFound, id)
	}
	m.Ingredients = slices.Clone(m.Ingredients)
	return m, nil
}

func (r *mealRepo) ListByPet(ctx context.Context, petID string, filter meals.ListFilter) ([]meals.Meal, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	limit := filter.Limit
	if limit <= 0 {
		limit = 50
	}

	out := make([]meals.Meal, 0)
	for _, m := range r.byID {
		if m.PetID != petID {
			continue
		}
		if !filter.IncludeArchived && m.Status == meals.StatusArchived {
			continue
		}
		if filter.From != nil && m.ServedAt.Before(*filter.From) {
			continue
		}
		if filter.To != nil && m.ServedAt.After(*filter.To) {
			continue
		}
		m.Ingredients = slices.Clone(m.Ingredients)
		out = append(out, m)
	}

	// served_at desc; recorded_at desempata comidas servidas al mismo tiempo
	sort.Slice(out, func(i, j int) bool {
		if !out[i].ServedAt.Equal(out[j].ServedAt) {
			return out[i].ServedAt.After(out[j].ServedAt)
		}
		return out[i].RecordedAt.After(out[j].RecordedAt)
	})

	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (r *mealRepo) Archive(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	m, ok := r.byID[id]
	if !ok {
		return fmt.Errorf("%w: %s", meals.ErrNotFound, id)
	}
	m.Status = meals.StatusArchived
	r.byID[id] = m
	return nil
}
