package memory

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"sort"
	"sync"

	"pet-plates/internal/domain/caretakers"
)

type caretakerRepo struct {
	mu   sync.RWMutex
	byID map[string]caretakers.Grant
}

func NewCaretakerRepo() caretakers.Repository {
	return &caretakerRepo{
		byID: make(map[string]caretakers.Grant),
	}
}

func (r *caretakerRepo) Create(ctx context.Context, g caretakers.Grant) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if g.ID == "" {
		return errors.New("grant id required")
	}
	if _, exists := r.byID[g.ID]; exists {
		return errors.New("grant already exists")
	}
	r.byID[g.ID] = cloneGrant(g)
	return nil
}

func (r *caretakerRepo) Update(ctx context.Context, g caretakers.Grant) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.byID[g.ID]; !exists {
		return fmt.Errorf("%w: %s", caretakers.ErrNotFound, g.ID)
	}
	r.byID[g.ID] = cloneGrant(g)
	return nil
}

func (r *caretakerRepo) GetByID(ctx context.Context, id string) (caretakers.Grant, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	g, ok := r.byID[id]
	if !ok {
		return caretakers.Grant{}, fmt.Errorf("%w: %s", caretakers.ErrNotFound, id)
	}
	return cloneGrant(g), nil
}

func (r *caretakerRepo) ListByPet(ctx context.Context, petID string) ([]caretakers.Grant, error) {
	return r.list(func(g caretakers.Grant) bool { return g.PetID == petID }), nil
}

func (r *caretakerRepo) ListByCaretaker(ctx context.Context, userID string) ([]caretakers.Grant, error) {
	return r.list(func(g caretakers.Grant) bool { return g.CaretakerUserID == userID }), nil
}

func (r *caretakerRepo) list(match func(caretakers.Grant) bool) []caretakers.Grant {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]caretakers.Grant, 0)
	for _, g := range r.byID {
		if match(g) {
			out = append(out, cloneGrant(g))
		}
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].CreatedAt.Before(out[j].CreatedAt)
	})
	return out
}

func cloneGrant(g caretakers.Grant) caretakers.Grant {
	g.Scopes = slices.Clone(g.Scopes)
	if g.ExpiresAt != nil {
		t := *g.ExpiresAt
		g.ExpiresAt = &t
	}
	if g.RevokedAt != nil {
		t := *g.RevokedAt
		g.RevokedAt = &t
	}
	return g
}

