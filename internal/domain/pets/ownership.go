package pets

import (
	"context"
	"strings"

	"pet-plates/internal/domain/caretakers"
)

// Access resuelve permisos delegados (cuidadores). Lo implementa caretakers.Service.
type Access interface {
	Allows(ctx context.Context, petID, userID string, scope caretakers.Scope) bool
}

// WithAccess habilita que usuarios distintos del dueño operen según sus scopes.
func (s *Service) WithAccess(a Access) *Service {
	s.access = a
	return s
}

// Authorize: el dueño puede todo; un cuidador solo con un grant vigente que tenga scope.
func (s *Service) Authorize(ctx context.Context, petID, userID string, scope caretakers.Scope) (Pet, error) {
	p, err := s.GetByID(ctx, petID)
	if err != nil {
		return Pet{}, err
	}
	userID = strings.TrimSpace(userID)
	if userID == "" {
		return Pet{}, ErrForbidden
	}
	if p.OwnerUserID == userID {
		return p, nil
	}
	if s.access != nil && s.access.Allows(ctx, p.ID, userID, scope) {
		return p, nil
	}
	return Pet{}, ErrForbidden
}

// OwnerOf expone el ownerUserID de una mascota (caretakers.PetOwnerLookup).
func (s *Service) OwnerOf(ctx context.Context, petID string) (string, error) {
	p, err := s.GetByID(ctx, petID)
	if err != nil {
		return "", err
	}
	return p.OwnerUserID, nil
}
