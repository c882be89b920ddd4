package caretakers

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

var (
	ErrInvalidInput = errors.New("invalid input")
	ErrForbidden    = errors.New("forbidden")
	ErrNotFound     = errors.New("grant not found")
	ErrBadState     = errors.New("invalid grant state")
)

type Service struct {
	repo Repository
	now  func() time.Time
}

func NewService(repo Repository) *Service {
	return &Service{
		repo: repo,
		now:  time.Now,
	}
}

type InviteInput struct {
	PetID           string
	OwnerUserID     string
	CaretakerUserID string
	Scopes          []Scope
	ExpiresAt       *time.Time
}

// Invite crea la invitación o, si ya hay una viva para el mismo cuidador,
// le reemplaza scopes y vencimiento. Los demás duplicados quedan revocados.
func (s *Service) Invite(ctx context.Context, in InviteInput) (Grant, error) {
	petID := strings.TrimSpace(in.PetID)
	ownerID := strings.TrimSpace(in.OwnerUserID)
	caretakerID := strings.TrimSpace(in.CaretakerUserID)

	if petID == "" || ownerID == "" || caretakerID == "" {
		return Grant{}, fmt.Errorf("%w: pet, owner and caretaker required", ErrInvalidInput)
	}
	if ownerID == caretakerID {
		return Grant{}, fmt.Errorf("%w: owner cannot be its own caretaker", ErrInvalidInput)
	}

	scopes := DefaultScopes
	if len(in.Scopes) > 0 {
		var err error
		if scopes, err = normalizeScopes(in.Scopes); err != nil {
			return Grant{}, err
		}
	}

	now := s.now()
	if in.ExpiresAt != nil && !in.ExpiresAt.After(now) {
		return Grant{}, fmt.Errorf("%w: expires_at must be in the future", ErrInvalidInput)
	}

	items, err := s.repo.ListByPet(ctx, petID)
	if err != nil {
		return Grant{}, err
	}

	var live *Grant
	for i := range items {
		g := items[i]
		if g.OwnerUserID != ownerID || g.CaretakerUserID != caretakerID || g.Status == StatusRevoked {
			continue
		}
		if live == nil || g.UpdatedAt.After(live.UpdatedAt) {
			if live != nil {
				s.revoke(ctx, *live, now)
			}
			live = &items[i]
			continue
		}
		s.revoke(ctx, g, now)
	}

	if live != nil {
		g := *live
		g.Scopes = append([]Scope(nil), scopes...)
		g.ExpiresAt = in.ExpiresAt
		g.UpdatedAt = now
		if err := s.repo.Update(ctx, g); err != nil {
			return Grant{}, err
		}
		return g, nil
	}

	g := Grant{
		ID:              uuid.NewString(),
		PetID:           petID,
		OwnerUserID:     ownerID,
		CaretakerUserID: caretakerID,
		Scopes:          append([]Scope(nil), scopes...),
		Status:          StatusInvited,
		ExpiresAt:       in.ExpiresAt,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
	if err := s.repo.Create(ctx, g); err != nil {
		return Grant{}, err
	}
	return g, nil
}

// Accept es idempotente para el cuidador invitado.
func (s *Service) Accept(ctx context.Context, grantID, caretakerUserID string) (Grant, error) {
	g, err := s.get(ctx, grantID)
	if err != nil {
		return Grant{}, err
	}
	if g.CaretakerUserID != strings.TrimSpace(caretakerUserID) {
		return Grant{}, ErrForbidden
	}

	now := s.now()
	switch {
	case g.Status == StatusRevoked, g.Expired(now):
		return Grant{}, ErrBadState
	case g.Status == StatusActive:
		return g, nil
	}

	g.Status = StatusActive
	g.UpdatedAt = now
	if err := s.repo.Update(ctx, g); err != nil {
		return Grant{}, err
	}
	return g, nil
}

// Revoke lo puede hacer el dueño o el propio cuidador (renuncia).
func (s *Service) Revoke(ctx context.Context, grantID, userID string) (Grant, error) {
	g, err := s.get(ctx, grantID)
	if err != nil {
		return Grant{}, err
	}
	userID = strings.TrimSpace(userID)
	if userID == "" || (g.OwnerUserID != userID && g.CaretakerUserID != userID) {
		return Grant{}, ErrForbidden
	}
	if g.Status == StatusRevoked {
		return g, nil
	}

	now := s.now()
	g.Status = StatusRevoked
	g.UpdatedAt = now
	g.RevokedAt = &now
	if err := s.repo.Update(ctx, g); err != nil {
		return Grant{}, err
	}
	return g, nil
}

func (s *Service) ListByPet(ctx context.Context, petID string) ([]Grant, error) {
	petID = strings.TrimSpace(petID)
	if petID == "" {
		return nil, ErrInvalidInput
	}
	return s.repo.ListByPet(ctx, petID)
}

func (s *Service) ListByCaretaker(ctx context.Context, caretakerUserID string) ([]Grant, error) {
	caretakerUserID = strings.TrimSpace(caretakerUserID)
	if caretakerUserID == "" {
		return nil, ErrInvalidInput
	}
	return s.repo.ListByCaretaker(ctx, caretakerUserID)
}

// Allows informa si userID tiene un grant vigente con scope sobre la mascota.
// Un error del repo cuenta como "no".
func (s *Service) Allows(ctx context.Context, petID, userID string, scope Scope) bool {
	items, err := s.repo.ListByCaretaker(ctx, strings.TrimSpace(userID))
	if err != nil {
		return false
	}
	now := s.now()
	for _, g := range items {
		if g.PetID == petID && g.Allows(scope, now) {
			return true
		}
	}
	return false
}

func (s *Service) get(ctx context.Context, id string) (Grant, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return Grant{}, ErrNotFound
	}
	g, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return Grant{}, err
		}
		return Grant{}, fmt.Errorf("get grant: %w", err)
	}
	return g, nil
}

// best-effort: un fallo deja el duplicado vivo hasta la próxima invitación.
func (s *Service) revoke(ctx context.Context, g Grant, now time.Time) {
	g.Status = StatusRevoked
	g.UpdatedAt = now
	g.RevokedAt = &now
	_ = s.repo.Update(ctx, g)
}

func normalizeScopes(in []Scope) ([]Scope, error) {
	seen := map[Scope]bool{}
	out := make([]Scope, 0, len(in))
	for _, raw := range in {
		sc := Scope(strings.ToLower(strings.TrimSpace(string(raw))))
		if sc == "" {
			continue
		}
		if !knownScopes[sc] {
			return nil, fmt.Errorf("%w: unknown scope %q", ErrInvalidInput, sc)
		}
		if seen[sc] {
			continue
		}
		seen[sc] = true
		out = append(out, sc)
	}
	if len(out) == 0 {
		return nil, fmt.Errorf("%w: scopes required", ErrInvalidInput)
	}
	return out, nil
}
