package caretakers

import (
	"slices"
	"time"
)

// Scope es un permiso puntual que el dueño delega sobre una mascota.
type Scope string

const (
	ScopePetRead         Scope = "pet:read"
	ScopePetEditProfile  Scope = "pet:edit_profile"
	ScopeMealsRead       Scope = "meals:read"
	ScopeMealsLog        Scope = "meals:log"
	ScopeMealsArchive    Scope = "meals:archive"
	ScopeRecipesGenerate Scope = "recipes:generate"
)

// DefaultScopes se aplican cuando la invitación no trae scopes.
var DefaultScopes = []Scope{ScopePetRead, ScopeMealsRead}

var knownScopes = map[Scope]bool{
	ScopePetRead:         true,
	ScopePetEditProfile:  true,
	ScopeMealsRead:       true,
	ScopeMealsLog:        true,
	ScopeMealsArchive:    true,
	ScopeRecipesGenerate: true,
}

type Status string

const (
	StatusInvited Status = "invited"
	StatusActive  Status = "active"
	StatusRevoked Status = "revoked"
)

// Grant: el dueño comparte una mascota con un cuidador (paseador, familiar, etc.).
type Grant struct {
	ID    string
	PetID string

	OwnerUserID     string
	CaretakerUserID string

	Scopes []Scope
	Status Status

	// ExpiresAt nil => sin vencimiento.
	ExpiresAt *time.Time

	CreatedAt time.Time
	UpdatedAt time.Time
	RevokedAt *time.Time
}

func (g Grant) HasScope(scope Scope) bool {
	return slices.Contains(g.Scopes, scope)
}

func (g Grant) Expired(now time.Time) bool {
	return g.ExpiresAt != nil && !now.Before(*g.ExpiresAt)
}

// Allows: activo, vigente y con el scope.
func (g Grant) Allows(scope Scope, now time.Time) bool {
	return g.Status == StatusActive && !g.Expired(now) && g.HasScope(scope)
}
