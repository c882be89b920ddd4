package caretakers

import (
	"context"
	"errors"
	"testing"
	"time"
)

type testRepo struct {
	byID map[string]Grant
}

func newTestRepo() *testRepo {
	return &testRepo{byID: map[string]Grant{}}
}

func (r *testRepo) Create(ctx context.Context, g Grant) error {
	if _, ok := r.byID[g.ID]; ok {
		return errors.New("repo: already exists")
	}
	r.byID[g.ID] = g
	return nil
}

func (r *testRepo) Update(ctx context.Context, g Grant) error {
	if _, ok := r.byID[g.ID]; !ok {
		return ErrNotFound
	}
	r.byID[g.ID] = g
	return nil
}

func (r *testRepo) GetByID(ctx context.Context, id string) (Grant, error) {
	g, ok := r.byID[id]
	if !ok {
		return Grant{}, ErrNotFound
	}
	return g, nil
}

func (r *testRepo) ListByPet(ctx context.Context, petID string) ([]Grant, error) {
	out := make([]Grant, 0)
	for _, g := range r.byID {
		if g.PetID == petID {
			out = append(out, g)
		}
	}
	return out, nil
}

func (r *testRepo) ListByCaretaker(ctx context.Context, userID string) ([]Grant, error) {
	out := make([]Grant, 0)
	for _, g := range r.byID {
		if g.CaretakerUserID == userID {
			out = append(out, g)
		}
	}
	return out, nil
}

func newTestService(now time.Time) (*Service, *testRepo, *time.Time) {
	repo := newTestRepo()
	svc := NewService(repo)
	clock := now
	svc.now = func() time.Time { return clock }
	return svc, repo, &clock
}

func TestInvite_DefaultScopes(t *testing.T) {
	now := time.Date(2026, 3, 2, 10, 0, 0, 0, time.UTC)
	svc, _, _ := newTestService(now)

	g, err := svc.Invite(context.Background(), InviteInput{
		PetID:           "pet-1",
		OwnerUserID:     "owner-1",
		CaretakerUserID: "sitter-1",
	})
	if err != nil {
		t.Fatalf("Invite: %v", err)
	}
	if g.Status != StatusInvited {
		t.Fatalf("expected invited, got %s", g.Status)
	}
	if g.CreatedAt != now || g.UpdatedAt != now {
		t.Fatalf("expected timestamps = now")
	}
	if !g.HasScope(ScopePetRead) || !g.HasScope(ScopeMealsRead) || g.HasScope(ScopeMealsLog) {
		t.Fatalf("unexpected default scopes: %v", g.Scopes)
	}
}

func TestInvite_RejectsInvalid(t *testing.T) {
	now := time.Date(2026, 3, 2, 10, 0, 0, 0, time.UTC)
	svc, _, _ := newTestService(now)
	past := now.Add(-time.Hour)

	cases := map[string]InviteInput{
		"self":          {PetID: "pet-1", OwnerUserID: "owner-1", CaretakerUserID: "owner-1"},
		"no caretaker":  {PetID: "pet-1", OwnerUserID: "owner-1"},
		"unknown scope": {PetID: "pet-1", OwnerUserID: "owner-1", CaretakerUserID: "sitter-1", Scopes: []Scope{ScopeMealsRead, "vet:prescribe"}},
		"blank scopes":  {PetID: "pet-1", OwnerUserID: "owner-1", CaretakerUserID: "sitter-1", Scopes: []Scope{" "}},
		"expired":       {PetID: "pet-1", OwnerUserID: "owner-1", CaretakerUserID: "sitter-1", ExpiresAt: &past},
	}
	for name, in := range cases {
		if _, err := svc.Invite(context.Background(), in); !errors.Is(err, ErrInvalidInput) {
			t.Fatalf("%s: expected ErrInvalidInput, got %v", name, err)
		}
	}
}

func TestInvite_ReinviteUpdatesSameGrant(t *testing.T) {
	now := time.Date(2026, 3, 2, 10, 0, 0, 0, time.UTC)
	svc, repo, clock := newTestService(now)
	ctx := context.Background()

	g1, err := svc.Invite(ctx, InviteInput{PetID: "pet-1", OwnerUserID: "owner-1", CaretakerUserID: "sitter-1", Scopes: []Scope{ScopeMealsRead}})
	if err != nil {
		t.Fatalf("Invite #1: %v", err)
	}

	*clock = now.Add(5 * time.Minute)
	until := now.Add(7 * 24 * time.Hour)
	g2, err := svc.Invite(ctx, InviteInput{
		PetID:           "pet-1",
		OwnerUserID:     "owner-1",
		CaretakerUserID: "sitter-1",
		Scopes:          []Scope{"MEALS:LOG", ScopeMealsRead, ScopeMealsLog},
		ExpiresAt:       &until,
	})
	if err != nil {
		t.Fatalf("Invite #2: %v", err)
	}
	if g2.ID != g1.ID {
		t.Fatalf("expected same grant, got %s vs %s", g1.ID, g2.ID)
	}
	if len(g2.Scopes) != 2 || !g2.HasScope(ScopeMealsLog) {
		t.Fatalf("expected deduped scopes [meals:log meals:read], got %v", g2.Scopes)
	}
	if g2.ExpiresAt == nil || !g2.ExpiresAt.Equal(until) {
		t.Fatalf("expected expiry updated, got %v", g2.ExpiresAt)
	}
	if len(repo.byID) != 1 {
		t.Fatalf("expected a single stored grant, got %d", len(repo.byID))
	}
}

func TestInvite_RevokesDuplicates(t *testing.T) {
	now := time.Date(2026, 3, 2, 10, 0, 0, 0, time.UTC)
	svc, repo, _ := newTestService(now)
	ctx := context.Background()

	for i, id := range []string{"g1", "g2", "g3"} {
		_ = repo.Create(ctx, Grant{
			ID:              id,
			PetID:           "pet-1",
			OwnerUserID:     "owner-1",
			CaretakerUserID: "sitter-1",
			Scopes:          []Scope{ScopeMealsRead},
			Status:          StatusInvited,
			CreatedAt:       now.Add(-time.Hour),
			UpdatedAt:       now.Add(time.Duration(i-10) * time.Minute),
		})
	}

	g, err := svc.Invite(ctx, InviteInput{PetID: "pet-1", OwnerUserID: "owner-1", CaretakerUserID: "sitter-1"})
	if err != nil {
		t.Fatalf("Invite: %v", err)
	}
	if g.ID != "g3" {
		t.Fatalf("expected most recent grant g3 to win, got %s", g.ID)
	}
	for _, id := range []string{"g1", "g2"} {
		if repo.byID[id].Status != StatusRevoked || repo.byID[id].RevokedAt == nil {
			t.Fatalf("expected %s revoked, got %+v", id, repo.byID[id])
		}
	}
}

func TestAccept_ActivatesAndIsIdempotent(t *testing.T) {
	now := time.Date(2026, 3, 2, 10, 0, 0, 0, time.UTC)
	svc, _, clock := newTestService(now)
	ctx := context.Background()

	g, err := svc.Invite(ctx, InviteInput{PetID: "pet-1", OwnerUserID: "owner-1", CaretakerUserID: "sitter-1"})
	if err != nil {
		t.Fatalf("Invite: %v", err)
	}

	if _, err := svc.Accept(ctx, g.ID, "someone-else"); !errors.Is(err, ErrForbidden) {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}
	if _, err := svc.Accept(ctx, "missing", "sitter-1"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}

	*clock = now.Add(time.Minute)
	a1, err := svc.Accept(ctx, g.ID, "sitter-1")
	if err != nil || a1.Status != StatusActive {
		t.Fatalf("expected active, got %v %v", a1.Status, err)
	}
	a2, err := svc.Accept(ctx, g.ID, "sitter-1")
	if err != nil || a2.Status != StatusActive || a2.UpdatedAt != a1.UpdatedAt {
		t.Fatalf("expected idempotent accept, got %+v %v", a2, err)
	}
}

func TestAccept_ExpiredOrRevoked(t *testing.T) {
	now := time.Date(2026, 3, 2, 10, 0, 0, 0, time.UTC)
	svc, _, clock := newTestService(now)
	ctx := context.Background()

	until := now.Add(time.Hour)
	g, _ := svc.Invite(ctx, InviteInput{PetID: "pet-1", OwnerUserID: "owner-1", CaretakerUserID: "sitter-1", ExpiresAt: &until})

	*clock = now.Add(2 * time.Hour)
	if _, err := svc.Accept(ctx, g.ID, "sitter-1"); !errors.Is(err, ErrBadState) {
		t.Fatalf("expected ErrBadState for expired invite, got %v", err)
	}

	*clock = now
	g2, _ := svc.Invite(ctx, InviteInput{PetID: "pet-2", OwnerUserID: "owner-1", CaretakerUserID: "sitter-1"})
	if _, err := svc.Revoke(ctx, g2.ID, "owner-1"); err != nil {
		t.Fatalf("Revoke: %v", err)
	}
	if _, err := svc.Accept(ctx, g2.ID, "sitter-1"); !errors.Is(err, ErrBadState) {
		t.Fatalf("expected ErrBadState for revoked invite, got %v", err)
	}
}

func TestRevoke_OwnerOrCaretaker(t *testing.T) {
	now := time.Date(2026, 3, 2, 10, 0, 0, 0, time.UTC)
	svc, _, _ := newTestService(now)
	ctx := context.Background()

	g, _ := svc.Invite(ctx, InviteInput{PetID: "pet-1", OwnerUserID: "owner-1", CaretakerUserID: "sitter-1"})

	if _, err := svc.Revoke(ctx, g.ID, "stranger"); !errors.Is(err, ErrForbidden) {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}
	r1, err := svc.Revoke(ctx, g.ID, "sitter-1")
	if err != nil || r1.Status != StatusRevoked || r1.RevokedAt == nil {
		t.Fatalf("expected caretaker to leave, got %+v %v", r1, err)
	}
	r2, err := svc.Revoke(ctx, g.ID, "owner-1")
	if err != nil || r2.Status != StatusRevoked {
		t.Fatalf("expected idempotent revoke, got %+v %v", r2, err)
	}
}

func TestAllows(t *testing.T) {
	now := time.Date(2026, 3, 2, 10, 0, 0, 0, time.UTC)
	svc, _, clock := newTestService(now)
	ctx := context.Background()

	until := now.Add(24 * time.Hour)
	g, _ := svc.Invite(ctx, InviteInput{
		PetID:           "pet-1",
		OwnerUserID:     "owner-1",
		CaretakerUserID: "sitter-1",
		Scopes:          []Scope{ScopeMealsLog, ScopeRecipesGenerate},
		ExpiresAt:       &until,
	})

	if svc.Allows(ctx, "pet-1", "sitter-1", ScopeMealsLog) {
		t.Fatalf("pending invite must not grant access")
	}
	if _, err := svc.Accept(ctx, g.ID, "sitter-1"); err != nil {
		t.Fatalf("Accept: %v", err)
	}

	if !svc.Allows(ctx, "pet-1", "sitter-1", ScopeMealsLog) {
		t.Fatalf("expected meals:log allowed")
	}
	if svc.Allows(ctx, "pet-1", "sitter-1", ScopePetEditProfile) {
		t.Fatalf("pet:edit_profile was not granted")
	}
	if svc.Allows(ctx, "pet-2", "sitter-1", ScopeMealsLog) {
		t.Fatalf("grant is scoped to pet-1")
	}

	*clock = until
	if svc.Allows(ctx, "pet-1", "sitter-1", ScopeMealsLog) {
		t.Fatalf("expired grant must not grant access")
	}
}
