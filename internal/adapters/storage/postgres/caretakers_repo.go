package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"pet-plates/internal/domain/caretakers"
)

type CaretakersRepo struct {
	db *sql.DB
}

func NewCaretakersRepo(db *sql.DB) *CaretakersRepo {
	return &CaretakersRepo{db: db}
}

const grantColumns = `
	id, pet_id, owner_user_id, caretaker_user_id,
	scopes, status, expires_at,
	created_at, updated_at, revoked_at`

func (r *CaretakersRepo) Create(ctx context.Context, g caretakers.Grant) error {
	scopes, err := encodeJSON(scopeStrings(g.Scopes))
	if err != nil {
		return err
	}
	_, err = r.db.ExecContext(ctx, `
		INSERT INTO caretaker_grants (`+grantColumns+`)
		VALUES ($1,$2,$3,$4,$5::jsonb,$6,$7,$8,$9,$10)
	`,
		g.ID,
		g.PetID,
		g.OwnerUserID,
		g.CaretakerUserID,
		scopes,
		string(g.Status),
		toNullTime(g.ExpiresAt),
		g.CreatedAt,
		g.UpdatedAt,
		toNullTime(g.RevokedAt),
	)
	return err
}

func (r *CaretakersRepo) Update(ctx context.Context, g caretakers.Grant) error {
	scopes, err := encodeJSON(scopeStrings(g.Scopes))
	if err != nil {
		return err
	}
	res, err := r.db.ExecContext(ctx, `
		UPDATE caretaker_grants
		SET
			scopes = $2::jsonb,
			status = $3,
			expires_at = $4,
			updated_at = $5,
			revoked_at = $6
		WHERE id = $1
	`,
		g.ID,
		scopes,
		string(g.Status),
		toNullTime(g.ExpiresAt),
		g.UpdatedAt,
		toNullTime(g.RevokedAt),
	)
	if err != nil {
		return err
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return fmt.Errorf("%w: %s", caretakers.ErrNotFound, g.ID)
	}
	return nil
}

func (r *CaretakersRepo) GetByID(ctx context.Context, id string) (caretakers.Grant, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return caretakers.Grant{}, caretakers.ErrNotFound
	}

	row := r.db.QueryRowContext(ctx, `SELECT `+grantColumns+` FROM caretaker_grants WHERE id = $1`, id)
	g, err := scanGrant(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return caretakers.Grant{}, fmt.Errorf("%w: %s", caretakers.ErrNotFound, id)
		}
		return caretakers.Grant{}, err
	}
	return g, nil
}

func (r *CaretakersRepo) ListByPet(ctx context.Context, petID string) ([]caretakers.Grant, error) {
	return r.list(ctx, "pet_id", petID)
}

func (r *CaretakersRepo) ListByCaretaker(ctx context.Context, caretakerUserID string) ([]caretakers.Grant, error) {
	return r.list(ctx, "caretaker_user_id", caretakerUserID)
}

// column viene siempre de este archivo, nunca del request.
func (r *CaretakersRepo) list(ctx context.Context, column, value string) ([]caretakers.Grant, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return nil, nil
	}

	rows, err := r.db.QueryContext(ctx, `
		SELECT `+grantColumns+`
		FROM caretaker_grants
		WHERE `+column+` = $1
		ORDER BY created_at ASC
	`, value)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]caretakers.Grant, 0)
	for rows.Next() {
		g, err := scanGrant(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, g)
	}
	return out, rows.Err()
}

func scanGrant(s scanner) (caretakers.Grant, error) {
	var g caretakers.Grant
	var status string
	var scopes []byte
	var expiresAt, revokedAt sql.NullTime

	if err := s.Scan(
		&g.ID,
		&g.PetID,
		&g.OwnerUserID,
		&g.CaretakerUserID,
		&scopes,
		&status,
		&expiresAt,
		&g.CreatedAt,
		&g.UpdatedAt,
		&revokedAt,
	); err != nil {
		return caretakers.Grant{}, err
	}

	raw, err := decodeStrings(scopes)
	if err != nil {
		return caretakers.Grant{}, err
	}
	g.Scopes = make([]caretakers.Scope, 0, len(raw))
	for _, sc := range raw {
		g.Scopes = append(g.Scopes, caretakers.Scope(sc))
	}
	g.Status = caretakers.Status(status)
	g.ExpiresAt = fromNullTime(expiresAt)
	g.RevokedAt = fromNullTime(revokedAt)
	return g, nil
}

func scopeStrings(in []caretakers.Scope) []string {
	out := make([]string, 0, len(in))
	for _, sc := range in {
		out = append(out, string(sc))
	}
	return out
}

func toNullTime(t *time.Time) sql.NullTime {
	if t == nil {
		return sql.NullTime{}
	}
	return sql.NullTime{Time: *t, Valid: true}
}

func fromNullTime(nt sql.NullTime) *time.Time {
	if !nt.Valid {
		return nil
	}
	t := nt.Time
	return &t
}
