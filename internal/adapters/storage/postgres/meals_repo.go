package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"pet-plates/internal/domain/meals"
)

type MealsRepo struct {
	db *sql.DB
}

func NewMealsRepo(db *sql.DB) *MealsRepo {
	return &MealsRepo{db: db}
}

const mealColumns = `
	id, pet_id, recipe_id, name, ingredients,
	score, estimated_cost, kcal, notes,
	served_at, recorded_at, recorded_by, status`

func (r *MealsRepo) Create(ctx context.Context, m meals.Meal) error {
	ings := m.Ingredients
	if ings == nil {
		ings = []meals.Ingredient{}
	}
	raw, err := encodeJSON(ings)
	if err != nil {
		return err
	}
	_, err = r.db.ExecContext(ctx, `
		INSERT INTO meals (`+mealColumns+`)
		VALUES ($1,$2,$3,$4,$5::jsonb,$6,$7,$8,$9,$10,$11,$12,$13)
	`,
		m.ID,
		m.PetID,
		m.RecipeID,
		m.Name,
		raw,
		m.Score,
		m.EstimatedCost,
		m.Kcal,
		m.Notes,
		m.ServedAt,
		m.RecordedAt,
		m.RecordedBy,
		string(m.Status),
	)
	return err
}

func (r *MealsRepo) GetByID(ctx context.Context, id string) (meals.Meal, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return meals.Meal{}, meals.ErrNotFound
	}

	m, err := scanMeal(r.db.QueryRowContext(ctx, `SELECT `+mealColumns+` FROM meals WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return meals.Meal{}, fmt.Errorf("%w: %s", meals.ErrNotFound, id)
		}
		return meals.Meal{}, err
	}
	return m, nil
}

func (r *MealsRepo) ListByPet(ctx context.Context, petID string, filter meals.ListFilter) ([]meals.Meal, error) {
	petID = strings.TrimSpace(petID)
	if petID == "" {
		return nil, nil
	}

	sb := strings.Builder{}
	sb.WriteString(`SELECT ` + mealColumns + ` FROM meals WHERE pet_id = $1`)

	args := []any{petID}
	argN := 2

	if !filter.IncludeArchived {
		sb.WriteString(fmt.Sprintf(" AND status = $%d", argN))
		args = append(args, string(meals.StatusActive))
		argN++
	}
	if filter.From != nil {
		sb.WriteString(fmt.Sprintf(" AND served_at >= $%d", argN))
		args = append(args, *filter.From)
		argN++
	}
	if filter.To != nil {
		sb.WriteString(fmt.Sprintf(" AND served_at <= $%d", argN))
		args = append(args, *filter.To)
		argN++
	}

	limit := filter.Limit
	if limit <= 0 {
		limit = 50
	}
	if limit > 200 {
		limit = 200
	}

	sb.WriteString(" ORDER BY served_at DESC, recorded_at DESC")
	sb.WriteString(fmt.Sprintf(" LIMIT $%d", argN))
	args = append(args, limit)

	rows, err := r.db.QueryContext(ctx, sb.String(), args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]meals.Meal, 0)
	for rows.Next() {
		m, err := scanMeal(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, m)
	}
	return out, rows.Err()
}

func (r *MealsRepo) Archive(ctx context.Context, id string) error {
	id = strings.TrimSpace(id)
	if id == "" {
		return meals.ErrNotFound
	}

	res, err := r.db.ExecContext(ctx, `UPDATE meals SET status = $2 WHERE id = $1`, id, string(meals.StatusArchived))
	if err != nil {
		return err
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return fmt.Errorf("%w: %s", meals.ErrNotFound, id)
	}
	return nil
}

func scanMeal(s scanner) (meals.Meal, error) {
	var m meals.Meal
	var raw []byte
	var status string
	if err := s.Scan(
		&m.ID,
		&m.PetID,
		&m.RecipeID,
		&m.Name,
		&raw,
		&m.Score,
		&m.EstimatedCost,
		&m.Kcal,
		&m.Notes,
		&m.ServedAt,
		&m.RecordedAt,
		&m.RecordedBy,
		&status,
	); err != nil {
		return meals.Meal{}, err
	}
	m.Status = meals.Status(status)

	m.Ingredients = []meals.Ingredient{}
	if len(raw) > 0 {
		if err := json.Unmarshal(raw, &m.Ingredients); err != nil {
			return meals.Meal{}, fmt.Errorf("decode meal ingredients: %w", err)
		}
	}
	return m, nil
}
