package pets

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strings"
	"time"

	"pet-plates/internal/domain/caretakers"
	"pet-plates/internal/nutrition"

	"github.com/google/uuid"
)

var (
	ErrInvalidInput = errors.New("invalid input")
	ErrNotFound     = errors.New("pet not found")
	ErrForbidden    = errors.New("forbidden")
)

type Service struct {
	repo   Repository
	access Access
	now    func() time.Time
}

func NewService(repo Repository) *Service {
	return &Service{
		repo: repo,
		now:  time.Now,
	}
}

type CreateInput struct {
	Name                string
	Species             string
	Breed               string
	Sex                 string
	BirthDate           *time.Time
	WeightKg            float64
	LifeStage           string
	HealthConcerns      []string
	Allergies           []string
	BannedIngredients   []string
	DietaryRestrictions []string
	Notes               string
}

func (s *Service) Create(ctx context.Context, ownerUserID string, in CreateInput) (Pet, error) {
	if strings.TrimSpace(ownerUserID) == "" {
		return Pet{}, fmt.Errorf("%w: owner required", ErrInvalidInput)
	}
	if strings.TrimSpace(in.Name) == "" {
		return Pet{}, fmt.Errorf("%w: name required", ErrInvalidInput)
	}
	sp, err := nutrition.ParseSpecies(in.Species)
	if err != nil {
		return Pet{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	if err := checkWeight(in.WeightKg); err != nil {
		return Pet{}, err
	}
	sex, err := parseSex(in.Sex)
	if err != nil {
		return Pet{}, err
	}

	now := s.now()
	p := Pet{
		ID:                  uuid.NewString(),
		OwnerUserID:         ownerUserID,
		Name:                strings.TrimSpace(in.Name),
		Species:             sp,
		Breed:               strings.TrimSpace(in.Breed),
		Sex:                 sex,
		BirthDate:           in.BirthDate,
		WeightKg:            in.WeightKg,
		LifeStage:           strings.TrimSpace(in.LifeStage),
		HealthConcerns:      cleanList(in.HealthConcerns),
		Allergies:           cleanList(in.Allergies),
		BannedIngredients:   cleanList(in.BannedIngredients),
		DietaryRestrictions: cleanList(in.DietaryRestrictions),
		Notes:               strings.TrimSpace(in.Notes),
		CreatedAt:           now,
		UpdatedAt:           now,
	}

	if err := s.repo.Create(ctx, p); err != nil {
		return Pet{}, err
	}
	return p, nil
}

// PatchDate distingue "no enviado" de "null" (limpiar).
type PatchDate struct {
	Present bool
	Value   *time.Time
}

// UpdateProfileInput: nil = no tocar. Las listas reemplazan completas.
type UpdateProfileInput struct {
	Name                *string
	Species             *string
	Breed               *string
	Sex                 *string
	BirthDate           PatchDate
	WeightKg            *float64
	LifeStage           *string
	HealthConcerns      *[]string
	Allergies           *[]string
	BannedIngredients   *[]string
	DietaryRestrictions *[]string
	Notes               *string
}

// UpdateProfile aplica un PATCH. Dueño o cuidador con pet:edit_profile.
func (s *Service) UpdateProfile(ctx context.Context, petID, userID string, in UpdateProfileInput) (Pet, error) {
	p, err := s.Authorize(ctx, petID, userID, caretakers.ScopePetEditProfile)
	if err != nil {
		return Pet{}, err
	}

	if in.Name != nil {
		name := strings.TrimSpace(*in.Name)
		if name == "" {
			return Pet{}, fmt.Errorf("%w: name required", ErrInvalidInput)
		}
		p.Name = name
	}
	if in.Species != nil {
		sp, err := nutrition.ParseSpecies(*in.Species)
		if err != nil {
			return Pet{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
		}
		p.Species = sp
	}
	if in.Breed != nil {
		p.Breed = strings.TrimSpace(*in.Breed)
	}
	if in.Sex != nil {
		sex, err := parseSex(*in.Sex)
		if err != nil {
			return Pet{}, err
		}
		p.Sex = sex
	}
	if in.BirthDate.Present {
		p.BirthDate = in.BirthDate.Value
	}
	if in.WeightKg != nil {
		if err := checkWeight(*in.WeightKg); err != nil {
			return Pet{}, err
		}
		p.WeightKg = *in.WeightKg
	}
	if in.LifeStage != nil {
		p.LifeStage = strings.TrimSpace(*in.LifeStage)
	}
	if in.HealthConcerns != nil {
		p.HealthConcerns = cleanList(*in.HealthConcerns)
	}
	if in.Allergies != nil {
		p.Allergies = cleanList(*in.Allergies)
	}
	if in.BannedIngredients != nil {
		p.BannedIngredients = cleanList(*in.BannedIngredients)
	}
	if in.DietaryRestrictions != nil {
		p.DietaryRestrictions = cleanList(*in.DietaryRestrictions)
	}
	if in.Notes != nil {
		p.Notes = strings.TrimSpace(*in.Notes)
	}

	p.UpdatedAt = s.now()
	if err := s.repo.Update(ctx, p); err != nil {
		return Pet{}, err
	}
	return p, nil
}

func (s *Service) GetByID(ctx context.Context, id string) (Pet, error) {
	if strings.TrimSpace(id) == "" {
		return Pet{}, ErrNotFound
	}
	return s.repo.GetByID(ctx, id)
}

func (s *Service) ListByOwner(ctx context.Context, ownerUserID string) ([]Pet, error) {
	return s.repo.ListByOwner(ctx, ownerUserID)
}

// Now expone el reloj del servicio (edad de la mascota al generar).
func (s *Service) Now() time.Time { return s.now() }

func checkWeight(w float64) error {
	if math.IsNaN(w) || math.IsInf(w, 0) || w <= 0 {
		return fmt.Errorf("%w: weight_kg must be positive", ErrInvalidInput)
	}
	return nil
}

func parseSex(raw string) (Sex, error) {
	s := Sex(strings.ToLower(strings.TrimSpace(raw)))
	if s == "" {
		return SexUnknown, nil
	}
	if !s.Valid() {
		return "", fmt.Errorf("%w: sex must be male, female or unknown", ErrInvalidInput)
	}
	return s, nil
}

// cleanList recorta y descarta vacíos y duplicados (sin distinguir mayúsculas).
func cleanList(in []string) []string {
	out := make([]string, 0, len(in))
	seen := map[string]bool{}
	for _, s := range in {
		s = strings.TrimSpace(s)
		k := strings.ToLower(s)
		if s == "" || seen[k] {
			continue
		}
		seen[k] = true
		out = append(out, s)
	}
	return out
}
