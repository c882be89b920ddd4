package pets

import (
	"fmt"
	"time"

	"pet-plates/internal/nutrition"
	"pet-plates/internal/recipes"
)

// Sex define el sexo de la mascota.
// @Enum male, female, unknown
type Sex string

const (
	SexMale    Sex = "male"
	SexFemale  Sex = "female"
	SexUnknown Sex = "unknown"
)

func (s Sex) Valid() bool {
	switch s {
	case SexMale, SexFemale, SexUnknown:
		return true
	}
	return false
}

// Pet es el perfil de una mascota tal como lo guarda el dueño.
type Pet struct {
	ID          string
	OwnerUserID string

	Name    string
	Species nutrition.Species // dog, cat, bird, reptile, pocket-pet
	Breed   string
	Sex     Sex

	BirthDate *time.Time
	WeightKg  float64

	// LifeStage explícito (baby/young/adult/senior o edad en años).
	// Vacío => se deriva de BirthDate.
	LifeStage string

	HealthConcerns      []string
	Allergies           []string
	BannedIngredients   []string
	DietaryRestrictions []string

	Notes string

	CreatedAt time.Time
	UpdatedAt time.Time
}

// AgeYears devuelve la edad a la fecha now; false si no hay fecha de nacimiento.
func (p Pet) AgeYears(now time.Time) (float64, bool) {
	if p.BirthDate == nil || p.BirthDate.After(now) {
		return 0, false
	}
	return now.Sub(*p.BirthDate).Hours() / 24 / 365.25, true
}

// Profile arma la entrada del generador para esta mascota.
func (p Pet) Profile(now time.Time) recipes.PetProfile {
	ls := p.LifeStage
	if ls == "" {
		if age, ok := p.AgeYears(now); ok {
			ls = fmt.Sprintf("%.2f", age)
		}
	}
	return recipes.PetProfile{
		ID:                  p.ID,
		Name:                p.Name,
		Species:             string(p.Species),
		WeightKg:            p.WeightKg,
		LifeStage:           ls,
		HealthConcerns:      p.HealthConcerns,
		Allergies:           p.Allergies,
		BannedIngredients:   p.BannedIngredients,
		DietaryRestrictions: p.DietaryRestrictions,
	}
}
