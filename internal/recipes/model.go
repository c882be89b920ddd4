package recipes

import (
	"errors"
	"sort"
	"strings"
	"time"

	"pet-plates/internal/nutrition"
)

var (
	ErrInvalidInput       = errors.New("invalid input")
	ErrUnsupportedSpecies = nutrition.ErrUnsupportedSpecies
	ErrInvalidWeight      = errors.New("weight must be a positive number of kilograms")
	ErrInvalidCount       = errors.New("count must be positive")
)

// PetProfile es la entrada inmutable de la generación. Los campos opcionales vacíos no restringen nada.
type PetProfile struct {
	ID       string
	Name     string
	Species  string
	WeightKg float64

	// baby|young|adult|senior o edad en años ("3", "0.5")
	LifeStage string

	HealthConcerns      []string
	Allergies           []string
	BannedIngredients   []string
	DietaryRestrictions []string
}

// Request son las opciones de una generación.
type Request struct {
	Pet PetProfile

	// Tope blando de costo por comida en USD. 0 = sin presupuesto.
	BudgetPerMeal float64
	// kcal objetivo por comida. 0 = cantidades heurísticas.
	TargetCalories float64

	// Ingredientes servidos hace poco (ids o nombres); bajan el puntaje de variedad.
	Recent []string
}

// Line es un ingrediente de la receta con su cantidad.
type Line struct {
	IngredientID string             `json:"ingredient_id"`
	Name         string             `json:"name"`
	Category     nutrition.Category `json:"category"`
	Amount       string             `json:"amount"`
	Grams        float64            `json:"grams"`
	Cost         float64            `json:"cost"`
}

// Breakdown son los sub-puntajes 0-100.
type Breakdown struct {
	Nutrition int `json:"nutrition"`
	Health    int `json:"health"`
	Cost      int `json:"cost"`
	Variety   int `json:"variety"`
	Quality   int `json:"quality"`
}

type Portion struct {
	ServingSize      string  `json:"serving_size"`
	ServingSizeGrams float64 `json:"serving_size_grams"`
	ServingsPerDay   int     `json:"servings_per_day"`
	DailyCalories    int     `json:"daily_calories"`
}

// Recipe es un candidato completo. No se persiste acá.
type Recipe struct {
	ID        string              `json:"id"`
	Name      string              `json:"name"`
	PetID     string              `json:"pet_id,omitempty"`
	Species   nutrition.Species   `json:"species"`
	LifeStage nutrition.LifeStage `json:"life_stage"`

	Ingredients []Line           `json:"ingredients"`
	Nutrition   nutrition.Totals `json:"nutrition"`
	CaPRatio    float64          `json:"ca_p_ratio"`

	EstimatedCost float64          `json:"estimated_cost"`
	Score         int              `json:"score"`
	Breakdown     Breakdown        `json:"score_breakdown"`
	Validation    nutrition.Result `json:"validation"`

	Instructions []string `json:"instructions"`
	Portion      Portion  `json:"portion"`
	Explanation  string   `json:"explanation"`

	GeneratedAt time.Time `json:"generated_at"`
}

// IngredientNames devuelve los nombres de los ingredientes en orden de receta.
func (r *Recipe) IngredientNames() []string {
	out := make([]string, 0, len(r.Ingredients))
	for _, l := range r.Ingredients {
		out = append(out, l.Name)
	}
	return out
}

// IngredientIDs devuelve los ids de los ingredientes en orden de receta.
func (r *Recipe) IngredientIDs() []string {
	out := make([]string, 0, len(r.Ingredients))
	for _, l := range r.Ingredients {
		out = append(out, l.IngredientID)
	}
	return out
}

// Signature identifica el conjunto de ingredientes sin importar el orden.
func (r *Recipe) Signature() string {
	keys := make([]string, 0, len(r.Ingredients))
	for _, l := range r.Ingredients {
		keys = append(keys, nutrition.NormalizeKey(l.Name))
	}
	sort.Strings(keys)
	return strings.Join(keys, "|")
}
