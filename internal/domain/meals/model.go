package meals

import "time"

type Status string

const (
	StatusActive   Status = "active"
	StatusArchived Status = "archived"
)

// Ingredient es una línea de la comida servida.
type Ingredient struct {
	IngredientID string  `json:"ingredient_id"`
	Name         string  `json:"name"`
	Amount       string  `json:"amount"`
	Grams        float64 `json:"grams"`
}

// Meal es una comida servida a la mascota, normalmente una receta generada.
// Las más recientes alimentan la regla de variedad del generador.
type Meal struct {
	ID    string
	PetID string

	RecipeID string // opcional
	Name     string

	Ingredients []Ingredient

	Score         int
	EstimatedCost float64
	Kcal          float64

	Notes string

	ServedAt   time.Time
	RecordedAt time.Time

	RecordedBy string
	Status     Status
}

// IngredientIDs de la comida, en orden.
func (m Meal) IngredientIDs() []string {
	out := make([]string, 0, len(m.Ingredients))
	for _, i := range m.Ingredients {
		if i.IngredientID != "" {
			out = append(out, i.IngredientID)
		}
	}
	return out
}
