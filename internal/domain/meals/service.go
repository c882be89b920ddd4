package meals

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strings"
	"time"

	"pet-plates/internal/recipes"

	"github.com/google/uuid"
)

var (
	ErrInvalidInput = errors.New("invalid input")
	ErrNotFound     = errors.New("meal not found")
	ErrNoAnalyzer   = errors.New("meal analysis not configured")
)

// Analyzer es lo que meals usa de recipes.Generator.
type Analyzer interface {
	Analyze(req recipes.AnalyzeRequest) (*recipes.Analysis, error)
}

// RecentWindow es cuántas comidas cuentan como "recientes" para la variedad.
const RecentWindow = 5

type Service struct {
	repo     Repository
	analyzer Analyzer
	now      func() time.Time
}

func NewService(repo Repository) *Service {
	return &Service{
		repo: repo,
		now:  time.Now,
	}
}

// WithAnalyzer hace que Create calcule puntaje, kcal y costo en el servidor.
// Sin analyzer esos campos quedan en cero.
func (s *Service) WithAnalyzer(a Analyzer) *Service {
	s.analyzer = a
	return s
}

type CreateInput struct {
	// Perfil de la mascota para el análisis; ID es el de la mascota.
	Pet         recipes.PetProfile
	RecipeID    string
	Name        string
	Ingredients []Ingredient
	Notes       string
	ServedAt    time.Time // zero => ahora
}

func (s *Service) Create(ctx context.Context, petID, recordedBy string, in CreateInput) (Meal, error) {
	if strings.TrimSpace(petID) == "" || strings.TrimSpace(recordedBy) == "" {
		return Meal{}, fmt.Errorf("%w: pet and user required", ErrInvalidInput)
	}
	if len(in.Ingredients) == 0 {
		return Meal{}, fmt.Errorf("%w: at least one ingredient required", ErrInvalidInput)
	}
	ings := make([]Ingredient, 0, len(in.Ingredients))
	for _, i := range in.Ingredients {
		i.IngredientID = strings.TrimSpace(i.IngredientID)
		i.Name = strings.TrimSpace(i.Name)
		if i.IngredientID == "" && i.Name == "" {
			return Meal{}, fmt.Errorf("%w: ingredient needs id or name", ErrInvalidInput)
		}
		if i.Grams < 0 || math.IsNaN(i.Grams) {
			return Meal{}, fmt.Errorf("%w: grams must not be negative", ErrInvalidInput)
		}
		ings = append(ings, i)
	}

	now := s.now()
	served := in.ServedAt
	if served.IsZero() {
		served = now
	}
	if served.After(now.Add(24 * time.Hour)) {
		return Meal{}, fmt.Errorf("%w: served_at is too far in the future", ErrInvalidInput)
	}

	name := strings.TrimSpace(in.Name)
	if name == "" {
		name = "Meal"
	}

	m := Meal{
		ID:          uuid.NewString(),
		PetID:       petID,
		RecipeID:    strings.TrimSpace(in.RecipeID),
		Name:        name,
		Ingredients: ings,
		Notes:       strings.TrimSpace(in.Notes),
		ServedAt:    served.UTC(),
		RecordedAt:  now.UTC(),
		RecordedBy:  recordedBy,
		Status:      StatusActive,
	}
	if err := s.score(ctx, petID, in.Pet, &m); err != nil {
		return Meal{}, err
	}
	if err := s.repo.Create(ctx, m); err != nil {
		return Meal{}, err
	}
	return m, nil
}

func (s *Service) GetByID(ctx context.Context, id string) (Meal, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return Meal{}, ErrNotFound
	}
	return s.repo.GetByID(ctx, id)
}

func (s *Service) ListByPet(ctx context.Context, petID string, filter ListFilter) ([]Meal, error) {
	return s.repo.ListByPet(ctx, petID, filter)
}

// Archive marca la comida como archivada (no se borra) y deja de contar como reciente.
func (s *Service) Archive(ctx context.Context, id string) (Meal, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return Meal{}, ErrNotFound
	}
	if err := s.repo.Archive(ctx, id); err != nil {
		return Meal{}, err
	}
	return s.repo.GetByID(ctx, id)
}

// RecentIngredients junta los ids de las últimas RecentWindow comidas activas, sin repetir.
func (s *Service) RecentIngredients(ctx context.Context, petID string) ([]string, error) {
	items, err := s.repo.ListByPet(ctx, petID, ListFilter{Limit: RecentWindow})
	if err != nil {
		return nil, err
	}
	seen := map[string]bool{}
	out := make([]string, 0)
	for _, m := range items {
		for _, id := range m.IngredientIDs() {
			if seen[id] {
				continue
			}
			seen[id] = true
			out = append(out, id)
		}
	}
	return out, nil
}

// AnalyzeInput es una comida propuesta, todavía no servida.
type AnalyzeInput struct {
	Ingredients   []Ingredient
	BudgetPerMeal float64
}

// Analyze evalúa la comida contra el perfil. Los ingredientes de las comidas recientes
// bajan la variedad igual que en la generación.
func (s *Service) Analyze(ctx context.Context, pet recipes.PetProfile, in AnalyzeInput) (*recipes.Analysis, error) {
	if s.analyzer == nil {
		return nil, ErrNoAnalyzer
	}
	if strings.TrimSpace(pet.ID) == "" {
		return nil, fmt.Errorf("%w: pet required", ErrInvalidInput)
	}
	recent, err := s.RecentIngredients(ctx, pet.ID)
	if err != nil {
		return nil, fmt.Errorf("recent meals: %w", err)
	}
	return s.analyzer.Analyze(recipes.AnalyzeRequest{
		Pet:           pet,
		Items:         mealItems(in.Ingredients),
		BudgetPerMeal: in.BudgetPerMeal,
		Recent:        recent,
	})
}

// score completa puntaje, kcal, costo e ids del catálogo a partir del análisis.
// Las líneas sin gramos se guardan pero no entran al cálculo.
func (s *Service) score(ctx context.Context, petID string, pet recipes.PetProfile, m *Meal) error {
	if s.analyzer == nil {
		return nil
	}
	idx := make([]int, 0, len(m.Ingredients))
	lines := make([]Ingredient, 0, len(m.Ingredients))
	for i, ing := range m.Ingredients {
		if ing.Grams > 0 {
			idx = append(idx, i)
			lines = append(lines, ing)
		}
	}
	if len(lines) == 0 {
		return nil
	}

	pet.ID = petID
	a, err := s.Analyze(ctx, pet, AnalyzeInput{Ingredients: lines})
	if err != nil {
		return err
	}
	m.Score = a.Score
	m.Kcal = a.Nutrition.Kcal
	m.EstimatedCost = a.EstimatedCost
	for j, l := range a.Ingredients {
		if j >= len(idx) || l.IngredientID == "" {
			continue
		}
		ing := &m.Ingredients[idx[j]]
		ing.IngredientID = l.IngredientID
		if ing.Name == "" {
			ing.Name = l.Name
		}
	}
	return nil
}

func mealItems(ings []Ingredient) []recipes.MealItem {
	out := make([]recipes.MealItem, 0, len(ings))
	for _, i := range ings {
		out = append(out, recipes.MealItem{IngredientID: i.IngredientID, Name: i.Name, Grams: i.Grams})
	}
	return out
}
