// Package planner conecta perfiles, comidas guardadas y el generador de recetas.
// Guarda el último lote por mascota en el cache de sugerencias.
package planner

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math/rand/v2"
	"time"

	"pet-plates/internal/domain/caretakers"
	"pet-plates/internal/domain/meals"
	"pet-plates/internal/domain/pets"
	"pet-plates/internal/platform/logger"
	"pet-plates/internal/platform/metrics"
	"pet-plates/internal/ports/cache"
	"pet-plates/internal/recipes"
)

var (
	ErrInvalidInput  = errors.New("invalid input")
	ErrNoRecipe      = errors.New("no recipe could be assembled for this pet")
	ErrNoSuggestions = errors.New("no suggestions for this pet")
)

// Generator es lo que el planner usa de recipes.Generator.
type Generator interface {
	Generate(rng *rand.Rand, req recipes.Request) (*recipes.Recipe, error)
	GenerateBest(rng *rand.Rand, req recipes.Request) (*recipes.Recipe, error)
	GenerateMany(rng *rand.Rand, req recipes.Request, count int) ([]*recipes.Recipe, error)
}

const DefaultMaxBatch = 10

type Options struct {
	Cache    cache.Cache // nil => sin sugerencias guardadas
	CacheTTL time.Duration
	Metrics  *metrics.Metrics
	Logger   logger.Logger
	MaxBatch int
}

type Service struct {
	gen      Generator
	pets     *pets.Service
	meals    *meals.Service
	cache    cache.Cache
	ttl      time.Duration
	metrics  *metrics.Metrics
	log      logger.Logger
	maxBatch int
	now      func() time.Time
}

func NewService(gen Generator, petsSvc *pets.Service, mealsSvc *meals.Service, opts Options) *Service {
	if opts.Logger == nil {
		opts.Logger = logger.NewNop()
	}
	if opts.MaxBatch <= 0 {
		opts.MaxBatch = DefaultMaxBatch
	}
	if opts.CacheTTL <= 0 {
		opts.CacheTTL = 30 * time.Minute
	}
	return &Service{
		gen:      gen,
		pets:     petsSvc,
		meals:    mealsSvc,
		cache:    opts.Cache,
		ttl:      opts.CacheTTL,
		metrics:  opts.Metrics,
		log:      opts.Logger,
		maxBatch: opts.MaxBatch,
		now:      time.Now,
	}
}

// GenerateOptions son las opciones de un pedido.
// Count <= 1 devuelve una sola receta: la mejor de N si Best, si no un único intento.
type GenerateOptions struct {
	BudgetPerMeal  float64
	TargetCalories float64
	Count          int
	Best           bool
	Seed           *uint64
}

// Batch es el resultado de una generación; es también lo que se cachea.
type Batch struct {
	PetID       string            `json:"pet_id,omitempty"`
	Recipes     []*recipes.Recipe `json:"recipes"`
	Seed        *uint64           `json:"seed,omitempty"`
	GeneratedAt time.Time         `json:"generated_at"`
}

// GenerateForPet genera para una mascota del usuario (dueño o cuidador con recipes:generate). Los ingredientes de las comidas
// recientes bajan el puntaje de variedad. El lote queda como sugerencia de la mascota.
func (s *Service) GenerateForPet(ctx context.Context, petID, userID string, opts GenerateOptions) (Batch, error) {
	p, err := s.pets.Authorize(ctx, petID, userID, caretakers.ScopeRecipesGenerate)
	if err != nil {
		return Batch{}, err
	}

	var recent []string
	if s.meals != nil {
		recent, err = s.meals.RecentIngredients(ctx, p.ID)
		if err != nil {
			return Batch{}, fmt.Errorf("recent meals: %w", err)
		}
	}

	b, err := s.run(recipes.Request{
		Pet:            p.Profile(s.now()),
		BudgetPerMeal:  opts.BudgetPerMeal,
		TargetCalories: opts.TargetCalories,
		Recent:         recent,
	}, opts)
	if err != nil {
		return Batch{}, err
	}
	b.PetID = p.ID

	s.store(ctx, b)
	return b, nil
}

// GenerateAnonymous genera para un perfil suelto; no se cachea.
func (s *Service) GenerateAnonymous(ctx context.Context, profile recipes.PetProfile, opts GenerateOptions) (Batch, error) {
	if err := ctx.Err(); err != nil {
		return Batch{}, err
	}
	profile.ID = ""
	return s.run(recipes.Request{
		Pet:            profile,
		BudgetPerMeal:  opts.BudgetPerMeal,
		TargetCalories: opts.TargetCalories,
	}, opts)
}

// Suggestions devuelve el último lote cacheado de la mascota.
func (s *Service) Suggestions(ctx context.Context, petID, userID string) (Batch, error) {
	p, err := s.pets.Authorize(ctx, petID, userID, caretakers.ScopeRecipesGenerate)
	if err != nil {
		return Batch{}, err
	}
	if s.cache == nil {
		return Batch{}, ErrNoSuggestions
	}

	raw, found, err := s.cache.Get(ctx, cacheKey(p.ID))
	if err != nil {
		s.log.Warn("suggestion cache get failed", map[string]any{"pet_id": p.ID, "error": err})
		return Batch{}, ErrNoSuggestions
	}
	s.metrics.ObserveCache(found)
	if !found {
		return Batch{}, ErrNoSuggestions
	}

	var b Batch
	if err := json.Unmarshal(raw, &b); err != nil {
		s.log.Warn("suggestion cache entry unreadable", map[string]any{"pet_id": p.ID, "error": err})
		_ = s.cache.Delete(ctx, cacheKey(p.ID))
		return Batch{}, ErrNoSuggestions
	}
	return b, nil
}

func (s *Service) run(req recipes.Request, opts GenerateOptions) (Batch, error) {
	count := opts.Count
	if count <= 0 {
		count = 1
	}
	if count > s.maxBatch {
		return Batch{}, fmt.Errorf("%w: count must be at most %d", ErrInvalidInput, s.maxBatch)
	}

	var rng *rand.Rand
	if opts.Seed != nil {
		rng = recipes.NewRand(*opts.Seed)
	}

	species := req.Pet.Species
	if sp, err := recipes.CheckRequest(req); err == nil {
		species = string(sp)
	}

	var (
		out []*recipes.Recipe
		err error
	)
	switch {
	case count > 1:
		out, err = s.gen.GenerateMany(rng, req, count)
	case opts.Best:
		var r *recipes.Recipe
		r, err = s.gen.GenerateBest(rng, req)
		if r != nil {
			out = []*recipes.Recipe{r}
		}
	default:
		var r *recipes.Recipe
		r, err = s.gen.Generate(rng, req)
		if r != nil {
			out = []*recipes.Recipe{r}
		}
	}

	if err != nil {
		s.metrics.ObserveGeneration(species, metrics.OutcomeError, 0)
		return Batch{}, err
	}
	if len(out) == 0 {
		s.metrics.ObserveGeneration(species, metrics.OutcomeNone, 0)
		s.log.Info("no recipe assembled", map[string]any{"species": species, "pet_id": req.Pet.ID})
		return Batch{}, ErrNoRecipe
	}
	for _, r := range out {
		s.metrics.ObserveGeneration(species, metrics.OutcomeRecipe, r.Score)
	}

	s.log.Debug("recipes generated", map[string]any{
		"species": species,
		"pet_id":  req.Pet.ID,
		"count":   len(out),
		"best":    out[0].Score,
	})

	return Batch{
		Recipes:     out,
		Seed:        opts.Seed,
		GeneratedAt: s.now().UTC(),
	}, nil
}

// store escribe el lote; un cache caído no hace fallar la generación.
func (s *Service) store(ctx context.Context, b Batch) {
	if s.cache == nil {
		return
	}
	raw, err := json.Marshal(b)
	if err != nil {
		s.log.Warn("suggestion encode failed", map[string]any{"pet_id": b.PetID, "error": err})
		return
	}
	if err := s.cache.Set(ctx, cacheKey(b.PetID), raw, s.ttl); err != nil {
		s.log.Warn("suggestion cache set failed", map[string]any{"pet_id": b.PetID, "error": err})
	}
}

func cacheKey(petID string) string {
	return "pet:" + petID
}
