package planner

import (
	"context"
	"errors"
	"math/rand/v2"
	"testing"

	memcache "pet-plates/internal/adapters/cache/memory"
	"pet-plates/internal/adapters/storage/memory"
	"pet-plates/internal/domain/meals"
	"pet-plates/internal/domain/pets"
	"pet-plates/internal/platform/metrics"
	"pet-plates/internal/recipes"

	"github.com/prometheus/client_golang/prometheus/testutil"
)

type fixture struct {
	svc     *Service
	pets    *pets.Service
	meals   *meals.Service
	cache   *memcache.Cache
	metrics *metrics.Metrics
	pet     pets.Pet
}

func newFixture(t *testing.T, gen Generator) fixture {
	t.Helper()

	if gen == nil {
		g, err := recipes.NewDefaultGenerator(recipes.DefaultConfig())
		if err != nil {
			t.Fatalf("generator: %v", err)
		}
		gen = g
	}
	m, err := metrics.New()
	if err != nil {
		t.Fatalf("metrics: %v", err)
	}

	petsSvc := pets.NewService(memory.NewPetRepo())
	mealsSvc := meals.NewService(memory.NewMealRepo())
	c := memcache.New(0)

	p, err := petsSvc.Create(context.Background(), "owner-1", pets.CreateInput{
		Name: "Max", Species: "dog", WeightKg: 20, LifeStage: "adult",
		Allergies: []string{"chicken"},
	})
	if err != nil {
		t.Fatalf("create pet: %v", err)
	}

	return fixture{
		svc:     NewService(gen, petsSvc, mealsSvc, Options{Cache: c, Metrics: m, MaxBatch: 5}),
		pets:    petsSvc,
		meals:   mealsSvc,
		cache:   c,
		metrics: m,
		pet:     p,
	}
}

func seed(v uint64) *uint64 { return &v }

func TestGenerateForPet_BestAndCached(t *testing.T) {
	f := newFixture(t, nil)
	ctx := context.Background()

	b, err := f.svc.GenerateForPet(ctx, f.pet.ID, "owner-1", GenerateOptions{Best: true, Seed: seed(7)})
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if len(b.Recipes) != 1 || b.PetID != f.pet.ID {
		t.Fatalf("unexpected batch: %+v", b)
	}
	for _, l := range b.Recipes[0].Ingredients {
		if recipes.NameMatches("chicken", l.Name) {
			t.Fatalf("allergen in recipe: %s", l.Name)
		}
	}

	got, err := f.svc.Suggestions(ctx, f.pet.ID, "owner-1")
	if err != nil {
		t.Fatalf("suggestions: %v", err)
	}
	if len(got.Recipes) != 1 || got.Recipes[0].ID != b.Recipes[0].ID {
		t.Fatalf("cached batch differs: %+v", got)
	}
	if v := testutil.ToFloat64(f.metrics.Generations.WithLabelValues("dog", metrics.OutcomeRecipe)); v != 1 {
		t.Fatalf("generation counter = %v", v)
	}
	if v := testutil.ToFloat64(f.metrics.CacheLookups.WithLabelValues("hit")); v != 1 {
		t.Fatalf("cache hit counter = %v", v)
	}
}

func TestGenerateForPet_SameSeedSameIngredients(t *testing.T) {
	f := newFixture(t, nil)
	ctx := context.Background()

	a, err := f.svc.GenerateForPet(ctx, f.pet.ID, "owner-1", GenerateOptions{Best: true, Seed: seed(42)})
	if err != nil {
		t.Fatalf("generate a: %v", err)
	}
	b, err := f.svc.GenerateForPet(ctx, f.pet.ID, "owner-1", GenerateOptions{Best: true, Seed: seed(42)})
	if err != nil {
		t.Fatalf("generate b: %v", err)
	}
	if a.Recipes[0].Signature() != b.Recipes[0].Signature() {
		t.Fatalf("same seed gave %q and %q", a.Recipes[0].Signature(), b.Recipes[0].Signature())
	}
}

func TestGenerateForPet_Batch(t *testing.T) {
	f := newFixture(t, nil)
	ctx := context.Background()

	b, err := f.svc.GenerateForPet(ctx, f.pet.ID, "owner-1", GenerateOptions{Count: 3, Seed: seed(3)})
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if len(b.Recipes) == 0 || len(b.Recipes) > 3 {
		t.Fatalf("unexpected batch size %d", len(b.Recipes))
	}
	sigs := map[string]bool{}
	for _, r := range b.Recipes {
		if sigs[r.Signature()] {
			t.Fatalf("duplicate recipe in batch: %s", r.Signature())
		}
		sigs[r.Signature()] = true
	}

	if _, err := f.svc.GenerateForPet(ctx, f.pet.ID, "owner-1", GenerateOptions{Count: 6}); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput over max batch, got %v", err)
	}
}

// recordingGen guarda el último Request para revisar qué arma el planner.
type recordingGen struct {
	last    recipes.Request
	nothing bool
}

func (g *recordingGen) Generate(_ *rand.Rand, req recipes.Request) (*recipes.Recipe, error) {
	g.last = req
	if g.nothing {
		return nil, nil
	}
	return &recipes.Recipe{ID: "r1", Species: "dog", Score: 50}, nil
}

func (g *recordingGen) GenerateBest(rng *rand.Rand, req recipes.Request) (*recipes.Recipe, error) {
	return g.Generate(rng, req)
}

func (g *recordingGen) GenerateMany(rng *rand.Rand, req recipes.Request, _ int) ([]*recipes.Recipe, error) {
	r, err := g.Generate(rng, req)
	if r == nil {
		return nil, err
	}
	return []*recipes.Recipe{r}, err
}

func TestGenerateForPet_UsesRecentMeals(t *testing.T) {
	gen := &recordingGen{}
	f := newFixture(t, gen)
	ctx := context.Background()

	if _, err := f.meals.Create(ctx, f.pet.ID, "owner-1", meals.CreateInput{
		Ingredients: []meals.Ingredient{{IngredientID: "salmon", Grams: 150}, {IngredientID: "rice", Grams: 50}},
	}); err != nil {
		t.Fatalf("create meal: %v", err)
	}

	if _, err := f.svc.GenerateForPet(ctx, f.pet.ID, "owner-1", GenerateOptions{BudgetPerMeal: 3}); err != nil {
		t.Fatalf("generate: %v", err)
	}
	if len(gen.last.Recent) != 2 || gen.last.Recent[0] != "salmon" {
		t.Fatalf("recent not forwarded: %v", gen.last.Recent)
	}
	if gen.last.BudgetPerMeal != 3 || gen.last.Pet.Species != "dog" || gen.last.Pet.ID != f.pet.ID {
		t.Fatalf("unexpected request: %+v", gen.last)
	}
}

func TestGenerateForPet_NoRecipe(t *testing.T) {
	f := newFixture(t, &recordingGen{nothing: true})
	ctx := context.Background()

	if _, err := f.svc.GenerateForPet(ctx, f.pet.ID, "owner-1", GenerateOptions{}); !errors.Is(err, ErrNoRecipe) {
		t.Fatalf("expected ErrNoRecipe, got %v", err)
	}
	if f.cache.Len() != 0 {
		t.Fatalf("nothing should be cached")
	}
	if v := testutil.ToFloat64(f.metrics.Generations.WithLabelValues("dog", metrics.OutcomeNone)); v != 1 {
		t.Fatalf("none counter = %v", v)
	}
	if _, err := f.svc.Suggestions(ctx, f.pet.ID, "owner-1"); !errors.Is(err, ErrNoSuggestions) {
		t.Fatalf("expected ErrNoSuggestions, got %v", err)
	}
}

func TestGenerateForPet_Permissions(t *testing.T) {
	f := newFixture(t, &recordingGen{})
	ctx := context.Background()

	if _, err := f.svc.GenerateForPet(ctx, f.pet.ID, "intruder", GenerateOptions{}); !errors.Is(err, pets.ErrForbidden) {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}
	if _, err := f.svc.GenerateForPet(ctx, "missing", "owner-1", GenerateOptions{}); !errors.Is(err, pets.ErrNotFound) {
		t.Fatalf("expected pets.ErrNotFound, got %v", err)
	}
	if _, err := f.svc.Suggestions(ctx, f.pet.ID, "intruder"); !errors.Is(err, pets.ErrForbidden) {
		t.Fatalf("expected ErrForbidden on suggestions, got %v", err)
	}
}

func TestGenerateAnonymous(t *testing.T) {
	f := newFixture(t, nil)
	ctx := context.Background()

	b, err := f.svc.GenerateAnonymous(ctx, recipes.PetProfile{Species: "cat", WeightKg: 4}, GenerateOptions{Best: true, Seed: seed(1)})
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if len(b.Recipes) != 1 || b.PetID != "" {
		t.Fatalf("unexpected batch: %+v", b)
	}
	if f.cache.Len() != 0 {
		t.Fatalf("anonymous batches are not cached")
	}

	_, err = f.svc.GenerateAnonymous(ctx, recipes.PetProfile{Species: "dragon", WeightKg: 4}, GenerateOptions{})
	if !errors.Is(err, recipes.ErrUnsupportedSpecies) {
		t.Fatalf("expected ErrUnsupportedSpecies, got %v", err)
	}
	if v := testutil.ToFloat64(f.metrics.Generations.WithLabelValues("dragon", metrics.OutcomeError)); v != 1 {
		t.Fatalf("error counter = %v", v)
	}
}
