package recipes

import (
	"math"
	"strings"
	"sync"
	"testing"

	"pet-plates/internal/nutrition"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func assertWellFormed(t *testing.T, r *Recipe) {
	t.Helper()
	require.NotEmpty(t, r.Ingredients)
	assert.GreaterOrEqual(t, r.Score, 0)
	assert.LessOrEqual(t, r.Score, 100)
	assert.Greater(t, r.Nutrition.Kcal, 0.0)
	assert.InDelta(t, r.Score, DefaultWeights.Total(r.Breakdown), 1)
	for _, sub := range []int{r.Breakdown.Nutrition, r.Breakdown.Health, r.Breakdown.Cost, r.Breakdown.Variety, r.Breakdown.Quality} {
		assert.GreaterOrEqual(t, sub, 0)
		assert.LessOrEqual(t, sub, 100)
	}
	assert.NotEmpty(t, r.Explanation)
	assert.NotEmpty(t, r.Name)
	assert.NotEmpty(t, r.ID)
	assert.Equal(t, r.Validation.IsValid, len(r.Validation.Violations) == 0)
}

func TestGenerate_EverySpecies(t *testing.T) {
	g := defaultGenerator(t)

	weights := map[nutrition.Species]float64{
		nutrition.SpeciesDog:       20,
		nutrition.SpeciesCat:       4.5,
		nutrition.SpeciesBird:      0.1,
		nutrition.SpeciesReptile:   0.4,
		nutrition.SpeciesPocketPet: 1.0,
	}

	for _, sp := range nutrition.AllSpecies {
		for seed := uint64(1); seed <= 25; seed++ {
			req := Request{Pet: PetProfile{Name: "Pip", Species: string(sp), WeightKg: weights[sp]}}
			r, err := g.Generate(NewRand(seed), req)
			require.NoError(t, err, "%s seed %d", sp, seed)
			require.NotNil(t, r, "%s seed %d", sp, seed)
			assertWellFormed(t, r)
			assert.Equal(t, sp, r.Species)
			assert.True(t, strings.HasPrefix(r.Name, "Pip's "), r.Name)
			assert.NotEmpty(t, r.Instructions)
			assert.Greater(t, r.Portion.DailyCalories, 0)
			assert.True(t, strings.HasSuffix(r.Portion.ServingSize, "g"), r.Portion.ServingSize)
		}
	}
}

func TestGenerate_NameSuffixBySpecies(t *testing.T) {
	g := defaultGenerator(t)
	cases := map[string]string{"dog": "Bowl", "cat": "Bowl", "bird": "Medley", "pocket-pet": "Medley", "reptile": "Feast"}
	for sp, suffix := range cases {
		r, err := g.Generate(NewRand(3), Request{Pet: PetProfile{Name: "Kiwi", Species: sp, WeightKg: 1}})
		require.NoError(t, err)
		require.NotNil(t, r)
		assert.True(t, strings.HasSuffix(r.Name, suffix), r.Name)
	}
}

func TestGenerate_AllergiesAreExcluded(t *testing.T) {
	g := defaultGenerator(t)
	req := dogRequest()
	req.Pet.Allergies = []string{"chicken", "Beef"}
	req.Pet.BannedIngredients = []string{"salmon"}

	for seed := uint64(1); seed <= 60; seed++ {
		r, err := g.Generate(NewRand(seed), req)
		require.NoError(t, err)
		require.NotNil(t, r)
		for _, l := range r.Ingredients {
			for _, term := range []string{"chicken", "beef", "salmon"} {
				assert.False(t, NameMatches(term, l.Name), "seed %d: %s contains %s", seed, l.Name, term)
				assert.False(t, strings.Contains(strings.ToLower(l.Name), term), "seed %d: %s", seed, l.Name)
			}
		}
	}
}

func TestGenerate_BudgetScenario(t *testing.T) {
	g := defaultGenerator(t)
	req := dogRequest()
	req.BudgetPerMeal = 2.0

	for seed := uint64(1); seed <= 60; seed++ {
		r, err := g.Generate(NewRand(seed), req)
		require.NoError(t, err)
		require.NotNil(t, r)
		assert.LessOrEqual(t, r.EstimatedCost, 3.0, "seed %d: %v", seed, r.IngredientNames())
	}
}

func TestGenerate_CaloriesScenario(t *testing.T) {
	g := defaultGenerator(t)
	req := dogRequest()
	req.TargetCalories = 400

	for seed := uint64(1); seed <= 60; seed++ {
		r, err := g.Generate(NewRand(seed), req)
		require.NoError(t, err)
		require.NotNil(t, r, "seed %d", seed)
		assert.Greater(t, r.Nutrition.Kcal, 300.0)
		assert.Less(t, r.Nutrition.Kcal, 500.0)
	}
}

func TestGenerate_BudgetAndCaloriesTogether(t *testing.T) {
	g := defaultGenerator(t)
	req := dogRequest()
	req.TargetCalories = 400
	req.BudgetPerMeal = 2.0

	for seed := uint64(1); seed <= 30; seed++ {
		r, err := g.Generate(NewRand(seed), req)
		require.NoError(t, err)
		if r == nil {
			continue
		}
		assertWellFormed(t, r)
		assert.Greater(t, r.Nutrition.Kcal, 300.0)
		assert.Less(t, r.Nutrition.Kcal, 500.0)
	}
}

func TestGenerate_SameSeedSameRecipe(t *testing.T) {
	g := defaultGenerator(t)
	a, err := g.Generate(NewRand(42), dogRequest())
	require.NoError(t, err)
	b, err := g.Generate(NewRand(42), dogRequest())
	require.NoError(t, err)

	assert.Equal(t, a.Signature(), b.Signature())
	assert.Equal(t, a.Score, b.Score)
	assert.Equal(t, a.Ingredients, b.Ingredients)
	assert.NotEqual(t, a.ID, b.ID)
}

func TestGenerate_NilRandIsAccepted(t *testing.T) {
	r, err := defaultGenerator(t).Generate(nil, dogRequest())
	require.NoError(t, err)
	require.NotNil(t, r)
}

func TestGenerate_ContractErrors(t *testing.T) {
	g := defaultGenerator(t)

	req := dogRequest()
	req.Pet.Species = "dragon"
	_, err := g.Generate(NewRand(1), req)
	assert.ErrorIs(t, err, ErrUnsupportedSpecies)

	for _, w := range []float64{0, -3, math.NaN(), math.Inf(1)} {
		req = dogRequest()
		req.Pet.WeightKg = w
		_, err = g.Generate(NewRand(1), req)
		assert.ErrorIs(t, err, ErrInvalidWeight, "weight %v", w)
	}

	req = dogRequest()
	req.BudgetPerMeal = -1
	_, err = g.GenerateBest(NewRand(1), req)
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = g.GenerateMany(NewRand(1), dogRequest(), 0)
	assert.ErrorIs(t, err, ErrInvalidCount)
}

func TestGenerate_UnknownOptionalFieldsDoNotConstrain(t *testing.T) {
	g := defaultGenerator(t)
	req := dogRequest()
	req.Pet.LifeStage = "ancient"
	req.Pet.HealthConcerns = []string{"moon-sickness"}
	req.Pet.DietaryRestrictions = []string{"only-on-tuesdays"}

	r, err := g.Generate(NewRand(9), req)
	require.NoError(t, err)
	require.NotNil(t, r)
	assert.Equal(t, nutrition.LifeStageAdult, r.LifeStage)
	assert.Equal(t, 70, r.Breakdown.Health)
}

func TestGenerate_AllExcludedReturnsNil(t *testing.T) {
	g := defaultGenerator(t)
	req := Request{Pet: PetProfile{Species: "reptile", WeightKg: 0.3, Allergies: []string{"insect"}}}
	for _, ing := range g.Database().ForSpecies(nutrition.SpeciesReptile) {
		if ing.Category != nutrition.CategoryInsect {
			req.Pet.BannedIngredients = append(req.Pet.BannedIngredients, ing.ID)
		}
	}

	r, err := g.Generate(NewRand(1), req)
	require.NoError(t, err)
	assert.Nil(t, r)

	best, err := g.GenerateBest(NewRand(1), req)
	require.NoError(t, err)
	assert.Nil(t, best)

	many, err := g.GenerateMany(NewRand(1), req, 3)
	require.NoError(t, err)
	assert.Empty(t, many)
}

func TestGenerate_TinyPoolReturnsNil(t *testing.T) {
	g := syntheticGenerator(t,
		ing("beef", nutrition.CategoryProtein, 4, meat(), nutrition.SpeciesDog),
		ing("carrot", nutrition.CategoryVegetable, 1, veg(), nutrition.SpeciesDog),
	)
	r, err := g.Generate(NewRand(1), dogRequest())
	require.NoError(t, err)
	assert.Nil(t, r)
}

func TestGenerate_MinimalPoolsFallBack(t *testing.T) {
	// una sola categoría por especie: el plan no se puede llenar y entra el fallback
	var ings []nutrition.Ingredient
	for _, sp := range nutrition.AllSpecies {
		for _, id := range []string{"a", "b", "c"} {
			ings = append(ings, ing(string(sp)+"-"+id, nutrition.CategoryGrain, 2, grain(), sp))
		}
	}
	g := syntheticGenerator(t, ings...)

	for _, sp := range nutrition.AllSpecies {
		for seed := uint64(1); seed <= 5; seed++ {
			r, err := g.Generate(NewRand(seed), Request{Pet: PetProfile{Species: string(sp), WeightKg: 2}})
			require.NoError(t, err)
			if r == nil {
				continue
			}
			assertWellFormed(t, r)
			assert.Len(t, r.Ingredients, 3)
		}
	}
}

func TestGenerate_MissingDataLowersNutrition(t *testing.T) {
	base := []nutrition.Ingredient{
		ing("beef", nutrition.CategoryProtein, 4, meat(), nutrition.SpeciesDog),
		ing("lamb", nutrition.CategoryProtein, 4, meat(), nutrition.SpeciesDog),
		ing("carrot", nutrition.CategoryVegetable, 1, veg(), nutrition.SpeciesDog),
	}
	known := syntheticGenerator(t, append(base, ing("chalk", nutrition.CategorySupplement, 5,
		&nutrition.Composition{Calcium: 38000}, nutrition.SpeciesDog))...)
	unknown := syntheticGenerator(t, append(base, ing("chalk", nutrition.CategorySupplement, 5, nil, nutrition.SpeciesDog))...)

	a, err := known.Generate(NewRand(5), dogRequest())
	require.NoError(t, err)
	b, err := unknown.Generate(NewRand(5), dogRequest())
	require.NoError(t, err)
	require.NotNil(t, a)
	require.NotNil(t, b)

	assert.Empty(t, a.Nutrition.Missing)
	assert.Equal(t, []string{"chalk"}, b.Nutrition.Missing)
	assert.LessOrEqual(t, b.Breakdown.Nutrition, 80)
	assert.Contains(t, b.Explanation, "No nutrient data")
}

func TestGenerate_CalorieTargetOutOfReach(t *testing.T) {
	// solo suplementos medidos: no hay nada que reescalar
	g := syntheticGenerator(t,
		ing("oil-a", nutrition.CategoryOil, 5, &nutrition.Composition{Fat: 100, Kcal: 900}, nutrition.SpeciesDog),
		ing("oil-b", nutrition.CategoryOil, 5, &nutrition.Composition{Fat: 100, Kcal: 900}, nutrition.SpeciesDog),
		ing("oil-c", nutrition.CategoryOil, 5, &nutrition.Composition{Fat: 100, Kcal: 900}, nutrition.SpeciesDog),
	)
	req := dogRequest()
	req.TargetCalories = 400

	r, err := g.Generate(NewRand(1), req)
	require.NoError(t, err)
	assert.Nil(t, r)
}

func TestGenerate_RecentLowersVariety(t *testing.T) {
	g := defaultGenerator(t)
	first, err := g.Generate(NewRand(11), dogRequest())
	require.NoError(t, err)

	req := dogRequest()
	req.Recent = first.IngredientIDs()
	again, err := g.Generate(NewRand(11), req)
	require.NoError(t, err)

	require.Equal(t, first.Signature(), again.Signature())
	assert.Less(t, again.Breakdown.Variety, first.Breakdown.Variety)
}

func TestGenerateBest_DominatesItsSamples(t *testing.T) {
	g := defaultGenerator(t)
	n := g.Config().BestOfAttempts

	for seed := uint64(1); seed <= 20; seed++ {
		best, err := g.GenerateBest(NewRand(seed), dogRequest())
		require.NoError(t, err)
		require.NotNil(t, best)

		// mismas n extracciones con un rng idéntico
		rng := NewRand(seed)
		maxValid, maxAny, minScore := -1, -1, 101
		for i := 0; i < n; i++ {
			r, err := g.Generate(rng, dogRequest())
			require.NoError(t, err)
			if r == nil {
				continue
			}
			if r.Validation.IsValid {
				maxValid = max(maxValid, r.Score)
			}
			maxAny = max(maxAny, r.Score)
			minScore = min(minScore, r.Score)
		}
		if maxValid >= 0 {
			assert.True(t, best.Validation.IsValid, "seed %d", seed)
			assert.Equal(t, maxValid, best.Score, "seed %d", seed)
		} else {
			assert.Equal(t, maxAny, best.Score, "seed %d", seed)
		}
		assert.GreaterOrEqual(t, best.Score, minScore)
	}
}

func TestGenerateBest_PrefersValidOverHigherScore(t *testing.T) {
	valid := &Recipe{Score: 60, Validation: nutrition.Result{IsValid: true}}
	invalid := &Recipe{Score: 90, Validation: nutrition.Result{Violations: []string{"Ca:P below minimum"}}}

	assert.True(t, better(valid, nil))
	assert.True(t, better(valid, invalid))
	assert.False(t, better(invalid, valid))
	assert.True(t, better(&Recipe{Score: 70, Validation: nutrition.Result{IsValid: true}}, valid))
}

func TestGenerateMany_Diverse(t *testing.T) {
	g := defaultGenerator(t)

	for _, sp := range nutrition.AllSpecies {
		out, err := g.GenerateMany(NewRand(7), Request{Pet: PetProfile{Name: "Bo", Species: string(sp), WeightKg: 2}}, 5)
		require.NoError(t, err)
		require.GreaterOrEqual(t, len(out), 2, sp)
		require.LessOrEqual(t, len(out), 5)

		seen := map[string]bool{}
		for _, r := range out {
			assertWellFormed(t, r)
			assert.False(t, seen[r.Signature()], "duplicate ingredient set %s", r.Signature())
			seen[r.Signature()] = true
		}
	}
}

func TestGenerateMany_SmallPoolStops(t *testing.T) {
	// 3 ingredientes -> un solo conjunto posible
	g := syntheticGenerator(t,
		ing("beef", nutrition.CategoryProtein, 4, meat(), nutrition.SpeciesDog),
		ing("carrot", nutrition.CategoryVegetable, 1, veg(), nutrition.SpeciesDog),
		ing("oats", nutrition.CategoryGrain, 1, grain(), nutrition.SpeciesDog),
	)
	out, err := g.GenerateMany(NewRand(1), dogRequest(), 5)
	require.NoError(t, err)
	assert.Len(t, out, 1)
}

func TestGenerate_ConcurrentCallsWithOwnRand(t *testing.T) {
	g := defaultGenerator(t)

	var wg sync.WaitGroup
	results := make([]*Recipe, 16)
	errs := make([]error, 16)
	for i := range results {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			results[i], errs[i] = g.GenerateBest(NewRand(uint64(i%4)), dogRequest())
		}(i)
	}
	wg.Wait()

	for i := range results {
		require.NoError(t, errs[i])
		require.NotNil(t, results[i])
		// misma semilla, mismo resultado
		assert.Equal(t, results[i%4].Signature(), results[i].Signature())
	}
}
