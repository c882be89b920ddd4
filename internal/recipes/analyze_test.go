package recipes

import (
	"testing"

	"pet-plates/internal/nutrition"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func flagKinds(a *Analysis) []FlagKind {
	out := make([]FlagKind, 0, len(a.Flags))
	for _, f := range a.Flags {
		out = append(out, f.Kind)
	}
	return out
}

func TestAnalyze_CleanMeal(t *testing.T) {
	g := defaultGenerator(t)

	a, err := g.Analyze(AnalyzeRequest{
		Pet: dogRequest().Pet,
		Items: []MealItem{
			{IngredientID: "chicken-breast", Grams: 200},
			{IngredientID: "brown_rice", Grams: 100},
			{Name: "Carrots", Grams: 50},
		},
	})
	require.NoError(t, err)

	assert.True(t, a.Safe)
	assert.Empty(t, a.Flags)
	assert.Empty(t, a.Nutrition.Missing)
	assert.Equal(t, nutrition.SpeciesDog, a.Species)
	assert.Equal(t, []string{"chicken-breast", "brown-rice", "carrots"}, a.IngredientIDs())
	assert.Equal(t, nutrition.CategoryProtein, a.Ingredients[0].Category)
	assert.Equal(t, "200g", a.Ingredients[0].Amount)

	assert.Greater(t, a.Nutrition.Kcal, 0.0)
	assert.Equal(t, 350.0, a.Nutrition.TotalGrams)
	// 200g a 3.49/lb + 100g a 1.49/lb + 50g a 1.00/lb
	assert.InDelta(t, 1.98, a.EstimatedCost, 0.01)
	assert.Equal(t, DefaultWeights.Total(a.Breakdown), a.Score)
	assert.Equal(t, a.Validation.IsValid, len(a.Validation.Violations) == 0)
	assert.Greater(t, a.Portion.ServingSizeGrams, 0.0)
	assert.False(t, a.AnalyzedAt.IsZero())
}

func TestAnalyze_ResolvesByName(t *testing.T) {
	g := defaultGenerator(t)

	a, err := g.Analyze(AnalyzeRequest{
		Pet: dogRequest().Pet,
		Items: []MealItem{
			{Name: "Sweet Potato", Grams: 80},
			{Name: "brown rice (cooked)", Grams: 80},
		},
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"sweet-potato", "brown-rice"}, a.IngredientIDs())
	assert.Empty(t, a.Flags)
}

func TestAnalyze_FlagsUnknownAndMissingData(t *testing.T) {
	g := defaultGenerator(t)
	pet := dogRequest().Pet

	base := []MealItem{
		{IngredientID: "chicken-breast", Grams: 200},
		{IngredientID: "carrots", Grams: 50},
	}
	clean, err := g.Analyze(AnalyzeRequest{Pet: pet, Items: base})
	require.NoError(t, err)

	a, err := g.Analyze(AnalyzeRequest{Pet: pet, Items: append(base,
		MealItem{IngredientID: "dragon-fruit", Name: "Dragon Fruit", Grams: 30},
		MealItem{IngredientID: "kelp-powder", Grams: 2},
	)})
	require.NoError(t, err)

	assert.Equal(t, []FlagKind{FlagUnknown, FlagMissingData}, flagKinds(a))
	assert.Equal(t, "Dragon Fruit", a.Flags[0].Name)
	assert.ElementsMatch(t, []string{"dragon-fruit", "kelp-powder"}, a.Nutrition.Missing)
	// los desconocidos no aportan nutrientes pero sí pesan
	assert.Equal(t, clean.Nutrition.Kcal, a.Nutrition.Kcal)
	assert.Equal(t, 282.0, a.Nutrition.TotalGrams)
	assert.True(t, a.Safe, "missing data is flagged, not a conflict")
	assert.Len(t, a.Ingredients, 4)
	assert.Equal(t, []string{"chicken-breast", "carrots", "kelp-powder"}, a.IngredientIDs())
}

func TestAnalyze_ConflictsLowerScore(t *testing.T) {
	g := defaultGenerator(t)
	pet := PetProfile{Name: "Luna", Species: "cat", WeightKg: 4.5, Allergies: []string{"chicken"}, BannedIngredients: []string{"kale"}}

	a, err := g.Analyze(AnalyzeRequest{Pet: pet, Items: []MealItem{
		{IngredientID: "chicken-breast", Grams: 80},
		{IngredientID: "kale", Grams: 10},
	}})
	require.NoError(t, err)

	assert.False(t, a.Safe)
	assert.Equal(t, []FlagKind{FlagAllergy, FlagUnsafe, FlagBanned}, flagKinds(a))
	assert.Equal(t, "chicken", a.Flags[0].Term)
	assert.Equal(t, "kale", a.Flags[1].IngredientID)

	want := max(0, DefaultWeights.Total(a.Breakdown)-3*conflictPenalty)
	assert.Equal(t, want, a.Score)
}

func TestAnalyze_RestrictionIsFlaggedButSafe(t *testing.T) {
	g := defaultGenerator(t)
	pet := dogRequest().Pet
	pet.DietaryRestrictions = []string{"grain-free"}

	a, err := g.Analyze(AnalyzeRequest{Pet: pet, Items: []MealItem{
		{IngredientID: "ground-turkey", Grams: 150},
		{IngredientID: "brown-rice", Grams: 60},
	}})
	require.NoError(t, err)
	require.Len(t, a.Flags, 1)
	assert.Equal(t, FlagRestricted, a.Flags[0].Kind)
	assert.True(t, a.Safe)
	assert.Equal(t, DefaultWeights.Total(a.Breakdown), a.Score)
}

func TestAnalyze_ContractErrors(t *testing.T) {
	g := defaultGenerator(t)
	pet := dogRequest().Pet
	ok := []MealItem{{IngredientID: "carrots", Grams: 10}}

	many := make([]MealItem, MaxMealItems+1)
	for i := range many {
		many[i] = MealItem{IngredientID: "carrots", Grams: 1}
	}

	cases := map[string]struct {
		req  AnalyzeRequest
		want error
	}{
		"no items":    {AnalyzeRequest{Pet: pet}, ErrInvalidInput},
		"too many":    {AnalyzeRequest{Pet: pet, Items: many}, ErrInvalidInput},
		"blank line":  {AnalyzeRequest{Pet: pet, Items: []MealItem{{Grams: 5}}}, ErrInvalidInput},
		"zero grams":  {AnalyzeRequest{Pet: pet, Items: []MealItem{{IngredientID: "carrots"}}}, ErrInvalidInput},
		"bad budget":  {AnalyzeRequest{Pet: pet, Items: ok, BudgetPerMeal: -1}, ErrInvalidInput},
		"bad species": {AnalyzeRequest{Pet: PetProfile{Species: "horse", WeightKg: 400}, Items: ok}, ErrUnsupportedSpecies},
		"bad weight":  {AnalyzeRequest{Pet: PetProfile{Species: "dog"}, Items: ok}, ErrInvalidWeight},
	}
	for name, c := range cases {
		_, err := g.Analyze(c.req)
		assert.ErrorIs(t, err, c.want, name)
	}
}
