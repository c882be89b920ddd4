package recipes

import (
	"testing"

	"pet-plates/internal/nutrition"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWeights_SumToOne(t *testing.T) {
	w := DefaultWeights
	assert.InDelta(t, 1.0, w.Nutrition+w.Health+w.Cost+w.Variety+w.Quality, 1e-9)
	assert.Equal(t, 100, w.Total(Breakdown{100, 100, 100, 100, 100}))
	assert.Equal(t, 35, w.Total(Breakdown{Nutrition: 100}))
	assert.Equal(t, 0, w.Total(Breakdown{}))
}

func TestScorer_CostDecay(t *testing.T) {
	s := NewScorer(nil, DefaultConfig())

	assert.Equal(t, 100, s.cost(1.5, 2))
	assert.Equal(t, 100, s.cost(2, 2))
	assert.Equal(t, 50, s.cost(2.5, 2))
	assert.Equal(t, 0, s.cost(3, 2))
	assert.Equal(t, 0, s.cost(10, 2))

	// sin presupuesto se usa el de referencia (4.00)
	assert.Equal(t, 100, s.cost(3.9, 0))
	assert.Equal(t, 50, s.cost(5, 0))
}

func TestScorer_Health(t *testing.T) {
	cs, err := DefaultConcerns()
	require.NoError(t, err)

	salmon := nutrition.Ingredient{ID: "salmon", Category: nutrition.CategoryFish}
	oil := nutrition.Ingredient{ID: "fish-oil", Category: nutrition.CategoryOil}
	rice := nutrition.Ingredient{ID: "white-rice", Category: nutrition.CategoryGrain}
	carrots := nutrition.Ingredient{ID: "carrots", Category: nutrition.CategoryVegetable}

	assert.Equal(t, 70, health(nil, []nutrition.Ingredient{salmon}))

	joint := cs.Resolve([]string{"Arthritis"})
	require.Len(t, joint, 1)
	assert.Equal(t, 50, health(joint, []nutrition.Ingredient{carrots}))
	assert.Equal(t, 85, health(joint, []nutrition.Ingredient{salmon, carrots}))
	assert.Equal(t, 100, health(joint, []nutrition.Ingredient{salmon, oil}))
	assert.Equal(t, 25, health(joint, []nutrition.Ingredient{rice}))
}

func TestVariety(t *testing.T) {
	ings := []nutrition.Ingredient{
		{ID: "a", Name: "A", Category: nutrition.CategoryProtein},
		{ID: "b", Name: "B", Category: nutrition.CategoryProtein},
		{ID: "c", Name: "C", Category: nutrition.CategoryVegetable},
		{ID: "d", Name: "D", Category: nutrition.CategorySupplement},
	}
	assert.Equal(t, 85, variety(ings, nil))
	assert.Equal(t, 65, variety(ings, []string{"a"}))
	assert.Equal(t, 45, variety(ings, []string{"A", "c"}))
	assert.Equal(t, 5, variety(ings, []string{"a", "b", "c", "d"}))
}

func TestScorer_Quality(t *testing.T) {
	db, err := nutrition.NewDatabase([]nutrition.Ingredient{
		{ID: "salmon", Category: nutrition.CategoryFish, Quality: 9},
		{ID: "pumpkin", Category: nutrition.CategoryVegetable, Quality: 7},
		{ID: "filler", Category: nutrition.CategoryGrain},
	}, [][2]string{{"salmon", "pumpkin"}})
	require.NoError(t, err)

	s := NewScorer(db, DefaultConfig())
	salmon, _ := db.Get("salmon")
	pumpkin, _ := db.Get("pumpkin")
	filler, _ := db.Get("filler")

	assert.Equal(t, 85, s.quality([]nutrition.Ingredient{salmon, pumpkin})) // 80 + 5
	assert.Equal(t, 70, s.quality([]nutrition.Ingredient{salmon, filler}))  // (9+5)/2*10
	assert.Equal(t, 0, s.quality(nil))
}

func TestScorer_NutritionPenalties(t *testing.T) {
	std, err := nutrition.DefaultStandards()
	require.NoError(t, err)
	p, err := std.Profile(nutrition.SpeciesDog, nutrition.StageAdult)
	require.NoError(t, err)

	s := NewScorer(nil, DefaultConfig())

	// exactamente en el punto medio de cada rango con límites
	tot := nutrition.Totals{
		TotalGrams: 200, Moisture: 100,
		Protein: p.Protein.Mid(), Fat: p.Fat.Mid(), Fiber: p.Fiber.Mid(),
		CaPRatio: p.CaPRatio.Mid(),
	}
	assert.Equal(t, 100, s.nutrition(ScoreInput{Totals: tot, Profile: p}))

	withIssues := ScoreInput{
		Totals:     tot,
		Profile:    p,
		Validation: nutrition.Result{Violations: []string{"x"}, Warnings: []string{"y"}},
	}
	assert.Equal(t, 70, s.nutrition(withIssues))

	withIssues.Totals.Missing = []string{"kelp-powder"}
	assert.Equal(t, 50, s.nutrition(withIssues))

	far := tot
	far.Protein, far.Fat, far.Fiber, far.CaPRatio = 0, 0, 50, 9
	assert.Equal(t, 60, s.nutrition(ScoreInput{Totals: far, Profile: p}))
}
