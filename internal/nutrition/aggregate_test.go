package nutrition

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testDB(t *testing.T) *Database {
	t.Helper()
	db, err := NewDatabase([]Ingredient{
		{ID: "meat", Category: CategoryProtein, Species: []Species{SpeciesDog},
			Nutrients: &Composition{Protein: 20, Fat: 10, Moisture: 70, Kcal: 200, Calcium: 10, Phosphorus: 200}},
		{ID: "veg", Category: CategoryVegetable, Species: []Species{SpeciesDog},
			Nutrients: &Composition{Protein: 1, Fiber: 3, Moisture: 90, Kcal: 40, Calcium: 40, Phosphorus: 40}},
		{ID: "mystery", Category: CategorySupplement, Species: []Species{SpeciesDog}},
	}, nil)
	require.NoError(t, err)
	return db
}

func TestAggregate_ScalesByGrams(t *testing.T) {
	db := testDB(t)

	tot := db.Aggregate([]LineItem{
		{IngredientID: "meat", Grams: 150},
		{IngredientID: "veg", Grams: 50},
	})

	assert.InDelta(t, 30.5, tot.Protein, 1e-9)
	assert.InDelta(t, 15, tot.Fat, 1e-9)
	assert.InDelta(t, 1.5, tot.Fiber, 1e-9)
	assert.InDelta(t, 320, tot.Kcal, 1e-9)
	assert.InDelta(t, 35, tot.Calcium, 1e-9)
	assert.InDelta(t, 320, tot.Phosphorus, 1e-9)
	assert.InDelta(t, 200, tot.TotalGrams, 1e-9)
	assert.InDelta(t, 35.0/320.0, tot.CaPRatio, 1e-9)
	assert.Empty(t, tot.Missing)

	// materia seca = 200 - (105 + 45)
	assert.InDelta(t, 50, tot.DryMatterGrams(), 1e-9)
	assert.InDelta(t, 61, tot.ProteinDM(), 1e-9)
	assert.InDelta(t, 109.375, tot.CalciumDensity(), 1e-9)
}

func TestAggregate_RecordsMissingComposition(t *testing.T) {
	db := testDB(t)

	tot := db.Aggregate([]LineItem{
		{IngredientID: "meat", Grams: 100},
		{IngredientID: "mystery", Grams: 5},
		{IngredientID: "does-not-exist", Grams: 5},
	})

	assert.Equal(t, []string{"mystery", "does-not-exist"}, tot.Missing)
	assert.InDelta(t, 200, tot.Kcal, 1e-9)
	assert.InDelta(t, 110, tot.TotalGrams, 1e-9)
}

func TestAggregate_ZeroPhosphorusRatio(t *testing.T) {
	db, err := NewDatabase([]Ingredient{
		{ID: "chalk", Category: CategorySupplement, Species: []Species{SpeciesDog},
			Nutrients: &Composition{Calcium: 1000}},
	}, nil)
	require.NoError(t, err)

	tot := db.Aggregate([]LineItem{{IngredientID: "chalk", Grams: 10}})
	assert.Zero(t, tot.CaPRatio)
	assert.Zero(t, tot.CalciumDensity(), "no kcal means no density")
	assert.InDelta(t, 10, tot.DryMatterGrams(), 1e-9)
}

func TestAggregate_Empty(t *testing.T) {
	tot := testDB(t).Aggregate(nil)
	assert.Zero(t, tot.TotalGrams)
	assert.Zero(t, tot.ProteinDM())
	assert.Zero(t, tot.KcalPerGram())
}
