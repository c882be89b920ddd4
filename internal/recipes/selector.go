package recipes

import (
	"fmt"
	"math/rand/v2"

	"pet-plates/internal/nutrition"
)

// Bucket es el rol de un ingrediente dentro del plan de la especie.
type Bucket string

const (
	BucketProtein    Bucket = "protein"
	BucketFresh      Bucket = "fresh"
	BucketFruit      Bucket = "fruit"
	BucketBase       Bucket = "base"
	BucketSupplement Bucket = "supplement"
)

// BucketOf asigna el bucket según la categoría primaria. Un alimento con varios
// roles cae solo en el de su categoría principal.
func BucketOf(c nutrition.Category) Bucket {
	switch c {
	case nutrition.CategoryProtein, nutrition.CategoryFish, nutrition.CategoryInsect:
		return BucketProtein
	case nutrition.CategoryVegetable, nutrition.CategoryLeafyGreen:
		return BucketFresh
	case nutrition.CategoryFruit:
		return BucketFruit
	case nutrition.CategoryCarb, nutrition.CategoryGrain, nutrition.CategoryHay,
		nutrition.CategoryPellet, nutrition.CategorySeed:
		return BucketBase
	default:
		return BucketSupplement
	}
}

// slot es un lugar del plan con su cantidad heurística.
// Las porciones medidas (tsp, pinch) no se reescalan por calorías.
type slot struct {
	bucket   Bucket
	grams    float64
	measure  string
	optional bool
}

func (s slot) fixed() bool { return s.measure != "" }

var slotPlans = map[nutrition.Species][]slot{
	nutrition.SpeciesDog: {
		{bucket: BucketProtein, grams: 150},
		{bucket: BucketProtein, grams: 50},
		{bucket: BucketFresh, grams: 50},
		{bucket: BucketSupplement, grams: 5, measure: "1 tsp"},
	},
	nutrition.SpeciesCat: {
		{bucket: BucketProtein, grams: 100},
		{bucket: BucketProtein, grams: 40},
		{bucket: BucketFresh, grams: 20},
		{bucket: BucketSupplement, grams: 2.5, measure: "1/2 tsp"},
	},
	nutrition.SpeciesBird: {
		{bucket: BucketBase, grams: 20},
		{bucket: BucketBase, grams: 15},
		{bucket: BucketFresh, grams: 10},
		{bucket: BucketFresh, grams: 10},
		{bucket: BucketSupplement, grams: 0.5, measure: "pinch"},
	},
	nutrition.SpeciesPocketPet: {
		{bucket: BucketBase, grams: 30},
		{bucket: BucketBase, grams: 15},
		{bucket: BucketFresh, grams: 10},
		{bucket: BucketFresh, grams: 10},
		{bucket: BucketSupplement, grams: 0.5, measure: "pinch"},
	},
	nutrition.SpeciesReptile: {
		{bucket: BucketProtein, grams: 20},
		{bucket: BucketFresh, grams: 15},
		{bucket: BucketFresh, grams: 15},
		{bucket: BucketFruit, grams: 5, optional: true},
		{bucket: BucketSupplement, grams: 0.5, measure: "dusting"},
	},
}

// gramos por defecto cuando el plan no tiene un slot para ese bucket (fallback)
var fallbackGrams = map[nutrition.Species]float64{
	nutrition.SpeciesDog:       50,
	nutrition.SpeciesCat:       30,
	nutrition.SpeciesBird:      10,
	nutrition.SpeciesPocketPet: 10,
	nutrition.SpeciesReptile:   10,
}

const (
	minPoolSize   = 3
	fallbackItems = 4
)

// line es el estado interno de una línea mientras se arma la receta.
type line struct {
	ing    nutrition.Ingredient
	bucket Bucket
	grams  float64
	slot   slot
}

func (l line) fixed() bool { return l.slot.fixed() }

func (l line) amount() string {
	if l.slot.fixed() {
		return l.slot.measure
	}
	return fmt.Sprintf("%.0fg", l.grams)
}

func (l line) cost() float64 {
	return l.grams / gramsPerLb * l.ing.PricePerLb
}

const gramsPerLb = 453.592

// Selector filtra el pool permitido y llena el plan de la especie.
type Selector struct {
	db *nutrition.Database
}

func NewSelector(db *nutrition.Database) *Selector {
	return &Selector{db: db}
}

// Pool son los ingredientes seguros para la especie menos alergias, prohibiciones y restricciones.
func (s *Selector) Pool(sp nutrition.Species, pet PetProfile) []nutrition.Ingredient {
	m := newMatcher(pet.Allergies, pet.BannedIngredients)
	blocked := restrictedCategories(pet.DietaryRestrictions)

	out := make([]nutrition.Ingredient, 0)
	for _, ing := range s.db.ForSpecies(sp) {
		if _, ok := m.match(ing); ok {
			continue
		}
		if blocked[ing.Category] {
			continue
		}
		out = append(out, ing)
	}
	return out
}

// Buckets agrupa el pool por rol manteniendo el orden del pool.
func Buckets(pool []nutrition.Ingredient) map[Bucket][]nutrition.Ingredient {
	out := make(map[Bucket][]nutrition.Ingredient)
	for _, ing := range pool {
		b := BucketOf(ing.Category)
		out[b] = append(out[b], ing)
	}
	return out
}

// pick llena el plan. false si el pool no alcanza (no es error: no hay candidato).
func (s *Selector) pick(rng *rand.Rand, sp nutrition.Species, pool []nutrition.Ingredient) ([]line, bool) {
	if len(pool) < minPoolSize {
		return nil, false
	}

	buckets := Buckets(pool)
	used := map[string]bool{}
	lines := make([]line, 0, len(slotPlans[sp]))

	for _, sl := range slotPlans[sp] {
		if sl.optional && rng.Float64() >= 0.5 {
			continue
		}
		ing, ok := drawUnused(rng, buckets[sl.bucket], used)
		if !ok {
			if sl.optional {
				continue
			}
			return s.fallback(rng, sp, pool), true
		}
		used[ing.ID] = true
		lines = append(lines, line{ing: ing, bucket: sl.bucket, grams: sl.grams, slot: sl})
	}
	return lines, true
}

// fallback toma hasta 4 ingredientes distintos del pool completo.
func (s *Selector) fallback(rng *rand.Rand, sp nutrition.Species, pool []nutrition.Ingredient) []line {
	idx := make([]int, len(pool))
	for i := range idx {
		idx[i] = i
	}
	n := min(fallbackItems, len(pool))
	lines := make([]line, 0, n)
	for i := 0; i < n; i++ {
		j := i + rng.IntN(len(idx)-i)
		idx[i], idx[j] = idx[j], idx[i]

		ing := pool[idx[i]]
		b := BucketOf(ing.Category)
		sl := defaultSlot(sp, b)
		lines = append(lines, line{ing: ing, bucket: b, grams: sl.grams, slot: sl})
	}
	return lines
}

func defaultSlot(sp nutrition.Species, b Bucket) slot {
	for _, sl := range slotPlans[sp] {
		if sl.bucket == b {
			sl.optional = false
			return sl
		}
	}
	return slot{bucket: b, grams: fallbackGrams[sp]}
}

func drawUnused(rng *rand.Rand, items []nutrition.Ingredient, used map[string]bool) (nutrition.Ingredient, bool) {
	free := make([]nutrition.Ingredient, 0, len(items))
	for _, it := range items {
		if !used[it.ID] {
			free = append(free, it)
		}
	}
	if len(free) == 0 {
		return nutrition.Ingredient{}, false
	}
	return free[rng.IntN(len(free))], true
}

// restricciones dietarias conocidas -> categorías que excluyen. Las desconocidas no restringen.
var restrictionCategories = map[string][]nutrition.Category{
	"grain free":  {nutrition.CategoryGrain, nutrition.CategoryCarb},
	"no grain":    {nutrition.CategoryGrain, nutrition.CategoryCarb},
	"fish free":   {nutrition.CategoryFish},
	"no fish":     {nutrition.CategoryFish},
	"insect free": {nutrition.CategoryInsect},
	"no insects":  {nutrition.CategoryInsect},
	"low fat":     {nutrition.CategoryOil},
	"no seeds":    {nutrition.CategorySeed},
	"seed free":   {nutrition.CategorySeed},
	"fruit free":  {nutrition.CategoryFruit},
	"no fruit":    {nutrition.CategoryFruit},
}

func restrictedCategories(tags []string) map[nutrition.Category]bool {
	out := map[nutrition.Category]bool{}
	for _, t := range tags {
		for _, c := range restrictionCategories[nutrition.NormalizeKey(t)] {
			out[c] = true
		}
	}
	return out
}
