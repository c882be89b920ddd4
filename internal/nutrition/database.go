package nutrition

import (
	"bytes"
	_ "embed"
	"errors"
	"fmt"
	"io"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"
)

var (
	ErrInvalidCatalog = errors.New("invalid ingredient catalog")
)

//go:embed data/catalog.yaml
var catalogYAML []byte

// Category es la categoría primaria de un ingrediente.
type Category string

const (
	CategoryProtein    Category = "protein"
	CategoryFish       Category = "fish"
	CategoryInsect     Category = "insect"
	CategoryVegetable  Category = "vegetable"
	CategoryLeafyGreen Category = "leafy-green"
	CategoryFruit      Category = "fruit"
	CategoryCarb       Category = "carb"
	CategoryGrain      Category = "grain"
	CategoryHay        Category = "hay"
	CategoryPellet     Category = "pellet"
	CategorySeed       Category = "seed"
	CategorySupplement Category = "supplement"
	CategoryOil        Category = "oil"
)

func (c Category) Valid() bool {
	switch c {
	case CategoryProtein, CategoryFish, CategoryInsect,
		CategoryVegetable, CategoryLeafyGreen, CategoryFruit,
		CategoryCarb, CategoryGrain, CategoryHay, CategoryPellet, CategorySeed,
		CategorySupplement, CategoryOil:
		return true
	}
	return false
}

// Composition son los nutrientes por 100 g de ingrediente tal cual se sirve.
// Macros en gramos, minerales y taurina en mg.
type Composition struct {
	Protein    float64 `yaml:"protein" json:"protein"`
	Fat        float64 `yaml:"fat" json:"fat"`
	Fiber      float64 `yaml:"fiber" json:"fiber"`
	Carbs      float64 `yaml:"carbs" json:"carbs"`
	Moisture   float64 `yaml:"moisture" json:"moisture"`
	Kcal       float64 `yaml:"kcal" json:"kcal"`
	Calcium    float64 `yaml:"calcium" json:"calcium"`
	Phosphorus float64 `yaml:"phosphorus" json:"phosphorus"`
	Taurine    float64 `yaml:"taurine" json:"taurine"`
	Omega3     float64 `yaml:"omega3" json:"omega3"`
}

// Ingredient es dato de referencia estático; solo se filtra y selecciona.
type Ingredient struct {
	ID         string       `yaml:"id" json:"id"`
	Name       string       `yaml:"name" json:"name"`
	Category   Category     `yaml:"category" json:"category"`
	Species    []Species    `yaml:"species" json:"species"`
	PricePerLb float64      `yaml:"price_per_lb" json:"price_per_lb"`
	Quality    int          `yaml:"quality" json:"quality"`
	Allergens  []string     `yaml:"allergens" json:"allergens,omitempty"`
	Nutrients  *Composition `yaml:"nutrients" json:"nutrients,omitempty"`
}

func (i Ingredient) SafeFor(sp Species) bool {
	for _, s := range i.Species {
		if s == sp {
			return true
		}
	}
	return false
}

type catalogFile struct {
	Ingredients []Ingredient `yaml:"ingredients"`
	Pairings    [][]string   `yaml:"pairings"`
}

type pairKey struct{ a, b string }

func newPairKey(a, b string) pairKey {
	if b < a {
		a, b = b, a
	}
	return pairKey{a, b}
}

// Database es la tabla de composición + whitelist por especie.
// Solo lectura después de construida; se puede compartir entre goroutines.
type Database struct {
	byID     map[string]Ingredient
	ordered  []Ingredient
	pairings map[pairKey]struct{}
}

// NewDatabase valida y normaliza el catálogo. Los ids quedan en minúsculas con guiones.
func NewDatabase(ingredients []Ingredient, pairings [][2]string) (*Database, error) {
	db := &Database{
		byID:     make(map[string]Ingredient, len(ingredients)),
		ordered:  make([]Ingredient, 0, len(ingredients)),
		pairings: make(map[pairKey]struct{}, len(pairings)),
	}

	for _, ing := range ingredients {
		ing.ID = canonicalID(ing.ID)
		if ing.ID == "" {
			return nil, fmt.Errorf("%w: ingredient id required", ErrInvalidCatalog)
		}
		if _, dup := db.byID[ing.ID]; dup {
			return nil, fmt.Errorf("%w: duplicate ingredient %q", ErrInvalidCatalog, ing.ID)
		}
		if !ing.Category.Valid() {
			return nil, fmt.Errorf("%w: %s: unknown category %q", ErrInvalidCatalog, ing.ID, ing.Category)
		}
		if ing.PricePerLb < 0 || ing.Quality < 0 || ing.Quality > 10 {
			return nil, fmt.Errorf("%w: %s: price or quality out of range", ErrInvalidCatalog, ing.ID)
		}
		species := make([]Species, 0, len(ing.Species))
		for _, s := range ing.Species {
			sp, err := ParseSpecies(string(s))
			if err != nil {
				return nil, fmt.Errorf("%w: %s: %v", ErrInvalidCatalog, ing.ID, err)
			}
			species = append(species, sp)
		}
		ing.Species = species
		if ing.Name == "" {
			ing.Name = ing.ID
		}

		db.byID[ing.ID] = ing
		db.ordered = append(db.ordered, ing)
	}

	// orden estable: con la misma semilla se obtiene la misma receta
	sort.Slice(db.ordered, func(i, j int) bool { return db.ordered[i].ID < db.ordered[j].ID })

	for _, p := range pairings {
		a, b := canonicalID(p[0]), canonicalID(p[1])
		if a == "" || b == "" || a == b {
			return nil, fmt.Errorf("%w: bad pairing %v", ErrInvalidCatalog, p)
		}
		db.pairings[newPairKey(a, b)] = struct{}{}
	}

	return db, nil
}

// LoadDatabase lee un catálogo YAML (mismo formato que data/catalog.yaml).
func LoadDatabase(r io.Reader) (*Database, error) {
	var f catalogFile
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&f); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidCatalog, err)
	}

	pairs := make([][2]string, 0, len(f.Pairings))
	for _, p := range f.Pairings {
		if len(p) != 2 {
			return nil, fmt.Errorf("%w: pairing needs two ids, got %v", ErrInvalidCatalog, p)
		}
		pairs = append(pairs, [2]string{p[0], p[1]})
	}
	return NewDatabase(f.Ingredients, pairs)
}

// LoadDefault carga el catálogo embebido.
func LoadDefault() (*Database, error) {
	return LoadDatabase(bytes.NewReader(catalogYAML))
}

func canonicalID(id string) string {
	return strings.ReplaceAll(NormalizeKey(id), " ", "-")
}

// Lookup devuelve la composición; false si el ingrediente no existe o no tiene datos.
func (db *Database) Lookup(id string) (Composition, bool) {
	ing, ok := db.byID[canonicalID(id)]
	if !ok || ing.Nutrients == nil {
		return Composition{}, false
	}
	return *ing.Nutrients, true
}

func (db *Database) Get(id string) (Ingredient, bool) {
	ing, ok := db.byID[canonicalID(id)]
	return ing, ok
}

// ForSpecies lista los ingredientes seguros para la especie, ordenados por id.
func (db *Database) ForSpecies(sp Species) []Ingredient {
	out := make([]Ingredient, 0)
	for _, ing := range db.ordered {
		if ing.SafeFor(sp) {
			out = append(out, ing)
		}
	}
	return out
}

func (db *Database) All() []Ingredient {
	out := make([]Ingredient, len(db.ordered))
	copy(out, db.ordered)
	return out
}

func (db *Database) Len() int { return len(db.ordered) }

// Pairings cuenta cuántos pares conocidos aparecen entre los ids dados.
func (db *Database) Pairings(ids []string) int {
	n := 0
	for i := 0; i < len(ids); i++ {
		for j := i + 1; j < len(ids); j++ {
			if _, ok := db.pairings[newPairKey(canonicalID(ids[i]), canonicalID(ids[j]))]; ok {
				n++
			}
		}
	}
	return n
}
