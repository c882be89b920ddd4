package recipes

import (
	"fmt"
	"math"
	"strings"
	"time"

	"pet-plates/internal/nutrition"
)

// MaxMealItems acota las líneas de una comida armada a mano.
const MaxMealItems = 20

// Puntos que resta del total cada ingrediente inseguro, alérgeno o prohibido.
const conflictPenalty = 25

// MealItem es una línea de una comida armada a mano. Basta el id o el nombre.
type MealItem struct {
	IngredientID string
	Name         string
	Grams        float64
}

// AnalyzeRequest es una comida propuesta por el usuario para una mascota.
type AnalyzeRequest struct {
	Pet           PetProfile
	Items         []MealItem
	BudgetPerMeal float64
	Recent        []string
}

type FlagKind string

const (
	FlagUnknown     FlagKind = "unknown_ingredient"
	FlagMissingData FlagKind = "missing_data"
	FlagUnsafe      FlagKind = "unsafe_for_species"
	FlagAllergy     FlagKind = "allergy"
	FlagBanned      FlagKind = "banned"
	FlagRestricted  FlagKind = "dietary_restriction"
)

// Conflict indica si la marca vuelve la comida no apta.
func (k FlagKind) Conflict() bool {
	switch k {
	case FlagUnsafe, FlagAllergy, FlagBanned:
		return true
	}
	return false
}

// Flag es un problema con un ingrediente concreto.
type Flag struct {
	Kind         FlagKind `json:"kind"`
	IngredientID string   `json:"ingredient_id,omitempty"`
	Name         string   `json:"name"`
	Term         string   `json:"term,omitempty"`
	Message      string   `json:"message"`
}

// Analysis es el resultado de pasar una comida por Aggregate -> Validate -> Score.
type Analysis struct {
	Species   nutrition.Species   `json:"species"`
	LifeStage nutrition.LifeStage `json:"life_stage"`

	Ingredients []Line           `json:"ingredients"`
	Nutrition   nutrition.Totals `json:"nutrition"`
	CaPRatio    float64          `json:"ca_p_ratio"`

	EstimatedCost float64          `json:"estimated_cost"`
	Score         int              `json:"score"`
	Breakdown     Breakdown        `json:"score_breakdown"`
	Validation    nutrition.Result `json:"validation"`
	Portion       Portion          `json:"portion"`

	// Safe es false si algún ingrediente es inseguro para la especie, alérgeno o prohibido.
	Safe  bool   `json:"safe"`
	Flags []Flag `json:"flags"`

	AnalyzedAt time.Time `json:"analyzed_at"`
}

// IngredientIDs devuelve los ids del catálogo, en orden; los desconocidos no tienen.
func (a *Analysis) IngredientIDs() []string {
	out := make([]string, 0, len(a.Ingredients))
	for _, l := range a.Ingredients {
		if l.IngredientID != "" {
			out = append(out, l.IngredientID)
		}
	}
	return out
}

// Analyze evalúa una comida armada a mano con las mismas reglas que una receta generada.
// Los ingredientes desconocidos o sin composición no aportan nutrientes y quedan marcados;
// los inseguros, alérgenos o prohibidos bajan el puntaje y dejan Safe en false.
func (g *Generator) Analyze(req AnalyzeRequest) (*Analysis, error) {
	sp, err := CheckRequest(Request{Pet: req.Pet, BudgetPerMeal: req.BudgetPerMeal})
	if err != nil {
		return nil, err
	}
	if len(req.Items) == 0 {
		return nil, fmt.Errorf("%w: at least one ingredient required", ErrInvalidInput)
	}
	if len(req.Items) > MaxMealItems {
		return nil, fmt.Errorf("%w: at most %d ingredients", ErrInvalidInput, MaxMealItems)
	}

	ls := nutrition.ParseLifeStage(sp, req.Pet.LifeStage)
	profile, err := g.standards.Profile(sp, ls.Stage())
	if err != nil {
		return nil, err
	}
	concerns := g.concerns.Resolve(req.Pet.HealthConcerns)

	allergies := newMatcher(req.Pet.Allergies)
	bans := newMatcher(req.Pet.BannedIngredients)
	blocked := restrictedCategories(req.Pet.DietaryRestrictions)

	var (
		flags  = make([]Flag, 0)
		out    = make([]Line, 0, len(req.Items))
		items  = make([]nutrition.LineItem, 0, len(req.Items))
		known  = make([]nutrition.Ingredient, 0, len(req.Items))
		cost   float64
		unsafe int
	)
	for i, it := range req.Items {
		id, name := strings.TrimSpace(it.IngredientID), strings.TrimSpace(it.Name)
		if id == "" && name == "" {
			return nil, fmt.Errorf("%w: ingredient %d needs id or name", ErrInvalidInput, i)
		}
		if math.IsNaN(it.Grams) || math.IsInf(it.Grams, 0) || it.Grams <= 0 {
			return nil, fmt.Errorf("%w: ingredient %d grams must be positive", ErrInvalidInput, i)
		}

		ing, ok := g.resolve(id, name)
		if !ok {
			label := firstNonEmpty(name, id)
			flags = append(flags, Flag{
				Kind:         FlagUnknown,
				IngredientID: id,
				Name:         label,
				Message:      fmt.Sprintf("%s is not in the ingredient catalog; it adds no nutrients to the totals", label),
			})
			items = append(items, nutrition.LineItem{IngredientID: firstNonEmpty(id, name), Grams: it.Grams})
			out = append(out, Line{Name: label, Amount: fmt.Sprintf("%.0fg", it.Grams), Grams: it.Grams})
			continue
		}

		if ing.Nutrients == nil {
			flags = append(flags, Flag{
				Kind: FlagMissingData, IngredientID: ing.ID, Name: ing.Name,
				Message: fmt.Sprintf("No nutrient data for %s, so totals may be understated", ing.Name),
			})
		}
		if !ing.SafeFor(sp) {
			flags = append(flags, Flag{
				Kind: FlagUnsafe, IngredientID: ing.ID, Name: ing.Name,
				Message: fmt.Sprintf("%s is not on the safe list for %s", ing.Name, sp),
			})
		}
		if term, hit := allergies.match(ing); hit {
			flags = append(flags, Flag{
				Kind: FlagAllergy, IngredientID: ing.ID, Name: ing.Name, Term: term,
				Message: fmt.Sprintf("%s matches pet allergy %q", ing.Name, term),
			})
		}
		if term, hit := bans.match(ing); hit {
			flags = append(flags, Flag{
				Kind: FlagBanned, IngredientID: ing.ID, Name: ing.Name, Term: term,
				Message: fmt.Sprintf("%s matches banned ingredient %q", ing.Name, term),
			})
		}
		if blocked[ing.Category] {
			flags = append(flags, Flag{
				Kind: FlagRestricted, IngredientID: ing.ID, Name: ing.Name, Term: string(ing.Category),
				Message: fmt.Sprintf("%s is %s, which the dietary restrictions exclude", ing.Name, ing.Category),
			})
		}

		l := line{ing: ing, bucket: BucketOf(ing.Category), grams: it.Grams}
		cost += l.cost()
		items = append(items, nutrition.LineItem{IngredientID: ing.ID, Grams: it.Grams})
		known = append(known, ing)
		out = append(out, toLines([]line{l})...)
	}
	for _, f := range flags {
		if f.Kind.Conflict() {
			unsafe++
		}
	}

	totals := g.db.Aggregate(items)
	validation := nutrition.Validate(totals, profile)
	score, breakdown := g.scorer.Score(ScoreInput{
		Totals:      totals,
		Validation:  validation,
		Profile:     profile,
		Concerns:    concerns,
		Ingredients: known,
		Cost:        cost,
		Budget:      req.BudgetPerMeal,
		Recent:      req.Recent,
	})
	score = clampScore(float64(score - conflictPenalty*unsafe))

	rounded := totals.Rounded()
	return &Analysis{
		Species:       sp,
		LifeStage:     ls,
		Ingredients:   out,
		Nutrition:     rounded,
		CaPRatio:      rounded.CaPRatio,
		EstimatedCost: math.Round(cost*100) / 100,
		Score:         score,
		Breakdown:     breakdown,
		Validation:    validation,
		Portion:       portion(sp, ls, req.Pet.WeightKg, concerns, totals),
		Safe:          unsafe == 0,
		Flags:         flags,
		AnalyzedAt:    g.now().UTC(),
	}, nil
}

// resolve busca por id y después por nombre ("Sweet Potato", "sweet_potato").
func (g *Generator) resolve(id, name string) (nutrition.Ingredient, bool) {
	if id != "" {
		if ing, ok := g.db.Get(id); ok {
			return ing, true
		}
	}
	if name == "" {
		return nutrition.Ingredient{}, false
	}
	if ing, ok := g.db.Get(name); ok {
		return ing, true
	}
	key := nutrition.NormalizeKey(name)
	for _, ing := range g.db.All() {
		if nutrition.NormalizeKey(ing.Name) == key {
			return ing, true
		}
	}
	return nutrition.Ingredient{}, false
}

func firstNonEmpty(vals ...string) string {
	for _, v := range vals {
		if v != "" {
			return v
		}
	}
	return ""
}
