package recipes

import (
	"fmt"
	"math"
	"math/rand/v2"
	"sort"
	"time"

	"pet-plates/internal/nutrition"

	"github.com/google/uuid"
)

// Generator arma recetas candidatas: Selector -> Aggregate -> Validate -> Score.
//
// No guarda estado entre llamadas; la única fuente de azar es el *rand.Rand recibido,
// así que es seguro usarlo desde varias goroutines siempre que cada una use su propio rng.
type Generator struct {
	db        *nutrition.Database
	standards *nutrition.Standards
	concerns  *Concerns
	selector  *Selector
	scorer    *Scorer
	cfg       Config

	now   func() time.Time
	newID func() string
}

// NewGenerator recibe los datos de referencia ya construidos. concerns puede ser nil.
func NewGenerator(db *nutrition.Database, standards *nutrition.Standards, concerns *Concerns, cfg Config) *Generator {
	cfg = cfg.withDefaults()
	return &Generator{
		db:        db,
		standards: standards,
		concerns:  concerns,
		selector:  NewSelector(db),
		scorer:    NewScorer(db, cfg),
		cfg:       cfg,
		now:       time.Now,
		newID:     uuid.NewString,
	}
}

// NewDefaultGenerator usa el catálogo, estándares y condiciones embebidos.
func NewDefaultGenerator(cfg Config) (*Generator, error) {
	db, err := nutrition.LoadDefault()
	if err != nil {
		return nil, err
	}
	std, err := nutrition.DefaultStandards()
	if err != nil {
		return nil, err
	}
	cs, err := DefaultConcerns()
	if err != nil {
		return nil, err
	}
	return NewGenerator(db, std, cs, cfg), nil
}

func (g *Generator) Config() Config                  { return g.cfg }
func (g *Generator) Database() *nutrition.Database   { return g.db }
func (g *Generator) Standards() *nutrition.Standards { return g.standards }
func (g *Generator) Concerns() *Concerns             { return g.concerns }
func (g *Generator) Selector() *Selector             { return g.selector }

// NewRand arma un generador determinístico para una semilla.
func NewRand(seed uint64) *rand.Rand {
	return rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
}

func freshRand() *rand.Rand {
	return rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
}

// CheckRequest valida el contrato de entrada (uso incorrecto del llamador).
func CheckRequest(req Request) (nutrition.Species, error) {
	sp, err := nutrition.ParseSpecies(req.Pet.Species)
	if err != nil {
		return "", err
	}
	w := req.Pet.WeightKg
	if math.IsNaN(w) || math.IsInf(w, 0) || w <= 0 {
		return "", fmt.Errorf("%w: %v", ErrInvalidWeight, w)
	}
	if req.BudgetPerMeal < 0 || math.IsNaN(req.BudgetPerMeal) {
		return "", fmt.Errorf("%w: budget_per_meal must not be negative", ErrInvalidInput)
	}
	if req.TargetCalories < 0 || math.IsNaN(req.TargetCalories) {
		return "", fmt.Errorf("%w: target_calories must not be negative", ErrInvalidInput)
	}
	return sp, nil
}

// Generate arma un candidato. (nil, nil) significa que no se pudo armar una receta
// con estas restricciones; el error queda para entradas inválidas.
// Con rng nil se usa un generador nuevo para esta llamada.
func (g *Generator) Generate(rng *rand.Rand, req Request) (*Recipe, error) {
	sp, err := CheckRequest(req)
	if err != nil {
		return nil, err
	}
	if rng == nil {
		rng = freshRand()
	}
	return g.generate(rng, sp, req)
}

func (g *Generator) generate(rng *rand.Rand, sp nutrition.Species, req Request) (*Recipe, error) {
	ls := nutrition.ParseLifeStage(sp, req.Pet.LifeStage)
	profile, err := g.standards.Profile(sp, ls.Stage())
	if err != nil {
		return nil, err
	}
	concerns := g.concerns.Resolve(req.Pet.HealthConcerns)

	pool := g.selector.Pool(sp, req.Pet)
	lines, ok := g.selector.pick(rng, sp, pool)
	if !ok {
		return nil, nil
	}

	if req.TargetCalories > 0 {
		lines, ok = g.fitCalories(lines, req.TargetCalories)
		if !ok {
			return nil, nil
		}
	}
	if req.BudgetPerMeal > 0 {
		lines = g.fitBudget(lines, pool, req.BudgetPerMeal, req.TargetCalories)
	}

	totals := g.db.Aggregate(lineItems(lines))
	if totals.Kcal < 1 {
		return nil, nil
	}
	validation := nutrition.Validate(totals, profile)

	cost := totalCost(lines)
	ings := make([]nutrition.Ingredient, 0, len(lines))
	for _, l := range lines {
		ings = append(ings, l.ing)
	}

	score, breakdown := g.scorer.Score(ScoreInput{
		Totals:      totals,
		Validation:  validation,
		Profile:     profile,
		Concerns:    concerns,
		Ingredients: ings,
		Cost:        cost,
		Budget:      req.BudgetPerMeal,
		Recent:      req.Recent,
	})

	p := portion(sp, ls, req.Pet.WeightKg, concerns, totals)
	rounded := totals.Rounded()

	return &Recipe{
		ID:            g.newID(),
		Name:          recipeName(req.Pet.Name, sp, lines),
		PetID:         req.Pet.ID,
		Species:       sp,
		LifeStage:     ls,
		Ingredients:   toLines(lines),
		Nutrition:     rounded,
		CaPRatio:      rounded.CaPRatio,
		EstimatedCost: math.Round(cost*100) / 100,
		Score:         score,
		Breakdown:     breakdown,
		Validation:    validation,
		Instructions:  instructions(sp, p),
		Portion:       p,
		Explanation:   explanation(req.Pet, sp, ls, breakdown, validation, totals.Missing, cost, req.BudgetPerMeal),
		GeneratedAt:   g.now().UTC(),
	}, nil
}

// GenerateBest corre BestOfAttempts intentos con el mismo rng y devuelve el de mayor puntaje.
// Un candidato válido siempre le gana a uno con violaciones.
// (nil, nil) si ningún intento produjo receta.
func (g *Generator) GenerateBest(rng *rand.Rand, req Request) (*Recipe, error) {
	sp, err := CheckRequest(req)
	if err != nil {
		return nil, err
	}
	if rng == nil {
		rng = freshRand()
	}

	var best *Recipe
	for i := 0; i < g.cfg.BestOfAttempts; i++ {
		r, err := g.generate(rng, sp, req)
		if err != nil {
			return nil, err
		}
		if r == nil {
			continue
		}
		if better(r, best) {
			best = r
		}
	}
	return best, nil
}

func better(r, best *Recipe) bool {
	if best == nil {
		return true
	}
	if r.Validation.IsValid != best.Validation.IsValid {
		return r.Validation.IsValid
	}
	return r.Score > best.Score
}

// GenerateMany junta hasta count recetas con conjuntos de ingredientes distintos.
// Corta a los RetryFactor*count intentos. Los ingredientes ya aceptados cuentan
// como recientes para los intentos siguientes.
func (g *Generator) GenerateMany(rng *rand.Rand, req Request, count int) ([]*Recipe, error) {
	if count <= 0 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidCount, count)
	}
	sp, err := CheckRequest(req)
	if err != nil {
		return nil, err
	}
	if rng == nil {
		rng = freshRand()
	}

	out := make([]*Recipe, 0, count)
	seen := map[string]bool{}
	recent := append([]string(nil), req.Recent...)

	for attempt := 0; attempt < g.cfg.RetryFactor*count && len(out) < count; attempt++ {
		sub := req
		sub.Recent = recent
		r, err := g.generate(rng, sp, sub)
		if err != nil {
			return nil, err
		}
		if r == nil {
			continue
		}
		sig := r.Signature()
		if seen[sig] {
			continue
		}
		seen[sig] = true
		out = append(out, r)
		recent = append(recent, r.IngredientIDs()...)
	}
	return out, nil
}

func kcalOf(l line) float64 {
	if l.ing.Nutrients == nil {
		return 0
	}
	return l.ing.Nutrients.Kcal * l.grams / 100
}

// fitCalories reescala las líneas en gramos para acercarse al objetivo.
// Las porciones medidas quedan fijas. false si queda fuera de la tolerancia.
func (g *Generator) fitCalories(lines []line, target float64) ([]line, bool) {
	fixedK, scalK := 0.0, 0.0
	for _, l := range lines {
		if l.fixed() {
			fixedK += kcalOf(l)
		} else {
			scalK += kcalOf(l)
		}
	}
	if scalK <= 0 {
		return nil, false
	}
	f := (target - fixedK) / scalK
	if f <= 0 {
		return nil, false
	}

	out := make([]line, len(lines))
	total := 0.0
	for i, l := range lines {
		if !l.fixed() {
			l.grams = math.Max(1, math.Round(l.grams*f))
		}
		out[i] = l
		total += kcalOf(l)
	}
	if math.Abs(total-target) > g.cfg.CalorieTolerance*target {
		return nil, false
	}
	return out, true
}

// fitBudget cambia la línea más cara por la alternativa más barata del mismo bucket
// mientras el costo supere budget*OverageCeiling y haya cambios posibles.
func (g *Generator) fitBudget(lines []line, pool []nutrition.Ingredient, budget, target float64) []line {
	ceiling := budget * g.cfg.OverageCeiling
	buckets := Buckets(pool)

	for i := 0; i < len(pool)*len(lines) && totalCost(lines) > ceiling; i++ {
		next, ok := cheaperSwap(lines, buckets)
		if !ok {
			break
		}
		if target > 0 {
			next, ok = g.fitCalories(next, target)
			if !ok {
				break
			}
		}
		lines = next
	}
	return lines
}

func cheaperSwap(lines []line, buckets map[Bucket][]nutrition.Ingredient) ([]line, bool) {
	used := map[string]bool{}
	for _, l := range lines {
		used[l.ing.ID] = true
	}

	order := make([]int, len(lines))
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(a, b int) bool { return lines[order[a]].cost() > lines[order[b]].cost() })

	for _, idx := range order {
		cur := lines[idx]
		var (
			alt   nutrition.Ingredient
			found bool
		)
		for _, cand := range buckets[cur.bucket] {
			if used[cand.ID] || cand.PricePerLb >= cur.ing.PricePerLb {
				continue
			}
			if !found || cand.PricePerLb < alt.PricePerLb {
				alt, found = cand, true
			}
		}
		if !found {
			continue
		}
		out := make([]line, len(lines))
		copy(out, lines)
		out[idx].ing = alt
		return out, true
	}
	return nil, false
}

func totalCost(lines []line) float64 {
	c := 0.0
	for _, l := range lines {
		c += l.cost()
	}
	return c
}

func lineItems(lines []line) []nutrition.LineItem {
	out := make([]nutrition.LineItem, 0, len(lines))
	for _, l := range lines {
		out = append(out, nutrition.LineItem{IngredientID: l.ing.ID, Grams: l.grams})
	}
	return out
}

func toLines(lines []line) []Line {
	out := make([]Line, 0, len(lines))
	for _, l := range lines {
		out = append(out, Line{
			IngredientID: l.ing.ID,
			Name:         l.ing.Name,
			Category:     l.ing.Category,
			Amount:       l.amount(),
			Grams:        l.grams,
			Cost:         math.Round(l.cost()*100) / 100,
		})
	}
	return out
}
