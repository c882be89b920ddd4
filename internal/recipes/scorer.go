package recipes

import (
	"math"

	"pet-plates/internal/nutrition"
)

// Weights son los pesos publicados del puntaje compuesto. Suman 1.
type Weights struct {
	Nutrition float64 `json:"nutrition"`
	Health    float64 `json:"health"`
	Cost      float64 `json:"cost"`
	Variety   float64 `json:"variety"`
	Quality   float64 `json:"quality"`
}

var DefaultWeights = Weights{
	Nutrition: 0.35,
	Health:    0.20,
	Cost:      0.15,
	Variety:   0.15,
	Quality:   0.15,
}

// Total combina los sub-puntajes con los pesos y redondea.
func (w Weights) Total(b Breakdown) int {
	v := w.Nutrition*float64(b.Nutrition) +
		w.Health*float64(b.Health) +
		w.Cost*float64(b.Cost) +
		w.Variety*float64(b.Variety) +
		w.Quality*float64(b.Quality)
	return clampScore(v)
}

// ScoreInput agrupa lo que necesita el Scorer para una receta.
type ScoreInput struct {
	Totals      nutrition.Totals
	Validation  nutrition.Result
	Profile     nutrition.Profile
	Concerns    []*Concern
	Ingredients []nutrition.Ingredient
	Cost        float64
	Budget      float64
	Recent      []string
}

// Scorer calcula el puntaje 0-100 y su desglose.
type Scorer struct {
	db      *nutrition.Database
	weights Weights
	cfg     Config
}

func NewScorer(db *nutrition.Database, cfg Config) *Scorer {
	return &Scorer{db: db, weights: DefaultWeights, cfg: cfg.withDefaults()}
}

func (s *Scorer) Weights() Weights { return s.weights }

func (s *Scorer) Score(in ScoreInput) (int, Breakdown) {
	b := Breakdown{
		Nutrition: s.nutrition(in),
		Health:    health(in.Concerns, in.Ingredients),
		Cost:      s.cost(in.Cost, in.Budget),
		Variety:   variety(in.Ingredients, in.Recent),
		Quality:   s.quality(in.Ingredients),
	}
	return s.weights.Total(b), b
}

// Puntos que resta cada violación del validador.
const violationPenalty = 25

// nutrition premia estar cerca del punto medio del rango, no solo dentro.
func (s *Scorer) nutrition(in ScoreInput) int {
	t, p := in.Totals, in.Profile

	checks := []struct {
		v float64
		r nutrition.Range
	}{
		{t.ProteinDM(), p.Protein},
		{t.FatDM(), p.Fat},
		{t.FiberDM(), p.Fiber},
		{t.CaPRatio, p.CaPRatio},
	}

	sum, n := 0.0, 0
	for _, c := range checks {
		if !c.r.Bounded() {
			continue
		}
		sum += closeness(c.v, c.r)
		n++
	}
	avg := 1.0
	if n > 0 {
		avg = sum / float64(n)
	}

	v := 100*(0.6+0.4*avg) -
		violationPenalty*float64(len(in.Validation.Violations)) -
		5*float64(len(in.Validation.Warnings)) -
		20*float64(len(in.Totals.Missing))
	return clampScore(v)
}

func closeness(v float64, r nutrition.Range) float64 {
	half := (r.Max - r.Min) / 2
	if half <= 0 {
		return 0
	}
	c := 1 - math.Abs(v-r.Mid())/half
	return math.Max(0, math.Min(1, c))
}

func health(concerns []*Concern, ings []nutrition.Ingredient) int {
	if len(concerns) == 0 {
		return 70
	}
	good, bad := 0, 0
	for _, c := range concerns {
		for _, ing := range ings {
			if c.Helps(ing.ID) {
				good++
			}
			if c.Hurts(ing.ID) {
				bad++
			}
		}
	}
	return clampScore(float64(50 + 35*good - 25*bad))
}

// cost es 100 dentro del presupuesto y cae lineal hasta 0 en budget*OverageCeiling.
func (s *Scorer) cost(cost, budget float64) int {
	if budget <= 0 {
		budget = s.cfg.ReferenceBudget
	}
	if cost <= budget {
		return 100
	}
	over := (cost - budget) / (budget * (s.cfg.OverageCeiling - 1))
	return clampScore(100 * (1 - over))
}

func variety(ings []nutrition.Ingredient, recent []string) int {
	cats := map[nutrition.Category]bool{}
	for _, ing := range ings {
		cats[ing.Category] = true
	}

	seen := map[string]bool{}
	for _, r := range recent {
		seen[nutrition.NormalizeKey(r)] = true
	}
	hits := 0
	for _, ing := range ings {
		if seen[nutrition.NormalizeKey(ing.ID)] || seen[nutrition.NormalizeKey(ing.Name)] {
			hits++
		}
	}
	return clampScore(float64(40 + 15*len(cats) - 20*hits))
}

func (s *Scorer) quality(ings []nutrition.Ingredient) int {
	if len(ings) == 0 {
		return 0
	}
	sum := 0
	ids := make([]string, 0, len(ings))
	for _, ing := range ings {
		q := ing.Quality
		if q <= 0 {
			q = 5
		}
		sum += q
		ids = append(ids, ing.ID)
	}
	avg := float64(sum) / float64(len(ings))
	bonus := math.Min(15, 5*float64(s.db.Pairings(ids)))
	return clampScore(avg*10 + bonus)
}

func clampScore(v float64) int {
	return int(math.Max(0, math.Min(100, math.Round(v))))
}
