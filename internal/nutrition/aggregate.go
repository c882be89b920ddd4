package nutrition

import "math"

// LineItem es un ingrediente y su cantidad en gramos.
type LineItem struct {
	IngredientID string  `json:"ingredient_id"`
	Grams        float64 `json:"grams"`
}

// Totals son los nutrientes sumados de una receta (misma unidad que Composition, sin el /100 g).
type Totals struct {
	Protein    float64 `json:"protein_g"`
	Fat        float64 `json:"fat_g"`
	Fiber      float64 `json:"fiber_g"`
	Carbs      float64 `json:"carbs_g"`
	Moisture   float64 `json:"moisture_g"`
	Kcal       float64 `json:"kcal"`
	Calcium    float64 `json:"calcium_mg"`
	Phosphorus float64 `json:"phosphorus_mg"`
	Taurine    float64 `json:"taurine_mg"`
	Omega3     float64 `json:"omega3_g"`

	TotalGrams float64 `json:"total_weight_g"`
	CaPRatio   float64 `json:"ca_p_ratio"`

	// Ingredientes sin composición: no aportan a los totales.
	Missing []string `json:"missing_data,omitempty"`
}

// Aggregate suma la contribución de cada línea escalada por gramos/100.
// Las líneas sin composición se saltean y quedan en Totals.Missing.
func (db *Database) Aggregate(items []LineItem) Totals {
	var t Totals
	for _, it := range items {
		if it.Grams <= 0 {
			continue
		}
		t.TotalGrams += it.Grams

		c, ok := db.Lookup(it.IngredientID)
		if !ok {
			t.Missing = append(t.Missing, canonicalID(it.IngredientID))
			continue
		}
		t.add(c, it.Grams/100)
	}
	t.CaPRatio = ratio(t.Calcium, t.Phosphorus)
	return t
}

func (t *Totals) add(c Composition, f float64) {
	t.Protein += c.Protein * f
	t.Fat += c.Fat * f
	t.Fiber += c.Fiber * f
	t.Carbs += c.Carbs * f
	t.Moisture += c.Moisture * f
	t.Kcal += c.Kcal * f
	t.Calcium += c.Calcium * f
	t.Phosphorus += c.Phosphorus * f
	t.Taurine += c.Taurine * f
	t.Omega3 += c.Omega3 * f
}

func ratio(a, b float64) float64 {
	if b <= 0 {
		return 0
	}
	return a / b
}

// DryMatterGrams = total - humedad; si no hay dato útil de humedad usa el total.
func (t Totals) DryMatterGrams() float64 {
	dm := t.TotalGrams - t.Moisture
	if dm <= 0 {
		return t.TotalGrams
	}
	return dm
}

func (t Totals) dmPercent(v float64) float64 {
	dm := t.DryMatterGrams()
	if dm <= 0 {
		return 0
	}
	return v / dm * 100
}

func (t Totals) ProteinDM() float64 { return t.dmPercent(t.Protein) }
func (t Totals) FatDM() float64     { return t.dmPercent(t.Fat) }
func (t Totals) FiberDM() float64   { return t.dmPercent(t.Fiber) }

func (t Totals) per1000Kcal(v float64) float64 {
	if t.Kcal <= 0 {
		return 0
	}
	return v / t.Kcal * 1000
}

// mg por 1000 kcal
func (t Totals) CalciumDensity() float64    { return t.per1000Kcal(t.Calcium) }
func (t Totals) PhosphorusDensity() float64 { return t.per1000Kcal(t.Phosphorus) }
func (t Totals) TaurineDensity() float64    { return t.per1000Kcal(t.Taurine) }

// KcalPerGram de la receta completa; 0 si no hay peso.
func (t Totals) KcalPerGram() float64 {
	if t.TotalGrams <= 0 {
		return 0
	}
	return t.Kcal / t.TotalGrams
}

// Rounded devuelve una copia con valores redondeados para respuestas.
func (t Totals) Rounded() Totals {
	r := t
	r.Protein = round1(t.Protein)
	r.Fat = round1(t.Fat)
	r.Fiber = round1(t.Fiber)
	r.Carbs = round1(t.Carbs)
	r.Moisture = round1(t.Moisture)
	r.Kcal = math.Round(t.Kcal)
	r.Calcium = math.Round(t.Calcium)
	r.Phosphorus = math.Round(t.Phosphorus)
	r.Taurine = math.Round(t.Taurine)
	r.Omega3 = round1(t.Omega3)
	r.TotalGrams = math.Round(t.TotalGrams)
	r.CaPRatio = math.Round(t.CaPRatio*100) / 100
	return r
}

func round1(v float64) float64 { return math.Round(v*10) / 10 }
