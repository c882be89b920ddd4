package nutrition

import "fmt"

// Result es la salida del validador. Las violaciones invalidan; los warnings solo se muestran.
type Result struct {
	IsValid    bool     `json:"is_valid"`
	Violations []string `json:"violations"`
	Warnings   []string `json:"warnings"`
	Score      int      `json:"score"`
}

type check struct {
	label string
	unit  string
	value float64
	rng   Range
}

// Validate compara los totales contra el perfil.
//   - debajo del mínimo: violación
//   - encima del máximo: warning, salvo CriticalMax (violación)
//   - Ca:P se chequea aparte: bajo mínimo violación, sobre máximo warning
//   - taurina bajo mínimo: siempre violación
func Validate(t Totals, p Profile) Result {
	res := Result{
		Violations: []string{},
		Warnings:   []string{},
	}

	checks := []check{
		{"Protein", "% DM", t.ProteinDM(), p.Protein},
		{"Fat", "% DM", t.FatDM(), p.Fat},
		{"Fiber", "% DM", t.FiberDM(), p.Fiber},
		{"Calcium", " mg/1000kcal", t.CalciumDensity(), p.Calcium},
		{"Phosphorus", " mg/1000kcal", t.PhosphorusDensity(), p.Phosphorus},
	}

	for _, c := range checks {
		if c.rng.HasMin() && c.value < c.rng.Min {
			res.Violations = append(res.Violations, fmt.Sprintf(
				"%s %s%s is below the AAFCO minimum of %s%s for %s %s",
				c.label, num(c.value), c.unit, num(c.rng.Min), c.unit, p.Stage, p.Species))
			continue
		}
		if c.rng.HasMax() && c.value > c.rng.Max {
			if c.rng.CriticalMax {
				res.Violations = append(res.Violations, fmt.Sprintf(
					"%s %s%s exceeds the critical maximum of %s%s for %s %s; excess can cause skeletal harm",
					c.label, num(c.value), c.unit, num(c.rng.Max), c.unit, p.Stage, p.Species))
				continue
			}
			res.Warnings = append(res.Warnings, fmt.Sprintf(
				"%s %s%s is above the recommended maximum of %s%s",
				c.label, num(c.value), c.unit, num(c.rng.Max), c.unit))
		}
	}

	ca := t.CaPRatio
	if p.CaPRatio.HasMin() && ca < p.CaPRatio.Min {
		res.Violations = append(res.Violations, fmt.Sprintf(
			"Ca:P ratio %.2f:1 is below the minimum %.2f:1 and may cause bone issues", ca, p.CaPRatio.Min))
	} else if p.CaPRatio.HasMax() && ca > p.CaPRatio.Max {
		res.Warnings = append(res.Warnings, fmt.Sprintf(
			"Ca:P ratio %.2f:1 is above the recommended maximum %.2f:1", ca, p.CaPRatio.Max))
	}

	if p.Taurine.HasMin() && t.TaurineDensity() < p.Taurine.Min {
		res.Violations = append(res.Violations, fmt.Sprintf(
			"Taurine %s mg/1000kcal is below the required %s mg/1000kcal; deficiency is life-threatening for %ss",
			num(t.TaurineDensity()), num(p.Taurine.Min), p.Species))
	}

	res.IsValid = len(res.Violations) == 0
	res.Score = clamp(100-20*len(res.Violations)-5*len(res.Warnings), 0, 100)
	return res
}

func num(v float64) string {
	if v >= 100 {
		return fmt.Sprintf("%.0f", v)
	}
	return fmt.Sprintf("%.1f", v)
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
