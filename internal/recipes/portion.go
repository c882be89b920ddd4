package recipes

import (
	"fmt"
	"math"

	"pet-plates/internal/nutrition"
)

// kcal por kg de peso corporal y por día, adulto
var kcalPerKg = map[nutrition.Species]float64{
	nutrition.SpeciesDog:       95,
	nutrition.SpeciesCat:       75,
	nutrition.SpeciesBird:      250,
	nutrition.SpeciesReptile:   25,
	nutrition.SpeciesPocketPet: 120,
}

// ajuste porcentual por etapa de vida
var stageAdjustPct = map[nutrition.LifeStage]float64{
	nutrition.LifeStageBaby:   15,
	nutrition.LifeStageYoung:  5,
	nutrition.LifeStageAdult:  0,
	nutrition.LifeStageSenior: -10,
}

func servingsPerDay(sp nutrition.Species, ls nutrition.LifeStage) int {
	switch sp {
	case nutrition.SpeciesCat:
		if ls == nutrition.LifeStageBaby {
			return 3
		}
		return 2
	case nutrition.SpeciesReptile:
		return 1
	default:
		return 2
	}
}

// DailyCalories estima las kcal diarias. El ajuste total queda acotado a [-40%, +50%].
func DailyCalories(sp nutrition.Species, ls nutrition.LifeStage, weightKg float64, concerns []*Concern) int {
	adj := stageAdjustPct[ls]
	for _, c := range concerns {
		adj += c.CalorieAdjustPct
	}
	adj = math.Max(-40, math.Min(50, adj))

	perKg := kcalPerKg[sp] * (1 + adj/100)
	return max(1, int(math.Round(weightKg*perKg)))
}

func portion(sp nutrition.Species, ls nutrition.LifeStage, weightKg float64, concerns []*Concern, t nutrition.Totals) Portion {
	daily := DailyCalories(sp, ls, weightKg, concerns)
	servings := servingsPerDay(sp, ls)

	p := Portion{
		ServingsPerDay: servings,
		DailyCalories:  daily,
	}
	kpg := t.KcalPerGram()
	if kpg <= 0 {
		return p
	}
	grams := float64(daily) / float64(servings) / kpg
	if grams < 10 {
		p.ServingSizeGrams = math.Round(grams*10) / 10
		p.ServingSize = fmt.Sprintf("%.1fg", p.ServingSizeGrams)
	} else {
		p.ServingSizeGrams = math.Round(grams)
		p.ServingSize = fmt.Sprintf("%.0fg", p.ServingSizeGrams)
	}
	return p
}
