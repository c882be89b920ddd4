package recipes

import (
	"fmt"
	"sort"
	"strings"

	"pet-plates/internal/nutrition"
)

const disclaimer = "This recipe is educational and not a substitute for veterinary advice; consult your veterinarian before changing your pet's diet."

func recipeName(petName string, sp nutrition.Species, lines []line) string {
	owner := strings.TrimSpace(petName)
	if owner == "" {
		owner = "Your Pet"
	}

	suffix := "Bowl"
	switch sp {
	case nutrition.SpeciesBird, nutrition.SpeciesPocketPet:
		suffix = "Medley"
	case nutrition.SpeciesReptile:
		suffix = "Feast"
	}

	names := make([]string, 0, 2)
	for _, l := range lines {
		if l.fixed() {
			continue
		}
		names = append(names, l.ing.Name)
		if len(names) == 2 {
			break
		}
	}
	if len(names) == 0 && len(lines) > 0 {
		names = append(names, lines[0].ing.Name)
	}
	return fmt.Sprintf("%s's %s %s", owner, strings.Join(names, " & "), suffix)
}

type factor struct {
	name  string
	score int
}

func explanation(pet PetProfile, sp nutrition.Species, ls nutrition.LifeStage, b Breakdown, v nutrition.Result, missing []string, cost, budget float64) string {
	factors := []factor{
		{"nutrition", b.Nutrition},
		{"health fit", b.Health},
		{"cost", b.Cost},
		{"variety", b.Variety},
		{"ingredient quality", b.Quality},
	}
	sort.SliceStable(factors, func(i, j int) bool { return factors[i].score > factors[j].score })

	var sb strings.Builder
	who := strings.TrimSpace(pet.Name)
	if who == "" {
		who = "your pet"
	}
	fmt.Fprintf(&sb, "Built for %s (%s %s, %.1f kg). ", who, ls, sp, pet.WeightKg)
	fmt.Fprintf(&sb, "Strongest factors: %s (%d) and %s (%d); weakest: %s (%d). ",
		factors[0].name, factors[0].score, factors[1].name, factors[1].score,
		factors[len(factors)-1].name, factors[len(factors)-1].score)

	switch {
	case v.IsValid && len(v.Warnings) == 0:
		sb.WriteString("Meets every nutrient check for this life stage. ")
	case v.IsValid:
		fmt.Fprintf(&sb, "Meets the minimum nutrient checks with %d warning(s) to review. ", len(v.Warnings))
	default:
		fmt.Fprintf(&sb, "Has %d nutrient violation(s); consider regenerating or adding a balancing supplement. ", len(v.Violations))
	}

	if len(missing) > 0 {
		fmt.Fprintf(&sb, "No nutrient data for %s, so totals may be understated. ", strings.Join(missing, ", "))
	}
	if budget > 0 {
		fmt.Fprintf(&sb, "Estimated $%.2f per meal against a $%.2f budget. ", cost, budget)
	} else {
		fmt.Fprintf(&sb, "Estimated $%.2f per meal. ", cost)
	}
	sb.WriteString(disclaimer)
	return sb.String()
}

func instructions(sp nutrition.Species, p Portion) []string {
	var steps []string
	switch sp {
	case nutrition.SpeciesDog:
		steps = []string{
			"Cook proteins thoroughly until no pink remains; drain excess fat.",
			"Steam or lightly boil vegetables until soft, then chop or mash.",
			"Let everything cool to room temperature and mix together.",
			"Stir in the supplement after cooking.",
		}
	case nutrition.SpeciesCat:
		steps = []string{
			"Cook proteins gently until done; never add onion, garlic or seasoning.",
			"Steam vegetables until very soft and mash finely.",
			"Cut everything into small bite-sized pieces and mix.",
			"Stir in the supplement once cooled.",
		}
	case nutrition.SpeciesBird:
		steps = []string{
			"Wash fresh produce well and chop into beak-sized pieces.",
			"Combine with the measured seeds, grains or pellets.",
			"Sprinkle the supplement pinch over the top.",
			"Remove uneaten fresh food after a few hours.",
		}
	case nutrition.SpeciesReptile:
		steps = []string{
			"Gut-load feeder insects for 24 hours before feeding.",
			"Chop greens finely and mix with any fruit.",
			"Dust the insects with the supplement right before feeding.",
			"Remove uneaten live insects from the enclosure.",
		}
	case nutrition.SpeciesPocketPet:
		steps = []string{
			"Offer the hay or pellet portion first.",
			"Wash and dry fresh vegetables, then chop into small pieces.",
			"Add the supplement to the fresh portion.",
			"Keep unlimited fresh water available.",
		}
	}
	if p.ServingSize != "" {
		steps = append(steps, fmt.Sprintf("Serve %s per meal, %d time(s) a day (about %d kcal daily).",
			p.ServingSize, p.ServingsPerDay, p.DailyCalories))
	}
	return steps
}
