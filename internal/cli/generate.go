package cli

import (
	"errors"
	"math/rand/v2"

	"pet-plates/internal/recipes"

	"github.com/spf13/cobra"
)

var errNoRecipe = errors.New("no recipe could be assembled with these restrictions")

func generateCommand(a *app) *cobra.Command {
	var (
		pet      recipes.PetProfile
		budget   float64
		calories float64
		count    int
		seed     uint64
		single   bool
	)

	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Generate one recipe (best of N) or a batch of distinct recipes",
		Example: `  recipes generate --species dog --weight 20 --allergies chicken,beef --budget 2
  recipes generate --species cat --weight 4 --count 3 --seed 42`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			req := recipes.Request{
				Pet:            pet,
				BudgetPerMeal:  budget,
				TargetCalories: calories,
			}

			var rng *rand.Rand
			if cmd.Flags().Changed("seed") {
				rng = recipes.NewRand(seed)
			}

			if count > 1 {
				out, err := a.gen.GenerateMany(rng, req, count)
				if err != nil {
					return err
				}
				if len(out) == 0 {
					return errNoRecipe
				}
				return a.print(cmd.OutOrStdout(), out)
			}

			var (
				r   *recipes.Recipe
				err error
			)
			if single {
				r, err = a.gen.Generate(rng, req)
			} else {
				r, err = a.gen.GenerateBest(rng, req)
			}
			if err != nil {
				return err
			}
			if r == nil {
				return errNoRecipe
			}
			return a.print(cmd.OutOrStdout(), r)
		},
	}

	f := cmd.Flags()
	f.StringVar(&pet.Species, "species", "", "dog, cat, bird, reptile or pocket-pet")
	f.Float64Var(&pet.WeightKg, "weight", 0, "weight in kg")
	f.StringVar(&pet.Name, "name", "", "pet name, used in the recipe title")
	f.StringVar(&pet.LifeStage, "life-stage", "", "baby, young, adult, senior or age in years")
	f.StringSliceVar(&pet.Allergies, "allergies", nil, "allergens to exclude (comma separated)")
	f.StringSliceVar(&pet.BannedIngredients, "banned", nil, "ingredients to exclude (comma separated)")
	f.StringSliceVar(&pet.HealthConcerns, "concerns", nil, "health concerns (comma separated)")
	f.StringSliceVar(&pet.DietaryRestrictions, "restrictions", nil, "dietary restrictions, e.g. grain-free")
	f.Float64Var(&budget, "budget", 0, "soft budget per meal in USD (0 = none)")
	f.Float64Var(&calories, "calories", 0, "target kcal per meal (0 = heuristic amounts)")
	f.IntVar(&count, "count", 1, "number of distinct recipes")
	f.Uint64Var(&seed, "seed", 0, "random seed for reproducible output")
	f.BoolVar(&single, "single", false, "one attempt instead of best of N")
	_ = cmd.MarkFlagRequired("species")
	_ = cmd.MarkFlagRequired("weight")

	return cmd
}
