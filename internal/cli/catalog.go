package cli

import (
	"pet-plates/internal/nutrition"
	"pet-plates/internal/recipes"

	"github.com/spf13/cobra"
)

type catalogEntry struct {
	ID         string             `json:"id"`
	Name       string             `json:"name"`
	Category   nutrition.Category `json:"category"`
	Bucket     recipes.Bucket     `json:"bucket"`
	PricePerLb float64            `json:"price_per_lb"`
	Quality    int                `json:"quality"`
	HasData    bool               `json:"has_nutrients"`
}

func catalogCommand(a *app) *cobra.Command {
	var pet recipes.PetProfile

	cmd := &cobra.Command{
		Use:   "catalog",
		Short: "List the ingredients allowed for a species after exclusions",
		RunE: func(cmd *cobra.Command, _ []string) error {
			sp, err := nutrition.ParseSpecies(pet.Species)
			if err != nil {
				return err
			}
			pool := a.gen.Selector().Pool(sp, pet)

			out := make([]catalogEntry, 0, len(pool))
			for _, ing := range pool {
				out = append(out, catalogEntry{
					ID:         ing.ID,
					Name:       ing.Name,
					Category:   ing.Category,
					Bucket:     recipes.BucketOf(ing.Category),
					PricePerLb: ing.PricePerLb,
					Quality:    ing.Quality,
					HasData:    ing.Nutrients != nil,
				})
			}
			return a.print(cmd.OutOrStdout(), out)
		},
	}

	f := cmd.Flags()
	f.StringVar(&pet.Species, "species", "", "dog, cat, bird, reptile or pocket-pet")
	f.StringSliceVar(&pet.Allergies, "allergies", nil, "allergens to exclude")
	f.StringSliceVar(&pet.BannedIngredients, "banned", nil, "ingredients to exclude")
	f.StringSliceVar(&pet.DietaryRestrictions, "restrictions", nil, "dietary restrictions")
	_ = cmd.MarkFlagRequired("species")

	return cmd
}
