package cli

import (
	"pet-plates/internal/nutrition"

	"github.com/spf13/cobra"
)

func standardsCommand(a *app) *cobra.Command {
	var species, lifeStage string

	cmd := &cobra.Command{
		Use:   "standards",
		Short: "Print the nutrient profile used for a species and life stage",
		RunE: func(cmd *cobra.Command, _ []string) error {
			sp, err := nutrition.ParseSpecies(species)
			if err != nil {
				return err
			}
			p, err := a.gen.Standards().Profile(sp, nutrition.ResolveStage(sp, lifeStage))
			if err != nil {
				return err
			}
			return a.print(cmd.OutOrStdout(), p)
		},
	}

	cmd.Flags().StringVar(&species, "species", "", "dog, cat, bird, reptile or pocket-pet")
	cmd.Flags().StringVar(&lifeStage, "life-stage", "", "baby, young, adult, senior or age in years")
	_ = cmd.MarkFlagRequired("species")

	return cmd
}
