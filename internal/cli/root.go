// Package cli arma los comandos cobra de la herramienta recipes.
package cli

import (
	"encoding/json"
	"fmt"
	"io"

	"pet-plates/internal/platform/config"
	"pet-plates/internal/recipes"

	"github.com/spf13/cobra"
)

type app struct {
	configPath string
	pretty     bool

	gen *recipes.Generator
}

// RootCommand devuelve el comando raíz con generate, catalog y standards.
func RootCommand() *cobra.Command {
	a := &app{}

	root := &cobra.Command{
		Use:           "recipes",
		Short:         "Generate balanced homemade recipes for pets",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVar(&a.configPath, "config", "", "config file (default: ./config.yaml if present)")
	root.PersistentFlags().BoolVar(&a.pretty, "pretty", true, "indent JSON output")

	root.PersistentPreRunE = func(cmd *cobra.Command, _ []string) error {
		return a.setup()
	}

	root.AddCommand(
		generateCommand(a),
		catalogCommand(a),
		standardsCommand(a),
	)
	return root
}

// setup carga config (defaults + archivo + PETPLATES_*) y arma el generador.
func (a *app) setup() error {
	cfg, err := config.Load(a.configPath)
	if err != nil {
		return err
	}
	g, err := recipes.NewDefaultGenerator(recipes.Config{
		BestOfAttempts:   cfg.Generation.BestOfAttempts,
		RetryFactor:      cfg.Generation.RetryFactor,
		OverageCeiling:   cfg.Generation.OverageCeiling,
		CalorieTolerance: cfg.Generation.CalorieTolerance,
		ReferenceBudget:  cfg.Generation.ReferenceBudget,
	})
	if err != nil {
		return fmt.Errorf("load recipe data: %w", err)
	}
	a.gen = g
	return nil
}

func (a *app) print(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	if a.pretty {
		enc.SetIndent("", "  ")
	}
	return enc.Encode(v)
}
