package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/ersonp/lineage/internal/application/handlers"
	"github.com/ersonp/lineage/internal/infrastructure/config"
)

type initFlags struct {
	backend string
	seed    bool
}

func newInitCmd() *cobra.Command {
	flags := &initFlags{}

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Initialize a new lineage workspace",
		Long:  "Creates a .lineage directory with default configuration and prepares the storage backend.",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runInit(cmd, flags)
		},
	}

	cmd.Flags().StringVar(&flags.backend, "backend", "", "Storage backend (sqlite, json)")
	cmd.Flags().BoolVar(&flags.seed, "seed", false, "Load the sample family after initializing")

	return cmd
}

func runInit(cmd *cobra.Command, flags *initFlags) error {
	out := cmd.OutOrStdout()

	cwd, err := os.Getwd()
	if err != nil {
		return fmt.Errorf("getting current directory: %w", err)
	}

	result, err := handlers.NewInitHandler().Handle(cwd)
	if err != nil {
		return err
	}
	fmt.Fprintf(out, "Created %s\n", result.ConfigPath)

	if flags.backend != "" && flags.backend != result.Backend {
		cfg, err := config.Load(cwd)
		if err != nil {
			return fmt.Errorf("loading config: %w", err)
		}
		cfg.Storage.Backend = flags.backend
		cfg.Storage.Path = ""
		if err := cfg.Validate(); err != nil {
			return err
		}
		if err := config.Write(cwd, cfg); err != nil {
			return fmt.Errorf("writing config: %w", err)
		}
		result.Backend = cfg.Storage.Backend
		result.StoragePath = cfg.StoragePath(cwd)
	}

	// Opening the tree once creates the database or document directory.
	err = withDeps(cmd.Context(), func(deps *Deps) error {
		if !flags.seed {
			return nil
		}
		if err := deps.Family.HandleSeed(cmd.Context()); err != nil {
			return fmt.Errorf("seeding sample family: %w", err)
		}
		stats := deps.Family.HandleStats()
		fmt.Fprintf(out, "Loaded sample family: %d members, %d relationships\n", stats.Members, stats.Relationships)
		return nil
	})
	if err != nil {
		return err
	}

	fmt.Fprintf(out, "Storage: %s (%s)\n", result.StoragePath, result.Backend)
	fmt.Fprintln(out, "Lineage initialized successfully!")
	return nil
}
