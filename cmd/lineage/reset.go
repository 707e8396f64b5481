package main

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/ersonp/lineage/internal/application/handlers"
)

func newResetCmd() *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "reset",
		Short: "Remove every member and relationship",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !force {
				return errors.New("reset deletes the whole tree; use --force to confirm")
			}
			return withDeps(cmd.Context(), func(deps *Deps) error {
				stats := deps.Family.HandleStats()
				if err := deps.Family.HandleReset(cmd.Context()); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Removed %d members and %d relationships\n", stats.Members, stats.Relationships)
				return nil
			})
		},
	}

	cmd.Flags().BoolVarP(&force, "force", "f", false, "Confirm the reset")

	return cmd
}

func newSeedCmd() *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Replace the tree with the sample family",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withDeps(cmd.Context(), func(deps *Deps) error {
				if deps.Family.HandleStats().Members > 0 && !force {
					return errors.New("tree is not empty; use --force to replace it")
				}
				if err := deps.Family.HandleSeed(cmd.Context()); err != nil {
					return err
				}
				stats := deps.Family.HandleStats()
				fmt.Fprintf(cmd.OutOrStdout(), "Loaded sample family: %d members, %d relationships\n", stats.Members, stats.Relationships)
				return nil
			})
		},
	}

	cmd.Flags().BoolVarP(&force, "force", "f", false, "Replace a non-empty tree")

	return cmd
}

// revisioner is implemented by stores that count document saves.
type revisioner interface {
	Revision(ctx context.Context, key string) (int, error)
}

func newStatsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Show member, relationship and generation counts",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withInternalDeps(cmd.Context(), func(d *internalDeps) error {
				revision := -1
				if r, ok := d.store.(revisioner); ok {
					rev, err := r.Revision(cmd.Context(), d.DocumentKey)
					if err != nil {
						return fmt.Errorf("reading revision: %w", err)
					}
					revision = rev
				}
				formatStats(cmd.OutOrStdout(), d.DocumentKey, d.Family.HandleStats(), revision)
				return nil
			})
		},
	}
}

// formatStats prints tree counts. A negative revision is omitted.
func formatStats(w io.Writer, key string, stats handlers.Stats, revision int) {
	fmt.Fprintf(w, "Tree:          %s\n", key)
	fmt.Fprintf(w, "Members:       %d\n", stats.Members)
	fmt.Fprintf(w, "Relationships: %d\n", stats.Relationships)
	fmt.Fprintf(w, "Generations:   %d\n", len(stats.Generations))
	if revision >= 0 {
		fmt.Fprintf(w, "Revision:      %d\n", revision)
	}
}
