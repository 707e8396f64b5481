package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/ersonp/lineage/internal/domain/entities"
	"github.com/ersonp/lineage/internal/domain/ports"
	"github.com/ersonp/lineage/internal/infrastructure/config"
)

func newTreesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "trees",
		Short: "Manage named family trees",
		RunE:  runTreesList,
	}

	cmd.AddCommand(
		newTreesListCmd(),
		newTreesCreateCmd(),
		newTreesDeleteCmd(),
	)

	return cmd
}

func newTreesListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List all named trees",
		RunE:  runTreesList,
	}
}

func runTreesList(cmd *cobra.Command, args []string) error {
	cwd, err := os.Getwd()
	if err != nil {
		return fmt.Errorf("getting current directory: %w", err)
	}

	if !config.Exists(cwd) {
		return fmt.Errorf("lineage not initialized in %s (run 'lineage init' first)", cwd)
	}

	trees, err := config.LoadTrees(cwd)
	if err != nil {
		return fmt.Errorf("loading trees: %w", err)
	}

	formatTrees(cmd.OutOrStdout(), trees)
	return nil
}

func formatTrees(w io.Writer, trees *config.TreesConfig) {
	if len(trees.Trees) == 0 {
		fmt.Fprintln(w, "No named trees configured.")
		fmt.Fprintln(w, "Use 'lineage trees create NAME' to create one.")
		return
	}

	fmt.Fprintf(w, "%-20s %-25s %s\n", "NAME", "KEY", "DESCRIPTION")
	fmt.Fprintf(w, "%-20s %-25s %s\n", "----", "---", "-----------")

	for _, name := range trees.Names() {
		tree := trees.Trees[name]
		fmt.Fprintf(w, "%-20s %-25s %s\n", name, tree.Key, tree.Description)
	}
}

func newTreesCreateCmd() *cobra.Command {
	var (
		description string
		seed        bool
	)

	cmd := &cobra.Command{
		Use:   "create NAME",
		Short: "Create a new named tree",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTreesCreate(cmd, args[0], description, seed)
		},
	}

	cmd.Flags().StringVarP(&description, "description", "d", "", "Tree description")
	cmd.Flags().BoolVar(&seed, "seed", false, "Start the tree with the sample family")

	return cmd
}

func runTreesCreate(cmd *cobra.Command, name, description string, seed bool) error {
	ctx := cmd.Context()

	cwd, err := os.Getwd()
	if err != nil {
		return fmt.Errorf("getting current directory: %w", err)
	}

	trees, err := config.LoadTrees(cwd)
	if err != nil {
		return fmt.Errorf("loading trees: %w", err)
	}
	if trees.Exists(name) {
		return fmt.Errorf("tree %q already exists", name)
	}

	key := config.GenerateDocumentKey(name)
	err = withStore(ctx, cwd, func(cfg *config.Config, store ports.DocumentStore) error {
		existing, err := store.LoadDocument(ctx, key)
		if err != nil {
			return fmt.Errorf("checking document %s: %w", key, err)
		}
		if existing != nil {
			return fmt.Errorf("document %q is already in use", key)
		}

		doc := entities.Document{}
		if seed {
			doc = entities.SampleFamily()
		}
		return store.SaveDocument(ctx, key, &doc)
	})
	if err != nil {
		return err
	}

	trees.Add(name, config.TreeEntry{Key: key, Description: description})
	if err := trees.Save(cwd); err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Created tree %q with key %q\n", name, key)
	fmt.Fprintf(cmd.OutOrStdout(), "Use 'lineage --tree %s ...' to work on it.\n", name)
	return nil
}

func newTreesDeleteCmd() *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "delete NAME",
		Short: "Delete a named tree and its stored document",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTreesDelete(cmd, args[0], force)
		},
	}

	cmd.Flags().BoolVarP(&force, "force", "f", false, "Delete even if the tree has members")

	return cmd
}

func runTreesDelete(cmd *cobra.Command, name string, force bool) error {
	ctx := cmd.Context()

	cwd, err := os.Getwd()
	if err != nil {
		return fmt.Errorf("getting current directory: %w", err)
	}

	trees, err := config.LoadTrees(cwd)
	if err != nil {
		return fmt.Errorf("loading trees: %w", err)
	}
	entry, err := trees.Get(name)
	if err != nil {
		return err
	}

	if s := currentSession(); s != nil && s.DocumentKey == entry.Key {
		return fmt.Errorf("tree %q is open in this shell", name)
	}

	err = withStore(ctx, cwd, func(cfg *config.Config, store ports.DocumentStore) error {
		doc, err := store.LoadDocument(ctx, entry.Key)
		if err != nil {
			return fmt.Errorf("loading document %s: %w", entry.Key, err)
		}
		if doc != nil && len(doc.Members) > 0 && !force {
			return fmt.Errorf("tree %q has %d members; use --force to delete it", name, len(doc.Members))
		}
		return store.DeleteDocument(ctx, entry.Key)
	})
	if err != nil {
		return err
	}

	trees.Remove(name)
	if err := trees.Save(cwd); err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Deleted tree %q\n", name)
	return nil
}
