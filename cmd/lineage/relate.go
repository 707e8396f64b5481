package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/ersonp/lineage/internal/application/handlers"
)

type relateFlags struct {
	link     string
	relType  string
	status   string
	note     string
	fromRole string
	toRole   string
}

func (f *relateFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&f.link, "link", "l", "", "Link kind (Parent, Spouse, Partner, Sibling)")
	cmd.Flags().StringVar(&f.relType, "type", "", "Relationship type, e.g. Biological or Adopted")
	cmd.Flags().StringVar(&f.status, "status", "", "Relationship status, e.g. Married")
	cmd.Flags().StringVar(&f.note, "note", "", "Note drawn next to the connection")
	cmd.Flags().StringVar(&f.fromRole, "from-role", "", "Role label written to the first member")
	cmd.Flags().StringVar(&f.toRole, "to-role", "", "Role label written to the second member")
}

func newRelateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "relate",
		Short: "Create, edit and remove relationships",
	}

	cmd.AddCommand(
		newRelateCreateCmd(),
		newRelateUpdateCmd(),
		newRelateDeleteCmd(),
	)

	return cmd
}

func newRelateCreateCmd() *cobra.Command {
	flags := &relateFlags{}

	cmd := &cobra.Command{
		Use:   "create FROM TO",
		Short: "Connect two members by id or name",
		Long: `Connect two members. For Parent links either member may be the parent;
the one in the earlier generation becomes the parent.

Examples:
  lineage relate create "Robert Johnson" "Michael Johnson" --link Parent
  lineage relate create 5 6 --link Spouse --status Married --from-role Husband --to-role Wife`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRelateCreate(cmd, args[0], args[1], flags)
		},
	}

	flags.register(cmd)
	_ = cmd.MarkFlagRequired("link")

	return cmd
}

func runRelateCreate(cmd *cobra.Command, from, to string, flags *relateFlags) error {
	return withDeps(cmd.Context(), func(deps *Deps) error {
		view, err := deps.Relationships.HandleCreate(cmd.Context(), handlers.CreateInput{
			From:     from,
			To:       to,
			Link:     flags.link,
			Type:     flags.relType,
			Status:   flags.status,
			Note:     flags.note,
			FromRole: flags.fromRole,
			ToRole:   flags.toRole,
		})
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Created [%s] %s\n", view.Relationship.ID, view.Label())
		return nil
	})
}

func newRelateUpdateCmd() *cobra.Command {
	flags := &relateFlags{}

	cmd := &cobra.Command{
		Use:   "update ID",
		Short: "Edit a relationship",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRelateUpdate(cmd, args[0], flags)
		},
	}

	flags.register(cmd)

	return cmd
}

func runRelateUpdate(cmd *cobra.Command, id string, flags *relateFlags) error {
	in := relateUpdateInput(cmd, flags)
	return withDeps(cmd.Context(), func(deps *Deps) error {
		view, err := deps.Relationships.HandleUpdate(cmd.Context(), id, in)
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Updated [%s] %s\n", view.Relationship.ID, view.Label())
		return nil
	})
}

// relateUpdateInput keeps only the flags that were set.
func relateUpdateInput(cmd *cobra.Command, flags *relateFlags) handlers.UpdateInput {
	changed := func(name string, value *string) *string {
		if cmd.Flags().Changed(name) {
			return value
		}
		return nil
	}
	return handlers.UpdateInput{
		Link:     changed("link", &flags.link),
		Type:     changed("type", &flags.relType),
		Status:   changed("status", &flags.status),
		Note:     changed("note", &flags.note),
		FromRole: flags.fromRole,
		ToRole:   flags.toRole,
	}
}

func newRelateDeleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete ID",
		Short: "Remove a relationship",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withDeps(cmd.Context(), func(deps *Deps) error {
				if err := deps.Relationships.HandleDelete(cmd.Context(), args[0]); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Deleted relationship %s\n", args[0])
				return nil
			})
		},
	}
}

func newRelationsCmd() *cobra.Command {
	var search string

	cmd := &cobra.Command{
		Use:   "relations",
		Short: "List relationships",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withDeps(cmd.Context(), func(deps *Deps) error {
				formatRelationships(cmd.OutOrStdout(), deps.Relationships.HandleList(search))
				return nil
			})
		},
	}

	cmd.Flags().StringVarP(&search, "search", "s", "", "Only show relationships whose member names contain this text")

	return cmd
}

func formatRelationships(w io.Writer, views []handlers.RelationshipView) {
	if len(views) == 0 {
		fmt.Fprintln(w, "No relationships found.")
		return
	}
	for _, v := range views {
		fmt.Fprintf(w, "[%s] %s\n", v.Relationship.ID, v.Label())
		if v.Relationship.Note != "" {
			fmt.Fprintf(w, "      %s\n", v.Relationship.Note)
		}
	}
	fmt.Fprintf(w, "\nTotal: %d relationships\n", len(views))
}
