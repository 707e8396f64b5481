package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/ersonp/lineage/internal/application/handlers"
	"github.com/ersonp/lineage/internal/domain/entities"
)

// memberFlags maps form field names to flag values. Only flags the user
// actually set end up in the form.
type memberFlags struct {
	values map[string]*string
	extra  map[string]string
}

// memberFlagNames pairs each form field with its flag name.
var memberFlagNames = []struct {
	field string
	flag  string
	usage string
}{
	{"name", "name", "Full name"},
	{"relationship", "role", "Role label, e.g. Father"},
	{"status", "status", "Status, e.g. Living"},
	{"birthDate", "born", "Birth date"},
	{"deathDate", "died", "Death date"},
	{"generation", "generation", "Generation number"},
	{"side", "side", "Family side (paternal, maternal, ego)"},
	{"tags", "tags", "Comma separated tags"},
	{"location", "location", "Location"},
	{"occupation", "occupation", "Occupation"},
	{"description", "description", "Free text description"},
	{"avatar", "avatar", "Avatar image file or URL"},
}

func addMemberFlags(cmd *cobra.Command) *memberFlags {
	flags := &memberFlags{values: make(map[string]*string)}
	for _, f := range memberFlagNames {
		flags.values[f.flag] = cmd.Flags().String(f.flag, "", f.usage)
	}
	cmd.Flags().StringToStringVar(&flags.extra, "field", nil, "Set any form field (key=value)")
	return flags
}

// form collects the changed flags into a member form.
func (f *memberFlags) form(cmd *cobra.Command) map[string]string {
	form := make(map[string]string)
	for key, value := range f.extra {
		form[key] = value
	}
	for _, mf := range memberFlagNames {
		if cmd.Flags().Changed(mf.flag) {
			form[mf.field] = *f.values[mf.flag]
		}
	}
	return form
}

func newMemberCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "member",
		Aliases: []string{"members"},
		Short:   "Manage family members",
	}

	cmd.AddCommand(
		newMemberAddCmd(),
		newMemberUpdateCmd(),
		newMemberDeleteCmd(),
		newMemberListCmd(),
		newMemberSearchCmd(),
		newMemberShowCmd(),
	)

	return cmd
}

func newMemberAddCmd() *cobra.Command {
	var flags *memberFlags

	cmd := &cobra.Command{
		Use:   "add [NAME]",
		Short: "Add a member",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			form := flags.form(cmd)
			if len(args) == 1 {
				form["name"] = args[0]
			}
			return withDeps(cmd.Context(), func(deps *Deps) error {
				m, err := deps.Members.HandleAdd(cmd.Context(), form)
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Added member %d: %s\n", m.ID, m.Name)
				return nil
			})
		},
	}
	flags = addMemberFlags(cmd)

	return cmd
}

func newMemberUpdateCmd() *cobra.Command {
	var flags *memberFlags

	cmd := &cobra.Command{
		Use:   "update MEMBER",
		Short: "Update a member by id or name",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			form := flags.form(cmd)
			if len(form) == 0 {
				return fmt.Errorf("nothing to update (valid fields: %s)", strings.Join(handlers.FormFields(), ", "))
			}
			return withDeps(cmd.Context(), func(deps *Deps) error {
				m, err := deps.Members.HandleUpdate(cmd.Context(), args[0], form)
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Updated member %d: %s\n", m.ID, m.Name)
				return nil
			})
		},
	}
	flags = addMemberFlags(cmd)

	return cmd
}

func newMemberDeleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete MEMBER",
		Short: "Delete a member and every relationship that touches it",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withDeps(cmd.Context(), func(deps *Deps) error {
				result, err := deps.Members.HandleDelete(cmd.Context(), args[0])
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Deleted member %d: %s (%d relationships removed)\n",
					result.Member.ID, result.Member.Name, len(result.RemovedRelationships))
				return nil
			})
		},
	}
}

func newMemberListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List members sorted by name",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withDeps(cmd.Context(), func(deps *Deps) error {
				formatMemberTable(cmd.OutOrStdout(), deps.Members.HandleList())
				return nil
			})
		},
	}
}

func newMemberSearchCmd() *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "search QUERY",
		Short: "Find members whose name contains QUERY",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withDeps(cmd.Context(), func(deps *Deps) error {
				members := deps.Members.HandleSearch(args[0])
				if limit > 0 && len(members) > limit {
					members = members[:limit]
				}
				formatMemberTable(cmd.OutOrStdout(), members)
				return nil
			})
		},
	}

	cmd.Flags().IntVarP(&limit, "limit", "l", DefaultSearchLimit, "Maximum number of results")

	return cmd
}

func newMemberShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show MEMBER",
		Short: "Show a member and its relationships",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withDeps(cmd.Context(), func(deps *Deps) error {
				detail, err := deps.Members.HandleShow(args[0])
				if err != nil {
					return err
				}
				formatMemberDetail(cmd.OutOrStdout(), detail)
				return nil
			})
		},
	}
}

func formatMemberTable(w io.Writer, members []entities.Member) {
	if len(members) == 0 {
		fmt.Fprintln(w, "No members found.")
		return
	}

	fmt.Fprintf(w, "%-5s %-24s %-14s %-4s %-9s %s\n", "ID", "NAME", "ROLE", "GEN", "SIDE", "TAGS")
	fmt.Fprintf(w, "%-5s %-24s %-14s %-4s %-9s %s\n", "--", "----", "----", "---", "----", "----")
	for _, m := range members {
		fmt.Fprintf(w, "%-5d %-24s %-14s %-4d %-9s %s\n",
			m.ID, truncate(m.Name, 24), truncate(m.Relationship, 14), m.Generation, m.Side, strings.Join(m.Tags, ", "))
	}
	fmt.Fprintf(w, "\nTotal: %d members\n", len(members))
}

func formatMemberDetail(w io.Writer, detail *handlers.MemberDetail) {
	m := detail.Member
	fmt.Fprintf(w, "%s (#%d)\n", m.Name, m.ID)
	printField(w, "Role", m.Relationship)
	printField(w, "Status", m.Status)
	printField(w, "Born", m.BirthDate)
	printField(w, "Died", m.DeathDate)
	fmt.Fprintf(w, "  %-12s %d\n", "Generation:", m.Generation)
	printField(w, "Side", string(m.Side))
	printField(w, "Location", m.Location)
	printField(w, "Occupation", m.Occupation)
	printField(w, "Tags", strings.Join(m.Tags, ", "))
	printField(w, "Description", m.Description)

	if len(detail.Relationships) == 0 {
		fmt.Fprintln(w, "\nNo relationships.")
		return
	}
	fmt.Fprintf(w, "\nRelationships (%d):\n", len(detail.Relationships))
	for _, v := range detail.Relationships {
		fmt.Fprintf(w, "  [%s] %s\n", v.Relationship.ID, v.Label())
	}
}

func printField(w io.Writer, label, value string) {
	if value == "" {
		return
	}
	fmt.Fprintf(w, "  %-12s %s\n", label+":", value)
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	if n <= 3 {
		return string(r[:n])
	}
	return string(r[:n-3]) + "..."
}
