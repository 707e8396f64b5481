package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/ersonp/lineage/internal/application/handlers"
	"github.com/ersonp/lineage/internal/domain/entities"
	"github.com/ersonp/lineage/internal/domain/services"
	"github.com/ersonp/lineage/internal/infrastructure/render"
)

// filterFlags holds the member and relationship filters shared by tree
// and export.
type filterFlags struct {
	tag          string
	side         string
	generations  []int
	role         string
	status       string
	hideDeceased bool
	link         string
	width        float64
	hideNotes    bool
}

func (f *filterFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.tag, "tag", "", "Only members with a tag containing this text")
	cmd.Flags().StringVar(&f.side, "side", "", "Only this family side (paternal, maternal); ego always shows")
	cmd.Flags().IntSliceVarP(&f.generations, "generation", "g", nil, "Only these generations (repeatable)")
	cmd.Flags().StringVar(&f.role, "role", "", "Only members with this role label")
	cmd.Flags().StringVar(&f.status, "status", "", "Only members with this status")
	cmd.Flags().BoolVar(&f.hideDeceased, "hide-deceased", false, "Hide members with a death date")
	cmd.Flags().StringVar(&f.link, "link", "", "Only relationships of this link kind")
	cmd.Flags().Float64Var(&f.width, "width", 0, "Viewport width used for layout (default from config)")
	cmd.Flags().BoolVar(&f.hideNotes, "hide-notes", false, "Do not draw relationship notes")
}

// spec converts the flags into a filter. "all" and empty mean no
// restriction.
func (f *filterFlags) spec() (services.FilterSpec, error) {
	spec := services.FilterSpec{
		Tag:          f.tag,
		Generations:  f.generations,
		Role:         f.role,
		Status:       f.status,
		HideDeceased: f.hideDeceased,
	}

	if side := strings.ToLower(strings.TrimSpace(f.side)); side != "" && side != "all" {
		if !entities.Side(side).IsValid() {
			return spec, fmt.Errorf("invalid side %q (valid: paternal, maternal, ego)", f.side)
		}
		spec.Side = entities.Side(side)
	}

	if link := strings.TrimSpace(f.link); link != "" && !strings.EqualFold(link, "all") {
		kind, ok := entities.ParseLinkKind(link)
		if !ok {
			return spec, fmt.Errorf("invalid link %q (valid: Parent, Spouse, Partner, Sibling)", f.link)
		}
		spec.Link = kind
	}

	return spec, nil
}

// treeOptions builds handler options for the filtered view, or for a
// focus view when focus is set.
func (f *filterFlags) treeOptions(focus string) (handlers.TreeOptions, error) {
	opts := handlers.TreeOptions{
		Focus:         focus,
		ViewportWidth: f.width,
		HideNotes:     f.hideNotes,
	}
	if focus != "" {
		return opts, nil
	}
	spec, err := f.spec()
	if err != nil {
		return opts, err
	}
	opts.Filter = spec
	return opts, nil
}

func newTreeCmd() *cobra.Command {
	flags := &filterFlags{}
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "tree",
		Short: "Show the family tree by generation",
		Long: `Show the visible family tree grouped by generation.

Examples:
  lineage tree
  lineage tree --side paternal --hide-deceased
  lineage tree --generation 2 --generation 3 --link Parent
  lineage tree --tag Military --json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTree(cmd, flags, "", asJSON)
		},
	}

	flags.register(cmd)
	cmd.Flags().BoolVar(&asJSON, "json", false, "Print the laid out scene as JSON")

	return cmd
}

func newFocusCmd() *cobra.Command {
	flags := &filterFlags{}
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "focus MEMBER",
		Short: "Show a member with its direct relatives",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTree(cmd, flags, args[0], asJSON)
		},
	}

	cmd.Flags().Float64Var(&flags.width, "width", 0, "Viewport width used for layout (default from config)")
	cmd.Flags().BoolVar(&asJSON, "json", false, "Print the laid out scene as JSON")

	return cmd
}

func runTree(cmd *cobra.Command, flags *filterFlags, focus string, asJSON bool) error {
	opts, err := flags.treeOptions(focus)
	if err != nil {
		return err
	}

	return withDeps(cmd.Context(), func(deps *Deps) error {
		tree, err := deps.Tree.HandleTree(opts)
		if err != nil {
			return err
		}
		if asJSON {
			return formatTreeJSON(cmd.OutOrStdout(), tree)
		}
		formatTreeText(cmd.OutOrStdout(), tree)
		return nil
	})
}

func formatTreeText(w io.Writer, tree *handlers.TreeResult) {
	if tree.Focus != nil {
		fmt.Fprintf(w, "Focus: %s (#%d)\n\n", tree.Focus.Name, tree.Focus.ID)
	}
	if tree.Layout.Empty {
		fmt.Fprintln(w, render.EmptyMessage)
		return
	}

	for _, bucket := range tree.Layout.Buckets {
		fmt.Fprintf(w, "Generation %d\n", bucket.Generation)
		for _, m := range bucket.Members {
			line := fmt.Sprintf("  [%d] %s", m.ID, m.Name)
			if m.Relationship != "" {
				line += " (" + m.Relationship + ")"
			}
			if m.IsDeceased() {
				line += " +" + m.DeathDate
			}
			fmt.Fprintln(w, line)
		}
	}

	names := make(map[entities.MemberID]string, len(tree.View.Members))
	for _, m := range tree.View.Members {
		names[m.ID] = m.Name
	}

	if len(tree.Scene.Connections) > 0 {
		fmt.Fprintln(w, "\nConnections")
		for _, c := range tree.Scene.Connections {
			rel := c.Relationship
			fmt.Fprintf(w, "  [%s] %s <-> %s  %s\n", rel.ID, names[rel.Members[0]], names[rel.Members[1]], rel.Link)
		}
	}

	fmt.Fprintf(w, "\n%d members, %d connections, %d generations\n",
		len(tree.View.Members), len(tree.Scene.Connections), len(tree.Layout.Buckets))
}

// sceneJSON is the machine-readable form of a laid out tree.
type sceneJSON struct {
	Width       float64            `json:"width"`
	Height      float64            `json:"height"`
	Focus       *entities.MemberID `json:"focus,omitempty"`
	Members     []memberBoxJSON    `json:"members"`
	Connections []connectionJSON   `json:"connections"`
}

type memberBoxJSON struct {
	entities.Member
	Box entities.Box `json:"box"`
}

type connectionJSON struct {
	ID     string            `json:"id"`
	Link   entities.LinkKind `json:"link"`
	Path   string            `json:"path"`
	Anchor entities.Point    `json:"anchor"`
	Note   string            `json:"note,omitempty"`
}

func formatTreeJSON(w io.Writer, tree *handlers.TreeResult) error {
	out := sceneJSON{
		Width:       tree.Scene.Width,
		Height:      tree.Scene.Height,
		Members:     make([]memberBoxJSON, 0, len(tree.Scene.Members)),
		Connections: make([]connectionJSON, 0, len(tree.Scene.Connections)),
	}
	if tree.Focus != nil {
		out.Focus = &tree.Focus.ID
	}
	for _, m := range tree.Scene.Members {
		out.Members = append(out.Members, memberBoxJSON{Member: m, Box: tree.Scene.Boxes[m.ID]})
	}
	for _, c := range tree.Scene.Connections {
		out.Connections = append(out.Connections, connectionJSON{
			ID:     c.Relationship.ID,
			Link:   c.Relationship.Link,
			Path:   c.Route.Path.SVG(),
			Anchor: c.Route.Anchor,
			Note:   c.Relationship.Note,
		})
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}
