package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"slices"
	"strings"

	"github.com/spf13/cobra"

	"github.com/ersonp/lineage/internal/domain/entities"
	"github.com/ersonp/lineage/internal/infrastructure/config"
)

// actionFinder is implemented by audit logs that can filter by action.
type actionFinder interface {
	FindAuditLogByAction(ctx context.Context, action string, limit int) ([]entities.AuditEntry, error)
}

func newHistoryCmd() *cobra.Command {
	var (
		limit  int
		action string
	)

	cmd := &cobra.Command{
		Use:   "history [MEMBER]",
		Short: "Show recent changes, optionally for one member",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ref := ""
			if len(args) == 1 {
				ref = args[0]
			}
			if action != "" && ref != "" {
				return errors.New("--action cannot be combined with a member")
			}
			return withInternalDeps(cmd.Context(), func(d *internalDeps) error {
				entries, err := historyEntries(cmd.Context(), d, ref, action, limit)
				if err != nil {
					return err
				}
				formatHistory(cmd.OutOrStdout(), entries)
				return nil
			})
		},
	}

	cmd.Flags().IntVarP(&limit, "limit", "l", DefaultHistoryLimit, "Maximum number of entries (0 for all)")
	cmd.Flags().StringVarP(&action, "action", "a", "", "Only entries with this action, e.g. member.deleted")

	return cmd
}

func historyEntries(ctx context.Context, d *internalDeps, ref, action string, limit int) ([]entities.AuditEntry, error) {
	if action == "" {
		return d.Family.HandleHistory(ctx, ref, limit)
	}
	finder, ok := d.store.(actionFinder)
	if !ok {
		return nil, fmt.Errorf("filtering history by action needs the %s backend", config.BackendSQLite)
	}
	if limit <= 0 {
		limit = -1
	}
	entries, err := finder.FindAuditLogByAction(ctx, action, limit)
	if err != nil {
		return nil, fmt.Errorf("reading history: %w", err)
	}
	return entries, nil
}

func formatHistory(w io.Writer, entries []entities.AuditEntry) {
	if len(entries) == 0 {
		fmt.Fprintln(w, "No history recorded.")
		return
	}
	for _, e := range entries {
		line := fmt.Sprintf("%s  %-21s %s", e.CreatedAt.Format("2006-01-02 15:04:05"), e.Action, e.SubjectID)
		if details := formatDetails(e.Details); details != "" {
			line += "  " + details
		}
		fmt.Fprintln(w, strings.TrimRight(line, " "))
	}
}

// formatDetails prints details as key=value pairs in key order.
func formatDetails(details map[string]any) string {
	keys := make([]string, 0, len(details))
	for k := range details {
		keys = append(keys, k)
	}
	slices.Sort(keys)

	parts := make([]string, len(keys))
	for i, k := range keys {
		parts[i] = fmt.Sprintf("%s=%v", k, details[k])
	}
	return strings.Join(parts, " ")
}
