package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/ersonp/lineage/internal/application/handlers"
	"github.com/ersonp/lineage/internal/infrastructure/render"
)

type exportFlags struct {
	filterFlags
	format string
	focus  string
	wait   bool
}

func newExportCmd() *cobra.Command {
	flags := &exportFlags{}

	cmd := &cobra.Command{
		Use:   "export [FILE...]",
		Short: "Export the tree to data or image files",
		Long: `Export the family tree. The format of each FILE is taken from its extension:
json, yaml and csv write the stored data, png, svg and pdf draw the current view.
Without files, --format selects what is written to stdout.

Examples:
  lineage export family.json
  lineage export tree.png tree.pdf --side maternal
  lineage export --format csv > members.csv
  lineage export --focus "Michael Johnson" michael.svg`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runExport(cmd, args, flags)
		},
	}

	flags.register(cmd)
	cmd.Flags().StringVarP(&flags.format, "format", "f", handlers.FormatJSON, "Format written to stdout (json, yaml, csv, png, svg, pdf)")
	cmd.Flags().StringVar(&flags.focus, "focus", "", "Draw only this member and its direct relatives")
	cmd.Flags().BoolVar(&flags.wait, "wait", false, "Wait for image files inside the shell")

	return cmd
}

func runExport(cmd *cobra.Command, paths []string, flags *exportFlags) error {
	opts, err := flags.treeOptions(flags.focus)
	if err != nil {
		return err
	}

	return withInternalDeps(cmd.Context(), func(d *internalDeps) error {
		deps := &d.Deps
		if len(paths) == 0 {
			return exportToStdout(cmd, deps, opts, flags.format)
		}

		dataPaths, imagePaths := splitExportPaths(paths)
		for _, path := range dataPaths {
			if err := exportDataFile(deps, path); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Exported %s\n", path)
		}
		if len(imagePaths) == 0 {
			return nil
		}
		return exportImages(cmd, d, opts, imagePaths, flags.wait)
	})
}

func exportToStdout(cmd *cobra.Command, deps *Deps, opts handlers.TreeOptions, format string) error {
	if handlers.IsDataFormat(format) {
		return deps.Export.HandleData(cmd.OutOrStdout(), format)
	}
	imageFormat, err := render.ParseFormat(format)
	if err != nil {
		return err
	}
	return deps.Export.HandleImage(cmd.Context(), opts, imageFormat, cmd.OutOrStdout())
}

func exportDataFile(deps *Deps, path string) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating %s: %w", path, err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("closing %s: %w", path, cerr)
		}
	}()

	if err := deps.Export.HandleData(f, extension(path)); err != nil {
		return fmt.Errorf("exporting %s: %w", path, err)
	}
	return nil
}

// exportImages renders every image path in the background. One-shot
// commands wait for the files; the shell returns at once unless wait is
// set, reports failures through the logger and waits for pending exports
// when it exits.
func exportImages(cmd *cobra.Command, d *internalDeps, opts handlers.TreeOptions, paths []string, wait bool) error {
	export, err := d.Export.HandleImages(cmd.Context(), opts, paths)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if inShell() && !wait {
		fmt.Fprintf(out, "Exporting %d members to %s in the background\n", export.Members, strings.Join(export.Paths, ", "))
		log := d.Log
		d.goExport(func() {
			if err := <-export.Done; err != nil {
				log.Error("background export failed", "paths", export.Paths, "error", err)
				return
			}
			log.Info("background export finished", "paths", export.Paths)
		})
		return nil
	}

	if err := <-export.Done; err != nil {
		return err
	}
	for _, path := range export.Paths {
		fmt.Fprintf(out, "Exported %s\n", path)
	}
	return nil
}

// splitExportPaths separates data files from image files by extension.
// Unknown extensions are treated as images so the renderer reports them.
func splitExportPaths(paths []string) (data, images []string) {
	for _, path := range paths {
		if handlers.IsDataFormat(extension(path)) {
			data = append(data, path)
		} else {
			images = append(images, path)
		}
	}
	return data, images
}

func extension(path string) string {
	return strings.ToLower(strings.TrimPrefix(filepath.Ext(path), "."))
}
