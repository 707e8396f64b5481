package handlers

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/ersonp/lineage/internal/domain/ports"
	"github.com/ersonp/lineage/internal/domain/services"
	"github.com/ersonp/lineage/internal/infrastructure/render"
)

// Data export formats.
const (
	FormatJSON = "json"
	FormatYAML = "yaml"
	FormatCSV  = "csv"
)

// DataFormats lists the document export formats.
var DataFormats = []string{FormatJSON, FormatYAML, FormatCSV}

// ExportHandler writes the family document and rendered tree views.
type ExportHandler struct {
	family *services.FamilyService
	export *services.ExportService
	tree   *TreeHandler
}

// NewExportHandler creates a new ExportHandler.
func NewExportHandler(family *services.FamilyService, export *services.ExportService, tree *TreeHandler) *ExportHandler {
	return &ExportHandler{
		family: family,
		export: export,
		tree:   tree,
	}
}

// IsDataFormat reports whether format is a document format rather than
// an image format.
func IsDataFormat(format string) bool {
	switch strings.ToLower(format) {
	case FormatJSON, FormatYAML, "yml", FormatCSV:
		return true
	default:
		return false
	}
}

// HandleData writes the whole document (json, yaml) or the member roster
// (csv) to w.
func (h *ExportHandler) HandleData(w io.Writer, format string) error {
	doc := h.family.Snapshot()
	switch strings.ToLower(format) {
	case FormatJSON:
		return services.WriteDocumentJSON(w, &doc)
	case FormatYAML, "yml":
		return services.WriteDocumentYAML(w, &doc)
	case FormatCSV:
		return services.WriteMembersCSV(w, doc.Members)
	default:
		return fmt.Errorf("unsupported data format %q (valid: %s)", format, strings.Join(DataFormats, ", "))
	}
}

// HandleImage renders the tree view selected by opts to w and waits.
func (h *ExportHandler) HandleImage(ctx context.Context, opts TreeOptions, format ports.ImageFormat, w io.Writer) error {
	tree, err := h.tree.HandleTree(opts)
	if err != nil {
		return err
	}
	return h.export.Render(ctx, tree.Scene, format, w)
}

// ImageExport is a started background export.
type ImageExport struct {
	Paths   []string
	Members int
	// Done receives the result once every file is written and closed.
	Done <-chan error
}

// HandleImages starts rendering the current view to every path, picking
// the format from each extension. It returns once the files are created;
// later mutations do not affect the output.
func (h *ExportHandler) HandleImages(ctx context.Context, opts TreeOptions, paths []string) (*ImageExport, error) {
	if len(paths) == 0 {
		return nil, errors.New("at least one output file is required")
	}

	formats := make([]ports.ImageFormat, len(paths))
	for i, path := range paths {
		format, err := render.FormatForFile(path)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", path, err)
		}
		formats[i] = format
	}

	tree, err := h.tree.HandleTree(opts)
	if err != nil {
		return nil, err
	}

	files := make([]*os.File, 0, len(paths))
	closeAll := func() {
		for _, f := range files {
			f.Close()
		}
	}
	targets := make([]services.ExportTarget, 0, len(paths))
	for i, path := range paths {
		f, err := os.Create(path)
		if err != nil {
			closeAll()
			return nil, fmt.Errorf("creating %s: %w", path, err)
		}
		files = append(files, f)
		targets = append(targets, services.ExportTarget{Format: formats[i], Writer: f})
	}

	rendered := h.export.ExportAsync(ctx, tree.Scene, targets)
	done := make(chan error, 1)
	go func() {
		defer close(done)
		err := <-rendered
		for _, f := range files {
			if cerr := f.Close(); cerr != nil && err == nil {
				err = fmt.Errorf("closing %s: %w", f.Name(), cerr)
			}
		}
		done <- err
	}()

	return &ImageExport{Paths: paths, Members: len(tree.Scene.Members), Done: done}, nil
}
