package services

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"maps"
	"slices"
	"strconv"
	"strings"

	"golang.org/x/sync/errgroup"
	"gopkg.in/yaml.v3"

	"github.com/ersonp/lineage/internal/domain/entities"
	"github.com/ersonp/lineage/internal/domain/ports"
	"github.com/ersonp/lineage/internal/infrastructure/logger"
)

// CSVColumns is the fixed column order of the member CSV export.
var CSVColumns = []string{
	"id", "name", "relationship", "status", "birthDate", "deathDate",
	"generation", "side", "tags", "description",
}

// WriteDocumentJSON writes doc as indented JSON.
func WriteDocumentJSON(w io.Writer, doc *entities.Document) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(normalizedDocument(doc)); err != nil {
		return fmt.Errorf("encoding JSON: %w", err)
	}
	return nil
}

// WriteDocumentYAML writes doc as YAML.
func WriteDocumentYAML(w io.Writer, doc *entities.Document) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(normalizedDocument(doc)); err != nil {
		return fmt.Errorf("encoding YAML: %w", err)
	}
	return enc.Close()
}

// normalizedDocument guarantees both arrays are present in the output.
func normalizedDocument(doc *entities.Document) entities.Document {
	out := *doc
	if out.Members == nil {
		out.Members = []entities.Member{}
	}
	if out.Connections == nil {
		out.Connections = []entities.Relationship{}
	}
	return out
}

// WriteMembersCSV writes one row per member under a CSVColumns header.
// Every data field is quoted with embedded quotes doubled, and tags are
// joined with "; ".
func WriteMembersCSV(w io.Writer, members []entities.Member) error {
	var b strings.Builder
	b.WriteString(strings.Join(CSVColumns, ","))
	b.WriteByte('\n')

	for i := range members {
		m := &members[i]
		row := []string{
			strconv.FormatInt(int64(m.ID), 10),
			m.Name,
			m.Relationship,
			m.Status,
			m.BirthDate,
			m.DeathDate,
			strconv.Itoa(m.Generation),
			string(m.Side),
			strings.Join(m.Tags, "; "),
			m.Description,
		}
		for j, field := range row {
			if j > 0 {
				b.WriteByte(',')
			}
			b.WriteByte('"')
			b.WriteString(strings.ReplaceAll(field, `"`, `""`))
			b.WriteByte('"')
		}
		b.WriteByte('\n')
	}

	if _, err := io.WriteString(w, b.String()); err != nil {
		return fmt.Errorf("writing CSV: %w", err)
	}
	return nil
}

// ExportTarget is one image output of an asynchronous export.
type ExportTarget struct {
	Format ports.ImageFormat
	Writer io.Writer
}

// ExportService renders scenes through the presentation adapter.
type ExportService struct {
	renderer ports.Renderer
	log      *logger.Logger
}

// NewExportService creates a new export service.
func NewExportService(renderer ports.Renderer, log *logger.Logger) *ExportService {
	if log == nil {
		log = logger.Nop()
	}
	return &ExportService{renderer: renderer, log: log}
}

// Render draws scene in format to w and waits for the result.
func (s *ExportService) Render(ctx context.Context, scene *ports.Scene, format ports.ImageFormat, w io.Writer) error {
	if err := s.renderer.Render(ctx, scene, format, w); err != nil {
		return fmt.Errorf("rendering %s: %w", format, err)
	}
	return nil
}

// ExportAsync renders a private copy of scene to every target in the
// background and returns immediately. The returned channel receives the
// first error (or nil) once all targets are done. Callers may ignore it.
func (s *ExportService) ExportAsync(ctx context.Context, scene *ports.Scene, targets []ExportTarget) <-chan error {
	done := make(chan error, 1)
	snapshot := cloneScene(scene)

	go func() {
		defer close(done)

		g, gctx := errgroup.WithContext(ctx)
		for _, target := range targets {
			g.Go(func() error {
				s.log.Debug("rendering export", "format", target.Format, "members", len(snapshot.Members))
				if err := s.renderer.Render(gctx, snapshot, target.Format, target.Writer); err != nil {
					return fmt.Errorf("rendering %s: %w", target.Format, err)
				}
				return nil
			})
		}

		err := g.Wait()
		if err != nil {
			s.log.Warn("export failed", "error", err)
		}
		done <- err
	}()

	return done
}

// cloneScene deep-copies scene so later graph edits cannot reach it.
func cloneScene(scene *ports.Scene) *ports.Scene {
	out := *scene
	out.Members = make([]entities.Member, len(scene.Members))
	for i := range scene.Members {
		out.Members[i] = scene.Members[i].Clone()
	}
	out.Boxes = maps.Clone(scene.Boxes)
	out.Connections = slices.Clone(scene.Connections)
	return &out
}
