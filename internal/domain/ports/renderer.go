package ports

import (
	"context"
	"io"

	"github.com/ersonp/lineage/internal/domain/entities"
)

// ImageFormat is an output format of the presentation adapter.
type ImageFormat string

const (
	FormatPNG ImageFormat = "png"
	FormatPDF ImageFormat = "pdf"
	FormatSVG ImageFormat = "svg"
)

// Scene is everything the presentation adapter needs to draw a tree:
// the visible members, their card boxes and the routed connections.
type Scene struct {
	Width       float64
	Height      float64
	Members     []entities.Member
	Boxes       map[entities.MemberID]entities.Box
	Connections []entities.RoutedConnection
	ShowNotes   bool
}

// Renderer draws a scene in a given format.
type Renderer interface {
	Render(ctx context.Context, scene *Scene, format ImageFormat, w io.Writer) error
}
