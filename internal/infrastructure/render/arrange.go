package render

import (
	"github.com/ersonp/lineage/internal/domain/entities"
	"github.com/ersonp/lineage/internal/domain/services"
)

// Geometry is the card grid used to place a layout in drawing space.
type Geometry struct {
	CardWidth  float64
	CardHeight float64
	ColumnGap  float64
	RowGap     float64
	Margin     float64
	// Narrow stacks the cards of each generation vertically.
	Narrow bool
}

// DefaultGeometry returns the grid used when nothing is configured.
func DefaultGeometry() Geometry {
	return Geometry{
		CardWidth:  180,
		CardHeight: 90,
		ColumnGap:  60,
		RowGap:     120,
		Margin:     60,
	}
}

// emptyWidth and emptyHeight size the canvas of an empty tree.
const (
	emptyWidth  = 480
	emptyHeight = 200
)

// Arrangement holds the box of every placed member and the canvas size.
type Arrangement struct {
	Boxes  map[entities.MemberID]entities.Box
	Width  float64
	Height float64
}

// Arrange places every bucket of layout on its own row, ordered top to
// bottom by generation. Rows are centered on the widest row. In narrow
// mode every card gets its own row and generations are separated by the
// row gap.
func Arrange(layout services.Layout, g Geometry) Arrangement {
	out := Arrangement{Boxes: make(map[entities.MemberID]entities.Box)}
	if layout.Empty || len(layout.Buckets) == 0 {
		out.Width, out.Height = emptyWidth, emptyHeight
		return out
	}

	if g.Narrow {
		return arrangeNarrow(layout, g, out)
	}

	widest := 0.0
	for _, b := range layout.Buckets {
		widest = max(widest, rowWidth(len(b.Members), g))
	}

	y := g.Margin
	for _, b := range layout.Buckets {
		x := g.Margin + (widest-rowWidth(len(b.Members), g))/2
		for _, m := range b.Members {
			out.Boxes[m.ID] = entities.Box{X: x, Y: y, W: g.CardWidth, H: g.CardHeight}
			x += g.CardWidth + g.ColumnGap
		}
		y += g.CardHeight + g.RowGap
	}

	out.Width = widest + 2*g.Margin
	out.Height = y - g.RowGap + g.Margin
	return out
}

func arrangeNarrow(layout services.Layout, g Geometry, out Arrangement) Arrangement {
	y := g.Margin
	for i, b := range layout.Buckets {
		if i > 0 {
			y += g.RowGap - g.ColumnGap
		}
		for _, m := range b.Members {
			out.Boxes[m.ID] = entities.Box{X: g.Margin, Y: y, W: g.CardWidth, H: g.CardHeight}
			y += g.CardHeight + g.ColumnGap
		}
	}
	out.Width = g.CardWidth + 2*g.Margin
	out.Height = y - g.ColumnGap + g.Margin
	return out
}

func rowWidth(n int, g Geometry) float64 {
	if n == 0 {
		return 0
	}
	return float64(n)*g.CardWidth + float64(n-1)*g.ColumnGap
}
