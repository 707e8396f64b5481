package render

import (
	"fmt"
	"io"
	"math"
	"strings"

	svg "github.com/ajstarks/svgo"

	"github.com/ersonp/lineage/internal/domain/entities"
	"github.com/ersonp/lineage/internal/domain/ports"
)

const svgFont = "font-family:sans-serif"

// writeSVG writes scene as a standalone SVG document. Connection paths use
// the routed geometry unchanged.
func writeSVG(w io.Writer, scene *ports.Scene) {
	width, height := canvasSize(scene)
	canvas := svg.New(w)
	canvas.Start(width, height)
	canvas.Title("Family tree")
	canvas.Rect(0, 0, width, height, "fill:"+colorBackground)

	if len(scene.Members) == 0 {
		canvas.Text(width/2, height/2, EmptyMessage,
			svgFont+";font-size:14px;text-anchor:middle;fill:"+colorEmpty)
		canvas.End()
		return
	}

	canvas.Gid("connections")
	for _, c := range scene.Connections {
		s := styleFor(c.Relationship.Link)
		style := fmt.Sprintf("fill:none;stroke:%s;stroke-width:%g", s.Color, s.Width)
		if len(s.Dash) > 0 {
			style += ";stroke-dasharray:" + joinFloats(s.Dash)
		}
		canvas.Path(c.Route.Path.SVG(), style, `class="`+string(c.Relationship.Link)+`"`)
	}
	canvas.Gend()

	canvas.Gid("members")
	for i := range scene.Members {
		m := &scene.Members[i]
		if box, ok := scene.Boxes[m.ID]; ok {
			svgCard(canvas, m, box)
		}
	}
	canvas.Gend()

	if scene.ShowNotes {
		canvas.Gid("notes")
		for _, c := range scene.Connections {
			note := strings.TrimSpace(c.Relationship.Note)
			if note == "" {
				continue
			}
			x, y := px(c.Route.Anchor.X), px(c.Route.Anchor.Y)
			w := len([]rune(note))*6 + 12
			canvas.Roundrect(x-w/2, y-9, w, 18, 4, 4, "fill:"+colorNoteFill)
			canvas.Text(x, y+4, note, svgFont+";font-size:10px;text-anchor:middle;fill:"+colorNote)
		}
		canvas.Gend()
	}

	canvas.End()
}

func svgCard(canvas *svg.SVG, m *entities.Member, b entities.Box) {
	x, y, w, h := px(b.X), px(b.Y), px(b.W), px(b.H)
	canvas.Roundrect(x, y, w, h, cardRadius, cardRadius,
		"fill:"+colorCard+";stroke:"+colorCardBorder, fmt.Sprintf(`data-id="%d"`, m.ID))

	cx, cy := x+cardPadding+avatarRadius, y+cardPadding+avatarRadius
	canvas.Circle(cx, cy, avatarRadius, "fill:"+colorAvatar)
	canvas.Text(cx, cy+4, m.Initials(), svgFont+";font-size:11px;text-anchor:middle;fill:#ffffff")

	textX := cx + avatarRadius + 10
	canvas.Text(textX, y+cardPadding+12, m.Name, svgFont+";font-size:14px;font-weight:bold;fill:"+colorName)
	canvas.Text(textX, y+cardPadding+28, m.Relationship, svgFont+";font-size:11px;fill:"+colorDetail)
	canvas.Text(textX, y+cardPadding+44, lifespan(m), svgFont+";font-size:11px;fill:"+colorDetail)

	tx := x + cardPadding
	ty := y + h - cardPadding - tagHeight + 4
	for _, tag := range cardTags(m) {
		tw := len([]rune(tag))*5 + 10
		if tx+tw > x+w-cardPadding {
			break
		}
		canvas.Roundrect(tx, ty, tw, tagHeight, tagHeight/2, tagHeight/2, "fill:"+TagColor(tag))
		canvas.Text(tx+tw/2, ty+12, tag, svgFont+";font-size:9px;text-anchor:middle;fill:#ffffff")
		tx += tw + 6
	}
}

func px(f float64) int {
	return int(math.Round(f))
}

func joinFloats(fs []float64) string {
	parts := make([]string, len(fs))
	for i, f := range fs {
		parts[i] = fmt.Sprintf("%g", f)
	}
	return strings.Join(parts, ",")
}
