package render

import (
	"image/color"
	"strings"

	"github.com/fogleman/gg"

	"github.com/ersonp/lineage/internal/domain/entities"
	"github.com/ersonp/lineage/internal/domain/ports"
)

const (
	cardRadius   = 8
	cardPadding  = 12
	avatarRadius = 18
	tagHeight    = 16
)

// draw paints scene onto a new raster context: connections first, then
// cards, then notes on top.
func (r *Renderer) draw(scene *ports.Scene) *gg.Context {
	width, height := canvasSize(scene)
	f := r.newFaces()

	dc := gg.NewContext(width, height)
	dc.SetHexColor(colorBackground)
	dc.Clear()

	if len(scene.Members) == 0 {
		dc.SetFontFace(f.detail)
		dc.SetHexColor(colorEmpty)
		dc.DrawStringAnchored(EmptyMessage, float64(width)/2, float64(height)/2, 0.5, 0.5)
		return dc
	}

	for _, c := range scene.Connections {
		drawConnection(dc, c)
	}

	for i := range scene.Members {
		m := &scene.Members[i]
		box, ok := scene.Boxes[m.ID]
		if !ok {
			continue
		}
		drawCard(dc, f, m, box)
	}

	if scene.ShowNotes {
		dc.SetFontFace(f.tag)
		for _, c := range scene.Connections {
			if note := strings.TrimSpace(c.Relationship.Note); note != "" {
				drawNote(dc, note, c.Route.Anchor)
			}
		}
	}

	return dc
}

func drawConnection(dc *gg.Context, c entities.RoutedConnection) {
	s := styleFor(c.Relationship.Link)
	p := c.Route.Path

	dc.SetHexColor(s.Color)
	dc.SetLineWidth(s.Width)
	dc.SetDash(s.Dash...)
	dc.MoveTo(p.Start.X, p.Start.Y)
	if p.Kind == entities.PathLine {
		dc.LineTo(p.End.X, p.End.Y)
	} else {
		dc.CubicTo(p.C1.X, p.C1.Y, p.C2.X, p.C2.Y, p.End.X, p.End.Y)
	}
	dc.Stroke()
	dc.SetDash()
}

func drawCard(dc *gg.Context, f faces, m *entities.Member, b entities.Box) {
	dc.DrawRoundedRectangle(b.X, b.Y, b.W, b.H, cardRadius)
	dc.SetHexColor(colorCard)
	dc.FillPreserve()
	dc.SetHexColor(colorCardBorder)
	dc.SetLineWidth(1)
	dc.Stroke()

	cx := b.X + cardPadding + avatarRadius
	cy := b.Y + cardPadding + avatarRadius
	dc.DrawCircle(cx, cy, avatarRadius)
	dc.SetHexColor(colorAvatar)
	dc.Fill()
	dc.SetFontFace(f.detail)
	dc.SetColor(color.White)
	dc.DrawStringAnchored(m.Initials(), cx, cy, 0.5, 0.35)

	textX := cx + avatarRadius + 10
	maxText := b.X + b.W - cardPadding - textX

	dc.SetFontFace(f.name)
	dc.SetHexColor(colorName)
	dc.DrawString(fit(dc, m.Name, maxText), textX, b.Y+cardPadding+12)

	dc.SetFontFace(f.detail)
	dc.SetHexColor(colorDetail)
	dc.DrawString(fit(dc, m.Relationship, maxText), textX, b.Y+cardPadding+28)
	dc.DrawString(fit(dc, lifespan(m), maxText), textX, b.Y+cardPadding+44)

	dc.SetFontFace(f.tag)
	x := b.X + cardPadding
	y := b.Y + b.H - cardPadding - tagHeight + 4
	for _, tag := range cardTags(m) {
		tw, _ := dc.MeasureString(tag)
		if x+tw+10 > b.X+b.W-cardPadding {
			break
		}
		dc.DrawRoundedRectangle(x, y, tw+10, tagHeight, tagHeight/2)
		dc.SetHexColor(TagColor(tag))
		dc.Fill()
		dc.SetColor(color.White)
		dc.DrawStringAnchored(tag, x+5+tw/2, y+tagHeight/2, 0.5, 0.35)
		x += tw + 16
	}
}

func drawNote(dc *gg.Context, note string, at entities.Point) {
	tw, th := dc.MeasureString(note)
	w, h := tw+12, th+8
	dc.DrawRoundedRectangle(at.X-w/2, at.Y-h/2, w, h, 4)
	dc.SetHexColor(colorNoteFill)
	dc.Fill()
	dc.SetHexColor(colorNote)
	dc.DrawStringAnchored(note, at.X, at.Y, 0.5, 0.35)
}

// fit shortens s with an ellipsis until it is at most width wide.
func fit(dc *gg.Context, s string, width float64) string {
	if w, _ := dc.MeasureString(s); w <= width {
		return s
	}
	runes := []rune(s)
	for len(runes) > 0 {
		runes = runes[:len(runes)-1]
		candidate := string(runes) + "…"
		if w, _ := dc.MeasureString(candidate); w <= width {
			return candidate
		}
	}
	return ""
}
