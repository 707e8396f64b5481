package render

import (
	"strings"

	"github.com/ersonp/lineage/internal/domain/entities"
)

// Card and canvas colors.
const (
	colorBackground = "#f7fafc"
	colorCard       = "#ffffff"
	colorCardBorder = "#cbd5e0"
	colorName       = "#1a202c"
	colorDetail     = "#4a5568"
	colorAvatar     = "#2b6cb0"
	colorNote       = "#2d3748"
	colorNoteFill   = "#fefcbf"
	colorEmpty      = "#718096"
)

// EmptyMessage is drawn when there is nothing to show.
const EmptyMessage = "No family members to display."

const defaultTagColor = "#4299e1"

var tagColors = map[string]string{
	"Military":     "#ed8936",
	"Artist":       "#9f7aea",
	"Entrepreneur": "#38b2ac",
	"Education":    "#48bb78",
	"Healthcare":   "#f56565",
	"Craftsman":    "#8b4513",
	"Tech":         "#3182ce",
}

// TagColor returns the badge color of tag.
func TagColor(tag string) string {
	if c, ok := tagColors[tag]; ok {
		return c
	}
	return defaultTagColor
}

// linkStyle describes how a connection of a given kind is stroked.
type linkStyle struct {
	Color string
	Width float64
	Dash  []float64
}

var linkStyles = map[entities.LinkKind]linkStyle{
	entities.LinkParent:  {Color: "#4a5568", Width: 2},
	entities.LinkSpouse:  {Color: "#e53e3e", Width: 2.5},
	entities.LinkPartner: {Color: "#d69e2e", Width: 2.5, Dash: []float64{6, 4}},
	entities.LinkSibling: {Color: "#38a169", Width: 2, Dash: []float64{3, 3}},
}

func styleFor(link entities.LinkKind) linkStyle {
	if s, ok := linkStyles[link]; ok {
		return s
	}
	return linkStyles[entities.LinkParent]
}

// lifespan formats the birth and death dates shown on a card.
func lifespan(m *entities.Member) string {
	birth := strings.TrimSpace(m.BirthDate)
	if birth == "" {
		birth = "N/A"
	}
	if m.IsDeceased() {
		return birth + " - " + strings.TrimSpace(m.DeathDate)
	}
	return birth
}

// maxCardTags limits how many tag badges fit on a card.
const maxCardTags = 3

func cardTags(m *entities.Member) []string {
	if len(m.Tags) > maxCardTags {
		return m.Tags[:maxCardTags]
	}
	return m.Tags
}
