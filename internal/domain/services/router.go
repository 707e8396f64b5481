package services

import (
	"github.com/ersonp/lineage/internal/domain/entities"
)

const (
	// DefaultNarrowWidth is the viewport width at or below which couples
	// are drawn with a straight vertical connector.
	DefaultNarrowWidth = 768

	coupleCurveOffset = 30
	siblingCurveLift  = 40
	siblingNoteLift   = 30
)

// Router computes connector geometry between rendered member boxes.
type Router struct {
	NarrowWidth float64
}

// NewRouter creates a Router. A non-positive narrowWidth selects
// DefaultNarrowWidth.
func NewRouter(narrowWidth float64) *Router {
	if narrowWidth <= 0 {
		narrowWidth = DefaultNarrowWidth
	}
	return &Router{NarrowWidth: narrowWidth}
}

// Route returns the path for rel between the boxes of its two endpoints.
// It reports false when either box is missing, which happens when an
// endpoint was not rendered; that is not an error.
func (r *Router) Route(rel *entities.Relationship, from, to *entities.Box, viewportWidth float64) (entities.Route, bool) {
	if from == nil || to == nil {
		return entities.Route{}, false
	}

	switch rel.Link {
	case entities.LinkSpouse, entities.LinkPartner:
		return r.routeCouple(from, to, viewportWidth), true
	case entities.LinkParent:
		return routeParent(from, to), true
	case entities.LinkSibling:
		return routeSibling(from, to), true
	default:
		return entities.Route{}, false
	}
}

func (r *Router) routeCouple(from, to *entities.Box, viewportWidth float64) entities.Route {
	var path entities.Path
	if r.IsNarrow(viewportWidth) {
		path = entities.Path{
			Kind:  entities.PathLine,
			Start: entities.Point{X: from.CenterX(), Y: from.Bottom()},
			End:   entities.Point{X: to.CenterX(), Y: to.Top()},
		}
	} else {
		y := from.CenterY()
		path = entities.Path{
			Kind:  entities.PathCurve,
			Start: entities.Point{X: from.Right(), Y: y},
			C1:    entities.Point{X: from.Right() + coupleCurveOffset, Y: y},
			C2:    entities.Point{X: to.Left() - coupleCurveOffset, Y: y},
			End:   entities.Point{X: to.Left(), Y: y},
		}
	}

	return entities.Route{
		Path: path,
		Anchor: entities.Point{
			X: (path.Start.X + path.End.X) / 2,
			Y: (path.Start.Y + to.CenterY()) / 2,
		},
	}
}

func routeParent(parent, child *entities.Box) entities.Route {
	start := entities.Point{X: parent.CenterX(), Y: parent.Bottom()}
	end := entities.Point{X: child.CenterX(), Y: child.Top()}
	ctrlY := start.Y + (end.Y-start.Y)/2

	return entities.Route{
		Path: entities.Path{
			Kind:  entities.PathCurve,
			Start: start,
			C1:    entities.Point{X: start.X, Y: ctrlY},
			C2:    entities.Point{X: end.X, Y: ctrlY},
			End:   end,
		},
		Anchor: entities.Point{X: (start.X + end.X) / 2, Y: ctrlY},
	}
}

// routeSibling arcs over both cards, starting and ending at the height of
// the first card's top edge.
func routeSibling(from, to *entities.Box) entities.Route {
	y := from.Top()
	start := entities.Point{X: from.CenterX(), Y: y}
	end := entities.Point{X: to.CenterX(), Y: y}

	return entities.Route{
		Path: entities.Path{
			Kind:  entities.PathCurve,
			Start: start,
			C1:    entities.Point{X: start.X, Y: y - siblingCurveLift},
			C2:    entities.Point{X: end.X, Y: y - siblingCurveLift},
			End:   end,
		},
		Anchor: entities.Point{X: (start.X + end.X) / 2, Y: y - siblingNoteLift},
	}
}

// RouteAll routes every relationship whose endpoints both have a box.
// Relationships with a missing box are skipped.
func (r *Router) RouteAll(
	relationships []entities.Relationship,
	boxes map[entities.MemberID]entities.Box,
	viewportWidth float64,
) []entities.RoutedConnection {
	routed := make([]entities.RoutedConnection, 0, len(relationships))
	for i := range relationships {
		rel := &relationships[i]
		route, ok := r.Route(rel, boxOf(boxes, rel.Members[0]), boxOf(boxes, rel.Members[1]), viewportWidth)
		if !ok {
			continue
		}
		routed = append(routed, entities.RoutedConnection{Relationship: *rel, Route: route})
	}
	return routed
}

// IsNarrow reports whether viewportWidth selects the narrow layout.
func (r *Router) IsNarrow(viewportWidth float64) bool {
	return viewportWidth <= r.narrowWidth()
}

func (r *Router) narrowWidth() float64 {
	if r.NarrowWidth <= 0 {
		return DefaultNarrowWidth
	}
	return r.NarrowWidth
}

func boxOf(boxes map[entities.MemberID]entities.Box, id entities.MemberID) *entities.Box {
	b, ok := boxes[id]
	if !ok {
		return nil
	}
	return &b
}
