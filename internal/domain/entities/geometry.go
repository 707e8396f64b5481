package entities

import (
	"fmt"
	"strconv"
)

// Point is a position in the shared drawing coordinate space.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Box is an axis-aligned rectangle of a rendered member card.
type Box struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	W float64 `json:"w"`
	H float64 `json:"h"`
}

func (b Box) Left() float64   { return b.X }
func (b Box) Right() float64  { return b.X + b.W }
func (b Box) Top() float64    { return b.Y }
func (b Box) Bottom() float64 { return b.Y + b.H }

// CenterX returns the horizontal center.
func (b Box) CenterX() float64 { return b.X + b.W/2 }

// CenterY returns the vertical center.
func (b Box) CenterY() float64 { return b.Y + b.H/2 }

// Center returns the center point.
func (b Box) Center() Point { return Point{X: b.CenterX(), Y: b.CenterY()} }

// PathKind distinguishes cubic curves from straight segments.
type PathKind string

const (
	PathCurve PathKind = "curve"
	PathLine  PathKind = "line"
)

// Path is the geometry of a routed connection. C1 and C2 are only
// meaningful for curves.
type Path struct {
	Kind  PathKind `json:"kind"`
	Start Point    `json:"start"`
	C1    Point    `json:"c1,omitempty"`
	C2    Point    `json:"c2,omitempty"`
	End   Point    `json:"end"`
}

// SVG returns the path in SVG "d" attribute syntax.
func (p Path) SVG() string {
	if p.Kind == PathLine {
		return fmt.Sprintf("M %s L %s", p.Start, p.End)
	}
	return fmt.Sprintf("M %s C %s, %s, %s", p.Start, p.C1, p.C2, p.End)
}

// String formats the point as "x y".
func (p Point) String() string {
	return strconv.FormatFloat(p.X, 'f', -1, 64) + " " + strconv.FormatFloat(p.Y, 'f', -1, 64)
}

// Route is a path plus the anchor where the connection's note is placed.
type Route struct {
	Path   Path  `json:"path"`
	Anchor Point `json:"anchor"`
}

// RoutedConnection pairs a relationship with its computed route.
type RoutedConnection struct {
	Relationship Relationship `json:"relationship"`
	Route        Route        `json:"route"`
}
