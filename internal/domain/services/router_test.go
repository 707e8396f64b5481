package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ersonp/lineage/internal/domain/entities"
)

func pt(x, y float64) entities.Point {
	return entities.Point{X: x, Y: y}
}

func TestRouter_Spouse(t *testing.T) {
	r := NewRouter(0)
	from := &entities.Box{X: 0, Y: 0, W: 100, H: 50}
	to := &entities.Box{X: 300, Y: 0, W: 100, H: 50}
	rel := &entities.Relationship{ID: "s", Members: [2]entities.MemberID{1, 2}, Link: entities.LinkSpouse}

	route, ok := r.Route(rel, from, to, 1024)
	require.True(t, ok)

	assert.Equal(t, entities.PathCurve, route.Path.Kind)
	assert.Equal(t, pt(100, 25), route.Path.Start)
	assert.Equal(t, pt(130, 25), route.Path.C1)
	assert.Equal(t, pt(270, 25), route.Path.C2)
	assert.Equal(t, pt(300, 25), route.Path.End)
	assert.Equal(t, pt(200, 25), route.Anchor)
	assert.Equal(t, "M 100 25 C 130 25, 270 25, 300 25", route.Path.SVG())
}

func TestRouter_PartnerNarrow(t *testing.T) {
	r := NewRouter(768)
	from := &entities.Box{X: 0, Y: 0, W: 100, H: 50}
	to := &entities.Box{X: 0, Y: 100, W: 100, H: 50}
	rel := &entities.Relationship{Link: entities.LinkPartner}

	route, ok := r.Route(rel, from, to, 768)
	require.True(t, ok)

	assert.Equal(t, entities.PathLine, route.Path.Kind)
	assert.Equal(t, pt(50, 50), route.Path.Start)
	assert.Equal(t, pt(50, 100), route.Path.End)
	assert.Equal(t, "M 50 50 L 50 100", route.Path.SVG())
}

func TestRouter_Parent(t *testing.T) {
	r := NewRouter(0)
	parent := &entities.Box{X: 0, Y: 0, W: 100, H: 50}
	child := &entities.Box{X: 200, Y: 150, W: 100, H: 50}
	rel := &entities.Relationship{Link: entities.LinkParent}

	route, ok := r.Route(rel, parent, child, 1024)
	require.True(t, ok)

	assert.Equal(t, pt(50, 50), route.Path.Start)
	assert.Equal(t, pt(50, 100), route.Path.C1)
	assert.Equal(t, pt(250, 100), route.Path.C2)
	assert.Equal(t, pt(250, 150), route.Path.End)
	assert.Equal(t, pt(150, 100), route.Anchor)
}

func TestRouter_Sibling(t *testing.T) {
	r := NewRouter(0)
	a := &entities.Box{X: 0, Y: 100, W: 100, H: 50}
	b := &entities.Box{X: 200, Y: 100, W: 100, H: 50}
	rel := &entities.Relationship{Link: entities.LinkSibling}

	route, ok := r.Route(rel, a, b, 1024)
	require.True(t, ok)

	assert.Equal(t, pt(50, 100), route.Path.Start)
	assert.Equal(t, pt(50, 60), route.Path.C1)
	assert.Equal(t, pt(250, 60), route.Path.C2)
	assert.Equal(t, pt(250, 100), route.Path.End)
	assert.Equal(t, pt(150, 70), route.Anchor)
}

func TestRouter_MissingBox(t *testing.T) {
	r := NewRouter(0)
	box := &entities.Box{W: 10, H: 10}
	rel := &entities.Relationship{Link: entities.LinkSpouse}

	_, ok := r.Route(rel, nil, box, 1024)
	assert.False(t, ok)
	_, ok = r.Route(rel, box, nil, 1024)
	assert.False(t, ok)
}

func TestRouter_RouteAll(t *testing.T) {
	r := NewRouter(0)
	rels := []entities.Relationship{
		{ID: "a", Members: [2]entities.MemberID{1, 2}, Link: entities.LinkSpouse},
		{ID: "b", Members: [2]entities.MemberID{1, 3}, Link: entities.LinkParent},
		{ID: "c", Members: [2]entities.MemberID{2, 3}, Link: entities.LinkParent},
	}
	boxes := map[entities.MemberID]entities.Box{
		1: {X: 0, Y: 0, W: 100, H: 50},
		2: {X: 200, Y: 0, W: 100, H: 50},
	}

	routed := r.RouteAll(rels, boxes, 1024)
	require.Len(t, routed, 1)
	assert.Equal(t, "a", routed[0].Relationship.ID)
}

func TestRouter_IsNarrow(t *testing.T) {
	r := NewRouter(0)
	assert.True(t, r.IsNarrow(768))
	assert.True(t, r.IsNarrow(320))
	assert.False(t, r.IsNarrow(769))
	assert.False(t, (&Router{}).IsNarrow(1024))
}
