package render

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ersonp/lineage/internal/domain/entities"
	"github.com/ersonp/lineage/internal/domain/services"
)

func testGeometry() Geometry {
	return Geometry{CardWidth: 100, CardHeight: 50, ColumnGap: 20, RowGap: 40, Margin: 10}
}

func TestArrange(t *testing.T) {
	layout := services.Plan([]entities.Member{
		{ID: 1, Generation: 0},
		{ID: 2, Generation: 0},
		{ID: 3, Generation: 1},
	})

	a := Arrange(layout, testGeometry())

	require.Len(t, a.Boxes, 3)
	assert.Equal(t, entities.Box{X: 10, Y: 10, W: 100, H: 50}, a.Boxes[1])
	assert.Equal(t, entities.Box{X: 130, Y: 10, W: 100, H: 50}, a.Boxes[2])
	// Single card row is centered under the wider row.
	assert.Equal(t, entities.Box{X: 70, Y: 100, W: 100, H: 50}, a.Boxes[3])
	assert.Equal(t, 240.0, a.Width)
	assert.Equal(t, 160.0, a.Height)
}

func TestArrange_Narrow(t *testing.T) {
	layout := services.Plan([]entities.Member{
		{ID: 1, Generation: 0},
		{ID: 2, Generation: 0},
		{ID: 3, Generation: 1},
	})
	g := testGeometry()
	g.Narrow = true

	a := Arrange(layout, g)

	assert.Equal(t, 10.0, a.Boxes[1].Y)
	assert.Equal(t, 80.0, a.Boxes[2].Y)
	assert.Equal(t, 170.0, a.Boxes[3].Y)
	for _, b := range a.Boxes {
		assert.Equal(t, 10.0, b.X)
	}
	assert.Equal(t, 120.0, a.Width)
	assert.Equal(t, 230.0, a.Height)
}

func TestArrange_Empty(t *testing.T) {
	a := Arrange(services.Plan(nil), testGeometry())
	assert.Empty(t, a.Boxes)
	assert.Equal(t, float64(emptyWidth), a.Width)
	assert.Equal(t, float64(emptyHeight), a.Height)
}

func TestArrange_BoxesDoNotOverlap(t *testing.T) {
	doc := entities.SampleFamily()
	a := Arrange(services.Plan(doc.Members), DefaultGeometry())
	require.Len(t, a.Boxes, len(doc.Members))

	boxes := make([]entities.Box, 0, len(a.Boxes))
	for _, b := range a.Boxes {
		boxes = append(boxes, b)
		assert.LessOrEqual(t, b.Right(), a.Width)
		assert.LessOrEqual(t, b.Bottom(), a.Height)
	}
	for i := range boxes {
		for j := i + 1; j < len(boxes); j++ {
			a, b := boxes[i], boxes[j]
			overlap := a.Left() < b.Right() && b.Left() < a.Right() && a.Top() < b.Bottom() && b.Top() < a.Bottom()
			assert.False(t, overlap, "boxes %v and %v overlap", a, b)
		}
	}
}
