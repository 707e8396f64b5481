package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ersonp/lineage/internal/domain/entities"
)

func memberIDs(members []entities.Member) []entities.MemberID {
	ids := make([]entities.MemberID, len(members))
	for i := range members {
		ids[i] = members[i].ID
	}
	return ids
}

func TestPlan(t *testing.T) {
	members := []entities.Member{
		{ID: 1, Name: "A", Generation: 0},
		{ID: 2, Name: "B", Generation: 1},
		{ID: 3, Name: "C", Generation: 0},
	}

	layout := Plan(members)

	assert.False(t, layout.Empty)
	require.Len(t, layout.Buckets, 2)
	assert.Equal(t, []int{0, 1}, layout.Generations())
	assert.Equal(t, []entities.MemberID{1, 3}, memberIDs(layout.Buckets[0].Members))
	assert.Equal(t, []entities.MemberID{2}, memberIDs(layout.Buckets[1].Members))
}

func TestPlan_Empty(t *testing.T) {
	layout := Plan(nil)
	assert.True(t, layout.Empty)
	assert.Empty(t, layout.Buckets)
}

func TestPlan_SparseAndNegativeGenerations(t *testing.T) {
	members := []entities.Member{
		{ID: 1, Generation: 7},
		{ID: 2, Generation: -1},
		{ID: 3, Generation: 3},
		{ID: 4, Generation: 7},
	}

	layout := Plan(members)
	assert.Equal(t, []int{-1, 3, 7}, layout.Generations())

	bucket, ok := layout.Bucket(7)
	require.True(t, ok)
	assert.Equal(t, []entities.MemberID{1, 4}, memberIDs(bucket.Members))

	_, ok = layout.Bucket(5)
	assert.False(t, ok)
}

func TestPlan_WithComparator(t *testing.T) {
	members := []entities.Member{
		{ID: 1, Name: "zoe", Generation: 1},
		{ID: 2, Name: "Adam", Generation: 1},
		{ID: 3, Name: "adam", Generation: 1},
		{ID: 4, Name: "Mia", Generation: 0},
	}

	layout := Plan(members, WithComparator(ByName))

	require.Len(t, layout.Buckets, 2)
	assert.Equal(t, []entities.MemberID{4}, memberIDs(layout.Buckets[0].Members))
	assert.Equal(t, []entities.MemberID{2, 3, 1}, memberIDs(layout.Buckets[1].Members))

	// Input order is untouched.
	assert.Equal(t, entities.MemberID(1), members[0].ID)
}

func TestPlan_SampleFamily(t *testing.T) {
	doc := entities.SampleFamily()
	layout := Plan(doc.Members)

	assert.Equal(t, []int{0, 1, 2, 3}, layout.Generations())
	total := 0
	for _, b := range layout.Buckets {
		total += len(b.Members)
		for _, m := range b.Members {
			assert.Equal(t, b.Generation, m.Generation)
		}
	}
	assert.Equal(t, len(doc.Members), total)
}

func TestSortedByName(t *testing.T) {
	doc := entities.SampleFamily()
	sorted := SortedByName(doc.Members)

	require.Len(t, sorted, len(doc.Members))
	assert.Equal(t, "Emma White", sorted[0].Name)
	assert.Equal(t, "Susan Clark", sorted[len(sorted)-1].Name)
	assert.Equal(t, "Robert Johnson", doc.Members[0].Name)
}
