package entities

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseLinkKind(t *testing.T) {
	tests := []struct {
		input    string
		expected LinkKind
		ok       bool
	}{
		{input: "Parent", expected: LinkParent, ok: true},
		{input: "parent-child", expected: LinkParent, ok: true},
		{input: "Parent-Child", expected: LinkParent, ok: true},
		{input: "SPOUSE", expected: LinkSpouse, ok: true},
		{input: " partner ", expected: LinkPartner, ok: true},
		{input: "sibling", expected: LinkSibling, ok: true},
		{input: "cousin", ok: false},
		{input: "", ok: false},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			kind, ok := ParseLinkKind(tt.input)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.expected, kind)
		})
	}
}

func TestRelationship_InvolvesAndOther(t *testing.T) {
	rel := Relationship{Members: [2]MemberID{1, 3}, Link: LinkParent}

	assert.True(t, rel.Involves(1))
	assert.True(t, rel.Involves(3))
	assert.False(t, rel.Involves(2))
	assert.Equal(t, MemberID(3), rel.Other(1))
	assert.Equal(t, MemberID(1), rel.Other(3))
}

func TestSampleFamily_IsConsistent(t *testing.T) {
	doc := SampleFamily()

	gens := make(map[MemberID]int, len(doc.Members))
	for _, m := range doc.Members {
		_, dup := gens[m.ID]
		assert.False(t, dup, "duplicate member id %d", m.ID)
		gens[m.ID] = m.Generation
	}

	ids := make(map[string]bool, len(doc.Connections))
	for _, c := range doc.Connections {
		assert.False(t, ids[c.ID], "duplicate connection id %s", c.ID)
		ids[c.ID] = true

		a, okA := gens[c.Members[0]]
		b, okB := gens[c.Members[1]]
		assert.True(t, okA && okB, "connection %s has a missing endpoint", c.ID)
		if c.Link == LinkParent {
			assert.Less(t, a, b, "parent link %s must point down a generation", c.ID)
		}
	}
}
