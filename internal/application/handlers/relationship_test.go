package handlers

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ersonp/lineage/internal/domain/entities"
)

func TestRelationshipHandler_HandleCreate(t *testing.T) {
	tests := []struct {
		name    string
		in      CreateInput
		wantErr error
		check   func(t *testing.T, v *RelationshipView)
	}{
		{
			name: "parent given child first is reordered",
			in:   CreateInput{From: "Leo Johnson", To: "4", Link: "parent-child", FromRole: "Grandson", ToRole: "Guardian"},
			check: func(t *testing.T, v *RelationshipView) {
				assert.Equal(t, entities.LinkParent, v.Relationship.Link)
				assert.Equal(t, "Patricia Smith", v.From.Name)
				assert.Equal(t, "Leo Johnson", v.To.Name)
				assert.Equal(t, "Guardian", v.From.Relationship)
				assert.Equal(t, "Grandson", v.To.Relationship)
				assert.Equal(t, entities.DefaultRelationshipType, v.Relationship.Type)
			},
		},
		{
			name: "partner with status and note",
			in:   CreateInput{From: "7", To: "George White", Link: "Partner", Status: "Engaged", Note: "Pen pals"},
			check: func(t *testing.T, v *RelationshipView) {
				assert.Equal(t, entities.LinkPartner, v.Relationship.Link)
				assert.Equal(t, "Engaged", v.Relationship.Status)
				assert.Equal(t, "Pen pals", v.Relationship.Note)
				assert.Equal(t, "Daughter", v.From.Relationship)
			},
		},
		{
			name:    "same generation parent",
			in:      CreateInput{From: "7", To: "8", Link: "Parent", FromRole: "Mother"},
			wantErr: entities.ErrSameGeneration,
		},
		{
			name:    "self link",
			in:      CreateInput{From: "7", To: "Olivia Johnson", Link: "Sibling"},
			wantErr: entities.ErrSelfLink,
		},
		{
			name:    "unknown link",
			in:      CreateInput{From: "7", To: "8", Link: "Cousin"},
			wantErr: entities.ErrInvalidLink,
		},
		{
			name:    "unknown member",
			in:      CreateInput{From: "7", To: "Nobody", Link: "Sibling"},
			wantErr: entities.ErrMemberNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			family, _ := newSeededFamily(t)
			handler := NewRelationshipHandler(family)

			v, err := handler.HandleCreate(t.Context(), tt.in)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Len(t, family.Relationships(), 18)
				olivia, _ := family.Member(7)
				assert.Equal(t, "Daughter", olivia.Relationship)
				return
			}
			require.NoError(t, err)
			assert.Len(t, family.Relationships(), 19)
			tt.check(t, v)
		})
	}
}

func TestRelationshipHandler_HandleUpdate(t *testing.T) {
	family, _ := newSeededFamily(t)
	handler := NewRelationshipHandler(family)

	status := "Divorced"
	note := ""
	v, err := handler.HandleUpdate(t.Context(), "c3", UpdateInput{Status: &status, Note: &note, ToRole: "Ex-Wife"})
	require.NoError(t, err)

	assert.Equal(t, "Divorced", v.Relationship.Status)
	assert.Empty(t, v.Relationship.Note)
	assert.Equal(t, "Ex-Wife", v.To.Relationship)
	assert.Equal(t, "Father", v.From.Relationship)

	bad := "Friend"
	_, err = handler.HandleUpdate(t.Context(), "c3", UpdateInput{Link: &bad})
	assert.ErrorIs(t, err, entities.ErrInvalidLink)

	_, err = handler.HandleUpdate(t.Context(), "nope", UpdateInput{Status: &status})
	assert.ErrorIs(t, err, entities.ErrRelationshipNotFound)
}

func TestRelationshipHandler_HandleList(t *testing.T) {
	family, _ := newSeededFamily(t)
	handler := NewRelationshipHandler(family)

	all := handler.HandleList("")
	require.Len(t, all, 18)
	assert.Equal(t, "c1", all[0].Relationship.ID)

	white := handler.HandleList("  WHITE ")
	ids := make([]string, len(white))
	for i, v := range white {
		ids[i] = v.Relationship.ID
	}
	assert.ElementsMatch(t, []string{"c10", "c12", "c3", "c11", "c18", "c13", "c14", "c9", "c16"}, ids)

	assert.Empty(t, handler.HandleList("zzz"))

	require.NoError(t, handler.HandleDelete(t.Context(), "c1"))
	assert.Len(t, handler.HandleList(""), 17)
}

func TestRelationshipView_Label(t *testing.T) {
	v := RelationshipView{
		Relationship: entities.Relationship{Link: entities.LinkSpouse, Type: "Biological", Status: "Married"},
		From:         entities.Member{Name: "A"},
		To:           entities.Member{Name: "B"},
	}
	assert.Equal(t, "A <-> B  Spouse (Biological) 'Married'", v.Label())
}
