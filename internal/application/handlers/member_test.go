package handlers

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ersonp/lineage/internal/domain/entities"
)

func TestParseMemberForm(t *testing.T) {
	tests := []struct {
		name    string
		form    map[string]string
		check   func(t *testing.T, p entities.MemberPatch)
		wantErr string
	}{
		{
			name: "text fields",
			form: map[string]string{"name": "Ada", "birthDate": "1990-01-02", "description": ""},
			check: func(t *testing.T, p entities.MemberPatch) {
				require.NotNil(t, p.Name)
				assert.Equal(t, "Ada", *p.Name)
				assert.Equal(t, "1990-01-02", *p.BirthDate)
				require.NotNil(t, p.Description)
				assert.Empty(t, *p.Description)
				assert.Nil(t, p.Status)
			},
		},
		{
			name: "generation and side",
			form: map[string]string{"generation": " 2 ", "side": "Maternal"},
			check: func(t *testing.T, p entities.MemberPatch) {
				assert.Equal(t, 2, *p.Generation)
				assert.Equal(t, entities.SideMaternal, *p.Side)
			},
		},
		{
			name: "tags",
			form: map[string]string{"tags": "Music, Tech;; Music"},
			check: func(t *testing.T, p entities.MemberPatch) {
				assert.Equal(t, []string{"Music", "Tech"}, *p.Tags)
			},
		},
		{
			name:    "bad generation",
			form:    map[string]string{"generation": "two"},
			wantErr: "invalid generation",
		},
		{
			name:    "bad side",
			form:    map[string]string{"side": "left"},
			wantErr: "invalid side",
		},
		{
			name:    "unknown field",
			form:    map[string]string{"nickname": "Al"},
			wantErr: "unknown member field",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			patch, err := ParseMemberForm(tt.form)
			if tt.wantErr != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErr)
				return
			}
			require.NoError(t, err)
			tt.check(t, patch)
		})
	}
}

func TestSplitTags(t *testing.T) {
	assert.Equal(t, []string{"Tech", "Artist"}, SplitTags("Tech, Artist; Tech"))
	assert.Nil(t, SplitTags(""))
	assert.Nil(t, SplitTags(" ; , "))
}

func TestFormFields(t *testing.T) {
	fields := FormFields()
	assert.Len(t, fields, len(memberFormFields))
	assert.Contains(t, fields, "birthDate")
	assert.True(t, strings.Compare(fields[0], fields[1]) < 0)
}

func TestAvatarValue(t *testing.T) {
	t.Run("urls kept", func(t *testing.T) {
		for _, v := range []string{"", "data:image/png;base64,AAAA", "https://example.com/a.png"} {
			got, err := avatarValue(v)
			require.NoError(t, err)
			assert.Equal(t, v, got)
		}
	})

	t.Run("local image inlined", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "a.png")
		png := []byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR")
		require.NoError(t, os.WriteFile(path, png, 0600))

		got, err := avatarValue(path)
		require.NoError(t, err)
		assert.True(t, strings.HasPrefix(got, "data:image/png;base64,"))
	})

	t.Run("not an image", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "a.txt")
		require.NoError(t, os.WriteFile(path, []byte("hello"), 0600))

		_, err := avatarValue(path)
		assert.Error(t, err)
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := avatarValue(filepath.Join(t.TempDir(), "none.png"))
		assert.Error(t, err)
	})
}

func TestMemberHandler_HandleAdd_Defaults(t *testing.T) {
	handler := NewMemberHandler(newEmptyFamily(t))

	m, err := handler.HandleAdd(t.Context(), map[string]string{})
	require.NoError(t, err)

	assert.Equal(t, entities.DefaultMemberName, m.Name)
	assert.Equal(t, entities.DefaultMemberRole, m.Relationship)
	assert.Equal(t, entities.DefaultMemberGeneration, m.Generation)
	assert.Equal(t, entities.SideEgo, m.Side)
	assert.Positive(t, int64(m.ID))
}

func TestMemberHandler_HandleAdd_Fields(t *testing.T) {
	handler := NewMemberHandler(newEmptyFamily(t))

	m, err := handler.HandleAdd(t.Context(), map[string]string{
		"name":       "Grace Hopper",
		"generation": "0",
		"side":       "paternal",
		"tags":       "Tech",
	})
	require.NoError(t, err)

	assert.Equal(t, "Grace Hopper", m.Name)
	assert.Equal(t, 0, m.Generation)
	assert.Equal(t, entities.SidePaternal, m.Side)
	assert.Equal(t, []string{"Tech"}, m.Tags)
}

func TestMemberHandler_HandleUpdate(t *testing.T) {
	family, _ := newSeededFamily(t)
	handler := NewMemberHandler(family)

	m, err := handler.HandleUpdate(t.Context(), "Olivia Johnson", map[string]string{"occupation": "Pilot"})
	require.NoError(t, err)
	assert.Equal(t, "Pilot", m.Occupation)

	_, err = handler.HandleUpdate(t.Context(), "8", map[string]string{"generation": "2"})
	assert.ErrorIs(t, err, entities.ErrGenerationConflict)

	_, err = handler.HandleUpdate(t.Context(), "999", map[string]string{"name": "x"})
	assert.ErrorIs(t, err, entities.ErrMemberNotFound)
}

func TestMemberHandler_HandleDelete(t *testing.T) {
	family, _ := newSeededFamily(t)
	handler := NewMemberHandler(family)

	result, err := handler.HandleDelete(t.Context(), "5")
	require.NoError(t, err)

	assert.Equal(t, "Michael Johnson", result.Member.Name)
	assert.ElementsMatch(t, []string{"c3", "c6", "c7", "c8", "c15"}, result.RemovedRelationships)
	assert.Len(t, handler.HandleList(), 11)
}

func TestMemberHandler_ListSearchShow(t *testing.T) {
	family, _ := newSeededFamily(t)
	handler := NewMemberHandler(family)

	list := handler.HandleList()
	require.NotEmpty(t, list)
	assert.Equal(t, "Emma White", list[0].Name)

	found := handler.HandleSearch("johnson")
	assert.Len(t, found, 5)

	detail, err := handler.HandleShow("michael johnson")
	require.NoError(t, err)
	assert.Equal(t, entities.MemberID(5), detail.Member.ID)
	assert.Len(t, detail.Relationships, 5)
	for _, v := range detail.Relationships {
		assert.True(t, v.Relationship.Involves(5))
	}

	_, err = handler.Resolve("")
	assert.ErrorIs(t, err, entities.ErrMemberNotFound)
}
