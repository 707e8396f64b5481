package handlers

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ersonp/lineage/internal/domain/entities"
	"github.com/ersonp/lineage/internal/domain/services"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestImportHandler_Handle_JSONFile(t *testing.T) {
	family, _ := newSeededFamily(t)
	handler := NewImportHandler(services.NewImportService(family))

	path := writeFile(t, "tree.json", `{
		"members": [
			{"id": 1, "name": "Ann", "generation": 0},
			{"id": 2, "name": "Bob", "generation": 1}
		],
		"connections": [
			{"id": "c1", "members": [1, 2], "type": "Parent-Child", "annotation": "first"}
		]
	}`)

	result, err := handler.Handle(t.Context(), path, ImportOptions{})
	require.NoError(t, err)
	assert.Equal(t, 2, result.Members)
	assert.Equal(t, 1, result.Relationships)

	assert.Len(t, family.Members(), 2)
	rel, err := family.Relationship("c1")
	require.NoError(t, err)
	assert.Equal(t, entities.LinkParent, rel.Link)
	assert.Equal(t, "first", rel.Note)
}

func TestImportHandler_Handle_YAMLFile(t *testing.T) {
	family, _ := newSeededFamily(t)
	handler := NewImportHandler(services.NewImportService(family))

	path := writeFile(t, "tree.yaml", "members:\n  - id: 1\n    name: Ann\n    generation: 0\nconnections: []\n")

	result, err := handler.Handle(t.Context(), path, ImportOptions{})
	require.NoError(t, err)
	assert.Equal(t, 1, result.Members)
	assert.Len(t, family.Members(), 1)
}

func TestImportHandler_Handle_CSVRoster(t *testing.T) {
	family, _ := newSeededFamily(t)
	handler := NewImportHandler(services.NewImportService(family))

	path := writeFile(t, "roster.csv", "name,generation,side\nZoe,4,ego\nYuri,4,sideways\n")

	result, err := handler.Handle(t.Context(), path, ImportOptions{})
	require.NoError(t, err)
	assert.Equal(t, 1, result.Members)
	assert.Equal(t, 1, result.Skipped)
	assert.Len(t, family.Members(), 13)
}

func TestImportHandler_Handle_MissingArray(t *testing.T) {
	family, _ := newSeededFamily(t)
	handler := NewImportHandler(services.NewImportService(family))

	path := writeFile(t, "tree.json", `{"members": []}`)

	_, err := handler.Handle(t.Context(), path, ImportOptions{})
	assert.ErrorIs(t, err, entities.ErrImportFormat)
	assert.Len(t, family.Members(), 12)
}

func TestImportHandler_Handle_DryRun(t *testing.T) {
	family, _ := newSeededFamily(t)
	handler := NewImportHandler(services.NewImportService(family))

	path := writeFile(t, "tree.json", `{"members": [{"id": 1, "name": "Ann"}], "connections": []}`)

	result, err := handler.Handle(t.Context(), path, ImportOptions{DryRun: true})
	require.NoError(t, err)
	assert.Equal(t, 1, result.Members)
	assert.Len(t, family.Members(), 12)
}

func TestImportHandler_Handle_Errors(t *testing.T) {
	handler := NewImportHandler(services.NewImportService(newEmptyFamily(t)))

	_, err := handler.Handle(t.Context(), writeFile(t, "tree.txt", "x"), ImportOptions{})
	assert.Error(t, err)

	_, err = handler.Handle(t.Context(), filepath.Join(t.TempDir(), "none.json"), ImportOptions{})
	assert.Error(t, err)

	_, err = handler.Handle(t.Context(), writeFile(t, "tree.json", "{bad"), ImportOptions{})
	assert.Error(t, err)

	// Explicit format overrides the extension.
	result, err := handler.Handle(t.Context(), writeFile(t, "tree.txt", "name\nAnn\n"), ImportOptions{Format: "csv"})
	require.NoError(t, err)
	assert.Equal(t, 1, result.Members)
}
