package handlers

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/ersonp/lineage/internal/domain/entities"
	"github.com/ersonp/lineage/internal/domain/mocks"
	"github.com/ersonp/lineage/internal/domain/services"
)

// newSeededFamily returns a family service loaded with the sample family.
func newSeededFamily(t *testing.T) (*services.FamilyService, *mocks.DocumentStore) {
	t.Helper()
	store := mocks.NewDocumentStore()
	store.Docs[services.DefaultDocumentKey] = entities.SampleFamily()
	family := services.NewFamilyService(store, mocks.NewAuditLog(), nil, "")
	require.NoError(t, family.Load(t.Context()))
	return family, store
}

func newEmptyFamily(t *testing.T) *services.FamilyService {
	t.Helper()
	family := services.NewFamilyService(mocks.NewDocumentStore(), mocks.NewAuditLog(), nil, "")
	require.NoError(t, family.Load(t.Context()))
	return family
}
