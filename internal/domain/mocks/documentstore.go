package mocks

import (
	"context"

	"github.com/ersonp/lineage/internal/domain/entities"
)

// DocumentStore is a mock implementation of ports.DocumentStore.
type DocumentStore struct {
	Docs      map[string]entities.Document
	LoadErr   error
	SaveErr   error
	SaveCalls int
}

// NewDocumentStore creates a new mock DocumentStore.
func NewDocumentStore() *DocumentStore {
	return &DocumentStore{
		Docs: make(map[string]entities.Document),
	}
}

// LoadDocument returns a copy of the stored document or nil.
func (m *DocumentStore) LoadDocument(_ context.Context, key string) (*entities.Document, error) {
	if m.LoadErr != nil {
		return nil, m.LoadErr
	}
	doc, ok := m.Docs[key]
	if !ok {
		return nil, nil
	}
	c := doc.Clone()
	return &c, nil
}

// SaveDocument stores a copy of doc.
func (m *DocumentStore) SaveDocument(_ context.Context, key string, doc *entities.Document) error {
	m.SaveCalls++
	if m.SaveErr != nil {
		return m.SaveErr
	}
	m.Docs[key] = doc.Clone()
	return nil
}

// DeleteDocument removes the stored document.
func (m *DocumentStore) DeleteDocument(_ context.Context, key string) error {
	delete(m.Docs, key)
	return nil
}

// Close does nothing.
func (m *DocumentStore) Close() error {
	return nil
}
