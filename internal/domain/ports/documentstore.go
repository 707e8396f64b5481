// Package ports defines interfaces for external service communication.
package ports

import (
	"context"

	"github.com/ersonp/lineage/internal/domain/entities"
)

// DocumentStore persists the family document as a single keyed blob.
// Every save overwrites the whole document.
type DocumentStore interface {
	// LoadDocument returns the document stored under key.
	// It returns (nil, nil) when nothing has been stored yet.
	LoadDocument(ctx context.Context, key string) (*entities.Document, error)

	// SaveDocument overwrites the document stored under key.
	SaveDocument(ctx context.Context, key string, doc *entities.Document) error

	// DeleteDocument removes the document stored under key.
	// Deleting a missing key is not an error.
	DeleteDocument(ctx context.Context, key string) error

	// Close releases the underlying resources.
	Close() error
}
