package ports

import (
	"context"

	"github.com/ersonp/lineage/internal/domain/entities"
)

// AuditLog records graph mutations.
type AuditLog interface {
	// LogAction logs an action to the audit log.
	LogAction(ctx context.Context, action string, subjectID string, details map[string]any) error

	// FindAuditLog finds audit log entries for a member or relationship id.
	FindAuditLog(ctx context.Context, subjectID string) ([]entities.AuditEntry, error)

	// RecentAuditLog returns the newest entries first.
	RecentAuditLog(ctx context.Context, limit int) ([]entities.AuditEntry, error)
}
