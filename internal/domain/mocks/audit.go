package mocks

import (
	"context"
	"slices"
	"time"

	"github.com/ersonp/lineage/internal/domain/entities"
)

// AuditLog is a mock implementation of ports.AuditLog.
type AuditLog struct {
	Entries []entities.AuditEntry
	Err     error
}

// NewAuditLog creates a new mock AuditLog.
func NewAuditLog() *AuditLog {
	return &AuditLog{}
}

// LogAction appends an entry.
func (m *AuditLog) LogAction(_ context.Context, action string, subjectID string, details map[string]any) error {
	if m.Err != nil {
		return m.Err
	}
	m.Entries = append(m.Entries, entities.AuditEntry{
		ID:        int64(len(m.Entries) + 1),
		Action:    action,
		SubjectID: subjectID,
		Details:   details,
		CreatedAt: time.Now(),
	})
	return nil
}

// FindAuditLog returns entries for subjectID, newest first.
func (m *AuditLog) FindAuditLog(_ context.Context, subjectID string) ([]entities.AuditEntry, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	var out []entities.AuditEntry
	for i := len(m.Entries) - 1; i >= 0; i-- {
		if m.Entries[i].SubjectID == subjectID {
			out = append(out, m.Entries[i])
		}
	}
	return out, nil
}

// RecentAuditLog returns up to limit entries, newest first.
func (m *AuditLog) RecentAuditLog(_ context.Context, limit int) ([]entities.AuditEntry, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	out := slices.Clone(m.Entries)
	slices.Reverse(out)
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

// Actions returns the logged action names in order.
func (m *AuditLog) Actions() []string {
	out := make([]string, len(m.Entries))
	for i := range m.Entries {
		out[i] = m.Entries[i].Action
	}
	return out
}
