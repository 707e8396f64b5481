package entities

import "time"

// AuditEntry represents a logged mutation of the family graph.
type AuditEntry struct {
	ID        int64          `json:"id"`
	Action    string         `json:"action"`
	SubjectID string         `json:"subject_id,omitempty"`
	Details   map[string]any `json:"details,omitempty"`
	CreatedAt time.Time      `json:"created_at"`
}

// Audit actions.
const (
	ActionMemberAdded         = "member.added"
	ActionMemberUpdated       = "member.updated"
	ActionMemberDeleted       = "member.deleted"
	ActionRelationshipSet     = "relationship.set"
	ActionRelationshipDeleted = "relationship.deleted"
	ActionDocumentReplaced    = "document.replaced"
)
