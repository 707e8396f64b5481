package services

import (
	"context"
	"fmt"
	"strconv"

	"github.com/ersonp/lineage/internal/domain/entities"
	"github.com/ersonp/lineage/internal/domain/ports"
	"github.com/ersonp/lineage/internal/infrastructure/logger"
)

// DefaultDocumentKey is the storage key of the family document.
const DefaultDocumentKey = "familyTreeData"

// FamilyService owns the graph and keeps it in sync with storage.
// Every mutation takes a snapshot, applies the change, persists the whole
// document and rolls back to the snapshot if any step fails.
type FamilyService struct {
	graph *GraphStore
	store ports.DocumentStore
	audit ports.AuditLog
	log   *logger.Logger
	key   string
}

// NewFamilyService creates a FamilyService. audit may be nil.
func NewFamilyService(
	store ports.DocumentStore,
	audit ports.AuditLog,
	log *logger.Logger,
	key string,
) *FamilyService {
	if key == "" {
		key = DefaultDocumentKey
	}
	if log == nil {
		log = logger.Nop()
	}
	return &FamilyService{
		graph: NewGraphStore(),
		store: store,
		audit: audit,
		log:   log.With("document", key),
		key:   key,
	}
}

// Load reads the stored document into the graph. A missing document
// leaves the graph empty.
func (s *FamilyService) Load(ctx context.Context) error {
	doc, err := s.store.LoadDocument(ctx, s.key)
	if err != nil {
		return fmt.Errorf("loading document: %w", err)
	}
	if doc == nil {
		s.log.Debug("no stored document")
		return nil
	}
	if err := s.graph.LoadDocument(*doc); err != nil {
		return fmt.Errorf("loading document: %w", err)
	}

	members, relationships := s.graph.Counts()
	s.log.Debug("document loaded", "members", members, "relationships", relationships)
	return nil
}

// AddMember stores a new member and returns its id.
func (s *FamilyService) AddMember(ctx context.Context, m entities.Member) (entities.MemberID, error) {
	var id entities.MemberID
	err := s.mutate(ctx, func(g *GraphStore) error {
		var err error
		id, err = g.AddMember(m)
		return err
	})
	if err != nil {
		return 0, err
	}

	s.record(ctx, entities.ActionMemberAdded, MemberSubject(id), map[string]any{"name": m.Name})
	return id, nil
}

// UpdateMember edits a member in place.
func (s *FamilyService) UpdateMember(ctx context.Context, id entities.MemberID, patch entities.MemberPatch) error {
	if patch.IsEmpty() {
		return nil
	}
	if err := s.mutate(ctx, func(g *GraphStore) error {
		return g.UpdateMember(id, patch)
	}); err != nil {
		return err
	}

	s.record(ctx, entities.ActionMemberUpdated, MemberSubject(id), nil)
	return nil
}

// DeleteMember removes a member and its relationships. It returns the
// ids of the cascaded relationships.
func (s *FamilyService) DeleteMember(ctx context.Context, id entities.MemberID) ([]string, error) {
	var removed []string
	err := s.mutate(ctx, func(g *GraphStore) error {
		var err error
		removed, err = g.DeleteMember(id)
		return err
	})
	if err != nil {
		return nil, err
	}

	s.record(ctx, entities.ActionMemberDeleted, MemberSubject(id), map[string]any{"relationships": removed})
	return removed, nil
}

// SetRelationship applies cmd atomically: either the relationship and
// all endpoint roles are written and persisted, or nothing changes.
func (s *FamilyService) SetRelationship(ctx context.Context, cmd SetRelationship) (string, error) {
	var id string
	err := s.mutate(ctx, func(g *GraphStore) error {
		var err error
		id, err = cmd.apply(g)
		return err
	})
	if err != nil {
		return "", err
	}

	details := map[string]any{"created": cmd.Create != nil}
	if rel, ok := s.graph.Relationship(id); ok {
		details["link"] = string(rel.Link)
		details["members"] = []int64{int64(rel.Members[0]), int64(rel.Members[1])}
	}
	s.record(ctx, entities.ActionRelationshipSet, id, details)
	return id, nil
}

// DeleteRelationship removes a relationship.
func (s *FamilyService) DeleteRelationship(ctx context.Context, id string) error {
	if err := s.mutate(ctx, func(g *GraphStore) error {
		return g.DeleteRelationship(id)
	}); err != nil {
		return err
	}

	s.record(ctx, entities.ActionRelationshipDeleted, id, nil)
	return nil
}

// ReplaceAll swaps the whole graph for doc.
func (s *FamilyService) ReplaceAll(ctx context.Context, doc entities.Document) error {
	if err := s.mutate(ctx, func(g *GraphStore) error {
		return g.LoadDocument(doc)
	}); err != nil {
		return err
	}

	s.record(ctx, entities.ActionDocumentReplaced, "", map[string]any{
		"members":       len(doc.Members),
		"relationships": len(doc.Connections),
	})
	return nil
}

// Reset clears every member and relationship.
func (s *FamilyService) Reset(ctx context.Context) error {
	return s.ReplaceAll(ctx, entities.Document{})
}

// Members returns a copy of all members in store order.
func (s *FamilyService) Members() []entities.Member {
	return s.graph.Members()
}

// Relationships returns a copy of all relationships in store order.
func (s *FamilyService) Relationships() []entities.Relationship {
	return s.graph.Relationships()
}

// Member returns the member with the given id.
func (s *FamilyService) Member(id entities.MemberID) (entities.Member, error) {
	m, ok := s.graph.Member(id)
	if !ok {
		return entities.Member{}, fmt.Errorf("%w: %d", entities.ErrMemberNotFound, id)
	}
	return m, nil
}

// Relationship returns the relationship with the given id.
func (s *FamilyService) Relationship(id string) (entities.Relationship, error) {
	rel, ok := s.graph.Relationship(id)
	if !ok {
		return entities.Relationship{}, fmt.Errorf("%w: %s", entities.ErrRelationshipNotFound, id)
	}
	return rel, nil
}

// RelationshipsOf returns every relationship touching id.
func (s *FamilyService) RelationshipsOf(id entities.MemberID) []entities.Relationship {
	return s.graph.RelationshipsOf(id)
}

// SearchByName returns members whose name contains query.
func (s *FamilyService) SearchByName(query string) []entities.Member {
	return s.graph.SearchByName(query)
}

// FindByName returns the member whose name equals name, ignoring case.
func (s *FamilyService) FindByName(name string) (entities.Member, error) {
	m, ok := s.graph.FindByName(name)
	if !ok {
		return entities.Member{}, fmt.Errorf("%w: %q", entities.ErrMemberNotFound, name)
	}
	return m, nil
}

// Snapshot returns a deep copy of the current document.
func (s *FamilyService) Snapshot() entities.Document {
	return s.graph.Snapshot()
}

// History returns audit entries for subjectID, or the most recent entries
// when subjectID is empty.
func (s *FamilyService) History(ctx context.Context, subjectID string, limit int) ([]entities.AuditEntry, error) {
	if s.audit == nil {
		return nil, nil
	}
	if subjectID == "" {
		return s.audit.RecentAuditLog(ctx, limit)
	}
	entries, err := s.audit.FindAuditLog(ctx, subjectID)
	if err != nil {
		return nil, err
	}
	if limit > 0 && len(entries) > limit {
		entries = entries[:limit]
	}
	return entries, nil
}

// mutate runs apply against the graph and persists the result. On any
// failure the graph is restored to its state before the call.
func (s *FamilyService) mutate(ctx context.Context, apply func(*GraphStore) error) error {
	before := s.graph.Snapshot()

	if err := apply(s.graph); err != nil {
		s.graph.Restore(before)
		return err
	}

	doc := s.graph.Snapshot()
	if err := s.store.SaveDocument(ctx, s.key, &doc); err != nil {
		s.graph.Restore(before)
		s.log.Error("saving document failed, changes rolled back", "error", err)
		return fmt.Errorf("saving document: %w", err)
	}
	return nil
}

// record writes an audit entry. Audit failures are logged, not returned.
func (s *FamilyService) record(ctx context.Context, action, subjectID string, details map[string]any) {
	s.log.Info(action, "subject", subjectID)
	if s.audit == nil {
		return
	}
	if err := s.audit.LogAction(ctx, action, subjectID, details); err != nil {
		s.log.Warn("writing audit entry failed", "action", action, "error", err)
	}
}

// MemberSubject returns the audit subject id of a member.
func MemberSubject(id entities.MemberID) string {
	return "member:" + strconv.FormatInt(int64(id), 10)
}
