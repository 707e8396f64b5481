package services

import (
	"fmt"
	"slices"
	"strings"

	"github.com/google/uuid"

	"github.com/ersonp/lineage/internal/domain/entities"
)

// GraphStore owns the member and relationship collections and enforces
// referential integrity on every mutation. Validation always runs before
// anything is written, so a failed call leaves the store untouched.
//
// GraphStore is not safe for concurrent use; it is driven by a single
// logical thread of control.
type GraphStore struct {
	members       []entities.Member
	relationships []entities.Relationship
	lastMemberID  entities.MemberID
	newID         func() string
}

// NewGraphStore creates an empty GraphStore.
func NewGraphStore() *GraphStore {
	return &GraphStore{
		newID: func() string { return uuid.New().String() },
	}
}

// AddMember stores a new member and returns its freshly allocated id.
// Any id on the input is ignored.
func (g *GraphStore) AddMember(m entities.Member) (entities.MemberID, error) {
	if m.Side != "" && !m.Side.IsValid() {
		return 0, fmt.Errorf("invalid side %q (valid: paternal, maternal, ego)", m.Side)
	}

	g.lastMemberID++
	m = m.Clone()
	m.ID = g.lastMemberID
	g.members = append(g.members, m)
	return m.ID, nil
}

// UpdateMember applies patch to the member in place.
func (g *GraphStore) UpdateMember(id entities.MemberID, patch entities.MemberPatch) error {
	idx := g.memberIndex(id)
	if idx < 0 {
		return fmt.Errorf("%w: %d", entities.ErrMemberNotFound, id)
	}

	updated := g.members[idx].Clone()
	patch.Apply(&updated)

	if updated.Side != "" && !updated.Side.IsValid() {
		return fmt.Errorf("invalid side %q (valid: paternal, maternal, ego)", updated.Side)
	}

	if updated.Generation != g.members[idx].Generation {
		if err := g.checkParentLinks(updated); err != nil {
			return err
		}
	}

	g.members[idx] = updated
	return nil
}

// checkParentLinks verifies that every Parent link touching m still points
// from a lower to a higher generation once m is updated.
func (g *GraphStore) checkParentLinks(m entities.Member) error {
	for i := range g.relationships {
		rel := &g.relationships[i]
		if rel.Link != entities.LinkParent || !rel.Involves(m.ID) {
			continue
		}
		other, _ := g.Member(rel.Other(m.ID))
		parentGen, childGen := m.Generation, other.Generation
		if rel.Members[1] == m.ID {
			parentGen, childGen = other.Generation, m.Generation
		}
		if parentGen >= childGen {
			return fmt.Errorf("%w (relationship %s)", entities.ErrGenerationConflict, rel.ID)
		}
	}
	return nil
}

// DeleteMember removes a member and every relationship that references it.
// It returns the ids of the removed relationships.
func (g *GraphStore) DeleteMember(id entities.MemberID) ([]string, error) {
	idx := g.memberIndex(id)
	if idx < 0 {
		return nil, fmt.Errorf("%w: %d", entities.ErrMemberNotFound, id)
	}

	var removed []string
	kept := g.relationships[:0]
	for _, rel := range g.relationships {
		if rel.Involves(id) {
			removed = append(removed, rel.ID)
			continue
		}
		kept = append(kept, rel)
	}
	g.relationships = kept
	g.members = slices.Delete(g.members, idx, idx+1)

	return removed, nil
}

// AddRelationship validates spec and stores a new relationship.
// Parent links are stored with the lower generation first.
func (g *GraphStore) AddRelationship(spec entities.RelationshipSpec) (string, error) {
	rel, err := g.prepareRelationship(entities.Relationship{
		Members: [2]entities.MemberID{spec.From, spec.To},
		Link:    spec.Link,
		Type:    spec.Type,
		Status:  spec.Status,
		Note:    spec.Note,
	})
	if err != nil {
		return "", err
	}

	rel.ID = g.newID()
	g.relationships = append(g.relationships, rel)
	return rel.ID, nil
}

// prepareRelationship validates rel against the current members and
// normalizes the endpoint order of Parent links.
func (g *GraphStore) prepareRelationship(rel entities.Relationship) (entities.Relationship, error) {
	return normalizeRelationship(rel, g.Member)
}

// normalizeRelationship checks rel using lookup to resolve endpoints.
func normalizeRelationship(
	rel entities.Relationship,
	lookup func(entities.MemberID) (entities.Member, bool),
) (entities.Relationship, error) {
	if !rel.Link.IsValid() {
		return rel, fmt.Errorf("%w: %q (valid: Parent, Spouse, Partner, Sibling)", entities.ErrInvalidLink, rel.Link)
	}

	from, ok := lookup(rel.Members[0])
	if !ok {
		return rel, fmt.Errorf("%w: %d", entities.ErrInvalidEndpoint, rel.Members[0])
	}
	to, ok := lookup(rel.Members[1])
	if !ok {
		return rel, fmt.Errorf("%w: %d", entities.ErrInvalidEndpoint, rel.Members[1])
	}
	if from.ID == to.ID {
		return rel, entities.ErrSelfLink
	}

	if rel.Link == entities.LinkParent {
		switch {
		case from.Generation == to.Generation:
			return rel, entities.ErrSameGeneration
		case from.Generation > to.Generation:
			rel.Members = [2]entities.MemberID{to.ID, from.ID}
		}
	}

	return rel, nil
}

// UpdateRelationship applies patch in place. Changing the link to Parent
// re-runs the generation checks.
func (g *GraphStore) UpdateRelationship(id string, patch entities.RelationshipPatch) error {
	idx := g.relationshipIndex(id)
	if idx < 0 {
		return fmt.Errorf("%w: %s", entities.ErrRelationshipNotFound, id)
	}

	updated := g.relationships[idx]
	patch.Apply(&updated)

	updated, err := g.prepareRelationship(updated)
	if err != nil {
		return err
	}

	g.relationships[idx] = updated
	return nil
}

// DeleteRelationship removes a relationship by id.
func (g *GraphStore) DeleteRelationship(id string) error {
	idx := g.relationshipIndex(id)
	if idx < 0 {
		return fmt.Errorf("%w: %s", entities.ErrRelationshipNotFound, id)
	}
	g.relationships = slices.Delete(g.relationships, idx, idx+1)
	return nil
}

// ReplaceAll swaps both collections for the given ones after validating
// them as a whole. Relationships without an id get a fresh one.
func (g *GraphStore) ReplaceAll(members []entities.Member, relationships []entities.Relationship) error {
	byID := make(map[entities.MemberID]entities.Member, len(members))
	nextMembers := make([]entities.Member, 0, len(members))
	highest := g.lastMemberID

	for i := range members {
		m := members[i].Clone()
		if _, dup := byID[m.ID]; dup {
			return fmt.Errorf("%w: member %d", entities.ErrDuplicateID, m.ID)
		}
		if m.Side != "" && !m.Side.IsValid() {
			return fmt.Errorf("member %d: invalid side %q", m.ID, m.Side)
		}
		byID[m.ID] = m
		nextMembers = append(nextMembers, m)
		highest = max(highest, m.ID)
	}

	lookup := func(id entities.MemberID) (entities.Member, bool) {
		m, ok := byID[id]
		return m, ok
	}

	seen := make(map[string]bool, len(relationships))
	nextRelationships := make([]entities.Relationship, 0, len(relationships))
	for _, rel := range relationships {
		if rel.ID == "" {
			rel.ID = g.newID()
		}
		if seen[rel.ID] {
			return fmt.Errorf("%w: relationship %s", entities.ErrDuplicateID, rel.ID)
		}
		seen[rel.ID] = true

		normalized, err := normalizeRelationship(rel, lookup)
		if err != nil {
			return fmt.Errorf("relationship %s: %w", rel.ID, err)
		}
		nextRelationships = append(nextRelationships, normalized)
	}

	g.members = nextMembers
	g.relationships = nextRelationships
	g.lastMemberID = highest
	return nil
}

// LoadDocument replaces the state with doc, honoring its id high-water mark.
func (g *GraphStore) LoadDocument(doc entities.Document) error {
	if err := g.ReplaceAll(doc.Members, doc.Connections); err != nil {
		return err
	}
	g.lastMemberID = max(g.lastMemberID, doc.LastMemberID)
	return nil
}

// Member returns a copy of the member with the given id.
func (g *GraphStore) Member(id entities.MemberID) (entities.Member, bool) {
	idx := g.memberIndex(id)
	if idx < 0 {
		return entities.Member{}, false
	}
	return g.members[idx].Clone(), true
}

// Relationship returns a copy of the relationship with the given id.
func (g *GraphStore) Relationship(id string) (entities.Relationship, bool) {
	idx := g.relationshipIndex(id)
	if idx < 0 {
		return entities.Relationship{}, false
	}
	return g.relationships[idx], true
}

// Members returns a copy of all members in insertion order.
func (g *GraphStore) Members() []entities.Member {
	out := make([]entities.Member, len(g.members))
	for i := range g.members {
		out[i] = g.members[i].Clone()
	}
	return out
}

// Relationships returns a copy of all relationships in insertion order.
func (g *GraphStore) Relationships() []entities.Relationship {
	return slices.Clone(g.relationships)
}

// RelationshipsOf returns every relationship that touches id.
func (g *GraphStore) RelationshipsOf(id entities.MemberID) []entities.Relationship {
	var out []entities.Relationship
	for _, rel := range g.relationships {
		if rel.Involves(id) {
			out = append(out, rel)
		}
	}
	return out
}

// SearchByName returns members whose name contains query, case-insensitively.
func (g *GraphStore) SearchByName(query string) []entities.Member {
	query = strings.ToLower(strings.TrimSpace(query))
	if query == "" {
		return nil
	}
	var out []entities.Member
	for i := range g.members {
		if strings.Contains(strings.ToLower(g.members[i].Name), query) {
			out = append(out, g.members[i].Clone())
		}
	}
	return out
}

// FindByName returns the first member whose name equals name, ignoring case.
func (g *GraphStore) FindByName(name string) (entities.Member, bool) {
	name = strings.TrimSpace(name)
	for i := range g.members {
		if strings.EqualFold(g.members[i].Name, name) {
			return g.members[i].Clone(), true
		}
	}
	return entities.Member{}, false
}

// Snapshot returns a deep copy of the current state.
func (g *GraphStore) Snapshot() entities.Document {
	doc := entities.Document{
		Members:      g.members,
		Connections:  g.relationships,
		LastMemberID: g.lastMemberID,
	}
	return doc.Clone()
}

// Restore replaces the state with doc without validation. It is meant for
// rolling back to a snapshot taken from this store.
func (g *GraphStore) Restore(doc entities.Document) {
	c := doc.Clone()
	g.members = c.Members
	g.relationships = c.Connections
	g.lastMemberID = max(g.lastMemberID, c.LastMemberID)
}

// Counts returns the number of members and relationships.
func (g *GraphStore) Counts() (members, relationships int) {
	return len(g.members), len(g.relationships)
}

func (g *GraphStore) memberIndex(id entities.MemberID) int {
	return slices.IndexFunc(g.members, func(m entities.Member) bool { return m.ID == id })
}

func (g *GraphStore) relationshipIndex(id string) int {
	return slices.IndexFunc(g.relationships, func(r entities.Relationship) bool { return r.ID == id })
}
