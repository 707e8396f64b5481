package services

import (
	"fmt"
	"slices"
	"strings"

	"github.com/ersonp/lineage/internal/domain/entities"
)

// FilterAll is the sentinel value that disables a string filter.
const FilterAll = "all"

// FilterSpec holds independent member and link predicates. All set
// predicates must hold for a member or relationship to stay visible.
// The zero value shows everything.
type FilterSpec struct {
	Tag          string            // Case-insensitive substring over tags
	Side         entities.Side     // Exact match; ego members always pass
	Generations  []int             // Allowed generations (empty = all)
	Role         string            // Exact role label
	Status       string            // Exact member status
	HideDeceased bool              // Exclude members with a death date
	Link         entities.LinkKind // Relationship link kind
}

// IsZero reports whether the spec restricts nothing.
func (s *FilterSpec) IsZero() bool {
	return unrestricted(s.Tag) && unrestricted(string(s.Side)) && len(s.Generations) == 0 &&
		unrestricted(s.Role) && unrestricted(s.Status) && !s.HideDeceased && unrestricted(string(s.Link))
}

// View is the visible subset of the graph. Members and relationships keep
// the store's order.
type View struct {
	Members       []entities.Member
	Relationships []entities.Relationship

	memberIDs       map[entities.MemberID]bool
	relationshipIDs map[string]bool
}

// HasMember reports whether id is visible.
func (v *View) HasMember(id entities.MemberID) bool {
	return v.memberIDs[id]
}

// HasRelationship reports whether the relationship id is visible.
func (v *View) HasRelationship(id string) bool {
	return v.relationshipIDs[id]
}

// MemberIDs returns the visible member ids in order.
func (v *View) MemberIDs() []entities.MemberID {
	ids := make([]entities.MemberID, len(v.Members))
	for i := range v.Members {
		ids[i] = v.Members[i].ID
	}
	return ids
}

// RelationshipIDs returns the visible relationship ids in order.
func (v *View) RelationshipIDs() []string {
	ids := make([]string, len(v.Relationships))
	for i := range v.Relationships {
		ids[i] = v.Relationships[i].ID
	}
	return ids
}

// VisibleSet filters members by every member predicate first, then keeps
// only relationships of the requested link kind whose endpoints both
// survived. A relationship is never visible with a hidden endpoint.
func VisibleSet(members []entities.Member, relationships []entities.Relationship, spec FilterSpec) View {
	matches := memberMatcher(spec)

	visible := make([]entities.Member, 0, len(members))
	for i := range members {
		if matches(&members[i]) {
			visible = append(visible, members[i])
		}
	}

	link := entities.LinkKind("")
	if !unrestricted(string(spec.Link)) {
		link = spec.Link
	}

	return buildView(visible, relationships, func(rel *entities.Relationship) bool {
		return link == "" || rel.Link == link
	})
}

// memberMatcher composes the member-level predicates of spec.
func memberMatcher(spec FilterSpec) func(*entities.Member) bool {
	var preds []func(*entities.Member) bool

	if tag := strings.TrimSpace(spec.Tag); !unrestricted(tag) {
		preds = append(preds, func(m *entities.Member) bool { return m.HasTagLike(tag) })
	}
	if !unrestricted(string(spec.Side)) {
		preds = append(preds, func(m *entities.Member) bool {
			return m.Side == entities.SideEgo || m.Side == spec.Side
		})
	}
	if len(spec.Generations) > 0 {
		allowed := slices.Clone(spec.Generations)
		preds = append(preds, func(m *entities.Member) bool { return slices.Contains(allowed, m.Generation) })
	}
	if !unrestricted(spec.Role) {
		preds = append(preds, func(m *entities.Member) bool { return m.Relationship == spec.Role })
	}
	if !unrestricted(spec.Status) {
		preds = append(preds, func(m *entities.Member) bool { return m.Status == spec.Status })
	}
	if spec.HideDeceased {
		preds = append(preds, func(m *entities.Member) bool { return !m.IsDeceased() })
	}

	return func(m *entities.Member) bool {
		for _, p := range preds {
			if !p(m) {
				return false
			}
		}
		return true
	}
}

// FocusSet returns the 1-hop ego network of id: the member, everyone
// directly linked to it, and every relationship among that group.
func FocusSet(members []entities.Member, relationships []entities.Relationship, id entities.MemberID) (View, error) {
	if !slices.ContainsFunc(members, func(m entities.Member) bool { return m.ID == id }) {
		return View{}, fmt.Errorf("%w: %d", entities.ErrMemberNotFound, id)
	}

	group := map[entities.MemberID]bool{id: true}
	for i := range relationships {
		if relationships[i].Involves(id) {
			group[relationships[i].Other(id)] = true
		}
	}

	visible := make([]entities.Member, 0, len(group))
	for i := range members {
		if group[members[i].ID] {
			visible = append(visible, members[i])
		}
	}

	return buildView(visible, relationships, nil), nil
}

// buildView keeps relationships whose endpoints are both in members and
// that pass keep (nil keeps all).
func buildView(
	members []entities.Member,
	relationships []entities.Relationship,
	keep func(*entities.Relationship) bool,
) View {
	view := View{
		Members:         members,
		Relationships:   make([]entities.Relationship, 0, len(relationships)),
		memberIDs:       make(map[entities.MemberID]bool, len(members)),
		relationshipIDs: make(map[string]bool, len(relationships)),
	}
	for i := range members {
		view.memberIDs[members[i].ID] = true
	}

	for i := range relationships {
		rel := &relationships[i]
		if keep != nil && !keep(rel) {
			continue
		}
		if !view.memberIDs[rel.Members[0]] || !view.memberIDs[rel.Members[1]] {
			continue
		}
		view.Relationships = append(view.Relationships, *rel)
		view.relationshipIDs[rel.ID] = true
	}

	return view
}

func unrestricted(s string) bool {
	s = strings.TrimSpace(s)
	return s == "" || strings.EqualFold(s, FilterAll)
}
