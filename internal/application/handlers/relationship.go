package handlers

import (
	"context"
	"fmt"
	"strings"

	"github.com/ersonp/lineage/internal/domain/entities"
	"github.com/ersonp/lineage/internal/domain/services"
)

// RelationshipHandler handles relationship operations.
type RelationshipHandler struct {
	family *services.FamilyService
}

// NewRelationshipHandler creates a new RelationshipHandler.
func NewRelationshipHandler(family *services.FamilyService) *RelationshipHandler {
	return &RelationshipHandler{
		family: family,
	}
}

// RelationshipView is a relationship with both endpoints resolved.
type RelationshipView struct {
	Relationship entities.Relationship `json:"relationship"`
	From         entities.Member       `json:"from"`
	To           entities.Member       `json:"to"`
}

// Label formats the view the way the relationship list shows it.
func (v RelationshipView) Label() string {
	label := fmt.Sprintf("%s <-> %s  %s", v.From.Name, v.To.Name, v.Relationship.Link)
	if v.Relationship.Type != "" {
		label += " (" + v.Relationship.Type + ")"
	}
	if v.Relationship.Status != "" {
		label += " '" + v.Relationship.Status + "'"
	}
	return label
}

// CreateInput is the relationship form: two member references, the link
// and optional role labels written back to each endpoint.
type CreateInput struct {
	From     string
	To       string
	Link     string
	Type     string
	Status   string
	Note     string
	FromRole string
	ToRole   string
}

// UpdateInput edits an existing relationship. Nil fields are unchanged.
type UpdateInput struct {
	Link     *string
	Type     *string
	Status   *string
	Note     *string
	FromRole string
	ToRole   string
}

// HandleCreate creates a relationship and syncs the endpoint roles in one
// step. Nothing changes when the link is rejected.
func (h *RelationshipHandler) HandleCreate(ctx context.Context, in CreateInput) (*RelationshipView, error) {
	link, err := parseLink(in.Link)
	if err != nil {
		return nil, err
	}

	from, err := resolveMember(h.family, in.From)
	if err != nil {
		return nil, fmt.Errorf("from: %w", err)
	}
	to, err := resolveMember(h.family, in.To)
	if err != nil {
		return nil, fmt.Errorf("to: %w", err)
	}

	relType := in.Type
	if relType == "" {
		relType = entities.DefaultRelationshipType
	}

	cmd := services.SetRelationship{
		Create: &entities.RelationshipSpec{
			From:   from.ID,
			To:     to.ID,
			Link:   link,
			Type:   relType,
			Status: in.Status,
			Note:   in.Note,
		},
		EndpointRoles: rolePatches(from.ID, in.FromRole, to.ID, in.ToRole),
	}

	id, err := h.family.SetRelationship(ctx, cmd)
	if err != nil {
		return nil, err
	}
	return h.view(id)
}

// HandleUpdate edits the relationship with the given id. FromRole and
// ToRole apply to the first and second stored endpoint.
func (h *RelationshipHandler) HandleUpdate(ctx context.Context, id string, in UpdateInput) (*RelationshipView, error) {
	rel, err := h.family.Relationship(id)
	if err != nil {
		return nil, err
	}

	patch := &entities.RelationshipPatch{
		Type:   in.Type,
		Status: in.Status,
		Note:   in.Note,
	}
	if in.Link != nil {
		link, err := parseLink(*in.Link)
		if err != nil {
			return nil, err
		}
		patch.Link = &link
	}

	cmd := services.SetRelationship{
		RelationshipID: id,
		Patch:          patch,
		EndpointRoles:  rolePatches(rel.Members[0], in.FromRole, rel.Members[1], in.ToRole),
	}
	if _, err := h.family.SetRelationship(ctx, cmd); err != nil {
		return nil, err
	}
	return h.view(id)
}

// HandleDelete removes a relationship by ID.
func (h *RelationshipHandler) HandleDelete(ctx context.Context, id string) error {
	return h.family.DeleteRelationship(ctx, id)
}

// HandleList returns relationships in stored order. A non-empty search
// keeps only those where either endpoint's name contains it.
func (h *RelationshipHandler) HandleList(search string) []RelationshipView {
	query := strings.ToLower(strings.TrimSpace(search))
	rels := h.family.Relationships()
	views := make([]RelationshipView, 0, len(rels))
	for _, rel := range rels {
		v, ok := relationshipView(h.family, rel)
		if !ok {
			continue
		}
		names := strings.ToLower(v.From.Name) + " " + strings.ToLower(v.To.Name)
		if query != "" && !strings.Contains(names, query) {
			continue
		}
		views = append(views, v)
	}
	return views
}

func (h *RelationshipHandler) view(id string) (*RelationshipView, error) {
	rel, err := h.family.Relationship(id)
	if err != nil {
		return nil, err
	}
	v, ok := relationshipView(h.family, rel)
	if !ok {
		return nil, entities.ErrInvalidEndpoint
	}
	return &v, nil
}

func relationshipView(family *services.FamilyService, rel entities.Relationship) (RelationshipView, bool) {
	from, err := family.Member(rel.Members[0])
	if err != nil {
		return RelationshipView{}, false
	}
	to, err := family.Member(rel.Members[1])
	if err != nil {
		return RelationshipView{}, false
	}
	return RelationshipView{Relationship: rel, From: from, To: to}, true
}

func rolePatches(fromID entities.MemberID, fromRole string, toID entities.MemberID, toRole string) []services.RolePatch {
	var roles []services.RolePatch
	if fromRole = strings.TrimSpace(fromRole); fromRole != "" {
		roles = append(roles, services.RolePatch{MemberID: fromID, Role: fromRole})
	}
	if toRole = strings.TrimSpace(toRole); toRole != "" {
		roles = append(roles, services.RolePatch{MemberID: toID, Role: toRole})
	}
	return roles
}

func parseLink(s string) (entities.LinkKind, error) {
	link, ok := entities.ParseLinkKind(s)
	if !ok {
		return "", fmt.Errorf("%w %q (valid: Parent, Spouse, Partner, Sibling)", entities.ErrInvalidLink, s)
	}
	return link, nil
}
