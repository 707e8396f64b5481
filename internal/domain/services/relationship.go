package services

import (
	"errors"
	"fmt"
	"strings"

	"github.com/ersonp/lineage/internal/domain/entities"
)

// RolePatch sets the role label of one relationship endpoint.
type RolePatch struct {
	MemberID entities.MemberID
	Role     string
}

// SetRelationship creates or edits a relationship and, in the same step,
// updates the role labels of its endpoints. Exactly one of Create or
// RelationshipID must be set.
type SetRelationship struct {
	RelationshipID string
	Create         *entities.RelationshipSpec
	Patch          *entities.RelationshipPatch
	EndpointRoles  []RolePatch
}

// Validate checks the shape of the command. Graph-dependent checks run
// when the command is applied.
func (c *SetRelationship) Validate() error {
	hasID := strings.TrimSpace(c.RelationshipID) != ""
	switch {
	case c.Create != nil && hasID:
		return errors.New("set relationship: create and relationship id are mutually exclusive")
	case c.Create == nil && !hasID:
		return errors.New("set relationship: either create or relationship id is required")
	case c.Create != nil && c.Patch != nil:
		return errors.New("set relationship: patch cannot be combined with create")
	}
	if len(c.EndpointRoles) > 2 {
		return fmt.Errorf("set relationship: at most 2 endpoint roles, got %d", len(c.EndpointRoles))
	}
	return nil
}

// apply runs the command against g and returns the relationship id.
// Every check that can fail runs before the first write.
func (c *SetRelationship) apply(g *GraphStore) (string, error) {
	if err := c.Validate(); err != nil {
		return "", err
	}

	endpoints, err := c.endpoints(g)
	if err != nil {
		return "", err
	}
	for _, rp := range c.EndpointRoles {
		if rp.MemberID != endpoints[0] && rp.MemberID != endpoints[1] {
			return "", fmt.Errorf("%w: member %d is not an endpoint", entities.ErrInvalidEndpoint, rp.MemberID)
		}
	}

	id := c.RelationshipID
	if c.Create != nil {
		id, err = g.AddRelationship(*c.Create)
		if err != nil {
			return "", err
		}
	} else if c.Patch != nil {
		if err := g.UpdateRelationship(id, *c.Patch); err != nil {
			return "", err
		}
	}

	for _, rp := range c.EndpointRoles {
		role := rp.Role
		if err := g.UpdateMember(rp.MemberID, entities.MemberPatch{Relationship: &role}); err != nil {
			return "", fmt.Errorf("updating role of member %d: %w", rp.MemberID, err)
		}
	}

	return id, nil
}

// endpoints resolves the two members the command touches and checks that
// they exist.
func (c *SetRelationship) endpoints(g *GraphStore) ([2]entities.MemberID, error) {
	if c.Create != nil {
		for _, id := range []entities.MemberID{c.Create.From, c.Create.To} {
			if _, ok := g.Member(id); !ok {
				return [2]entities.MemberID{}, fmt.Errorf("%w: %d", entities.ErrInvalidEndpoint, id)
			}
		}
		return [2]entities.MemberID{c.Create.From, c.Create.To}, nil
	}

	rel, ok := g.Relationship(c.RelationshipID)
	if !ok {
		return [2]entities.MemberID{}, fmt.Errorf("%w: %s", entities.ErrRelationshipNotFound, c.RelationshipID)
	}
	return rel.Members, nil
}
