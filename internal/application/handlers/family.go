package handlers

import (
	"context"

	"github.com/ersonp/lineage/internal/domain/entities"
	"github.com/ersonp/lineage/internal/domain/services"
)

// FamilyHandler handles whole-document operations.
type FamilyHandler struct {
	family *services.FamilyService
}

// NewFamilyHandler creates a new FamilyHandler.
func NewFamilyHandler(family *services.FamilyService) *FamilyHandler {
	return &FamilyHandler{family: family}
}

// Stats summarizes the loaded document.
type Stats struct {
	Members       int
	Relationships int
	Generations   []int
}

// HandleStats counts members, relationships and generations.
func (h *FamilyHandler) HandleStats() Stats {
	members := h.family.Members()
	layout := services.Plan(members)
	return Stats{
		Members:       len(members),
		Relationships: len(h.family.Relationships()),
		Generations:   layout.Generations(),
	}
}

// HandleSeed replaces the document with the sample four-generation family.
func (h *FamilyHandler) HandleSeed(ctx context.Context) error {
	return h.family.ReplaceAll(ctx, entities.SampleFamily())
}

// HandleReset deletes every member and relationship.
func (h *FamilyHandler) HandleReset(ctx context.Context) error {
	return h.family.Reset(ctx)
}

// HandleHistory returns audit entries, newest first. A member reference
// limits the history to that member.
func (h *FamilyHandler) HandleHistory(ctx context.Context, memberRef string, limit int) ([]entities.AuditEntry, error) {
	if memberRef == "" {
		return h.family.History(ctx, "", limit)
	}
	m, err := resolveMember(h.family, memberRef)
	if err != nil {
		return nil, err
	}
	return h.family.History(ctx, services.MemberSubject(m.ID), limit)
}
