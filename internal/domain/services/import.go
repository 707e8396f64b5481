package services

import (
	"context"
	"fmt"
	"strconv"

	"github.com/ersonp/lineage/internal/domain/entities"
	"github.com/ersonp/lineage/internal/infrastructure/parsers"
)

// ImportOptions controls import behavior.
type ImportOptions struct {
	DryRun bool // Validate without saving
}

// ImportError represents an error for a specific entry during import.
type ImportError struct {
	Line    int    // Entry number (1-indexed, 0 if unknown)
	Field   string // Which field has the error
	Value   string // The invalid value
	Message string // Human-readable error message
}

func (e ImportError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("line %d: %s", e.Line, e.Message)
	}
	return e.Message
}

// ImportResult contains the result of an import operation.
type ImportResult struct {
	Members       int
	Relationships int
	Skipped       int
	Errors        []ImportError
}

// ImportService turns parsed files into graph state.
type ImportService struct {
	family *FamilyService
}

// NewImportService creates a new import service.
func NewImportService(family *FamilyService) *ImportService {
	return &ImportService{family: family}
}

// ImportDocument replaces the whole graph with raw. The document must
// carry both the members and the connections array. Any invalid entry
// aborts the import and leaves the current graph untouched.
func (s *ImportService) ImportDocument(ctx context.Context, raw *parsers.RawDocument, opts ImportOptions) (*ImportResult, error) {
	if raw == nil || raw.Members == nil || raw.Connections == nil {
		return nil, entities.ErrImportFormat
	}

	result := &ImportResult{}
	members, memberErrs := convertMembers(*raw.Members, false)
	relationships, relErrs := convertConnections(*raw.Connections)
	result.Errors = append(memberErrs, relErrs...)
	if len(result.Errors) > 0 {
		return result, nil
	}

	doc := entities.Document{
		Members:      members,
		Connections:  relationships,
		LastMemberID: entities.MemberID(raw.LastMemberID),
	}

	if opts.DryRun {
		if err := NewGraphStore().LoadDocument(doc); err != nil {
			return nil, fmt.Errorf("validating document: %w", err)
		}
	} else if err := s.family.ReplaceAll(ctx, doc); err != nil {
		return nil, fmt.Errorf("replacing document: %w", err)
	}

	result.Members = len(members)
	result.Relationships = len(relationships)
	return result, nil
}

// ImportMembers appends every valid roster entry as a new member. Ids in
// the input are ignored; invalid rows are reported and skipped.
func (s *ImportService) ImportMembers(ctx context.Context, raw *parsers.RawDocument, opts ImportOptions) (*ImportResult, error) {
	if raw == nil || raw.Members == nil {
		return nil, entities.ErrImportFormat
	}

	result := &ImportResult{}
	members, errs := convertMembers(*raw.Members, true)
	result.Errors = errs
	result.Skipped = len(errs)

	if opts.DryRun {
		result.Members = len(members)
		return result, nil
	}

	for i := range members {
		if _, err := s.family.AddMember(ctx, members[i]); err != nil {
			return nil, fmt.Errorf("adding member %q: %w", members[i].Name, err)
		}
		result.Members++
	}

	return result, nil
}

// convertMembers validates raw members and converts the valid ones.
// When roster is set, ids are optional and defaults are applied.
func convertMembers(raw []parsers.RawMember, roster bool) ([]entities.Member, []ImportError) {
	members := make([]entities.Member, 0, len(raw))
	var errs []ImportError

	for i := range raw {
		r := &raw[i]
		lineNum := r.LineNum
		if lineNum == 0 {
			lineNum = i + 1
		}

		if err := validateRawMember(r, lineNum, roster); err != nil {
			errs = append(errs, *err)
			continue
		}

		m := entities.Member{
			ID:           entities.MemberID(r.ID),
			Name:         r.Name,
			Relationship: r.Relationship,
			Status:       r.Status,
			BirthDate:    r.BirthDate,
			DeathDate:    r.DeathDate,
			Generation:   entities.DefaultMemberGeneration,
			Side:         entities.Side(r.Side),
			Tags:         r.Tags,
			Avatar:       r.Avatar,
			Location:     r.Location,
			Occupation:   r.Occupation,
			Description:  r.Description,
		}
		if r.Generation != nil {
			m.Generation = *r.Generation
		}
		if roster {
			m.ApplyDefaults()
		}
		members = append(members, m)
	}

	return members, errs
}

// validateRawMember validates a single raw member and returns an error if invalid.
func validateRawMember(r *parsers.RawMember, lineNum int, roster bool) *ImportError {
	if !roster && r.ID <= 0 {
		return &ImportError{
			Line:    lineNum,
			Field:   "id",
			Value:   strconv.FormatInt(r.ID, 10),
			Message: "member id must be a positive number",
		}
	}
	if r.Side != "" && !entities.Side(r.Side).IsValid() {
		return &ImportError{
			Line:    lineNum,
			Field:   "side",
			Value:   r.Side,
			Message: fmt.Sprintf("invalid side %q (valid: paternal, maternal, ego)", r.Side),
		}
	}
	return nil
}

// convertConnections validates raw connections and converts the valid ones.
func convertConnections(raw []parsers.RawConnection) ([]entities.Relationship, []ImportError) {
	relationships := make([]entities.Relationship, 0, len(raw))
	var errs []ImportError

	for i := range raw {
		c := &raw[i]
		lineNum := c.LineNum
		if lineNum == 0 {
			lineNum = i + 1
		}

		if len(c.Members) != 2 {
			errs = append(errs, ImportError{
				Line:    lineNum,
				Field:   "members",
				Value:   fmt.Sprint(c.Members),
				Message: fmt.Sprintf("connection must reference exactly 2 members, got %d", len(c.Members)),
			})
			continue
		}
		link, ok := entities.ParseLinkKind(c.Link)
		if !ok {
			errs = append(errs, ImportError{
				Line:    lineNum,
				Field:   "link",
				Value:   c.Link,
				Message: fmt.Sprintf("invalid link %q (valid: Parent, Spouse, Partner, Sibling)", c.Link),
			})
			continue
		}

		relationships = append(relationships, entities.Relationship{
			ID:      c.ID,
			Members: [2]entities.MemberID{entities.MemberID(c.Members[0]), entities.MemberID(c.Members[1])},
			Link:    link,
			Type:    c.Type,
			Status:  c.Status,
			Note:    c.Note,
		})
	}

	return relationships, errs
}
