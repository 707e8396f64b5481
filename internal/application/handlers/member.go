package handlers

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"net/http"
	"os"
	"slices"
	"strconv"
	"strings"

	"github.com/ersonp/lineage/internal/domain/entities"
	"github.com/ersonp/lineage/internal/domain/services"
)

// ErrUnknownField is returned for form fields that do not map to a member
// attribute.
var ErrUnknownField = errors.New("unknown member field")

// formSetter writes one edit-form value into a patch.
type formSetter func(p *entities.MemberPatch, value string) error

// memberFormFields maps the member edit form's field names to the patch
// field each one sets.
var memberFormFields = map[string]formSetter{
	"name":         stringField(func(p *entities.MemberPatch) **string { return &p.Name }),
	"relationship": stringField(func(p *entities.MemberPatch) **string { return &p.Relationship }),
	"status":       stringField(func(p *entities.MemberPatch) **string { return &p.Status }),
	"birthDate":    stringField(func(p *entities.MemberPatch) **string { return &p.BirthDate }),
	"deathDate":    stringField(func(p *entities.MemberPatch) **string { return &p.DeathDate }),
	"location":     stringField(func(p *entities.MemberPatch) **string { return &p.Location }),
	"occupation":   stringField(func(p *entities.MemberPatch) **string { return &p.Occupation }),
	"description":  stringField(func(p *entities.MemberPatch) **string { return &p.Description }),
	"avatar": func(p *entities.MemberPatch, value string) error {
		avatar, err := avatarValue(value)
		if err != nil {
			return err
		}
		p.Avatar = &avatar
		return nil
	},
	"generation": func(p *entities.MemberPatch, value string) error {
		gen, err := strconv.Atoi(strings.TrimSpace(value))
		if err != nil {
			return fmt.Errorf("invalid generation %q: must be a whole number", value)
		}
		p.Generation = &gen
		return nil
	},
	"side": func(p *entities.MemberPatch, value string) error {
		side := entities.Side(strings.ToLower(strings.TrimSpace(value)))
		if !side.IsValid() {
			return fmt.Errorf("invalid side %q (valid: paternal, maternal, ego)", value)
		}
		p.Side = &side
		return nil
	},
	"tags": func(p *entities.MemberPatch, value string) error {
		tags := SplitTags(value)
		p.Tags = &tags
		return nil
	},
}

func stringField(field func(*entities.MemberPatch) **string) formSetter {
	return func(p *entities.MemberPatch, value string) error {
		v := value
		*field(p) = &v
		return nil
	}
}

// FormFields returns the accepted member form field names, sorted.
func FormFields() []string {
	names := make([]string, 0, len(memberFormFields))
	for name := range memberFormFields {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// ParseMemberForm converts edit-form values into a patch. Only fields
// present in form are set.
func ParseMemberForm(form map[string]string) (entities.MemberPatch, error) {
	var patch entities.MemberPatch
	for name, value := range form {
		set, ok := memberFormFields[name]
		if !ok {
			return entities.MemberPatch{}, fmt.Errorf("%w %q (valid: %s)", ErrUnknownField, name, strings.Join(FormFields(), ", "))
		}
		if err := set(&patch, value); err != nil {
			return entities.MemberPatch{}, err
		}
	}
	return patch, nil
}

// SplitTags splits a comma or semicolon separated tag list, dropping
// blanks and duplicates.
func SplitTags(s string) []string {
	fields := strings.FieldsFunc(s, func(r rune) bool { return r == ',' || r == ';' })
	var tags []string
	for _, f := range fields {
		tag := strings.TrimSpace(f)
		if tag != "" && !slices.Contains(tags, tag) {
			tags = append(tags, tag)
		}
	}
	return tags
}

// avatarValue keeps data and http(s) URLs as they are and inlines a local
// image file as a data URL. An empty value clears the avatar.
func avatarValue(value string) (string, error) {
	value = strings.TrimSpace(value)
	if value == "" || strings.HasPrefix(value, "data:") || strings.HasPrefix(value, "http://") ||
		strings.HasPrefix(value, "https://") {
		return value, nil
	}

	data, err := os.ReadFile(value)
	if err != nil {
		return "", fmt.Errorf("reading avatar: %w", err)
	}
	mime := http.DetectContentType(data)
	if !strings.HasPrefix(mime, "image/") {
		return "", fmt.Errorf("avatar %s is not an image (%s)", value, mime)
	}
	return "data:" + mime + ";base64," + base64.StdEncoding.EncodeToString(data), nil
}

// MemberHandler handles member operations at the application layer.
type MemberHandler struct {
	family *services.FamilyService
}

// NewMemberHandler creates a new MemberHandler.
func NewMemberHandler(family *services.FamilyService) *MemberHandler {
	return &MemberHandler{
		family: family,
	}
}

// MemberDetail is a member together with its relationships.
type MemberDetail struct {
	Member        entities.Member    `json:"member"`
	Relationships []RelationshipView `json:"relationships"`
}

// DeleteResult reports what a member deletion removed.
type DeleteResult struct {
	Member               entities.Member `json:"member"`
	RemovedRelationships []string        `json:"removed_relationships"`
}

// HandleAdd creates a member from form values. Missing fields get the
// add-member defaults.
func (h *MemberHandler) HandleAdd(ctx context.Context, form map[string]string) (entities.Member, error) {
	patch, err := ParseMemberForm(form)
	if err != nil {
		return entities.Member{}, err
	}

	m := entities.Member{Generation: entities.DefaultMemberGeneration}
	patch.Apply(&m)
	m.ApplyDefaults()

	id, err := h.family.AddMember(ctx, m)
	if err != nil {
		return entities.Member{}, err
	}
	return h.family.Member(id)
}

// HandleUpdate applies form values to the member referenced by ref.
func (h *MemberHandler) HandleUpdate(ctx context.Context, ref string, form map[string]string) (entities.Member, error) {
	m, err := h.Resolve(ref)
	if err != nil {
		return entities.Member{}, err
	}

	patch, err := ParseMemberForm(form)
	if err != nil {
		return entities.Member{}, err
	}

	if err := h.family.UpdateMember(ctx, m.ID, patch); err != nil {
		return entities.Member{}, err
	}
	return h.family.Member(m.ID)
}

// HandleDelete removes a member and every relationship touching it.
func (h *MemberHandler) HandleDelete(ctx context.Context, ref string) (*DeleteResult, error) {
	m, err := h.Resolve(ref)
	if err != nil {
		return nil, err
	}

	removed, err := h.family.DeleteMember(ctx, m.ID)
	if err != nil {
		return nil, err
	}
	return &DeleteResult{Member: m, RemovedRelationships: removed}, nil
}

// HandleList returns every member sorted by name.
func (h *MemberHandler) HandleList() []entities.Member {
	return services.SortedByName(h.family.Members())
}

// HandleSearch returns members whose name contains query.
func (h *MemberHandler) HandleSearch(query string) []entities.Member {
	return h.family.SearchByName(query)
}

// HandleShow returns the member referenced by ref and its relationships.
func (h *MemberHandler) HandleShow(ref string) (*MemberDetail, error) {
	m, err := h.Resolve(ref)
	if err != nil {
		return nil, err
	}

	rels := h.family.RelationshipsOf(m.ID)
	views := make([]RelationshipView, 0, len(rels))
	for _, rel := range rels {
		if v, ok := relationshipView(h.family, rel); ok {
			views = append(views, v)
		}
	}
	return &MemberDetail{Member: m, Relationships: views}, nil
}

// Resolve finds a member by numeric id or exact (case-insensitive) name.
func (h *MemberHandler) Resolve(ref string) (entities.Member, error) {
	return resolveMember(h.family, ref)
}

func resolveMember(family *services.FamilyService, ref string) (entities.Member, error) {
	ref = strings.TrimSpace(ref)
	if ref == "" {
		return entities.Member{}, fmt.Errorf("member is required: %w", entities.ErrMemberNotFound)
	}
	if id, err := strconv.ParseInt(ref, 10, 64); err == nil {
		return family.Member(entities.MemberID(id))
	}
	return family.FindByName(ref)
}
