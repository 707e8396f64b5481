// Package entities contains core domain data structures.
package entities

import (
	"slices"
	"strings"
)

// MemberID identifies a member. IDs are never reused, even after deletion.
type MemberID int64

// Side tags which branch of the family a member belongs to.
// It is used for filtering only, never for layout.
type Side string

const (
	SidePaternal Side = "paternal"
	SideMaternal Side = "maternal"
	SideEgo      Side = "ego"
)

// IsValid reports whether s is one of the known sides.
func (s Side) IsValid() bool {
	switch s {
	case SidePaternal, SideMaternal, SideEgo:
		return true
	default:
		return false
	}
}

// Member is a person node in the family graph.
type Member struct {
	ID           MemberID `json:"id" yaml:"id"`
	Name         string   `json:"name" yaml:"name"`
	Relationship string   `json:"relationship,omitempty" yaml:"relationship,omitempty"` // Role label, e.g. "Father"
	Status       string   `json:"status,omitempty" yaml:"status,omitempty"`
	BirthDate    string   `json:"birthDate,omitempty" yaml:"birthDate,omitempty"`
	DeathDate    string   `json:"deathDate,omitempty" yaml:"deathDate,omitempty"`
	Generation   int      `json:"generation" yaml:"generation"`
	Side         Side     `json:"side,omitempty" yaml:"side,omitempty"`
	Tags         []string `json:"tags,omitempty" yaml:"tags,omitempty"`
	Avatar       string   `json:"avatar,omitempty" yaml:"avatar,omitempty"`
	Location     string   `json:"location,omitempty" yaml:"location,omitempty"`
	Occupation   string   `json:"occupation,omitempty" yaml:"occupation,omitempty"`
	Description  string   `json:"description,omitempty" yaml:"description,omitempty"`
}

// IsDeceased reports whether the member has a recorded death date.
func (m *Member) IsDeceased() bool {
	return strings.TrimSpace(m.DeathDate) != ""
}

// HasTagLike reports whether any tag contains query, case-insensitively.
func (m *Member) HasTagLike(query string) bool {
	query = strings.ToLower(query)
	for _, tag := range m.Tags {
		if strings.Contains(strings.ToLower(tag), query) {
			return true
		}
	}
	return false
}

// ApplyDefaults fills a blank name, role and side with the values used
// for newly added members.
func (m *Member) ApplyDefaults() {
	if strings.TrimSpace(m.Name) == "" {
		m.Name = DefaultMemberName
	}
	if strings.TrimSpace(m.Relationship) == "" {
		m.Relationship = DefaultMemberRole
	}
	if m.Side == "" {
		m.Side = SideEgo
	}
}

// Initials returns the first letters of the first and last name.
func (m *Member) Initials() string {
	names := strings.Fields(m.Name)
	switch len(names) {
	case 0:
		return ""
	case 1:
		return string([]rune(names[0])[:1])
	default:
		return string([]rune(names[0])[:1]) + string([]rune(names[len(names)-1])[:1])
	}
}

// Clone returns a deep copy of the member.
func (m Member) Clone() Member {
	if len(m.Tags) == 0 {
		m.Tags = nil
	}
	m.Tags = slices.Clone(m.Tags)
	return m
}

// MemberPatch describes an in-place edit. Nil fields are left unchanged.
type MemberPatch struct {
	Name         *string
	Relationship *string
	Status       *string
	BirthDate    *string
	DeathDate    *string
	Generation   *int
	Side         *Side
	Tags         *[]string
	Avatar       *string
	Location     *string
	Occupation   *string
	Description  *string
}

// IsEmpty reports whether the patch changes nothing.
func (p *MemberPatch) IsEmpty() bool {
	return *p == MemberPatch{}
}

// Apply writes the non-nil fields of p onto m.
func (p *MemberPatch) Apply(m *Member) {
	setIf(&m.Name, p.Name)
	setIf(&m.Relationship, p.Relationship)
	setIf(&m.Status, p.Status)
	setIf(&m.BirthDate, p.BirthDate)
	setIf(&m.DeathDate, p.DeathDate)
	setIf(&m.Generation, p.Generation)
	setIf(&m.Side, p.Side)
	setIf(&m.Avatar, p.Avatar)
	setIf(&m.Location, p.Location)
	setIf(&m.Occupation, p.Occupation)
	setIf(&m.Description, p.Description)
	if p.Tags != nil {
		m.Tags = slices.Clone(*p.Tags)
	}
}

func setIf[T any](dst *T, src *T) {
	if src != nil {
		*dst = *src
	}
}
