package entities

import "strings"

// LinkKind defines the kind of relationship between two members.
type LinkKind string

const (
	LinkParent  LinkKind = "Parent"
	LinkSpouse  LinkKind = "Spouse"
	LinkPartner LinkKind = "Partner"
	LinkSibling LinkKind = "Sibling"
)

// LinkKinds lists every link kind in display order.
var LinkKinds = []LinkKind{LinkParent, LinkSpouse, LinkPartner, LinkSibling}

// IsValid reports whether k is a known link kind.
func (k LinkKind) IsValid() bool {
	switch k {
	case LinkParent, LinkSpouse, LinkPartner, LinkSibling:
		return true
	default:
		return false
	}
}

// ParseLinkKind converts user input to a LinkKind. Matching is
// case-insensitive and accepts "Parent-Child" as an alias of Parent.
func ParseLinkKind(s string) (LinkKind, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "parent", "parent-child", "parent_child":
		return LinkParent, true
	case "spouse":
		return LinkSpouse, true
	case "partner":
		return LinkPartner, true
	case "sibling":
		return LinkSibling, true
	default:
		return "", false
	}
}

// Relationship is a typed edge between two members.
// For Parent links Members[0] is the parent and Members[1] the child.
type Relationship struct {
	ID      string      `json:"id" yaml:"id"`
	Members [2]MemberID `json:"members" yaml:"members,flow"`
	Link    LinkKind    `json:"link" yaml:"link"`
	Type    string      `json:"type,omitempty" yaml:"type,omitempty"`     // Biological, Adopted, Step-Relationship
	Status  string      `json:"status,omitempty" yaml:"status,omitempty"` // Married, Divorced, ...
	Note    string      `json:"note,omitempty" yaml:"note,omitempty"`
}

// Involves reports whether id is one of the endpoints.
func (r *Relationship) Involves(id MemberID) bool {
	return r.Members[0] == id || r.Members[1] == id
}

// Other returns the endpoint opposite to id.
func (r *Relationship) Other(id MemberID) MemberID {
	if r.Members[0] == id {
		return r.Members[1]
	}
	return r.Members[0]
}

// RelationshipSpec is the input for creating a relationship.
type RelationshipSpec struct {
	From   MemberID
	To     MemberID
	Link   LinkKind
	Type   string
	Status string
	Note   string
}

// RelationshipPatch describes an in-place edit of a relationship.
// Nil fields are left unchanged.
type RelationshipPatch struct {
	Link   *LinkKind
	Type   *string
	Status *string
	Note   *string
}

// Apply writes the non-nil fields of p onto r.
func (p *RelationshipPatch) Apply(r *Relationship) {
	setIf(&r.Link, p.Link)
	setIf(&r.Type, p.Type)
	setIf(&r.Status, p.Status)
	setIf(&r.Note, p.Note)
}
