package entities

import "slices"

// Roles are the role labels offered by the edit form.
var Roles = []string{
	"Son", "Daughter", "Father", "Mother",
	"Grandfather", "Grandmother", "Great-Grandfather", "Great-Grandmother",
	"Step-Father", "Step-Mother",
}

// MemberStatuses are the personal statuses offered by the edit form.
var MemberStatuses = []string{"Married", "Engaged", "Separated", "Divorced", "Single"}

// LinkStatuses describe the current state of a Spouse or Partner link.
var LinkStatuses = []string{"Married", "Divorced", "Partner", "Engaged", "Separated"}

// RelationshipTypes are the biological/legal qualifiers of a link.
var RelationshipTypes = []string{"Biological", "Adopted", "Step-Relationship"}

// Defaults applied to members created without these fields.
const (
	DefaultMemberName       = "New Member"
	DefaultMemberRole       = "Person"
	DefaultMemberGeneration = 3
	DefaultRelationshipType = "Biological"
)

// IsKnownRole reports whether role is one of the built-in role labels.
func IsKnownRole(role string) bool {
	return slices.Contains(Roles, role)
}

// IsKnownRelationshipType reports whether t is a built-in qualifier.
func IsKnownRelationshipType(t string) bool {
	return slices.Contains(RelationshipTypes, t)
}
