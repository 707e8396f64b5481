package entities

import "errors"

// Validation errors returned by graph mutations. All of them are detected
// before anything is written.
var (
	ErrInvalidEndpoint      = errors.New("relationship references a member that does not exist")
	ErrSelfLink             = errors.New("cannot link a person to themselves")
	ErrSameGeneration       = errors.New("parents and children must be in different generations")
	ErrInvalidLink          = errors.New("invalid relationship link")
	ErrMemberNotFound       = errors.New("member not found")
	ErrRelationshipNotFound = errors.New("relationship not found")
	ErrDuplicateID          = errors.New("duplicate id")
	ErrGenerationConflict   = errors.New("generation change conflicts with an existing parent link")
)

// ErrImportFormat is returned when an imported document lacks the
// members or connections array.
var ErrImportFormat = errors.New("invalid document format: members and connections arrays are required")
