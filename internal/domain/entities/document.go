package entities

import "slices"

// Document is the persisted form of a family graph: two top-level arrays.
// LastMemberID is optional bookkeeping that keeps deleted ids from being
// handed out again after a reload.
type Document struct {
	Members      []Member       `json:"members" yaml:"members"`
	Connections  []Relationship `json:"connections" yaml:"connections"`
	LastMemberID MemberID       `json:"lastMemberId,omitempty" yaml:"lastMemberId,omitempty"`
}

// Clone returns a deep copy of the document.
func (d *Document) Clone() Document {
	out := Document{
		Members:      make([]Member, len(d.Members)),
		Connections:  slices.Clone(d.Connections),
		LastMemberID: d.LastMemberID,
	}
	for i := range d.Members {
		out.Members[i] = d.Members[i].Clone()
	}
	if out.Connections == nil {
		out.Connections = []Relationship{}
	}
	return out
}
