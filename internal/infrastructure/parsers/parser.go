// Package parsers reads family documents and member rosters from
// external files.
package parsers

import (
	"io"
	"path/filepath"
	"slices"
	"strings"

	"github.com/ersonp/lineage/internal/domain/entities"
)

// RawMember is a member as it appears in an input file, before validation.
type RawMember struct {
	ID           int64    `json:"id" yaml:"id"`
	Name         string   `json:"name" yaml:"name"`
	Relationship string   `json:"relationship" yaml:"relationship"`
	Status       string   `json:"status" yaml:"status"`
	BirthDate    string   `json:"birthDate" yaml:"birthDate"`
	DeathDate    string   `json:"deathDate" yaml:"deathDate"`
	Generation   *int     `json:"generation" yaml:"generation"` // Pointer to distinguish 0 from unset
	Side         string   `json:"side" yaml:"side"`
	Tags         []string `json:"tags" yaml:"tags"`
	Avatar       string   `json:"avatar" yaml:"avatar"`
	Location     string   `json:"location" yaml:"location"`
	Occupation   string   `json:"occupation" yaml:"occupation"`
	Description  string   `json:"description" yaml:"description"`
	LineNum      int      `json:"-" yaml:"-"` // Position in the source (set by parser)
}

// RawConnection is a relationship as it appears in an input file.
// Annotation is the legacy name of Note.
type RawConnection struct {
	ID         string  `json:"id" yaml:"id"`
	Members    []int64 `json:"members" yaml:"members"`
	Link       string  `json:"link" yaml:"link"`
	Type       string  `json:"type" yaml:"type"`
	Status     string  `json:"status" yaml:"status"`
	Note       string  `json:"note" yaml:"note"`
	Annotation string  `json:"annotation" yaml:"annotation"`
	LineNum    int     `json:"-" yaml:"-"`
}

// RawDocument is a parsed input file. A nil slice means the array was
// absent from the input, which differs from an empty array.
type RawDocument struct {
	Members      *[]RawMember     `json:"members" yaml:"members"`
	Connections  *[]RawConnection `json:"connections" yaml:"connections"`
	LastMemberID int64            `json:"lastMemberId" yaml:"lastMemberId"`
}

// Parser defines the interface for parsing family data from various formats.
type Parser interface {
	Parse(r io.Reader) (*RawDocument, error)
}

// ForFormat returns the appropriate parser for the given format.
// Supported formats: "json", "yaml", "csv".
func ForFormat(format string) Parser {
	switch strings.ToLower(format) {
	case "json":
		return &JSONParser{}
	case "yaml", "yml":
		return &YAMLParser{}
	case "csv":
		return &CSVParser{}
	default:
		return nil
	}
}

// ForFile returns the appropriate parser based on file extension.
func ForFile(filename string) Parser {
	ext := strings.TrimPrefix(strings.ToLower(filepath.Ext(filename)), ".")
	if ext == "" {
		return nil
	}
	return ForFormat(ext)
}

// normalize numbers entries and rewrites legacy connection fields:
// a link kind stored in type moves to link, "Parent-Child" becomes
// "Parent", a status that merely repeats the link kind is dropped and
// annotation becomes note.
func (d *RawDocument) normalize() {
	if d.Members != nil {
		for i := range *d.Members {
			(*d.Members)[i].LineNum = i + 1
		}
	}
	if d.Connections == nil {
		return
	}
	for i := range *d.Connections {
		c := &(*d.Connections)[i]
		c.LineNum = i + 1

		if c.Link == "" {
			if kind, ok := entities.ParseLinkKind(c.Type); ok {
				c.Link = string(kind)
				c.Type = ""
			}
		} else if kind, ok := entities.ParseLinkKind(c.Link); ok {
			c.Link = string(kind)
		}
		if kind, ok := entities.ParseLinkKind(c.Status); ok && string(kind) == c.Link &&
			!slices.Contains(entities.LinkStatuses, c.Status) {
			c.Status = ""
		}
		if c.Note == "" {
			c.Note = c.Annotation
		}
		c.Annotation = ""
	}
}
