package parsers

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// CSVParser parses a member roster in the CSV export layout.
// The result carries members only; Connections is always nil.
type CSVParser struct{}

// Parse reads CSV from the reader and returns the parsed members.
// Expected columns: id, name, relationship, status, birthDate, deathDate,
// generation, side, tags, description. Only name is required.
func (p *CSVParser) Parse(r io.Reader) (*RawDocument, error) {
	reader := csv.NewReader(r)

	colIndex, err := p.readHeader(reader)
	if err != nil {
		return nil, err
	}

	members, err := p.readRecords(reader, colIndex)
	if err != nil {
		return nil, err
	}
	return &RawDocument{Members: &members}, nil
}

// readHeader reads and validates the CSV header row.
func (p *CSVParser) readHeader(reader *csv.Reader) (map[string]int, error) {
	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("reading CSV header: %w", err)
	}

	colIndex := make(map[string]int)
	for i, col := range header {
		colIndex[strings.TrimSpace(col)] = i
	}

	if _, ok := colIndex["name"]; !ok {
		return nil, fmt.Errorf("missing required column: name")
	}

	return colIndex, nil
}

// readRecords reads all data rows and converts them to RawMembers.
func (p *CSVParser) readRecords(reader *csv.Reader, colIndex map[string]int) ([]RawMember, error) {
	members := []RawMember{}
	lineNum := 1 // Header is line 1

	for {
		lineNum++
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", lineNum, err)
		}

		member, err := p.parseRecord(record, colIndex, lineNum)
		if err != nil {
			return nil, err
		}
		members = append(members, member)
	}

	return members, nil
}

// parseRecord converts a CSV record to a RawMember.
func (p *CSVParser) parseRecord(record []string, colIndex map[string]int, lineNum int) (RawMember, error) {
	member := RawMember{
		Name:         getColumn(record, colIndex, "name"),
		Relationship: getColumn(record, colIndex, "relationship"),
		Status:       getColumn(record, colIndex, "status"),
		BirthDate:    getColumn(record, colIndex, "birthDate"),
		DeathDate:    getColumn(record, colIndex, "deathDate"),
		Side:         getColumn(record, colIndex, "side"),
		Tags:         splitTags(getColumn(record, colIndex, "tags")),
		Description:  getColumn(record, colIndex, "description"),
		LineNum:      lineNum,
	}

	if idStr := getColumn(record, colIndex, "id"); idStr != "" {
		id, err := strconv.ParseInt(idStr, 10, 64)
		if err != nil {
			return RawMember{}, fmt.Errorf("line %d: invalid id %q: %w", lineNum, idStr, err)
		}
		member.ID = id
	}

	if genStr := getColumn(record, colIndex, "generation"); genStr != "" {
		gen, err := strconv.Atoi(genStr)
		if err != nil {
			return RawMember{}, fmt.Errorf("line %d: invalid generation %q: %w", lineNum, genStr, err)
		}
		member.Generation = &gen
	}

	return member, nil
}

// splitTags splits the "; " joined tag column.
func splitTags(s string) []string {
	var tags []string
	for _, tag := range strings.Split(s, ";") {
		if tag = strings.TrimSpace(tag); tag != "" {
			tags = append(tags, tag)
		}
	}
	return tags
}

// getColumn safely retrieves a column value from a record.
func getColumn(record []string, colIndex map[string]int, col string) string {
	if idx, ok := colIndex[col]; ok && idx < len(record) {
		return strings.TrimSpace(record[idx])
	}
	return ""
}
