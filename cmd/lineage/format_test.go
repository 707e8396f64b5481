package main

import (
	"bytes"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ersonp/lineage/internal/application/handlers"
	"github.com/ersonp/lineage/internal/domain/entities"
	"github.com/ersonp/lineage/internal/domain/mocks"
	"github.com/ersonp/lineage/internal/domain/services"
	"github.com/ersonp/lineage/internal/infrastructure/config"
)

func TestSplitArgs(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected []string
		wantErr  bool
	}{
		{name: "empty", input: "   ", expected: nil},
		{name: "plain words", input: "member list", expected: []string{"member", "list"}},
		{name: "double quotes", input: `focus "Michael Johnson"`, expected: []string{"focus", "Michael Johnson"}},
		{name: "single quotes", input: `member add 'Tom O"Neil'`, expected: []string{"member", "add", `Tom O"Neil`}},
		{name: "escaped space", input: `export my\ tree.png`, expected: []string{"export", "my tree.png"}},
		{name: "empty quoted word", input: `member update 5 --status ""`, expected: []string{"member", "update", "5", "--status", ""}},
		{name: "tabs and runs of spaces", input: "tree\t  --json", expected: []string{"tree", "--json"}},
		{name: "unterminated", input: `focus "Michael`, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := splitArgs(tt.input)
			if tt.wantErr {
				assert.ErrorIs(t, err, errUnterminatedQuote)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expected, got)
		})
	}
}

func TestFilterFlags_Spec(t *testing.T) {
	tests := []struct {
		name     string
		flags    filterFlags
		expected services.FilterSpec
		wantErr  string
	}{
		{
			name:     "zero",
			expected: services.FilterSpec{},
		},
		{
			name:     "all means unrestricted",
			flags:    filterFlags{side: "All", link: "all"},
			expected: services.FilterSpec{},
		},
		{
			name:  "every field",
			flags: filterFlags{tag: "mil", side: "Paternal", generations: []int{1, 2}, role: "Father", status: "Married", hideDeceased: true, link: "spouse"},
			expected: services.FilterSpec{
				Tag: "mil", Side: entities.SidePaternal, Generations: []int{1, 2}, Role: "Father",
				Status: "Married", HideDeceased: true, Link: entities.LinkSpouse,
			},
		},
		{
			name:    "bad side",
			flags:   filterFlags{side: "north"},
			wantErr: "invalid side",
		},
		{
			name:    "bad link",
			flags:   filterFlags{link: "cousin"},
			wantErr: "invalid link",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			spec, err := tt.flags.spec()
			if tt.wantErr != "" {
				assert.ErrorContains(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expected, spec)
		})
	}
}

func TestFilterFlags_TreeOptionsFocusIgnoresFilter(t *testing.T) {
	flags := filterFlags{side: "north", width: 500}
	opts, err := flags.treeOptions("Leo")
	require.NoError(t, err)
	assert.Equal(t, "Leo", opts.Focus)
	assert.Equal(t, 500.0, opts.ViewportWidth)
	assert.True(t, opts.Filter.IsZero())
}

func TestSplitExportPaths(t *testing.T) {
	data, images := splitExportPaths([]string{"a.json", "b.PNG", "c.yml", "d.csv", "e.svg", "f.pdf", "g"})
	assert.Equal(t, []string{"a.json", "c.yml", "d.csv"}, data)
	assert.Equal(t, []string{"b.PNG", "e.svg", "f.pdf", "g"}, images)
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "short", truncate("short", 10))
	assert.Equal(t, "Robert ...", truncate("Robert Johnson", 10))
	assert.Equal(t, "Zoë", truncate("Zoë", 3))
	assert.Equal(t, "ab", truncate("abcdef", 2))
}

func TestFormatMemberTable(t *testing.T) {
	var buf bytes.Buffer
	formatMemberTable(&buf, nil)
	assert.Equal(t, "No members found.\n", buf.String())

	buf.Reset()
	doc := entities.SampleFamily()
	formatMemberTable(&buf, doc.Members[:2])
	assert.Contains(t, buf.String(), "Robert Johnson")
	assert.Contains(t, buf.String(), "Military, Craftsman")
	assert.Contains(t, buf.String(), "Total: 2 members")
}

func TestFormatHistory(t *testing.T) {
	var buf bytes.Buffer
	formatHistory(&buf, nil)
	assert.Equal(t, "No history recorded.\n", buf.String())

	buf.Reset()
	formatHistory(&buf, []entities.AuditEntry{{
		Action:    entities.ActionMemberUpdated,
		SubjectID: "member:5",
		Details:   map[string]any{"name": "Michael", "fields": 2},
		CreatedAt: time.Date(2024, 5, 1, 9, 30, 0, 0, time.UTC),
	}})
	assert.Equal(t, "2024-05-01 09:30:00  member.updated        member:5  fields=2 name=Michael\n", buf.String())
}

func TestFormatTrees(t *testing.T) {
	var buf bytes.Buffer
	formatTrees(&buf, &config.TreesConfig{})
	assert.Contains(t, buf.String(), "No named trees configured.")

	buf.Reset()
	trees := &config.TreesConfig{}
	trees.Add("white", config.TreeEntry{Key: "tree_white", Description: "Maternal"})
	trees.Add("johnson", config.TreeEntry{Key: "tree_johnson"})
	formatTrees(&buf, trees)

	out := buf.String()
	assert.Less(t, bytes.Index(buf.Bytes(), []byte("johnson")), bytes.Index(buf.Bytes(), []byte("white ")))
	assert.Contains(t, out, "tree_white")
	assert.Contains(t, out, "Maternal")
}

func TestFormatImportResult(t *testing.T) {
	var buf bytes.Buffer
	formatImportResult(&buf, &services.ImportResult{
		Members: 3,
		Skipped: 1,
		Errors:  []services.ImportError{{Line: 4, Message: "invalid side"}},
	}, true)

	out := buf.String()
	assert.Contains(t, out, "Validation errors (1):")
	assert.Contains(t, out, "line 4: invalid side")
	assert.Contains(t, out, "Dry run: 3 members, 0 relationships would be imported, 1 skipped")
}

func TestFormatStats(t *testing.T) {
	stats := handlers.Stats{Members: 12, Relationships: 18, Generations: []int{0, 1, 2, 3}}

	var buf bytes.Buffer
	formatStats(&buf, "default", stats, 3)
	assert.Equal(t, "Tree:          default\n"+
		"Members:       12\n"+
		"Relationships: 18\n"+
		"Generations:   4\n"+
		"Revision:      3\n", buf.String())

	buf.Reset()
	formatStats(&buf, "default", stats, -1)
	assert.NotContains(t, buf.String(), "Revision")
	assert.Contains(t, buf.String(), "Generations:   4\n")
}

func TestFormatTreeJSON(t *testing.T) {
	store := mocks.NewDocumentStore()
	store.Docs[services.DefaultDocumentKey] = entities.SampleFamily()
	family := services.NewFamilyService(store, nil, nil, "")
	require.NoError(t, family.Load(t.Context()))

	tree, err := handlers.NewTreeHandler(family, handlers.TreeSettingsFromConfig(config.Default().Render)).
		HandleTree(handlers.TreeOptions{Focus: "Leo Johnson"})
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, formatTreeJSON(&buf, tree))

	var parsed struct {
		Focus   int64 `json:"focus"`
		Members []struct {
			ID  int64        `json:"id"`
			Box entities.Box `json:"box"`
		} `json:"members"`
		Connections []struct {
			ID   string `json:"id"`
			Path string `json:"path"`
		} `json:"connections"`
	}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &parsed))

	assert.Equal(t, int64(8), parsed.Focus)
	assert.Len(t, parsed.Members, 4)
	for _, m := range parsed.Members {
		assert.Positive(t, m.Box.W)
	}
	for _, c := range parsed.Connections {
		assert.NotEmpty(t, c.ID)
		assert.Regexp(t, `^M `, c.Path)
	}
}
