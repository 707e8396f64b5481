package services

import (
	"cmp"
	"slices"
	"strings"

	"github.com/ersonp/lineage/internal/domain/entities"
)

// Bucket is one generation row of a layout.
type Bucket struct {
	Generation int
	Members    []entities.Member
}

// Layout is an ordered list of generation buckets. Empty is set when
// there were no members to place at all.
type Layout struct {
	Empty   bool
	Buckets []Bucket
}

// Generations returns the bucket generations in order.
func (l *Layout) Generations() []int {
	gens := make([]int, len(l.Buckets))
	for i := range l.Buckets {
		gens[i] = l.Buckets[i].Generation
	}
	return gens
}

// Bucket returns the bucket for gen.
func (l *Layout) Bucket(gen int) (Bucket, bool) {
	for _, b := range l.Buckets {
		if b.Generation == gen {
			return b, true
		}
	}
	return Bucket{}, false
}

type planConfig struct {
	compare func(a, b entities.Member) int
}

// PlanOption configures Plan.
type PlanOption func(*planConfig)

// WithComparator orders members inside each bucket with cmp. The sort is
// stable, so ties keep their input order.
func WithComparator(cmp func(a, b entities.Member) int) PlanOption {
	return func(c *planConfig) {
		c.compare = cmp
	}
}

// ByName orders members alphabetically, ignoring case.
func ByName(a, b entities.Member) int {
	return cmp.Compare(strings.ToLower(a.Name), strings.ToLower(b.Name))
}

// Plan groups members into one bucket per distinct generation, with
// buckets in ascending generation order. Within a bucket members keep
// their input order unless a comparator is given.
func Plan(members []entities.Member, opts ...PlanOption) Layout {
	if len(members) == 0 {
		return Layout{Empty: true}
	}

	var cfg planConfig
	for _, opt := range opts {
		opt(&cfg)
	}

	index := make(map[int]int)
	var buckets []Bucket
	for i := range members {
		gen := members[i].Generation
		pos, ok := index[gen]
		if !ok {
			pos = len(buckets)
			index[gen] = pos
			buckets = append(buckets, Bucket{Generation: gen})
		}
		buckets[pos].Members = append(buckets[pos].Members, members[i])
	}

	slices.SortFunc(buckets, func(a, b Bucket) int {
		return cmp.Compare(a.Generation, b.Generation)
	})

	if cfg.compare != nil {
		for i := range buckets {
			slices.SortStableFunc(buckets[i].Members, cfg.compare)
		}
	}

	return Layout{Buckets: buckets}
}

// SortedByName returns a copy of members in ByName order.
func SortedByName(members []entities.Member) []entities.Member {
	out := slices.Clone(members)
	slices.SortStableFunc(out, ByName)
	return out
}
