package unit

import (
	"sort"

	"github.com/ethereum-optimism/infra/op-testkit/source"
)

// Suite is an ordered collection of cases. Flattening is append-only:
// merging another suite never reorders entries already present, so the
// final Sort is the only authority over execution order.
type Suite struct {
	cases []*Case
}

// NewSuite returns an empty suite.
func NewSuite() *Suite {
	return &Suite{}
}

// Add appends cases in the order given.
func (s *Suite) Add(cases ...*Case) {
	s.cases = append(s.cases, cases...)
}

// AddSuite appends every case of the other suite, preserving both orders.
func (s *Suite) AddSuite(other *Suite) {
	if other != nil {
		s.cases = append(s.cases, other.cases...)
	}
}

// Len returns the number of cases.
func (s *Suite) Len() int {
	return len(s.cases)
}

// Cases returns the cases in their current order.
func (s *Suite) Cases() []*Case {
	return s.cases
}

// Sort orders the suite by source position: file name first, then line
// number. The sort is stable, so cases with identical positions keep
// their insertion order.
func (s *Suite) Sort() {
	sort.SliceStable(s.cases, func(i, j int) bool {
		return source.Compare(s.cases[i].Location(), s.cases[j].Location()) < 0
	})
}

// Run executes every case in order against the reporter. Cases are
// isolated: one case failing, erroring or skipping never stops the rest.
func (s *Suite) Run(rep Reporter) {
	for _, c := range s.cases {
		c.Run(rep)
	}
}
