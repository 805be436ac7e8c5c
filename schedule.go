package burrow

import "github.com/yohamta/donburi"

// System is a function run against the world once per pass.
type System func(w donburi.World)

// Criteria decides whether a SystemSet runs in the current pass.
type Criteria func(w donburi.World) bool

// SystemSet is an ordered group of systems sharing run criteria. The systems
// run in insertion order when every criteria returns true.
type SystemSet struct {
	systems  []System
	criteria []Criteria
}

// NewSystemSet returns an empty set.
func NewSystemSet() *SystemSet {
	return &SystemSet{}
}

// WithSystem appends sys and returns the set for chaining.
func (s *SystemSet) WithSystem(sys System) *SystemSet {
	s.systems = append(s.systems, sys)
	return s
}

// WithRunCriteria adds a criteria and returns the set for chaining.
func (s *SystemSet) WithRunCriteria(c Criteria) *SystemSet {
	s.criteria = append(s.criteria, c)
	return s
}

// Len returns the number of systems in the set.
func (s *SystemSet) Len() int { return len(s.systems) }

// Run evaluates the criteria, then runs the systems if all of them passed.
func (s *SystemSet) Run(w donburi.World) {
	for _, c := range s.criteria {
		if !c(w) {
			return
		}
	}
	for _, sys := range s.systems {
		sys(w)
	}
}
