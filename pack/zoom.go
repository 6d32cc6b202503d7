package pack

import (
	"maps"
	"slices"
)

// zoomSet tracks the distinct zoom levels seen during one Build.
// The zero value is an empty set; min and max of an empty set are 0.
type zoomSet struct {
	levels map[uint32]struct{}
	lo, hi uint32
}

func (s *zoomSet) add(z uint32) {
	if s.levels == nil {
		s.levels = make(map[uint32]struct{})
		s.lo, s.hi = z, z
	}
	s.levels[z] = struct{}{}
	s.lo, s.hi = min(s.lo, z), max(s.hi, z)
}

func (s *zoomSet) min() uint32 { return s.lo }

func (s *zoomSet) max() uint32 { return s.hi }

func (s *zoomSet) sorted() []uint32 {
	return slices.Sorted(maps.Keys(s.levels))
}
