// Package stats provides the metric accumulator shared by the walker and the reports.
package stats

import (
	"math"
	"sort"
)

// Stats maps a metric name to its accumulated value.
//
// Values are combined by plain summation. Metrics that are averages at file level
// therefore become sums of per-file averages once files and dependencies are merged.
type Stats map[string]float64

// New returns an empty Stats, the identity for Combine.
func New() Stats {
	return make(Stats)
}

// AddOrInsert adds value to the existing entry for name or creates it.
func (s Stats) AddOrInsert(name string, value float64) {
	s[name] += value
}

// Combine adds every entry of other into s.
func (s Stats) Combine(other Stats) {
	for name, value := range other {
		s[name] += value
	}
}

// Sum returns a new Stats holding the per-key sum of a and b. Neither input is modified.
func Sum(a, b Stats) Stats {
	out := make(Stats, len(a))
	out.Combine(a)
	out.Combine(b)
	return out
}

// Clone returns an independent copy of s.
func (s Stats) Clone() Stats {
	out := make(Stats, len(s))
	for name, value := range s {
		out[name] = value
	}
	return out
}

// Get returns the value for name and whether it is present.
func (s Stats) Get(name string) (float64, bool) {
	v, ok := s[name]
	return v, ok
}

// Keys returns metric names in sorted order.
func (s Stats) Keys() []string {
	keys := make([]string, 0, len(s))
	for name := range s {
		keys = append(keys, name)
	}
	sort.Strings(keys)
	return keys
}

// Equal reports whether s and other hold the same keys with values within tolerance.
// A zero tolerance requires exact equality.
func (s Stats) Equal(other Stats, tolerance float64) bool {
	if len(s) != len(other) {
		return false
	}
	for name, v := range s {
		o, ok := other[name]
		if !ok {
			return false
		}
		if tolerance == 0 {
			if v != o {
				return false
			}
			continue
		}
		if math.Abs(v-o) > tolerance {
			return false
		}
	}
	return true
}
