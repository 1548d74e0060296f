package report

import (
	"fmt"
	"sort"
	"strings"

	"github.com/elliotchance/orderedmap/v2"
)

// SortBy selects the order of entries within a metric table.
type SortBy string

const (
	SortByValue SortBy = "value" // ascending numeric value
	SortByName  SortBy = "name"  // case-insensitive benchmark name
)

// ParseSortBy validates a sort key. The empty string selects SortByValue.
func ParseSortBy(s string) (SortBy, error) {
	switch SortBy(strings.ToLower(s)) {
	case "", SortByValue:
		return SortByValue, nil
	case SortByName:
		return SortByName, nil
	default:
		return "", fmt.Errorf("invalid sort key %q (expected value or name)", s)
	}
}

// Entry is one benchmark's value for a metric.
type Entry struct {
	Benchmark string
	Value     float64
}

// Pivot turns the benchmark-major document into metric -> entries. Metrics are ordered
// by name. Ties keep document order.
func Pivot(doc *Document, by SortBy) *orderedmap.OrderedMap[string, []Entry] {
	out := orderedmap.NewOrderedMap[string, []Entry]()

	for _, metric := range doc.Metrics() {
		var entries []Entry
		for _, name := range doc.Names() {
			s, _ := doc.Get(name)
			if v, ok := s[metric]; ok {
				entries = append(entries, Entry{Benchmark: name, Value: v})
			}
		}
		sortEntries(entries, by)
		out.Set(metric, entries)
	}

	return out
}

func sortEntries(entries []Entry, by SortBy) {
	switch by {
	case SortByName:
		sort.SliceStable(entries, func(i, j int) bool {
			return strings.ToLower(entries[i].Benchmark) < strings.ToLower(entries[j].Benchmark)
		})
	default:
		sort.SliceStable(entries, func(i, j int) bool {
			return entries[i].Value < entries[j].Value
		})
	}
}

// Chunk splits entries into rows of at most size entries. size below 1 is treated as 1.
func Chunk(entries []Entry, size int) [][]Entry {
	if size < 1 {
		size = 1
	}
	var rows [][]Entry
	for start := 0; start < len(entries); start += size {
		end := start + size
		if end > len(entries) {
			end = len(entries)
		}
		rows = append(rows, entries[start:end])
	}
	return rows
}
