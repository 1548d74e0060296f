// Package report persists collection results and renders them as metric tables.
package report

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/elliotchance/orderedmap/v2"

	"github.com/dbsmedya/astcollect/internal/driver"
	"github.com/dbsmedya/astcollect/internal/stats"
)

// DefaultFileName is the results document written to the output directory.
const DefaultFileName = "src-code-analyze-results.json"

// Document maps benchmark names to their aggregated Stats, in insertion order.
// It serializes as a JSON object whose keys keep that order.
type Document struct {
	entries *orderedmap.OrderedMap[string, stats.Stats]
}

// NewDocument creates an empty document.
func NewDocument() *Document {
	return &Document{entries: orderedmap.NewOrderedMap[string, stats.Stats]()}
}

// FromResults builds a document from driver results, keeping their order.
func FromResults(results []driver.Result) *Document {
	doc := NewDocument()
	for _, r := range results {
		doc.Set(r.Benchmark, r.Stats)
	}
	return doc
}

// Set stores s under name. Re-setting a name keeps its original position.
func (d *Document) Set(name string, s stats.Stats) {
	d.entries.Set(name, s)
}

// Get returns the Stats stored for name.
func (d *Document) Get(name string) (stats.Stats, bool) {
	return d.entries.Get(name)
}

// Len returns the number of benchmarks.
func (d *Document) Len() int {
	return d.entries.Len()
}

// Names returns the benchmark names in order.
func (d *Document) Names() []string {
	names := make([]string, 0, d.entries.Len())
	for el := d.entries.Front(); el != nil; el = el.Next() {
		names = append(names, el.Key)
	}
	return names
}

// Metrics returns the sorted union of metric names across all benchmarks.
func (d *Document) Metrics() []string {
	seen := make(map[string]struct{})
	var names []string
	for el := d.entries.Front(); el != nil; el = el.Next() {
		for name := range el.Value {
			if _, ok := seen[name]; !ok {
				seen[name] = struct{}{}
				names = append(names, name)
			}
		}
	}
	sort.Strings(names)
	return names
}

// MarshalJSON writes the document as an object in insertion order.
func (d *Document) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for el := d.entries.Front(); el != nil; el = el.Next() {
		if el != d.entries.Front() {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(el.Key)
		if err != nil {
			return nil, err
		}
		value, err := json.Marshal(el.Value)
		if err != nil {
			return nil, fmt.Errorf("benchmark %s: %w", el.Key, err)
		}
		buf.Write(key)
		buf.WriteByte(':')
		buf.Write(value)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// UnmarshalJSON reads an object of benchmark -> Stats, keeping the key order.
func (d *Document) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))

	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return fmt.Errorf("results document must be a JSON object")
	}

	entries := orderedmap.NewOrderedMap[string, stats.Stats]()
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return err
		}
		name, ok := tok.(string)
		if !ok {
			return fmt.Errorf("unexpected token %v", tok)
		}

		var s stats.Stats
		if err := dec.Decode(&s); err != nil {
			return fmt.Errorf("benchmark %s: %w", name, err)
		}
		if s == nil {
			s = stats.New()
		}
		entries.Set(name, s)
	}

	if _, err := dec.Token(); err != nil {
		return err
	}

	d.entries = entries
	return nil
}

// WriteFile writes the document as indented JSON, creating the parent directory.
func (d *Document) WriteFile(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	raw, err := json.Marshal(d)
	if err != nil {
		return fmt.Errorf("failed to encode results: %w", err)
	}
	var pretty bytes.Buffer
	if err := json.Indent(&pretty, raw, "", "  "); err != nil {
		return fmt.Errorf("failed to encode results: %w", err)
	}
	pretty.WriteByte('\n')

	if err := os.WriteFile(path, pretty.Bytes(), 0o644); err != nil {
		return fmt.Errorf("failed to write results: %w", err)
	}
	return nil
}

// ReadFile loads a document written by WriteFile.
func ReadFile(path string) (*Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read results: %w", err)
	}

	doc := NewDocument()
	if err := json.Unmarshal(data, doc); err != nil {
		return nil, fmt.Errorf("failed to decode %s: %w", path, err)
	}
	return doc, nil
}
