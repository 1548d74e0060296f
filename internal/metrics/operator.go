// Package metrics defines the operator set that turns a syntax tree into named measurements.
//
// Every operator performs its own full walk over the tree and is independent of the
// others, so the set can be evaluated in any order.
package metrics

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/dbsmedya/astcollect/internal/stats"
	"github.com/dbsmedya/astcollect/internal/syntax"
)

// ErrUnknownOperator is returned by Select for names missing from the registry.
var ErrUnknownOperator = errors.New("unknown operator")

// Input is what an operator sees for one source file.
type Input struct {
	Tree      *syntax.Tree
	Benchmark string
}

// Operator computes one scalar measurement over a syntax tree.
type Operator interface {
	// Name is the registry name used in configuration, e.g. "count_nodes".
	Name() string
	// Metric is the key the value is accumulated under, e.g. "node_count".
	Metric() string
	Evaluate(in Input) float64
}

// Measurement is one (metric, value) pair.
type Measurement struct {
	Metric string
	Value  float64
}

type treeOperator struct {
	name   string
	metric string
	fn     func(*syntax.Tree) float64
}

func (o treeOperator) Name() string   { return o.name }
func (o treeOperator) Metric() string { return o.metric }

func (o treeOperator) Evaluate(in Input) float64 {
	return o.fn(in.Tree)
}

// registry is the fixed operator order.
var registry = []Operator{
	treeOperator{"count_nodes", "node_count", CountNodes},
	treeOperator{"fn_avg_depth", "fn_avg_depth", FnAvgDepth},
	treeOperator{"avg_args", "avg_args", AvgArgs},
	treeOperator{"macro_count", "macro", MacroCount},
	treeOperator{"field_count", "fields", FieldCount},
	treeOperator{"struct_methods", "struct_methods", StructMethods},
	treeOperator{"parallel_calls", "parallel_calls", ParallelCalls},
	treeOperator{"file_number", "file_number", FileNumber},
}

// Default returns the full operator set in registry order.
func Default() []Operator {
	ops := make([]Operator, len(registry))
	copy(ops, registry)
	return ops
}

// Names returns the registry names in order.
func Names() []string {
	names := make([]string, len(registry))
	for i, op := range registry {
		names[i] = op.Name()
	}
	return names
}

// Select returns the operators named in names, kept in registry order.
// An empty list selects the full set.
func Select(names []string) ([]Operator, error) {
	if len(names) == 0 {
		return Default(), nil
	}

	wanted := make(map[string]bool, len(names))
	for _, name := range names {
		wanted[name] = true
	}

	var ops []Operator
	for _, op := range registry {
		if wanted[op.Name()] {
			ops = append(ops, op)
			delete(wanted, op.Name())
		}
	}

	if len(wanted) > 0 {
		unknown := make([]string, 0, len(wanted))
		for name := range wanted {
			unknown = append(unknown, name)
		}
		sort.Strings(unknown)
		return nil, fmt.Errorf("%w: %s (known: %s)", ErrUnknownOperator,
			strings.Join(unknown, ", "), strings.Join(Names(), ", "))
	}

	return ops, nil
}

// Evaluate runs every operator over in.
func Evaluate(ops []Operator, in Input) []Measurement {
	out := make([]Measurement, len(ops))
	for i, op := range ops {
		out[i] = Measurement{Metric: op.Metric(), Value: op.Evaluate(in)}
	}
	return out
}

// Apply runs every operator over in and accumulates the results into s.
func Apply(ops []Operator, in Input, s stats.Stats) {
	for _, m := range Evaluate(ops, in) {
		s.AddOrInsert(m.Metric, m.Value)
	}
}
