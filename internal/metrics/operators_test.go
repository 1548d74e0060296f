package metrics

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCountNodes(t *testing.T) {
	tests := []struct {
		name     string
		src      string
		expected float64
	}{
		{"empty file is a lone root", "", 1},
		{"empty function", "fn f() {}", 10},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, CountNodes(parseRust(t, tt.src)))
		})
	}
}

func TestFileNumber(t *testing.T) {
	assert.Equal(t, 1.0, FileNumber(parseRust(t, "struct S;")))
}

func TestFnAvgDepth(t *testing.T) {
	t.Run("no functions", func(t *testing.T) {
		assert.Equal(t, 0.0, FnAvgDepth(parseRust(t, "struct S { x: u8 }")))
	})

	t.Run("single empty function", func(t *testing.T) {
		// function_item(1) -> fn, identifier, parameters, block (2) -> (, ), {, } (3)
		assert.InDelta(t, 21.0/9.0, FnAvgDepth(parseRust(t, "fn f() {}")), 1e-9)
	})

	t.Run("averaged across functions", func(t *testing.T) {
		// g adds a parameter node (depth 3) with pattern, colon and type at depth 4:
		// 13 nodes, depth sum 1 + 4*2 + 5*3 + 3*4 = 36.
		got := FnAvgDepth(parseRust(t, "fn f() {}\nfn g(x: u8) {}"))
		assert.InDelta(t, (21.0/9.0+36.0/13.0)/2, got, 1e-9)
	})
}

func TestAvgArgs(t *testing.T) {
	tests := []struct {
		name     string
		src      string
		expected float64
	}{
		{"no functions", "const X: u8 = 1;", 0},
		{"free functions", "fn a(x: u8, y: u8) {}\nfn b() {}", 1},
		{"self parameter counts", "struct S;\nimpl S { fn m(&self, x: u8, y: u8) {} }", 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, AvgArgs(parseRust(t, tt.src)))
		})
	}
}

func TestMacroCount(t *testing.T) {
	t.Run("no macros", func(t *testing.T) {
		assert.Equal(t, 0.0, MacroCount(parseRust(t, "fn main() {}")))
	})

	t.Run("invocations only", func(t *testing.T) {
		got := MacroCount(parseRust(t, `fn main() { println!("a"); }`))
		assert.Equal(t, 2.0, got) // (1+1)/(0+1)
	})

	t.Run("three invocations one definition", func(t *testing.T) {
		src := `
macro_rules! square {
    ($x:expr) => { $x * $x };
}

fn main() {
    println!("a");
    println!("b");
    let _ = square!(2);
}
`
		assert.Equal(t, 2.0, MacroCount(parseRust(t, src)))
	})
}

func TestFieldCount(t *testing.T) {
	tests := []struct {
		name     string
		src      string
		expected float64
	}{
		{"no aggregates", "fn f() {}", 0},
		{"struct and enum", "struct P { x: f64, y: f64 }\nenum E { A, B, C, D }", 3},
		{"unit struct lowers the mean", "struct P { x: f64, y: f64 }\nstruct U;", 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, FieldCount(parseRust(t, tt.src)))
		})
	}
}

func TestStructMethods(t *testing.T) {
	t.Run("no structs", func(t *testing.T) {
		assert.Equal(t, 0.0, StructMethods(parseRust(t, "enum E { A }\nimpl E { fn f() {} }")))
	})

	t.Run("methods attributed to the file", func(t *testing.T) {
		src := `
struct Lonely {
    a: u8,
}

struct Busy;

impl Busy {
    fn one(&self) {}
    fn two(&self) {}
    fn three(&self) {}
}
`
		assert.Equal(t, 1.5, StructMethods(parseRust(t, src)))
	})

	t.Run("two impls", func(t *testing.T) {
		src := `
struct Point {
    x: f64,
    y: f64,
}

impl Point {
    fn new(x: f64, y: f64) -> Point {
        Point { x, y }
    }

    fn distance(&self, other: &Point) -> f64 {
        ((self.x - other.x).powi(2) + (self.y - other.y).powi(2)).sqrt()
    }
}

struct Circle {
    radius: f64,
}

impl Circle {
    fn area(&self) -> f64 {
        3.14 * self.radius * self.radius
    }
}
`
		assert.Equal(t, 1.5, StructMethods(parseRust(t, src)))
	})
}

func TestParallelCalls(t *testing.T) {
	t.Run("reference scenario", func(t *testing.T) {
		src := `
use std::thread;

fn main() {
    thread::spawn(|| {
        println!("Hello from a thread!");
    });

    tokio::spawn(async {
        println!("Hello from a tokio task!");
    });

    async {
        println!("Hello from an async block!");
    };
}
`
		assert.Equal(t, 4.0, ParallelCalls(parseRust(t, src)))
	})

	t.Run("no concurrency", func(t *testing.T) {
		src := `fn main() { let v = vec![1, 2]; println!("{:?}", v); }`
		assert.Equal(t, 0.0, ParallelCalls(parseRust(t, src)))
	})

	t.Run("imported symbol joins the pool", func(t *testing.T) {
		src := `
use tokio::task::spawn_blocking;

fn work() {
    spawn_blocking(|| 1);
}
`
		assert.Equal(t, 1.0, ParallelCalls(parseRust(t, src)))
	})

	t.Run("aliased import keeps only the original path", func(t *testing.T) {
		// use_as_clause children are not scanned, so "go" never joins the pool and
		// only the async block counts.
		src := `
use tokio::spawn as go;

fn work() {
    go(async {});
}
`
		assert.Equal(t, 1.0, ParallelCalls(parseRust(t, src)))
	})

	t.Run("unrelated import is ignored", func(t *testing.T) {
		src := `
use std::sync::mpsc;

fn work() {
    mpsc::channel::<u8>();
}
`
		assert.Equal(t, 0.0, ParallelCalls(parseRust(t, src)))
	})
}

func TestKeywordPool(t *testing.T) {
	pool := newKeywordPool()
	assert.True(t, pool.matches("tokio::spawn"))
	assert.True(t, pool.matches("rayon::join"))
	assert.False(t, pool.matches("thread::spawn"))

	pool.add("thread")
	assert.True(t, pool.matches("thread::spawn"))

	pool.add("")
	assert.False(t, pool.matches("plain"), "empty keyword must not match everything")
}
