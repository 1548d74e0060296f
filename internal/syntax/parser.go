package syntax

import (
	"context"
	"errors"
	"fmt"
	"unicode/utf8"

	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/rust"
)

// DefaultMaxFileSize is the largest input the parser accepts (10MB).
const DefaultMaxFileSize = 10 * 1024 * 1024

// Sentinel errors for parse failures. All of them are recoverable per file.
var (
	// ErrParseFailed indicates tree-sitter produced no usable tree or a tree with errors.
	ErrParseFailed = errors.New("parse failed")

	// ErrFileTooLarge indicates the input exceeds the configured size limit.
	ErrFileTooLarge = errors.New("file exceeds maximum size limit")

	// ErrInvalidContent indicates the input is not valid UTF-8.
	ErrInvalidContent = errors.New("invalid content")
)

// Parser turns source bytes into a Tree.
type Parser interface {
	Parse(ctx context.Context, src []byte) (*Tree, error)
}

// Option configures a RustParser.
type Option func(*RustParser)

// WithMaxFileSize sets the maximum input size in bytes. Non-positive values are ignored.
func WithMaxFileSize(bytes int64) Option {
	return func(p *RustParser) {
		if bytes > 0 {
			p.maxFileSize = bytes
		}
	}
}

// RustParser parses Rust source with the tree-sitter Rust grammar.
//
// Each Parse call creates its own tree-sitter parser, so a RustParser is safe for
// concurrent use.
type RustParser struct {
	maxFileSize int64
}

// NewRustParser creates a RustParser with the given options.
func NewRustParser(opts ...Option) *RustParser {
	p := &RustParser{maxFileSize: DefaultMaxFileSize}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Parse parses src. Trees containing syntax errors are rejected with ErrParseFailed.
// The returned Tree must be closed by the caller.
func (p *RustParser) Parse(ctx context.Context, src []byte) (*Tree, error) {
	if int64(len(src)) > p.maxFileSize {
		return nil, fmt.Errorf("%w: size %d exceeds limit %d", ErrFileTooLarge, len(src), p.maxFileSize)
	}

	if !utf8.Valid(src) {
		return nil, fmt.Errorf("%w: content is not valid UTF-8", ErrInvalidContent)
	}

	parser := sitter.NewParser()
	defer parser.Close()
	parser.SetLanguage(rust.GetLanguage())

	tree, err := parser.ParseCtx(ctx, nil, src)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrParseFailed, err)
	}
	if tree == nil {
		return nil, fmt.Errorf("%w: tree-sitter returned no tree", ErrParseFailed)
	}

	root := tree.RootNode()
	if root == nil || root.HasError() {
		tree.Close()
		return nil, fmt.Errorf("%w: source contains syntax errors", ErrParseFailed)
	}

	return &Tree{tree: tree, src: src}, nil
}
