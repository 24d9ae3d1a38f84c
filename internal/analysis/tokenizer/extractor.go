package tokenizer

import (
	"context"
	"fmt"
	"sync"

	tree_sitter "github.com/tree-sitter/go-tree-sitter"
)

// DeclKind classifies a declared name
type DeclKind string

const (
	DeclClass    DeclKind = "class"
	DeclFunction DeclKind = "function"
	DeclVariable DeclKind = "variable"
)

// Decl is a declared identifier with its source location
type Decl struct {
	Kind DeclKind
	Name string
	Line int
}

// Extractor pulls declared names (classes, functions, variables) out of
// source code for a single language. Node kinds come from the language
// tables in the per-language constructors.
type Extractor struct {
	parser   *tree_sitter.Parser
	language *tree_sitter.Language
	lang     string

	// named declarations: node kind -> decl kind, name taken from the
	// node's "name" field
	namedDecls map[string]DeclKind
	// assignment-like node kinds whose "left" field holds store targets
	assignKinds map[string]bool

	mu sync.Mutex // tree-sitter parsers are not thread-safe
}

func newExtractor(lang string, language *tree_sitter.Language, namedDecls map[string]DeclKind, assignKinds map[string]bool) (*Extractor, error) {
	parser := tree_sitter.NewParser()
	if err := parser.SetLanguage(language); err != nil {
		return nil, fmt.Errorf("failed to set %s language: %w", lang, err)
	}
	return &Extractor{
		parser:      parser,
		language:    language,
		lang:        lang,
		namedDecls:  namedDecls,
		assignKinds: assignKinds,
	}, nil
}

// Language returns the language this extractor handles
func (e *Extractor) Language() string {
	return e.lang
}

// Extract parses source and returns all declared names
func (e *Extractor) Extract(ctx context.Context, source []byte) ([]Decl, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	tree := e.parser.Parse(source, nil)
	if tree == nil {
		return nil, fmt.Errorf("failed to parse %s source", e.lang)
	}
	defer tree.Close()

	var decls []Decl
	e.traverse(tree.RootNode(), source, &decls)
	return decls, nil
}

func (e *Extractor) traverse(node *tree_sitter.Node, source []byte, decls *[]Decl) {
	if node == nil {
		return
	}

	if kind, ok := e.namedDecls[node.Kind()]; ok {
		if name := node.ChildByFieldName("name"); name != nil {
			*decls = append(*decls, Decl{
				Kind: kind,
				Name: name.Utf8Text(source),
				Line: int(name.StartPosition().Row) + 1,
			})
		}
	} else if e.assignKinds[node.Kind()] {
		collectIdentifiers(node.ChildByFieldName("left"), source, decls)
	}

	for i := uint(0); i < node.ChildCount(); i++ {
		e.traverse(node.Child(i), source, decls)
	}
}

func collectIdentifiers(node *tree_sitter.Node, source []byte, decls *[]Decl) {
	if node == nil {
		return
	}
	if node.Kind() == "identifier" {
		*decls = append(*decls, Decl{
			Kind: DeclVariable,
			Name: node.Utf8Text(source),
			Line: int(node.StartPosition().Row) + 1,
		})
		return
	}
	for i := uint(0); i < node.NamedChildCount(); i++ {
		collectIdentifiers(node.NamedChild(i), source, decls)
	}
}
