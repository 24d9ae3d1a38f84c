package tokenizer

import (
	tree_sitter "github.com/tree-sitter/go-tree-sitter"
	golang "github.com/tree-sitter/tree-sitter-go/bindings/go"
	java "github.com/tree-sitter/tree-sitter-java/bindings/go"
	javascript "github.com/tree-sitter/tree-sitter-javascript/bindings/go"
	python "github.com/tree-sitter/tree-sitter-python/bindings/go"
	typescript "github.com/tree-sitter/tree-sitter-typescript/bindings/go"
)

// NewPythonExtractor creates an extractor for Python source code
func NewPythonExtractor() (*Extractor, error) {
	return newExtractor("python", tree_sitter.NewLanguage(python.Language()),
		map[string]DeclKind{
			"class_definition":    DeclClass,
			"function_definition": DeclFunction,
		},
		map[string]bool{
			"assignment": true,
		})
}

// NewGoExtractor creates an extractor for Go source code
func NewGoExtractor() (*Extractor, error) {
	return newExtractor("go", tree_sitter.NewLanguage(golang.Language()),
		map[string]DeclKind{
			"type_spec":            DeclClass,
			"function_declaration": DeclFunction,
			"method_declaration":   DeclFunction,
		},
		map[string]bool{
			"short_var_declaration": true,
		})
}

// NewJavaExtractor creates an extractor for Java source code
func NewJavaExtractor() (*Extractor, error) {
	return newExtractor("java", tree_sitter.NewLanguage(java.Language()),
		map[string]DeclKind{
			"class_declaration":     DeclClass,
			"interface_declaration": DeclClass,
			"enum_declaration":      DeclClass,
			"method_declaration":    DeclFunction,
			"variable_declarator":   DeclVariable,
		},
		nil)
}

// NewJavaScriptExtractor creates an extractor for JavaScript source code
func NewJavaScriptExtractor() (*Extractor, error) {
	return newExtractor("javascript", tree_sitter.NewLanguage(javascript.Language()),
		map[string]DeclKind{
			"class_declaration":    DeclClass,
			"function_declaration": DeclFunction,
			"method_definition":    DeclFunction,
			"variable_declarator":  DeclVariable,
		},
		nil)
}

// NewTypeScriptExtractor creates an extractor for TypeScript source code
func NewTypeScriptExtractor() (*Extractor, error) {
	return newExtractor("typescript", tree_sitter.NewLanguage(typescript.LanguageTypescript()),
		map[string]DeclKind{
			"class_declaration":      DeclClass,
			"interface_declaration":  DeclClass,
			"enum_declaration":       DeclClass,
			"type_alias_declaration": DeclClass,
			"function_declaration":   DeclFunction,
			"method_definition":      DeclFunction,
			"variable_declarator":    DeclVariable,
		},
		nil)
}
