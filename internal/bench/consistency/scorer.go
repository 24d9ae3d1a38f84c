package consistency

import (
	"context"
	"fmt"
	"os"
	"regexp"
	"strings"

	"go.uber.org/zap"

	"bench-go/internal/analysis/census"
	"bench-go/internal/analysis/tokenizer"
	"bench-go/internal/bench/model"
)

var (
	snakeCase  = regexp.MustCompile(`^[a-z_][a-z0-9_]*$`)
	camelCase  = regexp.MustCompile(`^[A-Z][a-zA-Z0-9]*$`)
	lowerCamel = regexp.MustCompile(`^[a-z_$][a-zA-Z0-9$]*$`)
	mixedCaps  = regexp.MustCompile(`^[A-Za-z][A-Za-z0-9]*$`)
)

// convention is a per-language naming rule set
type convention struct {
	class     *regexp.Regexp
	classHint string
	function  *regexp.Regexp
	funcHint  string
	variable  *regexp.Regexp
	varHint   string
}

// conventions maps languages to their preferred naming styles. Python and
// Java carry the strictest rules; Go only rejects underscores (MixedCaps).
var conventions = map[string]convention{
	"python": {
		class: camelCase, classHint: "CamelCase",
		function: snakeCase, funcHint: "snake_case",
		variable: snakeCase, varHint: "snake_case",
	},
	"go": {
		class: mixedCaps, classHint: "MixedCaps",
		function: mixedCaps, funcHint: "MixedCaps",
		variable: mixedCaps, varHint: "mixedCaps",
	},
	"java": {
		class: camelCase, classHint: "CamelCase",
		function: lowerCamel, funcHint: "lowerCamelCase",
		variable: lowerCamel, varHint: "lowerCamelCase",
	},
	"javascript": {
		class: camelCase, classHint: "CamelCase",
		function: lowerCamel, funcHint: "lowerCamelCase",
		variable: lowerCamel, varHint: "lowerCamelCase",
	},
	"typescript": {
		class: camelCase, classHint: "CamelCase",
		function: lowerCamel, funcHint: "lowerCamelCase",
		variable: lowerCamel, varHint: "lowerCamelCase",
	},
}

// Scorer rates naming-convention consistency across every language the
// extractor registry supports.
type Scorer struct {
	registry *tokenizer.Registry
	logger   *zap.Logger
}

// New creates a consistency scorer
func New(logger *zap.Logger) (*Scorer, error) {
	registry, err := tokenizer.NewDefaultRegistry()
	if err != nil {
		return nil, err
	}
	return &Scorer{registry: registry, logger: logger}, nil
}

func (s *Scorer) Name() string             { return "Consistency" }
func (s *Scorer) Category() model.Category { return model.CategoryQuality }
func (s *Scorer) Description() string {
	return "Naming convention consistency for classes, functions, and variables"
}

func (s *Scorer) Assess(ctx context.Context, target string) (*model.Result, error) {
	c, err := census.Take(target)
	if err != nil {
		return nil, err
	}
	if len(c.PythonFiles()) == 0 && !s.hasSupportedFiles(c) {
		return model.NewResult(0, []string{"No Python files found."}), nil
	}

	totalIdentifiers := 0
	inconsistent := 0
	var issues []string

	for lang, files := range c.FilesByLang {
		conv, ok := conventions[lang]
		if !ok {
			continue
		}
		extractor, ok := s.registry.Get(lang)
		if !ok {
			continue
		}

		for _, file := range files {
			source, err := os.ReadFile(file)
			if err != nil {
				continue
			}
			decls, err := extractor.Extract(ctx, source)
			if err != nil {
				continue // unparsable files are skipped
			}

			for _, decl := range decls {
				// Python dunder methods are exempt by convention
				if lang == "python" && decl.Kind == tokenizer.DeclFunction && strings.HasPrefix(decl.Name, "__") {
					totalIdentifiers++
					continue
				}

				var pattern *regexp.Regexp
				var hint string
				switch decl.Kind {
				case tokenizer.DeclClass:
					pattern, hint = conv.class, conv.classHint
				case tokenizer.DeclFunction:
					pattern, hint = conv.function, conv.funcHint
				default:
					pattern, hint = conv.variable, conv.varHint
				}

				totalIdentifiers++
				if !pattern.MatchString(decl.Name) {
					inconsistent++
					issues = append(issues, fmt.Sprintf("Inconsistent %s name: '%s' should be %s. (%s:%d)",
						decl.Kind, decl.Name, hint, file, decl.Line))
				}
			}
		}
	}

	if totalIdentifiers == 0 {
		return model.NewResult(10, []string{"No relevant names found to check."}), nil
	}

	consistent := totalIdentifiers - inconsistent
	ratio := float64(consistent) / float64(totalIdentifiers)
	score := ratio * 10

	summary := fmt.Sprintf("Naming consistency: %.2f%% (%d/%d consistent)", ratio*100, consistent, totalIdentifiers)
	issues = append([]string{summary}, issues...)

	result := model.NewResult(model.Clamp(score), issues)
	result.SetMetric("total_identifiers", totalIdentifiers)
	result.SetMetric("inconsistent_identifiers", inconsistent)
	return result, nil
}

func (s *Scorer) hasSupportedFiles(c *census.Census) bool {
	for lang := range c.FilesByLang {
		if _, ok := conventions[lang]; ok {
			return true
		}
	}
	return false
}
