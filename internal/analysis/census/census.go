package census

import (
	"bufio"
	"os"
	"path/filepath"
	"strings"

	"bench-go/internal/bench/model"
)

// extLanguages maps file extensions to language identifiers
var extLanguages = map[string]string{
	".c":    "c",
	".h":    "c",
	".cpp":  "cpp",
	".hpp":  "cpp",
	".cc":   "cpp",
	".cxx":  "cpp",
	".cs":   "csharp",
	".m":    "objective-c",
	".mm":   "objective-cpp",
	".go":   "go",
	".rs":   "rust",
	".java": "java",
	".kt":   "kotlin",
	".js":   "javascript",
	".jsx":  "javascript",
	".ts":   "typescript",
	".tsx":  "typescript",
	".py":   "python",
	".html": "html",
	".css":  "css",
	".scss": "css",
}

// skipDirs are directory names excluded from every walk
var skipDirs = map[string]bool{
	".git":         true,
	".hg":          true,
	".svn":         true,
	".venv":        true,
	"venv":         true,
	"node_modules": true,
	"__pycache__":  true,
	"build":        true,
	"dist":         true,
	".tox":         true,
}

// Census summarizes the source files of a codebase
type Census struct {
	Root        string
	FilesByLang map[string][]string
	NonBlankLOC int
}

// Take walks the codebase rooted at path, classifying files by language and
// counting non-blank lines across Python sources.
func Take(path string) (*Census, error) {
	c := &Census{
		Root:        path,
		FilesByLang: make(map[string][]string),
	}

	err := filepath.WalkDir(path, func(p string, d os.DirEntry, err error) error {
		if err != nil {
			return nil // unreadable entries are skipped, not fatal
		}
		if d.IsDir() {
			if skipDirs[d.Name()] {
				return filepath.SkipDir
			}
			return nil
		}
		lang, ok := extLanguages[strings.ToLower(filepath.Ext(p))]
		if !ok {
			return nil
		}
		c.FilesByLang[lang] = append(c.FilesByLang[lang], p)
		if lang == "python" {
			if n, err := countNonBlankLines(p); err == nil {
				c.NonBlankLOC += n
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return c, nil
}

// PythonFiles returns all discovered Python source files
func (c *Census) PythonFiles() []string {
	return c.FilesByLang["python"]
}

// Languages returns the set of languages present in the codebase
func (c *Census) Languages() []string {
	langs := make([]string, 0, len(c.FilesByLang))
	for lang := range c.FilesByLang {
		langs = append(langs, lang)
	}
	return langs
}

// SizeBucket classifies the codebase by its non-blank Python line count
func (c *Census) SizeBucket() model.SizeBucket {
	switch {
	case c.NonBlankLOC < 100:
		return model.BucketSmall
	case c.NonBlankLOC < 1000:
		return model.BucketMedium
	default:
		return model.BucketLarge
	}
}

// PythonFiles is a convenience wrapper for callers that only need the file
// list and not the full census.
func PythonFiles(path string) ([]string, error) {
	c, err := Take(path)
	if err != nil {
		return nil, err
	}
	return c.PythonFiles(), nil
}

func countNonBlankLines(path string) (int, error) {
	f, err := os.Open(path)
	if err != nil {
		return 0, err
	}
	defer f.Close()

	count := 0
	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		if strings.TrimSpace(scanner.Text()) != "" {
			count++
		}
	}
	return count, scanner.Err()
}
