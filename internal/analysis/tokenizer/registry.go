package tokenizer

// Registry manages declaration extractors for different languages
type Registry struct {
	extractors map[string]*Extractor
	extensions map[string]string // file extension -> language
}

// NewRegistry creates an empty registry
func NewRegistry() *Registry {
	return &Registry{
		extractors: make(map[string]*Extractor),
		extensions: make(map[string]string),
	}
}

// NewDefaultRegistry creates a registry with all supported languages
func NewDefaultRegistry() (*Registry, error) {
	r := NewRegistry()

	constructors := []struct {
		build func() (*Extractor, error)
		exts  []string
	}{
		{NewPythonExtractor, []string{".py"}},
		{NewGoExtractor, []string{".go"}},
		{NewJavaExtractor, []string{".java"}},
		{NewJavaScriptExtractor, []string{".js", ".jsx"}},
		{NewTypeScriptExtractor, []string{".ts", ".tsx"}},
	}

	for _, c := range constructors {
		extractor, err := c.build()
		if err != nil {
			return nil, err
		}
		r.Register(extractor, c.exts)
	}
	return r, nil
}

// Register adds an extractor and maps its file extensions
func (r *Registry) Register(extractor *Extractor, extensions []string) {
	r.extractors[extractor.Language()] = extractor
	for _, ext := range extensions {
		r.extensions[ext] = extractor.Language()
	}
}

// Get returns the extractor for a language
func (r *Registry) Get(language string) (*Extractor, bool) {
	e, ok := r.extractors[language]
	return e, ok
}

// GetByExtension returns the extractor for a file extension
func (r *Registry) GetByExtension(ext string) (*Extractor, bool) {
	language, ok := r.extensions[ext]
	if !ok {
		return nil, false
	}
	return r.Get(language)
}

// SupportedLanguages lists all registered languages
func (r *Registry) SupportedLanguages() []string {
	languages := make([]string, 0, len(r.extractors))
	for lang := range r.extractors {
		languages = append(languages, lang)
	}
	return languages
}
