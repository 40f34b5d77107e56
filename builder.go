package pageindex

import (
	"path/filepath"
	"sort"
	"strings"
	"sync"
)

// DocumentType tags the source format an Index is built from.
type DocumentType string

// DocumentType constants.
const (
	DocumentTypeSECFiling DocumentType = "sec-filing"
	DocumentTypeSOP       DocumentType = "sop"
	DocumentTypeOutline   DocumentType = "outline"
	DocumentTypeMarkdown  DocumentType = "markdown"
	DocumentTypeHTML      DocumentType = "html"
)

// DetectDocumentType guesses a document type from a file extension.
// Structured JSON and YAML default to the generic outline format.
func DetectDocumentType(path string) (DocumentType, bool) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".md", ".markdown":
		return DocumentTypeMarkdown, true
	case ".html", ".htm":
		return DocumentTypeHTML, true
	case ".json", ".yaml", ".yml":
		return DocumentTypeOutline, true
	}
	return "", false
}

// IndexBuilder builds an Index from the raw bytes of one document.
// Returns EINVALID for unparseable input and ESTRUCTURE for a malformed
// tree.
type IndexBuilder interface {
	Build(data []byte) (*Index, error)
}

// IndexBuilderFunc adapts a function to IndexBuilder.
type IndexBuilderFunc func(data []byte) (*Index, error)

// Build calls f(data).
func (f IndexBuilderFunc) Build(data []byte) (*Index, error) {
	return f(data)
}

// IndexBuilderRegistry maps document types to builders so callers never
// depend on concrete formats.
type IndexBuilderRegistry interface {
	// Get returns the builder for a type, or nil.
	Get(t DocumentType) IndexBuilder

	// Register adds or replaces the builder for a type.
	Register(t DocumentType, b IndexBuilder)

	// List returns the registered types.
	List() []DocumentType

	// Build builds an index with the builder registered for t.
	// Returns EINVALID if no builder is registered.
	Build(t DocumentType, data []byte) (*Index, error)
}

var _ IndexBuilderRegistry = (*BuilderRegistry)(nil)

// BuilderRegistry is a concurrency-safe IndexBuilderRegistry.
type BuilderRegistry struct {
	mu       sync.RWMutex
	builders map[DocumentType]IndexBuilder
}

// NewBuilderRegistry returns an empty registry.
func NewBuilderRegistry() *BuilderRegistry {
	return &BuilderRegistry{builders: make(map[DocumentType]IndexBuilder)}
}

func (r *BuilderRegistry) Get(t DocumentType) IndexBuilder {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.builders[t]
}

func (r *BuilderRegistry) Register(t DocumentType, b IndexBuilder) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.builders[t] = b
}

// List returns the registered types in sorted order.
func (r *BuilderRegistry) List() []DocumentType {
	r.mu.RLock()
	defer r.mu.RUnlock()

	types := make([]DocumentType, 0, len(r.builders))
	for t := range r.builders {
		types = append(types, t)
	}
	sort.Slice(types, func(i, j int) bool { return types[i] < types[j] })
	return types
}

func (r *BuilderRegistry) Build(t DocumentType, data []byte) (*Index, error) {
	b := r.Get(t)
	if b == nil {
		return nil, Errorf(EINVALID, "unsupported document type %q", t)
	}
	return b.Build(data)
}
