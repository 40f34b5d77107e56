package mock

import "github.com/fwojciec/pageindex"

var _ pageindex.IndexBuilder = (*IndexBuilder)(nil)

// IndexBuilder is a mock implementation of pageindex.IndexBuilder.
type IndexBuilder struct {
	BuildFn func(data []byte) (*pageindex.Index, error)
}

func (b *IndexBuilder) Build(data []byte) (*pageindex.Index, error) {
	return b.BuildFn(data)
}

var _ pageindex.IndexBuilderRegistry = (*IndexBuilderRegistry)(nil)

// IndexBuilderRegistry is a mock implementation of pageindex.IndexBuilderRegistry.
type IndexBuilderRegistry struct {
	GetFn      func(t pageindex.DocumentType) pageindex.IndexBuilder
	RegisterFn func(t pageindex.DocumentType, b pageindex.IndexBuilder)
	ListFn     func() []pageindex.DocumentType
	BuildFn    func(t pageindex.DocumentType, data []byte) (*pageindex.Index, error)
}

func (r *IndexBuilderRegistry) Get(t pageindex.DocumentType) pageindex.IndexBuilder {
	return r.GetFn(t)
}

func (r *IndexBuilderRegistry) Register(t pageindex.DocumentType, b pageindex.IndexBuilder) {
	r.RegisterFn(t, b)
}

func (r *IndexBuilderRegistry) List() []pageindex.DocumentType {
	return r.ListFn()
}

func (r *IndexBuilderRegistry) Build(t pageindex.DocumentType, data []byte) (*pageindex.Index, error) {
	return r.BuildFn(t, data)
}
