package graph

import (
	"sync/atomic"

	"github.com/adhithyan15/graphene/log"
)

// GraphVariant is the capability set shared by every concrete graph.
// Edge and rendering operations are not part of it.
type GraphVariant interface {
	Name() string
	IsDirected() bool
	IsUndirected() bool

	AddNode(value any, customKey string) error
	Count() int
	NodeKeys() []string
	Node(key string) (any, bool)
	NodeAccessor(key string) (string, bool)

	AddData(key any, value any, noUpdate bool) (any, error)
	RemoveData(key any) (any, error)
	ViewData(key string) (any, error)
	Get(name string) (any, bool)
	Attribute(name string) (any, error)

	Nodes() *NodeRegistry
	Metadata() *MetadataStore
}

// Graph holds the node registry and metadata store shared by Directed and
// Undirected. It is not a GraphVariant on its own.
type Graph struct {
	name     string
	nodes    *NodeRegistry
	data     *MetadataStore
	logger   log.Logger
	versions atomic.Int64
}

// Option configures a graph at construction.
type Option func(*Graph)

// WithName sets the name snapshots are filed under.
func WithName(name string) Option {
	return func(g *Graph) {
		g.name = name
	}
}

// WithLogger sets the logger used by the registry and metadata store.
func WithLogger(logger log.Logger) Option {
	return func(g *Graph) {
		g.logger = logger
	}
}

func newGraph(opts ...Option) *Graph {
	g := &Graph{}
	for _, opt := range opts {
		opt(g)
	}
	g.nodes = NewNodeRegistry(g.logger)
	g.data = NewMetadataStore(g.logger)
	return g
}

// Name returns the graph name, possibly empty.
func (g *Graph) Name() string { return g.name }

// AddNode registers value as a node; see NodeRegistry.Register.
func (g *Graph) AddNode(value any, customKey string) error {
	return g.nodes.Register(value, customKey)
}

// Count returns the number of nodes.
func (g *Graph) Count() int { return g.nodes.Count() }

// NodeKeys returns the node keys in sorted order.
func (g *Graph) NodeKeys() []string { return g.nodes.Keys() }

// Node returns the value registered under key.
func (g *Graph) Node(key string) (any, bool) { return g.nodes.Get(key) }

// NodeAccessor returns the accessor name a delegated key came from.
func (g *Graph) NodeAccessor(key string) (string, bool) { return g.nodes.Accessor(key) }

// AddData stores graph metadata; see MetadataStore.Set.
func (g *Graph) AddData(key any, value any, noUpdate bool) (any, error) {
	return g.data.Set(key, value, noUpdate)
}

// RemoveData deletes graph metadata and returns the old value.
func (g *Graph) RemoveData(key any) (any, error) {
	return g.data.Remove(key)
}

// ViewData returns one metadata value, or all of them when key is empty.
func (g *Graph) ViewData(key string) (any, error) {
	return g.data.View(key)
}

// Get returns the metadata value stored under name.
func (g *Graph) Get(name string) (any, bool) { return g.data.Get(name) }

// Attribute returns the metadata value stored under name or ErrUnknownAttribute.
func (g *Graph) Attribute(name string) (any, error) { return g.data.Attribute(name) }

func (g *Graph) base() *Graph { return g }

// Nodes exposes the node registry.
func (g *Graph) Nodes() *NodeRegistry { return g.nodes }

// Metadata exposes the metadata store.
func (g *Graph) Metadata() *MetadataStore { return g.data }

// Directed is a graph whose future edges have a direction.
type Directed struct {
	*Graph
}

// NewDirected creates an empty directed graph.
func NewDirected(opts ...Option) *Directed {
	return &Directed{Graph: newGraph(opts...)}
}

func (*Directed) IsDirected() bool   { return true }
func (*Directed) IsUndirected() bool { return false }

// Undirected is a graph whose future edges have no direction.
type Undirected struct {
	*Graph
}

// NewUndirected creates an empty undirected graph.
func NewUndirected(opts ...Option) *Undirected {
	return &Undirected{Graph: newGraph(opts...)}
}

func (*Undirected) IsDirected() bool   { return false }
func (*Undirected) IsUndirected() bool { return true }

// New creates a Directed or Undirected graph.
func New(directed bool, opts ...Option) GraphVariant {
	if directed {
		return NewDirected(opts...)
	}
	return NewUndirected(opts...)
}

var (
	_ GraphVariant = (*Directed)(nil)
	_ GraphVariant = (*Undirected)(nil)
)
