package graph

import (
	"bytes"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/adhithyan15/graphene/log"
)

func TestNewGraph_Empty(t *testing.T) {
	for _, g := range []GraphVariant{NewDirected(), NewUndirected()} {
		assert.Equal(t, 0, g.Count())
		all, err := g.ViewData("")
		require.NoError(t, err)
		assert.Equal(t, map[string]any{}, all)
		assert.Empty(t, g.NodeKeys())
	}
}

func TestGraphVariants(t *testing.T) {
	d := NewDirected(WithName("routes"))
	assert.True(t, d.IsDirected())
	assert.False(t, d.IsUndirected())
	assert.Equal(t, "routes", d.Name())

	u := NewUndirected()
	assert.False(t, u.IsDirected())
	assert.True(t, u.IsUndirected())
	assert.Equal(t, "", u.Name())

	assert.IsType(t, &Directed{}, New(true))
	assert.IsType(t, &Undirected{}, New(false))
}

func TestGraph_Nodes(t *testing.T) {
	g := NewUndirected()
	oslo := city{Name: "Oslo", Country: "NO"}
	bergen := city{Name: "Bergen", Country: "NO"}

	require.NoError(t, g.AddNode(oslo, ".Code"))
	require.NoError(t, g.AddNode(bergen, "bergen"))
	require.NoError(t, g.AddNode("plain", ""))
	assert.Equal(t, 3, g.Count())

	v, ok := g.Node("NO-Oslo")
	require.True(t, ok)
	assert.Equal(t, oslo, v)

	name, ok := g.NodeAccessor("NO-Oslo")
	assert.True(t, ok)
	assert.Equal(t, "Code", name)

	_, ok = g.NodeAccessor("bergen")
	assert.False(t, ok)

	err := g.AddNode(bergen, "bergen")
	assert.ErrorIs(t, err, ErrDuplicateKey)
	assert.Equal(t, KindIntegrity, KindOf(err))
	assert.Equal(t, 3, g.Nodes().Count())
}

func TestGraph_Data(t *testing.T) {
	g := NewDirected()

	v, err := g.AddData("hello", 6, false)
	require.NoError(t, err)
	assert.Equal(t, 6, v)

	got, err := g.ViewData("hello")
	require.NoError(t, err)
	assert.Equal(t, 6, got)

	got, err = g.Attribute("hello")
	require.NoError(t, err)
	assert.Equal(t, 6, got)

	_, err = g.Attribute("doesnotexist")
	assert.ErrorIs(t, err, ErrUnknownAttribute)

	_, err = g.AddData("hello", 6, true)
	assert.ErrorIs(t, err, ErrValueNonUpdatable)

	_, err = g.AddData("Hello World", 1, false)
	assert.ErrorIs(t, err, ErrKeyHasInternalSpaces)

	_, err = g.AddData("view", 1, false)
	assert.ErrorIs(t, err, ErrKeyCollidesWithOperationName)

	removed, err := g.RemoveData("hello")
	require.NoError(t, err)
	assert.Equal(t, 6, removed)

	_, err = g.ViewData("hello")
	assert.ErrorIs(t, err, ErrKeyNotFound)

	_, ok := g.Get("hello")
	assert.False(t, ok)
	assert.Equal(t, 0, g.Metadata().Len())
}

func TestGraph_NodesAndDataAreSeparate(t *testing.T) {
	g := NewUndirected()
	require.NoError(t, g.AddNode("v", "hello"))

	_, err := g.ViewData("hello")
	assert.ErrorIs(t, err, ErrKeyNotFound)

	_, err = g.AddData("hello", 1, true)
	assert.NoError(t, err)
}

func TestGraph_Logging(t *testing.T) {
	var buf bytes.Buffer
	g := NewUndirected(WithLogger(log.NewCustomLogger(&buf, log.LogLevelDebug)))

	require.NoError(t, g.AddNode(city{Name: "Oslo"}, "oslo"))
	_, err := g.AddData("hello", 6, false)
	require.NoError(t, err)
	err = g.AddNode(city{Name: "Oslo"}, ".Exit")
	require.Error(t, err)

	out := buf.String()
	assert.Contains(t, out, `registered node "oslo" (literal)`)
	assert.Contains(t, out, `set metadata "hello"`)
	assert.Contains(t, out, `[WARN] rejected forbidden accessor ".Exit"`)
}

func TestKeyError(t *testing.T) {
	g := NewUndirected()

	err := g.AddNode(city{Name: "Oslo"}, ".Exit")
	var ke *KeyError
	require.True(t, errors.As(err, &ke))
	assert.Equal(t, "add_node", ke.Op)
	assert.Equal(t, ".Exit", ke.Key)
	assert.Equal(t, `graph: add_node ".Exit": forbidden accessor`, err.Error())

	err = g.AddNode(nil, "")
	assert.Equal(t, "graph: add_node: value is nil", err.Error())
}

func TestKindOf(t *testing.T) {
	tests := []struct {
		err  error
		kind ErrorKind
	}{
		{keyError("op", "", ErrNullValue), KindValidation},
		{keyError("op", "", ErrKeyHasInternalSpaces), KindValidation},
		{ErrNoHashCapability, KindIdentity},
		{ErrKeyType, KindIdentity},
		{ErrDuplicateKey, KindIntegrity},
		{ErrSecurityViolation, KindSecurity},
		{ErrValueNonUpdatable, KindPolicy},
		{ErrKeyNotFound, KindNotFound},
		{ErrUnknownAttribute, KindNotFound},
		{ErrUnsupportedOperation, KindUnsupported},
		{errors.New("other"), KindUnknown},
		{nil, KindUnknown},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.kind, KindOf(tt.err), "%v", tt.err)
	}
	assert.Equal(t, "security", KindSecurity.String())
	assert.Equal(t, "unknown", ErrorKind(99).String())
}
