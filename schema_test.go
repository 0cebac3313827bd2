package toolspec

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	orderedmap "github.com/wk8/go-ordered-map/v2"
)

func TestNodeMarshal_Scalar(t *testing.T) {
	t.Parallel()
	b, err := json.Marshal(scalarNode("integer"))
	require.NoError(t, err)
	assert.Equal(t, `{"type":"integer"}`, string(b))
}

func TestNodeMarshal_ClosedObject(t *testing.T) {
	t.Parallel()
	props := orderedmap.New[string, *Node]()
	props.Set("x", scalarNode("number"))
	b, err := json.Marshal(objectNode(props, []string{"x"}))
	require.NoError(t, err)
	assert.Equal(t,
		`{"type":"object","properties":{"x":{"type":"number"}},"required":["x"],"additionalProperties":false}`,
		string(b))
}

func TestNodeMarshal_OpenObjectOmitsAdditionalProperties(t *testing.T) {
	t.Parallel()
	props := orderedmap.New[string, *Node]()
	props.Set("q", scalarNode("string"))
	n := &Node{Type: "object", Properties: props, Required: []string{"q"}}
	b, err := json.Marshal(n)
	require.NoError(t, err)
	assert.NotContains(t, string(b), "additionalProperties")
}

func TestNodeMarshal_EmptyRequiredEmitted(t *testing.T) {
	t.Parallel()
	b, err := json.Marshal(objectNode(orderedmap.New[string, *Node](), nil))
	require.NoError(t, err)
	assert.Equal(t, `{"type":"object","properties":{},"required":[],"additionalProperties":false}`, string(b))
}

func TestNodeMarshal_Ref(t *testing.T) {
	t.Parallel()
	b, err := json.Marshal(&Node{Ref: "#/$defs/Inner"})
	require.NoError(t, err)
	assert.Equal(t, `{"$ref":"#/$defs/Inner"}`, string(b))
}

func TestNodeMarshal_EmptyOneOf(t *testing.T) {
	t.Parallel()
	b, err := json.Marshal(&Node{OneOf: []*Node{}})
	require.NoError(t, err)
	assert.Equal(t, `{"oneOf":[]}`, string(b))
}

func TestNodeMarshal_PropertyOrderStable(t *testing.T) {
	t.Parallel()
	props := orderedmap.New[string, *Node]()
	props.Set("b", scalarNode("string"))
	props.Set("a", scalarNode("string"))
	n := objectNode(props, nil)
	first, err := json.Marshal(n)
	require.NoError(t, err)
	second, err := json.Marshal(n)
	require.NoError(t, err)
	assert.Equal(t, string(first), string(second))
	assert.Contains(t, string(first), `"properties":{"b":{"type":"string"},"a":{"type":"string"}}`)
}

func TestNodeEqual(t *testing.T) {
	t.Parallel()
	a := arrayNode(scalarNode("integer"))
	b := arrayNode(scalarNode("integer"))
	c := arrayNode(scalarNode("string"))
	assert.True(t, a.Equal(b))
	assert.False(t, a.Equal(c))
	assert.False(t, a.Equal(nil))
	var n *Node
	assert.True(t, n.Equal(nil))
}

func TestIsStringScalar(t *testing.T) {
	t.Parallel()
	assert.True(t, scalarNode("string").isStringScalar())
	assert.False(t, scalarNode("integer").isStringScalar())
	assert.False(t, (&Node{Type: "string", Enum: []any{"a"}}).isStringScalar())
	assert.False(t, mapNode(scalarNode("string")).isStringScalar())
}
