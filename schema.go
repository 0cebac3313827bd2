package toolspec

import (
	"encoding/json"

	orderedmap "github.com/wk8/go-ordered-map/v2"
)

// Node is the compiler's output unit: one node of the synthesized schema tree.
// Exactly one shape is populated per node:
//
//   - scalar: Type is one of string/integer/number/boolean/null
//   - array: Type "array" with Items
//   - untyped-key mapping: Type "object" with AdditionalProperties
//   - record-shaped object: Type "object" with Properties and Required
//   - union: OneOf
//   - reference: Ref (only reachable through a validated record whose exported
//     schema chains named definitions deeper than one level; see extraction)
//
// Closed marks a record-shaped object as emitting additionalProperties: false.
// The top-level parameters object of a descriptor is the one object left open.
type Node struct {
	Type                 string
	Description          string
	Enum                 []any
	Items                *Node
	AdditionalProperties *Node
	Properties           *orderedmap.OrderedMap[string, *Node]
	Required             []string
	OneOf                []*Node
	Ref                  string
	Closed               bool
}

// MarshalJSON emits the node with the wire vocabulary expected by model-calling
// conventions (type, items, additionalProperties, properties, required, oneOf),
// preserving property declaration order.
func (n *Node) MarshalJSON() ([]byte, error) {
	out := orderedmap.New[string, any]()
	if n.Ref != "" {
		out.Set("$ref", n.Ref)
		return json.Marshal(out)
	}
	if n.Type != "" {
		out.Set("type", n.Type)
	}
	if n.Description != "" {
		out.Set("description", n.Description)
	}
	if len(n.Enum) > 0 {
		out.Set("enum", n.Enum)
	}
	if n.Items != nil {
		out.Set("items", n.Items)
	}
	if n.Properties != nil {
		out.Set("properties", n.Properties)
		required := n.Required
		if required == nil {
			required = []string{}
		}
		out.Set("required", required)
		if n.Closed {
			out.Set("additionalProperties", false)
		}
	} else if n.AdditionalProperties != nil {
		out.Set("additionalProperties", n.AdditionalProperties)
	}
	if n.OneOf != nil {
		out.Set("oneOf", n.OneOf)
	}
	return json.Marshal(out)
}

func scalarNode(name string) *Node { return &Node{Type: name} }

func arrayNode(items *Node) *Node { return &Node{Type: typeArray, Items: items} }

func mapNode(value *Node) *Node {
	return &Node{Type: typeObject, AdditionalProperties: value}
}

func objectNode(props *orderedmap.OrderedMap[string, *Node], required []string) *Node {
	if required == nil {
		required = []string{}
	}
	return &Node{Type: typeObject, Properties: props, Required: required, Closed: true}
}

// Equal reports structural equality of two schema nodes, compared over their
// canonical JSON encoding.
func (n *Node) Equal(other *Node) bool {
	if n == nil || other == nil {
		return n == other
	}
	a, err := json.Marshal(n)
	if err != nil {
		return false
	}
	b, err := json.Marshal(other)
	if err != nil {
		return false
	}
	return string(a) == string(b)
}

// isStringScalar reports whether the node is exactly the bare string scalar,
// with no other facets. Mapping keys must pass this check.
func (n *Node) isStringScalar() bool {
	return n != nil &&
		n.Type == typeString &&
		n.Items == nil &&
		n.AdditionalProperties == nil &&
		n.Properties == nil &&
		n.OneOf == nil &&
		n.Ref == "" &&
		len(n.Enum) == 0
}
