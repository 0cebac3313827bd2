package toolspec

import (
	"strings"

	"github.com/invopop/jsonschema"
	orderedmap "github.com/wk8/go-ordered-map/v2"
)

// Record extraction: each record kind produces a closed object node
// (additionalProperties: false) with an ordered property map and a required
// set. Closing the object is descriptive only; nothing here enforces it.

func (r *resolver) extractPlain(rec *PlainRecord) (*Node, error) {
	props := orderedmap.New[string, *Node]()
	required := []string{}
	for _, f := range rec.Fields {
		n, err := r.resolve(f.Type)
		if err != nil {
			return nil, err
		}
		props.Set(f.Name, n)
		if !f.HasDefault && f.DefaultFactory == nil {
			required = append(required, f.Name)
		}
	}
	return objectNode(props, required), nil
}

func (r *resolver) extractStructural(rec *StructuralMapping) (*Node, error) {
	props := orderedmap.New[string, *Node]()
	for _, k := range rec.Keys {
		n, err := r.resolve(k.Type)
		if err != nil {
			return nil, err
		}
		props.Set(k.Name, n)
	}
	required := rec.RequiredKeys
	if required == nil {
		// No explicit required set: structural mappings are required-by-default.
		required = make([]string, 0, len(rec.Keys))
		for _, k := range rec.Keys {
			required = append(required, k.Name)
		}
	}
	return objectNode(props, required), nil
}

// extractValidated reuses the record's exported schema. Named references to
// shared sub-definitions are inlined by substituting the definition body in
// place, one level of indirection only. A definition that itself references
// another definition keeps that inner $ref verbatim; deeper chains are a known
// limitation, not a failure mode.
func (r *resolver) extractValidated(rec *ValidatedRecord) (*Node, error) {
	s := rec.Schema
	if s == nil {
		return objectNode(orderedmap.New[string, *Node](), nil), nil
	}
	root := s
	if s.Ref != "" {
		if def := lookupDefinition(s.Definitions, s.Ref); def != nil {
			root = def
		}
	}
	props := orderedmap.New[string, *Node]()
	if root.Properties != nil {
		for pair := root.Properties.Oldest(); pair != nil; pair = pair.Next() {
			ps := pair.Value
			if ps != nil && ps.Ref != "" {
				if def := lookupDefinition(s.Definitions, ps.Ref); def != nil {
					ps = def
				}
			}
			props.Set(pair.Key, convertExported(ps))
		}
	}
	return objectNode(props, root.Required), nil
}

// lookupDefinition resolves a "#/$defs/Name" pointer against the exported
// schema's definition table.
func lookupDefinition(defs jsonschema.Definitions, ref string) *jsonschema.Schema {
	if defs == nil {
		return nil
	}
	parts := strings.Split(ref, "/")
	return defs[parts[len(parts)-1]]
}

// convertExported maps an exported (invopop) schema fragment onto the node
// vocabulary. References surviving the one-level inlining pass are preserved
// as-is rather than chased.
func convertExported(s *jsonschema.Schema) *Node {
	if s == nil {
		return scalarNode(typeString)
	}
	if s.Ref != "" {
		return &Node{Ref: s.Ref}
	}
	n := &Node{
		Type:        s.Type,
		Description: s.Description,
		Enum:        s.Enum,
	}
	if s.Items != nil {
		n.Items = convertExported(s.Items)
	}
	if s.Properties != nil && s.Properties.Len() > 0 {
		props := orderedmap.New[string, *Node]()
		for pair := s.Properties.Oldest(); pair != nil; pair = pair.Next() {
			props.Set(pair.Key, convertExported(pair.Value))
		}
		n.Properties = props
		n.Required = s.Required
		if n.Required == nil {
			n.Required = []string{}
		}
		n.Closed = true
	} else if ap := s.AdditionalProperties; ap != nil && ap != jsonschema.FalseSchema && ap != jsonschema.TrueSchema {
		n.AdditionalProperties = convertExported(ap)
	}
	if len(s.OneOf) > 0 {
		members := make([]*Node, 0, len(s.OneOf))
		for _, m := range s.OneOf {
			members = append(members, convertExported(m))
		}
		n.OneOf = members
	}
	return n
}
