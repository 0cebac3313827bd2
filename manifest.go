package toolspec

import (
	"fmt"
	"io"

	"gopkg.in/yaml.v3"
)

// Manifest is a statically-declared tool catalog: the registration mechanism
// that supplies signature descriptors without any runtime reflection. Example:
//
//	tools:
//	  - name: search
//	    description: Searches.
//	    params:
//	      - name: query
//	        type: { kind: string }
//	      - name: limit
//	        type: { kind: integer }
//	        default: 10
type Manifest struct {
	Tools []ManifestTool `yaml:"tools"`
}

// ManifestTool declares one callable: name, description, and parameter list.
type ManifestTool struct {
	Name        string          `yaml:"name"`
	Description string          `yaml:"description"`
	Params      []ManifestParam `yaml:"params"`
}

// ManifestParam declares one parameter. Default distinguishes "absent" from
// "null" via the raw YAML node, so `default:` and no default line differ.
type ManifestParam struct {
	Name    string    `yaml:"name"`
	Type    TypeNode  `yaml:"type"`
	Default yaml.Node `yaml:"default"`
}

// TypeNode is the YAML surface of a type annotation. Kind selects the variant;
// the remaining fields apply per kind:
//
//	string | integer | number | boolean | null | unknown  - no extra fields
//	array       - elem
//	map         - key, value
//	union       - members
//	record      - name, fields (each field: name, type, default)
//	structural  - name, keys (each key: name, type), required (optional list)
type TypeNode struct {
	Kind     string            `yaml:"kind"`
	Elem     *TypeNode         `yaml:"elem"`
	Key      *TypeNode         `yaml:"key"`
	Value    *TypeNode         `yaml:"value"`
	Members  []TypeNode        `yaml:"members"`
	Name     string            `yaml:"name"`
	Fields   []ManifestField   `yaml:"fields"`
	Keys     []ManifestTypeKey `yaml:"keys"`
	Required *[]string         `yaml:"required"`
}

// ManifestField declares one field of a record type node.
type ManifestField struct {
	Name    string    `yaml:"name"`
	Type    TypeNode  `yaml:"type"`
	Default yaml.Node `yaml:"default"`
}

// ManifestTypeKey declares one key of a structural type node.
type ManifestTypeKey struct {
	Name string   `yaml:"name"`
	Type TypeNode `yaml:"type"`
}

// LoadManifest parses a YAML tool manifest.
func LoadManifest(r io.Reader) (*Manifest, error) {
	var m Manifest
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&m); err != nil {
		return nil, fmt.Errorf("parse manifest: %w", err)
	}
	return &m, nil
}

// Callables converts the manifest into signature descriptors ready for
// compilation or registration.
func (m *Manifest) Callables() ([]Callable, error) {
	out := make([]Callable, 0, len(m.Tools))
	for _, t := range m.Tools {
		params := make([]Param, 0, len(t.Params))
		for _, p := range t.Params {
			ann, err := p.Type.annotation()
			if err != nil {
				return nil, fmt.Errorf("tool %q, param %q: %w", t.Name, p.Name, err)
			}
			def, has, err := decodeDefault(p.Default)
			if err != nil {
				return nil, fmt.Errorf("tool %q, param %q: %w", t.Name, p.Name, err)
			}
			params = append(params, Param{Name: p.Name, Type: ann, Default: def, HasDefault: has})
		}
		out = append(out, Callable{
			Name:        t.Name,
			Description: t.Description,
			Signature:   &Signature{Params: params},
		})
	}
	return out, nil
}

func decodeDefault(n yaml.Node) (any, bool, error) {
	if n.IsZero() {
		return nil, false, nil
	}
	var v any
	if err := n.Decode(&v); err != nil {
		return nil, false, fmt.Errorf("decode default: %w", err)
	}
	return v, true, nil
}

// annotation converts a type node into its annotation value.
func (t TypeNode) annotation() (Annotation, error) {
	switch t.Kind {
	case "string":
		return String(), nil
	case "integer":
		return Integer(), nil
	case "number":
		return Number(), nil
	case "boolean":
		return Boolean(), nil
	case "null":
		return Null(), nil
	case "unknown", "":
		return Unknown(), nil
	case "array":
		if t.Elem == nil {
			return nil, fmt.Errorf("array type needs elem")
		}
		elem, err := t.Elem.annotation()
		if err != nil {
			return nil, err
		}
		return Sequence(elem), nil
	case "map":
		if t.Key == nil || t.Value == nil {
			return nil, fmt.Errorf("map type needs key and value")
		}
		key, err := t.Key.annotation()
		if err != nil {
			return nil, err
		}
		value, err := t.Value.annotation()
		if err != nil {
			return nil, err
		}
		return Mapping(key, value), nil
	case "union":
		members := make([]Annotation, 0, len(t.Members))
		for _, m := range t.Members {
			ann, err := m.annotation()
			if err != nil {
				return nil, err
			}
			members = append(members, ann)
		}
		return Union(members...), nil
	case "record":
		fields := make([]Field, 0, len(t.Fields))
		for _, f := range t.Fields {
			ann, err := f.Type.annotation()
			if err != nil {
				return nil, err
			}
			def, has, err := decodeDefault(f.Default)
			if err != nil {
				return nil, fmt.Errorf("field %q: %w", f.Name, err)
			}
			fields = append(fields, Field{Name: f.Name, Type: ann, Default: def, HasDefault: has})
		}
		return NewPlainRecord(t.Name, fields...), nil
	case "structural":
		keys := make([]Key, 0, len(t.Keys))
		for _, k := range t.Keys {
			ann, err := k.Type.annotation()
			if err != nil {
				return nil, err
			}
			keys = append(keys, Key{Name: k.Name, Type: ann})
		}
		sm := NewStructuralMapping(t.Name, keys...)
		if t.Required != nil {
			sm = sm.WithRequired(*t.Required...)
		}
		return sm, nil
	default:
		return nil, fmt.Errorf("unknown type kind %q", t.Kind)
	}
}
