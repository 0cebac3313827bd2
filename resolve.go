package toolspec

import "fmt"

// Resolve maps a type annotation to its schema node. Resolution is pure and
// idempotent: the same annotation always yields a structurally identical node.
//
// Rules, in priority order:
//
//  1. Scalars map to their {type: ...} node directly.
//  2. Sequences wrap the resolved element type in an array node.
//  3. Mappings require a string key (ModelingError otherwise). A mapping whose
//     value is a record kind collapses into the record's own object schema; any
//     other value yields {type: "object", additionalProperties: ...}.
//  4. Unions resolve every non-null member in declaration order. A single
//     remaining member is returned directly (the optional collapse); more than
//     one becomes oneOf, order preserved, duplicates kept.
//  5. Record kinds delegate to record extraction.
//  6. Anything else degrades to the string scalar.
//
// The only error paths are ModelingError (non-string mapping key, or a record
// that contains itself): contract violations in the source declarations, not
// data errors. Unrecognized annotations never fail.
func Resolve(a Annotation) (*Node, error) {
	r := &resolver{active: make(map[Annotation]bool)}
	return r.resolve(a)
}

// resolver carries the set of record annotations currently being extracted so
// that a self-referential record is reported instead of recursing unboundedly.
type resolver struct {
	active map[Annotation]bool
}

func (r *resolver) resolve(a Annotation) (*Node, error) {
	switch t := a.(type) {
	case scalar:
		return scalarNode(t.name), nil
	case sequence:
		elem, err := r.resolve(t.elem)
		if err != nil {
			return nil, err
		}
		return arrayNode(elem), nil
	case mapping:
		return r.resolveMapping(t)
	case union:
		return r.resolveUnion(t)
	case *PlainRecord, *ValidatedRecord, *StructuralMapping:
		return r.extract(a)
	default:
		return scalarNode(typeString), nil
	}
}

func (r *resolver) resolveMapping(m mapping) (*Node, error) {
	key, err := r.resolve(m.key)
	if err != nil {
		return nil, err
	}
	if !key.isStringScalar() {
		return nil, &ModelingError{Reason: "mapping keys must be strings"}
	}
	// A mapping to a record kind is treated as "a record described key-by-key":
	// the record's own object schema is reused instead of an
	// additionalProperties wrapper.
	if isRecord(m.value) {
		return r.resolve(m.value)
	}
	value, err := r.resolve(m.value)
	if err != nil {
		return nil, err
	}
	return mapNode(value), nil
}

func (r *resolver) resolveUnion(u union) (*Node, error) {
	nodes := make([]*Node, 0, len(u.members))
	for _, m := range u.members {
		if isNull(m) {
			continue
		}
		n, err := r.resolve(m)
		if err != nil {
			return nil, err
		}
		nodes = append(nodes, n)
	}
	// Union[T, null] is indistinguishable from T in the output: the consuming
	// schema format has no nullable modifier.
	if len(nodes) == 1 {
		return nodes[0], nil
	}
	return &Node{OneOf: nodes}, nil
}

// extract dispatches a record kind to its extraction routine, guarding against
// direct or transitive self-reference.
func (r *resolver) extract(a Annotation) (*Node, error) {
	if r.active[a] {
		return nil, &ModelingError{Reason: fmt.Sprintf("record %q contains itself", recordLabel(a))}
	}
	r.active[a] = true
	defer delete(r.active, a)

	switch t := a.(type) {
	case *PlainRecord:
		return r.extractPlain(t)
	case *StructuralMapping:
		return r.extractStructural(t)
	case *ValidatedRecord:
		return r.extractValidated(t)
	default:
		return scalarNode(typeString), nil
	}
}

func recordLabel(a Annotation) string {
	switch t := a.(type) {
	case *PlainRecord:
		return t.Name
	case *StructuralMapping:
		return t.Name
	case *ValidatedRecord:
		return t.Name
	default:
		return ""
	}
}
