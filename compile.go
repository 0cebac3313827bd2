package toolspec

import (
	orderedmap "github.com/wk8/go-ordered-map/v2"
)

// ReservedContextParam is the parameter name populated by the calling runtime,
// never by the model. It is omitted from compiled schemas entirely, not even
// advertised as optional. Override per compilation with WithReservedParam.
const ReservedContextParam = "context_variables"

// Param describes one declared parameter of a callable signature: its name,
// type annotation, and whether a default value is present.
type Param struct {
	Name       string
	Type       Annotation
	Default    any
	HasDefault bool
}

// Signature is a statically-constructed signature descriptor: the parameter
// list of a callable in declaration order. It is supplied by whatever
// registration mechanism discovers the callable (code, manifest, generator);
// the compiler consumes it as plain data and performs no reflection itself.
type Signature struct {
	Params []Param
}

// Callable pairs a name and human-readable description with its signature
// descriptor. A nil Signature means the signature could not be recovered and
// compiles to a ReflectionError.
type Callable struct {
	Name        string
	Description string
	Signature   *Signature
}

// Descriptor is the model-facing capability descriptor for one callable,
// wire-compatible with function-calling tool definitions.
type Descriptor struct {
	Type     string   `json:"type"`
	Function Function `json:"function"`
}

// Function is the function fragment of a Descriptor. Parameters is always a
// record-shaped object node.
type Function struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Parameters  *Node  `json:"parameters"`
}

// Compile converts a callable's signature descriptor into its capability
// descriptor. Parameters resolve in declaration order; the reserved context
// parameter is skipped; a parameter is required iff it has no default value.
// Fails with ReflectionError when the signature is absent, or ModelingError
// when a parameter's type declarations violate the annotation contract.
func Compile(c Callable, opts ...CompileOption) (*Descriptor, error) {
	var o compileOptions
	o.reserved = ReservedContextParam
	for _, opt := range opts {
		opt(&o)
	}
	if c.Signature == nil {
		return nil, &ReflectionError{Callable: c.Name, Reason: "no recoverable signature"}
	}
	props := orderedmap.New[string, *Node]()
	required := []string{}
	for _, p := range c.Signature.Params {
		if p.Name == o.reserved {
			continue
		}
		n, err := Resolve(p.Type)
		if err != nil {
			return nil, err
		}
		props.Set(p.Name, n)
		if !p.HasDefault {
			required = append(required, p.Name)
		}
	}
	// The parameters object itself stays open: only record schemas close over
	// additionalProperties.
	params := &Node{Type: typeObject, Properties: props, Required: required}
	return &Descriptor{
		Type: "function",
		Function: Function{
			Name:        c.Name,
			Description: c.Description,
			Parameters:  params,
		},
	}, nil
}

// CompileResult is one entry of a batch compilation: either a descriptor or
// the error that callable failed with.
type CompileResult struct {
	Callable   string
	Descriptor *Descriptor
	Err        error
}

// CompileAll compiles a batch of callables with per-callable error isolation:
// a ReflectionError (or ModelingError) in one entry never aborts the rest.
// Results keep input order.
func CompileAll(callables []Callable, opts ...CompileOption) []CompileResult {
	results := make([]CompileResult, 0, len(callables))
	for _, c := range callables {
		d, err := Compile(c, opts...)
		results = append(results, CompileResult{Callable: c.Name, Descriptor: d, Err: err})
	}
	return results
}
