// Package toolspec compiles callable signatures into the JSON-Schema-shaped
// capability descriptors that LLM tool-calling APIs consume, and provides the
// surrounding plumbing: a tool registry, request builders for OpenAI and
// Anthropic wire shapes, and a YAML manifest loader.
//
// # Overview
//
// A model decides which tool to invoke from a structured description of each
// callable's argument shape. This package performs that signature-to-schema
// compilation as a pure, type-directed tree transformation: a signature
// descriptor (parameter names, type annotations, default presence) goes in, a
// descriptor with the familiar {type: "function", function: {name,
// description, parameters}} shape comes out.
//
// Pipeline: Callable (plain-data signature) → Compile → Descriptor → Registry
// / OpenAITools / AnthropicTools → model request.
//
// # Key concepts
//
//   - Annotations are a closed sum type: scalars, sequences, mappings, unions,
//     and three record kinds. Resolve handles every kind; anything it cannot
//     place degrades to the string scalar instead of failing.
//   - Union[T, null] collapses to T (the output format has no nullable
//     modifier), and a mapping to a record collapses into the record's own
//     object schema.
//   - Record schemas are always inlined, never cross-referenced; a validated
//     record's exported $refs are flattened one level.
//   - Compilation is stateless and idempotent; it is safe to compile any
//     number of callables concurrently.
//
// # Example
//
//	c := toolspec.Callable{
//	    Name:        "search",
//	    Description: "Searches.",
//	    Signature: &toolspec.Signature{Params: []toolspec.Param{
//	        {Name: "query", Type: toolspec.String()},
//	        {Name: "limit", Type: toolspec.Integer(), Default: 10, HasDefault: true},
//	    }},
//	}
//	d, err := toolspec.Compile(c)
//	if err != nil { ... }
//	tools := toolspec.OpenAITools([]*toolspec.Descriptor{d})
package toolspec
