package toolspec

import (
	"github.com/anthropics/anthropic-sdk-go"
)

// AnthropicTools converts compiled descriptors into Anthropic tool parameters.
// The Anthropic API takes properties/required at the input-schema level rather
// than a wrapped function object, so the parameters node is unpacked.
func AnthropicTools(descriptors []*Descriptor) []anthropic.ToolUnionParam {
	out := make([]anthropic.ToolUnionParam, 0, len(descriptors))
	for _, d := range descriptors {
		if d == nil {
			continue
		}
		schema := anthropic.ToolInputSchemaParam{}
		if p := d.Function.Parameters; p != nil {
			schema.Properties = p.Properties
			schema.Required = p.Required
		}
		out = append(out, anthropic.ToolUnionParam{OfTool: &anthropic.ToolParam{
			Name:        d.Function.Name,
			Description: anthropic.String(d.Function.Description),
			InputSchema: schema,
		}})
	}
	return out
}

// AnthropicTools compiles the registry's tools and returns the successfully
// compiled ones as Anthropic tool parameters; compilation failures are
// reported alongside.
func (r *Registry) AnthropicTools() ([]anthropic.ToolUnionParam, []error) {
	var errs []error
	var descriptors []*Descriptor
	for _, res := range r.Descriptors() {
		if res.Err != nil {
			errs = append(errs, res.Err)
			continue
		}
		descriptors = append(descriptors, res.Descriptor)
	}
	return AnthropicTools(descriptors), errs
}
