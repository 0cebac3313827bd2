package toolspec

import (
	"encoding/json"
	"strings"

	"github.com/google/uuid"
	openai "github.com/sashabaranov/go-openai"
)

// Request building: converting compiled descriptors into the tool-list and
// message shapes the model-calling APIs expect.

// OpenAITools converts compiled descriptors into go-openai tool definitions.
// Entries are passed through verbatim: the descriptor already carries the
// function-calling wire shape.
func OpenAITools(descriptors []*Descriptor) []openai.Tool {
	out := make([]openai.Tool, 0, len(descriptors))
	for _, d := range descriptors {
		if d == nil {
			continue
		}
		out = append(out, openai.Tool{
			Type: openai.ToolTypeFunction,
			Function: &openai.FunctionDefinition{
				Name:        d.Function.Name,
				Description: d.Function.Description,
				Parameters:  d.Function.Parameters,
			},
		})
	}
	return out
}

// OpenAITools compiles the registry's tools and returns the successfully
// compiled ones as go-openai tool definitions. Failed compilations are
// reported in the second return value, one error per failed tool.
func (r *Registry) OpenAITools() ([]openai.Tool, []error) {
	var errs []error
	var descriptors []*Descriptor
	for _, res := range r.Descriptors() {
		if res.Err != nil {
			errs = append(errs, res.Err)
			continue
		}
		descriptors = append(descriptors, res.Descriptor)
	}
	return OpenAITools(descriptors), errs
}

// NewCallID returns a synthetic tool-call identifier: a dash-stripped UUID
// truncated to nine characters.
func NewCallID() string {
	return strings.ReplaceAll(uuid.NewString(), "-", "")[:9]
}

// ToolCallMessages builds the assistant/tool message pair recording a tool
// invocation and its output: an assistant message carrying one tool call with
// the given arguments, followed by the matching tool message with content.
func ToolCallMessages(name string, args map[string]any, content string) ([]openai.ChatCompletionMessage, error) {
	argsJSON, err := json.Marshal(args)
	if err != nil {
		return nil, err
	}
	callID := NewCallID()
	return []openai.ChatCompletionMessage{
		{
			Role: openai.ChatMessageRoleAssistant,
			ToolCalls: []openai.ToolCall{
				{
					ID:   callID,
					Type: openai.ToolTypeFunction,
					Function: openai.FunctionCall{
						Name:      name,
						Arguments: string(argsJSON),
					},
				},
			},
		},
		{
			Role:       openai.ChatMessageRoleTool,
			Name:       name,
			Content:    content,
			ToolCallID: callID,
		},
	}, nil
}

// Message builds a single chat message with the given role and content.
func Message(role, content string) openai.ChatCompletionMessage {
	return openai.ChatCompletionMessage{Role: role, Content: content}
}
