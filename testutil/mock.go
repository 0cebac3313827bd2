// Package testutil provides helpers for testing code built on toolspec.
package testutil

import (
	"context"
	"encoding/json"

	"github.com/toolspec/toolspec"
)

// NewMockTool returns a tool with a single optional "input" string parameter
// whose handler always answers with response. Useful as a stand-in in
// orchestrator tests.
func NewMockTool(name, response string) toolspec.Tool {
	return toolspec.Tool{
		Callable: toolspec.Callable{
			Name:        name,
			Description: "mock tool for tests",
			Signature: &toolspec.Signature{Params: []toolspec.Param{
				{Name: "input", Type: toolspec.String(), HasDefault: true, Default: ""},
			}},
		},
		Handler: func(context.Context, json.RawMessage) (any, error) {
			return response, nil
		},
	}
}

// NewFailingTool returns a tool whose handler always returns err.
func NewFailingTool(name string, err error) toolspec.Tool {
	return toolspec.Tool{
		Callable: toolspec.Callable{
			Name:        name,
			Description: "always fails",
			Signature:   &toolspec.Signature{},
		},
		Handler: func(context.Context, json.RawMessage) (any, error) {
			return nil, err
		},
	}
}
