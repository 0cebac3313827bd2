package toolspec

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/toolspec/toolspec/sandbox"
)

// NewSandboxTool wraps a sandbox client as a registered tool taking a single
// required "command" string parameter. The handler returns the sandbox's
// final result; a non-zero status is reported as an error so the orchestrator
// can surface it to the model.
func NewSandboxTool(client *sandbox.Client, name, description string) Tool {
	return Tool{
		Callable: Callable{
			Name:        name,
			Description: description,
			Signature: &Signature{Params: []Param{
				{Name: "command", Type: String()},
			}},
		},
		Handler: func(ctx context.Context, args json.RawMessage) (any, error) {
			var in struct {
				Command string `json:"command"`
			}
			if err := json.Unmarshal(args, &in); err != nil {
				return nil, fmt.Errorf("decode sandbox args: %w", err)
			}
			res, err := client.Run(ctx, in.Command, nil)
			if err != nil {
				return nil, err
			}
			if res.Status != 0 {
				return nil, fmt.Errorf("sandbox command failed (status %d): %s", res.Status, res.Output)
			}
			return res.Output, nil
		},
	}
}
