package testutil

import (
	"time"

	"github.com/toolspec/toolspec"
)

// NewTestRegistry returns a Registry with long timeout and panic recovery
// enabled, suitable for tests.
func NewTestRegistry(tools ...toolspec.Tool) *toolspec.Registry {
	reg := toolspec.NewRegistry(
		toolspec.WithDefaultTimeout(30*time.Second),
		toolspec.WithRecoverPanics(true),
	)
	for _, t := range tools {
		reg.Register(t)
	}
	return reg
}
