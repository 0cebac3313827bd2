package toolspec

import (
	"context"
	"encoding/json"
	"net"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/toolspec/toolspec/sandbox"
)

// fakeSandbox answers one connection with the given lines.
func fakeSandbox(t *testing.T, lines ...string) string {
	t.Helper()
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	t.Cleanup(func() { _ = ln.Close() })
	go func() {
		conn, err := ln.Accept()
		if err != nil {
			return
		}
		defer conn.Close()
		buf := make([]byte, 4096)
		_, _ = conn.Read(buf)
		for _, line := range lines {
			_, _ = conn.Write([]byte(line + "\n"))
		}
	}()
	return ln.Addr().String()
}

func TestNewSandboxTool_Schema(t *testing.T) {
	t.Parallel()
	tool := NewSandboxTool(&sandbox.Client{}, "run_command", "Runs a shell command in the sandbox.")
	d, err := Compile(tool.Callable)
	require.NoError(t, err)
	b, err := json.Marshal(d)
	require.NoError(t, err)
	assert.JSONEq(t,
		`{"type":"function","function":{"name":"run_command","description":"Runs a shell command in the sandbox.","parameters":{"type":"object","properties":{"command":{"type":"string"}},"required":["command"]}}}`,
		string(b))
}

func TestNewSandboxTool_Execute(t *testing.T) {
	addr := fakeSandbox(t, `{"type":"final","status":0,"result":"hello\n"}`)
	reg := NewRegistry()
	reg.Register(NewSandboxTool(&sandbox.Client{Addr: addr}, "run_command", "Runs a command."))
	res := reg.Execute(context.Background(), Call{
		ToolName: "run_command",
		Args:     json.RawMessage(`{"command":"echo hello"}`),
	})
	require.NoError(t, res.Err)
	assert.Equal(t, "hello\n", res.Content)
}

func TestNewSandboxTool_NonZeroStatus(t *testing.T) {
	addr := fakeSandbox(t, `{"type":"final","status":127,"result":"command not found"}`)
	reg := NewRegistry()
	reg.Register(NewSandboxTool(&sandbox.Client{Addr: addr}, "run_command", "Runs a command."))
	res := reg.Execute(context.Background(), Call{
		ToolName: "run_command",
		Args:     json.RawMessage(`{"command":"nope"}`),
	})
	require.Error(t, res.Err)
	assert.Contains(t, res.Err.Error(), "status 127")
}
