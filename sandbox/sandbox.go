// Package sandbox is a client for the line-delimited streaming protocol used
// to run commands in an external execution sandbox. The sandbox listens on
// TCP, receives a command, and answers with newline-delimited JSON frames:
// zero or more {"type":"chunk","data":...} frames followed by one
// {"type":"final","status":...,"result":...} frame.
package sandbox

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net"
	"time"
)

// DefaultAddr is the address the sandbox container maps its command port to.
const DefaultAddr = "localhost:12345"

// Client runs commands in the sandbox. The zero value uses DefaultAddr.
type Client struct {
	// Addr is the sandbox's TCP address.
	Addr string
	// DialTimeout bounds connection establishment; zero means no limit
	// beyond ctx.
	DialTimeout time.Duration
}

// Result is the sandbox's final answer for one command. Status -1 with a
// descriptive Output means the stream ended without a final frame.
type Result struct {
	Status int    `json:"status"`
	Output string `json:"result"`
}

// frame is one line of the wire protocol.
type frame struct {
	Type   string `json:"type"`
	Data   string `json:"data"`
	Status int    `json:"status"`
	Result string `json:"result"`
}

// Run sends command to the sandbox and streams output. onChunk, when non-nil,
// receives each chunk's data as it arrives; the final frame's status and
// result are returned. Lines that are not valid JSON are skipped. Respects
// ctx cancellation and deadline via the connection deadline.
func (c *Client) Run(ctx context.Context, command string, onChunk func(data string)) (Result, error) {
	addr := c.Addr
	if addr == "" {
		addr = DefaultAddr
	}
	d := net.Dialer{Timeout: c.DialTimeout}
	conn, err := d.DialContext(ctx, "tcp", addr)
	if err != nil {
		return Result{Status: -1}, fmt.Errorf("dial sandbox: %w", err)
	}
	defer conn.Close()
	if deadline, ok := ctx.Deadline(); ok {
		if err := conn.SetDeadline(deadline); err != nil {
			return Result{Status: -1}, err
		}
	}
	stop := context.AfterFunc(ctx, func() {
		// Unblock the reader when the caller cancels.
		conn.SetDeadline(time.Now())
	})
	defer stop()

	if _, err := conn.Write([]byte(command)); err != nil {
		return Result{Status: -1}, fmt.Errorf("send command: %w", err)
	}

	sc := bufio.NewScanner(conn)
	sc.Buffer(make([]byte, 0, 64*1024), 1<<20)
	for sc.Scan() {
		line := bytes.TrimSpace(sc.Bytes())
		if len(line) == 0 {
			continue
		}
		var f frame
		if err := json.Unmarshal(line, &f); err != nil {
			continue
		}
		switch f.Type {
		case "chunk":
			if onChunk != nil {
				onChunk(f.Data)
			}
		case "final":
			return Result{Status: f.Status, Output: f.Result}, nil
		}
	}
	if err := sc.Err(); err != nil {
		if ctx.Err() != nil {
			return Result{Status: -1}, ctx.Err()
		}
		return Result{Status: -1}, err
	}
	return Result{Status: -1, Output: "connection closed without final response"}, nil
}
