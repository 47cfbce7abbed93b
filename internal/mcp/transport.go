package mcp

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
)

// StdioTransport handles JSON-RPC communication over stdio
type StdioTransport struct {
	scanner *bufio.Scanner
	out     io.Writer
	handler *Handler
}

// NewStdioTransport creates a new stdio transport
func NewStdioTransport(handler *Handler) *StdioTransport {
	return &StdioTransport{
		scanner: bufio.NewScanner(os.Stdin),
		out:     os.Stdout,
		handler: handler,
	}
}

// Start begins listening for JSON-RPC requests on stdin
func (t *StdioTransport) Start(ctx context.Context) error {
	// Snippets can exceed the default scanner buffer
	t.scanner.Buffer(make([]byte, 0, 64*1024), 4*1024*1024)

	for t.scanner.Scan() {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		line := t.scanner.Text()
		if line == "" {
			continue
		}

		var req JSONRPCRequest
		if err := json.Unmarshal([]byte(line), &req); err != nil {
			t.sendError(nil, -32700, "Parse error")
			continue
		}

		response := t.handler.Handle(ctx, &req)
		t.send(response)
	}
	return t.scanner.Err()
}

func (t *StdioTransport) send(response *JSONRPCResponse) {
	respJSON, _ := json.Marshal(response)
	fmt.Fprintln(t.out, string(respJSON))
}

// sendError sends a JSON-RPC error response
func (t *StdioTransport) sendError(id interface{}, code int, message string) {
	t.send(&JSONRPCResponse{
		JSONRPC: "2.0",
		ID:      id,
		Error: &JSONRPCError{
			Code:    code,
			Message: message,
		},
	})
}
