package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
)

// Tool is one operation exposed over the protocol
type Tool interface {
	Execute(ctx context.Context, args map[string]interface{}) (interface{}, error)
	Description() string
	Schema() map[string]interface{}
}

// Handler dispatches JSON-RPC requests to registered tools
type Handler struct {
	tools map[string]Tool
}

// NewHandler creates an empty handler
func NewHandler() *Handler {
	return &Handler{tools: make(map[string]Tool)}
}

// RegisterTool registers a tool under name
func (h *Handler) RegisterTool(name string, tool Tool) {
	h.tools[name] = tool
}

// Handle processes one JSON-RPC request
func (h *Handler) Handle(ctx context.Context, req *JSONRPCRequest) *JSONRPCResponse {
	switch req.Method {
	case "initialize":
		return h.handleInitialize(req)
	case "tools/list":
		return h.handleToolsList(req)
	case "tools/call":
		return h.handleToolCall(ctx, req)
	default:
		return &JSONRPCResponse{
			JSONRPC: "2.0",
			ID:      req.ID,
			Error:   &JSONRPCError{Code: -32601, Message: "Method not found"},
		}
	}
}

func (h *Handler) handleInitialize(req *JSONRPCRequest) *JSONRPCResponse {
	return &JSONRPCResponse{
		JSONRPC: "2.0",
		ID:      req.ID,
		Result: map[string]interface{}{
			"protocolVersion": "1.0",
			"capabilities": map[string]interface{}{
				"tools": map[string]interface{}{},
			},
			"serverInfo": map[string]string{
				"name":    "cxplain",
				"version": "0.1.0",
			},
		},
	}
}

func (h *Handler) handleToolsList(req *JSONRPCRequest) *JSONRPCResponse {
	names := make([]string, 0, len(h.tools))
	for name := range h.tools {
		names = append(names, name)
	}
	sort.Strings(names)

	toolsList := make([]map[string]interface{}, 0, len(names))
	for _, name := range names {
		tool := h.tools[name]
		toolsList = append(toolsList, map[string]interface{}{
			"name":        name,
			"description": tool.Description(),
			"inputSchema": tool.Schema(),
		})
	}

	return &JSONRPCResponse{
		JSONRPC: "2.0",
		ID:      req.ID,
		Result:  map[string]interface{}{"tools": toolsList},
	}
}

func (h *Handler) handleToolCall(ctx context.Context, req *JSONRPCRequest) *JSONRPCResponse {
	var params toolCallParams
	if err := json.Unmarshal(req.Params, &params); err != nil {
		return &JSONRPCResponse{
			JSONRPC: "2.0",
			ID:      req.ID,
			Error:   &JSONRPCError{Code: -32602, Message: "Invalid params"},
		}
	}

	tool, ok := h.tools[params.Name]
	if !ok {
		return &JSONRPCResponse{
			JSONRPC: "2.0",
			ID:      req.ID,
			Error:   &JSONRPCError{Code: -32602, Message: fmt.Sprintf("Unknown tool: %s", params.Name)},
		}
	}

	result, err := tool.Execute(ctx, params.Arguments)
	if err != nil {
		return &JSONRPCResponse{
			JSONRPC: "2.0",
			ID:      req.ID,
			Error:   &JSONRPCError{Code: -32000, Message: err.Error()},
		}
	}

	return &JSONRPCResponse{
		JSONRPC: "2.0",
		ID:      req.ID,
		Result:  result,
	}
}
