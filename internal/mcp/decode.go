package mcp

import (
	"encoding/json"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/hpungsan/c1assist/internal/errors"
)

// decode unmarshals MCP request arguments into a typed struct.
// Malformed arguments are reported as invalid input.
func decode[T any](req mcp.CallToolRequest) (T, error) {
	var result T
	b, err := json.Marshal(req.GetArguments())
	if err != nil {
		return result, errors.NewInvalidInput(fmt.Sprintf("marshal args: %v", err))
	}
	if err := json.Unmarshal(b, &result); err != nil {
		return result, errors.NewInvalidInput(fmt.Sprintf("unmarshal args: %v", err))
	}
	return result, nil
}
