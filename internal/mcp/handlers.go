package mcp

import (
	"context"
	"encoding/json"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/hpungsan/c1assist/internal/config"
	"github.com/hpungsan/c1assist/internal/errors"
	"github.com/hpungsan/c1assist/internal/log"
	"github.com/hpungsan/c1assist/internal/ops"
)

// Handlers holds dependencies for MCP tool handlers.
type Handlers struct {
	cfg *config.Config
}

// NewHandlers creates a new Handlers instance.
func NewHandlers(cfg *config.Config) *Handlers {
	return &Handlers{cfg: cfg}
}

// ProjectRequest represents the arguments for project_create and project_plan.
type ProjectRequest struct {
	Name        string `json:"name"`
	FolderCount int    `json:"folder_count"`
	Location    string `json:"location"`
}

// SessionPatchRequest represents the arguments for session_patch.
type SessionPatchRequest struct {
	DatabasePath string `json:"database_path"`
	FolderCount  int    `json:"folder_count"`
	SkipExisting bool   `json:"skip_existing,omitempty"`
}

// SessionInspectRequest represents the arguments for session_inspect.
type SessionInspectRequest struct {
	DatabasePath string `json:"database_path"`
}

// HandleProjectCreate handles the project_create tool.
func (h *Handlers) HandleProjectCreate(_ context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args, err := decode[ProjectRequest](req)
	if err != nil {
		return errorResult(err), nil
	}

	result, err := ops.Create(h.cfg, ops.CreateInput{
		Name:        args.Name,
		FolderCount: args.FolderCount,
		Location:    args.Location,
	})
	if err != nil {
		return errorResult(err), nil
	}

	return successResult(result)
}

// HandleProjectPlan handles the project_plan tool.
func (h *Handlers) HandleProjectPlan(_ context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args, err := decode[ProjectRequest](req)
	if err != nil {
		return errorResult(err), nil
	}

	result, err := ops.Plan(h.cfg, ops.CreateInput{
		Name:        args.Name,
		FolderCount: args.FolderCount,
		Location:    args.Location,
	})
	if err != nil {
		return errorResult(err), nil
	}

	return successResult(result)
}

// HandleSessionPatch handles the session_patch tool.
func (h *Handlers) HandleSessionPatch(_ context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args, err := decode[SessionPatchRequest](req)
	if err != nil {
		return errorResult(err), nil
	}

	result, err := ops.Patch(h.cfg, ops.PatchInput{
		DatabasePath: args.DatabasePath,
		FolderCount:  args.FolderCount,
		SkipExisting: args.SkipExisting,
	})
	if err != nil {
		return errorResult(err), nil
	}

	return successResult(result)
}

// HandleSessionInspect handles the session_inspect tool.
func (h *Handlers) HandleSessionInspect(_ context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args, err := decode[SessionInspectRequest](req)
	if err != nil {
		return errorResult(err), nil
	}

	result, err := ops.Inspect(h.cfg, ops.InspectInput{DatabasePath: args.DatabasePath})
	if err != nil {
		return errorResult(err), nil
	}

	return successResult(result)
}

// errorResult creates an MCP error result from an error.
func errorResult(err error) *mcp.CallToolResult {
	var payload map[string]any

	if cErr, ok := err.(*errors.C1Error); ok {
		errorObj := map[string]any{
			"code":    cErr.Code,
			"kind":    cErr.Kind(),
			"message": cErr.Message,
			"status":  cErr.Status(),
		}
		// Internal errors may carry SQL text or paths; keep their details out.
		if cErr.Code != errors.ErrInternal && cErr.Details != nil {
			errorObj["details"] = cErr.Details
		}
		payload = map[string]any{"error": errorObj}
	} else {
		log.Error().Err(err).Msg("unexpected tool error")
		payload = map[string]any{
			"error": map[string]any{
				"code":    errors.ErrInternal,
				"kind":    errors.KindInternal,
				"message": "an internal error occurred",
				"status":  500,
			},
		}
	}

	content, _ := json.Marshal(payload)
	return &mcp.CallToolResult{
		Content: []mcp.Content{mcp.TextContent{Type: "text", Text: string(content)}},
		IsError: true,
	}
}

// successResult creates an MCP success result from any data.
func successResult(data any) (*mcp.CallToolResult, error) {
	return mcp.NewToolResultJSON(data)
}
