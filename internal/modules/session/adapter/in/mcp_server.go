package in

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	sessiondto "audiomark/internal/modules/session/dto"
	sessionin "audiomark/internal/modules/session/port/in"
	"audiomark/internal/platform/timecode"
)

// MCPHandler exposes the session to assistants over the Model Context
// Protocol. Pending switches are never resolved implicitly here.
type MCPHandler struct {
	usecase sessionin.Usecase
}

func NewMCPHandler(usecase sessionin.Usecase) MCPHandler {
	return MCPHandler{usecase: usecase}
}

func (h MCPHandler) Server(version string) *server.MCPServer {
	s := server.NewMCPServer("audiomark", version, server.WithToolCapabilities(false))
	s.AddTool(mcp.NewTool("status",
		mcp.WithDescription("Show the open audio document, its bookmarks and any pending switch"),
	), h.Status)
	s.AddTool(mcp.NewTool("mark",
		mcp.WithDescription("Record a bookmark at a playback position"),
		mcp.WithString("position", mcp.Required(), mcp.Description("Milliseconds, MM:SS or HH:MM:SS")),
	), h.Mark)
	s.AddTool(mcp.NewTool("preview",
		mcp.WithDescription("Render the bookmark note without sharing it"),
	), h.Preview)
	s.AddTool(mcp.NewTool("export",
		mcp.WithDescription("Share the bookmark note through the selected target"),
	), h.Export)
	s.AddTool(mcp.NewTool("open",
		mcp.WithDescription("Open an audio document; unsaved bookmarks defer the switch"),
		mcp.WithString("ref", mcp.Required(), mcp.Description("File path or URI of the audio document")),
	), h.Open)
	return s
}

func (h MCPHandler) Status(ctx context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	out, err := h.usecase.Status(ctx)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return jsonResult(out)
}

func (h MCPHandler) Mark(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	raw, err := req.RequireString("position")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	ms, err := timecode.Parse(raw)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	out, err := h.usecase.RecordBookmark(ctx, ms)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return mcp.NewToolResultText(fmt.Sprintf("bookmark %d at %s", out.Bookmark.Index+1, out.Bookmark.Time)), nil
}

func (h MCPHandler) Preview(ctx context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	out, err := h.usecase.Preview(ctx)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return mcp.NewToolResultText(out.Body), nil
}

func (h MCPHandler) Export(ctx context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	out, err := h.usecase.Export(ctx)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return jsonResult(out)
}

func (h MCPHandler) Open(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	ref, err := req.RequireString("ref")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	out, err := h.usecase.OpenDocument(ctx, sessiondto.OpenInput{Ref: ref})
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return jsonResult(out)
}

func jsonResult(v any) (*mcp.CallToolResult, error) {
	raw, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("encode tool result: %w", err)
	}
	return mcp.NewToolResultText(string(raw)), nil
}
