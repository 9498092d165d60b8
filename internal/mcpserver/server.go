// Package mcpserver provides an MCP (Model Context Protocol) server
// that exposes Raido catalog tools for LLM integration via stdio transport.
package mcpserver

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/starford/raido/internal/catalog"
	"github.com/starford/raido/internal/models"
	"github.com/starford/raido/internal/store"
)

// recordView augments a record with the human-readable category label for
// tool output.
type recordView struct {
	models.Record
	CategoryLabel string `json:"categoryLabel"`
}

func newRecordView(rec models.Record) recordView {
	return recordView{Record: rec, CategoryLabel: rec.Category.DisplayName()}
}

// Server wraps the MCP server with Raido tools.
type Server struct {
	mcp *server.MCPServer
	svc *catalog.Service
}

// New creates a new MCP server with all Raido tools registered.
func New(svc *catalog.Service) *Server {
	s := &Server{svc: svc}

	s.mcp = server.NewMCPServer(
		"Raido",
		"1.0.0",
		server.WithToolCapabilities(false),
		server.WithResourceCapabilities(false, false),
	)

	s.mcp.AddTool(mcp.NewTool("list_records",
		mcp.WithDescription("List catalog records, optionally filtered by a search term "+
			"(matched against title, description, and tags) and a category, ordered by "+
			"newest, oldest, or alphabetical."),
		mcp.WithString("search", mcp.Description("Free-text search term")),
		mcp.WithString("category", mcp.Description("Exact category filter (mobile-app, web-app, website, ui-kit, other)")),
		mcp.WithString("sort", mcp.Description("Sort order: newest (default), oldest, alphabetical")),
	), s.listRecords)

	s.mcp.AddTool(mcp.NewTool("get_record",
		mcp.WithDescription("Read one catalog record by id."),
		mcp.WithString("id", mcp.Required(), mcp.Description("Record id")),
	), s.getRecord)

	s.mcp.AddTool(mcp.NewTool("create_record",
		mcp.WithDescription("Create a new catalog record. The URL must be a Figma "+
			"prototype or file share link (figma.com with /proto/ or /file/)."),
		mcp.WithString("title", mcp.Required(), mcp.Description("Record title (max 200 chars)")),
		mcp.WithString("url", mcp.Required(), mcp.Description("Figma share URL")),
		mcp.WithString("description", mcp.Description("Optional description (max 1000 chars)")),
		mcp.WithString("category", mcp.Description("Category (mobile-app, web-app, website, ui-kit, other); defaults to other")),
		mcp.WithString("tags", mcp.Description("Comma-separated tags")),
	), s.createRecord)

	s.mcp.AddTool(mcp.NewTool("update_record",
		mcp.WithDescription("Replace every mutable field of an existing record. "+
			"Omitting tags clears them."),
		mcp.WithString("id", mcp.Required(), mcp.Description("Record id")),
		mcp.WithString("title", mcp.Required(), mcp.Description("Record title")),
		mcp.WithString("url", mcp.Required(), mcp.Description("Figma share URL")),
		mcp.WithString("description", mcp.Description("Description")),
		mcp.WithString("category", mcp.Description("Category")),
		mcp.WithString("tags", mcp.Description("Comma-separated tags")),
	), s.updateRecord)

	s.mcp.AddTool(mcp.NewTool("delete_record",
		mcp.WithDescription("Permanently delete a catalog record by id."),
		mcp.WithString("id", mcp.Required(), mcp.Description("Record id")),
	), s.deleteRecord)

	return s
}

// ServeStdio starts the MCP server on stdin/stdout.
func (s *Server) ServeStdio() error {
	return server.ServeStdio(s.mcp)
}

// MCPServer returns the underlying server for testing.
func (s *Server) MCPServer() *server.MCPServer {
	return s.mcp
}

func (s *Server) listRecords(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	f := store.Filter{}
	if v, err := req.RequireString("search"); err == nil {
		f.Search = v
	}
	if v, err := req.RequireString("category"); err == nil {
		f.Category = v
	}
	if v, err := req.RequireString("sort"); err == nil {
		f.Sort = store.ParseSort(v)
	}

	recs, err := s.svc.List(ctx, f)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	views := make([]recordView, 0, len(recs))
	for _, rec := range recs {
		views = append(views, newRecordView(rec))
	}
	out, _ := json.MarshalIndent(views, "", "  ")
	return mcp.NewToolResultText(string(out)), nil
}

func (s *Server) getRecord(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	id, err := req.RequireString("id")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	rec, err := s.svc.Get(ctx, id)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("not found: %s", id)), nil
	}
	out, _ := json.MarshalIndent(newRecordView(*rec), "", "  ")
	return mcp.NewToolResultText(string(out)), nil
}

func (s *Server) createRecord(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	in, errResult := inputFromRequest(req)
	if errResult != nil {
		return errResult, nil
	}
	rec, err := s.svc.Create(ctx, in)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return mcp.NewToolResultText(fmt.Sprintf("created: %s", rec.ID)), nil
}

func (s *Server) updateRecord(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	id, err := req.RequireString("id")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	in, errResult := inputFromRequest(req)
	if errResult != nil {
		return errResult, nil
	}
	if _, err := s.svc.Update(ctx, id, in); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return mcp.NewToolResultText(fmt.Sprintf("updated: %s", id)), nil
}

func (s *Server) deleteRecord(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	id, err := req.RequireString("id")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	if err := s.svc.Delete(ctx, id); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return mcp.NewToolResultText(fmt.Sprintf("deleted: %s", id)), nil
}

func inputFromRequest(req mcp.CallToolRequest) (catalog.Input, *mcp.CallToolResult) {
	title, err := req.RequireString("title")
	if err != nil {
		return catalog.Input{}, mcp.NewToolResultError(err.Error())
	}
	url, err := req.RequireString("url")
	if err != nil {
		return catalog.Input{}, mcp.NewToolResultError(err.Error())
	}
	in := catalog.Input{Title: title, ExternalURL: url}
	if v, err := req.RequireString("description"); err == nil {
		in.Description = v
	}
	if v, err := req.RequireString("category"); err == nil {
		in.Category = v
	}
	if v, err := req.RequireString("tags"); err == nil {
		in.Tags = v
	}
	return in, nil
}
