// Package mcpserver provides an MCP (Model Context Protocol) server that
// exposes the question catalog and view rendering over stdio.
package mcpserver

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/starford/quizbook/internal/apperr"
	"github.com/starford/quizbook/internal/index"
	"github.com/starford/quizbook/internal/models"
	"github.com/starford/quizbook/internal/questionservice"
)

// ContractURI is the resource URI of the authoring contract.
const ContractURI = "quizbook://question-format"

// Server wraps the MCP server with quizbook tools.
type Server struct {
	mcp *server.MCPServer
	svc *questionservice.Service
}

// New creates a new MCP server with all tools registered.
func New(svc *questionservice.Service, version string) *Server {
	s := &Server{svc: svc}

	s.mcp = server.NewMCPServer(
		"quizbook",
		version,
		server.WithToolCapabilities(false),
		server.WithResourceCapabilities(false, false),
	)

	s.mcp.AddTool(mcp.NewTool("search_questions",
		mcp.WithDescription("Full-text search through question titles and TL;DR excerpts."),
		mcp.WithString("query", mcp.Required(), mcp.Description("Search query string")),
		mcp.WithNumber("limit", mcp.Description("Maximum number of hits (default 20)")),
	), s.searchQuestions)

	s.mcp.AddTool(mcp.NewTool("read_question",
		mcp.WithDescription("Read one question: metadata, TL;DR excerpt and the full markdown body."),
		mcp.WithString("slug", mcp.Required(), mcp.Description("Question slug, e.g. explain-hoisting")),
	), s.readQuestion)

	s.mcp.AddTool(mcp.NewTool("list_questions",
		mcp.WithDescription("List questions ordered by ranking, optionally filtered by level or featured flag."),
		mcp.WithString("level", mcp.Description("basic, intermediate or advanced"),
			mcp.Enum(string(models.LevelBasic), string(models.LevelIntermediate), string(models.LevelAdvanced))),
		mcp.WithBoolean("featured", mcp.Description("Only featured (true) or non-featured (false) questions")),
	), s.listQuestions)

	s.mcp.AddTool(mcp.NewTool("render_view",
		mcp.WithDescription("Render one configured README view (table of contents and body) without writing the document."),
		mcp.WithString("name", mcp.Required(), mcp.Description("View name, e.g. top or basic")),
	), s.renderView)

	s.mcp.AddTool(mcp.NewTool("get_question_contract",
		mcp.WithDescription("Returns the authoring contract for question files. "+
			"Read it before editing metadata.json or a localized .mdx file."),
	), s.getQuestionContract)

	s.mcp.AddResource(
		mcp.NewResource(ContractURI, "Question Format Contract",
			mcp.WithResourceDescription("Layout of a question directory and the TL;DR section the README is built from."),
			mcp.WithMIMEType("text/markdown"),
		),
		s.readContractResource,
	)

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

func jsonResult(v any) (*mcp.CallToolResult, error) {
	out, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return mcp.NewToolResultText(string(out)), nil
}

func (s *Server) searchQuestions(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	query, err := req.RequireString("query")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	results, err := s.svc.Search(ctx, query, req.GetInt("limit", 20))
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return jsonResult(results)
}

func (s *Server) readQuestion(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	slug, err := req.RequireString("slug")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	q, err := s.svc.GetQuestion(ctx, slug)
	if errors.Is(err, apperr.ErrNotFound) {
		return mcp.NewToolResultError(fmt.Sprintf("not found: %s", slug)), nil
	}
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return jsonResult(q)
}

func (s *Server) listQuestions(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	f := index.Filter{Level: models.Level(req.GetString("level", ""))}
	if _, ok := req.GetArguments()["featured"]; ok {
		featured := req.GetBool("featured", false)
		f.Featured = &featured
	}
	rows, total, err := s.svc.ListQuestions(ctx, f)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return jsonResult(map[string]any{"questions": rows, "total": total})
}

func (s *Server) renderView(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	name, err := req.RequireString("name")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	out, err := s.svc.RenderView(ctx, name)
	if errors.Is(err, apperr.ErrNotFound) {
		return mcp.NewToolResultError(fmt.Sprintf("unknown view: %s", name)), nil
	}
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	text := out.Body
	if out.TOC != "" {
		text = out.TOC + "\n\n" + out.Body
	}
	return mcp.NewToolResultText(text), nil
}

func (s *Server) getQuestionContract(_ context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return mcp.NewToolResultText(QuestionFormatContract), nil
}

func (s *Server) readContractResource(_ context.Context, _ mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
	return []mcp.ResourceContents{
		mcp.TextResourceContents{
			URI:      ContractURI,
			MIMEType: "text/markdown",
			Text:     QuestionFormatContract,
		},
	}, nil
}
