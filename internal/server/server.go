// Package server exposes snapshot, find, and execute operations as MCP
// tools over stdio or streamable HTTP.
package server

import (
	"fmt"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	mcpserver "github.com/mark3labs/mcp-go/server"

	"github.com/computeruseprotocol/go-sdk/internal/session"
)

// Config holds MCP server configuration.
type Config struct {
	Transport string // stdio | streamable-http
	Port      int
	Session   session.Config
}

// Server wraps the MCP server with the shared session.
type Server struct {
	sess *session.Session
	mcp  *mcpserver.MCPServer
}

// New creates and configures an MCP server with all tools registered.
func New(cfg Config) (*Server, error) {
	sess, err := session.NewFromConfig(cfg.Session)
	if err != nil {
		return nil, err
	}

	s := &Server{
		sess: sess,
		mcp: mcpserver.NewMCPServer(
			"cup",
			"0.1.0",
		),
	}
	s.registerTools()
	return s, nil
}

// Serve starts the configured transport and blocks.
func (s *Server) Serve(cfg Config) error {
	switch cfg.Transport {
	case "stdio", "":
		return mcpserver.ServeStdio(s.mcp)
	case "streamable-http":
		httpServer := mcpserver.NewStreamableHTTPServer(s.mcp)
		return httpServer.Start(fmt.Sprintf(":%d", cfg.Port))
	default:
		return fmt.Errorf("unsupported transport: %s (use stdio or streamable-http)", cfg.Transport)
	}
}

func (s *Server) registerTools() {
	s.mcp.AddTool(
		mcp.NewTool("snapshot",
			mcp.WithDescription("Capture the UI as compact text. Each element has an id (e0, e1, ...) usable with the execute tool until the next snapshot."),
			mcp.WithString("scope", mcp.Description("What to capture: overview, foreground, desktop, or full (default: foreground)")),
			mcp.WithString("detail", mcp.Description("Pruning level: minimal, standard, or full (default: standard)")),
			mcp.WithNumber("max_depth", mcp.Description("Max tree depth to walk (0 = unlimited)")),
			mcp.WithNumber("max_chars", mcp.Description("Output character budget (default: 40000)")),
		),
		s.handleSnapshot,
	)

	s.mcp.AddTool(
		mcp.NewTool("snapshot_app",
			mcp.WithDescription("Capture the UI of one application window matched by title substring."),
			mcp.WithString("app", mcp.Description("Window title or app name substring"), mcp.Required()),
			mcp.WithString("detail", mcp.Description("Pruning level: minimal, standard, or full")),
			mcp.WithNumber("max_depth", mcp.Description("Max tree depth to walk (0 = unlimited)")),
			mcp.WithNumber("max_chars", mcp.Description("Output character budget (default: 40000)")),
		),
		s.handleSnapshotApp,
	)

	s.mcp.AddTool(
		mcp.NewTool("windows",
			mcp.WithDescription("List open windows without capturing any tree."),
		),
		s.handleWindows,
	)

	s.mcp.AddTool(
		mcp.NewTool("find",
			mcp.WithDescription("Search the last snapshot for elements by free-form query, role, name, or state. Takes a foreground snapshot automatically if none exists."),
			mcp.WithString("query", mcp.Description("Free-form query, e.g. 'search bar' or 'submit button'")),
			mcp.WithString("role", mcp.Description("Role filter, e.g. 'button' or 'textbox'")),
			mcp.WithString("name", mcp.Description("Name filter")),
			mcp.WithString("state", mcp.Description("Required state, e.g. 'focused' or 'checked'")),
			mcp.WithNumber("limit", mcp.Description("Max results (default: 5)")),
		),
		s.handleFind,
	)

	s.mcp.AddTool(
		mcp.NewTool("execute",
			mcp.WithDescription("Perform an action on an element from the last snapshot, or press keys. Actions: click, doubleclick, rightclick, type, setvalue, scroll, toggle, expand, collapse, select, focus, increment, decrement, dismiss, longpress, press_keys."),
			mcp.WithString("action", mcp.Description("Action name"), mcp.Required()),
			mcp.WithString("element_id", mcp.Description("Element id from the last snapshot (e.g. 'e14')")),
			mcp.WithString("value", mcp.Description("Text for type/setvalue")),
			mcp.WithString("direction", mcp.Description("Scroll direction: up, down, left, right")),
			mcp.WithString("keys", mcp.Description("Key combo for press_keys (e.g. 'ctrl+s')")),
		),
		s.handleExecute,
	)

	s.mcp.AddTool(
		mcp.NewTool("batch",
			mcp.WithDescription("Execute several actions in order, stopping at the first failure. Steps also accept {action: wait, ms: N}."),
			mcp.WithArray("steps", mcp.Description("Array of step objects: {action, element_id?, value?, direction?, keys?, ms?}"), mcp.Required()),
		),
		s.handleBatch,
	)
}

// defaultToolTimeout bounds one tool invocation.
const defaultToolTimeout = 60 * time.Second
