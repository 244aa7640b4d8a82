// Package mcp exposes the topic queue as MCP tools over stdio, so
// agent sessions can plan, generate, and ship posts without the CLI.
package mcp

import (
	"github.com/mark3labs/mcp-go/server"

	"github.com/hpungsan/planq/internal/config"
	"github.com/hpungsan/planq/internal/draft"
	"github.com/hpungsan/planq/internal/queue"
)

// toolEntry pairs a tool definition with a handler factory.
type toolEntry struct {
	def     func() toolDef
	handler func(*Handlers) server.ToolHandlerFunc
}

// toolRegistry maps tool names to their definitions and handler factories.
var toolRegistry = map[string]toolEntry{
	"topic_add": {
		def:     addToolDef,
		handler: func(h *Handlers) server.ToolHandlerFunc { return h.HandleAdd },
	},
	"topic_fetch": {
		def:     fetchToolDef,
		handler: func(h *Handlers) server.ToolHandlerFunc { return h.HandleFetch },
	},
	"topic_list": {
		def:     listToolDef,
		handler: func(h *Handlers) server.ToolHandlerFunc { return h.HandleList },
	},
	"topic_today": {
		def:     todayToolDef,
		handler: func(h *Handlers) server.ToolHandlerFunc { return h.HandleToday },
	},
	"topic_ready": {
		def:     readyToolDef,
		handler: func(h *Handlers) server.ToolHandlerFunc { return h.HandleReady },
	},
	"topic_generate": {
		def:     generateToolDef,
		handler: func(h *Handlers) server.ToolHandlerFunc { return h.HandleGenerate },
	},
	"topic_set_status": {
		def:     setStatusToolDef,
		handler: func(h *Handlers) server.ToolHandlerFunc { return h.HandleSetStatus },
	},
	"topic_delete": {
		def:     deleteToolDef,
		handler: func(h *Handlers) server.ToolHandlerFunc { return h.HandleDelete },
	},
	"topic_export": {
		def:     exportToolDef,
		handler: func(h *Handlers) server.ToolHandlerFunc { return h.HandleExport },
	},
	"topic_import": {
		def:     importToolDef,
		handler: func(h *Handlers) server.ToolHandlerFunc { return h.HandleImport },
	},
}

// AllToolNames returns a list of all valid tool names.
func AllToolNames() []string {
	names := make([]string, 0, len(toolRegistry))
	for name := range toolRegistry {
		names = append(names, name)
	}
	return names
}

// NewServer creates a new MCP server with planq tools registered.
func NewServer(store *queue.Store, gen *draft.Client, cfg *config.Config, baseDir, version string) *server.MCPServer {
	s := server.NewMCPServer(
		"planq",
		version,
		server.WithToolCapabilities(true),
	)

	h := NewHandlers(store, gen, cfg, baseDir)

	for _, entry := range toolRegistry {
		s.AddTool(entry.def(), entry.handler(h))
	}

	return s
}

// Run starts the MCP server using stdio transport.
func Run(store *queue.Store, gen *draft.Client, cfg *config.Config, baseDir, version string) error {
	s := NewServer(store, gen, cfg, baseDir, version)
	return server.ServeStdio(s)
}
