// Package mcp exposes playback control as an MCP server so agent tooling can
// start, inspect, and stop traversal playback sessions.
package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"github.com/stagewalk/stagewalk/pkg/domain"
)

// Engine defines the interface required by the MCP server to drive playback.
type Engine interface {
	Play(ds *domain.Dataset, skip bool, onComplete func()) domain.Progress
	Progress() domain.Progress
	Stop()
}

// Server wraps the playback engine and exposes it as an MCP server.
type Server struct {
	engine    Engine
	version   string
	mcpServer *server.MCPServer
}

// NewServer creates a new MCP server instance.
func NewServer(engine Engine, version string) *Server {
	s := &Server{
		engine:    engine,
		version:   strings.TrimSpace(version),
		mcpServer: server.NewMCPServer("stagewalk-mcp", strings.TrimSpace(version)),
	}
	s.registerTools()
	s.registerResources()
	return s
}

// ServeStdio starts the server on Stdin/Stdout.
func (s *Server) ServeStdio() error {
	return server.ServeStdio(s.mcpServer)
}

// ServeSSE starts the server on the given port using SSE.
func (s *Server) ServeSSE(ctx context.Context, port int) error {
	addr := fmt.Sprintf(":%d", port)
	baseURL := fmt.Sprintf("http://localhost:%d", port)

	sseServer := server.NewSSEServer(s.mcpServer, server.WithBaseURL(baseURL))

	mux := http.NewServeMux()
	mux.Handle("/sse", corsMiddleware(sseServer.SSEHandler()))
	mux.Handle("/message", corsMiddleware(sseServer.MessageHandler()))

	httpServer := &http.Server{
		Addr:    addr,
		Handler: mux,
	}

	serverErrors := make(chan error, 1)

	go func() {
		slog.Info("MCP server listening (SSE)", "address", addr)
		serverErrors <- httpServer.ListenAndServe()
	}()

	select {
	case err := <-serverErrors:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		fmt.Println("\nShutdown signal received, shutting down server...")
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("could not stop server gracefully: %w", err)
		}
		return nil
	}
}

func corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization, X-Requested-With")

		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}

func (s *Server) registerTools() {
	// TOOL: play_traversal
	playTool := mcp.NewTool("play_traversal",
		mcp.WithDescription("Start animated playback of a traversal dataset. Any running session is superseded."),
		mcp.WithString("dataset", mcp.Required(), mcp.Description("JSON object with nodes, edges, node_order and edge_order")),
		mcp.WithBoolean("skip", mcp.Description("Reveal the final frame immediately instead of animating")),
		mcp.WithOutputSchema[domain.Progress](),
	)
	s.mcpServer.AddTool(playTool, mcp.NewStructuredToolHandler(s.handlePlay))

	// TOOL: playback_progress
	progressTool := mcp.NewTool("playback_progress",
		mcp.WithDescription("Report the position and state of the current playback session."),
		mcp.WithOutputSchema[domain.Progress](),
	)
	s.mcpServer.AddTool(progressTool, mcp.NewStructuredToolHandler(s.handleProgress))

	// TOOL: stop_playback
	s.mcpServer.AddTool(mcp.NewTool("stop_playback",
		mcp.WithDescription("Cancel the current playback session and release the render surface."),
	), func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		s.engine.Stop()
		return mcp.NewToolResultText("playback stopped"), nil
	})
}

func (s *Server) handlePlay(ctx context.Context, request mcp.CallToolRequest, args map[string]interface{}) (domain.Progress, error) {
	raw, _ := args["dataset"].(string)
	if raw == "" {
		return domain.Progress{}, fmt.Errorf("dataset is required")
	}

	var ds domain.Dataset
	if err := json.Unmarshal([]byte(raw), &ds); err != nil {
		return domain.Progress{}, fmt.Errorf("invalid dataset: %w", err)
	}

	skip, _ := args["skip"].(bool)

	progress := s.engine.Play(&ds, skip, nil)
	if progress.State == domain.StateIdle {
		slog.Warn("MCP play: dataset empty, nothing to render")
	}
	return progress, nil
}

func (s *Server) handleProgress(ctx context.Context, request mcp.CallToolRequest, args map[string]interface{}) (domain.Progress, error) {
	return s.engine.Progress(), nil
}

func (s *Server) registerResources() {
	// EXPOSE: stagewalk://progress
	s.mcpServer.AddResource(mcp.NewResource("stagewalk://progress", "Current Playback Progress",
		mcp.WithMIMEType("application/json"),
	), func(ctx context.Context, request mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
		jsonBytes, err := json.Marshal(s.engine.Progress())
		if err != nil {
			return nil, fmt.Errorf("failed to encode progress: %w", err)
		}

		return []mcp.ResourceContents{
			mcp.TextResourceContents{
				URI:      "stagewalk://progress",
				MIMEType: "application/json",
				Text:     string(jsonBytes),
			},
		}, nil
	})
}
