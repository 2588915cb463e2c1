package mcp

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/aretw0/twotruths"
	"github.com/aretw0/twotruths/pkg/domain"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"golang.org/x/sync/errgroup"
)

// GeneratorsURI is the resource listing the loaded generators.
const GeneratorsURI = "twotruths://generators"

// Engine defines what the MCP server needs from the statement engine.
type Engine interface {
	Generate(ctx context.Context, req domain.Request) (*domain.Batch, error)
	Reveal(ctx context.Context, id string) (*domain.Batch, error)
	Generators() []twotruths.GeneratorInfo
}

// GenerateArgs are the arguments of the generate_statements tool.
// Omitted optional fields take the request defaults.
type GenerateArgs struct {
	Truths        int     `json:"truths"`
	Lies          int     `json:"lies"`
	MaxRetries    *int    `json:"max_retries,omitempty"`
	EnsureNotTrue *bool   `json:"ensure_not_true,omitempty"`
	RandomOrder   *bool   `json:"random_order,omitempty"`
	Seed          *uint64 `json:"seed,omitempty"`
}

// Request converts the tool arguments into an engine request.
func (a GenerateArgs) Request() domain.Request {
	req := domain.DefaultRequest()
	req.Truths = a.Truths
	req.Lies = a.Lies
	if a.MaxRetries != nil {
		req.MaxRetries = *a.MaxRetries
	}
	if a.EnsureNotTrue != nil {
		req.EnsureNotTrue = *a.EnsureNotTrue
	}
	if a.RandomOrder != nil {
		req.RandomOrder = *a.RandomOrder
	}
	if a.Seed != nil {
		req.Seed = *a.Seed
	}
	return req
}

// RevealArgs are the arguments of the reveal_batch tool.
type RevealArgs struct {
	ID string `json:"id"`
}

// BatchResponse is the structured output of both tools.
// Truth flags are present only for revealed batches.
type BatchResponse struct {
	ID         string             `json:"id" jsonschema_description:"Batch identifier, usable with reveal_batch"`
	Statements []StatementPayload `json:"statements" jsonschema_description:"Statements in presentation order"`
}

// StatementPayload is one statement in a BatchResponse.
type StatementPayload struct {
	Text  string `json:"text"`
	Truth *bool  `json:"truth,omitempty"`
}

func newBatchResponse(b *domain.Batch, reveal bool) BatchResponse {
	out := BatchResponse{ID: b.ID, Statements: make([]StatementPayload, len(b.Statements))}
	for i, s := range b.Statements {
		out.Statements[i].Text = s.Text
		if reveal {
			truth := s.Truth
			out.Statements[i].Truth = &truth
		}
	}
	return out
}

// Server exposes the engine as an MCP server.
type Server struct {
	engine    Engine
	logger    *slog.Logger
	mcpServer *server.MCPServer
}

// NewServer creates a new MCP Server instance.
func NewServer(engine Engine, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	s := &Server{
		engine:    engine,
		logger:    logger,
		mcpServer: server.NewMCPServer("twotruths-mcp", strings.TrimSpace(twotruths.Version)),
	}
	s.registerTools()
	s.registerResources()
	return s
}

// MCPServer returns the underlying mcp-go server.
func (s *Server) MCPServer() *server.MCPServer {
	return s.mcpServer
}

// ServeStdio starts the server on Stdin/Stdout.
func (s *Server) ServeStdio() error {
	return server.ServeStdio(s.mcpServer)
}

// ServeSSE serves the SSE transport on port until ctx is cancelled.
func (s *Server) ServeSSE(ctx context.Context, port int) error {
	addr := fmt.Sprintf(":%d", port)
	baseURL := fmt.Sprintf("http://localhost:%d", port)

	sseServer := server.NewSSEServer(s.mcpServer, server.WithBaseURL(baseURL))

	mux := http.NewServeMux()
	mux.Handle("/sse", corsMiddleware(sseServer.SSEHandler()))
	mux.Handle("/message", corsMiddleware(sseServer.MessageHandler()))

	httpServer := &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadHeaderTimeout: 10 * time.Second,
	}

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		s.logger.Info("MCP server listening (SSE)", "address", addr)
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("could not stop server gracefully: %w", err)
		}
		return nil
	})
	return g.Wait()
}

func corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization, X-Requested-With")

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}

func (s *Server) registerTools() {
	generateTool := mcp.NewTool("generate_statements",
		mcp.WithDescription("Generate a shuffled or sorted set of true and false statements. Truth flags are hidden; use reveal_batch to see them."),
		mcp.WithNumber("truths", mcp.Required(), mcp.Description("Number of true statements")),
		mcp.WithNumber("lies", mcp.Required(), mcp.Description("Number of false statements")),
		mcp.WithNumber("max_retries", mcp.Description("Attempts per statement before giving up (default 10)")),
		mcp.WithBoolean("ensure_not_true", mcp.Description("Reject lies that match a true statement (default true)")),
		mcp.WithBoolean("random_order", mcp.Description("Shuffle instead of sorting (default false)")),
		mcp.WithNumber("seed", mcp.Description("Seed for reproducible batches (optional)")),
		mcp.WithOutputSchema[BatchResponse](),
	)
	s.mcpServer.AddTool(generateTool, mcp.NewStructuredToolHandler(s.handleGenerate))

	revealTool := mcp.NewTool("reveal_batch",
		mcp.WithDescription("Reveal which statements of a generated batch are true."),
		mcp.WithString("id", mcp.Required(), mcp.Description("Batch ID returned by generate_statements")),
		mcp.WithOutputSchema[BatchResponse](),
	)
	s.mcpServer.AddTool(revealTool, mcp.NewStructuredToolHandler(s.handleReveal))
}

func (s *Server) handleGenerate(ctx context.Context, request mcp.CallToolRequest, args GenerateArgs) (BatchResponse, error) {
	batch, err := s.engine.Generate(ctx, args.Request())
	if err != nil {
		s.logger.Warn("MCP generate failed", "error", err)
		return BatchResponse{}, fmt.Errorf("generate failed: %w", err)
	}
	return newBatchResponse(batch, false), nil
}

func (s *Server) handleReveal(ctx context.Context, request mcp.CallToolRequest, args RevealArgs) (BatchResponse, error) {
	if args.ID == "" {
		return BatchResponse{}, errors.New("id is required")
	}
	batch, err := s.engine.Reveal(ctx, args.ID)
	if err != nil {
		return BatchResponse{}, fmt.Errorf("reveal failed: %w", err)
	}
	return newBatchResponse(batch, true), nil
}

func (s *Server) registerResources() {
	s.mcpServer.AddResource(mcp.NewResource(GeneratorsURI, "Loaded statement generators",
		mcp.WithMIMEType("application/json"),
	), func(ctx context.Context, request mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
		jsonBytes, err := json.Marshal(s.engine.Generators())
		if err != nil {
			return nil, fmt.Errorf("failed to encode generators: %w", err)
		}
		return []mcp.ResourceContents{
			mcp.TextResourceContents{
				URI:      GeneratorsURI,
				MIMEType: "application/json",
				Text:     string(jsonBytes),
			},
		}, nil
	})
}
