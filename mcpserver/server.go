package mcpserver

import (
	"context"
	"errors"
	"log/slog"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/routepal/routepal/internal/biz/domain"
	"github.com/routepal/routepal/internal/biz/repo"
)

// PredictionMCPServer exposes the traffic prediction toolbox over MCP, so
// other agents can resolve CJK datetime phrases and query the datasets
// without going through the chat pipeline.
type PredictionMCPServer struct {
	server   *mcp.Server
	resolver domain.DateTimeResolver
	store    repo.PredictionRepo
	logger   *slog.Logger
}

// NewServer creates a prediction MCP server backed by the given store.
func NewServer(resolver domain.DateTimeResolver, store repo.PredictionRepo, logger *slog.Logger) *PredictionMCPServer {
	server := mcp.NewServer(&mcp.Implementation{
		Name:    "routepal-tools",
		Version: "v1.0.0",
	}, nil)

	s := &PredictionMCPServer{
		server:   server,
		resolver: resolver,
		store:    store,
		logger:   logger.With("component", "mcp"),
	}
	s.registerTools()
	return s
}

func (s *PredictionMCPServer) registerTools() {
	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "resolve_datetime",
		Description: "Resolve a Chinese natural-language date/time phrase (e.g. 3月5日下午2点30分) into a canonical 'YYYY-MM-DD HH:MM:SS' timestamp. Years default to a configured fallback when absent.",
	}, s.handleResolveDateTime)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "lookup_prediction",
		Description: "Look up the predicted traffic flow for an algorithm (lstm, gru or saes) at an exact 'YYYY-MM-DD HH:MM:SS' timestamp. Returns the value and a congestion classification.",
	}, s.handleLookupPrediction)
}

// ResolveDateTimeInput is the input for the resolve_datetime tool.
type ResolveDateTimeInput struct {
	Text string `json:"text" jsonschema:"description=The natural-language phrase containing a date and optionally a time"`
}

// ResolveDateTimeOutput is the output for the resolve_datetime tool.
type ResolveDateTimeOutput struct {
	Resolved  bool   `json:"resolved"`
	Timestamp string `json:"timestamp,omitempty"`
}

func (s *PredictionMCPServer) handleResolveDateTime(ctx context.Context, req *mcp.CallToolRequest, input ResolveDateTimeInput) (*mcp.CallToolResult, ResolveDateTimeOutput, error) {
	parsed, ok := s.resolver.Resolve(input.Text)
	if !ok {
		return nil, ResolveDateTimeOutput{Resolved: false}, nil
	}
	return nil, ResolveDateTimeOutput{Resolved: true, Timestamp: parsed.Canonical()}, nil
}

// LookupPredictionInput is the input for the lookup_prediction tool.
type LookupPredictionInput struct {
	Algorithm string `json:"algorithm" jsonschema:"description=The prediction model: lstm, gru or saes"`
	Timestamp string `json:"timestamp" jsonschema:"description=Exact timestamp in 'YYYY-MM-DD HH:MM:SS' form"`
}

// LookupPredictionOutput is the output for the lookup_prediction tool.
type LookupPredictionOutput struct {
	Found     bool    `json:"found"`
	Value     float64 `json:"value,omitempty"`
	Congested bool    `json:"congested,omitempty"`
	Condition string  `json:"condition,omitempty"`
	Error     string  `json:"error,omitempty"`
}

func (s *PredictionMCPServer) handleLookupPrediction(ctx context.Context, req *mcp.CallToolRequest, input LookupPredictionInput) (*mcp.CallToolResult, LookupPredictionOutput, error) {
	record, err := s.store.Lookup(ctx, input.Algorithm, input.Timestamp)
	if errors.Is(err, repo.ErrNotFound) {
		return nil, LookupPredictionOutput{Found: false}, nil
	}
	if err != nil {
		s.logger.Error("lookup failed", "algorithm", input.Algorithm, "error", err)
		return nil, LookupPredictionOutput{Found: false, Error: err.Error()}, nil
	}

	return nil, LookupPredictionOutput{
		Found:     true,
		Value:     record.Value,
		Congested: record.Congested(),
		Condition: record.Condition(),
	}, nil
}

// Run starts the MCP server with stdio transport.
func (s *PredictionMCPServer) Run(ctx context.Context) error {
	return s.server.Run(ctx, &mcp.StdioTransport{})
}
