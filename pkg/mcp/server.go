package mcp

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"bench-go/internal/bench"
	"bench-go/internal/config"

	"github.com/gin-gonic/gin"
	"github.com/modelcontextprotocol/go-sdk/mcp"
	"go.uber.org/zap"
)

type BenchServer struct {
	server  *mcp.Server
	runner  *bench.Runner
	config  *config.Config
	logger  *zap.Logger
	handler *mcp.StreamableHTTPHandler
}

type CompareParams struct {
	Codebase1 string   `json:"codebase1" jsonschema:"path to the first codebase directory"`
	Codebase2 string   `json:"codebase2" jsonschema:"path to the second codebase directory"`
	Skip      []string `json:"skip,omitempty" jsonschema:"benchmark names to leave out"`
}

type AssessParams struct {
	Codebase   string   `json:"codebase" jsonschema:"path to the codebase directory"`
	Benchmarks []string `json:"benchmarks,omitempty" jsonschema:"benchmark names to run, all when empty"`
}

func NewBenchServer(runner *bench.Runner, cfg *config.Config, logger *zap.Logger) *BenchServer {
	server := &BenchServer{
		runner: runner,
		config: cfg,
		logger: logger,
	}

	mcpServer := mcp.NewServer(&mcp.Implementation{
		Name:    "CodebaseBench",
		Version: "1.0.0",
	}, nil)

	// Register the compareCodebases tool
	mcp.AddTool(mcpServer, &mcp.Tool{
		Name:        "compareCodebases",
		Description: "Score two codebases on eleven quality benchmarks and compare them side by side. Returns per-benchmark scores, details, and weighted totals",
	}, server.handleCompare)

	// Register the assessCodebase tool
	mcp.AddTool(mcpServer, &mcp.Tool{
		Name:        "assessCodebase",
		Description: "Score a single codebase on the quality benchmarks. Returns per-benchmark scores and their supporting details",
	}, server.handleAssess)

	server.handler = mcp.NewStreamableHTTPHandler(func(req *http.Request) *mcp.Server {
		return mcpServer
	}, nil)

	server.server = mcpServer
	return server
}

func (s *BenchServer) handleCompare(ctx context.Context, req *mcp.CallToolRequest, args CompareParams) (*mcp.CallToolResult, any, error) {
	s.logger.Info("Handling compareCodebases request",
		zap.String("codebase1", args.Codebase1),
		zap.String("codebase2", args.Codebase2))

	cmp, err := s.runner.Compare(ctx, args.Codebase1, args.Codebase2, bench.CompareOptions{
		Weights: s.config.Weights,
		Skip:    append(s.config.Skip, args.Skip...),
	})
	if err != nil {
		s.logger.Error("Comparison failed", zap.Error(err))
		return &mcp.CallToolResult{
			Content: []mcp.Content{&mcp.TextContent{Text: fmt.Sprintf("Comparison failed: %v", err)}},
		}, nil, nil
	}

	return &mcp.CallToolResult{
		Content: []mcp.Content{&mcp.TextContent{Text: formatComparison(cmp)}},
	}, nil, nil
}

func (s *BenchServer) handleAssess(ctx context.Context, req *mcp.CallToolRequest, args AssessParams) (*mcp.CallToolResult, any, error) {
	s.logger.Info("Handling assessCodebase request", zap.String("codebase", args.Codebase))

	results, err := s.runner.Assess(ctx, args.Codebase, args.Benchmarks)
	if err != nil {
		s.logger.Error("Assessment failed", zap.Error(err))
		return &mcp.CallToolResult{
			Content: []mcp.Content{&mcp.TextContent{Text: fmt.Sprintf("Assessment failed: %v", err)}},
		}, nil, nil
	}

	var b strings.Builder
	b.WriteString(fmt.Sprintf("Assessment of %s:\n", args.Codebase))
	for name, result := range results {
		b.WriteString(fmt.Sprintf("\n%s: %s\n", name, result.FormatScore()))
		for _, d := range result.Details {
			b.WriteString(fmt.Sprintf("  - %s\n", d))
		}
	}

	return &mcp.CallToolResult{
		Content: []mcp.Content{&mcp.TextContent{Text: b.String()}},
	}, nil, nil
}

func formatComparison(cmp *bench.Comparison) string {
	var b strings.Builder
	b.WriteString(fmt.Sprintf("Comparison %s\n  [1] %s\n  [2] %s\n\n", cmp.RunID, cmp.Codebase1, cmp.Codebase2))
	for _, row := range cmp.Rows {
		b.WriteString(fmt.Sprintf("%s (weight %.1f): %.2f vs %.2f\n", row.Name, row.Weight, row.Score1, row.Score2))
	}
	b.WriteString(fmt.Sprintf("\nTotals: %.2f vs %.2f\n", cmp.Total1, cmp.Total2))
	switch {
	case cmp.Total1 > cmp.Total2:
		b.WriteString(fmt.Sprintf("Codebase 1 wins by %.2f points.\n", cmp.Total1-cmp.Total2))
	case cmp.Total2 > cmp.Total1:
		b.WriteString(fmt.Sprintf("Codebase 2 wins by %.2f points.\n", cmp.Total2-cmp.Total1))
	default:
		b.WriteString("Dead heat.\n")
	}
	return b.String()
}

func (s *BenchServer) SetupHTTPRoutes(router *gin.Engine) {
	router.Any("/mcp", gin.WrapH(s.handler))
	router.Any("/mcp/*path", gin.WrapH(s.handler))
}
