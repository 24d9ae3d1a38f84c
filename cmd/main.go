package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"strings"

	"bench-go/internal/bench"
	"bench-go/internal/config"
	"bench-go/internal/controller"
	"bench-go/internal/handler"
	"bench-go/internal/report"
	"bench-go/internal/service/runstore"
	"bench-go/pkg/mcp"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

func main() {
	var appConfigPath = flag.String("app", "", "Path to app configuration file")
	var codebase1 = flag.String("codebase1", "", "Path to the first codebase")
	var codebase2 = flag.String("codebase2", "", "Path to the second codebase")
	var weightsJSON = flag.String("weights", "", "Per-benchmark weights as JSON, e.g. '{\"Security\":2.0}'")
	var skipCSV = flag.String("skip", "", "Comma-separated benchmark names to skip")
	var verbose = flag.Bool("verbose", false, "Print per-benchmark detail blocks")
	var exportPath = flag.String("export", "", "Write the comparison to this file as JSON")
	var profileScript = flag.String("profile", "", "Script to time for the performance benchmark")
	var serve = flag.Bool("serve", false, "Run as an HTTP/MCP server instead of a one-shot comparison")
	flag.Parse()

	cfgZap := zap.NewProductionConfig()
	cfgZap.Level.SetLevel(zapcore.DebugLevel)
	cfgZap.OutputPaths = []string{"stdout", "all.log"}
	logger, err := cfgZap.Build()
	if err != nil {
		log.Fatal("Failed to initialize logger:", err)
	}

	defer logger.Sync()

	cfg, err := config.LoadConfig(*appConfigPath)
	if err != nil {
		logger.Fatal("Failed to load configuration", zap.Error(err))
	}

	// Command line overrides
	if *profileScript != "" {
		cfg.ProfileScript = *profileScript
	}
	if *weightsJSON != "" {
		weights := make(map[string]float64)
		if err := json.Unmarshal([]byte(*weightsJSON), &weights); err != nil {
			logger.Fatal("Invalid -weights JSON", zap.Error(err))
		}
		cfg.Weights = weights
	}
	if *skipCSV != "" {
		for _, name := range strings.Split(*skipCSV, ",") {
			if name = strings.TrimSpace(name); name != "" {
				cfg.Skip = append(cfg.Skip, name)
			}
		}
	}

	ctx := context.Background()

	registry, err := bench.NewDefaultRegistry(ctx, cfg, logger)
	if err != nil {
		logger.Fatal("Failed to build benchmark registry", zap.Error(err))
	}

	store := openRunStore(cfg, logger)
	if store != nil {
		defer store.Close(ctx)
	}

	runner := bench.NewRunner(registry, store, logger)

	if *serve {
		runServer(cfg, registry, runner, store, logger)
		return
	}

	if *codebase1 == "" || *codebase2 == "" {
		fmt.Fprintln(os.Stderr, "Usage: bench-go -codebase1 DIR -codebase2 DIR [-weights JSON] [-skip NAMES] [-verbose] [-export FILE]")
		fmt.Fprintln(os.Stderr, "       bench-go -serve [-app CONFIG]")
		os.Exit(2)
	}

	cmp, err := runner.Compare(ctx, *codebase1, *codebase2, bench.CompareOptions{
		Weights: cfg.Weights,
		Skip:    cfg.Skip,
	})
	if err != nil {
		logger.Fatal("Comparison failed", zap.Error(err))
	}

	reporter := report.NewReporter(os.Stdout, *verbose)
	reporter.PrintComparison(cmp)

	if *exportPath != "" {
		if err := report.ExportJSON(cmp, *exportPath); err != nil {
			logger.Fatal("Failed to export comparison", zap.Error(err))
		}
		logger.Info("Comparison exported", zap.String("path", *exportPath))
	}
}

// openRunStore builds the configured run-history backend. A store failure
// disables history rather than aborting: comparisons still work without it.
func openRunStore(cfg *config.Config, logger *zap.Logger) runstore.RunStore {
	if cfg.Store.Backend == "none" {
		logger.Info("Run history disabled by configuration")
		return nil
	}
	opts := runstore.Options{
		Backend:       runstore.Backend(cfg.Store.Backend),
		KuzuPath:      cfg.Kuzu.Path,
		Neo4jURI:      cfg.Neo4j.URI,
		Neo4jUsername: cfg.Neo4j.Username,
		Neo4jPassword: cfg.Neo4j.Password,
	}
	store, err := runstore.New(opts, logger)
	if err != nil {
		logger.Warn("Run history disabled", zap.Error(err))
		return nil
	}
	return store
}

func runServer(cfg *config.Config, registry *bench.Registry, runner *bench.Runner, store runstore.RunStore, logger *zap.Logger) {
	benchController := controller.NewBenchController(registry, runner, store, logger)
	mcpServer := mcp.NewBenchServer(runner, cfg, logger)

	router := handler.SetupRouter(benchController, mcpServer, logger)

	logger.Info("Starting server", zap.Int("port", cfg.App.Port))
	if err := http.ListenAndServe(fmt.Sprintf(":%d", cfg.App.Port), router); err != nil {
		logger.Fatal("Failed to start server", zap.Error(err))
	}
}
