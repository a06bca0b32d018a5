package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/google/uuid"

	"github.com/knowflow/procgraph/pkg/config"
	"github.com/knowflow/procgraph/pkg/graph"
	"github.com/knowflow/procgraph/pkg/logging"
	"github.com/knowflow/procgraph/pkg/metrics"
	"github.com/knowflow/procgraph/pkg/model"
	"github.com/knowflow/procgraph/pkg/risk"
	"github.com/knowflow/procgraph/pkg/sop"
)

func main() {
	configPath := flag.String("config", "", "Path to YAML configuration (defaults used when empty)")
	metricsAddr := flag.String("metrics-addr", "", "Prometheus listen address, e.g. :9090 (overrides config)")
	flag.Parse()

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))

	cfg := config.Default()
	if *configPath != "" {
		loaded, err := config.Load(*configPath)
		if err != nil {
			logger.Error("failed to load configuration", "error", err, "path", *configPath)
			os.Exit(1)
		}
		cfg = loaded
	}
	if *metricsAddr != "" {
		cfg.MetricsAddr = *metricsAddr
	}

	logger.Info("procgraph starting",
		"max_nodes", cfg.MaxNodes,
		"max_edges", cfg.MaxEdges,
		"log_level", cfg.LogLevel,
	)

	componentLogger := logging.NewJSONLogger(os.Stdout, logging.ParseLevel(cfg.LogLevel))
	registry := metrics.NewRegistry()

	store := graph.NewStore(
		graph.WithLimits(graph.Limits{MaxNodes: cfg.MaxNodes, MaxEdges: cfg.MaxEdges}),
		graph.WithLogger(componentLogger.With(logging.Component("graph"))),
		graph.WithMetrics(registry),
	)
	analyzer := risk.NewAnalyzer(cfg,
		risk.WithLogger(componentLogger.With(logging.Component("risk"))),
		risk.WithMetrics(registry),
	)
	generator := sop.NewGenerator(
		sop.WithLogger(componentLogger.With(logging.Component("sop"))),
		sop.WithMetrics(registry),
	)

	if err := runDemo(store, analyzer, generator, cfg, logger); err != nil {
		logger.Error("demo run failed", "error", err)
		os.Exit(1)
	}

	if cfg.MetricsAddr == "" {
		return
	}

	mux := http.NewServeMux()
	mux.Handle("/metrics", registry.Handler())
	server := &http.Server{Addr: cfg.MetricsAddr, Handler: mux}

	go func() {
		logger.Info("metrics server listening", "addr", cfg.MetricsAddr)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("metrics server failed", "error", err)
			os.Exit(1)
		}
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	<-sigChan

	logger.Info("shutting down")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		logger.Error("shutdown failed", "error", err)
	}
}

// runDemo builds a small invoice-approval process, snapshots it, runs the
// risk analysis, and prints the generated SOP, exercising the full pipeline
// end to end.
func runDemo(store *graph.Store, analyzer *risk.Analyzer, generator *sop.Generator, cfg config.Config, logger *slog.Logger) error {
	processID := uuid.New()
	g, err := store.Create(processID)
	if err != nil {
		return fmt.Errorf("create process graph: %w", err)
	}

	received := entity(g, processID, model.KindTrigger, "Invoice Received", 0.9,
		"A supplier invoice arrives in the shared inbox.")
	validate := entity(g, processID, model.KindTask, "Validate Invoice", 0.85,
		"Check supplier details, PO number, and line-item totals.")
	approve := entity(g, processID, model.KindDecision, "Approval Decision", 0.7,
		"Route the invoice by amount.")
	payment := entity(g, processID, model.KindTask, "Schedule Payment", 0.8,
		"Enter the approved invoice into the payment run.")
	archive := entity(g, processID, model.KindArtifact, "Archived Invoice", 0.75,
		"The processed invoice stored in the document archive.")
	clerk := entity(g, processID, model.KindRole, "AP Clerk", 0.9, "")

	edge(g, received.ID, validate.ID, model.RelTriggers, "", 0.9)
	edge(g, validate.ID, approve.ID, model.RelDependsOn, "", 0.85)
	edge(g, approve.ID, payment.ID, model.RelDecides, "amount <= 10000", 0.7)
	edge(g, payment.ID, archive.ID, model.RelProduces, "", 0.8)
	edge(g, validate.ID, clerk.ID, model.RelOwnedBy, "", 0.9)
	edge(g, payment.ID, clerk.ID, model.RelOwnedBy, "", 0.9)

	version := g.CreateSnapshot("initial demo process")
	logger.Info("snapshot created",
		"version", version.Number,
		"nodes", version.NodeCount,
		"edges", version.EdgeCount,
	)

	report := analyzer.AnalyzeGraph(g, risk.Options{})
	for _, finding := range report.Findings {
		logger.Info("risk finding",
			"severity", string(finding.Severity),
			"category", string(finding.Category),
			"title", finding.Title,
		)
	}

	doc := generator.Generate(g, model.GenerationParams{
		IncludeExceptions: true,
		IncludeSystems:    true,
		DetailLevel:       model.DetailLevel(cfg.DefaultDetailLevel),
	})
	fmt.Println(sop.ExportMarkdown(doc))
	return nil
}

func entity(g *graph.ProcessGraph, processID uuid.UUID, kind model.EntityKind, name string, score float64, description string) *model.Entity {
	e := model.NewEntity(processID, kind, name, score)
	e.Description = description
	g.AddEntity(e)
	return e
}

func edge(g *graph.ProcessGraph, source, target uuid.UUID, kind model.RelationKind, label string, score float64) {
	e := model.NewEdge(source, target, kind, score)
	e.Label = label
	g.AddEdge(e)
}
