package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/mark3labs/mcp-go/server"
	"github.com/rs/zerolog"
	zlog "github.com/rs/zerolog/log"

	"github.com/vinodismyname/mcpframe/internal/dataset"
	"github.com/vinodismyname/mcpframe/internal/registry"
	"github.com/vinodismyname/mcpframe/internal/runtime"
	"github.com/vinodismyname/mcpframe/internal/security"
	"github.com/vinodismyname/mcpframe/internal/telemetry"
	"github.com/vinodismyname/mcpframe/pkg/validation"
	"github.com/vinodismyname/mcpframe/pkg/version"
)

// datasetArgs is the startup parameter contract checked before any IO.
type datasetArgs struct {
	Path string `validate:"required,dataset_ext"`
}

func main() {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix

	var (
		dataPath string
		useStdio bool
	)

	flag.StringVar(&dataPath, "data", "", "Path to the dataset file (.csv, .json, .xls, .xlsx)")
	flag.BoolVar(&useStdio, "stdio", false, "Run server over stdio transport")
	flag.Parse()
	if dataPath == "" && flag.NArg() > 0 {
		dataPath = flag.Arg(0)
	}

	logger := zlog.With().Str("service", "mcpframe-server").Logger()
	ctx := logger.WithContext(context.Background())

	if dataPath == "" {
		fmt.Fprintln(os.Stderr, "no dataset provided; pass -data <path> or a positional path")
		os.Exit(1)
	}
	if msg := validation.ValidateStruct(datasetArgs{Path: dataPath}); msg != "" {
		logger.Error().Str("path", dataPath).Str("reason", msg).Msg("dataset path rejected")
		fmt.Fprintf(os.Stderr, "dataset path rejected: %s\n", msg)
		os.Exit(1)
	}

	// Security: canonicalize the dataset path and apply the optional
	// allow-list before anything is loaded (fail-fast on violation).
	secMgr, err := security.NewManagerFromEnv()
	if err != nil {
		logger.Error().Err(err).Msg("security: failed to initialize manager from env")
		fmt.Fprintln(os.Stderr, "invalid security configuration; check MCPFRAME_ALLOWED_DIRS")
		os.Exit(1)
	}
	canonical, err := secMgr.ValidateDatasetPath(dataPath)
	if err != nil {
		logger.Error().Err(err).Str("path", dataPath).Msg("security: dataset path rejected")
		fmt.Fprintf(os.Stderr, "dataset path rejected: %v\n", err)
		os.Exit(1)
	}
	if secMgr.Restricted() {
		logger.Info().Strs("allowed_dirs", secMgr.AllowedDirectories()).Msg("security allow-list configured")
	}

	// Startup-fatal tier: the table must be in memory before the protocol
	// loop starts. No partial server is ever exposed to callers.
	store := dataset.NewStore(logger)
	tbl, err := store.Load(canonical)
	if err != nil {
		logger.Error().Err(err).Str("path", canonical).Msg("dataset load failed")
		fmt.Fprintf(os.Stderr, "failed to load dataset: %v\n", err)
		os.Exit(1)
	}

	limits := runtime.NewLimits(0)
	runtimeController := runtime.NewController(limits)
	runtimeMW := runtime.NewMiddleware(runtimeController)

	toolRegistry := registry.New()
	dispatcher := registry.NewDispatcher(store, logger)

	srv := server.NewMCPServer(
		"MCP DataFrame Server",
		version.Version(),
		server.WithToolCapabilities(true),
		server.WithResourceCapabilities(true, false),
		server.WithRecovery(),
		server.WithHooks(telemetry.BuildHooks(logger)),
		server.WithToolHandlerMiddleware(runtimeMW.ToolMiddleware),
	)

	registry.RegisterDatasetTools(srv, toolRegistry, dispatcher)
	registry.RegisterShapeResource(srv, store)

	rows, cols := tbl.Shape()
	logger.Info().
		Ctx(ctx).
		Str("version", version.Version()).
		Str("dataset", canonical).
		Int("rows", rows).
		Int("cols", cols).
		Int("max_concurrent_requests", limits.MaxConcurrentRequests).
		Bool("stdio", useStdio).
		Msg("server bootstrap configured")

	if useStdio {
		if err := server.ServeStdio(srv); err != nil {
			// Use stderr for transport errors so clients don't misinterpret output
			fmt.Fprintf(os.Stderr, "Server error: %v\n", err)
			os.Exit(1)
		}
		return
	}

	// If no transport flags provided, print usage and exit non-zero
	fmt.Fprintln(os.Stderr, "no transport selected; use --stdio to run over stdio")
	os.Exit(2)
}
