package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"github.com/riskibarqy/fpl-analyst/internal/app"
	"github.com/riskibarqy/fpl-analyst/internal/config"
	"github.com/riskibarqy/fpl-analyst/internal/observability"
	"github.com/riskibarqy/fpl-analyst/internal/platform/logging"
)

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(2)
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "load config: %v\n", err)
		os.Exit(1)
	}

	logger := logging.NewJSON(cfg.LogLevel).With("service", cfg.ServiceName, "env", cfg.AppEnv)
	logging.SetDefault(logger)
	defer func() { _ = logger.Sync() }()

	shutdownTracing, err := observability.InitUptrace(cfg, logger)
	if err != nil {
		logger.Error("init uptrace", "error", err)
		os.Exit(1)
	}
	defer func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = shutdownTracing(ctx)
	}()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, logger, os.Args[1:]); err != nil {
		logger.Error("analyst command failed", "command", os.Args[1], "error", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg config.Config, logger *logging.Logger, args []string) error {
	container, err := app.NewContainer(ctx, cfg, logger)
	if err != nil {
		return fmt.Errorf("build app: %w", err)
	}
	defer container.Close()

	switch strings.ToLower(strings.TrimSpace(args[0])) {
	case "run":
		info, err := container.Analysis.Run(ctx)
		if err != nil {
			return err
		}
		fmt.Printf("run %s: %d records, %d players, %d teams, %d artifacts written to %s\n",
			info.RunID, info.Records, info.Players, info.Teams, info.Artifacts, cfg.DataDir)
		if len(info.FailedRecipes) > 0 {
			fmt.Printf("degraded recipes: %s\n", strings.Join(info.FailedRecipes, ", "))
		}
		return nil
	case "import":
		if len(args) < 2 {
			return fmt.Errorf("import requires a csv file argument")
		}
		path := filepath.Clean(args[1])
		f, err := os.Open(path)
		if err != nil {
			return fmt.Errorf("open %s: %w", path, err)
		}
		defer f.Close()

		result, err := container.Ingestion.ImportCSV(ctx, filepath.Base(path), f)
		if err != nil {
			return err
		}
		fmt.Printf("imported %d records for %d players into %s source\n", result.Records, result.Players, cfg.RecordSource)
		if result.Run != nil {
			fmt.Printf("run %s: %d artifacts written to %s\n", result.Run.RunID, result.Run.Artifacts, cfg.DataDir)
		}
		return nil
	default:
		printUsage()
		return fmt.Errorf("unknown command %q", args[0])
	}
}

func printUsage() {
	fmt.Println("usage:")
	fmt.Println("  analyst run                 analyze the configured record source and write artifacts")
	fmt.Println("  analyst import <file.csv>   replace the stored records with a csv export and recompute")
}
