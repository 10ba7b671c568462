package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"gopkg.in/yaml.v3"

	"github.com/hazyhaar/crosswalk/pkg/api"
	"github.com/hazyhaar/crosswalk/pkg/match"
	"github.com/hazyhaar/crosswalk/pkg/sessiondb"
)

type config struct {
	Addr               string `yaml:"addr"`
	DBPath             string `yaml:"db_path"`
	Namespace          string `yaml:"namespace"`
	CleanNamesFile     string `yaml:"clean_names_file"`
	CleanNamesEncoding string `yaml:"clean_names_encoding"`
	LogLevel           string `yaml:"log_level"`
}

func main() {
	if len(os.Args) < 2 {
		usage()
		os.Exit(1)
	}

	switch os.Args[1] {
	case "serve":
		cmdServe(os.Args[2:])
	case "mcp":
		cmdMCP(os.Args[2:])
	case "export":
		cmdExport(os.Args[2:])
	default:
		usage()
		os.Exit(1)
	}
}

func usage() {
	fmt.Fprintf(os.Stderr, "Usage: crosswalk <command>\n\nCommands:\n  serve    Start the HTTP server\n  mcp      Serve the MCP tools on stdio\n  export   Write a user's saved matches as CSV to stdout\n")
}

func cmdServe(args []string) {
	fs := flag.NewFlagSet("serve", flag.ExitOnError)
	cfgPath := fs.String("config", "config.yaml", "path to config file")
	fs.Parse(args)

	cfg, logger := setup(*cfgPath)

	if dir := filepath.Dir(cfg.DBPath); dir != "." {
		os.MkdirAll(dir, 0o755)
	}
	store, err := sessiondb.Open(cfg.DBPath)
	if err != nil {
		logger.Error("failed to open session db", "error", err)
		os.Exit(1)
	}
	defer store.Close()

	sessions := api.NewSessions(store, cfg.Namespace)
	if n, err := seedCleanNames(sessions, cfg); err != nil {
		logger.Error("failed to load clean names", "error", err)
		os.Exit(1)
	} else if n > 0 {
		logger.Info("clean names loaded", "file", cfg.CleanNamesFile, "count", n)
	}

	router := api.NewRouter(sessions, api.NewEndpoints(sessions, logger))

	srv := &http.Server{
		Addr:    cfg.Addr,
		Handler: router,
	}

	// SIGHUP: hot reload the clean-name seed file.
	// SIGINT/SIGTERM: graceful shutdown.
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	sighup := make(chan os.Signal, 1)
	signal.Notify(sighup, syscall.SIGHUP)
	go func() {
		for range sighup {
			logger.Info("SIGHUP received, reloading clean names")
			if n, err := seedCleanNames(sessions, cfg); err != nil {
				logger.Error("reload failed", "error", err)
			} else {
				logger.Info("clean names reloaded", "count", n)
			}
		}
	}()

	go func() {
		logger.Info("crosswalk listening", "addr", cfg.Addr, "db", cfg.DBPath)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")
	srv.Shutdown(context.Background())
}

// seedCleanNames loads the configured clean-name file into the registry.
// No configured file is not an error; sessions just start empty.
func seedCleanNames(sessions *api.Sessions, cfg config) (int, error) {
	if cfg.CleanNamesFile == "" {
		return 0, nil
	}
	f, err := os.Open(cfg.CleanNamesFile)
	if err != nil {
		return 0, fmt.Errorf("open %s: %w", cfg.CleanNamesFile, err)
	}
	defer f.Close()

	names, err := match.ReadLines(f, cfg.CleanNamesEncoding)
	if err != nil {
		return 0, fmt.Errorf("read %s: %w", cfg.CleanNamesFile, err)
	}
	sessions.SeedCleanNames(names)
	return len(names), nil
}

func setup(cfgPath string) (config, *slog.Logger) {
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelInfo}))
	cfg := loadConfig(cfgPath, logger)

	level := slog.LevelInfo
	if err := level.UnmarshalText([]byte(cfg.LogLevel)); err == nil {
		logger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	}
	return cfg, logger
}

func loadConfig(path string, logger *slog.Logger) config {
	cfg := config{
		Addr:      ":8421",
		DBPath:    "data/sessions.db",
		Namespace: "crosswalk",
		LogLevel:  "info",
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			logger.Info("no config file, using defaults", "path", path)
			return cfg
		}
		logger.Error("read config", "error", err)
		os.Exit(1)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		logger.Error("parse config", "error", err)
		os.Exit(1)
	}
	return cfg
}
