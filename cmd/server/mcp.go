// CLAUDE:SUMMARY CLI subcommand serving the crosswalk MCP tools over stdio.
package main

import (
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/mark3labs/mcp-go/server"

	"github.com/hazyhaar/crosswalk/pkg/api"
	"github.com/hazyhaar/crosswalk/pkg/sessiondb"
)

const version = "0.3.0"

func cmdMCP(args []string) {
	fs := flag.NewFlagSet("mcp", flag.ExitOnError)
	cfgPath := fs.String("config", "config.yaml", "path to config file")
	fs.Parse(args)

	// Stdout belongs to the MCP protocol; logs must not pollute it, and
	// stderr chatter confuses some MCP clients, so default to discard.
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	cfg := loadConfig(*cfgPath, logger)

	store, err := sessiondb.Open(cfg.DBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "open session db: %v\n", err)
		os.Exit(1)
	}
	defer store.Close()

	sessions := api.NewSessions(store, cfg.Namespace)
	if _, err := seedCleanNames(sessions, cfg); err != nil {
		fmt.Fprintf(os.Stderr, "load clean names: %v\n", err)
		os.Exit(1)
	}

	srv := server.NewMCPServer("crosswalk", version)
	api.RegisterMCPTools(srv, api.NewEndpoints(sessions, logger))

	if err := server.ServeStdio(srv); err != nil {
		fmt.Fprintf(os.Stderr, "mcp server: %v\n", err)
		os.Exit(1)
	}
}
