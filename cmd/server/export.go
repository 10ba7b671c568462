// CLAUDE:SUMMARY CLI subcommand writing a user's saved session matches as CSV to stdout.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"os"

	"github.com/hazyhaar/crosswalk/pkg/api"
	"github.com/hazyhaar/crosswalk/pkg/match"
	"github.com/hazyhaar/crosswalk/pkg/sessiondb"
)

func cmdExport(args []string) {
	fs := flag.NewFlagSet("export", flag.ExitOnError)
	cfgPath := fs.String("config", "config.yaml", "path to config file")
	user := fs.String("user", api.AnonymousUser, "session owner to export")
	fs.Parse(args)

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelWarn}))
	cfg := loadConfig(*cfgPath, logger)

	store, err := sessiondb.Open(cfg.DBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "open session db: %v\n", err)
		os.Exit(1)
	}
	defer store.Close()

	snap, err := store.Load(context.Background(), match.CurrentKey(cfg.Namespace, *user))
	if errors.Is(err, match.ErrNotFound) {
		fmt.Fprintf(os.Stderr, "no saved session for user %q\n", *user)
		os.Exit(1)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "load session: %v\n", err)
		os.Exit(1)
	}

	// No trailing newline: the export byte shape is fixed.
	if err := match.WriteExport(os.Stdout, snap.RawInputs, snap.Matches); err != nil {
		fmt.Fprintf(os.Stderr, "write export: %v\n", err)
		os.Exit(1)
	}
}
