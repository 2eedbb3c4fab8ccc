package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/claude/paceforge/internal/export"
)

// Version is set at build time via -ldflags.
var Version = "dev"

func main() {
	serverURL := flag.String("server", "", "PaceForge server URL (e.g. https://paceforge.tail1234.ts.net)")
	outDir := flag.String("out", "exports", "directory to write TCX files into")
	dryRun := flag.Bool("dry-run", false, "fetch and render but don't write files")
	version := flag.Bool("version", false, "print version and exit")
	flag.Parse()

	if *version {
		fmt.Println("paceforge-export", Version)
		return
	}

	log := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))

	if *serverURL == "" {
		fmt.Fprintf(os.Stderr, "Usage: paceforge-export -server <URL> [-out dir] [-dry-run]\n\n")
		flag.PrintDefaults()
		os.Exit(1)
	}
	*serverURL = strings.TrimRight(*serverURL, "/")

	// Open state database
	homeDir, err := os.UserHomeDir()
	if err != nil {
		log.Error("failed to get home directory", "error", err)
		os.Exit(1)
	}
	stateDir := filepath.Join(homeDir, ".paceforge-export")

	state, err := export.OpenStateDB(stateDir)
	if err != nil {
		log.Error("failed to open state database", "error", err)
		os.Exit(1)
	}
	defer state.Close()

	if *dryRun {
		log.Info("DRY RUN mode: sessions will be fetched and rendered but not written")
	}

	runner := export.New(export.NewClient(*serverURL), state, *outDir, *dryRun, log)
	stats, err := runner.Run()
	if err != nil {
		log.Error("export failed", "error", err)
		os.Exit(1)
	}

	fmt.Printf("\nExport complete: %d sessions, %d written, %d skipped, %d errors\n",
		stats.Total, stats.Written, stats.Skipped, stats.Errored)
}
