package export

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
)

// Stats tracks export progress.
type Stats struct {
	Total   int
	Written int
	Skipped int
	Errored int
}

// Runner fetches completed sessions from the server and writes one TCX
// file per session into the output directory.
type Runner struct {
	client *Client
	state  *StateDB
	outDir string
	dryRun bool
	log    *slog.Logger
	stats  Stats
}

// New creates a new Runner.
func New(client *Client, state *StateDB, outDir string, dryRun bool, log *slog.Logger) *Runner {
	return &Runner{
		client: client,
		state:  state,
		outDir: outDir,
		dryRun: dryRun,
		log:    log,
	}
}

// Run executes the export pipeline.
func (r *Runner) Run() (*Stats, error) {
	if err := os.MkdirAll(r.outDir, 0o755); err != nil {
		return &r.stats, fmt.Errorf("creating output dir %s: %w", r.outDir, err)
	}

	tuples, err := r.client.FetchCompleted()
	if err != nil {
		return &r.stats, fmt.Errorf("fetching completed sessions: %w", err)
	}

	for _, tuple := range tuples {
		r.stats.Total++

		hash, err := HashTuple(tuple)
		if err != nil {
			r.log.Warn("hash failed", "session", tuple.Session.ID, "error", err)
			r.stats.Errored++
			continue
		}

		exported, err := r.state.IsExported(tuple.Session.ID, hash)
		if err != nil {
			r.log.Warn("state check failed", "session", tuple.Session.ID, "error", err)
			r.stats.Errored++
			continue
		}
		if exported {
			r.stats.Skipped++
			continue
		}

		body, err := RenderTCX(tuple)
		if err != nil {
			r.log.Warn("render failed", "session", tuple.Session.ID, "error", err)
			r.stats.Errored++
			continue
		}

		path := filepath.Join(r.outDir, tuple.Session.ID+".tcx")
		if r.dryRun {
			r.log.Info("dry-run: would write", "file", path, "bytes", len(body))
		} else {
			if err := os.WriteFile(path, body, 0o644); err != nil {
				r.log.Warn("write failed", "file", path, "error", err)
				r.stats.Errored++
				continue
			}
			if err := r.state.MarkExported(tuple.Session.ID, hash); err != nil {
				r.log.Warn("failed to mark exported", "session", tuple.Session.ID, "error", err)
			}
		}
		r.stats.Written++
	}

	r.log.Info("export finished",
		"total", r.stats.Total,
		"written", r.stats.Written,
		"skipped", r.stats.Skipped,
		"errored", r.stats.Errored,
	)

	return &r.stats, nil
}
