package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/claude/paceforge/internal/plan"
	"github.com/jackc/pgx/v5"
)

// ErrNoSnapshot is returned when no engine state has ever been saved.
var ErrNoSnapshot = errors.New("no snapshot stored")

// SaveSnapshot persists the full engine state in one transaction. The
// previous state is replaced wholesale: the engine only ever deals in
// complete snapshots.
func (db *DB) SaveSnapshot(ctx context.Context, snap plan.Snapshot) error {
	profileJSON, err := json.Marshal(snap.Profile)
	if err != nil {
		return fmt.Errorf("encoding profile: %w", err)
	}
	planJSON, err := json.Marshal(snap.Plan)
	if err != nil {
		return fmt.Errorf("encoding plan: %w", err)
	}

	tx, err := db.Pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("beginning snapshot tx: %w", err)
	}
	defer tx.Rollback(ctx)

	_, err = tx.Exec(ctx,
		`INSERT INTO profile (id, data, updated_at) VALUES (1, $1, now())
		 ON CONFLICT (id) DO UPDATE SET data = EXCLUDED.data, updated_at = now()`,
		profileJSON)
	if err != nil {
		return fmt.Errorf("saving profile: %w", err)
	}

	if _, err := tx.Exec(ctx, `DELETE FROM plans`); err != nil {
		return fmt.Errorf("clearing plan: %w", err)
	}
	// No plan row until the first generation.
	if snap.Plan.ID != "" {
		generatedAt := snap.Plan.GeneratedAt
		if generatedAt.IsZero() {
			generatedAt = time.Now().UTC()
		}
		_, err = tx.Exec(ctx,
			`INSERT INTO plans (id, generated_at, data) VALUES ($1, $2, $3)`,
			snap.Plan.ID, generatedAt, planJSON)
		if err != nil {
			return fmt.Errorf("saving plan: %w", err)
		}
	}

	if err := replaceCompletion(ctx, tx, snap); err != nil {
		return err
	}

	_, err = tx.Exec(ctx,
		`INSERT INTO view_state (id, open_week) VALUES (1, $1)
		 ON CONFLICT (id) DO UPDATE SET open_week = EXCLUDED.open_week`,
		snap.OpenWeek)
	if err != nil {
		return fmt.Errorf("saving view state: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("committing snapshot: %w", err)
	}
	return nil
}

func replaceCompletion(ctx context.Context, tx pgx.Tx, snap plan.Snapshot) error {
	for _, table := range []string{"completed_sessions", "completed_exercises", "exercise_log"} {
		if _, err := tx.Exec(ctx, `DELETE FROM `+table); err != nil {
			return fmt.Errorf("clearing %s: %w", table, err)
		}
	}

	for _, id := range snap.CompletedSessions {
		resultJSON, err := json.Marshal(snap.SessionResults[id])
		if err != nil {
			return fmt.Errorf("encoding session result %s: %w", id, err)
		}
		_, err = tx.Exec(ctx,
			`INSERT INTO completed_sessions (session_id, result) VALUES ($1, $2)`,
			id, resultJSON)
		if err != nil {
			return fmt.Errorf("saving completed session %s: %w", id, err)
		}
	}

	for _, id := range snap.CompletedExercises {
		_, err := tx.Exec(ctx,
			`INSERT INTO completed_exercises (exercise_id) VALUES ($1)`, id)
		if err != nil {
			return fmt.Errorf("saving completed exercise %s: %w", id, err)
		}
	}

	for id, values := range snap.ExerciseLog {
		valuesJSON, err := json.Marshal(values)
		if err != nil {
			return fmt.Errorf("encoding exercise log %s: %w", id, err)
		}
		_, err = tx.Exec(ctx,
			`INSERT INTO exercise_log (exercise_id, recorded) VALUES ($1, $2)`,
			id, valuesJSON)
		if err != nil {
			return fmt.Errorf("saving exercise log %s: %w", id, err)
		}
	}
	return nil
}

// LoadSnapshot reassembles the persisted engine state. Returns ErrNoSnapshot
// when nothing has been saved yet.
func (db *DB) LoadSnapshot(ctx context.Context) (plan.Snapshot, error) {
	var snap plan.Snapshot

	var profileJSON []byte
	err := db.Pool.QueryRow(ctx, `SELECT data FROM profile WHERE id = 1`).Scan(&profileJSON)
	if errors.Is(err, pgx.ErrNoRows) {
		return snap, ErrNoSnapshot
	}
	if err != nil {
		return snap, fmt.Errorf("loading profile: %w", err)
	}
	if err := json.Unmarshal(profileJSON, &snap.Profile); err != nil {
		return snap, fmt.Errorf("decoding profile: %w", err)
	}

	var planJSON []byte
	err = db.Pool.QueryRow(ctx, `SELECT data FROM plans LIMIT 1`).Scan(&planJSON)
	if err != nil && !errors.Is(err, pgx.ErrNoRows) {
		return snap, fmt.Errorf("loading plan: %w", err)
	}
	if err == nil {
		if err := json.Unmarshal(planJSON, &snap.Plan); err != nil {
			return snap, fmt.Errorf("decoding plan: %w", err)
		}
	}

	snap.SessionResults = make(map[string]plan.SessionResult)
	rows, err := db.Pool.Query(ctx, `SELECT session_id, result FROM completed_sessions ORDER BY session_id`)
	if err != nil {
		return snap, fmt.Errorf("loading completed sessions: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var id string
		var resultJSON []byte
		if err := rows.Scan(&id, &resultJSON); err != nil {
			return snap, fmt.Errorf("scanning completed session: %w", err)
		}
		var result plan.SessionResult
		if len(resultJSON) > 0 {
			if err := json.Unmarshal(resultJSON, &result); err != nil {
				return snap, fmt.Errorf("decoding session result %s: %w", id, err)
			}
		}
		snap.CompletedSessions = append(snap.CompletedSessions, id)
		snap.SessionResults[id] = result
	}
	if err := rows.Err(); err != nil {
		return snap, fmt.Errorf("iterating completed sessions: %w", err)
	}

	exRows, err := db.Pool.Query(ctx, `SELECT exercise_id FROM completed_exercises ORDER BY exercise_id`)
	if err != nil {
		return snap, fmt.Errorf("loading completed exercises: %w", err)
	}
	defer exRows.Close()
	for exRows.Next() {
		var id string
		if err := exRows.Scan(&id); err != nil {
			return snap, fmt.Errorf("scanning completed exercise: %w", err)
		}
		snap.CompletedExercises = append(snap.CompletedExercises, id)
	}
	if err := exRows.Err(); err != nil {
		return snap, fmt.Errorf("iterating completed exercises: %w", err)
	}

	snap.ExerciseLog = make(map[string]plan.ExerciseLog)
	logRows, err := db.Pool.Query(ctx, `SELECT exercise_id, recorded FROM exercise_log`)
	if err != nil {
		return snap, fmt.Errorf("loading exercise log: %w", err)
	}
	defer logRows.Close()
	for logRows.Next() {
		var id string
		var valuesJSON []byte
		if err := logRows.Scan(&id, &valuesJSON); err != nil {
			return snap, fmt.Errorf("scanning exercise log: %w", err)
		}
		var values plan.ExerciseLog
		if err := json.Unmarshal(valuesJSON, &values); err != nil {
			return snap, fmt.Errorf("decoding exercise log %s: %w", id, err)
		}
		snap.ExerciseLog[id] = values
	}
	if err := logRows.Err(); err != nil {
		return snap, fmt.Errorf("iterating exercise log: %w", err)
	}

	err = db.Pool.QueryRow(ctx, `SELECT open_week FROM view_state WHERE id = 1`).Scan(&snap.OpenWeek)
	if err != nil && !errors.Is(err, pgx.ErrNoRows) {
		return snap, fmt.Errorf("loading view state: %w", err)
	}

	if snap.CompletedSessions == nil {
		snap.CompletedSessions = []string{}
	}
	if snap.CompletedExercises == nil {
		snap.CompletedExercises = []string{}
	}
	return snap, nil
}
