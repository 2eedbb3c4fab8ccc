package export

import (
	"crypto/sha256"
	"database/sql"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite"

	"github.com/claude/paceforge/internal/plan"
)

// StateDB tracks which sessions have been written to avoid re-exporting
// unchanged ones.
type StateDB struct {
	db *sql.DB
}

// OpenStateDB opens (or creates) the SQLite state database at dir/state.db.
func OpenStateDB(dir string) (*StateDB, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("creating state dir %s: %w", dir, err)
	}

	dbPath := filepath.Join(dir, "state.db")
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("opening state db: %w", err)
	}

	_, err = db.Exec(`CREATE TABLE IF NOT EXISTS exported_sessions (
		session_id  TEXT PRIMARY KEY,
		hash        TEXT NOT NULL,
		exported_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
	)`)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("creating state table: %w", err)
	}

	return &StateDB{db: db}, nil
}

// IsExported checks if a session has already been exported with the same
// content hash. A changed hash (re-completion with new values) exports again.
func (s *StateDB) IsExported(sessionID, hash string) (bool, error) {
	var count int
	err := s.db.QueryRow(
		`SELECT COUNT(*) FROM exported_sessions WHERE session_id = ? AND hash = ?`,
		sessionID, hash,
	).Scan(&count)
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

// MarkExported records that a session was successfully written.
func (s *StateDB) MarkExported(sessionID, hash string) error {
	_, err := s.db.Exec(
		`INSERT OR REPLACE INTO exported_sessions (session_id, hash) VALUES (?, ?)`,
		sessionID, hash,
	)
	return err
}

// Close closes the state database.
func (s *StateDB) Close() error {
	return s.db.Close()
}

// HashTuple computes the SHA-256 hash of a tuple's canonical JSON form.
func HashTuple(tuple plan.ExportTuple) (string, error) {
	data, err := json.Marshal(tuple)
	if err != nil {
		return "", err
	}
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:]), nil
}
