package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/hireloop/jobagent/domain"
)

// SQLiteMedium persists sessions in a single embedded-database table.
// SQLite does not support concurrent writers, so a mutex serializes write
// statements.
type SQLiteMedium struct {
	db      *sql.DB
	writeMu sync.Mutex
}

// NewSQLiteMedium opens the database and runs migrations.
func NewSQLiteMedium(dsn string) (*SQLiteMedium, error) {
	db, err := sql.Open("sqlite3", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	m := &SQLiteMedium{db: db}
	if err := m.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}
	return m, nil
}

func (m *SQLiteMedium) migrate() error {
	migrations := []string{
		`CREATE TABLE IF NOT EXISTS sessions (
			session_id TEXT PRIMARY KEY,
			owner_id TEXT NOT NULL,
			owner_name TEXT,
			created_at TEXT NOT NULL,
			last_updated_at TEXT NOT NULL,
			conversation_history TEXT NOT NULL,
			record TEXT NOT NULL,
			current_step TEXT NOT NULL,
			is_complete INTEGER NOT NULL DEFAULT 0
		)`,
		`CREATE INDEX IF NOT EXISTS idx_sessions_owner ON sessions(owner_id, last_updated_at)`,
	}

	for _, stmt := range migrations {
		if _, err := m.db.Exec(stmt); err != nil {
			return fmt.Errorf("migration failed: %w\n%s", err, stmt)
		}
	}
	return nil
}

// Save inserts or replaces the session row.
func (m *SQLiteMedium) Save(ctx context.Context, session *domain.Session) error {
	history, err := json.Marshal(session.History)
	if err != nil {
		return fmt.Errorf("failed to marshal history: %w", err)
	}
	record, err := json.Marshal(session.Record)
	if err != nil {
		return fmt.Errorf("failed to marshal record: %w", err)
	}

	isComplete := 0
	if session.IsComplete {
		isComplete = 1
	}

	m.writeMu.Lock()
	defer m.writeMu.Unlock()
	_, err = m.db.ExecContext(ctx,
		`INSERT OR REPLACE INTO sessions
			(session_id, owner_id, owner_name, created_at, last_updated_at, conversation_history, record, current_step, is_complete)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		session.SessionID, session.OwnerID, session.OwnerName,
		session.CreatedAt.UTC().Format(time.RFC3339),
		session.LastUpdatedAt.UTC().Format(time.RFC3339),
		string(history), string(record), string(session.CurrentStep), isComplete)
	return err
}

// Load retrieves a session row by id.
func (m *SQLiteMedium) Load(ctx context.Context, sessionID string) (*domain.Session, error) {
	row := m.db.QueryRowContext(ctx,
		`SELECT session_id, owner_id, owner_name, created_at, last_updated_at, conversation_history, record, current_step, is_complete
		 FROM sessions WHERE session_id = ?`, sessionID)

	session, err := scanSession(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return session, nil
}

// Delete removes the session row.
func (m *SQLiteMedium) Delete(ctx context.Context, sessionID string) (bool, error) {
	m.writeMu.Lock()
	defer m.writeMu.Unlock()

	res, err := m.db.ExecContext(ctx, `DELETE FROM sessions WHERE session_id = ?`, sessionID)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

// List returns every session row.
func (m *SQLiteMedium) List(ctx context.Context) ([]*domain.Session, error) {
	rows, err := m.db.QueryContext(ctx,
		`SELECT session_id, owner_id, owner_name, created_at, last_updated_at, conversation_history, record, current_step, is_complete
		 FROM sessions ORDER BY last_updated_at DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var sessions []*domain.Session
	for rows.Next() {
		session, err := scanSession(rows)
		if err != nil {
			return nil, err
		}
		sessions = append(sessions, session)
	}
	return sessions, rows.Err()
}

// Close closes the database connection.
func (m *SQLiteMedium) Close() error {
	return m.db.Close()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanSession(row rowScanner) (*domain.Session, error) {
	var (
		session              domain.Session
		ownerName            sql.NullString
		createdAt, updatedAt string
		history, record      string
		step                 string
		isComplete           int
	)
	err := row.Scan(&session.SessionID, &session.OwnerID, &ownerName,
		&createdAt, &updatedAt, &history, &record, &step, &isComplete)
	if err != nil {
		return nil, err
	}

	if ownerName.Valid {
		session.OwnerName = ownerName.String
	}
	if session.CreatedAt, err = time.Parse(time.RFC3339, createdAt); err != nil {
		return nil, fmt.Errorf("failed to parse created_at: %w", err)
	}
	if session.LastUpdatedAt, err = time.Parse(time.RFC3339, updatedAt); err != nil {
		return nil, fmt.Errorf("failed to parse last_updated_at: %w", err)
	}
	if err := json.Unmarshal([]byte(history), &session.History); err != nil {
		return nil, fmt.Errorf("failed to unmarshal history: %w", err)
	}
	if err := json.Unmarshal([]byte(record), &session.Record); err != nil {
		return nil, fmt.Errorf("failed to unmarshal record: %w", err)
	}
	session.CurrentStep = domain.Step(step)
	session.IsComplete = isComplete != 0
	return &session, nil
}
