package store

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/hireloop/jobagent/domain"
)

// FileMedium persists one JSON file per session under a directory.
// Writes go to a temp file first and are renamed into place so a crash
// mid-write cannot leave a half-written session on disk.
type FileMedium struct {
	dir string
}

// NewFileMedium creates the directory if needed.
func NewFileMedium(dir string) (*FileMedium, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create session directory: %w", err)
	}
	return &FileMedium{dir: dir}, nil
}

func (m *FileMedium) path(sessionID string) string {
	return filepath.Join(m.dir, sessionID+".json")
}

// Save writes the session atomically.
func (m *FileMedium) Save(ctx context.Context, session *domain.Session) error {
	data, err := json.Marshal(session)
	if err != nil {
		return fmt.Errorf("failed to marshal session: %w", err)
	}

	tmp, err := os.CreateTemp(m.dir, session.SessionID+".*.tmp")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	tmpName := tmp.Name()
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("failed to write temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("failed to close temp file: %w", err)
	}
	if err := os.Rename(tmpName, m.path(session.SessionID)); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("failed to rename session file: %w", err)
	}
	return nil
}

// Load reads the session file. A missing file is (nil, nil); a corrupt
// file is logged and treated as missing so one bad record cannot take the
// caller down.
func (m *FileMedium) Load(ctx context.Context, sessionID string) (*domain.Session, error) {
	data, err := os.ReadFile(m.path(sessionID))
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read session file: %w", err)
	}

	var session domain.Session
	if err := json.Unmarshal(data, &session); err != nil {
		log.Printf("WARN: corrupt session file %s: %v", m.path(sessionID), err)
		return nil, nil
	}
	return &session, nil
}

// Delete removes the session file.
func (m *FileMedium) Delete(ctx context.Context, sessionID string) (bool, error) {
	err := os.Remove(m.path(sessionID))
	if os.IsNotExist(err) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("failed to remove session file: %w", err)
	}
	return true, nil
}

// List loads every session file in the directory, skipping corrupt ones.
func (m *FileMedium) List(ctx context.Context) ([]*domain.Session, error) {
	entries, err := os.ReadDir(m.dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read session directory: %w", err)
	}

	var sessions []*domain.Session
	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || !strings.HasSuffix(name, ".json") {
			continue
		}
		session, err := m.Load(ctx, strings.TrimSuffix(name, ".json"))
		if err != nil {
			log.Printf("WARN: failed to load session file %s: %v", name, err)
			continue
		}
		if session != nil {
			sessions = append(sessions, session)
		}
	}
	return sessions, nil
}

// Close is a no-op for the file medium.
func (m *FileMedium) Close() error {
	return nil
}
