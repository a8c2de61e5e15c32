package store

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/hireloop/jobagent/domain"
)

func TestFileMediumCorruptFileTreatedAsMissing(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	medium, err := NewFileMedium(dir)
	if err != nil {
		t.Fatalf("failed to create file medium: %v", err)
	}

	if err := os.WriteFile(filepath.Join(dir, "bad.json"), []byte("{not json"), 0o644); err != nil {
		t.Fatalf("failed to write corrupt file: %v", err)
	}

	session, err := medium.Load(ctx, "bad")
	if err != nil {
		t.Fatalf("Load returned error for corrupt file: %v", err)
	}
	if session != nil {
		t.Fatalf("expected corrupt file to read as missing, got %+v", session)
	}

	// A corrupt file must not take down listing either.
	sessions, err := medium.List(ctx)
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(sessions) != 0 {
		t.Fatalf("expected empty list, got %d sessions", len(sessions))
	}
}

func TestFileMediumLeavesNoTempFiles(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	medium, err := NewFileMedium(dir)
	if err != nil {
		t.Fatalf("failed to create file medium: %v", err)
	}

	now := time.Now().UTC().Truncate(time.Second)
	session := &domain.Session{
		SessionID: "s1", OwnerID: "co-1",
		CreatedAt: now, LastUpdatedAt: now,
		History: []string{}, CurrentStep: domain.StepCollectingBasics,
	}
	for i := 0; i < 5; i++ {
		session.AppendUser("turn")
		if err := medium.Save(ctx, session); err != nil {
			t.Fatalf("Save failed: %v", err)
		}
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatalf("ReadDir failed: %v", err)
	}
	for _, entry := range entries {
		if strings.HasSuffix(entry.Name(), ".tmp") {
			t.Fatalf("temp file left behind: %s", entry.Name())
		}
	}
	if len(entries) != 1 {
		t.Fatalf("expected exactly one session file, got %d", len(entries))
	}
}

func TestFileMediumDeleteMissing(t *testing.T) {
	medium, err := NewFileMedium(t.TempDir())
	if err != nil {
		t.Fatalf("failed to create file medium: %v", err)
	}
	removed, err := medium.Delete(context.Background(), "nope")
	if err != nil || removed {
		t.Fatalf("Delete = (%v, %v), want (false, nil)", removed, err)
	}
}
