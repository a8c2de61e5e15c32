package store

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/hireloop/jobagent/domain"
)

// newTestRedisMedium connects to the Redis named by REDIS_TEST_ADDR and
// skips the test when it is unset; there is no container harness in this
// repo.
func newTestRedisMedium(t *testing.T) *RedisMedium {
	t.Helper()
	addr := os.Getenv("REDIS_TEST_ADDR")
	if addr == "" {
		t.Skip("REDIS_TEST_ADDR not set")
	}
	client := redis.NewClient(&redis.Options{Addr: addr})
	t.Cleanup(func() { _ = client.Close() })
	return NewRedisMedium(client, time.Hour)
}

func TestRedisMediumRoundTrip(t *testing.T) {
	ctx := context.Background()
	medium := newTestRedisMedium(t)

	id := "test-" + uuid.New().String()[:8]
	now := time.Now().UTC().Truncate(time.Second)
	session := &domain.Session{
		SessionID: id, OwnerID: "co-1", OwnerName: "Acme",
		CreatedAt: now, LastUpdatedAt: now,
		History: []string{"user: hi"},
		Record:  domain.Record{Title: "Engineer", Skills: []string{"go"}},
		CurrentStep: domain.StepCollectingDetails,
	}
	if err := medium.Save(ctx, session); err != nil {
		t.Fatalf("Save failed: %v", err)
	}
	t.Cleanup(func() { _, _ = medium.Delete(ctx, id) })

	got, err := medium.Load(ctx, id)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if got == nil || got.Record.Title != "Engineer" || !got.CreatedAt.Equal(session.CreatedAt) {
		t.Fatalf("session did not round-trip: %+v", got)
	}

	removed, err := medium.Delete(ctx, id)
	if err != nil || !removed {
		t.Fatalf("Delete = (%v, %v), want (true, nil)", removed, err)
	}
}
