package audit_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	audit "relet/pkg/platform/audit"
	"relet/pkg/platform/audit/store/memory"
)

func TestPublisherStampsTimestamp(t *testing.T) {
	store := memory.NewInMemoryStore()
	publisher := audit.NewPublisher(store)
	ctx := context.Background()

	err := publisher.Emit(ctx, audit.Event{
		LeaseID:  1,
		Action:   string(audit.EventRenewalSucceeded),
		Decision: "renewed",
	})
	require.NoError(t, err)

	events, err := publisher.List(ctx, 1)
	require.NoError(t, err)
	require.Len(t, events, 1)
	assert.False(t, events[0].Timestamp.IsZero())
}

func TestQueueDropsWhenFull(t *testing.T) {
	q := audit.NewQueue(1)
	ctx := context.Background()

	require.NoError(t, q.Emit(ctx, audit.Event{Action: "first"}))
	require.NoError(t, q.Emit(ctx, audit.Event{Action: "second"}), "a full inbox must not block the caller")

	select {
	case ev := <-q.Events():
		assert.Equal(t, "first", ev.Action)
	case <-time.After(time.Second):
		t.Fatal("expected a queued event")
	}

	select {
	case ev := <-q.Events():
		t.Fatalf("expected the overflow event to be dropped, got %q", ev.Action)
	default:
	}
}

func TestEventCategories(t *testing.T) {
	assert.Equal(t, audit.CategoryCompliance, audit.EventRenewalSucceeded.Category())
	assert.Equal(t, audit.CategoryCompliance, audit.EventRenewalDenied.Category())
	assert.Equal(t, audit.CategorySecurity, audit.EventOracleRotated.Category())
	assert.Equal(t, audit.CategoryOperations, audit.EventRulesUpdated.Category())
	assert.Equal(t, audit.CategoryOperations, audit.AuditEvent("unknown").Category())
}
