package adapters

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"relet/internal/renewal"
	dErrors "relet/pkg/domain-errors"
)

func TestMemoryPaymentTracker(t *testing.T) {
	tracker := NewMemoryPaymentTracker()
	ctx := context.Background()

	_, err := tracker.History(ctx, 1)
	require.Error(t, err)
	assert.True(t, dErrors.HasCode(err, dErrors.CodeNoPaymentHistory))

	tracker.Record(1, renewal.PaymentRecord{Amount: 100, Timestamp: 10, OnTime: true})
	tracker.Record(1, renewal.PaymentRecord{Amount: 100, Timestamp: 20, OnTime: false})

	history, err := tracker.History(ctx, 1)
	require.NoError(t, err)
	require.Len(t, history, 2)
	assert.True(t, history[0].OnTime)
	assert.False(t, history[1].OnTime)
}

func TestMemoryLeaseFactory(t *testing.T) {
	factory := NewMemoryLeaseFactory()
	ctx := context.Background()

	_, err := factory.Term(ctx, 7)
	assert.True(t, dErrors.HasCode(err, dErrors.CodeLeaseNotFound))

	factory.SetTerm(7, 12)
	term, err := factory.Term(ctx, 7)
	require.NoError(t, err)
	assert.EqualValues(t, 12, term)

	require.NoError(t, factory.UpdateTerm(ctx, 7, 24))
	term, _ = factory.Term(ctx, 7)
	assert.EqualValues(t, 24, term)

	factory.RejectUpdates = true
	err = factory.UpdateTerm(ctx, 7, 36)
	assert.True(t, dErrors.HasCode(err, dErrors.CodeUpdateFailed))
	term, _ = factory.Term(ctx, 7)
	assert.EqualValues(t, 24, term, "rejected update must leave the term unchanged")
}

func TestPaymentTrackerClient(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/leases/1/payments":
			_ = json.NewEncoder(w).Encode(map[string]any{
				"payments": []map[string]any{
					{"amount": 100, "timestamp": 50, "on_time": true},
					{"amount": 100, "timestamp": 60, "on_time": false},
				},
			})
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	defer srv.Close()

	client := NewPaymentTrackerClient(srv.URL)
	ctx := context.Background()

	history, err := client.History(ctx, 1)
	require.NoError(t, err)
	require.Len(t, history, 2)
	assert.EqualValues(t, 100, history[0].Amount)
	assert.True(t, history[0].OnTime)

	_, err = client.History(ctx, 2)
	require.Error(t, err)
	assert.True(t, dErrors.HasCode(err, dErrors.CodeNoPaymentHistory))
}

func TestLeaseFactoryClient(t *testing.T) {
	var updated int64
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch {
		case r.URL.Path == "/leases/1/term" && r.Method == http.MethodGet:
			_ = json.NewEncoder(w).Encode(map[string]int64{"term": 12})
		case r.URL.Path == "/leases/1/term" && r.Method == http.MethodPut:
			var body struct {
				Term int64 `json:"term"`
			}
			_ = json.NewDecoder(r.Body).Decode(&body)
			updated = body.Term
			w.WriteHeader(http.StatusOK)
		case r.URL.Path == "/leases/9/term" && r.Method == http.MethodPut:
			w.WriteHeader(http.StatusConflict)
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	defer srv.Close()

	client := NewLeaseFactoryClient(srv.URL)
	ctx := context.Background()

	term, err := client.Term(ctx, 1)
	require.NoError(t, err)
	assert.EqualValues(t, 12, term)

	_, err = client.Term(ctx, 2)
	assert.True(t, dErrors.HasCode(err, dErrors.CodeLeaseNotFound))

	require.NoError(t, client.UpdateTerm(ctx, 1, 24))
	assert.EqualValues(t, 24, updated)

	err = client.UpdateTerm(ctx, 9, 24)
	assert.True(t, dErrors.HasCode(err, dErrors.CodeUpdateFailed))
}
