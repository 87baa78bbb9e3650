package postgres

import (
	"context"
	"database/sql"

	"github.com/google/uuid"

	id "relet/pkg/domain"
	audit "relet/pkg/platform/audit"
)

// Store persists audit events in the audit_events table:
//
//	CREATE TABLE audit_events (
//	    id          UUID        PRIMARY KEY,
//	    category    TEXT        NOT NULL,
//	    occurred_at TIMESTAMPTZ NOT NULL,
//	    lease_id    BIGINT      NOT NULL,
//	    principal   TEXT        NOT NULL,
//	    action      TEXT        NOT NULL,
//	    decision    TEXT        NOT NULL,
//	    reason      TEXT        NOT NULL,
//	    request_id  TEXT        NOT NULL
//	);
type Store struct {
	db *sql.DB
}

func New(db *sql.DB) *Store {
	return &Store{db: db}
}

func (s *Store) Append(ctx context.Context, event audit.Event) error {
	// Category derives from the action; the eventCategories map is the
	// source of truth.
	category := audit.AuditEvent(event.Action).Category()

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO audit_events
			(id, category, occurred_at, lease_id, principal, action, decision, reason, request_id)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
		uuid.New(), string(category), event.Timestamp, int64(event.LeaseID),
		string(event.Principal), event.Action, event.Decision, event.Reason, event.RequestID,
	)
	return err
}

func (s *Store) ListByLease(ctx context.Context, leaseID int64) ([]audit.Event, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT occurred_at, lease_id, principal, action, decision, reason, request_id
		FROM audit_events
		WHERE lease_id = $1
		ORDER BY occurred_at`,
		leaseID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var events []audit.Event
	for rows.Next() {
		var (
			ev        audit.Event
			lease     int64
			principal string
		)
		if err := rows.Scan(&ev.Timestamp, &lease, &principal, &ev.Action, &ev.Decision, &ev.Reason, &ev.RequestID); err != nil {
			return nil, err
		}
		ev.LeaseID = id.LeaseID(lease)
		ev.Principal = id.Principal(principal)
		events = append(events, ev)
	}
	return events, rows.Err()
}
