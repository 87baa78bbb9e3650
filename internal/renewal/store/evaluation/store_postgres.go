package evaluation

import (
	"context"
	"database/sql"
	"errors"

	"relet/internal/renewal"
	id "relet/pkg/domain"
	dErrors "relet/pkg/domain-errors"
)

// PostgresStore persists the evaluation history in the
// renewal_evaluations table:
//
//	CREATE TABLE renewal_evaluations (
//	    lease_id        BIGINT    NOT NULL,
//	    evaluation_id   BIGINT    NOT NULL,
//	    block_height    BIGINT    NOT NULL,
//	    met_threshold   BOOLEAN   NOT NULL,
//	    on_time_count   INTEGER   NOT NULL,
//	    total_count     INTEGER   NOT NULL,
//	    ratio           INTEGER   NOT NULL,
//	    created_at      TIMESTAMPTZ NOT NULL DEFAULT now(),
//	    PRIMARY KEY (lease_id, evaluation_id)
//	);
//
// Records are write-once; the primary key rejects duplicate appends.
type PostgresStore struct {
	db *sql.DB
}

func NewPostgresStore(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

func (s *PostgresStore) Append(ctx context.Context, ev renewal.Evaluation) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO renewal_evaluations
			(lease_id, evaluation_id, block_height, met_threshold, on_time_count, total_count, ratio)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		int64(ev.LeaseID), int64(ev.ID), ev.Height, ev.MetThreshold, ev.OnTimeCount, ev.TotalCount, ev.Ratio,
	)
	if err != nil {
		return dErrors.Wrap(err, dErrors.CodeInternal, "append evaluation record")
	}
	return nil
}

func (s *PostgresStore) Get(ctx context.Context, leaseID id.LeaseID, evalID id.EvaluationID) (*renewal.Evaluation, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT lease_id, evaluation_id, block_height, met_threshold, on_time_count, total_count, ratio
		FROM renewal_evaluations
		WHERE lease_id = $1 AND evaluation_id = $2`,
		int64(leaseID), int64(evalID),
	)
	ev, err := scanEvaluation(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "read evaluation record")
	}
	return ev, nil
}

func (s *PostgresStore) ListByLease(ctx context.Context, leaseID id.LeaseID) ([]renewal.Evaluation, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT lease_id, evaluation_id, block_height, met_threshold, on_time_count, total_count, ratio
		FROM renewal_evaluations
		WHERE lease_id = $1
		ORDER BY evaluation_id`,
		int64(leaseID),
	)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "list evaluation records")
	}
	defer rows.Close()

	var evs []renewal.Evaluation
	for rows.Next() {
		ev, err := scanEvaluation(rows)
		if err != nil {
			return nil, dErrors.Wrap(err, dErrors.CodeInternal, "scan evaluation record")
		}
		evs = append(evs, *ev)
	}
	if err := rows.Err(); err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "iterate evaluation records")
	}
	return evs, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanEvaluation(row rowScanner) (*renewal.Evaluation, error) {
	var (
		ev      renewal.Evaluation
		leaseID int64
		evalID  int64
	)
	if err := row.Scan(&leaseID, &evalID, &ev.Height, &ev.MetThreshold, &ev.OnTimeCount, &ev.TotalCount, &ev.Ratio); err != nil {
		return nil, err
	}
	ev.LeaseID = id.LeaseID(leaseID)
	ev.ID = id.EvaluationID(evalID)
	return &ev, nil
}
