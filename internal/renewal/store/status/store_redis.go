package status

import (
	"context"
	"fmt"
	"strconv"

	"github.com/redis/go-redis/v9"

	"relet/internal/renewal"
	id "relet/pkg/domain"
	dErrors "relet/pkg/domain-errors"
)

const keyPrefix = "relet:status:"

// RedisStore keeps renewal status in a Redis hash per lease so multiple
// engine replicas observe the same state machine.
type RedisStore struct {
	client *redis.Client
}

func NewRedisStore(client *redis.Client) *RedisStore {
	return &RedisStore{client: client}
}

func key(leaseID id.LeaseID) string {
	return keyPrefix + leaseID.String()
}

func (s *RedisStore) Get(ctx context.Context, leaseID id.LeaseID) (*renewal.RenewalStatus, error) {
	fields, err := s.client.HGetAll(ctx, key(leaseID)).Result()
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "read renewal status")
	}
	if len(fields) == 0 {
		return nil, nil
	}

	st := renewal.RenewalStatus{}
	if st.LastRenewed, err = strconv.ParseInt(fields["last_renewed"], 10, 64); err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "corrupt last_renewed field")
	}
	if st.NextEligible, err = strconv.ParseInt(fields["next_eligible"], 10, 64); err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "corrupt next_eligible field")
	}
	if st.Extensions, err = strconv.ParseInt(fields["extensions"], 10, 64); err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "corrupt extensions field")
	}
	st.Active = fields["active"] == "1"
	return &st, nil
}

func (s *RedisStore) Put(ctx context.Context, leaseID id.LeaseID, st renewal.RenewalStatus) error {
	active := "0"
	if st.Active {
		active = "1"
	}
	err := s.client.HSet(ctx, key(leaseID),
		"last_renewed", strconv.FormatInt(st.LastRenewed, 10),
		"next_eligible", strconv.FormatInt(st.NextEligible, 10),
		"active", active,
		"extensions", strconv.FormatInt(st.Extensions, 10),
	).Err()
	if err != nil {
		return dErrors.Wrap(err, dErrors.CodeInternal, fmt.Sprintf("write renewal status for lease %d", leaseID))
	}
	return nil
}
