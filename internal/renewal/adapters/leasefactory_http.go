package adapters

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"relet/internal/renewal/ports"
	id "relet/pkg/domain"
	dErrors "relet/pkg/domain-errors"
)

// LeaseFactoryClient implements ports.LeaseFactory against the lease
// factory's HTTP API.
type LeaseFactoryClient struct {
	baseURL string
	http    *http.Client
}

// NewLeaseFactoryClient builds a client for the given base URL.
func NewLeaseFactoryClient(baseURL string) *LeaseFactoryClient {
	return &LeaseFactoryClient{
		baseURL: baseURL,
		http:    &http.Client{Timeout: 10 * time.Second},
	}
}

type termDTO struct {
	Term int64 `json:"term"`
}

// Term fetches the current lease term. A 404 means the factory does not
// know the lease.
func (c *LeaseFactoryClient) Term(ctx context.Context, leaseID id.LeaseID) (int64, error) {
	url := fmt.Sprintf("%s/leases/%d/term", c.baseURL, leaseID)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return 0, dErrors.Wrap(err, dErrors.CodeInternal, "build term request")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return 0, dErrors.Wrap(err, dErrors.CodeInternal, "lease factory unreachable")
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK:
	case http.StatusNotFound:
		return 0, dErrors.Newf(dErrors.CodeLeaseNotFound, "lease %d not found", leaseID)
	default:
		return 0, dErrors.Newf(dErrors.CodeInternal, "lease factory returned %d", resp.StatusCode)
	}

	var body termDTO
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return 0, dErrors.Wrap(err, dErrors.CodeInternal, "decode term response")
	}
	return body.Term, nil
}

// UpdateTerm asks the factory to persist the extended term. Any non-200
// answer is an UpdateFailed: the factory keeps the old term and the engine
// attempts no rollback.
func (c *LeaseFactoryClient) UpdateTerm(ctx context.Context, leaseID id.LeaseID, newTerm int64) error {
	payload, err := json.Marshal(termDTO{Term: newTerm})
	if err != nil {
		return dErrors.Wrap(err, dErrors.CodeInternal, "encode term update")
	}

	url := fmt.Sprintf("%s/leases/%d/term", c.baseURL, leaseID)
	req, err := http.NewRequestWithContext(ctx, http.MethodPut, url, bytes.NewReader(payload))
	if err != nil {
		return dErrors.Wrap(err, dErrors.CodeInternal, "build term update request")
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return dErrors.Wrap(err, dErrors.CodeUpdateFailed, "lease factory unreachable")
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return dErrors.Newf(dErrors.CodeUpdateFailed, "lease factory rejected term update with %d", resp.StatusCode)
	}
	return nil
}

var _ ports.LeaseFactory = (*LeaseFactoryClient)(nil)
