package adapters

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"relet/internal/renewal"
	"relet/internal/renewal/ports"
	id "relet/pkg/domain"
	dErrors "relet/pkg/domain-errors"
)

// PaymentTrackerClient implements ports.PaymentTracker against the payment
// tracker's HTTP API. Collaborator calls are synchronous and failure
// reporting; no retries happen here - a failed fetch surfaces immediately.
type PaymentTrackerClient struct {
	baseURL string
	http    *http.Client
}

// NewPaymentTrackerClient builds a client for the given base URL.
func NewPaymentTrackerClient(baseURL string) *PaymentTrackerClient {
	return &PaymentTrackerClient{
		baseURL: baseURL,
		http:    &http.Client{Timeout: 10 * time.Second},
	}
}

type paymentRecordDTO struct {
	Amount    int64 `json:"amount"`
	Timestamp int64 `json:"timestamp"`
	OnTime    bool  `json:"on_time"`
}

type paymentHistoryDTO struct {
	Payments []paymentRecordDTO `json:"payments"`
}

// History fetches the payment sequence for a lease. A 404 from the tracker
// means the lease has no recorded history.
func (c *PaymentTrackerClient) History(ctx context.Context, leaseID id.LeaseID) ([]renewal.PaymentRecord, error) {
	url := fmt.Sprintf("%s/leases/%d/payments", c.baseURL, leaseID)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "build payment history request")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "payment tracker unreachable")
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK:
	case http.StatusNotFound:
		return nil, dErrors.Newf(dErrors.CodeNoPaymentHistory, "no payment history for lease %d", leaseID)
	default:
		return nil, dErrors.Newf(dErrors.CodeInternal, "payment tracker returned %d", resp.StatusCode)
	}

	var body paymentHistoryDTO
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "decode payment history")
	}

	history := make([]renewal.PaymentRecord, 0, len(body.Payments))
	for _, p := range body.Payments {
		history = append(history, renewal.PaymentRecord{
			Amount:    p.Amount,
			Timestamp: p.Timestamp,
			OnTime:    p.OnTime,
		})
	}
	return history, nil
}

var _ ports.PaymentTracker = (*PaymentTrackerClient)(nil)
