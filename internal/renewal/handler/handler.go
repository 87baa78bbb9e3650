package handler

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"relet/internal/renewal"
	id "relet/pkg/domain"
	dErrors "relet/pkg/domain-errors"
	"relet/pkg/platform/httputil"
	"relet/pkg/requestcontext"
)

// Service defines the renewal operations the HTTP layer exposes.
type Service interface {
	SetLeaseRules(ctx context.Context, caller id.Principal, leaseID id.LeaseID, rules renewal.LeaseRules) error
	CheckAndRenew(ctx context.Context, leaseID id.LeaseID) (int64, error)
	ManualEvaluation(ctx context.Context, caller id.Principal, leaseID id.LeaseID) (bool, error)
	LeaseRules(ctx context.Context, leaseID id.LeaseID) (*renewal.LeaseRules, error)
	RenewalStatus(ctx context.Context, leaseID id.LeaseID) (*renewal.RenewalStatus, error)
	Evaluation(ctx context.Context, leaseID id.LeaseID, evalID id.EvaluationID) (*renewal.Evaluation, error)
	Evaluations(ctx context.Context, leaseID id.LeaseID) ([]renewal.Evaluation, error)
	EvaluationCount() int64
	SetOracle(ctx context.Context, caller, next id.Principal) error
	SetDefaultThreshold(ctx context.Context, caller id.Principal, threshold int) error
	SetDefaultPeriod(ctx context.Context, caller id.Principal, period int64) error
	SetGracePeriod(ctx context.Context, caller id.Principal, grace int64) error
}

// Handler wires renewal endpoints to the renewal service. Authorization is
// not enforced here: oracle gating lives in the policy so the error codes
// stay identical across transports.
type Handler struct {
	service Service
	logger  *slog.Logger
}

// New constructs a renewal handler with its dependencies.
func New(service Service, logger *slog.Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Register mounts renewal endpoints on the router.
func (h *Handler) Register(r chi.Router) {
	r.Route("/leases/{leaseID}", func(r chi.Router) {
		r.Put("/rules", h.HandleSetRules)
		r.Get("/rules", h.HandleGetRules)
		r.Post("/renewal", h.HandleCheckAndRenew)
		r.Post("/evaluation", h.HandleManualEvaluation)
		r.Get("/status", h.HandleGetStatus)
		r.Get("/evaluations", h.HandleListEvaluations)
		r.Get("/evaluations/{evalID}", h.HandleGetEvaluation)
	})
	r.Get("/evaluations/count", h.HandleEvaluationCount)
	r.Route("/admin/policy", func(r chi.Router) {
		r.Put("/oracle", h.HandleSetOracle)
		r.Put("/threshold", h.HandleSetThreshold)
		r.Put("/period", h.HandleSetPeriod)
		r.Put("/grace", h.HandleSetGrace)
	})
}

// leaseID extracts and checks the lease ID path parameter. On failure it
// writes the error response and reports ok=false.
func (h *Handler) leaseID(w http.ResponseWriter, r *http.Request) (id.LeaseID, bool) {
	leaseID := id.ParseLeaseID(chi.URLParam(r, "leaseID"))
	if !leaseID.Valid() {
		httputil.WriteError(w, dErrors.New(dErrors.CodeInvalidLeaseID, "lease id must be a positive integer"))
		return 0, false
	}
	return leaseID, true
}

// HandleSetRules handles PUT /leases/{leaseID}/rules.
func (h *Handler) HandleSetRules(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)

	leaseID, ok := h.leaseID(w, r)
	if !ok {
		return
	}
	req, ok := httputil.DecodeAndPrepare[SetRulesRequest](w, r, h.logger, ctx, requestID)
	if !ok {
		return
	}

	caller := requestcontext.Principal(ctx)
	if err := h.service.SetLeaseRules(ctx, caller, leaseID, req.Rules()); err != nil {
		httputil.WriteError(w, err)
		return
	}

	h.logger.InfoContext(ctx, "lease rules updated",
		"request_id", requestID,
		"lease_id", leaseID,
		"caller", caller,
	)
	httputil.WriteJSON(w, http.StatusOK, ackResponse{Status: "updated"})
}

// HandleGetRules handles GET /leases/{leaseID}/rules.
func (h *Handler) HandleGetRules(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	leaseID, ok := h.leaseID(w, r)
	if !ok {
		return
	}

	rules, err := h.service.LeaseRules(ctx, leaseID)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	if rules == nil {
		httputil.WriteError(w, dErrors.Newf(dErrors.CodeLeaseNotFound, "no rules stored for lease %d", leaseID))
		return
	}
	httputil.WriteJSON(w, http.StatusOK, FromRules(rules))
}

// HandleCheckAndRenew handles POST /leases/{leaseID}/renewal.
func (h *Handler) HandleCheckAndRenew(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)
	start := time.Now()

	leaseID, ok := h.leaseID(w, r)
	if !ok {
		return
	}

	newTerm, err := h.service.CheckAndRenew(ctx, leaseID)
	if err != nil {
		h.logger.InfoContext(ctx, "renewal denied",
			"request_id", requestID,
			"lease_id", leaseID,
			"error", err,
		)
		httputil.WriteError(w, err)
		return
	}

	h.logger.InfoContext(ctx, "renewal accepted",
		"request_id", requestID,
		"lease_id", leaseID,
		"new_term", newTerm,
		"duration_ms", time.Since(start).Milliseconds(),
	)
	httputil.WriteJSON(w, http.StatusOK, RenewalResponse{NewTerm: newTerm})
}

// HandleManualEvaluation handles POST /leases/{leaseID}/evaluation.
func (h *Handler) HandleManualEvaluation(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)

	leaseID, ok := h.leaseID(w, r)
	if !ok {
		return
	}

	caller := requestcontext.Principal(ctx)
	renewed, err := h.service.ManualEvaluation(ctx, caller, leaseID)
	if err != nil {
		h.logger.WarnContext(ctx, "manual evaluation failed",
			"request_id", requestID,
			"lease_id", leaseID,
			"caller", caller,
			"error", err,
		)
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, ManualEvaluationResponse{Renewed: renewed})
}

// HandleGetStatus handles GET /leases/{leaseID}/status.
func (h *Handler) HandleGetStatus(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	leaseID, ok := h.leaseID(w, r)
	if !ok {
		return
	}

	status, err := h.service.RenewalStatus(ctx, leaseID)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	if status == nil {
		httputil.WriteError(w, dErrors.Newf(dErrors.CodeLeaseNotFound, "no renewal status for lease %d", leaseID))
		return
	}
	httputil.WriteJSON(w, http.StatusOK, FromStatus(status))
}

// HandleGetEvaluation handles GET /leases/{leaseID}/evaluations/{evalID}.
func (h *Handler) HandleGetEvaluation(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	leaseID, ok := h.leaseID(w, r)
	if !ok {
		return
	}
	// An unparsable evaluation ID can never name a record.
	evalID := id.ParseEvaluationID(chi.URLParam(r, "evalID"))
	if evalID < 0 {
		httputil.WriteError(w, dErrors.Newf(dErrors.CodeLeaseNotFound, "no such evaluation for lease %d", leaseID))
		return
	}

	ev, err := h.service.Evaluation(ctx, leaseID, evalID)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	if ev == nil {
		httputil.WriteError(w, dErrors.Newf(dErrors.CodeLeaseNotFound, "no evaluation %d for lease %d", evalID, leaseID))
		return
	}
	httputil.WriteJSON(w, http.StatusOK, FromEvaluation(*ev))
}

// HandleListEvaluations handles GET /leases/{leaseID}/evaluations.
func (h *Handler) HandleListEvaluations(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	leaseID, ok := h.leaseID(w, r)
	if !ok {
		return
	}

	evs, err := h.service.Evaluations(ctx, leaseID)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	out := make([]EvaluationResponse, 0, len(evs))
	for _, ev := range evs {
		out = append(out, FromEvaluation(ev))
	}
	httputil.WriteJSON(w, http.StatusOK, EvaluationListResponse{Evaluations: out})
}

// HandleEvaluationCount handles GET /evaluations/count.
func (h *Handler) HandleEvaluationCount(w http.ResponseWriter, r *http.Request) {
	httputil.WriteJSON(w, http.StatusOK, CountResponse{Count: h.service.EvaluationCount()})
}

// HandleSetOracle handles PUT /admin/policy/oracle.
func (h *Handler) HandleSetOracle(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)

	req, ok := httputil.DecodeAndPrepare[SetOracleRequest](w, r, h.logger, ctx, requestID)
	if !ok {
		return
	}

	caller := requestcontext.Principal(ctx)
	if err := h.service.SetOracle(ctx, caller, id.Principal(req.Oracle)); err != nil {
		httputil.WriteError(w, err)
		return
	}
	h.logger.InfoContext(ctx, "oracle rotated", "request_id", requestID, "caller", caller)
	httputil.WriteJSON(w, http.StatusOK, ackResponse{Status: "updated"})
}

// HandleSetThreshold handles PUT /admin/policy/threshold.
func (h *Handler) HandleSetThreshold(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)

	req, ok := httputil.DecodeAndPrepare[SetThresholdRequest](w, r, h.logger, ctx, requestID)
	if !ok {
		return
	}
	if err := h.service.SetDefaultThreshold(ctx, requestcontext.Principal(ctx), req.Threshold); err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, ackResponse{Status: "updated"})
}

// HandleSetPeriod handles PUT /admin/policy/period.
func (h *Handler) HandleSetPeriod(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)

	req, ok := httputil.DecodeAndPrepare[SetPeriodRequest](w, r, h.logger, ctx, requestID)
	if !ok {
		return
	}
	if err := h.service.SetDefaultPeriod(ctx, requestcontext.Principal(ctx), req.Period); err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, ackResponse{Status: "updated"})
}

// HandleSetGrace handles PUT /admin/policy/grace.
func (h *Handler) HandleSetGrace(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)

	req, ok := httputil.DecodeAndPrepare[SetGraceRequest](w, r, h.logger, ctx, requestID)
	if !ok {
		return
	}
	if err := h.service.SetGracePeriod(ctx, requestcontext.Principal(ctx), req.GraceDays); err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, ackResponse{Status: "updated"})
}
