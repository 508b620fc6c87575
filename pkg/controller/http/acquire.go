package http

import (
	"context"
	"crypto/subtle"
	"encoding/json"
	"net/http"

	"github.com/google/uuid"
	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/goerr/v2"
	"github.com/mizuki-ohta/rawland/pkg/domain/interfaces"
	"github.com/mizuki-ohta/rawland/pkg/domain/model"
	"github.com/mizuki-ohta/rawland/pkg/utils/async"
)

// AcquireHandler accepts acquisition requests over HTTP and runs them in the
// background. The HTTP surface is orchestration glue; the acquisition core
// itself stays outbound-only.
type AcquireHandler struct {
	apiToken  string
	acquireUC interfaces.AcquireUseCase
}

// NewAcquireHandler creates a new AcquireHandler
func NewAcquireHandler(apiToken string, acquireUC interfaces.AcquireUseCase) *AcquireHandler {
	return &AcquireHandler{
		apiToken:  apiToken,
		acquireUC: acquireUC,
	}
}

// Handle validates the request and dispatches the acquisition asynchronously,
// responding 202 with a run ID. The acquisition outcome is only observable in
// the logs and the populated extract directory.
func (h *AcquireHandler) Handle(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := ctxlog.From(ctx)

	if !h.authorize(r) {
		logger.Warn("Rejected acquire request with invalid token")
		writeError(w, goerr.New("invalid or missing API token"), http.StatusUnauthorized)
		return
	}

	var req model.AcquisitionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		logger.Error("Failed to decode acquire request", "error", err)
		writeError(w, goerr.Wrap(err, "invalid JSON payload"), http.StatusBadRequest)
		return
	}
	defer r.Body.Close()

	if err := req.Validate(); err != nil {
		logger.Warn("Invalid acquire request", "error", err)
		writeError(w, err, http.StatusBadRequest)
		return
	}

	runID := uuid.NewString()
	logger.Info("Accepted acquisition request",
		"run_id", runID,
		"url", req.URL,
		"extract_dir", req.ExtractDir,
		"omit_verification", req.OmitVerification,
	)

	async.Dispatch(ctx, func(ctx context.Context) error {
		ctx = ctxlog.With(ctx, ctxlog.From(ctx).With("run_id", runID))
		if _, err := h.acquireUC.Acquire(ctx, &req); err != nil {
			return goerr.Wrap(err, "background acquisition failed", goerr.V("run_id", runID))
		}
		return nil
	})

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusAccepted)
	if err := json.NewEncoder(w).Encode(map[string]string{
		"status": "accepted",
		"run_id": runID,
	}); err != nil {
		logger.Error("Failed to encode accept response", "error", err)
	}
}

// authorize compares the bearer token in constant time
func (h *AcquireHandler) authorize(r *http.Request) bool {
	const prefix = "Bearer "
	auth := r.Header.Get("Authorization")
	if len(auth) <= len(prefix) || auth[:len(prefix)] != prefix {
		return false
	}
	token := auth[len(prefix):]
	return subtle.ConstantTimeCompare([]byte(token), []byte(h.apiToken)) == 1
}
