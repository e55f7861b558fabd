package api

import (
	"log/slog"
	"net/http"

	"github.com/phrazzld/recall-sprint/internal/api/shared"
	"github.com/phrazzld/recall-sprint/internal/domain"
	"github.com/phrazzld/recall-sprint/internal/platform/logger"
	"github.com/phrazzld/recall-sprint/internal/service"
)

// ResultsHandler records finished runs.
type ResultsHandler struct {
	results service.ResultService
	logger  *slog.Logger
}

// NewResultsHandler creates a new ResultsHandler
func NewResultsHandler(results service.ResultService, logger *slog.Logger) *ResultsHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &ResultsHandler{
		results: results,
		logger:  logger.With(slog.String("component", "results_handler")),
	}
}

// SubmitResult handles POST /api/results requests.
func (h *ResultsHandler) SubmitResult(w http.ResponseWriter, r *http.Request) {
	var req SubmitResultRequest
	if err := shared.DecodeJSON(w, r, &req); err != nil {
		shared.RespondWithErrorAndLog(w, r, http.StatusBadRequest, MsgInvalidPayload, err)
		return
	}

	if err := shared.ValidateRequest(&req); err != nil {
		shared.RespondWithErrorAndLog(w, r, http.StatusBadRequest, SanitizeValidationError(err), err)
		return
	}

	result, err := h.results.Record(r.Context(), service.RecordParams{
		Email:            req.Email,
		NamesPresented:   req.NamesPresented,
		AnswersSubmitted: req.AnswersSubmitted,
		Score:            *req.Score,
		Status:           domain.Status(req.Status),
	})
	if err != nil {
		status := MapErrorToStatusCode(err)
		message := GetSafeErrorMessage(err)
		if status == http.StatusBadRequest {
			message = SanitizeValidationError(err)
		} else if status >= http.StatusInternalServerError {
			message = MsgPersistFailed
		}
		shared.RespondWithErrorAndLog(w, r, status, message, err)
		return
	}

	logger.FromContextOrDefault(r.Context(), h.logger).Debug("result accepted",
		slog.String("result_id", result.ID.String()))

	shared.RespondWithJSON(w, r, http.StatusOK, shared.SuccessResponse{Success: true})
}
