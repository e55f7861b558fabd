package api

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/phrazzld/recall-sprint/internal/api/shared"
	"github.com/phrazzld/recall-sprint/internal/domain"
	"github.com/phrazzld/recall-sprint/internal/platform/logger"
	"github.com/phrazzld/recall-sprint/internal/service"
)

// NamesHandler serves the names for a new run.
type NamesHandler struct {
	names  service.NameService
	logger *slog.Logger
}

// NewNamesHandler creates a new NamesHandler
func NewNamesHandler(names service.NameService, logger *slog.Logger) *NamesHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &NamesHandler{
		names:  names,
		logger: logger.With(slog.String("component", "names_handler")),
	}
}

// GetNames handles GET /api/names requests.
//
// 200 carries the drawn names and the active pool size, 422 means the active
// pool is smaller than the draw count, and any other failure is a 500.
func (h *NamesHandler) GetNames(w http.ResponseWriter, r *http.Request) {
	draw, err := h.names.Draw(r.Context())
	if err != nil {
		if errors.Is(err, domain.ErrInsufficientPool) {
			shared.RespondWithErrorAndLog(w, r, http.StatusUnprocessableEntity, MsgInsufficientPool, err)
			return
		}
		shared.RespondWithErrorAndLog(w, r, http.StatusInternalServerError, MsgNamesUnavailable, err)
		return
	}

	logger.FromContextOrDefault(r.Context(), h.logger).Debug("names served",
		slog.Int("count", len(draw.Names)),
		slog.Int("pool_size", draw.PoolSize))

	shared.RespondWithJSON(w, r, http.StatusOK, NamesResponse{
		Names:    draw.Names,
		PoolSize: draw.PoolSize,
	})
}
