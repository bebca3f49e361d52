package api

import (
	"log/slog"
	"net/http"

	"github.com/garibaycarlos/core-code-camp/internal/api/shared"
	"github.com/garibaycarlos/core-code-camp/internal/platform/logger"
	"github.com/garibaycarlos/core-code-camp/internal/redact"
)

// ConfigReloader re-reads process configuration from its sources.
type ConfigReloader interface {
	Reload() error
}

// OperationsHandler serves operational endpoints unrelated to camps.
type OperationsHandler struct {
	reloader ConfigReloader
	logger   *slog.Logger
}

// NewOperationsHandler creates a new OperationsHandler.
func NewOperationsHandler(reloader ConfigReloader, logger *slog.Logger) *OperationsHandler {
	if reloader == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("reloader cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &OperationsHandler{
		reloader: reloader,
		logger:   logger.With(slog.String("component", "operations_handler")),
	}
}

// ReloadConfig handles OPTIONS /operations/reloadconfig. Success is an empty
// 200; any failure is a bare 500.
func (h *OperationsHandler) ReloadConfig(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	if err := h.reloader.Reload(); err != nil {
		log.Error("configuration reload failed", slog.String("error", redact.Error(err)))
		shared.RespondWithStatus(w, http.StatusInternalServerError)
		return
	}

	log.Info("configuration reloaded")
	shared.RespondWithStatus(w, http.StatusOK)
}
