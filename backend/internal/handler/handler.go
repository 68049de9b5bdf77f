package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"

	"github.com/Lombiq/NGM.Forum/backend/internal/service"
	"github.com/Lombiq/NGM.Forum/shared/config"
	"github.com/Lombiq/NGM.Forum/shared/logger"
)

// HealthChecker reports whether the content store can serve requests.
type HealthChecker interface {
	Ping(ctx context.Context) error
}

type Handler struct {
	thread service.ThreadService
	forum  service.ForumService
	pager  service.Pager
	cfg    *config.Config
	health HealthChecker
}

func New(thread service.ThreadService, forum service.ForumService, cfg *config.Config, health HealthChecker) *Handler {
	return &Handler{
		thread: thread,
		forum:  forum,
		pager:  service.Pager{PerPage: cfg.Public.ThreadsPerPage, MaxSize: cfg.Public.MaxPageSize},
		cfg:    cfg,
		health: health,
	}
}

// writeJSON encodes v before touching the response so an encoding failure
// can still be reported as a 500.
func writeJSON(w http.ResponseWriter, v any) {
	var buf bytes.Buffer
	if err := json.NewEncoder(&buf).Encode(v); err != nil {
		logger.Log.Error("failed to encode response", "error", err)
		http.Error(w, "Internal error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write(buf.Bytes())
}
