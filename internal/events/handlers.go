package events

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gariflow/backend-gari/internal/common"
)

// Handler exposes the recent event history so presentation adapters can poll
// for re-render triggers.
type Handler struct {
	Bus *Bus
}

// Recent handles GET /events?limit=n.
func (h *Handler) Recent(w http.ResponseWriter, r *http.Request) {
	limit := 0
	if raw := strings.TrimSpace(r.URL.Query().Get("limit")); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 0 {
			common.JSONError(w, http.StatusBadRequest, "BAD_REQUEST", "limit must be a non-negative integer", nil)
			return
		}
		limit = parsed
	}
	common.JSONData(w, http.StatusOK, h.Bus.Recent(limit))
}
