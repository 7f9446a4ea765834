package session

import (
	"net/http"

	"github.com/frahmantamala/attendance-management/internal/transport"
)

// KeepaliveHandler serves the heartbeat endpoint. The response body is
// deliberately tiny; the point of the request is that it passes through the
// activity recorder and resets the inactivity timer.
type KeepaliveHandler struct {
	*transport.BaseHandler
	manager *Manager
}

func NewKeepaliveHandler(baseHandler *transport.BaseHandler, manager *Manager) *KeepaliveHandler {
	return &KeepaliveHandler{
		BaseHandler: baseHandler,
		manager:     manager,
	}
}

func (h *KeepaliveHandler) Keepalive(w http.ResponseWriter, r *http.Request) {
	sess, ok := FromContext(r.Context())
	if !ok {
		h.WriteError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	h.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"status":      "ok",
		"server_time": h.manager.Clock().Now().Format(LastActivityFormat),
		"user_id":     sess.UserID,
	})
}
