package user

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/frahmantamala/attendance-management/internal/auth"
	"github.com/frahmantamala/attendance-management/internal/transport"
	"github.com/go-chi/chi"
)

type ServiceAPI interface {
	ListTenantUsers(tenantID int64, limit, offset int) ([]*Member, error)
	AssignManager(tenantID, userID int64, managerProfileID *int64) (*Member, error)
}

type Handler struct {
	*transport.BaseHandler
	Service ServiceAPI
}

func NewHandler(baseHandler *transport.BaseHandler, service ServiceAPI) *Handler {
	return &Handler{
		BaseHandler: baseHandler,
		Service:     service,
	}
}

// Me returns the authenticated principal.
func (h *Handler) Me(w http.ResponseWriter, r *http.Request) {
	user, ok := auth.UserFromContext(r.Context())
	if !ok || user == nil {
		h.WriteError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	h.WriteJSON(w, http.StatusOK, user)
}

// ListTenantUsers lists the members of the acting admin's tenant.
func (h *Handler) ListTenantUsers(w http.ResponseWriter, r *http.Request) {
	admin, ok := auth.UserFromContext(r.Context())
	if !ok || admin == nil {
		h.WriteError(w, http.StatusUnauthorized, "unauthorized")
		return
	}
	if admin.TenantID == nil {
		h.WriteError(w, http.StatusForbidden, "user does not belong to a tenant")
		return
	}

	limit := 50
	offset := 0
	if limitStr := r.URL.Query().Get("limit"); limitStr != "" {
		if l, err := strconv.Atoi(limitStr); err == nil && l > 0 && l <= 200 {
			limit = l
		}
	}
	if offsetStr := r.URL.Query().Get("offset"); offsetStr != "" {
		if o, err := strconv.Atoi(offsetStr); err == nil && o >= 0 {
			offset = o
		}
	}

	members, err := h.Service.ListTenantUsers(*admin.TenantID, limit, offset)
	if err != nil {
		h.Logger.Error("ListTenantUsers: service error", "error", err, "tenant_id", *admin.TenantID)
		h.WriteError(w, http.StatusInternalServerError, "failed to list tenant users")
		return
	}

	h.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"users":  members,
		"limit":  limit,
		"offset": offset,
	})
}

type assignManagerRequest struct {
	ManagerProfileID *int64 `json:"manager_profile_id"`
}

// AssignManager points a tenant member at a manager profile, or clears the
// assignment when manager_profile_id is null.
func (h *Handler) AssignManager(w http.ResponseWriter, r *http.Request) {
	admin, ok := auth.UserFromContext(r.Context())
	if !ok || admin == nil {
		h.WriteError(w, http.StatusUnauthorized, "unauthorized")
		return
	}
	if admin.TenantID == nil {
		h.WriteError(w, http.StatusForbidden, "user does not belong to a tenant")
		return
	}

	idStr := chi.URLParam(r, "id")
	userID, err := strconv.ParseInt(idStr, 10, 64)
	if err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid user ID")
		return
	}

	var body assignManagerRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	member, err := h.Service.AssignManager(*admin.TenantID, userID, body.ManagerProfileID)
	if err != nil {
		h.Logger.Error("AssignManager: service error", "error", err, "tenant_id", *admin.TenantID, "user_id", userID)

		switch err {
		case ErrMemberNotFound:
			h.WriteError(w, http.StatusNotFound, "user not found in tenant")
		case ErrManagerNotFound:
			h.WriteError(w, http.StatusBadRequest, "manager profile not found in tenant")
		case ErrNotAManager:
			h.WriteError(w, http.StatusBadRequest, "target profile is not a manager")
		case ErrSelfManager:
			h.WriteError(w, http.StatusBadRequest, "user cannot be their own manager")
		default:
			h.WriteError(w, http.StatusInternalServerError, "failed to assign manager")
		}
		return
	}

	h.WriteJSON(w, http.StatusOK, member)
}
