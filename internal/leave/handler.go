package leave

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/frahmantamala/attendance-management/internal/auth"
	"github.com/frahmantamala/attendance-management/internal/transport"
	"github.com/frahmantamala/attendance-management/pkg/logger"
	"github.com/go-chi/chi"
)

type ServiceAPI interface {
	CreateRequest(user *auth.User, dto CreateRequestDTO) (*Request, error)
	GetUserRequests(userID int64, limit, offset int) ([]*Request, error)
	GetPendingForManager(managerProfileID int64, limit, offset int) ([]*Request, error)
	ApproveRequest(ctx context.Context, id, managerProfileID int64) (*Request, error)
	DenyRequest(ctx context.Context, id, managerProfileID int64) (*Request, error)
}

type Handler struct {
	*transport.BaseHandler
	Service ServiceAPI
}

func NewHandler(service ServiceAPI) *Handler {
	lg := logger.LoggerWrapper()
	if lg == nil {
		lg = slog.Default()
	}
	return &Handler{
		BaseHandler: transport.NewBaseHandler(lg),
		Service:     service,
	}
}

func (h *Handler) CreateRequest(w http.ResponseWriter, r *http.Request) {
	user, ok := auth.UserFromContext(r.Context())
	if !ok || user == nil {
		h.WriteError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	var dto CreateRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	request, err := h.Service.CreateRequest(user, dto)
	if err != nil {
		h.Logger.Error("CreateRequest: service error", "error", err, "user_id", user.ID)

		switch err {
		case ErrStartDateInPast:
			h.WriteError(w, http.StatusBadRequest, "leave start date cannot be in the past")
		case ErrEndBeforeStart:
			h.WriteError(w, http.StatusBadRequest, "leave end date cannot be before start date")
		default:
			h.HandleServiceError(w, err)
		}
		return
	}

	h.WriteJSON(w, http.StatusCreated, request)
}

func (h *Handler) GetRequests(w http.ResponseWriter, r *http.Request) {
	user, ok := auth.UserFromContext(r.Context())
	if !ok || user == nil {
		h.WriteError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	limit, offset := paginationParams(r)

	requests, err := h.Service.GetUserRequests(user.ID, limit, offset)
	if err != nil {
		h.Logger.Error("GetRequests: service error", "error", err, "user_id", user.ID)
		h.WriteError(w, http.StatusInternalServerError, "failed to get leave requests")
		return
	}

	h.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"requests": requests,
		"limit":    limit,
		"offset":   offset,
	})
}

// GetPendingRequests lists pending requests addressed to the acting manager.
func (h *Handler) GetPendingRequests(w http.ResponseWriter, r *http.Request) {
	user, ok := auth.UserFromContext(r.Context())
	if !ok || user == nil {
		h.WriteError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	limit, offset := paginationParams(r)

	requests, err := h.Service.GetPendingForManager(user.ProfileID, limit, offset)
	if err != nil {
		h.Logger.Error("GetPendingRequests: service error", "error", err, "manager_profile_id", user.ProfileID)
		h.WriteError(w, http.StatusInternalServerError, "failed to get pending leave requests")
		return
	}

	h.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"requests": requests,
		"limit":    limit,
		"offset":   offset,
	})
}

func (h *Handler) ApproveRequest(w http.ResponseWriter, r *http.Request) {
	h.decide(w, r, h.Service.ApproveRequest)
}

func (h *Handler) RejectRequest(w http.ResponseWriter, r *http.Request) {
	h.decide(w, r, h.Service.DenyRequest)
}

func (h *Handler) decide(w http.ResponseWriter, r *http.Request, op func(ctx context.Context, id, managerProfileID int64) (*Request, error)) {
	user, ok := auth.UserFromContext(r.Context())
	if !ok || user == nil {
		h.WriteError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	idStr := chi.URLParam(r, "id")
	id, err := strconv.ParseInt(idStr, 10, 64)
	if err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid leave request ID")
		return
	}

	request, err := op(r.Context(), id, user.ProfileID)
	if err != nil {
		h.Logger.Error("decide: service error", "error", err, "leave_request_id", id, "manager_profile_id", user.ProfileID)

		switch err {
		case ErrLeaveNotFound:
			h.WriteError(w, http.StatusNotFound, "leave request not found")
		case ErrAlreadyDecided:
			h.WriteError(w, http.StatusConflict, "leave request has already been decided")
		default:
			h.WriteError(w, http.StatusInternalServerError, "failed to update leave request")
		}
		return
	}

	h.WriteJSON(w, http.StatusOK, request)
}

func paginationParams(r *http.Request) (limit, offset int) {
	limit = 31
	offset = 0

	if limitStr := r.URL.Query().Get("limit"); limitStr != "" {
		if l, err := strconv.Atoi(limitStr); err == nil && l > 0 && l <= 100 {
			limit = l
		}
	}
	if offsetStr := r.URL.Query().Get("offset"); offsetStr != "" {
		if o, err := strconv.Atoi(offsetStr); err == nil && o >= 0 {
			offset = o
		}
	}
	return limit, offset
}
