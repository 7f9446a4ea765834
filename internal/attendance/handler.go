package attendance

import (
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
	CreateRecord(userID int64, dto CreateRecordDTO) (*Record, error)
	GetUserRecords(userID int64, limit, offset int) ([]*Record, error)
	DeleteRecord(id, userID int64) error
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

func (h *Handler) CreateRecord(w http.ResponseWriter, r *http.Request) {
	user, ok := auth.UserFromContext(r.Context())
	if !ok || user == nil {
		h.WriteError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	var dto CreateRecordDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	record, err := h.Service.CreateRecord(user.ID, dto)
	if err != nil {
		h.Logger.Error("CreateRecord: service error", "error", err, "user_id", user.ID)

		switch err {
		case ErrDuplicateRecord:
			h.WriteError(w, http.StatusConflict, "an attendance record already exists for this date")
		case ErrDateInFuture:
			h.WriteError(w, http.StatusBadRequest, "attendance date cannot be in the future")
		default:
			h.HandleServiceError(w, err)
		}
		return
	}

	h.WriteJSON(w, http.StatusCreated, record)
}

func (h *Handler) GetRecords(w http.ResponseWriter, r *http.Request) {
	user, ok := auth.UserFromContext(r.Context())
	if !ok || user == nil {
		h.WriteError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	limit := 31
	offset := 0

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

	records, err := h.Service.GetUserRecords(user.ID, limit, offset)
	if err != nil {
		h.Logger.Error("GetRecords: service error", "error", err, "user_id", user.ID)
		h.WriteError(w, http.StatusInternalServerError, "failed to get attendance records")
		return
	}

	h.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"records": records,
		"limit":   limit,
		"offset":  offset,
	})
}

func (h *Handler) DeleteRecord(w http.ResponseWriter, r *http.Request) {
	user, ok := auth.UserFromContext(r.Context())
	if !ok || user == nil {
		h.WriteError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	idStr := chi.URLParam(r, "id")
	id, err := strconv.ParseInt(idStr, 10, 64)
	if err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid record ID")
		return
	}

	if err := h.Service.DeleteRecord(id, user.ID); err != nil {
		h.Logger.Error("DeleteRecord: service error", "error", err, "record_id", id, "user_id", user.ID)

		switch err {
		case ErrRecordNotFound:
			h.WriteError(w, http.StatusNotFound, "attendance record not found")
		default:
			h.WriteError(w, http.StatusInternalServerError, "failed to delete attendance record")
		}
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
