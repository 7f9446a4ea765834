package worktype

import (
	"net/http"

	"github.com/frahmantamala/attendance-management/internal/transport"
)

type Handler struct {
	*transport.BaseHandler
}

func NewHandler(baseHandler *transport.BaseHandler) *Handler {
	return &Handler{BaseHandler: baseHandler}
}

type CatalogResponse struct {
	WorkTypes []WorkType `json:"work_types"`
}

func (h *Handler) GetWorkTypes(w http.ResponseWriter, r *http.Request) {
	h.WriteJSON(w, http.StatusOK, CatalogResponse{WorkTypes: Catalog()})
}
