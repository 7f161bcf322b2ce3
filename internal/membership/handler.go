// internal/membership/handler.go
package membership

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"libdesk/internal/web"
)

type Handler struct {
	service Service
}

func NewHandler(service Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) HandleRegister(w http.ResponseWriter, r *http.Request) {
	var reg Registration
	if err := web.Decode(r, &reg); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	member, err := h.service.Register(r.Context(), reg)
	if err != nil {
		web.Error(w, err)
		return
	}

	web.Respond(w, http.StatusCreated, member)
}

func (h *Handler) HandleGetMember(w http.ResponseWriter, r *http.Request) {
	membershipID := chi.URLParam(r, "membershipID")

	member, err := h.service.GetMember(r.Context(), membershipID)
	if err != nil {
		web.Error(w, err)
		return
	}

	web.Respond(w, http.StatusOK, member)
}
