// internal/catalog/handler.go
package catalog

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"libdesk/internal/fault"
	"libdesk/internal/web"
)

type Handler struct {
	service Service
}

func NewHandler(service Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) HandleAddItem(w http.ResponseWriter, r *http.Request) {
	var in NewItem
	if err := web.Decode(r, &in); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	item, err := h.service.AddItem(r.Context(), in)
	if err != nil {
		web.Error(w, err)
		return
	}

	web.Respond(w, http.StatusCreated, item)
}

func (h *Handler) HandleGetItem(w http.ResponseWriter, r *http.Request) {
	serialNo := chi.URLParam(r, "serialNo")

	item, err := h.service.GetItem(r.Context(), serialNo)
	if err != nil {
		web.Error(w, err)
		return
	}

	web.Respond(w, http.StatusOK, item)
}

func (h *Handler) HandleAvailability(w http.ResponseWriter, r *http.Request) {
	av, err := h.service.Availability(r.Context())
	if err != nil {
		web.Error(w, err)
		return
	}

	web.Respond(w, http.StatusOK, av)
}

// HandleSearch is the availability search stub: it validates and echoes the
// query back without searching.
func (h *Handler) HandleSearch(w http.ResponseWriter, r *http.Request) {
	name := strings.TrimSpace(r.URL.Query().Get("name"))
	author := strings.TrimSpace(r.URL.Query().Get("author"))

	if name == "" && author == "" {
		web.Error(w, fault.New(fault.Validation, "enter at least book name or author name"))
		return
	}

	web.Respond(w, http.StatusOK, map[string]string{
		"name":   name,
		"author": author,
		"status": "search is not implemented yet",
	})
}
