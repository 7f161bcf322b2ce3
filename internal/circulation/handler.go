// internal/circulation/handler.go
package circulation

import (
	"net/http"
	"time"

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

func (h *Handler) HandleIssue(w http.ResponseWriter, r *http.Request) {
	var req struct {
		SerialNo     string `json:"serial_no"`
		MembershipID string `json:"membership_id"`
		IssueDate    string `json:"issue_date"`
	}
	if err := web.Decode(r, &req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	issueDate := time.Now()
	if req.IssueDate != "" {
		var err error
		issueDate, err = time.Parse(dateLayout, req.IssueDate)
		if err != nil {
			web.Error(w, fault.New(fault.Validation, "invalid date format"))
			return
		}
	}

	issue, err := h.service.IssueItem(r.Context(), req.SerialNo, req.MembershipID, issueDate)
	if err != nil {
		web.Error(w, err)
		return
	}

	web.Respond(w, http.StatusCreated, issue)
}

func (h *Handler) HandleReturn(w http.ResponseWriter, r *http.Request) {
	var req ReturnRequest
	if err := web.Decode(r, &req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	result, err := h.service.ProcessReturn(r.Context(), req)
	if err != nil {
		web.Error(w, err)
		return
	}

	web.Respond(w, http.StatusOK, result)
}

func (h *Handler) HandleOpenIssues(w http.ResponseWriter, r *http.Request) {
	membershipID := chi.URLParam(r, "membershipID")

	issues, err := h.service.OpenIssues(r.Context(), membershipID)
	if err != nil {
		web.Error(w, err)
		return
	}

	web.Respond(w, http.StatusOK, issues)
}
