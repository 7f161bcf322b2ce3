// internal/auth/handler.go
package auth

import (
	"net/http"

	"libdesk/internal/web"
)

type Handler struct {
	service  Service
	sessions *SessionManager
}

func NewHandler(service Service, sessions *SessionManager) *Handler {
	return &Handler{service: service, sessions: sessions}
}

func (h *Handler) HandleLogin(w http.ResponseWriter, r *http.Request) {
	var req struct {
		UserID   string `json:"user_id"`
		Password string `json:"password"`
	}
	if err := web.Decode(r, &req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	user, err := h.service.Authenticate(r.Context(), req.UserID, req.Password)
	if err != nil {
		web.Respond(w, http.StatusUnauthorized, map[string]string{"error": "invalid credentials or user inactive"})
		return
	}

	token, err := h.sessions.Issue(user)
	if err != nil {
		web.Error(w, err)
		return
	}

	h.sessions.SetCookie(w, token)
	web.Respond(w, http.StatusOK, map[string]interface{}{
		"user_id":  user.UserID,
		"name":     user.Name,
		"is_admin": user.IsAdmin,
		"token":    token,
	})
}

func (h *Handler) HandleLogout(w http.ResponseWriter, r *http.Request) {
	h.sessions.ClearCookie(w)
	web.Respond(w, http.StatusOK, map[string]string{"message": "you have successfully logged out"})
}

func (h *Handler) HandleCreateUser(w http.ResponseWriter, r *http.Request) {
	var req struct {
		UserID   string `json:"user_id"`
		Name     string `json:"name"`
		Password string `json:"password"`
		IsAdmin  bool   `json:"is_admin"`
		IsActive bool   `json:"is_active"`
	}
	if err := web.Decode(r, &req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	user, err := h.service.CreateUser(r.Context(), req.UserID, req.Name, req.Password, req.IsAdmin, req.IsActive)
	if err != nil {
		web.Error(w, err)
		return
	}

	web.Respond(w, http.StatusCreated, user)
}
