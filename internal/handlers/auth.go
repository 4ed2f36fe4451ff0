package handlers

import (
	"net/http"

	"github.com/c21matthewm/mound-hounds-pickem/internal/auth"
)

// handleLogin validates the commissioner password and issues a session
// cookie
func (h *Handlers) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, err)
		return
	}

	token, ok := h.Auth.Login(req.Password)
	if !ok {
		respondError(w, Unauthorized("Invalid password"))
		return
	}

	auth.SetSessionCookie(w, token)
	respondSuccess(w, "Logged in")
}

func (h *Handlers) handleLogout(w http.ResponseWriter, r *http.Request) {
	if cookie, err := r.Cookie(auth.CookieName); err == nil {
		h.Auth.Logout(cookie.Value)
	}
	auth.ClearSessionCookie(w)
	respondSuccess(w, "Logged out")
}
