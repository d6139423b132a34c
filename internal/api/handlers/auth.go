package handlers

import (
	"net/http"

	"storefront-gateway-service/internal/api/dto"
	"storefront-gateway-service/internal/ports"
)

// AuthHandler passes credential exchanges through to the upstream
// marketplace. The gateway never stores credentials or sessions.
type AuthHandler struct {
	Auth ports.Authenticator
}

func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req dto.LoginRequest
	if !readJSON(w, r, &req) {
		return
	}
	if req.Phone == "" || req.Password == "" {
		writeError(w, r, http.StatusBadRequest, "phone and password are required")
		return
	}

	session, err := h.Auth.Login(r.Context(), req.Phone, req.Password)
	if err != nil {
		writeUpstreamError(w, r, err)
		return
	}

	writeJSON(w, r, http.StatusOK, toSessionResponse(session))
}

func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req dto.RegisterRequest
	if !readJSON(w, r, &req) {
		return
	}
	if req.Phone == "" || req.Password == "" {
		writeError(w, r, http.StatusBadRequest, "phone and password are required")
		return
	}

	session, err := h.Auth.Register(r.Context(), req.Phone, req.Password, req.DisplayName)
	if err != nil {
		writeUpstreamError(w, r, err)
		return
	}

	writeJSON(w, r, http.StatusCreated, toSessionResponse(session))
}

func (h *AuthHandler) Refresh(w http.ResponseWriter, r *http.Request) {
	var req dto.RefreshRequest
	if !readJSON(w, r, &req) {
		return
	}
	if req.RefreshToken == "" {
		writeError(w, r, http.StatusBadRequest, "refresh_token is required")
		return
	}

	session, err := h.Auth.Refresh(r.Context(), req.RefreshToken)
	if err != nil {
		writeUpstreamError(w, r, err)
		return
	}

	writeJSON(w, r, http.StatusOK, toSessionResponse(session))
}

func toSessionResponse(s ports.Session) dto.SessionResponse {
	return dto.SessionResponse{
		AccessToken:  s.AccessToken,
		RefreshToken: s.RefreshToken,
		ExpiresAt:    s.ExpiresAt,
		UserID:       s.UserID,
		DisplayName:  s.DisplayName,
	}
}
