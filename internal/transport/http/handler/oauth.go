package handler

import (
	"encoding/json"
	"net/http"

	"github.com/alienbase/auth-api/internal/application/oauth"
	"github.com/alienbase/auth-api/internal/pkg/validate"
)

// OAuthHandler handles social login endpoints.
type OAuthHandler struct {
	svc oauth.Service
}

func NewOAuthHandler(svc oauth.Service) *OAuthHandler {
	return &OAuthHandler{svc: svc}
}

func (h *OAuthHandler) GoogleLogin(w http.ResponseWriter, r *http.Request) {
	var req oauth.GoogleLoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := validate.Struct(&req); err != nil {
		writeError(w, http.StatusUnprocessableEntity, err.Error())
		return
	}
	result, err := h.svc.GoogleLogin(r.Context(), req)
	if err != nil {
		httpError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, AuthEnvelope{Bearer: result.Bearer, User: result.User, IsNewAccount: result.IsNewAccount})
}

func (h *OAuthHandler) GitHubCallback(w http.ResponseWriter, r *http.Request) {
	var req oauth.GitHubCallbackRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := validate.Struct(&req); err != nil {
		writeError(w, http.StatusUnprocessableEntity, err.Error())
		return
	}
	result, err := h.svc.GitHubCallback(r.Context(), req)
	if err != nil {
		httpError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, AuthEnvelope{Bearer: result.Bearer, User: result.User, IsNewAccount: result.IsNewAccount})
}
