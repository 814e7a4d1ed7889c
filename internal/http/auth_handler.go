package api

import (
	"encoding/json"
	"net/http"

	"user-management/internal/platform/apperr"
)

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type sanitizedUser struct {
	ID           int64   `json:"id"`
	FirstName    string  `json:"first_name"`
	LastName     string  `json:"last_name"`
	Email        string  `json:"email"`
	ProfileImage *string `json:"profile_image"`
}

// @Summary     Log in
// @Tags        auth
// @Accept      json
// @Produce     json
// @Param       request  body      loginRequest  true  "Credentials"
// @Success     200      {object}  map[string]any
// @Failure     400      {object}  map[string]string  "missing fields"
// @Failure     401      {object}  map[string]string  "bad credentials"
// @Failure     403      {object}  map[string]string  "inactive account"
// @Router      /login [post]
func (h *Handler) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		errorResponse(w, apperr.BadRequest("invalid_input", "invalid body", err))
		return
	}

	u, err := h.userSvc.Authenticate(r.Context(), req.Email, req.Password)
	if err != nil {
		errorResponse(w, err)
		return
	}

	token, err := h.jwtMgr.Generate(u.ID, u.Email, h.tokenTTL)
	if err != nil {
		errorResponse(w, apperr.Internal("token_error", "could not create session token", err))
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"user": sanitizedUser{
			ID:           u.ID,
			FirstName:    u.FirstName,
			LastName:     u.LastName,
			Email:        u.Email,
			ProfileImage: u.ProfileImage,
		},
		"token": token,
	})
}

// @Summary     Current session user
// @Tags        auth
// @Security    BearerAuth
// @Produce     json
// @Success     200  {object}  sanitizedUser
// @Failure     401  {object}  map[string]string  "missing or invalid token"
// @Router      /me [get]
func (h *Handler) handleMe(w http.ResponseWriter, r *http.Request) {
	id := userIDFromCtx(r)
	u, err := h.userSvc.GetByID(r.Context(), id)
	if err != nil {
		errorResponse(w, err)
		return
	}
	writeJSON(w, http.StatusOK, sanitizedUser{
		ID:           u.ID,
		FirstName:    u.FirstName,
		LastName:     u.LastName,
		Email:        u.Email,
		ProfileImage: u.ProfileImage,
	})
}
