package api

import (
	"encoding/json"
	"net/http"

	"user-management/internal/domain/user"
	"user-management/internal/platform/apperr"
	"user-management/internal/worker"
)

type createUserRequest struct {
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Contact   string `json:"contact"`
	Email     string `json:"email"`
	Address   string `json:"address"`
	Password  string `json:"password"`
}

// updateUserRequest accepts name, contact and address only; email and
// password fields in the payload are ignored.
type updateUserRequest struct {
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Contact   string `json:"contact"`
	Address   string `json:"address"`
}

type profileImageRequest struct {
	ProfileImage string `json:"profile_image"`
}

// @Summary     Create user
// @Tags        users
// @Accept      json
// @Produce     json
// @Param       request  body      createUserRequest  true  "New user"
// @Success     201      {object}  map[string]string
// @Failure     400      {object}  map[string]string  "validation failure"
// @Failure     409      {object}  map[string]string  "email already exists"
// @Router      /users [post]
func (h *Handler) handleCreateUser(w http.ResponseWriter, r *http.Request) {
	var req createUserRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		errorResponse(w, apperr.BadRequest("invalid_input", "invalid body", err))
		return
	}

	u, err := h.userSvc.Create(r.Context(), user.CreateInput{
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Contact:   req.Contact,
		Email:     req.Email,
		Address:   req.Address,
		Password:  req.Password,
	})
	if err != nil {
		errorResponse(w, err)
		return
	}

	h.audit(worker.Event{Action: "user.created", UserID: u.ID, Email: u.Email})
	writeJSON(w, http.StatusCreated, map[string]string{"message": "User Added"})
}

// @Summary     List users
// @Tags        users
// @Produce     json
// @Success     200  {array}  user.User
// @Router      /users [get]
func (h *Handler) handleListUsers(w http.ResponseWriter, r *http.Request) {
	users, err := h.userSvc.List(r.Context())
	if err != nil {
		errorResponse(w, err)
		return
	}
	if users == nil {
		users = []user.User{}
	}
	writeJSON(w, http.StatusOK, users)
}

// @Summary     Update user details
// @Tags        users
// @Accept      json
// @Produce     json
// @Param       id       path      int64              true  "User ID"
// @Param       request  body      updateUserRequest  true  "New details"
// @Success     200      {object}  map[string]string
// @Failure     400      {object}  map[string]string  "validation failure"
// @Router      /users/{id} [put]
func (h *Handler) handleUpdateUser(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r, "id")
	if err != nil {
		errorResponse(w, apperr.BadRequest("invalid_input", "invalid id", err))
		return
	}

	var req updateUserRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		errorResponse(w, apperr.BadRequest("invalid_input", "invalid body", err))
		return
	}

	err = h.userSvc.Update(r.Context(), id, user.UpdateInput{
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Contact:   req.Contact,
		Address:   req.Address,
	})
	if err != nil {
		errorResponse(w, err)
		return
	}

	h.audit(worker.Event{Action: "user.updated", UserID: id})
	writeJSON(w, http.StatusOK, map[string]string{"message": "User Updated"})
}

// @Summary     Soft-delete user
// @Tags        users
// @Produce     json
// @Param       id   path      int64  true  "User ID"
// @Success     200  {object}  map[string]string
// @Router      /users/{id} [delete]
func (h *Handler) handleSoftDeleteUser(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r, "id")
	if err != nil {
		errorResponse(w, apperr.BadRequest("invalid_input", "invalid id", err))
		return
	}

	if err := h.userSvc.SoftDelete(r.Context(), id); err != nil {
		errorResponse(w, err)
		return
	}

	h.audit(worker.Event{Action: "user.deleted", UserID: id})
	writeJSON(w, http.StatusOK, map[string]string{"message": "User Soft Deleted"})
}

// @Summary     Toggle active status
// @Tags        users
// @Produce     json
// @Param       id   path      int64  true  "User ID"
// @Success     200  {object}  map[string]string
// @Router      /users/status/{id} [patch]
func (h *Handler) handleToggleStatus(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r, "id")
	if err != nil {
		errorResponse(w, apperr.BadRequest("invalid_input", "invalid id", err))
		return
	}

	if err := h.userSvc.ToggleStatus(r.Context(), id); err != nil {
		errorResponse(w, err)
		return
	}

	h.audit(worker.Event{Action: "user.status_toggled", UserID: id})
	writeJSON(w, http.StatusOK, map[string]string{"message": "Status Updated"})
}

// @Summary     Update profile image
// @Tags        users
// @Accept      json
// @Produce     json
// @Param       id       path      int64                true  "User ID"
// @Param       request  body      profileImageRequest  true  "Base64 data URI"
// @Success     200      {object}  map[string]string
// @Failure     400      {object}  map[string]string  "not an image or too large"
// @Router      /users/{id}/profile-image [patch]
func (h *Handler) handleProfileImage(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r, "id")
	if err != nil {
		errorResponse(w, apperr.BadRequest("invalid_input", "invalid id", err))
		return
	}

	var req profileImageRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		errorResponse(w, apperr.BadRequest("invalid_input", "invalid body", err))
		return
	}

	if err := h.userSvc.SetProfileImage(r.Context(), id, req.ProfileImage); err != nil {
		errorResponse(w, err)
		return
	}

	h.audit(worker.Event{Action: "user.image_updated", UserID: id})
	writeJSON(w, http.StatusOK, map[string]string{
		"message":       "Profile image updated",
		"profile_image": req.ProfileImage,
	})
}
