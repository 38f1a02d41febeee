package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/pickuphub/server/internal/api/apierror"
	"github.com/pickuphub/server/internal/auth"
	"github.com/pickuphub/server/internal/domain/users"
)

type AuthHandler struct {
	Users  *users.Service
	Tokens *auth.JWTManager
}

func NewAuthHandler(usersService *users.Service, tokens *auth.JWTManager) *AuthHandler {
	return &AuthHandler{Users: usersService, Tokens: tokens}
}

type registerRequest struct {
	Email    string  `json:"email" validate:"required,email"`
	Password string  `json:"password" validate:"required"`
	Name     string  `json:"name" validate:"required"`
	Surname  string  `json:"surname" validate:"required"`
	Phone    *string `json:"phone"`
}

type loginRequest struct {
	Email    string `json:"email" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type userPayload struct {
	ID      int64   `json:"id"`
	Email   string  `json:"email"`
	Name    string  `json:"name"`
	Surname string  `json:"surname"`
	Phone   *string `json:"phone,omitempty"`
}

type authResponse struct {
	User  userPayload `json:"user"`
	Token string      `json:"token"`
}

func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		apierror.Write(w, r, http.StatusBadRequest, "invalid request body", err)
		return
	}
	if err := validate.Struct(req); err != nil {
		apierror.Write(w, r, http.StatusBadRequest, "invalid request body", err)
		return
	}

	user, err := h.Users.Register(r.Context(), users.RegisterParams{
		Email:    req.Email,
		Password: req.Password,
		Name:     req.Name,
		Surname:  req.Surname,
		Phone:    req.Phone,
	})
	if err != nil {
		if errors.Is(err, users.ErrEmailTaken) {
			apierror.Write(w, r, http.StatusBadRequest, "email already registered", err)
			return
		}
		apierror.Write(w, r, http.StatusBadRequest, "could not register user", err)
		return
	}

	token, err := h.Tokens.Generate(user.ID)
	if err != nil {
		apierror.Write(w, r, http.StatusInternalServerError, "could not issue token", err)
		return
	}

	writeJSON(w, http.StatusOK, authResponse{User: publicUser(user), Token: token})
}

func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		apierror.Write(w, r, http.StatusBadRequest, "invalid request body", err)
		return
	}
	if err := validate.Struct(req); err != nil {
		apierror.Write(w, r, http.StatusBadRequest, "invalid request body", err)
		return
	}

	user, err := h.Users.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		// Unknown email and wrong password share one message so callers
		// cannot enumerate accounts.
		if errors.Is(err, users.ErrInvalidCredentials) {
			apierror.Write(w, r, http.StatusUnauthorized, "invalid email or password", err)
			return
		}
		apierror.Write(w, r, http.StatusInternalServerError, "could not log in", err)
		return
	}

	token, err := h.Tokens.Generate(user.ID)
	if err != nil {
		apierror.Write(w, r, http.StatusInternalServerError, "could not issue token", err)
		return
	}

	writeJSON(w, http.StatusOK, authResponse{User: publicUser(user), Token: token})
}

func publicUser(user users.User) userPayload {
	return userPayload{
		ID:      user.ID,
		Email:   user.Email,
		Name:    user.Name,
		Surname: user.Surname,
		Phone:   user.Phone,
	}
}
