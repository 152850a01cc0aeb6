package api

import (
	"encoding/json"
	"net/http"

	"socialhub/internal/domain"
	"socialhub/pkg/logger"
)

type UserHandler struct {
	users  domain.UserService
	auth   domain.AuthService
	resets domain.PasswordResetService
	logger logger.Logger
}

func NewUserHandler(users domain.UserService, auth domain.AuthService, resets domain.PasswordResetService, logger logger.Logger) *UserHandler {
	return &UserHandler{
		users:  users,
		auth:   auth,
		resets: resets,
		logger: logger,
	}
}

type registerRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (h *UserHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req registerRequest

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.Error("failed to decode request body", map[string]interface{}{"error": err.Error()})
		respondMessage(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if _, err := h.users.Register(req.Username, req.Email, req.Password); err != nil {
		respondError(w, err)
		return
	}

	respondMessage(w, http.StatusCreated, "User registered successfully")
}

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type loginResponse struct {
	Message string `json:"message"`
	Token   string `json:"token"`
}

func (h *UserHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.Error("failed to decode request body", map[string]interface{}{"error": err.Error()})
		respondMessage(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if req.Username == "" || req.Password == "" {
		respondError(w, domain.ErrMissingFields)
		return
	}

	token, err := h.auth.Login(req.Username, req.Password)
	if err != nil {
		respondError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, loginResponse{
		Message: "Login successful",
		Token:   token,
	})
}

type forgotPasswordRequest struct {
	Email string `json:"email"`
}

func (h *UserHandler) ForgotPassword(w http.ResponseWriter, r *http.Request) {
	var req forgotPasswordRequest

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.Error("failed to decode request body", map[string]interface{}{"error": err.Error()})
		respondMessage(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if req.Email == "" {
		respondMessage(w, http.StatusBadRequest, "missing required field: email")
		return
	}

	if err := h.resets.RequestReset(req.Email); err != nil {
		respondError(w, err)
		return
	}

	respondMessage(w, http.StatusOK, "Password reset instructions sent to your email.")
}

type resetPasswordRequest struct {
	NewPassword string `json:"new_password"`
}

func (h *UserHandler) ResetPassword(w http.ResponseWriter, r *http.Request) {
	token := r.PathValue("resetToken")

	var req resetPasswordRequest

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.Error("failed to decode request body", map[string]interface{}{"error": err.Error()})
		respondMessage(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := h.resets.ConsumeReset(token, req.NewPassword); err != nil {
		respondError(w, err)
		return
	}

	respondMessage(w, http.StatusOK, "Password reset successfully")
}

func (h *UserHandler) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("POST /register", h.Register)
	mux.HandleFunc("POST /login", h.Login)
	mux.HandleFunc("POST /forgot-password", h.ForgotPassword)
	mux.HandleFunc("POST /reset-password/{resetToken}", h.ResetPassword)
}
