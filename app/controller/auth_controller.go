package controller

import (
	"encoding/json"
	"net/http"

	"github.com/rs/zerolog/log"

	"lmt-crm/auth"
	"lmt-crm/models"
	"lmt-crm/repository"
)

// sessionStateKey is the persisted key for the last active session
// snapshot, used by the dashboard greeting after a restart.
const sessionStateKey = "lmt_user"

// AuthController handles login and session introspection.
type AuthController struct {
	auth  *auth.Service
	state repository.StateRepositoryInterface
}

// NewAuthController creates a new AuthController
func NewAuthController(authService *auth.Service, state repository.StateRepositoryInterface) *AuthController {
	return &AuthController{auth: authService, state: state}
}

type loginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type loginResponse struct {
	Token string       `json:"token"`
	User  *models.User `json:"user"`
}

type sessionSnapshot struct {
	Version int          `json:"version"`
	User    *models.User `json:"user"`
}

// Login handles POST /login
func (c *AuthController) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}
	if err := validate.Struct(req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	token, user, err := c.auth.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		http.Error(w, "invalid credentials", http.StatusUnauthorized)
		return
	}

	// Best-effort snapshot; login never fails on it.
	if snap, err := json.Marshal(sessionSnapshot{Version: 1, User: user}); err == nil {
		if err := c.state.SaveState(r.Context(), sessionStateKey, snap); err != nil {
			log.Warn().Err(err).Msg("failed to persist session snapshot")
		}
	}

	log.Info().Str("user", user.ID).Str("role", string(user.Role)).Msg("✓ login")
	writeJSON(w, http.StatusOK, loginResponse{Token: token, User: user})
}

// Me handles GET /me
// Returns the claims of the presented token.
func (c *AuthController) Me(w http.ResponseWriter, r *http.Request) {
	claims, ok := auth.ClaimsFromContext(r.Context())
	if !ok {
		http.Error(w, "no session", http.StatusUnauthorized)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"userId": claims.UserID,
		"name":   claims.Name,
		"role":   claims.Role,
	})
}
