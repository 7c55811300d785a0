package handler

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/townboard/townboard/internal/auth"
	"github.com/townboard/townboard/internal/handler/dto"
	"github.com/townboard/townboard/internal/metrics"
	"github.com/townboard/townboard/internal/middleware"
	"github.com/townboard/townboard/internal/service"
)

// SessionStore issues and revokes session tokens.
type SessionStore interface {
	CreateSession(ctx context.Context, token, userID string, ttl time.Duration) error
	DestroySession(ctx context.Context, token string) error
}

// AuthHandler handles registration, login, logout and session status.
type AuthHandler struct {
	users        *service.UserService
	sessions     SessionStore
	logger       *slog.Logger
	metrics      metrics.Recorder
	sessionTTL   time.Duration
	cookieSecure bool
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(users *service.UserService, sessions SessionStore, logger *slog.Logger, recorder metrics.Recorder, sessionTTL time.Duration, cookieSecure bool) *AuthHandler {
	if recorder == nil {
		recorder = metrics.NewNoop()
	}
	return &AuthHandler{
		users:        users,
		sessions:     sessions,
		logger:       logger,
		metrics:      recorder,
		sessionTTL:   sessionTTL,
		cookieSecure: cookieSecure,
	}
}

// Register handles POST /api/auth/register.
// A successful registration logs the new account in immediately.
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req dto.RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := middleware.ValidateEmail(req.Email); err != nil {
		writeError(w, http.StatusBadRequest, "email: "+err.Error())
		return
	}
	if err := middleware.ValidateLength(req.Name, middleware.MaxNameLength); err != nil {
		writeError(w, http.StatusBadRequest, "name: "+err.Error())
		return
	}
	if err := middleware.ValidateLength(req.Password, middleware.MaxPasswordLength); err != nil {
		writeError(w, http.StatusBadRequest, "password: "+err.Error())
		return
	}

	user, err := h.users.Register(r.Context(), req.Name, req.Email, req.Password)
	if err != nil {
		writeServiceError(w, h.logger, err)
		return
	}

	h.logger.Info("user_registered", "user_id", user.ID)

	if err := h.startSession(w, r, user.ID); err != nil {
		// The account exists; the client can still log in explicitly.
		h.logger.Error("session create failed after register",
			"error", err, "user_id", user.ID)
	}

	writeJSON(w, http.StatusCreated, dto.AuthResponse{
		Success: true,
		User:    dto.ToUserResponse(user),
	})
}

// Login handles POST /api/auth/login.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req dto.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	user, err := h.users.Authenticate(r.Context(), req.Email, req.Password)
	if err != nil {
		writeServiceError(w, h.logger, err)
		return
	}

	if err := h.startSession(w, r, user.ID); err != nil {
		h.logger.Error("session create failed", "error", err, "user_id", user.ID)
		writeError(w, http.StatusInternalServerError, "could not create session")
		return
	}

	h.logger.Info("user_logged_in", "user_id", user.ID)

	writeJSON(w, http.StatusOK, dto.AuthResponse{
		Success: true,
		User:    dto.ToUserResponse(user),
	})
}

// Logout handles POST /api/auth/logout.
// Logging out without a session is still a success.
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	if cookie, err := r.Cookie(middleware.SessionCookieName); err == nil && auth.ValidTokenFormat(cookie.Value) {
		if err := h.sessions.DestroySession(r.Context(), cookie.Value); err != nil {
			h.logger.Error("session destroy failed", "error", err)
		}
	}

	h.clearSessionCookie(w)

	writeJSON(w, http.StatusOK, map[string]bool{"success": true})
}

// Status handles GET /api/auth/status.
func (h *AuthHandler) Status(w http.ResponseWriter, r *http.Request) {
	actor := auth.ActorFromContext(r.Context())
	if actor == nil {
		writeJSON(w, http.StatusOK, dto.AuthStatusResponse{IsLoggedIn: false})
		return
	}

	writeJSON(w, http.StatusOK, dto.AuthStatusResponse{
		IsLoggedIn: true,
		User:       dto.ToUserResponse(actor),
	})
}

// startSession issues a fresh token, stores it and sets the cookie.
func (h *AuthHandler) startSession(w http.ResponseWriter, r *http.Request, userID string) error {
	token, err := auth.GenerateSessionToken()
	if err != nil {
		return err
	}

	if err := h.sessions.CreateSession(r.Context(), token, userID, h.sessionTTL); err != nil {
		return err
	}

	h.metrics.IncSessionCreated()

	http.SetCookie(w, &http.Cookie{
		Name:     middleware.SessionCookieName,
		Value:    token,
		Path:     "/",
		MaxAge:   int(h.sessionTTL.Seconds()),
		HttpOnly: true,
		Secure:   h.cookieSecure,
		SameSite: http.SameSiteLaxMode,
	})
	return nil
}

func (h *AuthHandler) clearSessionCookie(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     middleware.SessionCookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   h.cookieSecure,
		SameSite: http.SameSiteLaxMode,
	})
}
