package api

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/tutorium/tutor-api/internal/api/shared"
	"github.com/tutorium/tutor-api/internal/domain"
	"github.com/tutorium/tutor-api/internal/service/auth"
	"github.com/tutorium/tutor-api/internal/store"
)

// AuthHandler exposes user registration and login over HTTP.
type AuthHandler struct {
	userStore  store.UserStore
	jwtService auth.JWTService
	hasher     auth.PasswordHasher
	logger     *slog.Logger
}

// NewAuthHandler creates a new AuthHandler with the given dependencies.
func NewAuthHandler(
	userStore store.UserStore,
	jwtService auth.JWTService,
	hasher auth.PasswordHasher,
	logger *slog.Logger,
) *AuthHandler {
	if userStore == nil {
		panic("userStore cannot be nil")
	}
	if jwtService == nil {
		panic("jwtService cannot be nil")
	}
	if hasher == nil {
		panic("hasher cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &AuthHandler{
		userStore:  userStore,
		jwtService: jwtService,
		hasher:     hasher,
		logger:     logger.With(slog.String("component", "auth_handler")),
	}
}

// Register handles POST /api/auth/register.
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req RegisterRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}
	if err := shared.ValidateRequest(&req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request: "+err.Error())
		return
	}

	user, err := domain.NewUser(req.Email, req.Password)
	if err != nil {
		RespondWithMappedError(w, r, err)
		return
	}

	hash, err := h.hasher.Hash(req.Password)
	if err != nil {
		RespondWithMappedError(w, r, err)
		return
	}
	user.HashedPassword = hash
	user.Password = ""

	if err := h.userStore.Create(r.Context(), user); err != nil {
		RespondWithMappedError(w, r, err)
		return
	}

	token, err := h.jwtService.GenerateToken(r.Context(), user)
	if err != nil {
		RespondWithMappedError(w, r, err)
		return
	}

	h.logger.Info("user registered", slog.String("user_id", user.ID.String()))
	shared.RespondWithJSON(w, r, http.StatusCreated, AuthResponse{
		Token:  token,
		UserID: user.ID,
		Role:   user.Role,
	})
}

// Login handles POST /api/auth/login.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}
	if err := shared.ValidateRequest(&req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request: "+err.Error())
		return
	}

	user, err := h.userStore.GetByEmail(r.Context(), req.Email)
	if err != nil {
		// Unknown email and wrong password produce the same response so
		// account existence cannot be probed.
		if errors.Is(err, store.ErrUserNotFound) {
			RespondWithMappedError(w, r, auth.ErrInvalidCredentials)
			return
		}
		RespondWithMappedError(w, r, err)
		return
	}

	if err := h.hasher.Compare(user.HashedPassword, req.Password); err != nil {
		RespondWithMappedError(w, r, auth.ErrInvalidCredentials)
		return
	}

	token, err := h.jwtService.GenerateToken(r.Context(), user)
	if err != nil {
		RespondWithMappedError(w, r, err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, AuthResponse{
		Token:  token,
		UserID: user.ID,
		Role:   user.Role,
	})
}
