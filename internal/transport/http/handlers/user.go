package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/mercata/storefront/services/user-service/internal/application/auth"
	"github.com/mercata/storefront/services/user-service/internal/domain"
	"github.com/mercata/storefront/services/user-service/internal/infrastructure/security"
	"github.com/mercata/storefront/services/user-service/internal/logger"
	"github.com/mercata/storefront/services/user-service/internal/transport/http/dto"
	"github.com/mercata/storefront/services/user-service/internal/transport/http/middleware"
	"github.com/mercata/storefront/services/user-service/internal/transport/http/response"
)

type UserHandler struct {
	svc          *auth.Service
	secureCookie bool
}

func NewUserHandler(svc *auth.Service, secureCookie bool) *UserHandler {
	return &UserHandler{svc: svc, secureCookie: secureCookie}
}

// Register handles POST /api/users.
func (h *UserHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req dto.RegisterRequest
	if err := response.DecodeJSON(r, &req); err != nil {
		response.Error(w, r, err)
		return
	}
	if err := req.Validate(); err != nil {
		response.Error(w, r, err)
		return
	}

	u, err := h.svc.Register(r.Context(), req.Username, req.Email, req.Password)
	if err != nil {
		response.Error(w, r, err)
		return
	}

	log := logger.WithCtx(r.Context())
	log.Info().Str("user_id", u.ID).Msg("user registered")
	response.Message(w, http.StatusCreated, "registered successfully")
}

// Login handles POST /api/auth. On success it sets the session cookie and
// returns the public account view.
func (h *UserHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req dto.LoginRequest
	if err := response.DecodeJSON(r, &req); err != nil {
		response.Error(w, r, err)
		return
	}
	if err := req.Validate(); err != nil {
		response.Error(w, r, err)
		return
	}

	res, err := h.svc.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		response.Error(w, r, err)
		return
	}

	security.SetSessionToken(w, res.Token, h.svc.SessionTTL(), h.secureCookie)
	response.JSON(w, http.StatusCreated, dto.NewUserView(res.User))
}

// Logout handles POST /api/logout. Stateless sessions mean logout is just
// clearing the cookie; it succeeds with or without one.
func (h *UserHandler) Logout(w http.ResponseWriter, r *http.Request) {
	security.ClearSessionToken(w, h.secureCookie)
	response.Message(w, http.StatusOK, "logged out successfully")
}

// Profile handles GET /api/users/profile.
func (h *UserHandler) Profile(w http.ResponseWriter, r *http.Request) {
	id, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		response.Error(w, r, domain.ErrSessionMissing())
		return
	}

	u, err := h.svc.GetUserByID(r.Context(), id)
	if err != nil {
		response.Error(w, r, err)
		return
	}
	response.JSON(w, http.StatusOK, dto.NewUserView(u))
}

// UpdateProfile handles PUT /api/users/profile.
func (h *UserHandler) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	id, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		response.Error(w, r, domain.ErrSessionMissing())
		return
	}

	var req dto.UpdateProfileRequest
	if err := response.DecodeJSON(r, &req); err != nil {
		response.Error(w, r, err)
		return
	}
	if err := req.Validate(); err != nil {
		response.Error(w, r, err)
		return
	}

	u, err := h.svc.UpdateProfile(r.Context(), id, auth.UpdateProfileInput{
		Username:    req.Username,
		Email:       req.Email,
		OldPassword: req.OldPassword,
		NewPassword: req.NewPassword,
	})
	if err != nil {
		response.Error(w, r, err)
		return
	}
	response.JSON(w, http.StatusOK, dto.NewUserView(u))
}

// ListUsers handles GET /api/users (admin).
func (h *UserHandler) ListUsers(w http.ResponseWriter, r *http.Request) {
	users, err := h.svc.ListUsers(r.Context())
	if err != nil {
		response.Error(w, r, err)
		return
	}
	response.JSON(w, http.StatusOK, dto.NewUserViews(users))
}

// GetUser handles GET /api/users/{id} (admin).
func (h *UserHandler) GetUser(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	u, err := h.svc.GetUserByID(r.Context(), id)
	if err != nil {
		response.Error(w, r, err)
		return
	}
	response.JSON(w, http.StatusOK, dto.NewUserView(u))
}

// UpdateUser handles PUT /api/users/{id} (admin).
func (h *UserHandler) UpdateUser(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var req dto.AdminUpdateUserRequest
	if err := response.DecodeJSON(r, &req); err != nil {
		response.Error(w, r, err)
		return
	}
	if err := req.Validate(); err != nil {
		response.Error(w, r, err)
		return
	}

	u, err := h.svc.AdminUpdateUser(r.Context(), id, auth.AdminUpdateInput{
		Username: req.Username,
		Email:    req.Email,
		IsAdmin:  req.IsAdmin,
	})
	if err != nil {
		response.Error(w, r, err)
		return
	}
	response.JSON(w, http.StatusOK, dto.NewUserView(u))
}

// DeleteUser handles DELETE /api/users/{id} (admin). Admin accounts refuse
// deletion.
func (h *UserHandler) DeleteUser(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	if err := h.svc.AdminDeleteUser(r.Context(), id); err != nil {
		response.Error(w, r, err)
		return
	}

	log := logger.WithCtx(r.Context())
	log.Info().Str("user_id", id).Msg("user deleted")
	response.Message(w, http.StatusOK, "user deleted")
}
