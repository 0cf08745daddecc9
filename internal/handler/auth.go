package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"storefront/internal/middleware"
	"storefront/internal/service"
)

// AuthHandler bundles dependencies for auth endpoints.
type AuthHandler struct {
	Auth *service.AuthService
}

func NewAuthHandler(auth *service.AuthService) *AuthHandler {
	return &AuthHandler{Auth: auth}
}

type loginReq struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type refreshReq struct {
	RefreshToken string `json:"refreshToken"`
}

// Register creates a user and returns it together with a token pair.
func (h *AuthHandler) Register(c echo.Context) error {
	var req service.RegisterInput
	if err := c.Bind(&req); err != nil {
		return failValidation(c, "Invalid request body")
	}
	user, tokens, err := h.Auth.Register(c.Request().Context(), req)
	if err != nil {
		return fail(c, err)
	}
	return respond(c, http.StatusCreated, echo.Map{"user": user, "tokens": tokens})
}

// Login verifies credentials and returns a token pair.
func (h *AuthHandler) Login(c echo.Context) error {
	var req loginReq
	if err := c.Bind(&req); err != nil {
		return failValidation(c, "Invalid request body")
	}
	tokens, err := h.Auth.Login(c.Request().Context(), req.Username, req.Password)
	if err != nil {
		return fail(c, err)
	}
	return respond(c, http.StatusOK, tokens)
}

// Refresh exchanges a valid refresh token for a new token pair.
func (h *AuthHandler) Refresh(c echo.Context) error {
	var req refreshReq
	if err := c.Bind(&req); err != nil || req.RefreshToken == "" {
		return failValidation(c, "refreshToken is required")
	}
	tokens, err := h.Auth.Refresh(c.Request().Context(), req.RefreshToken)
	if err != nil {
		return fail(c, err)
	}
	return respond(c, http.StatusOK, tokens)
}

// Profile returns the authenticated user's record.
func (h *AuthHandler) Profile(c echo.Context) error {
	claims := middleware.ClaimsFrom(c)
	user, err := h.Auth.Profile(c.Request().Context(), claims.UserID)
	if err != nil {
		return fail(c, err)
	}
	return respond(c, http.StatusOK, user)
}

// UpdateProfile applies an email and/or password change for the
// authenticated user.
func (h *AuthHandler) UpdateProfile(c echo.Context) error {
	claims := middleware.ClaimsFrom(c)
	var req service.UpdateProfileInput
	if err := c.Bind(&req); err != nil {
		return failValidation(c, "Invalid request body")
	}
	user, err := h.Auth.UpdateProfile(c.Request().Context(), claims.UserID, req)
	if err != nil {
		return fail(c, err)
	}
	return respond(c, http.StatusOK, user)
}
