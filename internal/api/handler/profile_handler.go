package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/myne7x/store-api/internal/core/ports"
)

// ProfileHandler handles HTTP requests for user profiles and role
// administration.
type ProfileHandler struct {
	profiles ports.ProfileService
}

func NewProfileHandler(profiles ports.ProfileService) *ProfileHandler {
	return &ProfileHandler{profiles: profiles}
}

type upsertProfileRequest struct {
	FullName     string `json:"full_name"`
	AvatarURL    string `json:"avatar_url"`
	FacebookLink string `json:"facebook_link"`
	TelegramLink string `json:"telegram_link"`
	WhatsappLink string `json:"whatsapp_link"`
}

type changeRoleRequest struct {
	Role string `json:"role" validate:"required,oneof=user admin super_admin"`
}

// Me handles GET /v1/profiles/me.
//
// @Summary      Get the caller's profile
// @Tags         profiles
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  domain.Profile
// @Failure      404  {object}  errorResponse
// @Router       /v1/profiles/me [get]
func (h *ProfileHandler) Me(c echo.Context) error {
	userID, _, err := ctxIdentity(c)
	if err != nil {
		return err
	}

	profile, err := h.profiles.Get(c.Request().Context(), userID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, profile)
}

// UpsertMe handles PUT /v1/profiles/me — creates the profile on first call
// and updates the self-service fields afterwards. The role field is never
// writable here.
//
// @Summary      Create or update the caller's profile
// @Tags         profiles
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      upsertProfileRequest  true  "Profile fields"
// @Success      200   {object}  domain.Profile
// @Router       /v1/profiles/me [put]
func (h *ProfileHandler) UpsertMe(c echo.Context) error {
	var req upsertProfileRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}

	userID, _, err := ctxIdentity(c)
	if err != nil {
		return err
	}

	profile, err := h.profiles.Upsert(c.Request().Context(), ports.UpsertProfileInput{
		UserID:       userID,
		Email:        ctxEmail(c),
		FullName:     req.FullName,
		AvatarURL:    req.AvatarURL,
		FacebookLink: req.FacebookLink,
		TelegramLink: req.TelegramLink,
		WhatsappLink: req.WhatsappLink,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, profile)
}

// ChangeRole handles PUT /v1/profiles/:user_id/role (super_admin only).
//
// @Summary      Change a profile's role
// @Tags         profiles
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        user_id  path      string             true  "Target user id"
// @Param        body     body      changeRoleRequest  true  "New role"
// @Success      200      {object}  domain.Profile
// @Failure      403      {object}  errorResponse
// @Failure      404      {object}  errorResponse
// @Router       /v1/profiles/{user_id}/role [put]
func (h *ProfileHandler) ChangeRole(c echo.Context) error {
	var req changeRoleRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
	}

	_, role, err := ctxIdentity(c)
	if err != nil {
		return err
	}

	profile, err := h.profiles.ChangeRole(c.Request().Context(), ports.ChangeRoleInput{
		ActorRole:    role,
		TargetUserID: c.Param("user_id"),
		NewRole:      req.Role,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, profile)
}
