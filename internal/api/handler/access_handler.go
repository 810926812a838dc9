package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/myne7x/store-api/internal/core/ports"
)

// AccessHandler handles product access: free grants, paid payment requests,
// entitlement checks, and the caller's download library.
type AccessHandler struct {
	workflow     ports.WorkflowService
	entitlements ports.EntitlementService
}

func NewAccessHandler(workflow ports.WorkflowService, entitlements ports.EntitlementService) *AccessHandler {
	return &AccessHandler{workflow: workflow, entitlements: entitlements}
}

type requestAccessRequest struct {
	ContactInfo          string `json:"contact_info"`
	ContactMethod        string `json:"contact_method"`
	PaymentScreenshotURL string `json:"payment_screenshot_url"`
}

type accessGrantedResponse struct {
	Granted      bool `json:"granted"`
	AlreadyOwned bool `json:"already_owned"`
}

type hasAccessResponse struct {
	HasAccess bool `json:"has_access"`
}

// RequestAccess handles POST /v1/products/:id/access.
//
// Free products are granted immediately (idempotent). Paid products open a
// pending payment request carrying the off-band payment proof.
//
// @Summary      Request access to a product
// @Tags         access
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string                true   "Product id"
// @Param        body  body      requestAccessRequest  false  "Payment proof (paid products)"
// @Success      200   {object}  accessGrantedResponse
// @Success      201   {object}  domain.PaymentRequest
// @Failure      404   {object}  errorResponse
// @Failure      409   {object}  errorResponse
// @Failure      422   {object}  errorResponse
// @Router       /v1/products/{id}/access [post]
func (h *AccessHandler) RequestAccess(c echo.Context) error {
	var req requestAccessRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}

	userID, role, err := ctxIdentity(c)
	if err != nil {
		return err
	}

	result, err := h.workflow.RequestAccess(c.Request().Context(), ports.RequestAccessInput{
		UserID:               userID,
		Role:                 role,
		ProductID:            c.Param("id"),
		ContactInfo:          req.ContactInfo,
		ContactMethod:        req.ContactMethod,
		PaymentScreenshotURL: req.PaymentScreenshotURL,
	})
	if err != nil {
		return err
	}

	if result.Granted {
		return c.JSON(http.StatusOK, accessGrantedResponse{
			Granted:      true,
			AlreadyOwned: result.AlreadyOwned,
		})
	}
	return c.JSON(http.StatusCreated, result.Request)
}

// HasAccess handles GET /v1/products/:id/access.
//
// @Summary      Check entitlement to a product
// @Tags         access
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  hasAccessResponse
// @Router       /v1/products/{id}/access [get]
func (h *AccessHandler) HasAccess(c echo.Context) error {
	userID, _, err := ctxIdentity(c)
	if err != nil {
		return err
	}

	hasAccess, err := h.entitlements.HasAccess(c.Request().Context(), userID, c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, hasAccessResponse{HasAccess: hasAccess})
}

// ListDownloads handles GET /v1/downloads.
//
// @Summary      List the caller's granted downloads
// @Tags         access
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}  domain.UserDownload
// @Router       /v1/downloads [get]
func (h *AccessHandler) ListDownloads(c echo.Context) error {
	userID, _, err := ctxIdentity(c)
	if err != nil {
		return err
	}

	downloads, err := h.entitlements.ListDownloads(c.Request().Context(), userID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, downloads)
}
