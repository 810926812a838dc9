package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/myne7x/store-api/internal/core/domain"
	"github.com/myne7x/store-api/internal/core/ports"
)

// RequestHandler handles HTTP requests for the payment request workflow.
type RequestHandler struct {
	workflow ports.WorkflowService
}

func NewRequestHandler(workflow ports.WorkflowService) *RequestHandler {
	return &RequestHandler{workflow: workflow}
}

type decideRequest struct {
	Outcome string `json:"outcome" validate:"required,oneof=approve reject"`
}

// outcomeStatus maps the API verb to the stored terminal status.
var outcomeStatus = map[string]domain.RequestStatus{
	"approve": domain.RequestApproved,
	"reject":  domain.RequestRejected,
}

// List handles GET /v1/requests. Admins see every request, optionally
// filtered by ?status=; other callers see only their own.
//
// @Summary      List payment requests
// @Tags         requests
// @Produce      json
// @Security     BearerAuth
// @Param        status  query     string  false  "Filter by status (pending|approved|rejected)"
// @Success      200     {array}   domain.PaymentRequest
// @Failure      401     {object}  errorResponse
// @Router       /v1/requests [get]
func (h *RequestHandler) List(c echo.Context) error {
	userID, role, err := ctxIdentity(c)
	if err != nil {
		return err
	}

	requests, err := h.workflow.ListRequests(c.Request().Context(), ports.ListRequestsInput{
		UserID: userID,
		Role:   role,
		Status: c.QueryParam("status"),
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, requests)
}

// Decide handles POST /v1/requests/:id/decision (admin only).
//
// @Summary      Approve or reject a pending payment request
// @Tags         requests
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string         true  "Request id"
// @Param        body  body      decideRequest  true  "Decision"
// @Success      200   {object}  domain.PaymentRequest
// @Failure      403   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Failure      422   {object}  errorResponse
// @Router       /v1/requests/{id}/decision [post]
func (h *RequestHandler) Decide(c echo.Context) error {
	var req decideRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
	}

	userID, role, err := ctxIdentity(c)
	if err != nil {
		return err
	}

	request, err := h.workflow.Decide(c.Request().Context(), ports.DecideInput{
		RequestID:   c.Param("id"),
		Outcome:     outcomeStatus[req.Outcome],
		DeciderID:   userID,
		DeciderRole: role,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, request)
}
