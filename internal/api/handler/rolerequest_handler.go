package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/planning-insights/editorial-system/internal/core/domain"
	"github.com/planning-insights/editorial-system/internal/core/ports"
)

// RoleRequestHandler serves the role escalation workflow.
type RoleRequestHandler struct {
	service ports.RoleRequestService
}

func NewRoleRequestHandler(service ports.RoleRequestService) *RoleRequestHandler {
	return &RoleRequestHandler{service: service}
}

type createRoleRequestRequest struct {
	RequestedRole string `json:"requested_role" validate:"required"`
	Reason        string `json:"reason" validate:"required"`
}

type reviewRoleRequestRequest struct {
	Decision   string `json:"decision" validate:"required,oneof=approved rejected"`
	AdminNotes string `json:"admin_notes"`
}

type revokeRoleRequest struct {
	Role string `json:"role" validate:"required"`
}

// Create files a pending escalation request for the authenticated user.
func (h *RoleRequestHandler) Create(c echo.Context) error {
	actor, err := ctxActor(c)
	if err != nil {
		return err
	}

	var req createRoleRequestRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	created, err := h.service.Submit(c.Request().Context(), actor.ID, domain.Role(req.RequestedRole), req.Reason)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, created)
}

// Review resolves a pending request; approval cascades the role to the user.
func (h *RoleRequestHandler) Review(c echo.Context) error {
	actor, err := ctxActor(c)
	if err != nil {
		return err
	}

	var req reviewRoleRequestRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	resolved, err := h.service.Review(c.Request().Context(), c.Param("id"), actor, domain.RequestStatus(req.Decision), req.AdminNotes)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, resolved)
}

// Revoke strips a user's elevated role, resetting them to a regular user.
func (h *RoleRequestHandler) Revoke(c echo.Context) error {
	actor, err := ctxActor(c)
	if err != nil {
		return err
	}

	var req revokeRoleRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	user, err := h.service.Revoke(c.Request().Context(), c.Param("id"), domain.Role(req.Role), actor)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, user)
}

// Delete removes a request; blocked while the approved grant is still live.
func (h *RoleRequestHandler) Delete(c echo.Context) error {
	if err := h.service.Delete(c.Request().Context(), c.Param("id")); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

func (h *RoleRequestHandler) List(c echo.Context) error {
	filter := ports.ListRoleRequestsFilter{
		Status: domain.RequestStatus(c.QueryParam("status")),
		UserID: c.QueryParam("user_id"),
		Page:   queryInt(c, "page", 1),
		Limit:  queryInt(c, "limit", 20),
	}

	page, err := h.service.List(c.Request().Context(), filter)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, page)
}

// Mine returns the authenticated user's own request history.
func (h *RoleRequestHandler) Mine(c echo.Context) error {
	actor, err := ctxActor(c)
	if err != nil {
		return err
	}

	items, err := h.service.Mine(c.Request().Context(), actor.ID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, map[string]any{"items": items, "count": len(items)})
}
