package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/planning-insights/editorial-system/internal/core/ports"
)

// AssignmentHandler serves the editorial assignment engine.
type AssignmentHandler struct {
	service ports.AssignmentService
}

func NewAssignmentHandler(service ports.AssignmentService) *AssignmentHandler {
	return &AssignmentHandler{service: service}
}

type assignRequest struct {
	EditorID string `json:"editor_id" validate:"required"`
}

// AutoAssign distributes the whole unassigned backlog across the editor pool.
func (h *AssignmentHandler) AutoAssign(c echo.Context) error {
	actor, err := ctxActor(c)
	if err != nil {
		return err
	}

	result, err := h.service.AutoAssign(c.Request().Context(), actor)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, result)
}

// Assign puts one submission on a specific editor's desk.
func (h *AssignmentHandler) Assign(c echo.Context) error {
	actor, err := ctxActor(c)
	if err != nil {
		return err
	}

	var req assignRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	s, err := h.service.Assign(c.Request().Context(), c.Param("submissionId"), req.EditorID, actor)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, s)
}

// Reassign moves a submission to another editor without resetting its status.
func (h *AssignmentHandler) Reassign(c echo.Context) error {
	actor, err := ctxActor(c)
	if err != nil {
		return err
	}

	var req assignRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	s, err := h.service.Reassign(c.Request().Context(), c.Param("submissionId"), req.EditorID, actor)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, s)
}

// Unassign clears the assignment and resets the per-type default status.
func (h *AssignmentHandler) Unassign(c echo.Context) error {
	s, err := h.service.Unassign(c.Request().Context(), c.Param("submissionId"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, s)
}

// ListEditors returns the editor pool with workload counts.
func (h *AssignmentHandler) ListEditors(c echo.Context) error {
	editors, err := h.service.ListEditors(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, map[string]any{"editors": editors, "count": len(editors)})
}

// Stats returns the chief-editor dashboard summary.
func (h *AssignmentHandler) Stats(c echo.Context) error {
	stats, err := h.service.Stats(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, stats)
}
