package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/planning-insights/editorial-system/internal/core/domain"
	"github.com/planning-insights/editorial-system/internal/core/ports"
)

// SubmissionHandler serves the submission review pipeline.
type SubmissionHandler struct {
	service ports.SubmissionService
}

func NewSubmissionHandler(service ports.SubmissionService) *SubmissionHandler {
	return &SubmissionHandler{service: service}
}

type authorRequest struct {
	Name        string `json:"name" validate:"required"`
	Email       string `json:"email" validate:"required,email"`
	Affiliation string `json:"affiliation"`
	Phone       string `json:"phone"`
}

type fileRequest struct {
	URL      string `json:"url" validate:"required"`
	Filename string `json:"filename" validate:"required"`
	FileType string `json:"file_type"`
	FileSize int64  `json:"file_size"`
}

type createSubmissionRequest struct {
	Type          string        `json:"type" validate:"required,oneof=manuscript research-paper"`
	RequirementID string        `json:"requirement_id"`
	Title         string        `json:"title" validate:"required"`
	Abstract      string        `json:"abstract"`
	Author        authorRequest `json:"author" validate:"required"`
	File          fileRequest   `json:"file" validate:"required"`
}

type reviewSubmissionRequest struct {
	Decision string `json:"decision" validate:"required"`
	Remarks  string `json:"remarks"`
}

// Create files a new submission. The author snapshot is taken from the
// payload but pinned to the authenticated user.
func (h *SubmissionHandler) Create(c echo.Context) error {
	actor, err := ctxActor(c)
	if err != nil {
		return err
	}

	var req createSubmissionRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	created, err := h.service.Submit(c.Request().Context(), ports.SubmitSubmissionInput{
		Type:          domain.SubmissionType(req.Type),
		RequirementID: req.RequirementID,
		Title:         req.Title,
		Abstract:      req.Abstract,
		Author: ports.AuthorInput{
			UserID:      actor.ID,
			Name:        req.Author.Name,
			Email:       req.Author.Email,
			Affiliation: req.Author.Affiliation,
			Phone:       req.Author.Phone,
		},
		File: ports.FileInput{
			URL:      req.File.URL,
			Filename: req.File.Filename,
			FileType: req.File.FileType,
			FileSize: req.File.FileSize,
		},
	})
	if err != nil {
		return err
	}

	return c.JSON(http.StatusCreated, created)
}

func (h *SubmissionHandler) Get(c echo.Context) error {
	actor, err := ctxActor(c)
	if err != nil {
		return err
	}

	s, err := h.service.Get(c.Request().Context(), c.Param("id"), actor)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, s)
}

func (h *SubmissionHandler) List(c echo.Context) error {
	actor, err := ctxActor(c)
	if err != nil {
		return err
	}

	filter := ports.ListSubmissionsFilter{
		Type:   domain.SubmissionType(c.QueryParam("type")),
		Status: domain.SubmissionStatus(c.QueryParam("status")),
		Page:   queryInt(c, "page", 1),
		Limit:  queryInt(c, "limit", 20),
	}
	if v := c.QueryParam("assigned"); v != "" {
		assigned := v == "true"
		filter.Assigned = &assigned
	}

	page, err := h.service.List(c.Request().Context(), filter, actor)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, page)
}

// Review applies one review decision to a submission.
func (h *SubmissionHandler) Review(c echo.Context) error {
	actor, err := ctxActor(c)
	if err != nil {
		return err
	}

	var req reviewSubmissionRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	s, err := h.service.Review(c.Request().Context(), ports.ReviewSubmissionInput{
		SubmissionID: c.Param("id"),
		Actor:        actor,
		Decision:     domain.SubmissionStatus(req.Decision),
		Remarks:      req.Remarks,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, s)
}

func (h *SubmissionHandler) Delete(c echo.Context) error {
	if err := h.service.Delete(c.Request().Context(), c.Param("id")); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

func (h *SubmissionHandler) Stats(c echo.Context) error {
	actor, err := ctxActor(c)
	if err != nil {
		return err
	}

	stats, err := h.service.Stats(c.Request().Context(), actor)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, stats)
}

// queryInt parses a positive integer query parameter with a fallback.
func queryInt(c echo.Context, name string, fallback int) int {
	v := c.QueryParam(name)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil || n < 1 {
		return fallback
	}
	return n
}
