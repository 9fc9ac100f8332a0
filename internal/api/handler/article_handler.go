package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/planning-insights/editorial-system/internal/core/domain"
	"github.com/planning-insights/editorial-system/internal/core/ports"
)

// ArticleHandler serves the newsroom approval workflow.
type ArticleHandler struct {
	service ports.ArticleService
}

func NewArticleHandler(service ports.ArticleService) *ArticleHandler {
	return &ArticleHandler{service: service}
}

type createArticleRequest struct {
	Title           string   `json:"title" validate:"required"`
	Excerpt         string   `json:"excerpt"`
	Content         string   `json:"content" validate:"required"`
	Category        string   `json:"category"`
	Tags            []string `json:"tags"`
	SubmitForReview bool     `json:"submit_for_review"`
}

type updateArticleRequest struct {
	Title    *string   `json:"title"`
	Excerpt  *string   `json:"excerpt"`
	Content  *string   `json:"content"`
	Category *string   `json:"category"`
	Tags     *[]string `json:"tags"`
}

type articleReviewRequest struct {
	Reason string `json:"reason"`
	Notes  string `json:"notes"`
}

// Create saves a draft, or submits straight into the approval pipeline.
func (h *ArticleHandler) Create(c echo.Context) error {
	actor, err := ctxActor(c)
	if err != nil {
		return err
	}

	var req createArticleRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	created, err := h.service.Submit(c.Request().Context(), ports.SubmitArticleInput{
		Title:           req.Title,
		Excerpt:         req.Excerpt,
		Content:         req.Content,
		AuthorID:        actor.ID,
		Category:        req.Category,
		Tags:            req.Tags,
		SubmitForReview: req.SubmitForReview,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, created)
}

// Update applies an author edit; editing after needsModification resubmits.
func (h *ArticleHandler) Update(c echo.Context) error {
	actor, err := ctxActor(c)
	if err != nil {
		return err
	}

	var req updateArticleRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}

	updated, err := h.service.Update(c.Request().Context(), ports.UpdateArticleInput{
		ArticleID: c.Param("id"),
		AuthorID:  actor.ID,
		Patch: ports.ArticlePatch{
			Title:    req.Title,
			Excerpt:  req.Excerpt,
			Content:  req.Content,
			Category: req.Category,
			Tags:     req.Tags,
		},
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, updated)
}

func (h *ArticleHandler) Approve(c echo.Context) error {
	actor, err := ctxActor(c)
	if err != nil {
		return err
	}

	article, err := h.service.Approve(c.Request().Context(), c.Param("id"), actor)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, article)
}

func (h *ArticleHandler) Reject(c echo.Context) error {
	actor, err := ctxActor(c)
	if err != nil {
		return err
	}

	var req articleReviewRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}

	article, err := h.service.Reject(c.Request().Context(), c.Param("id"), actor, req.Reason)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, article)
}

func (h *ArticleHandler) RequestModification(c echo.Context) error {
	actor, err := ctxActor(c)
	if err != nil {
		return err
	}

	var req articleReviewRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}

	article, err := h.service.RequestModification(c.Request().Context(), c.Param("id"), actor, req.Notes)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, article)
}

func (h *ArticleHandler) Get(c echo.Context) error {
	article, err := h.service.Get(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, article)
}

func (h *ArticleHandler) List(c echo.Context) error {
	filter := ports.ListArticlesFilter{
		Status:         domain.ArticleStatus(c.QueryParam("status")),
		ApprovalStatus: domain.ApprovalStatus(c.QueryParam("approval_status")),
		AuthorID:       c.QueryParam("author_id"),
		Category:       c.QueryParam("category"),
		Page:           queryInt(c, "page", 1),
		Limit:          queryInt(c, "limit", 20),
	}

	page, err := h.service.List(c.Request().Context(), filter)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, page)
}
