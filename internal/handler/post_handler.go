package handler

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	apperrors "smartblog/internal/errors"
	"smartblog/internal/model"
	"smartblog/internal/service"
)

// PostHandler handles post lifecycle endpoints.
type PostHandler struct {
	postService service.PostService
}

// NewPostHandler creates a new post handler.
func NewPostHandler(postService service.PostService) *PostHandler {
	return &PostHandler{postService: postService}
}

// CreatePostRequest represents a post creation request. Both fields are
// optional; a missing title falls back to "Untitled".
type CreatePostRequest struct {
	Title       *string         `json:"title"`
	ContentJSON *model.Document `json:"content_json"`
}

// UpdatePostRequest represents a partial update. nil fields stay untouched;
// present-but-empty values are applied.
type UpdatePostRequest struct {
	Title       *string         `json:"title"`
	ContentJSON *model.Document `json:"content_json"`
}

// PostListResponse wraps the caller's posts with a total count.
type PostListResponse struct {
	Posts []model.Post `json:"posts"`
	Total int          `json:"total"`
}

// Create godoc
// @Summary Create a new draft post
// @Tags posts
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body CreatePostRequest true "Post data"
// @Success 201 {object} model.Post
// @Failure 401 {object} errors.ErrorResponse
// @Router /posts [post]
func (h *PostHandler) Create(c echo.Context) error {
	user, err := currentUser(c)
	if err != nil {
		return err
	}

	var req CreatePostRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}

	post, err := h.postService.Create(c.Request().Context(), user, req.Title, req.ContentJSON)
	if err != nil {
		return domainError(err)
	}

	return c.JSON(http.StatusCreated, post)
}

// List godoc
// @Summary List the caller's posts
// @Tags posts
// @Produce json
// @Security BearerAuth
// @Success 200 {object} PostListResponse
// @Failure 401 {object} errors.ErrorResponse
// @Router /posts [get]
func (h *PostHandler) List(c echo.Context) error {
	user, err := currentUser(c)
	if err != nil {
		return err
	}

	posts, err := h.postService.List(c.Request().Context(), user)
	if err != nil {
		return domainError(err)
	}

	return c.JSON(http.StatusOK, PostListResponse{
		Posts: posts,
		Total: len(posts),
	})
}

// Get godoc
// @Summary Get a single post
// @Tags posts
// @Produce json
// @Security BearerAuth
// @Param id path string true "Post ID"
// @Success 200 {object} model.Post
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /posts/{id} [get]
func (h *PostHandler) Get(c echo.Context) error {
	user, err := currentUser(c)
	if err != nil {
		return err
	}

	postID, err := parsePostID(c)
	if err != nil {
		return err
	}

	post, err := h.postService.Get(c.Request().Context(), user, postID)
	if err != nil {
		return domainError(err)
	}

	return c.JSON(http.StatusOK, post)
}

// Update godoc
// @Summary Update a post's title or content
// @Tags posts
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Post ID"
// @Param request body UpdatePostRequest true "Fields to update"
// @Success 200 {object} model.Post
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /posts/{id} [patch]
func (h *PostHandler) Update(c echo.Context) error {
	user, err := currentUser(c)
	if err != nil {
		return err
	}

	postID, err := parsePostID(c)
	if err != nil {
		return err
	}

	var req UpdatePostRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}

	post, err := h.postService.Update(c.Request().Context(), user, postID, req.Title, req.ContentJSON)
	if err != nil {
		return domainError(err)
	}

	return c.JSON(http.StatusOK, post)
}

// Publish godoc
// @Summary Publish a post
// @Tags posts
// @Produce json
// @Security BearerAuth
// @Param id path string true "Post ID"
// @Success 200 {object} model.Post
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /posts/{id}/publish [post]
func (h *PostHandler) Publish(c echo.Context) error {
	user, err := currentUser(c)
	if err != nil {
		return err
	}

	postID, err := parsePostID(c)
	if err != nil {
		return err
	}

	post, err := h.postService.Publish(c.Request().Context(), user, postID)
	if err != nil {
		return domainError(err)
	}

	return c.JSON(http.StatusOK, post)
}

func parsePostID(c echo.Context) (uuid.UUID, error) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return uuid.Nil, domainError(apperrors.ErrInvalidID)
	}
	return id, nil
}
