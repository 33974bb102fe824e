package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/SenoussiAl/movie-catalog/internal/model"
	"github.com/SenoussiAl/movie-catalog/internal/queue"
	"github.com/SenoussiAl/movie-catalog/internal/repository"
	"github.com/SenoussiAl/movie-catalog/internal/validation"
)

// CommentStore is the slice of CommentRepo the handlers need.
type CommentStore interface {
	Create(ctx context.Context, comment *model.Comment) (*model.Comment, error)
	Update(ctx context.Context, id, userID, content string) (*model.Comment, error)
	Delete(ctx context.Context, id, userID, role string) error
	ListByMovie(ctx context.Context, movieID string, q repository.PageQuery) ([]model.Comment, int64, error)
}

// ActivityPublisher pushes a domain event to the broker. Publishing
// is best-effort: a broker outage never fails the request.
type ActivityPublisher func(ctx context.Context, event queue.ActivityEvent) error

// CommentHandler bundles dependencies for the comment endpoints.
type CommentHandler struct {
	Comments CommentStore
	Publish  ActivityPublisher
}

func NewCommentHandler(comments CommentStore, publish ActivityPublisher) *CommentHandler {
	return &CommentHandler{Comments: comments, Publish: publish}
}

type commentCreateReq struct {
	Content string `json:"content" validate:"required,min=1,max=2000"`
	MovieID string `json:"movieId" validate:"required,uuid4"`
}

type commentUpdateReq struct {
	Content string `json:"content" validate:"required,min=1,max=2000"`
}

// Create handles POST /v1/comments. The author is the authenticated
// caller, never a body field.
func (h *CommentHandler) Create(c echo.Context) error {
	userID, ok := callerID(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	var req commentCreateReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	if err := c.Validate(&req); err != nil {
		return validation.BadRequest(c, err)
	}

	ctx, cancel := reqCtx(c)
	defer cancel()

	comment, err := h.Comments.Create(ctx, &model.Comment{
		Content: req.Content,
		MovieID: req.MovieID,
		UserID:  userID,
	})
	if err != nil {
		return respondError(c, err, "comment", "failed to create comment")
	}

	if h.Publish != nil {
		_ = h.Publish(ctx, queue.ActivityEvent{
			Type:       queue.TypeCommentCreated,
			MovieID:    comment.MovieID,
			UserID:     userID,
			OccurredAt: time.Now().UTC().Format(time.RFC3339),
		})
	}
	return c.JSON(http.StatusCreated, comment)
}

// Update handles PUT /v1/comments/:id. Only the author may edit.
func (h *CommentHandler) Update(c echo.Context) error {
	userID, ok := callerID(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	var req commentUpdateReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	if err := c.Validate(&req); err != nil {
		return validation.BadRequest(c, err)
	}

	ctx, cancel := reqCtx(c)
	defer cancel()

	comment, err := h.Comments.Update(ctx, c.Param("id"), userID, req.Content)
	if err != nil {
		return respondError(c, err, "comment", "failed to update comment")
	}
	return c.JSON(http.StatusOK, comment)
}

// Delete handles DELETE /v1/comments/:id. The author and admins may
// delete.
func (h *CommentHandler) Delete(c echo.Context) error {
	userID, ok := callerID(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}

	ctx, cancel := reqCtx(c)
	defer cancel()

	if err := h.Comments.Delete(ctx, c.Param("id"), userID, callerRole(c)); err != nil {
		return respondError(c, err, "comment", "failed to delete comment")
	}
	return c.NoContent(http.StatusNoContent)
}

// ListByMovie handles GET /v1/comments/movie/:movieId, newest first.
func (h *CommentHandler) ListByMovie(c echo.Context) error {
	ctx, cancel := reqCtx(c)
	defer cancel()

	page := parsePage(c)
	comments, total, err := h.Comments.ListByMovie(ctx, c.Param("movieId"), page)
	if err != nil {
		return respondError(c, err, "comment", "failed to fetch comments")
	}
	return c.JSON(http.StatusOK, repository.NewPage(comments, total, page))
}
