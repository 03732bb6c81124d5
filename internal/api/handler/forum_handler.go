package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/ashkelon/forum/internal/api/metrics"
	"github.com/ashkelon/forum/internal/core/ports"
)

// ForumHandler serves the /forum routes.
type ForumHandler struct {
	service ports.ForumService
}

func NewForumHandler(service ports.ForumService) *ForumHandler {
	return &ForumHandler{service: service}
}

// CreatePost handles POST /forum/post.
//
// @Summary      Create a post
// @Tags         forum
// @Accept       json
// @Produce      json
// @Param        body  body      newPostRequest  true  "Post"
// @Success      201   {object}  postResponse
// @Failure      400   {object}  errorResponse
// @Failure      422   {object}  errorResponse
// @Router       /forum/post [post]
func (h *ForumHandler) CreatePost(c echo.Context) error {
	var req newPostRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
	}

	post, err := h.service.CreatePost(c.Request().Context(), toPostInput(req))
	if err != nil {
		return err
	}
	metrics.PostsCreatedTotal.Inc()
	return c.JSON(http.StatusCreated, toPostResponse(post))
}

// GetPost handles GET /forum/post/:id.
//
// @Summary      Get a post
// @Tags         forum
// @Produce      json
// @Param        id   path      string  true  "Post id"
// @Success      200  {object}  postResponse
// @Failure      404  {object}  errorResponse
// @Router       /forum/post/{id} [get]
func (h *ForumHandler) GetPost(c echo.Context) error {
	post, err := h.service.GetPost(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toPostResponse(post))
}

// DeletePost handles DELETE /forum/post/:id.
//
// @Summary      Delete a post
// @Tags         forum
// @Produce      json
// @Security     BasicAuth
// @Param        id   path      string  true  "Post id"
// @Success      200  {object}  postResponse
// @Failure      403  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Router       /forum/post/{id} [delete]
func (h *ForumHandler) DeletePost(c echo.Context) error {
	post, err := h.service.DeletePost(c.Request().Context(), c.Param("id"), authorization(c))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toPostResponse(post))
}

// UpdatePost handles PUT /forum/post/:id. Only the author may edit.
//
// @Summary      Update post content
// @Tags         forum
// @Accept       json
// @Produce      json
// @Security     BasicAuth
// @Param        id    path      string             true  "Post id"
// @Param        body  body      updatePostRequest  true  "New content"
// @Success      200   {object}  postResponse
// @Failure      403   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Router       /forum/post/{id} [put]
func (h *ForumHandler) UpdatePost(c echo.Context) error {
	var req updatePostRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
	}

	post, err := h.service.UpdatePost(c.Request().Context(), c.Param("id"), req.Content, authorization(c))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toPostResponse(post))
}

// AddLike handles PUT /forum/post/:id/like.
//
// @Summary      Like a post
// @Tags         forum
// @Produce      json
// @Param        id   path      string  true  "Post id"
// @Success      200  {object}  likeResponse
// @Failure      404  {object}  likeResponse
// @Router       /forum/post/{id}/like [put]
func (h *ForumHandler) AddLike(c echo.Context) error {
	ok, err := h.service.AddLike(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	if !ok {
		return c.JSON(http.StatusNotFound, likeResponse{Liked: false})
	}
	metrics.PostInteractionsTotal.WithLabelValues("like").Inc()
	return c.JSON(http.StatusOK, likeResponse{Liked: true})
}

// AddComment handles PUT /forum/post/:id/comment.
//
// @Summary      Comment on a post
// @Tags         forum
// @Accept       json
// @Produce      json
// @Param        id    path      string             true  "Post id"
// @Param        body  body      newCommentRequest  true  "Comment"
// @Success      200   {object}  postResponse
// @Failure      404   {object}  errorResponse
// @Router       /forum/post/{id}/comment [put]
func (h *ForumHandler) AddComment(c echo.Context) error {
	var req newCommentRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
	}

	post, err := h.service.AddComment(c.Request().Context(), c.Param("id"), ports.CommentInput{
		User:    req.User,
		Message: req.Message,
	})
	if err != nil {
		return err
	}
	metrics.PostInteractionsTotal.WithLabelValues("comment").Inc()
	return c.JSON(http.StatusOK, toPostResponse(post))
}

// FindByTags handles POST /forum/posts/tags.
//
// @Summary      Find posts by tags
// @Tags         forum
// @Accept       json
// @Produce      json
// @Param        body  body      tagsRequest  true  "Tags"
// @Success      200   {array}   postResponse
// @Router       /forum/posts/tags [post]
func (h *ForumHandler) FindByTags(c echo.Context) error {
	var req tagsRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
	}

	posts, err := h.service.FindByTags(c.Request().Context(), req.Tags)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toPostResponses(posts))
}

// FindByAuthor handles GET /forum/posts/author/:author.
//
// @Summary      Find posts by author
// @Tags         forum
// @Produce      json
// @Param        author  path      string  true  "Author login"
// @Success      200     {array}   postResponse
// @Router       /forum/posts/author/{author} [get]
func (h *ForumHandler) FindByAuthor(c echo.Context) error {
	posts, err := h.service.FindByAuthor(c.Request().Context(), c.Param("author"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toPostResponses(posts))
}

// FindByPeriod handles POST /forum/posts/period.
//
// @Summary      Find posts created within a date range
// @Tags         forum
// @Accept       json
// @Produce      json
// @Param        body  body      periodRequest  true  "Inclusive YYYY-MM-DD bounds"
// @Success      200   {array}   postResponse
// @Failure      400   {object}  errorResponse
// @Router       /forum/posts/period [post]
func (h *ForumHandler) FindByPeriod(c echo.Context) error {
	var req periodRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
	}

	posts, err := h.service.FindByDateRange(c.Request().Context(), req.From, req.To)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toPostResponses(posts))
}
