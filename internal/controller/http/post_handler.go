package http

import (
	"net/http"
	"strconv"

	"ripple/internal/entity"
	"ripple/internal/usecase"

	"github.com/gin-gonic/gin"
)

type PostHandler struct {
	postUseCase usecase.PostUseCase
}

func NewPostHandler(postUseCase usecase.PostUseCase) *PostHandler {
	return &PostHandler{
		postUseCase: postUseCase,
	}
}

type PostContentRequest struct {
	Content string `json:"content" binding:"required"`
}

type CommentContentRequest struct {
	Content string `json:"content" binding:"required"`
}

type ReactionRequest struct {
	Kind string `json:"kind" binding:"required"`
}

// CreatePost godoc
// @Summary      Publish a post
// @Tags         posts
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request body PostContentRequest true "Post content"
// @Success      201  {object}  entity.Post
// @Failure      400  {object}  map[string]string
// @Router       /posts [post]
func (h *PostHandler) CreatePost(c *gin.Context) {
	user := mustCurrentUser(c)
	if user == nil {
		return
	}

	var req PostContentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	post, err := h.postUseCase.Create(user.Ref(), req.Content)
	if err != nil {
		respondErr(c, err)
		return
	}

	c.JSON(http.StatusCreated, post)
}

// GetPost godoc
// @Summary      Get a post with its comments and reactions
// @Tags         posts
// @Produce      json
// @Security     BearerAuth
// @Param        id path string true "Post ID"
// @Success      200  {object}  entity.Post
// @Failure      404  {object}  map[string]string
// @Router       /posts/{id} [get]
func (h *PostHandler) GetPost(c *gin.Context) {
	post, err := h.postUseCase.Get(c.Param("id"))
	if err != nil {
		respondErr(c, err)
		return
	}

	c.JSON(http.StatusOK, post)
}

// ListPosts godoc
// @Summary      List posts, newest first
// @Tags         posts
// @Produce      json
// @Security     BearerAuth
// @Param        limit  query int false "Page size"
// @Param        offset query int false "Page offset"
// @Success      200  {object}  map[string]interface{}
// @Router       /posts [get]
func (h *PostHandler) ListPosts(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))
	offset, _ := strconv.Atoi(c.DefaultQuery("offset", "0"))

	posts, err := h.postUseCase.List(limit, offset)
	if err != nil {
		respondErr(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"posts": posts, "count": len(posts)})
}

// UpdatePost godoc
// @Summary      Edit own post content
// @Tags         posts
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id path string true "Post ID"
// @Param        request body PostContentRequest true "New content"
// @Success      200  {object}  entity.Post
// @Failure      403  {object}  map[string]string
// @Router       /posts/{id} [patch]
func (h *PostHandler) UpdatePost(c *gin.Context) {
	user := mustCurrentUser(c)
	if user == nil {
		return
	}

	var req PostContentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	post, err := h.postUseCase.Update(c.Param("id"), user.ID, req.Content)
	if err != nil {
		respondErr(c, err)
		return
	}

	c.JSON(http.StatusOK, post)
}

// DeletePost godoc
// @Summary      Delete a post
// @Description  Allowed for the publisher and for moderators or admins
// @Tags         posts
// @Produce      json
// @Security     BearerAuth
// @Param        id path string true "Post ID"
// @Success      202
// @Failure      403  {object}  map[string]string
// @Router       /posts/{id} [delete]
func (h *PostHandler) DeletePost(c *gin.Context) {
	user := mustCurrentUser(c)
	if user == nil {
		return
	}

	if err := h.postUseCase.Delete(c.Param("id"), user.ID, user.Role); err != nil {
		respondErr(c, err)
		return
	}

	c.Status(http.StatusAccepted)
}

// ToggleReaction godoc
// @Summary      Toggle a reaction on a post
// @Description  Same kind removes it, a different kind replaces the old one
// @Tags         posts
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id path string true "Post ID"
// @Param        request body ReactionRequest true "Reaction kind"
// @Success      200  {object}  entity.Post
// @Failure      400  {object}  map[string]string
// @Router       /posts/{id}/reactions [post]
func (h *PostHandler) ToggleReaction(c *gin.Context) {
	user := mustCurrentUser(c)
	if user == nil {
		return
	}

	var req ReactionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	post, err := h.postUseCase.ToggleReaction(c.Param("id"), user.ID, entity.ReactionKind(req.Kind))
	if err != nil {
		respondErr(c, err)
		return
	}

	c.JSON(http.StatusOK, post)
}

// AddComment godoc
// @Summary      Comment on a post
// @Tags         comments
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id path string true "Post ID"
// @Param        request body CommentContentRequest true "Comment content"
// @Success      201  {object}  entity.Post
// @Failure      400  {object}  map[string]string
// @Router       /posts/{id}/comments [post]
func (h *PostHandler) AddComment(c *gin.Context) {
	user := mustCurrentUser(c)
	if user == nil {
		return
	}

	var req CommentContentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	post, err := h.postUseCase.AddComment(c.Param("id"), user.ID, req.Content)
	if err != nil {
		respondErr(c, err)
		return
	}

	c.JSON(http.StatusCreated, post)
}

// EditComment godoc
// @Summary      Edit own comment
// @Tags         comments
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id path string true "Post ID"
// @Param        comment_id path string true "Comment ID"
// @Param        request body CommentContentRequest true "New content"
// @Success      200  {object}  entity.Post
// @Failure      403  {object}  map[string]string
// @Router       /posts/{id}/comments/{comment_id} [patch]
func (h *PostHandler) EditComment(c *gin.Context) {
	user := mustCurrentUser(c)
	if user == nil {
		return
	}

	var req CommentContentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	post, err := h.postUseCase.EditComment(c.Param("id"), c.Param("comment_id"), user.ID, req.Content)
	if err != nil {
		respondErr(c, err)
		return
	}

	c.JSON(http.StatusOK, post)
}

// DeleteComment godoc
// @Summary      Delete a comment
// @Description  Allowed for the commenter and for moderators or admins
// @Tags         comments
// @Produce      json
// @Security     BearerAuth
// @Param        id path string true "Post ID"
// @Param        comment_id path string true "Comment ID"
// @Success      200  {object}  entity.Post
// @Failure      403  {object}  map[string]string
// @Router       /posts/{id}/comments/{comment_id} [delete]
func (h *PostHandler) DeleteComment(c *gin.Context) {
	user := mustCurrentUser(c)
	if user == nil {
		return
	}

	post, err := h.postUseCase.DeleteComment(c.Param("id"), c.Param("comment_id"), user.ID, user.Role)
	if err != nil {
		respondErr(c, err)
		return
	}

	c.JSON(http.StatusOK, post)
}

// ToggleCommentReaction godoc
// @Summary      Toggle a reaction on a comment
// @Tags         comments
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id path string true "Post ID"
// @Param        comment_id path string true "Comment ID"
// @Param        request body ReactionRequest true "Reaction kind"
// @Success      200  {object}  entity.Post
// @Failure      400  {object}  map[string]string
// @Router       /posts/{id}/comments/{comment_id}/reactions [post]
func (h *PostHandler) ToggleCommentReaction(c *gin.Context) {
	user := mustCurrentUser(c)
	if user == nil {
		return
	}

	var req ReactionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	post, err := h.postUseCase.ToggleCommentReaction(c.Param("id"), c.Param("comment_id"), user.ID, entity.ReactionKind(req.Kind))
	if err != nil {
		respondErr(c, err)
		return
	}

	c.JSON(http.StatusOK, post)
}
