package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"comment-board/board"
	"comment-board/internal"
	"comment-board/logger"
)

type errorResponse struct {
	Error string `json:"error"`
}

// CommentHandler maps board HTTP requests onto the comment service.
type CommentHandler struct {
	comments internal.CommentService
}

func NewCommentHandler(comments internal.CommentService) *CommentHandler {
	return &CommentHandler{comments: comments}
}

func (h *CommentHandler) Create(c *gin.Context) {
	var input board.NewComment
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, errorResponse{Error: "Invalid request body"})
		return
	}

	comment, err := h.comments.CreateComment(c.Request.Context(), input)
	if err != nil {
		respondError(c, err)
		return
	}

	logger.For(c.Request.Context()).WithField("commentID", comment.ID).Info("Comment posted")
	c.JSON(http.StatusOK, gin.H{"message": "Comment posted", "comment": comment})
}

// Alive reports liveness together with the number of comments on the board.
func (h *CommentHandler) Alive(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok", "comments": h.comments.CountComments(c.Request.Context())})
}

func (h *CommentHandler) List(c *gin.Context) {
	c.JSON(http.StatusOK, h.comments.ListComments(c.Request.Context()))
}

func (h *CommentHandler) Get(c *gin.Context) {
	id, ok := commentID(c)
	if !ok {
		return
	}

	comment, err := h.comments.GetComment(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, comment)
}

func (h *CommentHandler) Translate(c *gin.Context) {
	id, ok := commentID(c)
	if !ok {
		return
	}

	translation, err := h.comments.TranslateComment(c.Request.Context(), id, c.Param("lang"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, translation)
}

func (h *CommentHandler) Like(c *gin.Context) {
	id, ok := commentID(c)
	if !ok {
		return
	}

	likes, err := h.comments.LikeComment(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Liked", "likes": likes})
}

func (h *CommentHandler) Dislike(c *gin.Context) {
	id, ok := commentID(c)
	if !ok {
		return
	}

	out, err := h.comments.DislikeComment(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}

	if out.Removed {
		logger.For(c.Request.Context()).WithField("commentID", id).Info("Comment removed due to dislikes")
		c.JSON(http.StatusOK, gin.H{"message": "Comment removed due to dislikes", "removed": true})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Disliked", "dislikes": out.Dislikes})
}

// commentID parses the :id path parameter. It writes a 400 and returns false
// for anything that is not a positive integer.
func commentID(c *gin.Context) (int, bool) {
	raw := c.Param("id")
	id, err := strconv.Atoi(raw)
	if err != nil || id < 1 {
		c.JSON(http.StatusBadRequest, errorResponse{Error: "Invalid comment id"})
		return 0, false
	}

	ctx := logger.NewContextWithFields(c.Request.Context(), logrus.Fields{"commentID": id})
	c.Request = c.Request.WithContext(ctx)
	return id, true
}

func respondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, board.ErrMissingField):
		c.JSON(http.StatusBadRequest, errorResponse{Error: board.ErrMissingField.Error()})
	case errors.Is(err, board.ErrForbiddenContent):
		c.JSON(http.StatusForbidden, errorResponse{Error: board.ErrForbiddenContent.Error()})
	case errors.Is(err, board.ErrNotFound):
		c.JSON(http.StatusNotFound, errorResponse{Error: "Comment not found"})
	default:
		logger.For(c.Request.Context()).WithError(err).Error("request failed")
		c.Error(err)
		c.JSON(http.StatusInternalServerError, errorResponse{Error: "Internal server error"})
	}
}
