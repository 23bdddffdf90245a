package handler

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/hzqoola/blog-service/internal/dto"
)

func (h *Handler) commentsGet(c *gin.Context) {
	postSlug := strings.TrimSpace(c.Param("postSlug"))

	comments, err := h.services.Comment.FindPostComments(c.Request.Context(), postSlug)
	if err != nil {
		c.JSON(statusFromError(err), dto.NewBasicResponse(false, err.Error()))
		return
	}

	c.JSON(http.StatusOK, comments)
}

func (h *Handler) commentsCreate(c *gin.Context) {
	user := h.getUserFromRequest(c)

	var input dto.CreateCommentDto
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, dto.NewBasicResponse(false, err.Error()))
		return
	}

	createdComment, err := h.services.Comment.Create(c.Request.Context(), user, input)
	if err != nil {
		c.JSON(statusFromError(err), dto.NewBasicResponse(false, err.Error()))
		return
	}

	c.JSON(http.StatusOK, createdComment)
}

func (h *Handler) commentsUpdate(c *gin.Context) {
	user := h.getUserFromRequest(c)

	var input dto.UpdateCommentDto
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, dto.NewBasicResponse(false, err.Error()))
		return
	}

	if err := h.services.Comment.Update(c.Request.Context(), user, input); err != nil {
		c.JSON(statusFromError(err), dto.NewBasicResponse(false, err.Error()))
		return
	}

	c.JSON(http.StatusOK, dto.NewBasicResponse(true, ""))
}

func (h *Handler) commentsDelete(c *gin.Context) {
	user := h.getUserFromRequest(c)

	var input dto.DeleteCommentDto
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, dto.NewBasicResponse(false, err.Error()))
		return
	}

	if err := h.services.Comment.Delete(c.Request.Context(), user, input); err != nil {
		c.JSON(statusFromError(err), dto.NewBasicResponse(false, err.Error()))
		return
	}

	c.JSON(http.StatusOK, dto.NewBasicResponse(true, ""))
}
