package handler

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/hzqoola/blog-service/internal/dto"
)

func (h *Handler) postsGetAll(c *gin.Context) {
	posts, err := h.services.Post.FindAll(c.Request.Context())
	if err != nil {
		c.JSON(statusFromError(err), dto.NewBasicResponse(false, err.Error()))
		return
	}

	c.JSON(http.StatusOK, posts)
}

func (h *Handler) postsGetBySlug(c *gin.Context) {
	slug := strings.TrimSpace(c.Param("slug"))

	post, err := h.services.Post.FindBySlug(c.Request.Context(), slug)
	if err != nil {
		c.JSON(statusFromError(err), dto.NewBasicResponse(false, err.Error()))
		return
	}

	c.JSON(http.StatusOK, post)
}

func (h *Handler) postsGetByCategory(c *gin.Context) {
	categorySlug := strings.TrimSpace(c.Param("categorySlug"))

	posts, err := h.services.Post.FindByCategory(c.Request.Context(), categorySlug)
	if err != nil {
		c.JSON(statusFromError(err), dto.NewBasicResponse(false, err.Error()))
		return
	}

	c.JSON(http.StatusOK, posts)
}

func (h *Handler) postsGetCategories(c *gin.Context) {
	categories, err := h.services.Post.FindCategories(c.Request.Context())
	if err != nil {
		c.JSON(statusFromError(err), dto.NewBasicResponse(false, err.Error()))
		return
	}

	c.JSON(http.StatusOK, categories)
}

func (h *Handler) sitemap(c *gin.Context) {
	urls := h.services.Post.SitemapURLs(c.Request.Context())
	c.XML(http.StatusOK, dto.NewSitemapURLSet(urls))
}
