package handler

import (
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/hzqoola/blog-service/internal/model"
	"github.com/hzqoola/blog-service/internal/service"
	"github.com/spf13/viper"
)

type Handler struct {
	services *service.Service
}

func New(services *service.Service) *Handler {
	return &Handler{
		services: services,
	}
}

func (h *Handler) InitRoutes() *gin.Engine {
	r := gin.New()

	r.Use(cors.New(cors.Config{
		AllowOrigins: []string{viper.GetString("client.origin")},
		AllowMethods: []string{"POST", "GET", "PATCH", "DELETE"},
		AllowHeaders: []string{"Authorization", "Content-Type"},
		AllowCredentials: true,
	}))

	r.GET("/sitemap.xml", h.sitemap)

	v1 := r.Group("/api/v1")
	{
		posts := v1.Group("/posts")
		{
			posts.GET("", h.postsGetAll)
			posts.GET("/categories", h.postsGetCategories)
			posts.GET("/category/:categorySlug", h.postsGetByCategory)
			posts.GET("/:slug", h.postsGetBySlug)
		}

		comments := v1.Group("/comments")
		{
			comments.POST("", h.notRequiredAuthMiddleware, h.commentsCreate)
			comments.GET("/:postSlug", h.commentsGet)
			comments.PATCH("", h.authMiddleware, h.commentsUpdate)
			comments.DELETE("", h.authMiddleware, h.commentsDelete)
		}
	}

	return r
}

func (h *Handler) getUserFromRequest(c *gin.Context) *model.SessionUser {
	userReq, _ := c.Get("session-user")

	user, ok := userReq.(model.SessionUser)
	if !ok {
		return nil
	}

	return &user
}
