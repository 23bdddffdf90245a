package handler

import (
	"os"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/hzqoola/blog-service/pkg/utils"
)

func (h *Handler) notRequiredAuthMiddleware(c *gin.Context) {
	header := c.GetHeader("Authorization")
	if !strings.HasPrefix(header, "Bearer ") {
		c.Next()
		return
	}

	accessToken := strings.Split(header, " ")[1]
	if accessToken == "" {
		c.Next()
		return
	}

	claims, err := utils.DecodeJWT(accessToken, []byte(os.Getenv("ACCESS_SECRET")))
	if err != nil {
		c.Next()
		return
	}

	if user := sessionUserFromClaims(claims); user != nil {
		c.Set("session-user", *user)
	}

	c.Next()
}
