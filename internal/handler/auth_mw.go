package handler

import (
	"net/http"
	"os"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/hzqoola/blog-service/internal/dto"
	"github.com/hzqoola/blog-service/internal/model"
	jwtmanager "github.com/morf1lo/jwt-pair-manager"
)

func (h *Handler) authMiddleware(c *gin.Context) {
	header := c.GetHeader("Authorization")
	if !strings.HasPrefix(header, "Bearer ") {
		c.JSON(http.StatusUnauthorized, dto.NewBasicResponse(false, errNotAuthorized.Error()))
		c.Abort()
		return
	}

	accessToken := strings.Split(header, " ")[1]
	if accessToken == "" {
		c.JSON(http.StatusUnauthorized, dto.NewBasicResponse(false, errNotAuthorized.Error()))
		c.Abort()
		return
	}

	claims, err := jwtmanager.DecodeJWT(accessToken, []byte(os.Getenv("ACCESS_SECRET")))
	if err != nil {
		c.JSON(http.StatusUnauthorized, dto.NewBasicResponse(false, errNotAuthorized.Error()))
		c.Abort()
		return
	}

	user := sessionUserFromClaims(claims)
	if user == nil {
		c.JSON(http.StatusUnauthorized, dto.NewBasicResponse(false, errNotAuthorized.Error()))
		c.Abort()
		return
	}

	c.Set("session-user", *user)

	c.Next()
}

func sessionUserFromClaims(claims jwt.MapClaims) *model.SessionUser {
	email, _ := claims["email"].(string)
	if email == "" {
		return nil
	}

	name, _ := claims["name"].(string)
	picture, _ := claims["picture"].(string)

	return &model.SessionUser{
		Name: name,
		Email: email,
		AvatarURL: picture,
	}
}
