package httpserver

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"fiesta-storefront/internal/domain"
	usersvc "fiesta-storefront/internal/service/user"
)

const userContextKey = "authUser"

// requireAuth validates the Bearer token and stores the resolved user on the
// request context.
func requireAuth(svc UserService) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		token, ok := strings.CutPrefix(header, "Bearer ")
		if !ok || token == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "No autorizado"})
			return
		}
		u, err := svc.LookupByToken(c.Request.Context(), token)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "No autorizado"})
			return
		}
		c.Set(userContextKey, u)
		c.Next()
	}
}

func currentUser(c *gin.Context) (*domain.User, bool) {
	v, ok := c.Get(userContextKey)
	if !ok {
		return nil, false
	}
	u, ok := v.(*domain.User)
	return u, ok
}

type loginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// authResponse matches the shape the storefront client stores verbatim.
type authResponse struct {
	AccessToken string      `json:"access_token"`
	User        domain.User `json:"user"`
}

func loginHandler(svc UserService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req loginRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			badRequest(c, "email y password son requeridos")
			return
		}
		u, token, err := svc.Login(c.Request.Context(), req.Email, req.Password)
		if err != nil {
			respondError(c, err, msgUserNotFound)
			return
		}
		c.JSON(http.StatusOK, authResponse{AccessToken: token, User: *u})
	}
}

func registerHandler(svc UserService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var in usersvc.RegisterInput
		if err := c.ShouldBindJSON(&in); err != nil {
			badRequest(c, "cuerpo de la petición inválido")
			return
		}
		u, token, err := svc.Register(c.Request.Context(), in)
		if err != nil {
			respondError(c, err, msgUserNotFound)
			return
		}
		c.JSON(http.StatusCreated, authResponse{AccessToken: token, User: *u})
	}
}

func meHandler(c *gin.Context) {
	u, ok := currentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"message": "No autorizado"})
		return
	}
	c.JSON(http.StatusOK, u)
}

func updateMeHandler(svc UserService) gin.HandlerFunc {
	return func(c *gin.Context) {
		u, ok := currentUser(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"message": "No autorizado"})
			return
		}
		var in usersvc.ProfileInput
		if err := c.ShouldBindJSON(&in); err != nil {
			badRequest(c, "cuerpo de la petición inválido")
			return
		}
		updated, err := svc.UpdateProfile(c.Request.Context(), u.ID, in)
		if err != nil {
			respondError(c, err, msgUserNotFound)
			return
		}
		c.JSON(http.StatusOK, updated)
	}
}
