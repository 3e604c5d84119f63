package httpserver

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"fiesta-storefront/internal/domain"
	usersvc "fiesta-storefront/internal/service/user"
)

// respondError maps domain errors onto the {"message": ...} wire shape the
// storefront client expects. notFound is the message used for missing
// resources, e.g. "Producto no encontrado".
func respondError(c *gin.Context, err error, notFound string) {
	var verr *domain.ValidationError
	switch {
	case errors.Is(err, domain.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"message": notFound})
	case errors.Is(err, usersvc.ErrInvalidCredentials):
		c.JSON(http.StatusUnauthorized, gin.H{"message": "Credenciales incorrectas"})
	case errors.Is(err, usersvc.ErrInvalidToken):
		c.JSON(http.StatusUnauthorized, gin.H{"message": "No autorizado"})
	case errors.As(err, &verr):
		c.JSON(http.StatusBadRequest, gin.H{"message": verr.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Error interno del servidor"})
	}
}

const (
	msgProductNotFound  = "Producto no encontrado"
	msgCategoryNotFound = "Categoría no encontrada"
	msgBundleNotFound   = "Paquete no encontrado"
	msgUserNotFound     = "Usuario no encontrado"
)

func badRequest(c *gin.Context, msg string) {
	c.JSON(http.StatusBadRequest, gin.H{"message": msg})
}
