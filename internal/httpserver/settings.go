package httpserver

import (
	"net/http"

	"github.com/gin-gonic/gin"

	settingssvc "fiesta-storefront/internal/service/settings"
)

func getSettingsHandler(svc SettingsService) gin.HandlerFunc {
	return func(c *gin.Context) {
		s, err := svc.Get(c.Request.Context())
		if err != nil {
			respondError(c, err, "Configuración no encontrada")
			return
		}
		c.JSON(http.StatusOK, s)
	}
}

func updateSettingsHandler(svc SettingsService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var in settingssvc.UpdateInput
		if err := c.ShouldBindJSON(&in); err != nil {
			badRequest(c, "cuerpo de la petición inválido")
			return
		}
		s, err := svc.Update(c.Request.Context(), in)
		if err != nil {
			respondError(c, err, "Configuración no encontrada")
			return
		}
		c.JSON(http.StatusOK, s)
	}
}
