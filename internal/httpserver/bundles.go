package httpserver

import (
	"net/http"

	"github.com/gin-gonic/gin"

	bundlesvc "fiesta-storefront/internal/service/bundle"
)

func listBundlesHandler(svc BundleService) gin.HandlerFunc {
	return func(c *gin.Context) {
		items, err := svc.List(c.Request.Context())
		if err != nil {
			respondError(c, err, msgBundleNotFound)
			return
		}
		c.JSON(http.StatusOK, items)
	}
}

func bundleByIDHandler(svc BundleService) gin.HandlerFunc {
	return func(c *gin.Context) {
		item, err := svc.GetByID(c.Request.Context(), c.Param("id"))
		if err != nil {
			respondError(c, err, msgBundleNotFound)
			return
		}
		c.JSON(http.StatusOK, item)
	}
}

func createBundleHandler(svc BundleService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var in bundlesvc.CreateInput
		if err := c.ShouldBindJSON(&in); err != nil {
			badRequest(c, "cuerpo de la petición inválido")
			return
		}
		item, err := svc.Create(c.Request.Context(), in)
		if err != nil {
			respondError(c, err, msgBundleNotFound)
			return
		}
		c.JSON(http.StatusCreated, item)
	}
}

func updateBundleHandler(svc BundleService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var in bundlesvc.UpdateInput
		if err := c.ShouldBindJSON(&in); err != nil {
			badRequest(c, "cuerpo de la petición inválido")
			return
		}
		item, err := svc.Update(c.Request.Context(), c.Param("id"), in)
		if err != nil {
			respondError(c, err, msgBundleNotFound)
			return
		}
		c.JSON(http.StatusOK, item)
	}
}

func deleteBundleHandler(svc BundleService) gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := svc.Delete(c.Request.Context(), c.Param("id")); err != nil {
			respondError(c, err, msgBundleNotFound)
			return
		}
		c.Status(http.StatusNoContent)
	}
}
