package httpserver

import (
	"net/http"

	"github.com/gin-gonic/gin"

	categorysvc "fiesta-storefront/internal/service/category"
)

func listCategoriesHandler(svc CategoryService) gin.HandlerFunc {
	return func(c *gin.Context) {
		items, err := svc.List(c.Request.Context())
		if err != nil {
			respondError(c, err, msgCategoryNotFound)
			return
		}
		c.JSON(http.StatusOK, items)
	}
}

func categoryByIDHandler(svc CategoryService) gin.HandlerFunc {
	return func(c *gin.Context) {
		item, err := svc.GetByID(c.Request.Context(), c.Param("id"))
		if err != nil {
			respondError(c, err, msgCategoryNotFound)
			return
		}
		c.JSON(http.StatusOK, item)
	}
}

func createCategoryHandler(svc CategoryService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var in categorysvc.CreateInput
		if err := c.ShouldBindJSON(&in); err != nil {
			badRequest(c, "cuerpo de la petición inválido")
			return
		}
		item, err := svc.Create(c.Request.Context(), in)
		if err != nil {
			respondError(c, err, msgCategoryNotFound)
			return
		}
		c.JSON(http.StatusCreated, item)
	}
}

func updateCategoryHandler(svc CategoryService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var in categorysvc.UpdateInput
		if err := c.ShouldBindJSON(&in); err != nil {
			badRequest(c, "cuerpo de la petición inválido")
			return
		}
		item, err := svc.Update(c.Request.Context(), c.Param("id"), in)
		if err != nil {
			respondError(c, err, msgCategoryNotFound)
			return
		}
		c.JSON(http.StatusOK, item)
	}
}

func deleteCategoryHandler(svc CategoryService) gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := svc.Delete(c.Request.Context(), c.Param("id")); err != nil {
			respondError(c, err, msgCategoryNotFound)
			return
		}
		c.Status(http.StatusNoContent)
	}
}
