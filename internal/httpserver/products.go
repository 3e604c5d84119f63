package httpserver

import (
	"net/http"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"fiesta-storefront/internal/domain"
	productsvc "fiesta-storefront/internal/service/product"
)

func listProductsHandler(svc ProductService) gin.HandlerFunc {
	return func(c *gin.Context) {
		q := domain.ProductQuery{
			Page:       intQuery(c, "page"),
			Limit:      intQuery(c, "limit"),
			Status:     c.Query("status"),
			CategoryID: c.Query("categoryId"),
			Search:     c.Query("search"),
			SortBy:     c.Query("sortBy"),
			SortOrder:  c.Query("sortOrder"),
		}
		page, err := svc.List(c.Request.Context(), q)
		if err != nil {
			respondError(c, err, msgProductNotFound)
			return
		}
		c.JSON(http.StatusOK, page)
	}
}

func productBySlugHandler(svc ProductService) gin.HandlerFunc {
	return func(c *gin.Context) {
		p, err := svc.GetBySlug(c.Request.Context(), c.Param("slug"))
		if err != nil {
			respondError(c, err, msgProductNotFound)
			return
		}
		c.JSON(http.StatusOK, p)
	}
}

func productByIDHandler(svc ProductService) gin.HandlerFunc {
	return func(c *gin.Context) {
		p, err := svc.GetByID(c.Request.Context(), c.Param("id"))
		if err != nil {
			respondError(c, err, msgProductNotFound)
			return
		}
		c.JSON(http.StatusOK, p)
	}
}

func contactLinkHandler(svc ProductService) gin.HandlerFunc {
	return func(c *gin.Context) {
		link, err := svc.ContactLink(c.Request.Context(), c.Param("id"), c.Query("channel"), c.Query("phone"))
		if err != nil {
			respondError(c, err, msgProductNotFound)
			return
		}
		c.JSON(http.StatusOK, link)
	}
}

func createProductHandler(svc ProductService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var in productsvc.CreateInput
		if err := c.ShouldBindJSON(&in); err != nil {
			badRequest(c, "cuerpo de la petición inválido")
			return
		}
		p, err := svc.Create(c.Request.Context(), in)
		if err != nil {
			respondError(c, err, msgProductNotFound)
			return
		}
		c.JSON(http.StatusCreated, p)
	}
}

func updateProductHandler(svc ProductService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var in productsvc.UpdateInput
		if err := c.ShouldBindJSON(&in); err != nil {
			badRequest(c, "cuerpo de la petición inválido")
			return
		}
		p, err := svc.Update(c.Request.Context(), c.Param("id"), in)
		if err != nil {
			respondError(c, err, msgProductNotFound)
			return
		}
		c.JSON(http.StatusOK, p)
	}
}

func deleteProductHandler(svc ProductService) gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := svc.Delete(c.Request.Context(), c.Param("id")); err != nil {
			respondError(c, err, msgProductNotFound)
			return
		}
		c.Status(http.StatusNoContent)
	}
}

// uploadImageHandler stores the multipart "file" part under the upload dir
// and returns the public URL. Attaching the image to a product is a separate
// PATCH with the returned URL.
func uploadImageHandler(deps Deps) gin.HandlerFunc {
	return func(c *gin.Context) {
		file, err := c.FormFile("file")
		if err != nil {
			badRequest(c, "se requiere un archivo")
			return
		}
		ext := strings.ToLower(filepath.Ext(file.Filename))
		switch ext {
		case ".jpg", ".jpeg", ".png", ".webp", ".gif":
		default:
			badRequest(c, "formato de imagen no soportado")
			return
		}

		name := uuid.NewString() + ext
		if err := c.SaveUploadedFile(file, filepath.Join(deps.UploadDir, name)); err != nil {
			respondError(c, err, msgProductNotFound)
			return
		}
		c.JSON(http.StatusCreated, gin.H{"url": deps.FileURLHost + "/uploads/" + name})
	}
}

func intQuery(c *gin.Context, name string) int {
	v := c.Query(name)
	if v == "" {
		return 0
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0
	}
	return n
}
