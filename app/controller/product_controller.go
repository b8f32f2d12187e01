package controller

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"pookadai/models"
	"pookadai/service"
)

// ProductController handles HTTP requests for the catalog
type ProductController struct {
	catalog service.ProductCatalogInterface
	logger  *zap.Logger
}

// NewProductController creates a new ProductController
func NewProductController(catalog service.ProductCatalogInterface, logger *zap.Logger) *ProductController {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ProductController{
		catalog: catalog,
		logger:  logger,
	}
}

// ListProducts handles GET /products
// Query parameters: category (optional), available (optional, default true)
// Example response:
// {
//   "products": [
//     {"id": "3f1c...", "nameEn": "Jasmine garland", "nameTa": "மல்லிகை மாலை", "category": "garland", "price": 150, "available": true}
//   ]
// }
func (pc *ProductController) ListProducts(c *gin.Context) {
	onlyAvailable := true
	if raw := c.Query("available"); raw != "" {
		parsed, err := strconv.ParseBool(raw)
		if err != nil {
			writeError(c, pc.logger, models.ValidationError("available must be true or false"), "")
			return
		}
		onlyAvailable = parsed
	}

	products, err := pc.catalog.List(c.Request.Context(), c.Query("category"), onlyAvailable)
	if err != nil {
		writeError(c, pc.logger, err, "")
		return
	}
	c.JSON(http.StatusOK, models.ProductListResponse{Products: products})
}

// GetProduct handles GET /products/:id
func (pc *ProductController) GetProduct(c *gin.Context) {
	product, err := pc.catalog.GetProduct(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeError(c, pc.logger, err, "")
		return
	}
	c.JSON(http.StatusOK, product)
}

// CreateProduct handles POST /admin/products
// Example request:
// POST /admin/products
// {
//   "nameEn": "Jasmine garland",
//   "nameTa": "மல்லிகை மாலை",
//   "category": "garland",
//   "price": 150,
//   "available": true,
//   "tiedLength": "1 muzham"
// }
// Example response: the created product with its id, 201 Created
func (pc *ProductController) CreateProduct(c *gin.Context) {
	var req models.CreateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	product, err := pc.catalog.Create(c.Request.Context(), &req)
	if err != nil {
		writeError(c, pc.logger, err, "")
		return
	}
	c.JSON(http.StatusCreated, product)
}

// UpdateProduct handles PATCH /admin/products/:id
// Example request:
// PATCH /admin/products/3f1c...
// {"price": 180, "available": false}
func (pc *ProductController) UpdateProduct(c *gin.Context) {
	var patch models.ProductPatch
	if err := c.ShouldBindJSON(&patch); err != nil {
		badRequest(c, err)
		return
	}

	product, err := pc.catalog.Update(c.Request.Context(), c.Param("id"), patch)
	if err != nil {
		writeError(c, pc.logger, err, "")
		return
	}
	c.JSON(http.StatusOK, product)
}

// SetAvailability handles PATCH /admin/products/:id/availability
// Example request:
// PATCH /admin/products/3f1c.../availability
// {"available": false}
func (pc *ProductController) SetAvailability(c *gin.Context) {
	var req models.SetAvailabilityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	if req.Available == nil {
		writeError(c, pc.logger, models.ValidationError("available is required"), "")
		return
	}

	product, err := pc.catalog.SetAvailability(c.Request.Context(), c.Param("id"), *req.Available)
	if err != nil {
		writeError(c, pc.logger, err, "")
		return
	}
	c.JSON(http.StatusOK, product)
}

// DeleteProduct handles DELETE /admin/products/:id
func (pc *ProductController) DeleteProduct(c *gin.Context) {
	if err := pc.catalog.Delete(c.Request.Context(), c.Param("id")); err != nil {
		writeError(c, pc.logger, err, "")
		return
	}
	c.Status(http.StatusNoContent)
}
