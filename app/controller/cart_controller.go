package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"pookadai/models"
	"pookadai/service"
	"pookadai/utils"
)

// Keys set on the gin context by the session middleware
const (
	SessionIDKey = "session_id"
	LanguageKey  = "language"
)

// CartController handles HTTP requests for the shopper's cart
type CartController struct {
	registry *service.CartRegistry
	catalog  service.CatalogProvider
	logger   *zap.Logger
}

// NewCartController creates a new CartController
func NewCartController(registry *service.CartRegistry, catalog service.CatalogProvider, logger *zap.Logger) *CartController {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &CartController{
		registry: registry,
		catalog:  catalog,
		logger:   logger,
	}
}

// GetCart handles GET /cart
// Example response:
// {
//   "lines": [{"productId": "p1", "displayName": "Jasmine garland", "unitPrice": 150, "quantity": 2}],
//   "count": 2,
//   "total": 300,
//   "formattedTotal": "₹300"
// }
// A session without a cart gets an empty one and nothing is stored.
func (cc *CartController) GetCart(c *gin.Context) {
	session, ok := cc.registry.Peek(c.GetString(SessionIDKey))
	if !ok {
		c.JSON(http.StatusOK, emptyCartResponse())
		return
	}
	c.JSON(http.StatusOK, cartResponse(session.Cart))
}

// AddItem handles POST /cart/items
// Example request:
// POST /cart/items
// {"productId": "p1"}
// Example response: the whole cart, 200 OK
func (cc *CartController) AddItem(c *gin.Context) {
	var req models.AddToCartRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	session, ok := cc.session(c)
	if !ok {
		return
	}

	if _, err := session.Cart.AddItem(c.Request.Context(), req.ProductID, cc.catalog); err != nil {
		writeError(c, cc.logger, err, "")
		return
	}
	c.JSON(http.StatusOK, cartResponse(session.Cart))
}

// SetQuantity handles PUT /cart/items/:productId
// Example request:
// PUT /cart/items/p1
// {"quantity": 3}
// A quantity of 0 or less removes the line.
func (cc *CartController) SetQuantity(c *gin.Context) {
	var req models.SetQuantityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	session, ok := cc.registry.Peek(c.GetString(SessionIDKey))
	if !ok {
		if req.Quantity > 0 {
			writeError(c, cc.logger, models.NotFoundError("product %s is not in the cart", c.Param("productId")), "")
			return
		}
		c.JSON(http.StatusOK, emptyCartResponse())
		return
	}

	if err := session.Cart.SetQuantity(c.Param("productId"), req.Quantity); err != nil {
		writeError(c, cc.logger, err, "")
		return
	}
	c.JSON(http.StatusOK, cartResponse(session.Cart))
}

// RemoveItem handles DELETE /cart/items/:productId
func (cc *CartController) RemoveItem(c *gin.Context) {
	session, ok := cc.registry.Peek(c.GetString(SessionIDKey))
	if !ok {
		c.JSON(http.StatusOK, emptyCartResponse())
		return
	}
	session.Cart.RemoveItem(c.Param("productId"))
	c.JSON(http.StatusOK, cartResponse(session.Cart))
}

// ClearCart handles DELETE /cart
func (cc *CartController) ClearCart(c *gin.Context) {
	session, ok := cc.registry.Peek(c.GetString(SessionIDKey))
	if !ok {
		c.JSON(http.StatusOK, emptyCartResponse())
		return
	}
	session.Cart.Clear()
	c.JSON(http.StatusOK, cartResponse(session.Cart))
}

// session returns the caller's cart session, creating it on first use
func (cc *CartController) session(c *gin.Context) (*service.CartSession, bool) {
	session, err := cc.registry.Get(c.GetString(SessionIDKey), c.GetString(LanguageKey))
	if err != nil {
		writeError(c, cc.logger, err, "")
		return nil, false
	}
	return session, true
}

func emptyCartResponse() models.CartResponse {
	return models.CartResponse{
		Lines:          []models.CartLine{},
		FormattedTotal: utils.FormatINR(0),
	}
}

func cartResponse(cart *service.CartStore) models.CartResponse {
	lines, total := cart.Checkout()
	count := 0
	for _, line := range lines {
		count += line.Quantity
	}
	return models.CartResponse{
		Lines:          lines,
		Count:          count,
		Total:          total,
		FormattedTotal: utils.FormatINR(total),
	}
}
