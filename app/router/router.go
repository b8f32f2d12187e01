package router

import (
	"crypto/subtle"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"pookadai/app/controller"
	"pookadai/models"
	"pookadai/service"
	"pookadai/utils"
)

// SessionHeader carries the shopper session id. It is echoed back, and
// generated when the client did not send one.
const SessionHeader = "X-Session-ID"

type Controllers struct {
	Product  *controller.ProductController
	Cart     *controller.CartController
	Checkout *controller.CheckoutController
	Order    *controller.OrderController
}

type Options struct {
	OwnerTokens     []string
	DefaultLanguage string
	Logger          *zap.Logger
}

// pingHandler handles GET /ping
func pingHandler(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func SetupRoutes(controllers *Controllers, opts Options) *gin.Engine {
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(requestLogger(logger))
	r.Use(authenticate(opts.OwnerTokens))
	r.Use(session(opts.DefaultLanguage))

	r.GET("/ping", pingHandler)

	// Storefront
	r.GET("/products", controllers.Product.ListProducts)
	r.GET("/products/:id", controllers.Product.GetProduct)

	r.GET("/cart", controllers.Cart.GetCart)
	r.POST("/cart/items", controllers.Cart.AddItem)
	r.PUT("/cart/items/:productId", controllers.Cart.SetQuantity)
	r.DELETE("/cart/items/:productId", controllers.Cart.RemoveItem)
	r.DELETE("/cart", controllers.Cart.ClearCart)

	r.POST("/checkout", controllers.Checkout.Checkout)
	r.GET("/orders/:id", controllers.Order.GetOrder)

	// Admin panel. Ownership is checked by the services.
	admin := r.Group("/admin")
	{
		admin.POST("/products", controllers.Product.CreateProduct)
		admin.PATCH("/products/:id", controllers.Product.UpdateProduct)
		admin.PATCH("/products/:id/availability", controllers.Product.SetAvailability)
		admin.DELETE("/products/:id", controllers.Product.DeleteProduct)

		admin.GET("/orders", controllers.Order.ListOrders)
		admin.GET("/orders/summary", controllers.Order.Summary)
		admin.PATCH("/orders/:id/status", controllers.Order.UpdateStatus)
	}

	return r
}

// requestLogger logs one line per request
func requestLogger(logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		logger.Info("request",
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("latency", time.Since(start)))
	}
}

// authenticate marks the request as the owner's when it carries one of tokens
// as a bearer token. Everyone else is a customer.
func authenticate(tokens []string) gin.HandlerFunc {
	return func(c *gin.Context) {
		role := models.RoleCustomer
		if token, ok := strings.CutPrefix(c.GetHeader("Authorization"), "Bearer "); ok && isOwnerToken(token, tokens) {
			role = models.RoleOwner
		}
		c.Request = c.Request.WithContext(service.WithRole(c.Request.Context(), role))
		c.Next()
	}
}

func isOwnerToken(token string, tokens []string) bool {
	token = strings.TrimSpace(token)
	if token == "" {
		return false
	}
	for _, t := range tokens {
		if subtle.ConstantTimeCompare([]byte(token), []byte(t)) == 1 {
			return true
		}
	}
	return false
}

// session resolves the shopper session id and display language
func session(defaultLanguage string) gin.HandlerFunc {
	return func(c *gin.Context) {
		sessionID := strings.TrimSpace(c.GetHeader(SessionHeader))
		if sessionID == "" {
			sessionID = uuid.NewString()
		}
		c.Header(SessionHeader, sessionID)
		c.Set(controller.SessionIDKey, sessionID)
		c.Request = c.Request.WithContext(service.WithSession(c.Request.Context(), sessionID))
		c.Set(controller.LanguageKey, utils.ResolveLanguage(c.Query("lang"), c.GetHeader("Accept-Language"), defaultLanguage))
		c.Next()
	}
}
