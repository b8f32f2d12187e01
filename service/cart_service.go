package service

import (
	"context"
	"strings"
	"sync"

	"go.uber.org/zap"

	"pookadai/models"
)

// CartStore holds the line items of one shopper's cart.
// Lines keep insertion order; there is at most one line per product.
type CartStore struct {
	mu       sync.Mutex
	language string
	lines    []models.CartLine
	logger   *zap.Logger
}

// NewCartStore creates an empty cart whose display names are resolved in language
func NewCartStore(language string, logger *zap.Logger) *CartStore {
	if logger == nil {
		logger = zap.NewNop()
	}
	if language == "" {
		language = models.LanguageEnglish
	}
	return &CartStore{
		language: language,
		logger:   logger,
	}
}

// AddItem adds one unit of productID, copying price, name and attributes from
// the catalog at call time. Re-adding an existing product increments its quantity.
func (c *CartStore) AddItem(ctx context.Context, productID string, catalog CatalogProvider) (models.CartLine, error) {
	productID = strings.TrimSpace(productID)
	if productID == "" {
		return models.CartLine{}, models.ValidationError("productId is required")
	}

	product, err := catalog.GetProduct(ctx, productID)
	if err != nil {
		c.logger.Warn("add to cart: product lookup failed", zap.String("product_id", productID), zap.Error(err))
		return models.CartLine{}, err
	}
	if !product.Available {
		return models.CartLine{}, models.NotFoundError("product %s is not available", productID)
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if i := c.indexOf(productID); i >= 0 {
		c.lines[i].Quantity++
		c.logger.Debug("cart line incremented", zap.String("product_id", productID), zap.Int("quantity", c.lines[i].Quantity))
		return c.lines[i], nil
	}

	line := models.CartLine{
		ProductID:    product.ID,
		DisplayName:  product.DisplayName(c.language),
		UnitPrice:    product.Price,
		Quantity:     1,
		TiedLength:   product.TiedLength,
		BallQuantity: product.BallQuantity,
	}
	c.lines = append(c.lines, line)
	c.logger.Debug("cart line added", zap.String("product_id", productID), zap.Int64("unit_price", line.UnitPrice))
	return line, nil
}

// SetQuantity sets the quantity of productID exactly. quantity <= 0 removes the line.
func (c *CartStore) SetQuantity(productID string, quantity int) error {
	if quantity <= 0 {
		c.RemoveItem(productID)
		return nil
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	i := c.indexOf(productID)
	if i < 0 {
		return models.NotFoundError("product %s is not in the cart", productID)
	}
	c.lines[i].Quantity = quantity
	return nil
}

// RemoveItem removes the line for productID; absent products are ignored
func (c *CartStore) RemoveItem(productID string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if i := c.indexOf(productID); i >= 0 {
		c.lines = append(c.lines[:i], c.lines[i+1:]...)
	}
}

// Clear empties the cart
func (c *CartStore) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.lines = nil
}

// RemoveOrdered subtracts the ordered quantities from the cart. Lines added
// or raised after the order snapshot was taken stay in the cart.
func (c *CartStore) RemoveOrdered(ordered []models.CartLine) {
	c.mu.Lock()
	defer c.mu.Unlock()

	for _, line := range ordered {
		i := c.indexOf(line.ProductID)
		if i < 0 {
			continue
		}
		c.lines[i].Quantity -= line.Quantity
		if c.lines[i].Quantity <= 0 {
			c.lines = append(c.lines[:i], c.lines[i+1:]...)
		}
	}
}

// Total returns Σ unitPrice*quantity, 0 for an empty cart
func (c *CartStore) Total() int64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return models.SumLines(c.lines)
}

// Count returns Σ quantity, 0 for an empty cart
func (c *CartStore) Count() int {
	c.mu.Lock()
	defer c.mu.Unlock()

	count := 0
	for _, line := range c.lines {
		count += line.Quantity
	}
	return count
}

// Lines returns a copy of the cart lines in insertion order
func (c *CartStore) Lines() []models.CartLine {
	c.mu.Lock()
	defer c.mu.Unlock()
	return cloneLines(c.lines)
}

// Checkout returns a copy of the lines together with their total, read atomically
func (c *CartStore) Checkout() ([]models.CartLine, int64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return cloneLines(c.lines), models.SumLines(c.lines)
}

// Language returns the language display names are resolved in
func (c *CartStore) Language() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.language
}

// Snapshot returns the serializable state of the cart
func (c *CartStore) Snapshot() models.CartSnapshot {
	c.mu.Lock()
	defer c.mu.Unlock()
	return models.CartSnapshot{
		Language: c.language,
		Lines:    cloneLines(c.lines),
	}
}

// Restore replaces the cart state with snapshot. Lines with a non-positive
// quantity are dropped and duplicate products are merged.
func (c *CartStore) Restore(snapshot models.CartSnapshot) {
	lines := make([]models.CartLine, 0, len(snapshot.Lines))
	seen := make(map[string]int, len(snapshot.Lines))
	for _, line := range snapshot.Lines {
		if line.Quantity <= 0 || line.ProductID == "" {
			continue
		}
		if i, ok := seen[line.ProductID]; ok {
			lines[i].Quantity += line.Quantity
			continue
		}
		seen[line.ProductID] = len(lines)
		lines = append(lines, line)
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if snapshot.Language != "" {
		c.language = snapshot.Language
	}
	c.lines = lines
}

func (c *CartStore) indexOf(productID string) int {
	for i := range c.lines {
		if c.lines[i].ProductID == productID {
			return i
		}
	}
	return -1
}

func cloneLines(src []models.CartLine) []models.CartLine {
	out := make([]models.CartLine, len(src))
	copy(out, src)
	return out
}
