package cart

import (
	"context"
	"strings"
	"sync"

	"storefront-client/internal/logger"
	"storefront-client/internal/notify"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

const (
	msgLoadFail   = "Failed to load cart"
	msgUpdateFail = "Failed to update cart"
	msgRemoveFail = "Failed to remove item"
	msgRemoved    = "Item removed from cart"
)

// Backend is the cart half of the REST client.
type Backend interface {
	GetCart(ctx context.Context) ([]Item, error)
	UpdateCart(ctx context.Context, productID string, action Action) ([]Item, error)
	RemoveCartItem(ctx context.Context, productID string) (string, []Item, error)
	AddToCart(ctx context.Context, items []NewItem) (string, error)
}

// Controller holds the cart as last reported by the backend. Every change
// goes to the backend first and the local items are replaced by its answer.
type Controller struct {
	backend  Backend
	notifier notify.Notifier

	mu         sync.Mutex
	items      []Item
	clientName string
}

func NewController(backend Backend, notifier notify.Notifier) *Controller {
	return &Controller{backend: backend, notifier: notifier}
}

// Load replaces the local cart with the backend's.
func (c *Controller) Load(ctx context.Context) error {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "cart"),
		zap.String("method", "Load"),
	)

	items, err := c.backend.GetCart(ctx)
	if err != nil {
		log.Error("failed to load cart", zap.Error(err))
		c.notifier.Error(notify.MessageOf(err, msgLoadFail))
		return notify.Reported(err)
	}

	c.set(items)
	log.Debug("cart loaded", zap.Int("items", len(items)))
	return nil
}

func (c *Controller) Increase(ctx context.Context, productID string) error {
	return c.update(ctx, productID, ActionIncrease)
}

// Decrease is sent even at quantity 1; the backend decides whether the
// line goes away.
func (c *Controller) Decrease(ctx context.Context, productID string) error {
	return c.update(ctx, productID, ActionDecrease)
}

func (c *Controller) update(ctx context.Context, productID string, action Action) error {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "cart"),
		zap.String("method", "UpdateCart"),
		zap.String("product_id", productID),
		zap.String("action", string(action)),
	)

	if err := c.known(ctx, productID); err != nil {
		return err
	}

	items, err := c.backend.UpdateCart(ctx, productID, action)
	if err != nil {
		log.Error("failed to update cart", zap.Error(err))
		c.notifier.Error(notify.MessageOf(err, msgUpdateFail))
		return notify.Reported(err)
	}

	c.set(items)
	log.Info("cart updated", zap.Int("items", len(items)))
	return nil
}

func (c *Controller) Remove(ctx context.Context, productID string) error {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "cart"),
		zap.String("method", "Remove"),
		zap.String("product_id", productID),
	)

	if err := c.known(ctx, productID); err != nil {
		return err
	}

	msg, items, err := c.backend.RemoveCartItem(ctx, productID)
	if err != nil {
		log.Error("failed to remove cart item", zap.Error(err))
		c.notifier.Error(notify.MessageOf(err, msgRemoveFail))
		return notify.Reported(err)
	}

	c.set(items)
	if msg == "" {
		msg = msgRemoved
	}
	c.notifier.Success(msg)
	log.Info("cart item removed", zap.Int("items", len(items)))
	return nil
}

// AddItem posts item and then reloads the cart, so quantities merged by the
// backend show up. Notifying about the add is left to the caller.
func (c *Controller) AddItem(ctx context.Context, item NewItem) error {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "cart"),
		zap.String("method", "AddItem"),
		zap.String("product_id", item.ProductID),
	)

	if strings.TrimSpace(item.ProductID) == "" {
		return ErrInvalidProductID
	}
	if item.Quantity <= 0 {
		return ErrInvalidQuantity
	}

	if _, err := c.backend.AddToCart(ctx, []NewItem{item}); err != nil {
		log.Error("failed to add to cart", zap.Error(err))
		return err
	}

	items, err := c.backend.GetCart(ctx)
	if err != nil {
		// The add went through; the next Load catches up.
		log.Warn("cart refetch after add failed", zap.Error(err))
		return nil
	}
	c.set(items)
	return nil
}

// Items returns a copy of the cart lines.
func (c *Controller) Items() []Item {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]Item, len(c.items))
	copy(out, c.items)
	return out
}

func (c *Controller) Total() decimal.Decimal {
	c.mu.Lock()
	defer c.mu.Unlock()
	return Total(c.items)
}

func (c *Controller) Empty() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.items) == 0
}

func (c *Controller) SetClientName(name string) {
	c.mu.Lock()
	c.clientName = strings.TrimSpace(name)
	c.mu.Unlock()
}

func (c *Controller) ClientName() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.clientName
}

// Checkout summarises the cart for payment.
func (c *Controller) Checkout() (Summary, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if len(c.items) == 0 {
		return Summary{}, ErrCartEmpty
	}
	if c.clientName == "" {
		return Summary{}, ErrClientName
	}
	return Summary{
		ClientName: c.clientName,
		Items:      append([]Item(nil), c.items...),
		Total:      Total(c.items),
	}, nil
}

// known loads the cart first when it has never been fetched.
func (c *Controller) known(ctx context.Context, productID string) error {
	if strings.TrimSpace(productID) == "" {
		return ErrInvalidProductID
	}
	c.mu.Lock()
	loaded := c.items != nil
	c.mu.Unlock()
	if !loaded {
		if err := c.Load(ctx); err != nil {
			return err
		}
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	for _, it := range c.items {
		if it.ProductID == productID {
			return nil
		}
	}
	return ErrCartItemNotFound
}

func (c *Controller) set(items []Item) {
	if items == nil {
		items = []Item{}
	}
	c.mu.Lock()
	c.items = items
	c.mu.Unlock()
}
