package catalog

import (
	"context"
	"errors"

	"storefront-client/internal/cart"
	"storefront-client/internal/logger"
	"storefront-client/internal/notify"
	"storefront-client/internal/product"

	"go.uber.org/zap"
)

const (
	msgAddedToCart    = "Added to cart"
	msgAddToCartFail  = "Failed to add to cart"
	msgRemoved        = "Product removed successfully"
	msgRemoveFail     = "Failed to remove product"
	msgUpdated        = "Product updated successfully"
	msgUpdateFail     = "Failed to update product"
	msgProductAdded   = "Product added successfully"
	msgProductAddFail = "Failed to add product"
)

// find returns a copy of the loaded product with id.
func (c *Controller) find(id string) (product.Product, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	i := product.IndexByID(c.raw, id)
	if i < 0 {
		return product.Product{}, false
	}
	return c.raw[i], true
}

// AddToCart sends one unit of a listed product to the cart. The local cart
// is not touched here; the cart reconciles itself from the backend.
func (c *Controller) AddToCart(ctx context.Context, id string) error {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "catalog"),
		zap.String("method", "AddToCart"),
		zap.String("product_id", id),
	)

	if c.cart == nil {
		return ErrNoCart
	}
	p, ok := c.find(id)
	if !ok {
		return ErrProductNotFound
	}

	err := c.cart.AddItem(ctx, cart.NewItem{
		ProductID: p.ID,
		Image:     p.ImageRef,
		ItemName:  p.Title,
		Price:     p.Price,
		Quantity:  1,
	})
	if err != nil {
		log.Error("failed to add to cart", zap.Error(err))
		c.notifier.Error(notify.MessageOf(err, msgAddToCartFail))
		return notify.Reported(err)
	}

	log.Info("added to cart")
	c.notifier.Success(msgAddedToCart)
	return nil
}

// RequestDelete is the first step of a delete: it remembers id and returns
// the product for the confirmation prompt.
func (c *Controller) RequestDelete(id string) (product.Product, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	i := product.IndexByID(c.raw, id)
	if i < 0 {
		return product.Product{}, ErrProductNotFound
	}
	c.pendingDelete = id
	return c.raw[i], nil
}

func (c *Controller) CancelDelete() {
	c.mu.Lock()
	c.pendingDelete = ""
	c.mu.Unlock()
}

// ConfirmDelete commits the pending delete. On success the product leaves
// the raw set and the page is clamped back into range. Unfiltered pages are
// then refetched so the gap is filled from the server.
func (c *Controller) ConfirmDelete(ctx context.Context) error {
	c.mu.Lock()
	id := c.pendingDelete
	c.pendingDelete = ""
	c.mu.Unlock()

	if id == "" {
		return ErrNoPendingDelete
	}

	log := logger.FromCtx(ctx).With(
		zap.String("layer", "catalog"),
		zap.String("method", "ConfirmDelete"),
		zap.String("product_id", id),
	)

	msg, err := c.backend.DeleteProduct(ctx, id)
	if err != nil {
		log.Error("failed to delete product", zap.Error(err))
		c.notifier.Error(notify.MessageOf(err, msgRemoveFail))
		return notify.Reported(err)
	}

	c.mu.Lock()
	if i := product.IndexByID(c.raw, id); i >= 0 {
		c.raw = append(c.raw[:i:i], c.raw[i+1:]...)
		if c.totalCount > 0 {
			c.totalCount--
		}
	}
	c.reclamp()
	if c.preview != nil && c.preview.ID == id {
		c.preview = nil
	}
	_, serverMode := c.sel.(Unfiltered)
	sel, page := c.sel, c.page
	c.mu.Unlock()

	log.Info("product deleted")
	if msg == "" {
		msg = msgRemoved
	}
	c.notifier.Success(msg)

	if serverMode {
		// A failed refill is already reported by run.
		_ = c.run(ctx, "ConfirmDelete", sel, page)
	}
	return nil
}

// Delete runs both steps at once; confirm decides the second.
func (c *Controller) Delete(ctx context.Context, id string, confirm func(product.Product) bool) error {
	p, err := c.RequestDelete(id)
	if err != nil {
		return err
	}
	if confirm == nil || !confirm(p) {
		c.CancelDelete()
		return ErrNotConfirmed
	}
	return c.ConfirmDelete(ctx)
}

// BeginEdit returns a form pre-filled from the listed product.
func (c *Controller) BeginEdit(id string) (product.Form, error) {
	p, ok := c.find(id)
	if !ok {
		return product.Form{}, ErrProductNotFound
	}
	return product.FormFrom(p), nil
}

// SubmitEdit validates f, sends it, and merges the server's product into the
// raw set. A product that no longer matches the active filter leaves it.
func (c *Controller) SubmitEdit(ctx context.Context, id string, f product.Form) error {
	if err := f.Validate(false); err != nil {
		return err
	}

	log := logger.FromCtx(ctx).With(
		zap.String("layer", "catalog"),
		zap.String("method", "SubmitEdit"),
		zap.String("product_id", id),
	)

	updated, err := c.backend.UpdateProduct(ctx, id, f)
	if err != nil {
		log.Error("failed to update product", zap.Error(err))
		c.notifier.Error(notify.MessageOf(err, msgUpdateFail))
		return notify.Reported(err)
	}

	c.mu.Lock()
	if i := product.IndexByID(c.raw, id); i >= 0 {
		if matches(c.sel, updated) {
			c.raw[i] = updated
		} else {
			c.raw = append(c.raw[:i:i], c.raw[i+1:]...)
			if c.totalCount > 0 {
				c.totalCount--
			}
			c.reclamp()
		}
	}
	seen := product.Product{Type: updated.Type}
	if matches(c.sel, updated) {
		seen.Category = updated.Category
	}
	c.facets = c.facets.Merge(product.FacetsOf([]product.Product{seen}))
	if c.preview != nil && c.preview.ID == id {
		p := updated
		c.preview = &p
	}
	c.mu.Unlock()

	log.Info("product updated")
	c.notifier.Success(msgUpdated)
	return nil
}

// AddProduct validates and posts a new product, then reloads the current
// view so the server-assigned id shows up.
func (c *Controller) AddProduct(ctx context.Context, f product.Form) error {
	if err := f.Validate(true); err != nil {
		return err
	}

	log := logger.FromCtx(ctx).With(
		zap.String("layer", "catalog"),
		zap.String("method", "AddProduct"),
		zap.String("sku", f.SKU),
	)

	msg, err := c.backend.AddProduct(ctx, f)
	if err != nil {
		log.Error("failed to add product", zap.Error(err))
		c.notifier.Error(notify.MessageOf(err, msgProductAddFail))
		return notify.Reported(err)
	}

	log.Info("product added")
	if msg == "" {
		msg = msgProductAdded
	}
	c.notifier.Success(msg)

	if err := c.Load(ctx); err != nil && !errors.Is(err, ErrStaleResponse) {
		log.Warn("reload after add failed", zap.Error(err))
	}
	return nil
}

// Preview opens the image preview of a listed product.
func (c *Controller) Preview(id string) (product.Product, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	i := product.IndexByID(c.raw, id)
	if i < 0 {
		return product.Product{}, ErrProductNotFound
	}
	p := c.raw[i]
	c.preview = &p
	return p, nil
}

func (c *Controller) ClosePreview() {
	c.mu.Lock()
	c.preview = nil
	c.mu.Unlock()
}

func matches(sel Selection, p product.Product) bool {
	switch s := sel.(type) {
	case Unfiltered:
		return true
	case Filtered:
		if s.Type != "" && p.Type != s.Type {
			return false
		}
		if s.Category != "" && p.Category != s.Category {
			return false
		}
		return true
	default:
		panic("catalog: unknown selection")
	}
}
