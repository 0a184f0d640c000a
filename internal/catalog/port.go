package catalog

import (
	"context"

	"storefront-client/internal/cart"
	"storefront-client/internal/product"
)

// Backend is the product half of the REST backend.
type Backend interface {
	ListProducts(ctx context.Context, page, limit int) (product.Page, error)
	FilterByType(ctx context.Context, t string) ([]product.Product, error)
	AddProduct(ctx context.Context, f product.Form) (string, error)
	UpdateProduct(ctx context.Context, id string, f product.Form) (product.Product, error)
	DeleteProduct(ctx context.Context, id string) (string, error)
}

// CartAdder receives add-to-cart requests; the cart owns its own state.
type CartAdder interface {
	AddItem(ctx context.Context, item cart.NewItem) error
}
