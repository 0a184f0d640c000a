package console

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"storefront-client/internal/cart"
	"storefront-client/internal/product"

	"github.com/shopspring/decimal"
)

// fakeBackend is an in-memory store behind the catalog, cart and session
// ports.
type fakeBackend struct {
	mu       sync.Mutex
	products []product.Product
	cart     []cart.Item
	added    []product.Form
	logouts  int
}

func newFakeBackend(n int) *fakeBackend {
	b := &fakeBackend{}
	for i := 1; i <= n; i++ {
		typ, cat := product.TypeCookware, "Pans"
		if i%3 == 0 {
			typ, cat = product.TypePremium, "Knives"
		}
		b.products = append(b.products, product.Product{
			ID:       fmt.Sprintf("p%02d", i),
			Title:    fmt.Sprintf("Product %d", i),
			SKU:      fmt.Sprintf("SKU-%d", i),
			Price:    decimal.NewFromInt(int64(i)),
			Category: cat,
			Type:     typ,
			ImageRef: fmt.Sprintf("https://img.test/p%02d.png", i),
		})
	}
	return b
}

func (b *fakeBackend) ListProducts(_ context.Context, page, limit int) (product.Page, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	total := len(b.products)
	start := min((page-1)*limit, total)
	end := min(start+limit, total)
	pages := (total + limit - 1) / limit
	return product.Page{
		Products:   append([]product.Product(nil), b.products[start:end]...),
		TotalCount: total,
		TotalPages: max(pages, 1),
	}, nil
}

func (b *fakeBackend) FilterByType(_ context.Context, t string) ([]product.Product, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	out := []product.Product{}
	for _, p := range b.products {
		if p.Type == t {
			out = append(out, p)
		}
	}
	return out, nil
}

func (b *fakeBackend) AddProduct(_ context.Context, f product.Form) (string, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	price, _ := f.ParsedPrice()
	b.added = append(b.added, f)
	b.products = append(b.products, product.Product{
		ID:       fmt.Sprintf("n%02d", len(b.added)),
		Title:    f.Title,
		SKU:      f.SKU,
		Price:    price,
		Category: f.Category,
		Type:     f.Type,
	})
	return "Product created", nil
}

func (b *fakeBackend) UpdateProduct(_ context.Context, id string, f product.Form) (product.Product, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	i := product.IndexByID(b.products, id)
	if i < 0 {
		return product.Product{}, errors.New("not found")
	}
	price, _ := f.ParsedPrice()
	p := b.products[i]
	p.Title, p.SKU, p.Price, p.Category, p.Type = f.Title, f.SKU, price, f.Category, f.Type
	b.products[i] = p
	return p, nil
}

func (b *fakeBackend) DeleteProduct(_ context.Context, id string) (string, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	i := product.IndexByID(b.products, id)
	if i < 0 {
		return "", errors.New("not found")
	}
	b.products = append(b.products[:i], b.products[i+1:]...)
	return "", nil
}

func (b *fakeBackend) GetCart(context.Context) ([]cart.Item, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return append([]cart.Item{}, b.cart...), nil
}

func (b *fakeBackend) UpdateCart(_ context.Context, productID string, action cart.Action) ([]cart.Item, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	for i := range b.cart {
		if b.cart[i].ProductID != productID {
			continue
		}
		if action == cart.ActionIncrease {
			b.cart[i].Quantity++
		} else if b.cart[i].Quantity--; b.cart[i].Quantity <= 0 {
			b.cart = append(b.cart[:i], b.cart[i+1:]...)
		}
		break
	}
	return append([]cart.Item{}, b.cart...), nil
}

func (b *fakeBackend) RemoveCartItem(_ context.Context, productID string) (string, []cart.Item, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	for i := range b.cart {
		if b.cart[i].ProductID == productID {
			b.cart = append(b.cart[:i], b.cart[i+1:]...)
			break
		}
	}
	return "Item removed", append([]cart.Item{}, b.cart...), nil
}

func (b *fakeBackend) AddToCart(_ context.Context, items []cart.NewItem) (string, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

next:
	for _, it := range items {
		for i := range b.cart {
			if b.cart[i].ProductID == it.ProductID {
				b.cart[i].Quantity += it.Quantity
				continue next
			}
		}
		b.cart = append(b.cart, cart.Item{
			ProductID: it.ProductID,
			Quantity:  it.Quantity,
			Price:     it.Price,
			Image:     it.Image,
			ItemName:  it.ItemName,
		})
	}
	return "Added", nil
}

func (b *fakeBackend) Logout(context.Context) error {
	b.mu.Lock()
	b.logouts++
	b.mu.Unlock()
	return nil
}
