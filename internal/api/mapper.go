package api

import (
	"time"

	"storefront-client/internal/cart"
	"storefront-client/internal/product"
	"storefront-client/internal/profile"
)

func mapProduct(d productDTO) product.Product {
	return product.Product{
		ID:       firstNonEmpty(d.ID, d.AltID),
		Title:    firstNonEmpty(d.Title, d.ItemName),
		SKU:      d.SKU,
		Price:    d.Price,
		Category: d.Category,
		Type:     firstNonEmpty(string(d.Types), string(d.Type)),
		ImageRef: firstNonEmpty(d.Image, d.ImageRef),
	}
}

func mapProducts(ds []productDTO) []product.Product {
	out := make([]product.Product, 0, len(ds))
	for _, d := range ds {
		out = append(out, mapProduct(d))
	}
	return out
}

func mapCart(env cartEnvelope) []cart.Item {
	if env.Cart == nil {
		return []cart.Item{}
	}
	items := make([]cart.Item, 0, len(env.Cart.Items))
	for _, d := range env.Cart.Items {
		items = append(items, cart.Item{
			ProductID: string(d.ProductID),
			Quantity:  d.Quantity,
			Price:     d.Price,
			Image:     d.Image,
			ItemName:  d.ItemName,
		})
	}
	return items
}

func mapNewItems(items []cart.NewItem) addToCartDTO {
	out := addToCartDTO{Items: make([]addToCartItemDTO, 0, len(items))}
	for _, it := range items {
		out.Items = append(out.Items, addToCartItemDTO{
			ProductID: it.ProductID,
			Image:     it.Image,
			ItemName:  it.ItemName,
			Price:     it.Price,
			Quantity:  it.Quantity,
		})
	}
	return out
}

func mapProfile(d profileDTO) profile.Profile {
	p := profile.Profile{
		Name:   d.Name,
		Email:  d.Email,
		Phone:  d.Phone,
		Role:   d.Role,
		Avatar: d.Avatar,
	}
	if t, err := time.Parse(time.RFC3339, d.CreatedAt); err == nil {
		p.CreatedAt = t
	}
	return p
}
