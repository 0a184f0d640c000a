package api

import (
	"context"
	"net/http"

	"storefront-client/internal/cart"
)

func (c *Client) GetCart(ctx context.Context) ([]cart.Item, error) {
	var env cartEnvelope
	if err := c.do(ctx, request{method: http.MethodGet, path: "/cart/get-cart"}, &env); err != nil {
		return nil, err
	}
	return mapCart(env), nil
}

func (c *Client) UpdateCart(ctx context.Context, productID string, action cart.Action) ([]cart.Item, error) {
	req, err := jsonRequest(http.MethodPut, "/cart/update-cart", updateCartDTO{
		ProductID: productID,
		Action:    string(action),
	})
	if err != nil {
		return nil, err
	}

	var env cartEnvelope
	if err := c.do(ctx, req, &env); err != nil {
		return nil, err
	}
	return mapCart(env), nil
}

// RemoveCartItem returns the server message with the remaining items.
func (c *Client) RemoveCartItem(ctx context.Context, productID string) (string, []cart.Item, error) {
	req, err := jsonRequest(http.MethodDelete, "/cart/remove-item", removeCartItemDTO{ProductID: productID})
	if err != nil {
		return "", nil, err
	}

	var env cartEnvelope
	if err := c.do(ctx, req, &env); err != nil {
		return "", nil, err
	}
	return env.Message, mapCart(env), nil
}

func (c *Client) AddToCart(ctx context.Context, items []cart.NewItem) (string, error) {
	req, err := jsonRequest(http.MethodPost, "/cart/add-to-cart", mapNewItems(items))
	if err != nil {
		return "", err
	}

	var res messageDTO
	if err := c.do(ctx, req, &res); err != nil {
		return "", err
	}
	return res.Message, nil
}
