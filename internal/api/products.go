package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"mime/multipart"
	"net/http"
	"net/url"
	"strconv"

	"storefront-client/internal/product"
)

// ListProducts fetches one server page. Older backends answer with a bare
// array; that is treated as a single page holding everything.
func (c *Client) ListProducts(ctx context.Context, page, limit int) (product.Page, error) {
	q := url.Values{}
	q.Set("page", strconv.Itoa(page))
	q.Set("limit", strconv.Itoa(limit))

	var raw json.RawMessage
	err := c.do(ctx, request{method: http.MethodGet, path: "/product/get-all-products", query: q}, &raw)
	if err != nil {
		return product.Page{}, err
	}

	raw = bytes.TrimSpace(raw)
	if len(raw) > 0 && raw[0] == '[' {
		var ds []productDTO
		if err := json.Unmarshal(raw, &ds); err != nil {
			return product.Page{}, fmt.Errorf("%w: %w", ErrDecodeResponse, err)
		}
		return product.Page{Products: mapProducts(ds), TotalCount: len(ds), TotalPages: 1}, nil
	}

	var dto productPageDTO
	if len(raw) > 0 {
		if err := json.Unmarshal(raw, &dto); err != nil {
			return product.Page{}, fmt.Errorf("%w: %w", ErrDecodeResponse, err)
		}
	}
	return product.Page{
		Products:   mapProducts(dto.Products),
		TotalCount: dto.Pagination.TotalProducts,
		TotalPages: dto.Pagination.TotalPages,
	}, nil
}

// FilterByType returns every product of type t, unpaginated.
func (c *Client) FilterByType(ctx context.Context, t string) ([]product.Product, error) {
	q := url.Values{}
	q.Set("type", t)

	var ds []productDTO
	if err := c.do(ctx, request{method: http.MethodGet, path: "/product/filter-type", query: q}, &ds); err != nil {
		return nil, err
	}
	return mapProducts(ds), nil
}

// AddProduct posts a new product; the server assigns the id.
func (c *Client) AddProduct(ctx context.Context, f product.Form) (string, error) {
	body, contentType, err := encodeProductForm(f)
	if err != nil {
		return "", err
	}

	var res messageDTO
	err = c.do(ctx, request{
		method:      http.MethodPost,
		path:        "/product/add-product",
		body:        body,
		contentType: contentType,
	}, &res)
	if err != nil {
		return "", err
	}
	return res.Message, nil
}

// UpdateProduct resends every field; the image part is only sent when set.
func (c *Client) UpdateProduct(ctx context.Context, id string, f product.Form) (product.Product, error) {
	body, contentType, err := encodeProductForm(f)
	if err != nil {
		return product.Product{}, err
	}

	var d productDTO
	err = c.do(ctx, request{
		method:      http.MethodPut,
		path:        "/product/update-product/" + url.PathEscape(id),
		body:        body,
		contentType: contentType,
	}, &d)
	if err != nil {
		return product.Product{}, err
	}
	p := mapProduct(d)
	if p.ID == "" {
		p.ID = id
	}
	return p, nil
}

func (c *Client) DeleteProduct(ctx context.Context, id string) (string, error) {
	var res messageDTO
	err := c.do(ctx, request{
		method: http.MethodDelete,
		path:   "/product/delete-product/" + url.PathEscape(id),
	}, &res)
	if err != nil {
		return "", err
	}
	return res.Message, nil
}

func encodeProductForm(f product.Form) (*bytes.Buffer, string, error) {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)

	fields := [][2]string{
		{"title", f.Title},
		{"sku", f.SKU},
		{"price", f.Price},
		{"category", f.Category},
		{"types", f.Type},
	}
	for _, kv := range fields {
		if err := w.WriteField(kv[0], kv[1]); err != nil {
			return nil, "", fmt.Errorf("%w: %w", ErrEncodeRequest, err)
		}
	}

	if f.Image != nil && len(f.Image.Data) > 0 {
		part, err := w.CreateFormFile("image", f.Image.Name)
		if err != nil {
			return nil, "", fmt.Errorf("%w: %w", ErrEncodeRequest, err)
		}
		if _, err := part.Write(f.Image.Data); err != nil {
			return nil, "", fmt.Errorf("%w: %w", ErrEncodeRequest, err)
		}
	}

	if err := w.Close(); err != nil {
		return nil, "", fmt.Errorf("%w: %w", ErrEncodeRequest, err)
	}
	return &buf, w.FormDataContentType(), nil
}
