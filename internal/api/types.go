package api

import (
	"bytes"
	"encoding/json"
	"strings"

	"github.com/shopspring/decimal"
)

// flexString accepts a JSON string or an array of strings (joined).
type flexString string

func (f *flexString) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if len(b) == 0 || string(b) == "null" {
		*f = ""
		return nil
	}
	if b[0] == '[' {
		var ss []string
		if err := json.Unmarshal(b, &ss); err != nil {
			return err
		}
		*f = flexString(strings.Join(ss, ","))
		return nil
	}
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return err
	}
	*f = flexString(s)
	return nil
}

// productRef is a cart item's product reference: either the id itself or a
// populated document carrying _id.
type productRef string

func (p *productRef) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if len(b) > 0 && b[0] == '{' {
		var doc struct {
			ID    string `json:"_id"`
			AltID string `json:"id"`
		}
		if err := json.Unmarshal(b, &doc); err != nil {
			return err
		}
		*p = productRef(firstNonEmpty(doc.ID, doc.AltID))
		return nil
	}
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return err
	}
	*p = productRef(s)
	return nil
}

type productDTO struct {
	ID       string          `json:"_id"`
	AltID    string          `json:"id"`
	Title    string          `json:"title"`
	ItemName string          `json:"itemName"`
	SKU      string          `json:"sku"`
	Price    decimal.Decimal `json:"price"`
	Category string          `json:"category"`
	Types    flexString      `json:"types"`
	Type     flexString      `json:"type"`
	Image    string          `json:"image"`
	ImageRef string          `json:"imageRef"`
}

type paginationDTO struct {
	TotalProducts int `json:"totalProducts"`
	TotalPages    int `json:"totalPages"`
}

type productPageDTO struct {
	Products   []productDTO  `json:"products"`
	Pagination paginationDTO `json:"pagination"`
}

type messageDTO struct {
	Message string `json:"message"`
}

type cartItemDTO struct {
	ProductID productRef      `json:"productId"`
	Quantity  int             `json:"quantity"`
	Price     decimal.Decimal `json:"price"`
	Image     string          `json:"image"`
	ItemName  string          `json:"itemName"`
}

type cartDTO struct {
	Items []cartItemDTO `json:"items"`
}

type cartEnvelope struct {
	Message string   `json:"message"`
	Cart    *cartDTO `json:"cart"`
}

type addToCartItemDTO struct {
	ProductID string          `json:"productId"`
	Image     string          `json:"image"`
	ItemName  string          `json:"itemName"`
	Price     decimal.Decimal `json:"price"`
	Quantity  int             `json:"quantity"`
}

type addToCartDTO struct {
	Items []addToCartItemDTO `json:"items"`
}

type updateCartDTO struct {
	ProductID string `json:"productId"`
	Action    string `json:"action"`
}

type removeCartItemDTO struct {
	ProductID string `json:"productId"`
}

type profileDTO struct {
	Name      string `json:"name"`
	Email     string `json:"email"`
	Phone     string `json:"phone"`
	Role      string `json:"role"`
	Avatar    string `json:"avatar"`
	CreatedAt string `json:"createdAt"`
}

type profileEnvelope struct {
	Data *profileDTO `json:"data"`
}

func firstNonEmpty(ss ...string) string {
	for _, s := range ss {
		if s != "" {
			return s
		}
	}
	return ""
}
