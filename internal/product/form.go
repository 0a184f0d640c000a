package product

import (
	"errors"
	"strings"

	"github.com/shopspring/decimal"
)

// Validate checks the required fields. requireImage is set when adding a
// product; edits may keep the stored image.
func (f Form) Validate(requireImage bool) error {
	errs := ValidationErrors{}

	if strings.TrimSpace(f.Title) == "" {
		errs["title"] = "Title is required"
	}
	if strings.TrimSpace(f.SKU) == "" {
		errs["sku"] = "SKU is required"
	}
	if strings.TrimSpace(f.Category) == "" {
		errs["category"] = "Category is required"
	}
	if strings.TrimSpace(f.Type) == "" {
		errs["types"] = "Type is required"
	}

	if strings.TrimSpace(f.Price) == "" {
		errs["price"] = "Price is required"
	} else if _, err := f.ParsedPrice(); errors.Is(err, ErrNegativePrice) {
		errs["price"] = "Price must be positive"
	} else if err != nil {
		errs["price"] = "Price must be a number"
	}

	if requireImage && (f.Image == nil || len(f.Image.Data) == 0) {
		errs["image"] = "Product image is required"
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// ParsedPrice returns the form price as a decimal.
func (f Form) ParsedPrice() (decimal.Decimal, error) {
	d, err := decimal.NewFromString(strings.TrimSpace(f.Price))
	if err != nil {
		return decimal.Zero, ErrMalformedPrice
	}
	if d.IsNegative() {
		return decimal.Zero, ErrNegativePrice
	}
	return d, nil
}

// Set assigns a field by its form name, as typed on the console.
func (f *Form) Set(field, value string) bool {
	switch strings.ToLower(field) {
	case "title":
		f.Title = value
	case "sku":
		f.SKU = value
	case "price":
		f.Price = value
	case "category":
		f.Category = value
	case "type", "types":
		f.Type = value
	default:
		return false
	}
	return true
}
