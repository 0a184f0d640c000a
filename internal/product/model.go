package product

import "github.com/shopspring/decimal"

// Type tags the backend is known to use. The vocabulary is driven by data,
// these only seed form hints.
const (
	TypePremium  = "premium"
	TypeCookware = "cookware"
	TypeDining   = "dining"
)

var KnownTypes = []string{TypePremium, TypeCookware, TypeDining}

type Product struct {
	ID       string
	Title    string
	SKU      string
	Price    decimal.Decimal
	Category string
	Type     string
	ImageRef string
}

// Page is one server-paginated listing.
type Page struct {
	Products   []Product
	TotalCount int
	TotalPages int
}

// ImageFile is an image selected for upload.
type ImageFile struct {
	Name string
	Data []byte
}

// Form holds the editable fields of a product. Every field is resent on
// update; Image is optional there.
type Form struct {
	Title    string
	SKU      string
	Price    string
	Category string
	Type     string
	Image    *ImageFile
}

// FormFrom seeds an edit form from an existing product.
func FormFrom(p Product) Form {
	return Form{
		Title:    p.Title,
		SKU:      p.SKU,
		Price:    p.Price.String(),
		Category: p.Category,
		Type:     p.Type,
	}
}

// IndexByID returns the position of id in ps, or -1.
func IndexByID(ps []Product, id string) int {
	for i := range ps {
		if ps[i].ID == id {
			return i
		}
	}
	return -1
}

// FilterByCategory keeps the products whose category equals c.
func FilterByCategory(ps []Product, c string) []Product {
	out := make([]Product, 0, len(ps))
	for _, p := range ps {
		if p.Category == c {
			out = append(out, p)
		}
	}
	return out
}
