package cart

import "github.com/shopspring/decimal"

type Action string

const (
	ActionIncrease Action = "increase"
	ActionDecrease Action = "decrease"
)

// Item is one cart line. Price is the price at add time and is the one used
// for totals.
type Item struct {
	ProductID string
	Quantity  int
	Price     decimal.Decimal
	Image     string
	ItemName  string
}

func (i Item) Subtotal() decimal.Decimal {
	return i.Price.Mul(decimal.NewFromInt(int64(i.Quantity)))
}

// Total sums quantity x price over items.
func Total(items []Item) decimal.Decimal {
	total := decimal.Zero
	for _, it := range items {
		total = total.Add(it.Subtotal())
	}
	return total
}

// NewItem is the payload of an add-to-cart request.
type NewItem struct {
	ProductID string
	Image     string
	ItemName  string
	Price     decimal.Decimal
	Quantity  int
}

// Summary is what a checkout hands over; payment itself happens elsewhere.
type Summary struct {
	ClientName string
	Items      []Item
	Total      decimal.Decimal
}
