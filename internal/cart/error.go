package cart

import "errors"

var (
	// -- Validation & Input --
	ErrInvalidProductID = errors.New("product id is required")
	ErrInvalidQuantity  = errors.New("invalid cart quantity")

	// -- Resource State --
	ErrCartItemNotFound = errors.New("cart item not found")
	ErrCartEmpty        = errors.New("cart is empty")
	ErrClientName       = errors.New("client name is required")
)
