package catalog

import "errors"

var (
	ErrProductNotFound = errors.New("product not found in the current view")
	ErrNoPendingDelete = errors.New("no delete awaiting confirmation")
	ErrNotConfirmed    = errors.New("delete not confirmed")
	ErrNoCart          = errors.New("cart is not available")
	ErrStaleResponse   = errors.New("response superseded by a newer request")
)
