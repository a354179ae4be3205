package domain

import "errors"

var (
	// ErrNotFound indicates the requested entity was not found.
	ErrNotFound = errors.New("not found")

	// ErrProductNotFound indicates the product id does not resolve in the catalog.
	ErrProductNotFound = errors.New("product not found")

	// ErrItemNotFound indicates the product is not present in the cart.
	ErrItemNotFound = errors.New("product not in cart")

	// ErrInvalidQuantity rejects mutations that would leave a line item with a
	// non-positive quantity.
	ErrInvalidQuantity = errors.New("quantity must be greater than 0")
)
