package product

import "errors"

var (
	ErrInvalidProductID   = errors.New("invalid product id")
	ErrProductNotFound    = errors.New("product not found")
	ErrProductQueryFailed = errors.New("failed to query catalog")
)
