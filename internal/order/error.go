package order

import "errors"

var (
	// -- Authentication --
	ErrUnauthenticated = errors.New("user not authenticated")

	// -- Validation & Input --
	ErrInvalidOrderID = errors.New("invalid order id")

	// -- Resource State --
	// Returned both for missing orders and for orders owned by someone else.
	ErrOrderNotFound = errors.New("order not found")

	// -- Database & Operation Failures --
	ErrOrderQueryFailed = errors.New("failed to query orders")
)
