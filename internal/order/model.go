package order

import (
	"time"

	"github.com/shopspring/decimal"
)

// Summary is one row of a user's order history.
type Summary struct {
	ID        int64           `db:"id"`
	OrderDate time.Time       `db:"order_date"`
	Total     decimal.Decimal `db:"order_total"`
	Status    string          `db:"order_status"`
}

// Order is a finalized purchase owned by exactly one user. Orders are
// created by checkout elsewhere and only read here.
type Order struct {
	Summary
	UserID int64 `db:"user_id"`
}

// LineItem is one purchased variant. UnitPrice is the price at purchase time;
// name, size and colour come from the current catalog.
type LineItem struct {
	Quantity    int             `db:"quantity"`
	UnitPrice   decimal.Decimal `db:"unit_price"`
	ProductName string          `db:"name"`
	Size        *string         `db:"size"`
	Colour      *string         `db:"colour"`
}

// Receipt is an owned order together with its line items.
type Receipt struct {
	Order *Order
	Items []LineItem
}
