package product

import "github.com/shopspring/decimal"

type Product struct {
	ID          int64   `db:"id" json:"id"`
	Name        string  `db:"name" json:"name"`
	Description *string `db:"description" json:"description,omitempty"`
}

// Variant is a purchasable configuration of a product (a product_item row).
type Variant struct {
	ID            int64           `db:"id"`
	ProductID     int64           `db:"product_id"`
	Size          *string         `db:"size"`
	Colour        *string         `db:"colour"`
	Price         decimal.Decimal `db:"price"`
	StockQuantity int             `db:"stock_quantity"`
}

// Detail is everything the product page needs. Empty Variants means out of
// stock; empty ImageURLs means the placeholder image is shown.
type Detail struct {
	Product   *Product
	Variants  []Variant
	ImageURLs []string
}
