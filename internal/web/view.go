package web

import (
	"fmt"
	"html/template"

	"storefront/internal/format"
	"storefront/internal/order"
	"storefront/internal/product"
)

const (
	imageBase          = "/assets/images/"
	defaultImage       = imageBase + "default-product.png"
	defaultImageAlt    = "No image available"
	storeName          = "Our Store"
	cartAction         = "/cart"
	confirmationPrefix = "/confirmation?order_id="
)

type imageView struct {
	Src string
	Alt string
}

type variantView struct {
	ID    int64
	Label string
	Price string
	Stock int
}

type productPage struct {
	Title       string
	Name        string
	Description template.HTML
	Images      []imageView
	Variants    []variantView
	CartAction  string
}

type historyRow struct {
	ID        int64
	Date      string
	Total     string
	Status    string
	DetailURL string
}

type historyPage struct {
	Title  string
	Orders []historyRow
}

type receiptLine struct {
	Name      string
	Variant   string
	Quantity  int
	UnitPrice string
	Subtotal  string
}

type receiptPage struct {
	Title  string
	ID     int64
	Date   string
	Total  string
	Status string
	Items  []receiptLine
}

type errorPage struct {
	Title   string
	Message string
}

func newProductPage(d *product.Detail) productPage {
	p := d.Product

	var description template.HTML
	if p.Description != nil {
		description = format.Paragraphs(*p.Description)
	}

	images := make([]imageView, 0, len(d.ImageURLs))
	for _, url := range d.ImageURLs {
		images = append(images, imageView{Src: imageBase + url, Alt: p.Name})
	}
	if len(images) == 0 {
		images = append(images, imageView{Src: defaultImage, Alt: defaultImageAlt})
	}

	variants := make([]variantView, 0, len(d.Variants))
	for _, v := range d.Variants {
		variants = append(variants, variantView{
			ID:    v.ID,
			Label: format.VariantLabel(v.Size, v.Colour),
			Price: format.Currency(v.Price),
			Stock: v.StockQuantity,
		})
	}

	return productPage{
		Title:       p.Name + " - " + storeName,
		Name:        p.Name,
		Description: description,
		Images:      images,
		Variants:    variants,
		CartAction:  cartAction,
	}
}

func newHistoryPage(orders []order.Summary) historyPage {
	rows := make([]historyRow, 0, len(orders))
	for _, o := range orders {
		rows = append(rows, historyRow{
			ID:        o.ID,
			Date:      format.ShortDate(o.OrderDate),
			Total:     format.Currency(o.Total),
			Status:    format.Status(o.Status),
			DetailURL: fmt.Sprintf("%s%d", confirmationPrefix, o.ID),
		})
	}

	return historyPage{Title: "My Order History", Orders: rows}
}

func newReceiptPage(rc *order.Receipt) receiptPage {
	o := rc.Order

	lines := make([]receiptLine, 0, len(rc.Items))
	for _, item := range rc.Items {
		lines = append(lines, receiptLine{
			Name:      item.ProductName,
			Variant:   format.VariantLabel(item.Size, item.Colour),
			Quantity:  item.Quantity,
			UnitPrice: format.Currency(item.UnitPrice),
			Subtotal:  format.Currency(format.LineSubtotal(item.UnitPrice, item.Quantity)),
		})
	}

	return receiptPage{
		Title:  fmt.Sprintf("Order #%d Confirmation", o.ID),
		ID:     o.ID,
		Date:   format.LongDate(o.OrderDate),
		Total:  format.Currency(o.Total),
		Status: format.Status(o.Status),
		Items:  lines,
	}
}
