package web

import (
	"net/http"

	"storefront/internal/product"
	"storefront/internal/utils"
)

// ProductPage serves GET /product?id=<n>.
func (h *Handler) ProductPage(w http.ResponseWriter, r *http.Request) {
	productID, err := utils.ParsePositiveID(r.URL.Query().Get("id"))
	if err != nil {
		h.fail(w, r, pageProduct, product.ErrInvalidProductID)
		return
	}

	detail, err := h.products.GetDetail(r.Context(), productID)
	if err != nil {
		h.fail(w, r, pageProduct, err)
		return
	}

	h.count(pageProduct, outcomeOK)
	h.render(w, r, pageProduct, http.StatusOK, newProductPage(detail))
}
