package web

import (
	"net/http"

	"storefront/internal/order"
	"storefront/internal/utils"
)

// OrderHistory serves GET /orders for the signed-in user.
func (h *Handler) OrderHistory(w http.ResponseWriter, r *http.Request) {
	userID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		h.redirectToLogin(w, r, pageOrders)
		return
	}

	orders, err := h.orders.GetHistory(r.Context(), userID)
	if err != nil {
		h.fail(w, r, pageOrders, err)
		return
	}

	h.count(pageOrders, outcomeOK)
	h.render(w, r, pageOrders, http.StatusOK, newHistoryPage(orders))
}

// Confirmation serves GET /confirmation?order_id=<n>, the receipt of one
// order owned by the signed-in user.
func (h *Handler) Confirmation(w http.ResponseWriter, r *http.Request) {
	userID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		h.redirectToLogin(w, r, pageConfirmation)
		return
	}

	orderID, err := utils.ParsePositiveID(r.URL.Query().Get("order_id"))
	if err != nil {
		h.fail(w, r, pageConfirmation, order.ErrInvalidOrderID)
		return
	}

	receipt, err := h.orders.GetReceipt(r.Context(), orderID, userID)
	if err != nil {
		h.fail(w, r, pageConfirmation, err)
		return
	}

	h.count(pageConfirmation, outcomeOK)
	h.render(w, r, pageConfirmation, http.StatusOK, newReceiptPage(receipt))
}
