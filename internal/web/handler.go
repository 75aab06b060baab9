package web

import (
	"encoding/json"
	"errors"
	"net/http"

	"storefront/internal/logger"
	"storefront/internal/metrics"
	"storefront/internal/order"
	"storefront/internal/product"

	"go.uber.org/zap"
)

const (
	msgInvalidProduct  = "Error: Invalid Product ID provided."
	msgInvalidOrder    = "Error: Invalid Order ID."
	msgProductNotFound = "Product not found. It may have been removed."
	msgOrderNotFound   = "Order not found or you do not have permission to view it."
	msgServerError     = "Something went wrong while loading this page. Please try again later."
)

// Outcome labels used for page counters.
const (
	outcomeOK           = "ok"
	outcomeInvalidInput = "invalid_input"
	outcomeNotFound     = "not_found"
	outcomeError        = "error"
	outcomeRedirect     = "login_redirect"
)

type Handler struct {
	products  product.Service
	orders    order.Service
	pages     pages
	stats     *metrics.Registry
	loginPath string
}

func NewHandler(products product.Service, orders order.Service, stats *metrics.Registry, loginPath string) (*Handler, error) {
	set, err := parsePages()
	if err != nil {
		return nil, err
	}
	if stats == nil {
		stats = metrics.NewRegistry()
	}

	return &Handler{
		products:  products,
		orders:    orders,
		pages:     set,
		stats:     stats,
		loginPath: loginPath,
	}, nil
}

// failure is what the caller sees for an error. Detail stays in the logs.
type failure struct {
	status  int
	message string
	outcome string
}

func classify(err error) failure {
	switch {
	case errors.Is(err, product.ErrInvalidProductID):
		return failure{http.StatusBadRequest, msgInvalidProduct, outcomeInvalidInput}
	case errors.Is(err, order.ErrInvalidOrderID):
		return failure{http.StatusBadRequest, msgInvalidOrder, outcomeInvalidInput}
	case errors.Is(err, product.ErrProductNotFound):
		return failure{http.StatusNotFound, msgProductNotFound, outcomeNotFound}
	case errors.Is(err, order.ErrOrderNotFound):
		return failure{http.StatusNotFound, msgOrderNotFound, outcomeNotFound}
	default:
		return failure{http.StatusInternalServerError, msgServerError, outcomeError}
	}
}

func (h *Handler) fail(w http.ResponseWriter, r *http.Request, page string, err error) {
	if errors.Is(err, order.ErrUnauthenticated) {
		h.redirectToLogin(w, r, page)
		return
	}

	f := classify(err)
	h.count(page, f.outcome)

	log := logger.FromCtx(r.Context()).With(
		zap.String("layer", "web"),
		zap.String("page", page),
		zap.Int("status", f.status),
	)
	if f.status == http.StatusInternalServerError {
		log.Error("page failed", zap.Error(err))
	} else {
		log.Info("page rejected", zap.String("reason", err.Error()))
	}

	h.render(w, r, pageError, f.status, errorPage{Title: storeName, Message: f.message})
}

func (h *Handler) redirectToLogin(w http.ResponseWriter, r *http.Request, page string) {
	h.count(page, outcomeRedirect)
	http.Redirect(w, r, h.loginPath, http.StatusFound)
}

func (h *Handler) count(page, outcome string) {
	h.stats.Counter(page + "." + outcome).Inc()
}

// Health reports liveness plus page outcome counters.
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(map[string]any{
		"status": "OK",
		"pages":  h.stats.Snapshot(),
	})
}
