package web

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"net/http"

	"storefront/internal/logger"

	"go.uber.org/zap"
)

//go:embed templates/*.html
var templateFS embed.FS

const (
	pageProduct      = "product"
	pageOrders       = "orders"
	pageConfirmation = "confirmation"
	pageError        = "error"
)

// pages holds one template set per page, each combined with the shared layout.
type pages map[string]*template.Template

func parsePages() (pages, error) {
	set := make(pages)
	for _, name := range []string{pageProduct, pageOrders, pageConfirmation, pageError} {
		tmpl, err := template.ParseFS(templateFS, "templates/layout.html", "templates/"+name+".html")
		if err != nil {
			return nil, fmt.Errorf("parse %s template: %w", name, err)
		}
		set[name] = tmpl
	}
	return set, nil
}

// render writes the page only after the whole template executed, so a
// failure never leaves a half-written response.
func (h *Handler) render(w http.ResponseWriter, r *http.Request, page string, status int, data any) {
	var buf bytes.Buffer
	if err := h.pages[page].ExecuteTemplate(&buf, "layout", data); err != nil {
		logger.FromCtx(r.Context()).Error("template render failed",
			zap.String("page", page),
			zap.Error(err),
		)
		http.Error(w, msgServerError, http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, _ = buf.WriteTo(w)
}
