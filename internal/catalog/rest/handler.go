package rest

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/dekorshop/dekorshop/internal/catalog/app"
	"github.com/dekorshop/dekorshop/internal/catalog/domain"
	"github.com/dekorshop/dekorshop/pkg/httpx"
)

// AdminGuard wraps handlers that require an admin session.
type AdminGuard func(http.HandlerFunc) http.HandlerFunc

type Handler struct {
	svc   *app.Service
	admin AdminGuard
}

func NewHandler(svc *app.Service, admin AdminGuard) *Handler {
	return &Handler{svc: svc, admin: admin}
}

func (h *Handler) Register(r *mux.Router) {
	r.HandleFunc("/products", h.list).Methods(http.MethodGet)
	r.HandleFunc("/products/featured", h.featured).Methods(http.MethodGet)
	r.HandleFunc("/products/search", h.search).Methods(http.MethodGet)
	r.HandleFunc("/products/{id}", h.get).Methods(http.MethodGet)
	r.HandleFunc("/categories/{category}/products", h.byCategory).Methods(http.MethodGet)

	r.HandleFunc("/products", h.admin(h.create)).Methods(http.MethodPost)
	r.HandleFunc("/products/{id}", h.admin(h.update)).Methods(http.MethodPatch)
	r.HandleFunc("/products/{id}", h.admin(h.delete)).Methods(http.MethodDelete)
	r.HandleFunc("/products/{id}/stock", h.admin(h.updateStock)).Methods(http.MethodPut)
}

func (h *Handler) writeErr(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, app.ErrNotFound):
		httpx.WriteError(w, http.StatusNotFound, "NOT_FOUND", "product not found")
	case errors.Is(err, app.ErrInvalidInput):
		httpx.WriteError(w, http.StatusBadRequest, "INVALID_ARGUMENT", "invalid product data")
	default:
		httpx.WriteError(w, http.StatusInternalServerError, "INTERNAL", "catalog error")
	}
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	var (
		products []domain.Product
		err      error
	)

	// ?sort=price|rating mirrors the storefront's sorted views.
	switch r.URL.Query().Get("sort") {
	case "price":
		products, err = h.svc.ProductsByPrice(r.Context())
	case "rating":
		products, err = h.svc.ProductsByRating(r.Context())
	default:
		products, err = h.svc.ListProducts(r.Context())
	}

	if err != nil {
		h.writeErr(w, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, products)
}

func (h *Handler) get(w http.ResponseWriter, r *http.Request) {
	p, err := h.svc.GetProduct(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		h.writeErr(w, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, p)
}

func (h *Handler) featured(w http.ResponseWriter, r *http.Request) {
	products, err := h.svc.FeaturedProducts(r.Context())
	if err != nil {
		h.writeErr(w, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, products)
}

func (h *Handler) search(w http.ResponseWriter, r *http.Request) {
	products, err := h.svc.SearchProducts(r.Context(), r.URL.Query().Get("q"))
	if err != nil {
		h.writeErr(w, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, products)
}

func (h *Handler) byCategory(w http.ResponseWriter, r *http.Request) {
	products, err := h.svc.ListByCategory(r.Context(), mux.Vars(r)["category"])
	if err != nil {
		h.writeErr(w, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, products)
}

func (h *Handler) create(w http.ResponseWriter, r *http.Request) {
	var p domain.Product
	if !httpx.Decode(w, r, &p) {
		return
	}

	created, err := h.svc.CreateProduct(r.Context(), p)
	if err != nil {
		h.writeErr(w, err)
		return
	}
	httpx.WriteJSON(w, http.StatusCreated, created)
}

func (h *Handler) update(w http.ResponseWriter, r *http.Request) {
	var upd domain.ProductUpdate
	if !httpx.Decode(w, r, &upd) {
		return
	}

	updated, err := h.svc.UpdateProduct(r.Context(), mux.Vars(r)["id"], upd)
	if err != nil {
		h.writeErr(w, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, updated)
}

func (h *Handler) delete(w http.ResponseWriter, r *http.Request) {
	if err := h.svc.DeleteProduct(r.Context(), mux.Vars(r)["id"]); err != nil {
		h.writeErr(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) updateStock(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Stock int `json:"stock"`
	}
	if !httpx.Decode(w, r, &req) {
		return
	}

	updated, err := h.svc.UpdateStock(r.Context(), mux.Vars(r)["id"], req.Stock)
	if err != nil {
		h.writeErr(w, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, updated)
}
