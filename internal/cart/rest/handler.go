package rest

import (
	"context"
	"errors"
	"net/http"

	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"github.com/dekorshop/dekorshop/internal/cart/app"
	"github.com/dekorshop/dekorshop/internal/cart/domain"
	"github.com/dekorshop/dekorshop/pkg/httpx"
)

const sessionCookie = "cart_session"

// Catalog resolves product IDs to the cart's product copy. Unknown IDs
// come back as app.ErrUnknownProduct.
type Catalog interface {
	CartProduct(ctx context.Context, productID string) (domain.Product, error)
}

type Handler struct {
	sessions *app.Sessions
	catalog  Catalog
}

func NewHandler(sessions *app.Sessions, catalog Catalog) *Handler {
	return &Handler{sessions: sessions, catalog: catalog}
}

func (h *Handler) Register(r *mux.Router) {
	r.HandleFunc("/cart", h.get).Methods(http.MethodGet)
	r.HandleFunc("/cart", h.clear).Methods(http.MethodDelete)
	r.HandleFunc("/cart/items", h.addItem).Methods(http.MethodPost)
	r.HandleFunc("/cart/items/{productId}", h.updateQuantity).Methods(http.MethodPut)
	r.HandleFunc("/cart/items/{productId}", h.removeItem).Methods(http.MethodDelete)
}

// store resolves the session's cart, minting a session cookie on first
// contact.
func (h *Handler) store(w http.ResponseWriter, r *http.Request) *app.Store {
	var sessionID string
	if c, err := r.Cookie(sessionCookie); err == nil && c.Value != "" {
		sessionID = c.Value
	} else {
		sessionID = uuid.NewString()
		http.SetCookie(w, &http.Cookie{
			Name:     sessionCookie,
			Value:    sessionID,
			Path:     "/",
			HttpOnly: true,
			SameSite: http.SameSiteLaxMode,
		})
	}
	return h.sessions.For(r.Context(), sessionID)
}

type cartView struct {
	Items     []domain.LineItem `json:"items"`
	Total     int64             `json:"total"`
	ItemCount int               `json:"itemCount"`
}

func view(s *app.Store) cartView {
	return cartView{Items: s.Items(), Total: s.Total(), ItemCount: s.ItemCount()}
}

func (h *Handler) get(w http.ResponseWriter, r *http.Request) {
	httpx.WriteJSON(w, http.StatusOK, view(h.store(w, r)))
}

func (h *Handler) clear(w http.ResponseWriter, r *http.Request) {
	s := h.store(w, r)
	s.Clear(r.Context())
	httpx.WriteJSON(w, http.StatusOK, view(s))
}

func (h *Handler) addItem(w http.ResponseWriter, r *http.Request) {
	var req struct {
		ProductID string `json:"productId"`
		Quantity  int    `json:"quantity"`
	}
	if !httpx.Decode(w, r, &req) {
		return
	}

	product, err := h.catalog.CartProduct(r.Context(), req.ProductID)
	if errors.Is(err, app.ErrUnknownProduct) {
		httpx.WriteError(w, http.StatusNotFound, "NOT_FOUND", "product not found")
		return
	}
	if err != nil {
		httpx.WriteError(w, http.StatusInternalServerError, "INTERNAL", "catalog error")
		return
	}

	s := h.store(w, r)
	s.AddItem(r.Context(), product, req.Quantity)
	httpx.WriteJSON(w, http.StatusOK, view(s))
}

func (h *Handler) updateQuantity(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Quantity int `json:"quantity"`
	}
	if !httpx.Decode(w, r, &req) {
		return
	}

	s := h.store(w, r)
	err := s.UpdateQuantity(r.Context(), mux.Vars(r)["productId"], req.Quantity)
	if errors.Is(err, app.ErrStockExceeded) {
		httpx.WriteError(w, http.StatusConflict, "STOCK_EXCEEDED", "quantity exceeds available stock")
		return
	}
	httpx.WriteJSON(w, http.StatusOK, view(s))
}

func (h *Handler) removeItem(w http.ResponseWriter, r *http.Request) {
	s := h.store(w, r)
	s.RemoveItem(r.Context(), mux.Vars(r)["productId"])
	httpx.WriteJSON(w, http.StatusOK, view(s))
}
