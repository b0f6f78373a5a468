package rest

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gorilla/mux"

	authrest "github.com/dekorshop/dekorshop/internal/auth/rest"
	cartapp "github.com/dekorshop/dekorshop/internal/cart/app"
	checkoutapp "github.com/dekorshop/dekorshop/internal/checkout/app"
	orderapp "github.com/dekorshop/dekorshop/internal/order/app"
	"github.com/dekorshop/dekorshop/internal/order/domain"
	userapp "github.com/dekorshop/dekorshop/internal/user/app"
	"github.com/dekorshop/dekorshop/pkg/httpx"
)

const sessionCookie = "cart_session"

type Guard func(http.HandlerFunc) http.HandlerFunc

type Handler struct {
	orders   *orderapp.Service
	checkout *checkoutapp.Service
	sessions *cartapp.Sessions
	users    *userapp.Service
	admin    Guard
	log      *slog.Logger
}

func NewHandler(orders *orderapp.Service, checkout *checkoutapp.Service, sessions *cartapp.Sessions, users *userapp.Service, admin Guard, log *slog.Logger) *Handler {
	return &Handler{
		orders:   orders,
		checkout: checkout,
		sessions: sessions,
		users:    users,
		admin:    admin,
		log:      log,
	}
}

func (h *Handler) Register(r *mux.Router) {
	r.HandleFunc("/checkout", h.submit).Methods(http.MethodPost)
	r.HandleFunc("/orders", h.list).Methods(http.MethodGet)
	r.HandleFunc("/orders/{id}", h.get).Methods(http.MethodGet)
	r.HandleFunc("/orders/{id}/status", h.admin(h.updateStatus)).Methods(http.MethodPut)
}

// statusFromError maps checkout and order errors onto HTTP statuses.
func statusFromError(err error) (int, string) {
	var verr *orderapp.ValidationError
	switch {
	case errors.As(err, &verr):
		return http.StatusBadRequest, "INVALID_ARGUMENT"
	case errors.Is(err, orderapp.ErrNotFound):
		return http.StatusNotFound, "NOT_FOUND"
	case errors.Is(err, cartapp.ErrStockExceeded):
		return http.StatusConflict, "STOCK_EXCEEDED"
	case errors.Is(err, checkoutapp.ErrProductGone):
		return http.StatusConflict, "PRODUCT_GONE"
	default:
		return http.StatusInternalServerError, "INTERNAL"
	}
}

func (h *Handler) writeErr(w http.ResponseWriter, err error) {
	status, code := statusFromError(err)
	httpx.WriteError(w, status, code, err.Error())
}

type submitReq struct {
	Customer domain.Customer `json:"customer"`
	Shipping domain.Shipping `json:"shipping"`
}

func (h *Handler) submit(w http.ResponseWriter, r *http.Request) {
	var req submitReq
	if !httpx.Decode(w, r, &req) {
		return
	}

	var sessionID string
	if c, err := r.Cookie(sessionCookie); err == nil {
		sessionID = c.Value
	}
	cart := h.sessions.For(r.Context(), sessionID)

	order, err := h.checkout.Submit(r.Context(), cart, req.Customer, req.Shipping)
	if err != nil {
		h.writeErr(w, err)
		return
	}

	// Signed-in customers get the order on their profile; failures here
	// never undo a placed order.
	if claims, ok := authrest.ClaimsFrom(r.Context()); ok {
		if _, err := h.users.AppendOrderHistory(r.Context(), claims.Subject, order.ID); err != nil {
			h.log.Warn("order history append failed",
				slog.String("order_id", order.ID),
				slog.String("user_id", claims.Subject),
				slog.Any("err", err))
		}
	}

	httpx.WriteJSON(w, http.StatusCreated, order)
}

func (h *Handler) get(w http.ResponseWriter, r *http.Request) {
	order, err := h.orders.GetOrderByID(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		h.writeErr(w, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, order)
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	orders, err := h.orders.ListOrders(r.Context())
	if err != nil {
		h.writeErr(w, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, orders)
}

func (h *Handler) updateStatus(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Status domain.Status `json:"status"`
	}
	if !httpx.Decode(w, r, &req) {
		return
	}

	order, err := h.orders.UpdateOrderStatus(r.Context(), mux.Vars(r)["id"], req.Status)
	if err != nil {
		h.writeErr(w, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, order)
}
