package rest

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	authrest "github.com/dekorshop/dekorshop/internal/auth/rest"
	"github.com/dekorshop/dekorshop/internal/user/app"
	"github.com/dekorshop/dekorshop/internal/user/domain"
	"github.com/dekorshop/dekorshop/pkg/httpx"
)

type Guard func(http.HandlerFunc) http.HandlerFunc

type Handler struct {
	svc  *app.Service
	user Guard
}

func NewHandler(svc *app.Service, user Guard) *Handler {
	return &Handler{svc: svc, user: user}
}

func (h *Handler) Register(r *mux.Router) {
	r.HandleFunc("/me", h.user(h.me)).Methods(http.MethodGet)
	r.HandleFunc("/me", h.user(h.update)).Methods(http.MethodPatch)
	r.HandleFunc("/me/address", h.user(h.address)).Methods(http.MethodGet)
	r.HandleFunc("/me/address", h.user(h.saveAddress)).Methods(http.MethodPut)
	r.HandleFunc("/me/wishlist/{productId}", h.user(h.addWish)).Methods(http.MethodPost)
	r.HandleFunc("/me/wishlist/{productId}", h.user(h.removeWish)).Methods(http.MethodDelete)
}

func (h *Handler) writeErr(w http.ResponseWriter, err error) {
	if errors.Is(err, app.ErrNotFound) {
		httpx.WriteError(w, http.StatusNotFound, "NOT_FOUND", "user not found")
		return
	}
	httpx.WriteError(w, http.StatusInternalServerError, "INTERNAL", "profile error")
}

func userID(r *http.Request) string {
	claims, _ := authrest.ClaimsFrom(r.Context())
	return claims.Subject
}

func (h *Handler) me(w http.ResponseWriter, r *http.Request) {
	u, err := h.svc.GetUser(r.Context(), userID(r))
	if err != nil {
		h.writeErr(w, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, u)
}

func (h *Handler) update(w http.ResponseWriter, r *http.Request) {
	var upd domain.UserUpdate
	if !httpx.Decode(w, r, &upd) {
		return
	}

	u, err := h.svc.UpdateUser(r.Context(), userID(r), upd)
	if err != nil {
		h.writeErr(w, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, u)
}

func (h *Handler) address(w http.ResponseWriter, r *http.Request) {
	addr, ok, err := h.svc.LoadAddress(r.Context())
	if err != nil {
		h.writeErr(w, err)
		return
	}
	if !ok {
		httpx.WriteError(w, http.StatusNotFound, "NOT_FOUND", "no saved address")
		return
	}
	httpx.WriteJSON(w, http.StatusOK, addr)
}

func (h *Handler) saveAddress(w http.ResponseWriter, r *http.Request) {
	var addr domain.Address
	if !httpx.Decode(w, r, &addr) {
		return
	}

	u, err := h.svc.SaveAddress(r.Context(), userID(r), addr)
	if err != nil {
		h.writeErr(w, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, u)
}

func (h *Handler) addWish(w http.ResponseWriter, r *http.Request) {
	u, err := h.svc.AddToWishlist(r.Context(), userID(r), mux.Vars(r)["productId"])
	if err != nil {
		h.writeErr(w, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, u)
}

func (h *Handler) removeWish(w http.ResponseWriter, r *http.Request) {
	u, err := h.svc.RemoveFromWishlist(r.Context(), userID(r), mux.Vars(r)["productId"])
	if err != nil {
		h.writeErr(w, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, u)
}
