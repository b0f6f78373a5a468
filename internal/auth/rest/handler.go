package rest

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/dekorshop/dekorshop/internal/auth/app"
	userapp "github.com/dekorshop/dekorshop/internal/user/app"
	userdomain "github.com/dekorshop/dekorshop/internal/user/domain"
	"github.com/dekorshop/dekorshop/pkg/httpx"
)

type Handler struct {
	svc *app.Service
}

func NewHandler(svc *app.Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) Register(r *mux.Router) {
	r.HandleFunc("/auth/register", h.register).Methods(http.MethodPost)
	r.HandleFunc("/auth/login", h.login).Methods(http.MethodPost)
}

type credentialsReq struct {
	Email       string `json:"email"`
	Password    string `json:"password"`
	DisplayName string `json:"displayName,omitempty"`
}

type sessionResp struct {
	Token string          `json:"token"`
	User  userdomain.User `json:"user"`
}

func (h *Handler) register(w http.ResponseWriter, r *http.Request) {
	var req credentialsReq
	if !httpx.Decode(w, r, &req) {
		return
	}

	u, token, err := h.svc.Register(r.Context(), req.Email, req.Password, req.DisplayName)
	switch {
	case errors.Is(err, app.ErrInvalidInput):
		httpx.WriteError(w, http.StatusBadRequest, "INVALID_ARGUMENT", "email or password not acceptable")
	case errors.Is(err, userapp.ErrEmailTaken):
		httpx.WriteError(w, http.StatusConflict, "ALREADY_EXISTS", "email already registered")
	case err != nil:
		httpx.WriteError(w, http.StatusInternalServerError, "INTERNAL", "registration failed")
	default:
		httpx.WriteJSON(w, http.StatusCreated, sessionResp{Token: token, User: u})
	}
}

func (h *Handler) login(w http.ResponseWriter, r *http.Request) {
	var req credentialsReq
	if !httpx.Decode(w, r, &req) {
		return
	}

	u, token, err := h.svc.Login(r.Context(), req.Email, req.Password)
	switch {
	case errors.Is(err, app.ErrInvalidCredentials):
		httpx.WriteError(w, http.StatusUnauthorized, "UNAUTHENTICATED", "invalid email or password")
	case err != nil:
		httpx.WriteError(w, http.StatusInternalServerError, "INTERNAL", "login failed")
	default:
		httpx.WriteJSON(w, http.StatusOK, sessionResp{Token: token, User: u})
	}
}
