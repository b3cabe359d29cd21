package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"whatsmenu/internal/common/logger"
	"whatsmenu/internal/delivery"
	"whatsmenu/internal/domain"
	"whatsmenu/internal/microservices/storefront/repository"
	"whatsmenu/internal/microservices/storefront/service"

	"github.com/google/uuid"
)

type StorefrontHandler struct {
	service service.StorefrontServiceInterface
	lg      *logger.Logger
}

func NewStorefrontHandler(s service.StorefrontServiceInterface) *StorefrontHandler {
	return &StorefrontHandler{service: s, lg: logger.New("storefront-http")}
}

func (sh *StorefrontHandler) CreateSession(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusCreated, map[string]string{"session_id": uuid.NewString()})
}

func (sh *StorefrontHandler) Menu(w http.ResponseWriter, r *http.Request) {
	resp, err := sh.service.Menu(r.Context(), r.PathValue("slug"))
	if err != nil {
		sh.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (sh *StorefrontHandler) DeliveryQuote(w http.ResponseWriter, r *http.Request) {
	address := r.URL.Query().Get("address")
	if address == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "address query parameter is required"})
		return
	}
	resp, err := sh.service.DeliveryQuote(r.Context(), r.PathValue("slug"), address)
	if err != nil {
		sh.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (sh *StorefrontHandler) GetCart(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, sh.service.GetCart(r.Context(), r.PathValue("session_id")))
}

func (sh *StorefrontHandler) AddItem(w http.ResponseWriter, r *http.Request) {
	var req domain.AddItemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid JSON body"})
		return
	}
	resp, err := sh.service.AddItem(r.Context(), r.PathValue("session_id"), req)
	if err != nil {
		sh.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (sh *StorefrontHandler) RemoveItem(w http.ResponseWriter, r *http.Request) {
	resp := sh.service.RemoveItem(r.Context(), r.PathValue("session_id"), r.PathValue("product_id"))
	writeJSON(w, http.StatusOK, resp)
}

func (sh *StorefrontHandler) ClearCart(w http.ResponseWriter, r *http.Request) {
	sh.service.ClearCart(r.Context(), r.PathValue("session_id"))
	w.WriteHeader(http.StatusNoContent)
}

func (sh *StorefrontHandler) Checkout(w http.ResponseWriter, r *http.Request) {
	var req domain.CheckoutRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid JSON body"})
		return
	}
	resp, err := sh.service.Checkout(r.Context(), req)
	if err != nil {
		sh.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, resp)
}

func (sh *StorefrontHandler) writeError(w http.ResponseWriter, err error) {
	var verr *service.ValidationError
	switch {
	case errors.As(err, &verr):
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": verr.Reason})
	case errors.Is(err, repository.ErrRestaurantNotFound),
		errors.Is(err, repository.ErrProductNotFound):
		writeJSON(w, http.StatusNotFound, map[string]string{"error": err.Error()})
	case errors.Is(err, delivery.ErrAddressNotFound):
		writeJSON(w, http.StatusUnprocessableEntity, map[string]string{"error": "address_not_found"})
	case errors.Is(err, service.ErrNotDeliverable):
		writeJSON(w, http.StatusUnprocessableEntity, map[string]string{"error": "not_deliverable", "detail": err.Error()})
	default:
		sh.lg.Error("request_failed", err, nil)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal error"})
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
