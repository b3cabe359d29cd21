package handlers

import "net/http"

func Router(h *Handler) *http.ServeMux {
	mux := http.NewServeMux()

	mux.HandleFunc("POST /api/v1/sessions", h.Storefront.CreateSession)

	mux.HandleFunc("GET /api/v1/restaurants/{slug}/menu", h.Storefront.Menu)
	mux.HandleFunc("GET /api/v1/restaurants/{slug}/delivery-quote", h.Storefront.DeliveryQuote)

	mux.HandleFunc("GET /api/v1/cart/{session_id}", h.Storefront.GetCart)
	mux.HandleFunc("POST /api/v1/cart/{session_id}/items", h.Storefront.AddItem)
	mux.HandleFunc("DELETE /api/v1/cart/{session_id}/items/{product_id}", h.Storefront.RemoveItem)
	mux.HandleFunc("DELETE /api/v1/cart/{session_id}", h.Storefront.ClearCart)

	mux.HandleFunc("POST /api/v1/checkout", h.Storefront.Checkout)

	return mux
}
