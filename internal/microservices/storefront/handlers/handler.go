package handlers

import "whatsmenu/internal/microservices/storefront/service"

type Handler struct {
	Storefront *StorefrontHandler
}

func New(s *service.Service) *Handler {
	return &Handler{
		Storefront: NewStorefrontHandler(s.Storefront),
	}
}
