package service

import "whatsmenu/internal/connections/rabbitmq"

type Service struct {
	NotificatorService *NotificatorService
}

func New(rmq *rabbitmq.Client) *Service {
	return &Service{NotificatorService: NewNotificatorService(rmq)}
}
