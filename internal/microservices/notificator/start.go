package notificator

import (
	"context"

	"whatsmenu/internal/connections/rabbitmq"
	"whatsmenu/internal/microservices/notificator/service"
)

func Start(ctx context.Context, rmq *rabbitmq.Client) error {
	return service.New(rmq).NotificatorService.Run(ctx)
}
