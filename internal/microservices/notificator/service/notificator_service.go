package service

import (
	"context"
	"encoding/json"
	"fmt"

	"whatsmenu/internal/common/logger"
	"whatsmenu/internal/connections/rabbitmq"
	"whatsmenu/internal/domain"
	"whatsmenu/internal/whatsapp"
)

// NotificatorService consumes submitted orders and emits the WhatsApp deep
// link for each one. Sending the message is the operator's side of the
// handoff; this service only produces the link.
type NotificatorService struct {
	rmq *rabbitmq.Client
	lg  *logger.Logger
}

func NewNotificatorService(rmq *rabbitmq.Client) *NotificatorService {
	return &NotificatorService{rmq: rmq, lg: logger.New("whatsapp-notifier")}
}

func (ns *NotificatorService) Run(ctx context.Context) error {
	msgs, err := ns.rmq.Consume(rabbitmq.WhatsappQueue, "whatsapp-notifier", 1)
	if err != nil {
		return fmt.Errorf("failed to consume %s: %w", rabbitmq.WhatsappQueue, err)
	}

	for {
		select {
		case <-ctx.Done():
			return nil
		case d, ok := <-msgs:
			if !ok {
				return fmt.Errorf("delivery channel closed")
			}

			var msg domain.OrderMessage
			if err := json.Unmarshal(d.Body, &msg); err != nil {
				ns.lg.Error("order_message_malformed", err, map[string]any{"message_id": d.MessageId})
				_ = d.Nack(false, false) // to DLQ
				continue
			}

			ns.lg.Info("whatsapp_link_ready", map[string]any{
				"order_number": msg.OrderNumber,
				"restaurant":   msg.Restaurant,
				"link":         whatsapp.Link(msg.WhatsappPhone, msg.Text),
			})
			_ = d.Ack(false)
		}
	}
}
