package domain

// OrderItemMsg mirrors OrderItem for the wire.
type OrderItemMsg struct {
	Name     string  `json:"name"`
	Quantity int     `json:"quantity"`
	Price    float64 `json:"price"`
}

// OrderMessage is published to the orders exchange after a successful
// checkout and consumed by the WhatsApp notifier.
type OrderMessage struct {
	OrderNumber     string         `json:"order_number"`
	Restaurant      string         `json:"restaurant"`
	WhatsappPhone   string         `json:"whatsapp_phone"`
	CustomerName    string         `json:"customer_name"`
	CustomerPhone   string         `json:"customer_phone"`
	OrderType       string         `json:"order_type"`
	DeliveryAddress *string        `json:"delivery_address,omitempty"`
	Items           []OrderItemMsg `json:"items"`
	Subtotal        float64        `json:"subtotal"`
	Discount        float64        `json:"discount,omitempty"`
	DeliveryFee     float64        `json:"delivery_fee,omitempty"`
	TotalAmount     float64        `json:"total_amount"`
	Text            string         `json:"text"`
	Priority        int            `json:"priority"`
}
