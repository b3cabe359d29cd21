package domain

type AddItemRequest struct {
	Restaurant string `json:"restaurant"`
	ProductID  int    `json:"product_id"`
	Quantity   int    `json:"quantity"`
}

type CartResponse struct {
	SessionID     string     `json:"session_id"`
	Lines         []CartLine `json:"lines"`
	TotalQuantity int        `json:"total_quantity"`
	TotalPrice    float64    `json:"total_price"`
}

type MenuCategory struct {
	Name     string        `json:"name"`
	Products []MenuProduct `json:"products"`
}

type MenuProduct struct {
	ID          int     `json:"id"`
	Name        string  `json:"name"`
	Description string  `json:"description,omitempty"`
	Price       float64 `json:"price"`
	ImageRef    string  `json:"image_ref,omitempty"`
}

type MenuResponse struct {
	Restaurant string         `json:"restaurant"`
	Whatsapp   string         `json:"whatsapp"`
	Open       bool           `json:"open"`
	Categories []MenuCategory `json:"categories"`
}

type QuoteResponse struct {
	Deliverable bool    `json:"deliverable"`
	Reason      string  `json:"reason,omitempty"` // set when not deliverable
	DistanceKm  float64 `json:"distance_km,omitempty"`
	Fee         float64 `json:"fee"`
	EtaMinutes  int     `json:"eta_minutes"`
}

type CheckoutCustomer struct {
	Name    string `json:"name"`
	Phone   string `json:"phone"`
	Address string `json:"address,omitempty"`
}

type CheckoutRequest struct {
	SessionID  string           `json:"session_id"`
	Restaurant string           `json:"restaurant"`
	OrderType  string           `json:"order_type"` // delivery | takeout
	Customer   CheckoutCustomer `json:"customer"`
	CouponCode string           `json:"coupon_code,omitempty"`
}

type CheckoutResponse struct {
	OrderNumber  string  `json:"order_number"`
	Status       string  `json:"status"`
	Subtotal     float64 `json:"subtotal"`
	Discount     float64 `json:"discount,omitempty"`
	DeliveryFee  float64 `json:"delivery_fee,omitempty"`
	EtaMinutes   int     `json:"eta_minutes,omitempty"`
	TotalAmount  float64 `json:"total_amount"`
	WhatsappLink string  `json:"whatsapp_link"`
}
