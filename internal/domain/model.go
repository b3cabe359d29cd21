package domain

import "time"

// Coordinates is a WGS 84 point in decimal degrees.
type Coordinates struct {
	Lat float64
	Lon float64
}

type Restaurant struct {
	ID            int
	Slug          string
	Name          string
	WhatsappPhone string
	Origin        Coordinates
	OpenTime      string // "HH:MM"
	CloseTime     string // "HH:MM"
}

// IsOpenAt reports whether t falls inside the restaurant's work hours.
// A close time earlier than the open time means the window crosses midnight.
func (r Restaurant) IsOpenAt(t time.Time) bool {
	open, err1 := time.Parse("15:04", r.OpenTime)
	clos, err2 := time.Parse("15:04", r.CloseTime)
	if err1 != nil || err2 != nil {
		return true // unparseable hours never lock customers out
	}
	minutes := t.Hour()*60 + t.Minute()
	openMin := open.Hour()*60 + open.Minute()
	closeMin := clos.Hour()*60 + clos.Minute()
	if openMin == closeMin {
		return true
	}
	if openMin < closeMin {
		return minutes >= openMin && minutes < closeMin
	}
	return minutes >= openMin || minutes < closeMin
}

type Category struct {
	ID           int
	RestaurantID int
	Name         string
	Position     int
}

type Product struct {
	ID           int
	RestaurantID int
	CategoryID   int
	Name         string
	Description  string
	Price        float64
	ImageRef     string
	Available    bool
}

// CartLine is one distinct product in a customer's in-progress order.
// ProductID is opaque to the cart; the unit price is snapshotted when the
// line is first created and never refreshed by later adds.
type CartLine struct {
	ProductID string  `json:"product_id"`
	Name      string  `json:"name"`
	UnitPrice float64 `json:"unit_price"`
	Quantity  int     `json:"quantity"`
	ImageRef  string  `json:"image_ref,omitempty"`
}

type Coupon struct {
	ID           int
	RestaurantID int
	Code         string
	Type         string // percent | fixed
	Value        float64
	Active       bool
	ExpiresAt    *time.Time
}

// DeliveryTier is one row of a restaurant's distance-banded pricing table.
// MaxDistanceKm is the inclusive upper bound of the band.
type DeliveryTier struct {
	MaxDistanceKm float64
	Price         float64
	EtaMinutes    int
}

type Order struct {
	ID            int
	Number        string
	RestaurantID  int
	CustomerName  string
	CustomerPhone string
	Type          string // delivery | takeout
	DeliveryAddr  *string
	DeliveryFee   float64
	Discount      float64
	TotalAmount   float64
	Status        string
	Items         []OrderItem
}

type OrderItem struct {
	ID       int
	OrderID  int
	Name     string
	Quantity int
	Price    float64
}
