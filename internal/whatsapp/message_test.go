package whatsapp

import (
	"testing"

	"whatsmenu/internal/domain"

	"github.com/stretchr/testify/assert"
)

func TestBuildOrderTextSections(t *testing.T) {
	text := BuildOrderText("Pizzeria Bella", "ORD_20250310_001",
		[]domain.OrderItemMsg{
			{Name: "Margherita", Quantity: 2, Price: 12.5},
			{Name: "Cola", Quantity: 1, Price: 3},
		},
		domain.CheckoutCustomer{Name: "Alice", Phone: "+55 11 91234-5678", Address: "Av. Paulista 1000"},
		28, 0, 6, 20)

	assert.Contains(t, text, "*Pizzeria Bella* order ORD_20250310_001")
	assert.Contains(t, text, "*Items*\n2x Margherita: 25.00\n1x Cola: 3.00")
	assert.Contains(t, text, "*Delivery fee:* 6.00 (about 20 min)")
	assert.Contains(t, text, "*Total:* 34.00")
	assert.Contains(t, text, "Address: Av. Paulista 1000")
}

func TestBuildOrderTextSkipsEmptySections(t *testing.T) {
	text := BuildOrderText("Pizzeria Bella", "ORD_20250310_002",
		[]domain.OrderItemMsg{{Name: "Cola", Quantity: 1, Price: 3}},
		domain.CheckoutCustomer{Name: "Bob", Phone: "123"},
		3, 0, 0, 0)

	assert.NotContains(t, text, "Discount")
	assert.NotContains(t, text, "Delivery fee")
	assert.NotContains(t, text, "Address:")
}

func TestLinkEscapesText(t *testing.T) {
	link := Link("+55 (11) 98888-7777", "*Order* 1\nTotal: 10.00")
	assert.Equal(t, "https://wa.me/5511988887777?text=%2AOrder%2A+1%0ATotal%3A+10.00", link)
}
