package whatsapp

import (
	"fmt"
	"net/url"
	"strings"

	"whatsmenu/internal/domain"
)

// BuildOrderText renders the plain-text order summary handed to WhatsApp.
// Newline-delimited with *bold* section markers; not machine-parseable.
func BuildOrderText(restaurant, orderNumber string, items []domain.OrderItemMsg,
	customer domain.CheckoutCustomer, subtotal, discount, fee float64, etaMinutes int) string {

	var b strings.Builder
	fmt.Fprintf(&b, "*%s* order %s\n\n", restaurant, orderNumber)

	b.WriteString("*Items*\n")
	for _, it := range items {
		fmt.Fprintf(&b, "%dx %s: %.2f\n", it.Quantity, it.Name, float64(it.Quantity)*it.Price)
	}

	b.WriteString("\n")
	fmt.Fprintf(&b, "*Subtotal:* %.2f\n", subtotal)
	if discount > 0 {
		fmt.Fprintf(&b, "*Discount:* -%.2f\n", discount)
	}
	if fee > 0 {
		fmt.Fprintf(&b, "*Delivery fee:* %.2f (about %d min)\n", fee, etaMinutes)
	}
	fmt.Fprintf(&b, "*Total:* %.2f\n", subtotal-discount+fee)

	b.WriteString("\n*Customer*\n")
	fmt.Fprintf(&b, "Name: %s\n", customer.Name)
	fmt.Fprintf(&b, "Phone: %s\n", customer.Phone)
	if customer.Address != "" {
		fmt.Fprintf(&b, "Address: %s\n", customer.Address)
	}
	return b.String()
}

// Link builds the wa.me deep link for a prefilled message.
func Link(phone, text string) string {
	return fmt.Sprintf("https://wa.me/%s?text=%s", digitsOnly(phone), url.QueryEscape(text))
}

func digitsOnly(s string) string {
	var b strings.Builder
	for _, r := range s {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}
