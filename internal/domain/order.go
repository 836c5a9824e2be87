package domain

import (
	"math"
	"time"
)

// TaxRate is the fixed tax rate applied to every order subtotal.
const TaxRate = 0.10

type Order struct {
	ID              string
	Number          string
	TableID         string
	Items           []OrderLineItem
	Status          OrderStatus
	Subtotal        float64
	Tax             float64
	Discount        float64
	Total           float64
	CustomerName    string
	CustomerCount   int
	SpecialRequests string
	CreatedBy       string
	CreatedAt       time.Time
	UpdatedAt       time.Time
	CompletedAt     *time.Time
}

// OrderLineItem is one menu item entry within an order. Name, Price and
// PrepTimeMinutes are snapshotted from the menu item at add-time; later
// menu changes do not affect existing orders.
type OrderLineItem struct {
	ID                  string
	MenuItemID          string
	Name                string
	Price               float64
	PrepTimeMinutes     int
	Quantity            int
	Status              ItemStatus
	SpecialInstructions string
	PreparedBy          string
	PreparedAt          *time.Time
}

// Round2 rounds a money amount to two decimal places.
func Round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// Recalculate recomputes the derived financial fields from the current
// line items. Total is never stored independently of the items.
func (o *Order) Recalculate() {
	subtotal := 0.0
	for _, it := range o.Items {
		subtotal += it.Price * float64(it.Quantity)
	}
	o.Subtotal = Round2(subtotal)
	o.Tax = Round2(o.Subtotal * TaxRate)
	o.Total = Round2(o.Subtotal + o.Tax - o.Discount)
}

// Item returns a pointer into Items for the given line item id, or nil.
func (o *Order) Item(itemID string) *OrderLineItem {
	for i := range o.Items {
		if o.Items[i].ID == itemID {
			return &o.Items[i]
		}
	}
	return nil
}
