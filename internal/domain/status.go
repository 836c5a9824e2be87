package domain

// OrderStatus is the order-level lifecycle status. Orders move forward
// through Pending → Confirmed → Preparing → Ready → Served → Completed,
// with Cancelled reachable from any non-terminal status.
type OrderStatus string

const (
	OrderStatusPending   OrderStatus = "pending"
	OrderStatusConfirmed OrderStatus = "confirmed"
	OrderStatusPreparing OrderStatus = "preparing"
	OrderStatusReady     OrderStatus = "ready"
	OrderStatusServed    OrderStatus = "served"
	OrderStatusCompleted OrderStatus = "completed"
	OrderStatusCancelled OrderStatus = "cancelled"
)

// ItemStatus is the per-line-item preparation status, tracked
// independently of the order-level status.
type ItemStatus string

const (
	ItemStatusPending   ItemStatus = "pending"
	ItemStatusPreparing ItemStatus = "preparing"
	ItemStatusReady     ItemStatus = "ready"
	ItemStatusServed    ItemStatus = "served"
)

func (s OrderStatus) Valid() bool {
	switch s {
	case OrderStatusPending, OrderStatusConfirmed, OrderStatusPreparing,
		OrderStatusReady, OrderStatusServed, OrderStatusCompleted, OrderStatusCancelled:
		return true
	}
	return false
}

// IsTerminal reports whether no further forward transition occurs.
func (s OrderStatus) IsTerminal() bool {
	return s == OrderStatusCompleted || s == OrderStatusCancelled
}

func (s ItemStatus) Valid() bool {
	switch s {
	case ItemStatusPending, ItemStatusPreparing, ItemStatusReady, ItemStatusServed:
		return true
	}
	return false
}

// DeriveOrderStatus infers the order-level status from the aggregate of
// its items' statuses. Rules are evaluated in priority order and only the
// first match fires:
//
//  1. every item served, order not yet completed → served
//  2. every item ready or served, order preparing → ready
//  3. any item preparing, order confirmed → preparing
//
// Otherwise the current status is kept. This is a convenience heuristic,
// not a full state machine: it does not reconcile orders moved into other
// states directly.
func DeriveOrderStatus(items []OrderLineItem, current OrderStatus) OrderStatus {
	if len(items) == 0 {
		return current
	}

	allServed := true
	allReadyOrServed := true
	anyPreparing := false

	for _, it := range items {
		if it.Status != ItemStatusServed {
			allServed = false
		}
		if it.Status != ItemStatusReady && it.Status != ItemStatusServed {
			allReadyOrServed = false
		}
		if it.Status == ItemStatusPreparing {
			anyPreparing = true
		}
	}

	switch {
	case allServed && current != OrderStatusCompleted:
		return OrderStatusServed
	case allReadyOrServed && current == OrderStatusPreparing:
		return OrderStatusReady
	case anyPreparing && current == OrderStatusConfirmed:
		return OrderStatusPreparing
	}

	return current
}
