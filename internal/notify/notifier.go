package notify

import (
	"go.uber.org/zap"
)

// EventKind names the notification sounds/alerts the presentation layer
// knows how to render.
type EventKind string

const (
	EventNewOrder     EventKind = "newOrder"
	EventOrderReady   EventKind = "orderReady"
	EventStatusChange EventKind = "statusChange"
	EventError        EventKind = "error"
)

// Event is a fire-and-forget notification. Events are not durably
// recorded and delivery is not guaranteed.
type Event struct {
	Kind        EventKind
	OrderID     string
	OrderNumber string
	Status      string
}

type Notifier interface {
	Notify(event Event)
}

// LogNotifier writes events to the structured log. It is the default
// sink when no UI consumer is attached.
type LogNotifier struct {
	logger *zap.Logger
}

func NewLogNotifier(logger *zap.Logger) *LogNotifier {
	return &LogNotifier{logger: logger}
}

func (n *LogNotifier) Notify(event Event) {
	n.logger.Info("notification",
		zap.String("kind", string(event.Kind)),
		zap.String("orderId", event.OrderID),
		zap.String("orderNumber", event.OrderNumber),
		zap.String("status", event.Status),
	)
}
