package orders

import (
	"encoding/json"
	"strconv"
	"time"
)

const (
	EventOrderPlaced    = "OrderPlaced"
	EventOrderCancelled = "OrderCancelled"
)

const (
	TopicOrderPlaced    = "order.placed"
	TopicOrderCancelled = "order.cancelled"
)

// Partition key = order id, so events for one order stay ordered.
func PartitionKey(orderID int) []byte { return []byte(strconv.Itoa(orderID)) }

type Envelope struct {
	EventID       string          `json:"event_id"`
	EventType     string          `json:"event_type"`
	EventVersion  int             `json:"event_version"`
	OccurredAt    time.Time       `json:"occurred_at"`
	Producer      string          `json:"producer"`
	TraceID       string          `json:"trace_id,omitempty"`
	CorrelationID string          `json:"correlation_id,omitempty"` // order id
	Payload       json.RawMessage `json:"payload"`
}

type OrderPlacedPayload struct {
	OrderID      int          `json:"order_id"`
	CustomerName string       `json:"customer_name"`
	TotalAmount  float64      `json:"total_amount"`
	Items        []BookDetail `json:"items"`
}

// Published only for confirmed cancellations: the order was present,
// deleted, and the inventory restore reported success.
type OrderCancelledPayload struct {
	OrderID int `json:"order_id"`
}
