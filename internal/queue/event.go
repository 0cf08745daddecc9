// Package queue defines the order lifecycle events published to the
// message broker and the RabbitMQ publisher that delivers them.
package queue

// OrderCreatedEvent is published after an order commit.  It carries
// enough information for downstream consumers to log, notify or trigger
// analytics without querying the primary database.
type OrderCreatedEvent struct {
	OrderID    uint64 `json:"order_id"`
	UserID     uint64 `json:"user_id"`
	ProductID  uint64 `json:"product_id"`
	Quantity   int64  `json:"quantity"`
	TotalPrice int64  `json:"total_price"`
	CreatedAt  string `json:"created_at"`
}

// OrderCancelledEvent is published after a cancellation commit, once the
// product's stock has been restored.
type OrderCancelledEvent struct {
	OrderID     uint64 `json:"order_id"`
	UserID      uint64 `json:"user_id"`
	ProductID   uint64 `json:"product_id"`
	Quantity    int64  `json:"quantity"`
	CancelledAt string `json:"cancelled_at"`
}
