package model

import "time"

// Order mirrors the 'orders' table.  TotalPrice is computed from the
// product's price at create/update time and stored denormalized.
type Order struct {
	ID         uint64    `json:"id"`
	UserID     uint64    `json:"userId"`
	ProductID  uint64    `json:"productId"`
	Quantity   int64     `json:"quantity"`
	TotalPrice int64     `json:"totalPrice"`
	CreatedAt  time.Time `json:"createdAt"`
	UpdatedAt  time.Time `json:"updatedAt"`
}

// OrderItem mirrors the 'order_items' table, the line-item record written
// alongside each order.
type OrderItem struct {
	ID        uint64 `json:"id"`
	OrderID   uint64 `json:"orderId"`
	ProductID uint64 `json:"productId"`
	Quantity  int64  `json:"quantity"`
}

// OrderDetail joins an order with snapshots of its product and user plus
// its line items.  Product and User are nil when the referenced row no
// longer exists (left join semantics).
type OrderDetail struct {
	Order
	Product *Product    `json:"product"`
	User    *UserBrief  `json:"user,omitempty"`
	Items   []OrderItem `json:"items,omitempty"`
}
