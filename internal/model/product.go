package model

import "time"

// Product mirrors the 'products' table.  Price is stored in the minor
// currency unit, Stock never goes below zero.
type Product struct {
	ID          uint64    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
	CategoryID  *uint64   `json:"categoryId,omitempty"`
	Price       int64     `json:"price"`
	Stock       int64     `json:"stock"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}
