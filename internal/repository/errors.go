// Package repository defines the persistence gateway consumed by the
// workflow services: store interfaces over users, products and orders,
// plus the sentinel errors implementations report.  Higher layers
// translate these sentinels into their own typed errors; the stores
// themselves know nothing about HTTP.
package repository

import "errors"

// ErrNotFound is returned when a referenced row does not exist.
var ErrNotFound = errors.New("record not found")

// ErrDuplicate is returned when an insert or update violates a unique
// constraint (username, email).
var ErrDuplicate = errors.New("duplicate entry")

// ErrInsufficientStock is returned when a conditional stock decrement
// matches no row, i.e. the product's stock is lower than requested.
var ErrInsufficientStock = errors.New("insufficient stock")
