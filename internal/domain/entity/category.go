package entity

import "time"

// Category categoría de productos de un vendedor (nombre único por cuenta).
type Category struct {
	ID        string
	UserID    string
	Name      string
	CreatedAt time.Time
}
