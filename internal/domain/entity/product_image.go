package entity

import "time"

// ProductImage imagen de la galería de un producto. La URL apunta al storage externo.
type ProductImage struct {
	ID           string
	ProductID    string
	URL          string
	DisplayOrder int
	IsFeatured   bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
