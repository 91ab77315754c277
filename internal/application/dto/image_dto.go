package dto

import "time"

// AddImageRequest registra una imagen ya subida al storage externo.
// ContentHash (sha256 del contenido) activa el control de URLs duplicadas.
type AddImageRequest struct {
	URL          string `json:"url" validate:"required,url,max=2048"`
	ContentHash  string `json:"content_hash" validate:"omitempty,hexadecimal,len=64"`
	Fingerprint  string `json:"fingerprint" validate:"omitempty,max=200"`
	DisplayOrder *int   `json:"display_order" validate:"omitempty,min=0"`
	IsFeatured   bool   `json:"is_featured"`
}

// ImageResponse salida de una imagen de la galería.
type ImageResponse struct {
	ID           string    `json:"id"`
	ProductID    string    `json:"product_id"`
	URL          string    `json:"url"`
	DisplayOrder int       `json:"display_order"`
	IsFeatured   bool      `json:"is_featured"`
	CreatedAt    time.Time `json:"created_at"`
}

// ImageOrderItem nueva posición de una imagen.
type ImageOrderItem struct {
	ID           string `json:"id" validate:"required"`
	DisplayOrder int    `json:"display_order" validate:"min=0"`
}

// ReorderImagesRequest reordenamiento de la galería.
type ReorderImagesRequest struct {
	Items []ImageOrderItem `json:"items" validate:"required,min=1,dive"`
}

// ValidateImageLimitRequest entrada de POST /api/images/validate-limit.
type ValidateImageLimitRequest struct {
	UserID     string `json:"userId"`
	ProductID  string `json:"productId,omitempty"`
	ImageCount int    `json:"imageCount"`
}

// ValidateImageLimitResponse resultado de la validación del límite de imágenes.
type ValidateImageLimitResponse struct {
	Valid          bool   `json:"valid"`
	Error          string `json:"error,omitempty"`
	Limit          int    `json:"limit"`
	CurrentCount   *int   `json:"currentCount,omitempty"`
	RequestedCount int    `json:"requestedCount"`
}
