package dto

// CopyProductsRequest entrada de POST /api/admin/copy-products.
type CopyProductsRequest struct {
	SourceUserID   string   `json:"sourceUserId"`
	TargetUserID   string   `json:"targetUserId"`
	ProductIDs     []string `json:"productIds"`
	Atomic         bool     `json:"atomic,omitempty"`
	SyncCategories bool     `json:"syncCategories,omitempty"`
}

// CopyStatsResponse conteos de entidades creadas por la copia.
type CopyStatsResponse struct {
	Products   int `json:"products"`
	Images     int `json:"images"`
	PriceTiers int `json:"priceTiers"`
	Categories int `json:"categories"`
}

// CopyProductsResponse respuesta exitosa de la copia.
type CopyProductsResponse struct {
	Success bool              `json:"success"`
	Message string            `json:"message"`
	Stats   CopyStatsResponse `json:"stats"`
}

// CopyErrorResponse error de la copia: {error, details?}.
type CopyErrorResponse struct {
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
}
