package dto

// StorefrontResponse vitrina pública de un vendedor.
type StorefrontResponse struct {
	Slug       string            `json:"slug"`
	StoreName  string            `json:"store_name"`
	Bio        string            `json:"bio,omitempty"`
	WhatsApp   string            `json:"whatsapp,omitempty"`
	AvatarURL  string            `json:"avatar_url,omitempty"`
	BannerURL  string            `json:"banner_url,omitempty"`
	Categories []string          `json:"categories"`
	Products   []ProductResponse `json:"products"`
}
