package dto

import "time"

// RegisterRequest entrada para registro de vendedor. ReferralCode opcional.
type RegisterRequest struct {
	Email        string `json:"email" validate:"required,email"`
	Password     string `json:"password" validate:"required,min=8,max=72"`
	Name         string `json:"name" validate:"required,min=1,max=200"`
	StoreName    string `json:"store_name" validate:"omitempty,max=120"`
	ReferralCode string `json:"referral_code" validate:"omitempty,alphanum,max=16"`
}

// LoginRequest entrada para login.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// LoginResponse salida con token JWT.
type LoginResponse struct {
	Token string       `json:"token"`
	User  UserResponse `json:"user"`
}

// UserResponse salida de un usuario (sin password).
type UserResponse struct {
	ID                  string    `json:"id"`
	Email               string    `json:"email"`
	Name                string    `json:"name"`
	Role                string    `json:"role"`
	Status              string    `json:"status"`
	StoreName           string    `json:"store_name"`
	StoreSlug           string    `json:"store_slug,omitempty"`
	Bio                 string    `json:"bio,omitempty"`
	WhatsApp            string    `json:"whatsapp,omitempty"`
	AvatarURL           string    `json:"avatar_url,omitempty"`
	BannerURL           string    `json:"banner_url,omitempty"`
	MaxImagesPerProduct int       `json:"max_images_per_product"`
	ReferralCode        string    `json:"referral_code"`
	PixKeyType          string    `json:"pix_key_type,omitempty"`
	CreatedAt           time.Time `json:"created_at"`
	UpdatedAt           time.Time `json:"updated_at"`
}

// UserListResponse lista paginada de usuarios (back-office).
type UserListResponse struct {
	Items []UserResponse `json:"items"`
	Page  PageResponse   `json:"page"`
}

// UpdateProfileRequest edición del perfil de la vitrina; campos nil no cambian.
type UpdateProfileRequest struct {
	Name      *string `json:"name" validate:"omitempty,min=1,max=200"`
	StoreName *string `json:"store_name" validate:"omitempty,max=120"`
	StoreSlug *string `json:"store_slug" validate:"omitempty,max=80"`
	Bio       *string `json:"bio" validate:"omitempty,max=1000"`
	WhatsApp  *string `json:"whatsapp" validate:"omitempty,max=20"`
	AvatarURL *string `json:"avatar_url" validate:"omitempty,url"`
	BannerURL *string `json:"banner_url" validate:"omitempty,url"`
}

// AdminUpdateUserRequest cambio de rol o estado desde el back-office.
type AdminUpdateUserRequest struct {
	Role   *string `json:"role" validate:"omitempty,oneof=admin seller"`
	Status *string `json:"status" validate:"omitempty,oneof=active inactive suspended"`
}

// UpdateImageLimitRequest entrada de PUT /api/admin/users/:id/image-limit.
type UpdateImageLimitRequest struct {
	Limit int `json:"limit"`
}
