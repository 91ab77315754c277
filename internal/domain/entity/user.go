package entity

import "time"

// Roles válidos para User.
const (
	RoleAdmin  = "admin"
	RoleSeller = "seller"
)

// Estados de cuenta.
const (
	UserStatusActive    = "active"
	UserStatusInactive  = "inactive"
	UserStatusSuspended = "suspended"
)

// Límites de imágenes por producto (configurables por cuenta desde el back-office).
const (
	DefaultMaxImagesPerProduct = 10
	MinImagesPerProduct        = 1
	MaxImagesPerProduct        = 50
)

// User representa una cuenta del sistema: vendedor dueño de una vitrina o administrador.
type User struct {
	ID                  string
	Email               string
	PasswordHash        string // bcrypt hash, nunca plano en dominio después de persistir
	Name                string
	Role                string // admin, seller
	Status              string // active, inactive, suspended
	StoreName           string
	StoreSlug           string // vacío si la vitrina no fue publicada
	Bio                 string
	WhatsApp            string
	AvatarURL           string
	BannerURL           string
	MaxImagesPerProduct int
	ReferralCode        string
	ReferredBy          string // vacío si no llegó por indicación
	PixKey              string
	PixKeyType          string
	CreatedAt           time.Time
	UpdatedAt           time.Time
}

// ImageLimit devuelve el límite efectivo de imágenes por producto de la cuenta.
func (u *User) ImageLimit() int {
	if u == nil || u.MaxImagesPerProduct < MinImagesPerProduct || u.MaxImagesPerProduct > MaxImagesPerProduct {
		return DefaultMaxImagesPerProduct
	}
	return u.MaxImagesPerProduct
}
