package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jhoicas/Vitrine-api/internal/application/dto"
	"github.com/jhoicas/Vitrine-api/internal/application/usecase"
	"github.com/jhoicas/Vitrine-api/internal/domain"
	"github.com/jhoicas/Vitrine-api/internal/domain/entity"
	"github.com/jhoicas/Vitrine-api/internal/domain/repository"
	"github.com/jhoicas/Vitrine-api/pkg/jwt"
	"golang.org/x/crypto/bcrypt"
)

// referralCodeAttempts reintentos ante colisión del código de indicación generado.
const referralCodeAttempts = 5

// JWTConfig configuración para generación de tokens.
type JWTConfig struct {
	Secret     string
	ExpMinutes int
	Issuer     string
}

// AuthUseCase casos de uso de autenticación: registro y login.
type AuthUseCase struct {
	userRepo          repository.UserRepository
	jwtCfg            JWTConfig
	defaultImageLimit int
	newCode           func() string
}

// NewAuthUseCase construye el caso de uso de auth. defaultImageLimit se asigna a cada cuenta nueva.
func NewAuthUseCase(userRepo repository.UserRepository, jwtCfg JWTConfig, defaultImageLimit int) *AuthUseCase {
	if defaultImageLimit < entity.MinImagesPerProduct || defaultImageLimit > entity.MaxImagesPerProduct {
		defaultImageLimit = entity.DefaultMaxImagesPerProduct
	}
	return &AuthUseCase{
		userRepo:          userRepo,
		jwtCfg:            jwtCfg,
		defaultImageLimit: defaultImageLimit,
		newCode:           generateReferralCode,
	}
}

// RegisterUser crea un vendedor: hashea password con bcrypt y persiste. Devuelve ErrEmailAlreadyExists
// si el email ya existe y ErrInvalidInput si el código de indicación no corresponde a ninguna cuenta.
func (uc *AuthUseCase) RegisterUser(ctx context.Context, in dto.RegisterRequest) (*dto.UserResponse, error) {
	email := strings.ToLower(strings.TrimSpace(in.Email))
	if email == "" || len(in.Password) < 8 {
		return nil, fmt.Errorf("%w: email y password (mínimo 8 caracteres) son requeridos", domain.ErrInvalidInput)
	}
	existing, err := uc.userRepo.GetByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrEmailAlreadyExists
	}

	var referredBy string
	if code := strings.ToUpper(strings.TrimSpace(in.ReferralCode)); code != "" {
		referrer, err := uc.userRepo.GetByReferralCode(ctx, code)
		if err != nil {
			return nil, err
		}
		if referrer == nil {
			return nil, fmt.Errorf("%w: código de indicación inválido", domain.ErrInvalidInput)
		}
		referredBy = referrer.ID
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	now := time.Now().UTC()
	name := strings.TrimSpace(in.Name)
	if name == "" {
		name = email
	}
	storeName := strings.TrimSpace(in.StoreName)
	if storeName == "" {
		storeName = name
	}
	user := &entity.User{
		ID:                  uuid.New().String(),
		Email:               email,
		PasswordHash:        string(hash),
		Name:                name,
		Role:                entity.RoleSeller,
		Status:              entity.UserStatusActive,
		StoreName:           storeName,
		MaxImagesPerProduct: uc.defaultImageLimit,
		ReferredBy:          referredBy,
		CreatedAt:           now,
		UpdatedAt:           now,
	}

	for attempt := 1; ; attempt++ {
		user.ReferralCode = uc.newCode()
		err = uc.userRepo.Create(ctx, user)
		if err == nil {
			break
		}
		// colisión del código generado: se reintenta con otro
		if errors.Is(err, domain.ErrDuplicate) && attempt < referralCodeAttempts {
			continue
		}
		return nil, err
	}
	return usecase.ToUserResponse(user), nil
}

// Login verifica email/password, genera JWT y retorna token + usuario.
func (uc *AuthUseCase) Login(ctx context.Context, in dto.LoginRequest) (*dto.LoginResponse, error) {
	user, err := uc.userRepo.GetByEmail(ctx, strings.ToLower(strings.TrimSpace(in.Email)))
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrUserNotFound
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(in.Password)); err != nil {
		return nil, domain.ErrUnauthorized
	}
	if user.Status != entity.UserStatusActive {
		return nil, domain.ErrForbidden
	}
	token, err := jwt.Generate(uc.jwtCfg.Secret, user.ID, user.Role, uc.jwtCfg.Issuer, uc.jwtCfg.ExpMinutes)
	if err != nil {
		return nil, err
	}
	return &dto.LoginResponse{
		Token: token,
		User:  *usecase.ToUserResponse(user),
	}, nil
}

// Me perfil del usuario autenticado.
func (uc *AuthUseCase) Me(ctx context.Context, userID string) (*dto.UserResponse, error) {
	user, err := uc.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrUserNotFound
	}
	return usecase.ToUserResponse(user), nil
}

// generateReferralCode 8 caracteres hexadecimales en mayúsculas.
func generateReferralCode() string {
	return strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", "")[:8])
}
