package auth_test

import (
	"context"
	"testing"

	"github.com/jhoicas/Vitrine-api/internal/application/auth"
	"github.com/jhoicas/Vitrine-api/internal/application/dto"
	"github.com/jhoicas/Vitrine-api/internal/domain"
	"github.com/jhoicas/Vitrine-api/internal/domain/entity"
	"github.com/jhoicas/Vitrine-api/internal/testutil/memstore"
	"github.com/jhoicas/Vitrine-api/pkg/jwt"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testJWT = auth.JWTConfig{Secret: "secreto-de-pruebas", ExpMinutes: 60, Issuer: "vitrine-test"}

func TestRegister_VendedorConIndicacion(t *testing.T) {
	s := memstore.New()
	referrer := s.SeedUser(entity.User{ReferralCode: "ABCD1234"})
	uc := auth.NewAuthUseCase(s.Users(), testJWT, 15)

	out, err := uc.RegisterUser(context.Background(), dto.RegisterRequest{
		Email:        "  Maria@Loja.com ",
		Password:     "segredo123",
		Name:         "Maria",
		ReferralCode: "abcd1234",
	})
	require.NoError(t, err)

	assert.Equal(t, "maria@loja.com", out.Email)
	assert.Equal(t, entity.RoleSeller, out.Role)
	assert.Equal(t, 15, out.MaxImagesPerProduct)
	assert.Equal(t, "Maria", out.StoreName)
	assert.Len(t, out.ReferralCode, 8)

	stored, err := s.Users().GetByID(context.Background(), out.ID)
	require.NoError(t, err)
	assert.Equal(t, referrer.ID, stored.ReferredBy)
	assert.NotEqual(t, "segredo123", stored.PasswordHash)
}

func TestRegister_Errores(t *testing.T) {
	s := memstore.New()
	s.SeedUser(entity.User{Email: "ja@existe.com"})
	uc := auth.NewAuthUseCase(s.Users(), testJWT, 0)
	ctx := context.Background()

	_, err := uc.RegisterUser(ctx, dto.RegisterRequest{Email: "JA@existe.com", Password: "segredo123", Name: "X"})
	assert.ErrorIs(t, err, domain.ErrEmailAlreadyExists)

	_, err = uc.RegisterUser(ctx, dto.RegisterRequest{Email: "novo@loja.com", Password: "curta", Name: "X"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = uc.RegisterUser(ctx, dto.RegisterRequest{Email: "novo@loja.com", Password: "segredo123", Name: "X", ReferralCode: "NAOEXISTE"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestRegister_ReintentaColisionDeCodigo(t *testing.T) {
	s := memstore.New()
	s.SeedUser(entity.User{ReferralCode: "REPETIDO"})
	uc := auth.NewAuthUseCase(s.Users(), testJWT, 10)
	codes := []string{"REPETIDO", "REPETIDO", "NOVO0001"}
	uc.SetCodeGenerator(func() string {
		c := codes[0]
		codes = codes[1:]
		return c
	})

	out, err := uc.RegisterUser(context.Background(), dto.RegisterRequest{Email: "novo@loja.com", Password: "segredo123", Name: "Novo"})
	require.NoError(t, err)
	assert.Equal(t, "NOVO0001", out.ReferralCode)
}

func TestLogin(t *testing.T) {
	s := memstore.New()
	uc := auth.NewAuthUseCase(s.Users(), testJWT, 10)
	ctx := context.Background()
	created, err := uc.RegisterUser(ctx, dto.RegisterRequest{Email: "ana@loja.com", Password: "segredo123", Name: "Ana"})
	require.NoError(t, err)

	out, err := uc.Login(ctx, dto.LoginRequest{Email: "ANA@loja.com", Password: "segredo123"})
	require.NoError(t, err)
	userID, role, err := jwt.Parse(testJWT.Secret, out.Token)
	require.NoError(t, err)
	assert.Equal(t, created.ID, userID)
	assert.Equal(t, entity.RoleSeller, role)

	_, err = uc.Login(ctx, dto.LoginRequest{Email: "ana@loja.com", Password: "errada123"})
	assert.ErrorIs(t, err, domain.ErrUnauthorized)

	_, err = uc.Login(ctx, dto.LoginRequest{Email: "ninguem@loja.com", Password: "segredo123"})
	assert.ErrorIs(t, err, domain.ErrUserNotFound)
}

func TestLogin_CuentaSuspendida(t *testing.T) {
	s := memstore.New()
	uc := auth.NewAuthUseCase(s.Users(), testJWT, 10)
	ctx := context.Background()
	created, err := uc.RegisterUser(ctx, dto.RegisterRequest{Email: "ana@loja.com", Password: "segredo123", Name: "Ana"})
	require.NoError(t, err)
	u, err := s.Users().GetByID(ctx, created.ID)
	require.NoError(t, err)
	u.Status = entity.UserStatusSuspended
	require.NoError(t, s.Users().Update(ctx, u))

	_, err = uc.Login(ctx, dto.LoginRequest{Email: "ana@loja.com", Password: "segredo123"})
	assert.ErrorIs(t, err, domain.ErrForbidden)
}
