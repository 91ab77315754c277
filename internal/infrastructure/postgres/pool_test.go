package postgres_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Vitrine-api/internal/infrastructure/postgres"
	"github.com/jhoicas/Vitrine-api/pkg/config"
)

func TestNewPoolConfig_TomaTamanosDeLaConfig(t *testing.T) {
	cfg := config.DBConfig{
		Host: "db.interno", Port: 5433, User: "app", Password: "secreto", DBName: "vitrine", SSLMode: "disable",
		MaxConns: 10, MinConns: 3, MaxConnLifetime: 15, MaxConnIdle: 5,
	}

	pc, err := postgres.NewPoolConfig(cfg)
	require.NoError(t, err)

	assert.Equal(t, "db.interno", pc.ConnConfig.Host, "el host no se reemplaza por una IP")
	assert.Equal(t, uint16(5433), pc.ConnConfig.Port)
	assert.Equal(t, "vitrine", pc.ConnConfig.Database)
	assert.Equal(t, int32(10), pc.MaxConns)
	assert.Equal(t, int32(3), pc.MinConns)
	assert.Equal(t, 15*time.Minute, pc.MaxConnLifetime)
	assert.Equal(t, 5*time.Minute, pc.MaxConnIdleTime)
	assert.NotNil(t, pc.AfterConnect, "registra el codec decimal")
}

func TestNewPoolConfig_DatabaseURLTienePrioridad(t *testing.T) {
	cfg := config.DBConfig{
		DatabaseURL: "postgres://u:p@supabase.example:6543/postgres?sslmode=disable",
		Host:        "ignorado",
		MaxConns:    4,
	}

	pc, err := postgres.NewPoolConfig(cfg)
	require.NoError(t, err)

	assert.Equal(t, "supabase.example", pc.ConnConfig.Host)
	assert.Equal(t, uint16(6543), pc.ConnConfig.Port)
	assert.Equal(t, int32(4), pc.MaxConns)
}

func TestNewPoolConfig_MinimoNoSuperaElMaximo(t *testing.T) {
	cfg := config.DBConfig{DatabaseURL: "postgres://u:p@db:5432/vitrine?sslmode=disable", MaxConns: 2, MinConns: 8}

	pc, err := postgres.NewPoolConfig(cfg)
	require.NoError(t, err)

	assert.Equal(t, int32(2), pc.MinConns)
}

func TestNewPoolConfig_DSNInvalido(t *testing.T) {
	_, err := postgres.NewPoolConfig(config.DBConfig{DatabaseURL: "postgres://u:p@db:notaport/x"})
	assert.Error(t, err)
}
