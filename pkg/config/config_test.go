package config

import (
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromViper_SinSecreto_Falla(t *testing.T) {
	v := viper.New()
	_, err := fromViper(v)
	assert.ErrorIs(t, err, ErrMissingJWTSecret)
}

func TestFromViper_Defaults(t *testing.T) {
	v := viper.New()
	v.Set("JWT_SECRET", "s3cr3t")

	cfg, err := fromViper(v)
	require.NoError(t, err)

	assert.Equal(t, 480, cfg.JWT.Expiration, "la sesión dura 8 horas por defecto")
	assert.Equal(t, 3000, cfg.HTTP.Port)
	assert.Equal(t, "postgres", cfg.DB.Driver)
	assert.True(t, cfg.DB.Migrate)
	assert.Equal(t, "0.0.0.0:3000", cfg.HTTP.Addr())
	assert.Equal(t, 5, cfg.HTTP.StorageTimeout)
}

func TestFromViper_ValoresComoString(t *testing.T) {
	v := viper.New()
	v.Set("JWT_SECRET", "s3cr3t")
	v.Set("DB_PORT", "6543")
	v.Set("DB_MIGRATE", "false")
	v.Set("DB_DRIVER", "memory")

	cfg, err := fromViper(v)
	require.NoError(t, err)

	assert.Equal(t, 6543, cfg.DB.Port)
	assert.False(t, cfg.DB.Migrate)
	assert.Equal(t, "memory", cfg.DB.Driver)
}

func TestFromViper_DriverDesconocido(t *testing.T) {
	v := viper.New()
	v.Set("JWT_SECRET", "s3cr3t")
	v.Set("DB_DRIVER", "mysql")

	_, err := fromViper(v)
	assert.Error(t, err)
}

func TestDBConfig_ConnectionString(t *testing.T) {
	c := DBConfig{Host: "db", Port: 5432, User: "app", Password: "p@ss/word", DBName: "estoque", SSLMode: "disable"}
	assert.Equal(t, "postgres://app:p%40ss%2Fword@db:5432/estoque?sslmode=disable", c.ConnectionString())

	c.DatabaseURL = "postgres://x@y/z"
	assert.Equal(t, "postgres://x@y/z", c.ConnectionString())
}
