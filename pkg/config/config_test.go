package config_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/foxred/hillary/pkg/config"
)

func TestLoad_ValoresPorDefecto(t *testing.T) {
	t.Setenv("JWT_SECRET", "s3cr3t")

	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, "s3cr3t", cfg.JWT.Secret)
	assert.Equal(t, 60, cfg.JWT.Expiration)
	assert.Equal(t, "hillary-api", cfg.JWT.Issuer)
	assert.Equal(t, "hillary-web", cfg.JWT.Audience)
	assert.Equal(t, "0.0.0.0:8080", cfg.HTTP.Addr())
	assert.Equal(t, "full", cfg.Users.EmailFormat)
	assert.True(t, cfg.Web.CSRF)
	assert.Equal(t, time.Hour, cfg.Web.SessionDuration())
}

func TestLoad_EnvSobrescribe(t *testing.T) {
	t.Setenv("HTTP_PORT", "9090")
	t.Setenv("WEB_API_BASE_URL", "https://api.foxred.test/")
	t.Setenv("WEB_COOKIE_SECURE", "true")
	t.Setenv("USER_EMAIL_FORMAT", "SHORT")
	t.Setenv("REDIS_DB", "3")

	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.HTTP.Port)
	assert.Equal(t, "https://api.foxred.test", cfg.Web.APIBaseURL, "la barra final se recorta")
	assert.True(t, cfg.Web.CookieSecure)
	assert.Equal(t, "short", cfg.Users.EmailFormat)
	assert.Equal(t, 3, cfg.Redis.DB)
}

func TestLoad_FormatoEmailInvalido(t *testing.T) {
	t.Setenv("USER_EMAIL_FORMAT", "largo")

	_, err := config.Load()
	assert.Error(t, err)
}

func TestDBConfig_ConnectionString(t *testing.T) {
	db := config.DBConfig{Host: "db", Port: 5432, User: "hillary", Password: "p@ss:word", DBName: "hillary", SSLMode: "disable"}
	assert.Equal(t, "postgres://hillary:p%40ss%3Aword@db:5432/hillary?sslmode=disable", db.ConnectionString())

	db.DatabaseURL = "postgres://x@y/z"
	assert.Equal(t, "postgres://x@y/z", db.ConnectionString())
}
