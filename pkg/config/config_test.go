package config

import (
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCloudinaryConfig_IsConfigured(t *testing.T) {
	real := CloudinaryConfig{CloudName: "acme", APIKey: "123", APISecret: "s3cr3t"}
	assert.True(t, real.IsConfigured())

	cases := map[string]CloudinaryConfig{
		"vacío":              {},
		"sin secret":         {CloudName: "acme", APIKey: "123"},
		"nombre de ejemplo":  {CloudName: "your_cloudinary_name", APIKey: "123", APISecret: "s"},
		"api key de ejemplo": {CloudName: "acme", APIKey: "your_cloudinary_key", APISecret: "s"},
		"secret de ejemplo":  {CloudName: "acme", APIKey: "123", APISecret: "your_cloudinary_secret"},
	}
	for name, c := range cases {
		t.Run(name, func(t *testing.T) {
			assert.False(t, c.IsConfigured())
		})
	}
}

func TestParseExpiry(t *testing.T) {
	cases := map[string]time.Duration{
		"30d":  30 * 24 * time.Hour,
		"12h":  12 * time.Hour,
		"90m":  90 * time.Minute,
		"3600": time.Hour,
	}
	for in, want := range cases {
		got, err := ParseExpiry(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}

	for _, bad := range []string{"", "xd", "soon"} {
		_, err := ParseExpiry(bad)
		assert.Error(t, err, bad)
	}
}

func TestFromViper_Defaults(t *testing.T) {
	cfg, err := fromViper(viper.New())
	require.NoError(t, err)

	assert.Equal(t, 30*24*time.Hour, cfg.JWT.ExpiresIn)
	assert.Equal(t, StoreDriverPostgres, cfg.DB.Driver)
	assert.Equal(t, "business_documents", cfg.Cloudinary.Folder)
	assert.Equal(t, "./uploads", cfg.Upload.Dir)
	assert.Equal(t, "0.0.0.0:8080", cfg.HTTP.Addr())
	assert.False(t, cfg.Cloudinary.IsConfigured())
}

func TestFromViper_DriverInvalido(t *testing.T) {
	v := viper.New()
	v.Set("STORE_DRIVER", "mongo")
	_, err := fromViper(v)
	assert.Error(t, err)
}

func TestLoad_DesdeEntorno(t *testing.T) {
	t.Setenv("JWT_SECRET", "abc")
	t.Setenv("JWT_EXPIRES_IN", "2h")
	t.Setenv("STORE_DRIVER", "memory")
	t.Setenv("HTTP_PORT", "9090")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "abc", cfg.JWT.Secret)
	assert.Equal(t, 2*time.Hour, cfg.JWT.ExpiresIn)
	assert.Equal(t, StoreDriverMemory, cfg.DB.Driver)
	assert.Equal(t, 9090, cfg.HTTP.Port)
}

func TestDBConfig_DSN(t *testing.T) {
	c := DBConfig{Host: "db", Port: 5432, User: "u", Password: "p@ss", DBName: "m", SSLMode: "disable"}
	assert.Equal(t, "postgres://u:p%40ss@db:5432/m?sslmode=disable", c.ConnectionString())

	c.DatabaseURL = "postgres://x"
	assert.Equal(t, "postgres://x", c.ConnectionString())
}
