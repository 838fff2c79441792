package utils

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfigFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("BACKEND_URL: http://cms:1337\nAPP_PORT: \"9000\"\nJWT_SECRET: s3cret\n"), 0o600))

	loadConfigFile(path)

	assert.Equal(t, "http://cms:1337", GetConfig("BACKEND_URL"))
	assert.Equal(t, "9000", GetConfig("APP_PORT"))
	assert.Equal(t, "s3cret", GetConfig("JWT_SECRET"))
	assert.Equal(t, "15", GetConfig("BACKEND_TIMEOUT_SECONDS"))
	assert.Equal(t, "*", GetConfig("CORS_ORIGINS"))
}

func TestGetConfigEnvOverride(t *testing.T) {
	loadConfigFile(filepath.Join(t.TempDir(), "missing.yaml"))

	t.Run("defaults when file is missing", func(t *testing.T) {
		assert.Equal(t, "http://localhost:1337", GetConfig("BACKEND_URL"))
		assert.Equal(t, "8080", GetConfig("APP_PORT"))
	})

	t.Run("environment wins", func(t *testing.T) {
		t.Setenv("BACKEND_URL", "https://cms.example.com")
		assert.Equal(t, "https://cms.example.com", GetConfig("BACKEND_URL"))
	})

	t.Run("unknown key", func(t *testing.T) {
		assert.Empty(t, GetConfig("NOPE"))
	})
}

func TestGetConfigInt(t *testing.T) {
	loadConfigFile(filepath.Join(t.TempDir(), "missing.yaml"))

	assert.Equal(t, 15, GetConfigInt("BACKEND_TIMEOUT_SECONDS", 5))

	t.Setenv("BACKEND_TIMEOUT_SECONDS", "abc")
	assert.Equal(t, 5, GetConfigInt("BACKEND_TIMEOUT_SECONDS", 5))
}

type signupForm struct {
	Email                string `json:"email" validate:"required,email"`
	Password             string `json:"password" validate:"required"`
	PasswordConfirmation string `json:"passwordConfirmation" validate:"required,eqfield=Password"`
}

func TestValidationMessages(t *testing.T) {
	InitValidator()

	err := Validate.Struct(signupForm{Password: "a", PasswordConfirmation: "b"})
	require.Error(t, err)

	msgs := ValidationMessages(err)
	assert.Contains(t, msgs, "email is required")
	assert.Contains(t, msgs, "passwordConfirmation must match Password")
}
