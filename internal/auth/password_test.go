package auth_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vivahmatch/backend/internal/auth"
	"github.com/vivahmatch/backend/internal/config"
)

// fastConfig keeps Argon2 cheap for tests
func fastConfig() *auth.PasswordConfig {
	return &auth.PasswordConfig{
		Memory:      1024,
		Iterations:  1,
		Parallelism: 1,
		SaltLength:  16,
		KeyLength:   32,
	}
}

func TestPasswordHasher_HashAndVerify(t *testing.T) {
	hasher := auth.NewPasswordHasher(fastConfig())

	hash, salt, err := hasher.Hash("Correct-Horse-1")
	require.NoError(t, err)
	assert.NotEmpty(t, hash)
	assert.NotEmpty(t, salt)

	ok, err := hasher.Verify("Correct-Horse-1", hash, salt)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = hasher.Verify("wrong-password", hash, salt)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestPasswordHasher_SaltsDiffer(t *testing.T) {
	hasher := auth.NewPasswordHasher(fastConfig())

	hash1, salt1, err := hasher.Hash("same-password")
	require.NoError(t, err)
	hash2, salt2, err := hasher.Hash("same-password")
	require.NoError(t, err)

	assert.NotEqual(t, salt1, salt2)
	assert.NotEqual(t, hash1, hash2)
}

func TestVerifyPassword_BadEncoding(t *testing.T) {
	cfg := fastConfig()

	_, err := auth.VerifyPassword("pw", "%%%", "c2FsdA==", cfg)
	assert.Error(t, err)

	_, err = auth.VerifyPassword("pw", "aGFzaA==", "%%%", cfg)
	assert.Error(t, err)
}

func TestNewPasswordHasher_Defaults(t *testing.T) {
	assert.NotNil(t, auth.NewPasswordHasher(nil))
	assert.Equal(t, uint32(16), auth.DefaultPasswordConfig().SaltLength)
}

func TestConfigFromAppConfig(t *testing.T) {
	appCfg := &config.AppConfig{}
	appCfg.PasswordHash.Memory = 2048
	appCfg.PasswordHash.Iterations = 2
	appCfg.PasswordHash.Parallelism = 1
	appCfg.PasswordHash.SaltLength = 8
	appCfg.PasswordHash.KeyLength = 16

	cfg := auth.ConfigFromAppConfig(appCfg)
	assert.Equal(t, uint32(2048), cfg.Memory)
	assert.Equal(t, uint32(2), cfg.Iterations)
	assert.Equal(t, uint8(1), cfg.Parallelism)
	assert.Equal(t, uint32(8), cfg.SaltLength)
	assert.Equal(t, uint32(16), cfg.KeyLength)
}
