package authn

import (
	"net/http/httptest"
	"testing"
	"time"

	"github.com/ethyca/fides-consent-service/internal/system/config"
	"github.com/ethyca/fides-consent-service/internal/system/log"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret"

func initAuthConfig(t *testing.T) {
	t.Helper()
	config.OverrideFCSRuntime(config.Config{
		Auth: config.AuthConfig{
			JWTSecret: testSecret,
			Audience:  "fides-consent-service",
		},
	})
	_ = log.Init("debug")
}

func signedToken(t *testing.T, secret, audience, scope string, expiresIn time.Duration) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"aud":   audience,
		"exp":   time.Now().Add(expiresIn).Unix(),
		"scope": scope,
	})
	signed, err := token.SignedString([]byte(secret))
	require.NoError(t, err)
	return signed
}

func TestValidateRequestAcceptsValidToken(t *testing.T) {
	initAuthConfig(t)

	r := httptest.NewRequest("PUT", "/api/v1/privacy-experience", nil)
	r.Header.Set("Authorization", "Bearer "+signedToken(t, testSecret, "fides-consent-service", "experience:manage telemetry:view", time.Hour))

	assert.NoError(t, ValidateRequest(r, "experience:manage"))
}

func TestValidateRequestRejectsMissingHeader(t *testing.T) {
	initAuthConfig(t)

	r := httptest.NewRequest("PUT", "/api/v1/privacy-experience", nil)

	assert.Error(t, ValidateRequest(r, "experience:manage"))
}

func TestValidateRequestRejectsWrongSecret(t *testing.T) {
	initAuthConfig(t)

	r := httptest.NewRequest("PUT", "/api/v1/privacy-experience", nil)
	r.Header.Set("Authorization", "Bearer "+signedToken(t, "other-secret", "fides-consent-service", "experience:manage", time.Hour))

	assert.Error(t, ValidateRequest(r, "experience:manage"))
}

func TestValidateRequestRejectsWrongAudience(t *testing.T) {
	initAuthConfig(t)

	r := httptest.NewRequest("PUT", "/api/v1/privacy-experience", nil)
	r.Header.Set("Authorization", "Bearer "+signedToken(t, testSecret, "someone-else", "experience:manage", time.Hour))

	assert.Error(t, ValidateRequest(r, "experience:manage"))
}

func TestValidateRequestRejectsMissingScope(t *testing.T) {
	initAuthConfig(t)

	r := httptest.NewRequest("PUT", "/api/v1/privacy-experience", nil)
	r.Header.Set("Authorization", "Bearer "+signedToken(t, testSecret, "fides-consent-service", "telemetry:view", time.Hour))

	assert.Error(t, ValidateRequest(r, "experience:manage"))
}

func TestValidateRequestRejectsExpiredToken(t *testing.T) {
	initAuthConfig(t)

	r := httptest.NewRequest("PUT", "/api/v1/privacy-experience", nil)
	r.Header.Set("Authorization", "Bearer "+signedToken(t, testSecret, "fides-consent-service", "experience:manage", -time.Hour))

	assert.Error(t, ValidateRequest(r, "experience:manage"))
}
