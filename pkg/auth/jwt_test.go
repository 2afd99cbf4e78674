package auth

import (
	"crypto/rand"
	"crypto/rsa"
	"crypto/x509"
	"encoding/pem"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret-key"

func signHS256(t *testing.T, secret string, claims Claims) string {
	t.Helper()
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	require.NoError(t, err)
	return token
}

func validClaims() Claims {
	now := time.Now()
	return Claims{
		Email: "viewer@example.com",
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   "3f1c2b6e-9a4d-4e2f-8b7a-1c2d3e4f5a6b",
			Issuer:    "social-auth",
			Audience:  jwt.ClaimStrings{"social-app"},
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(time.Hour)),
		},
	}
}

func newHSValidator(t *testing.T) *JWTValidator {
	t.Helper()
	v, err := NewJWTValidator(JWTConfig{
		SigningMethod: "HS256",
		SecretKey:     testSecret,
		Issuer:        "social-auth",
		Audience:      []string{"social-app"},
	})
	require.NoError(t, err)
	return v
}

func TestJWTValidator_ValidToken(t *testing.T) {
	v := newHSValidator(t)
	token := signHS256(t, testSecret, validClaims())

	claims, err := v.ValidateToken("Bearer " + token)

	require.NoError(t, err)
	assert.Equal(t, "3f1c2b6e-9a4d-4e2f-8b7a-1c2d3e4f5a6b", claims.Subject)
	assert.Equal(t, "viewer@example.com", claims.Email)

	userID, err := v.UserID(token)
	require.NoError(t, err)
	assert.Equal(t, claims.Subject, userID)
}

func TestJWTValidator_Rejections(t *testing.T) {
	v := newHSValidator(t)

	expired := validClaims()
	expired.ExpiresAt = jwt.NewNumericDate(time.Now().Add(-time.Minute))

	wrongIssuer := validClaims()
	wrongIssuer.Issuer = "someone-else"

	wrongAudience := validClaims()
	wrongAudience.Audience = jwt.ClaimStrings{"admin-console"}

	noSubject := validClaims()
	noSubject.Subject = ""

	tests := []struct {
		name    string
		token   string
		wantErr error
	}{
		{"empty", "", ErrMissingToken},
		{"garbage", "not.a.jwt", ErrInvalidToken},
		{"expired", signHS256(t, testSecret, expired), ErrExpiredToken},
		{"wrong secret", signHS256(t, "other-secret", validClaims()), ErrInvalidSignature},
		{"wrong issuer", signHS256(t, testSecret, wrongIssuer), ErrInvalidClaims},
		{"wrong audience", signHS256(t, testSecret, wrongAudience), ErrInvalidClaims},
		{"missing subject", signHS256(t, testSecret, noSubject), ErrInvalidClaims},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := v.ValidateToken(tt.token)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestJWTValidator_RejectsAlgorithmMismatch(t *testing.T) {
	v := newHSValidator(t)

	key, err := rsa.GenerateKey(rand.Reader, 2048)
	require.NoError(t, err)
	token, err := jwt.NewWithClaims(jwt.SigningMethodRS256, validClaims()).SignedString(key)
	require.NoError(t, err)

	_, err = v.ValidateToken(token)

	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestJWTValidator_RS256(t *testing.T) {
	// Arrange
	key, err := rsa.GenerateKey(rand.Reader, 2048)
	require.NoError(t, err)
	der, err := x509.MarshalPKIXPublicKey(&key.PublicKey)
	require.NoError(t, err)
	publicPEM := pem.EncodeToMemory(&pem.Block{Type: "PUBLIC KEY", Bytes: der})

	v, err := NewJWTValidator(JWTConfig{SigningMethod: "RS256", PublicKey: string(publicPEM)})
	require.NoError(t, err)

	token, err := jwt.NewWithClaims(jwt.SigningMethodRS256, validClaims()).SignedString(key)
	require.NoError(t, err)

	// Act
	userID, err := v.UserID(token)

	// Assert
	require.NoError(t, err)
	assert.Equal(t, "3f1c2b6e-9a4d-4e2f-8b7a-1c2d3e4f5a6b", userID)
}

func TestNewJWTValidator_ConfigErrors(t *testing.T) {
	_, err := NewJWTValidator(JWTConfig{SigningMethod: "HS256"})
	assert.Error(t, err)

	_, err = NewJWTValidator(JWTConfig{SigningMethod: "RS256"})
	assert.Error(t, err)

	_, err = NewJWTValidator(JWTConfig{SigningMethod: "RS256", PublicKey: "not pem"})
	assert.Error(t, err)

	_, err = NewJWTValidator(JWTConfig{SigningMethod: "ES512", SecretKey: "x"})
	assert.Error(t, err)

	v, err := NewJWTValidator(JWTConfig{SecretKey: "x"})
	require.NoError(t, err)
	assert.Equal(t, jwt.SigningMethodHS256, v.signingMethod)
}
