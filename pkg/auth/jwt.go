package auth

import (
	"crypto/rsa"
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/golang-jwt/jwt/v5"
)

var (
	ErrInvalidToken     = errors.New("invalid token")
	ErrExpiredToken     = errors.New("token has expired")
	ErrInvalidSignature = errors.New("invalid token signature")
	ErrMissingToken     = errors.New("missing authentication token")
	ErrInvalidClaims    = errors.New("invalid token claims")
)

// Claims represents the JWT claims the feed service reads
type Claims struct {
	Email string `json:"email,omitempty"`
	jwt.RegisteredClaims
}

// JWTConfig holds JWT configuration
type JWTConfig struct {
	SigningMethod string   // RS256 or HS256
	PublicKey     string   // PEM, for RS256
	SecretKey     string   // for HS256
	Issuer        string   // expected issuer, empty to skip
	Audience      []string // accepted audiences, empty to skip
}

// JWTValidator verifies bearer tokens
type JWTValidator struct {
	publicKey     *rsa.PublicKey
	secretKey     []byte
	signingMethod jwt.SigningMethod
	issuer        string
	audience      []string
}

// NewJWTValidator creates a new JWT validator
func NewJWTValidator(config JWTConfig) (*JWTValidator, error) {
	v := &JWTValidator{
		issuer:   config.Issuer,
		audience: config.Audience,
	}

	switch config.SigningMethod {
	case "RS256":
		if config.PublicKey == "" {
			return nil, errors.New("public key required for RS256")
		}
		key, err := jwt.ParseRSAPublicKeyFromPEM([]byte(config.PublicKey))
		if err != nil {
			return nil, fmt.Errorf("failed to parse public key: %w", err)
		}
		v.signingMethod = jwt.SigningMethodRS256
		v.publicKey = key
	case "HS256", "":
		if config.SecretKey == "" {
			return nil, errors.New("secret key required for HS256")
		}
		v.signingMethod = jwt.SigningMethodHS256
		v.secretKey = []byte(config.SecretKey)
	default:
		return nil, fmt.Errorf("unsupported signing method: %s", config.SigningMethod)
	}

	return v, nil
}

// ValidateToken validates a JWT and returns its claims.
// A leading "Bearer " prefix is tolerated.
func (v *JWTValidator) ValidateToken(tokenString string) (*Claims, error) {
	tokenString = strings.TrimSpace(strings.TrimPrefix(tokenString, "Bearer "))
	if tokenString == "" {
		return nil, ErrMissingToken
	}

	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, v.keyFunc)
	if err != nil {
		switch {
		case errors.Is(err, jwt.ErrTokenExpired):
			return nil, ErrExpiredToken
		case errors.Is(err, jwt.ErrSignatureInvalid):
			return nil, ErrInvalidSignature
		default:
			return nil, fmt.Errorf("%w: %v", ErrInvalidToken, err)
		}
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, ErrInvalidClaims
	}

	if v.issuer != "" && claims.Issuer != v.issuer {
		return nil, fmt.Errorf("%w: invalid issuer", ErrInvalidClaims)
	}

	if len(v.audience) > 0 && !slices.ContainsFunc(v.audience, func(aud string) bool {
		return slices.Contains(claims.Audience, aud)
	}) {
		return nil, fmt.Errorf("%w: invalid audience", ErrInvalidClaims)
	}

	if claims.Subject == "" {
		return nil, fmt.Errorf("%w: missing subject", ErrInvalidClaims)
	}

	return claims, nil
}

// UserID returns the authenticated subject of a verified token
func (v *JWTValidator) UserID(tokenString string) (string, error) {
	claims, err := v.ValidateToken(tokenString)
	if err != nil {
		return "", err
	}
	return claims.Subject, nil
}

func (v *JWTValidator) keyFunc(token *jwt.Token) (interface{}, error) {
	if token.Method.Alg() != v.signingMethod.Alg() {
		return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
	}

	switch v.signingMethod {
	case jwt.SigningMethodRS256:
		return v.publicKey, nil
	case jwt.SigningMethodHS256:
		return v.secretKey, nil
	default:
		return nil, errors.New("unknown signing method")
	}
}
