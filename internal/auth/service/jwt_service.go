package service

import (
	"crypto/sha256"
	"encoding/hex"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/allisson/employees/internal/auth/domain"
)

// JWTConfig holds the signing configuration for session tokens.
type JWTConfig struct {
	AccessSecret      string
	RefreshSecret     string
	AccessExpiration  time.Duration
	RefreshExpiration time.Duration
	Issuer            string
}

// SessionClaims are the custom claims carried by both token kinds.
type SessionClaims struct {
	EmployeeID string `json:"id"`
	Email      string `json:"email"`
	TokenType  string `json:"token_type"`
	jwt.RegisteredClaims
}

// jwtService implements TokenService using HMAC-SHA256 signed JWTs.
type jwtService struct {
	config JWTConfig
}

// NewJWTService creates a new TokenService backed by HS256 JWTs.
func NewJWTService(config JWTConfig) TokenService {
	return &jwtService{
		config: config,
	}
}

// IssueAccessToken mints a short-lived access token for the identity.
func (s *jwtService) IssueAccessToken(identity domain.Identity) (string, error) {
	return s.issue(identity, domain.AccessToken, s.config.AccessSecret, s.config.AccessExpiration)
}

// IssueRefreshToken mints a long-lived refresh token for the identity.
func (s *jwtService) IssueRefreshToken(identity domain.Identity) (string, error) {
	return s.issue(identity, domain.RefreshToken, s.config.RefreshSecret, s.config.RefreshExpiration)
}

func (s *jwtService) issue(
	identity domain.Identity,
	kind domain.TokenKind,
	secret string,
	expiration time.Duration,
) (string, error) {
	now := time.Now()
	claims := SessionClaims{
		EmployeeID: identity.EmployeeID.String(),
		Email:      identity.Email,
		TokenType:  string(kind),
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    s.config.Issuer,
			Subject:   identity.EmployeeID.String(),
			ExpiresAt: jwt.NewNumericDate(now.Add(expiration)),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}

// VerifyAccessToken checks signature, expiry and token kind.
func (s *jwtService) VerifyAccessToken(token string) (*domain.Identity, error) {
	identity, err := s.verify(token, domain.AccessToken, s.config.AccessSecret)
	if err != nil {
		return nil, domain.ErrAccessTokenInvalid
	}
	return identity, nil
}

// VerifyRefreshToken checks signature, expiry and token kind.
func (s *jwtService) VerifyRefreshToken(token string) (*domain.Identity, error) {
	identity, err := s.verify(token, domain.RefreshToken, s.config.RefreshSecret)
	if err != nil {
		return nil, domain.ErrRefreshTokenInvalid
	}
	return identity, nil
}

func (s *jwtService) verify(tokenString string, kind domain.TokenKind, secret string) (*domain.Identity, error) {
	token, err := jwt.ParseWithClaims(tokenString, &SessionClaims{}, func(token *jwt.Token) (any, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return []byte(secret), nil
	})
	if err != nil {
		return nil, err
	}

	claims, ok := token.Claims.(*SessionClaims)
	if !ok || !token.Valid {
		return nil, jwt.ErrTokenInvalidClaims
	}
	if claims.TokenType != string(kind) {
		return nil, jwt.ErrTokenInvalidClaims
	}

	employeeID, err := uuid.Parse(claims.EmployeeID)
	if err != nil {
		return nil, jwt.ErrTokenInvalidClaims
	}

	return &domain.Identity{
		EmployeeID: employeeID,
		Email:      claims.Email,
	}, nil
}

// HashToken hashes a plain token using SHA-256.
// Returns the hash as a hexadecimal string.
func (s *jwtService) HashToken(plainToken string) string {
	hash := sha256.Sum256([]byte(plainToken))
	return hex.EncodeToString(hash[:])
}

// AccessTokenExpiration returns the configured access token lifetime.
func (s *jwtService) AccessTokenExpiration() time.Duration {
	return s.config.AccessExpiration
}

// RefreshTokenExpiration returns the configured refresh token lifetime.
func (s *jwtService) RefreshTokenExpiration() time.Duration {
	return s.config.RefreshExpiration
}
