package iam

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/luminahr/portal/pkg/config"
	"github.com/luminahr/portal/pkg/kernel"
)

// TokenClaims es la vista del dominio sobre los claims validados
type TokenClaims struct {
	UserID    kernel.UserID
	Email     string
	Name      string
	Scopes    []string
	IssuedAt  time.Time
	ExpiresAt time.Time
}

// TokenService valida tokens de acceso del staff
type TokenService interface {
	ValidateAccessToken(tokenString string) (*TokenClaims, error)
}

// JWTService implementación del TokenService usando JWT
type JWTService struct {
	secretKey      []byte
	accessTokenTTL time.Duration
	issuer         string
	audience       []string
}

// NewJWTServiceFromConfig crea una nueva instancia del servicio JWT
func NewJWTServiceFromConfig(cfg *config.JWTConfig) *JWTService {
	return &JWTService{
		secretKey:      []byte(cfg.SecretKey),
		accessTokenTTL: cfg.AccessTokenTTL,
		issuer:         cfg.Issuer,
		audience:       cfg.Audience,
	}
}

// Claims personalizados para JWT
type JWTClaims struct {
	UserID kernel.UserID `json:"user_id"`
	Email  string        `json:"email"`
	Name   string        `json:"name"`
	Scopes []string      `json:"scopes"`
	jwt.RegisteredClaims
}

// GenerateAccessToken genera un token de acceso JWT.
// Usado en desarrollo y en tests; en producción los tokens llegan del IdP.
func (j *JWTService) GenerateAccessToken(userID kernel.UserID, email, name string, scopes []string) (string, error) {
	now := time.Now()

	if scopes == nil {
		scopes = []string{}
	}

	jwtClaims := JWTClaims{
		UserID: userID,
		Email:  email,
		Name:   name,
		Scopes: scopes,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    j.issuer,
			Subject:   userID.String(),
			Audience:  j.audience,
			ExpiresAt: jwt.NewNumericDate(now.Add(j.accessTokenTTL)),
			NotBefore: jwt.NewNumericDate(now),
			IssuedAt:  jwt.NewNumericDate(now),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwtClaims)

	tokenString, err := token.SignedString(j.secretKey)
	if err != nil {
		return "", ErrInvalidToken().WithDetail("error", err.Error())
	}

	return tokenString, nil
}

// ValidateAccessToken valida y decodifica un token de acceso
func (j *JWTService) ValidateAccessToken(tokenString string) (*TokenClaims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &JWTClaims{}, func(token *jwt.Token) (any, error) {
		// Verificar el método de firma
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return j.secretKey, nil
	})

	if err != nil {
		return nil, ErrInvalidToken().WithDetail("error", err.Error())
	}

	if !token.Valid {
		return nil, ErrInvalidToken().WithDetail("error", "token is invalid")
	}

	jwtClaims, ok := token.Claims.(*JWTClaims)
	if !ok {
		return nil, ErrInvalidToken().WithDetail("error", "invalid claims type")
	}

	return &TokenClaims{
		UserID:    jwtClaims.UserID,
		Email:     jwtClaims.Email,
		Name:      jwtClaims.Name,
		Scopes:    jwtClaims.Scopes,
		IssuedAt:  jwtClaims.IssuedAt.Time,
		ExpiresAt: jwtClaims.ExpiresAt.Time,
	}, nil
}
