package jwt

import (
	"time"

	"campus-connect/config"

	"github.com/golang-jwt/jwt/v5"
)

// Payload identifies the authenticated user inside a token.
type Payload struct {
	UserID uint   `json:"user_id"`
	Role   string `json:"role"`
}

type Claims struct {
	Payload
	jwt.RegisteredClaims
}

// CreateToken signs an access token for the payload.
func CreateToken(payload Payload) string {
	cfg := config.Get()
	expire := time.Duration(cfg.JWT.AccessExpire) * time.Second

	claims := Claims{
		Payload: payload,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    "campus-connect",
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(expire)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(cfg.JWT.AccessSecret))
	if err != nil {
		// HS256 signing over in-memory bytes cannot fail at runtime.
		panic(err)
	}
	return signed
}

// ParseToken validates a token and returns its claims.
func ParseToken(tokenString string) (*Claims, bool) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (any, error) {
		return []byte(config.Get().JWT.AccessSecret), nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil || !token.Valid {
		return nil, false
	}
	return claims, true
}
