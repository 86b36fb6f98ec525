package middleware

import (
	"errors"
	"fmt"
	"time"

	jwt "github.com/golang-jwt/jwt"
)

// TokenLifetime is the fixed validity of issued tokens. There is no
// revocation list; a leaked token stays valid until expiry.
const TokenLifetime = 24 * time.Hour

type JwtTokenService interface {
	Create(userID string, email string) (string, error)
	Validate(tokenString string) (*AuthClaims, error)
	ParseSecretGetter(token *jwt.Token) (interface{}, error)
}

type JwtToken struct {
	Secret []byte
}

// NewJwtToken fails on an empty secret so misconfiguration surfaces at
// startup rather than on the first authenticated request.
func NewJwtToken(secret string) (JwtTokenService, error) {
	if secret == "" {
		return nil, errors.New("jwt signing secret is empty")
	}
	return &JwtToken{
		Secret: []byte(secret),
	}, nil
}

type AuthClaims struct {
	UserID string `json:"userId"`
	Email  string `json:"email"`
	jwt.StandardClaims
}

func (tk *JwtToken) Create(userID string, email string) (string, error) {
	now := time.Now()
	data := AuthClaims{
		UserID: userID,
		Email:  email,
		StandardClaims: jwt.StandardClaims{
			ExpiresAt: now.Add(TokenLifetime).Unix(),
			IssuedAt:  now.Unix(),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, data)
	return token.SignedString(tk.Secret)
}

func (tk *JwtToken) Validate(tokenString string) (*AuthClaims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &AuthClaims{}, tk.ParseSecretGetter)
	if err != nil {
		return nil, fmt.Errorf("invalid token: %w", err)
	}

	claims, ok := token.Claims.(*AuthClaims)
	if !ok || !token.Valid {
		return nil, errors.New("invalid token")
	}

	if claims.ExpiresAt < time.Now().Unix() {
		return nil, errors.New("token has expired")
	}

	return claims, nil
}

func (tk *JwtToken) ParseSecretGetter(token *jwt.Token) (interface{}, error) {
	method, ok := token.Method.(*jwt.SigningMethodHMAC)
	if !ok || method.Alg() != "HS256" {
		return nil, errors.New("bad sign method")
	}
	return tk.Secret, nil
}
