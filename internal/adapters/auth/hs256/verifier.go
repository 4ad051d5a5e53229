// Package hs256 verifica localmente los JWT de sesión firmados con el
// secreto compartido del proveedor de identidad, sin round-trip remoto.
package hs256

import (
	"context"
	"errors"
	"strings"

	"pet-adoption-market/internal/ports/auth"

	"github.com/golang-jwt/jwt/v5"
)

var (
	ErrNoSecret     = errors.New("jwt secret must be provided")
	ErrInvalidToken = errors.New("invalid or expired token")
)

// Verifier implementa auth.AuthVerifier parseando el token con HS256.
type Verifier struct {
	secret []byte
}

func NewVerifier(secret string) (*Verifier, error) {
	secret = strings.TrimSpace(secret)
	if secret == "" {
		return nil, ErrNoSecret
	}
	return &Verifier{secret: []byte(secret)}, nil
}

func (v *Verifier) Verify(_ context.Context, tokenString string) (auth.Claims, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (any, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return v.secret, nil
	})
	if err != nil || !token.Valid {
		return auth.Claims{}, ErrInvalidToken
	}

	mapClaims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return auth.Claims{}, ErrInvalidToken
	}

	sub, _ := mapClaims["sub"].(string)
	if strings.TrimSpace(sub) == "" {
		return auth.Claims{}, ErrInvalidToken
	}

	claims := auth.Claims{UserID: strings.TrimSpace(sub)}
	if email, ok := mapClaims["email"].(string); ok {
		claims.Email = strings.TrimSpace(email)
	}

	// Metadatos de usuario estilo GoTrue: user_metadata.full_name / avatar_url
	if meta, ok := mapClaims["user_metadata"].(map[string]any); ok {
		if name, ok := meta["full_name"].(string); ok && name != "" {
			claims.FullName = strings.TrimSpace(name)
		} else if name, ok := meta["name"].(string); ok {
			claims.FullName = strings.TrimSpace(name)
		}
		if avatar, ok := meta["avatar_url"].(string); ok {
			claims.AvatarURL = strings.TrimSpace(avatar)
		}
	}

	return claims, nil
}
