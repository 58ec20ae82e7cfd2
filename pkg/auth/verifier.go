// Package auth verifies bearer tokens issued by the identity provider.
package auth

import (
	"errors"

	"github.com/golang-jwt/jwt/v5"
)

var ErrNoKeys = errors.New("auth: a shared secret or a JWKS url is required")

// Verifier accepts HS256 tokens signed with a shared secret and, when a
// JWKS provider is set, RS256 tokens signed by one of its keys.
type Verifier struct {
	secret []byte
	jwks   *Provider
}

func NewVerifier(secret string, jwks *Provider) (*Verifier, error) {
	if secret == "" && jwks == nil {
		return nil, ErrNoKeys
	}
	v := &Verifier{jwks: jwks}
	if secret != "" {
		v.secret = []byte(secret)
	}
	return v, nil
}

func (v *Verifier) methods() []string {
	var methods []string
	if v.secret != nil {
		methods = append(methods, jwt.SigningMethodHS256.Alg())
	}
	if v.jwks != nil {
		methods = append(methods, jwt.SigningMethodRS256.Alg())
	}
	return methods
}

func (v *Verifier) keyFunc(token *jwt.Token) (interface{}, error) {
	if _, ok := token.Method.(*jwt.SigningMethodHMAC); ok {
		return v.secret, nil
	}
	return v.jwks.KeyFunc(token)
}

// Parse validates signature, algorithm and expiry, and returns the claims.
func (v *Verifier) Parse(tokenString string) (jwt.MapClaims, error) {
	token, err := jwt.Parse(tokenString, v.keyFunc,
		jwt.WithValidMethods(v.methods()),
		jwt.WithExpirationRequired(),
	)
	if err != nil {
		return nil, err
	}
	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return nil, jwt.ErrTokenInvalidClaims
	}
	return claims, nil
}
