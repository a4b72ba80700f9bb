package auth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// SessionClaims is what a verified session token carries. Expiry is
// deliberately not part of the token: the session row's ExpiresAt is the
// single authority so the rolling TTL can extend past the moment of
// signing.
type SessionClaims struct {
	Subject string
	JTI     string
}

func signSessionToken(secret []byte, userID, jti string) (string, error) {
	claims := jwt.MapClaims{
		"sub": userID,
		"jti": jti,
		"iat": time.Now().Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(secret)
}

func verifySessionToken(secret []byte, tokenStr string) (SessionClaims, error) {
	tok, err := jwt.Parse(tokenStr, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return secret, nil
	}, jwt.WithValidMethods([]string{"HS256"}))
	if err != nil || !tok.Valid {
		return SessionClaims{}, errors.New("invalid token")
	}
	mapc, ok := tok.Claims.(jwt.MapClaims)
	if !ok {
		return SessionClaims{}, errors.New("invalid claims")
	}
	sub, _ := mapc["sub"].(string)
	jti, _ := mapc["jti"].(string)
	if sub == "" || jti == "" {
		return SessionClaims{}, errors.New("invalid claims")
	}
	return SessionClaims{Subject: sub, JTI: jti}, nil
}
