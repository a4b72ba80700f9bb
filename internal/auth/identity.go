package auth

import (
	"errors"

	"github.com/golang-jwt/jwt/v5"
)

// IdentityAssertion is what the external identity provider vouches for:
// an opaque stable subject id, a verified email, and profile data. The
// OAuth handshake that produces it lives outside this service; we only
// verify the broker's signature.
type IdentityAssertion struct {
	Subject    string
	Email      string
	GivenName  string
	FamilyName string
	Picture    string
}

// VerifyIdentityToken validates an HS256 id_token minted by the identity
// broker and extracts the assertion.
func VerifyIdentityToken(secret []byte, tokenStr string) (IdentityAssertion, error) {
	tok, err := jwt.Parse(tokenStr, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return secret, nil
	}, jwt.WithValidMethods([]string{"HS256"}))
	if err != nil || !tok.Valid {
		return IdentityAssertion{}, errors.New("invalid identity token")
	}
	mapc, ok := tok.Claims.(jwt.MapClaims)
	if !ok {
		return IdentityAssertion{}, errors.New("invalid identity claims")
	}
	a := IdentityAssertion{}
	a.Subject, _ = mapc["sub"].(string)
	a.Email, _ = mapc["email"].(string)
	a.GivenName, _ = mapc["given_name"].(string)
	a.FamilyName, _ = mapc["family_name"].(string)
	a.Picture, _ = mapc["picture"].(string)
	if a.Subject == "" {
		return IdentityAssertion{}, errors.New("identity token missing subject")
	}
	if a.Email == "" {
		return IdentityAssertion{}, errors.New("identity token missing email")
	}
	return a, nil
}
