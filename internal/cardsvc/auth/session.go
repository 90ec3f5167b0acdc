package auth

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/jwtauth"
)

// SessionCookie is the cookie jwtauth.Verifier reads by default.
const SessionCookie = "jwt"

// Principal is the authenticated identity extracted from the
// provider's user-info response. Named claims only, not the raw blob.
type Principal struct {
	Subject  string `json:"sub"`
	Name     string `json:"name"`
	Email    string `json:"email"`
	Picture  string `json:"picture"`
	Provider string `json:"provider"`
}

// Sessions mints and verifies the signed cookie that carries the
// principal between requests.
type Sessions struct {
	tokenAuth *jwtauth.JWTAuth
	ttl       time.Duration
}

func NewSessions(secret string, ttl time.Duration) *Sessions {
	return &Sessions{
		tokenAuth: jwtauth.New("HS256", []byte(secret), nil),
		ttl:       ttl,
	}
}

func (s *Sessions) Issue(p Principal) (string, error) {
	claims := map[string]interface{}{
		"sub":      p.Subject,
		"name":     p.Name,
		"email":    p.Email,
		"picture":  p.Picture,
		"provider": p.Provider,
		"exp":      time.Now().Add(s.ttl).Unix(),
	}

	_, tokenString, err := s.tokenAuth.Encode(claims)
	if err != nil {
		return "", err
	}

	return tokenString, nil
}

func (s *Sessions) Cookie(token string) *http.Cookie {
	return &http.Cookie{
		Name:     SessionCookie,
		Value:    token,
		Path:     "/",
		MaxAge:   int(s.ttl.Seconds()),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	}
}

func (s *Sessions) Verifier() func(http.Handler) http.Handler {
	return jwtauth.Verifier(s.tokenAuth)
}

// PrincipalFromContext rebuilds the principal from the verified
// session claims.
func PrincipalFromContext(ctx context.Context) (Principal, error) {
	_, claims, err := jwtauth.FromContext(ctx)
	if err != nil {
		return Principal{}, err
	}

	return Principal{
		Subject:  stringClaim(claims, "sub"),
		Name:     stringClaim(claims, "name"),
		Email:    stringClaim(claims, "email"),
		Picture:  stringClaim(claims, "picture"),
		Provider: stringClaim(claims, "provider"),
	}, nil
}

func stringClaim(claims map[string]interface{}, key string) string {
	v, _ := claims[key].(string)
	return v
}
