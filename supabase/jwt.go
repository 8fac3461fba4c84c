package supabase

import (
	"time"

	"github.com/golang-jwt/jwt"
)

// MintServiceToken signs a service_role JWT with the project secret. Row
// level security does not apply to this role; the interactions service
// needs that because Discord users have no Supabase session of their own.
func MintServiceToken(secret string) (string, error) {
	claims := jwt.MapClaims{
		"role": "service_role",
		"iss":  "supabase",
		"iat":  time.Now().Unix(),
		"exp":  time.Now().Add(365 * 24 * time.Hour).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}
