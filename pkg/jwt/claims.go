package jwt

import "github.com/golang-jwt/jwt/v5"

// Claims are the token claims issued to an authenticated user. Roles travel
// in the token; station assignments do not, because they can change while a
// token is live and are looked up per request instead.
type Claims struct {
	jwt.RegisteredClaims
	Username string   `json:"username"`
	Roles    []string `json:"roles"`
}
