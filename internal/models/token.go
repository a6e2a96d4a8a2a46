package models

import "github.com/golang-jwt/jwt/v5"

// Claims is the only claim shape both token kinds carry. Subject holds the
// user ID; iat and exp come from jwt.RegisteredClaims and are set at signing
// time, never supplied by callers.
type Claims struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	jwt.RegisteredClaims
}

// TokenPair is the result of issuing tokens for a verified identity.
type TokenPair struct {
	AccessToken  string
	RefreshToken string
	ExpiresIn    int64
}
