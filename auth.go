// auth.go issues and verifies the bearer tokens used by the admin routes.
// Tokens are self-contained HS256 JWTs; the server keeps no session state.
package main

import (
	"errors"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
)

const tokenTTL = 24 * time.Hour

var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrInvalidToken       = errors.New("invalid token")
)

type Claims struct {
	ID       int    `json:"id"`
	Username string `json:"username"`
	jwt.RegisteredClaims
}

type AuthService struct {
	store  Storage
	secret []byte
}

func NewAuthService(store Storage, secret []byte) *AuthService {
	return &AuthService{store: store, secret: secret}
}

// Login checks the credentials and returns a signed token valid for 24
// hours together with the matched user.
func (a *AuthService) Login(username, password string) (string, *User, error) {
	user, ok := a.store.GetUserByUsername(username)
	if !ok || !checkPassword(user.Password, password) {
		return "", nil, ErrInvalidCredentials
	}

	claims := Claims{
		ID:       user.ID,
		Username: user.Username,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(tokenTTL)),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(a.secret)
	if err != nil {
		return "", nil, err
	}
	return signed, user, nil
}

// Verify parses the token and returns its claims. Malformed, badly signed
// and expired tokens all fail the same way.
func (a *AuthService) Verify(tokenString string) (*Claims, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken
		}
		return a.secret, nil
	})
	if err != nil || !token.Valid {
		return nil, ErrInvalidToken
	}
	return claims, nil
}

// checkPassword compares by exact case-sensitive match. A stored secret
// with a bcrypt prefix is verified with bcrypt instead, so the seed can be
// supplied pre-hashed.
func checkPassword(stored, given string) bool {
	if strings.HasPrefix(stored, "$2") {
		return bcrypt.CompareHashAndPassword([]byte(stored), []byte(given)) == nil
	}
	return stored == given
}
