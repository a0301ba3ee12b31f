package auth

import (
	"context"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/pkg/errors"
)

const AuthorizationHeader = "Authorization"

var ErrInvalidToken = errors.New("invalid token")

// Claims is the session token payload.
type Claims struct {
	UserID   int64  `json:"uid"`
	Username string `json:"username"`
	Email    string `json:"email"`
	jwt.RegisteredClaims
}

// EmailClaims proves ownership of an email address after OTP
// verification. It is accepted only by the register operation.
type EmailClaims struct {
	Email string `json:"email"`
	jwt.RegisteredClaims
}

func IssueSession(key []byte, userID int64, username, email string, ttl time.Duration) (string, error) {
	claims := &Claims{
		UserID:   userID,
		Username: username,
		Email:    email,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(ttl)),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(key)
}

func ParseSession(key []byte, tokenStr string) (*Claims, error) {
	claims := new(Claims)
	token, err := jwt.ParseWithClaims(tokenStr, claims, func(t *jwt.Token) (interface{}, error) {
		return key, nil
	})
	if err != nil || !token.Valid {
		return nil, ErrInvalidToken
	}
	if claims.ExpiresAt != nil && time.Now().After(claims.ExpiresAt.Time) {
		return nil, ErrInvalidToken
	}
	return claims, nil
}

func IssueEmailToken(key []byte, email string, ttl time.Duration) (string, error) {
	claims := &EmailClaims{
		Email: email,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(ttl)),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(key)
}

// ParseEmailToken returns the verified email or ErrInvalidToken.
func ParseEmailToken(key []byte, tokenStr string) (string, error) {
	claims := new(EmailClaims)
	token, err := jwt.ParseWithClaims(tokenStr, claims, func(t *jwt.Token) (interface{}, error) {
		return key, nil
	})
	if err != nil || !token.Valid {
		return "", ErrInvalidToken
	}
	return claims.Email, nil
}

type ctxKey struct{}

type authInfo struct {
	username string
	email    string
}

func SetAuthContext(ctx context.Context, username, email string) context.Context {
	return context.WithValue(ctx, ctxKey{}, authInfo{username: username, email: email})
}

func FromContext(ctx context.Context) (username, email string, ok bool) {
	info, ok := ctx.Value(ctxKey{}).(authInfo)
	return info.username, info.email, ok
}
