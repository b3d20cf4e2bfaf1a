package auth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var (
	ErrInvalidToken = errors.New("invalid token")
	ErrExpiredToken = errors.New("token has expired")
)

const (
	issuer = "plantnet"

	// DefaultExpiry is how long a session token lives. There is no server-side
	// revocation: a leaked token stays valid until it expires.
	DefaultExpiry = 365 * 24 * time.Hour
)

type Claims struct {
	Email string `json:"email"`
	jwt.RegisteredClaims
}

type JWTService struct {
	secret []byte
	expiry time.Duration
	now    func() time.Time
}

func NewJWTService(secret string, expiry time.Duration) *JWTService {
	if expiry <= 0 {
		expiry = DefaultExpiry
	}
	return &JWTService{
		secret: []byte(secret),
		expiry: expiry,
		now:    time.Now,
	}
}

func (s *JWTService) Issue(email string) (string, error) {
	if email == "" {
		return "", errors.New("email claim is required")
	}

	now := s.now()
	claims := Claims{
		Email: email,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(s.expiry)),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			Issuer:    issuer,
			Subject:   email,
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.secret)
}

func (s *JWTService) Verify(tokenString string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken
		}
		return s.secret, nil
	}, jwt.WithTimeFunc(s.now))

	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrExpiredToken
		}
		return nil, ErrInvalidToken
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid || claims.Email == "" {
		return nil, ErrInvalidToken
	}

	return claims, nil
}

// Expiry is the lifetime given to new tokens; the cookie uses the same value.
func (s *JWTService) Expiry() time.Duration {
	return s.expiry
}
