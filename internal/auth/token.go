package auth

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/jonboulle/clockwork"
)

const purposeEmailVerification = "email_verification"

// Claims carried by the email verification token.
type Claims struct {
	UserID  string `json:"user_id"`
	Purpose string `json:"purpose"`
	jwt.RegisteredClaims
}

// VerificationTokenGenerator issues and checks the signed, time-bound tokens
// mailed to new accounts.
type VerificationTokenGenerator struct {
	Secret []byte
	TTL    time.Duration
	clock  clockwork.Clock
}

func NewVerificationTokenGenerator(secret string, ttl time.Duration, clock clockwork.Clock) *VerificationTokenGenerator {
	return &VerificationTokenGenerator{
		Secret: []byte(secret),
		TTL:    ttl,
		clock:  clock,
	}
}

// Generate creates a verification token bound to a single user.
func (g *VerificationTokenGenerator) Generate(userID int64) (string, error) {
	now := g.clock.Now()
	uid := strconv.FormatInt(userID, 10)

	claims := &Claims{
		UserID:  uid,
		Purpose: purposeEmailVerification,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(g.TTL)),
			IssuedAt:  jwt.NewNumericDate(now),
			Subject:   uid,
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(g.Secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign verification token: %w", err)
	}
	return signed, nil
}

// Validate checks signature, expiry and purpose, and returns the bound user id.
func (g *VerificationTokenGenerator) Validate(tokenString string) (int64, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return g.Secret, nil
	}, jwt.WithTimeFunc(g.clock.Now))

	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return 0, ErrTokenExpired
		}
		return 0, ErrInvalidToken
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return 0, ErrInvalidToken
	}
	if claims.Purpose != purposeEmailVerification {
		return 0, ErrInvalidToken
	}

	userID, err := strconv.ParseInt(claims.UserID, 10, 64)
	if err != nil {
		return 0, ErrInvalidToken
	}
	return userID, nil
}
