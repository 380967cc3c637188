package auth

import (
	"fmt"
	"strconv"
	"time"

	"github.com/arontec/scm-backend/pkg/config"
	"github.com/golang-jwt/jwt/v5"
)

const resetTokenIssuer = "arontec-scm"

var resetSigningMethod = jwt.SigningMethodHS256

type resetClaims struct {
	Email string `json:"email"`
	jwt.RegisteredClaims
}

// MintResetToken issues a short-lived signed token bound to the verified
// account. The token is the only credential accepted by the reset step.
func MintResetToken(cfg config.ResetTokenConfig, now time.Time, userID int64, email string) (string, error) {
	if cfg.Secret == "" {
		return "", fmt.Errorf("reset token secret is required")
	}
	if cfg.TTL <= 0 {
		return "", fmt.Errorf("reset token ttl must be positive")
	}
	if userID <= 0 {
		return "", fmt.Errorf("user id is required")
	}

	claims := resetClaims{
		Email: email,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    resetTokenIssuer,
			Subject:   strconv.FormatInt(userID, 10),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(cfg.TTL)),
		},
	}

	signed, err := jwt.NewWithClaims(resetSigningMethod, claims).SignedString([]byte(cfg.Secret))
	if err != nil {
		return "", fmt.Errorf("signing reset token: %w", err)
	}
	return signed, nil
}

// ParseResetToken validates the token signature and expiry and returns the
// bound user id.
func ParseResetToken(cfg config.ResetTokenConfig, tokenString string) (int64, error) {
	if cfg.Secret == "" {
		return 0, fmt.Errorf("reset token secret is required")
	}

	claims := &resetClaims{}
	_, err := jwt.ParseWithClaims(
		tokenString,
		claims,
		func(token *jwt.Token) (interface{}, error) {
			if token.Method != resetSigningMethod {
				return nil, fmt.Errorf("unexpected signing method %s", token.Header["alg"])
			}
			return []byte(cfg.Secret), nil
		},
		jwt.WithValidMethods([]string{resetSigningMethod.Alg()}),
		jwt.WithIssuer(resetTokenIssuer),
	)
	if err != nil {
		return 0, err
	}

	userID, err := strconv.ParseInt(claims.Subject, 10, 64)
	if err != nil || userID <= 0 {
		return 0, fmt.Errorf("invalid reset token subject")
	}
	return userID, nil
}
