package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/s-r-jones/deep-dive-air/internal/common"
)

// Claims carries the standard claims plus the identities of the signed-in
// traveller.
type Claims struct {
	jwt.RegisteredClaims
	CredentialID int64 `json:"cid"`
	ProfileID    int64 `json:"pid"`
}

// Identity is what a valid access token proves.
type Identity struct {
	CredentialID int64
	ProfileID    int64
}

func GenerateToken(id Identity, secretKey []byte, validityDuration time.Duration) (string, error) {
	now := time.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(validityDuration)),
		},
		CredentialID: id.CredentialID,
		ProfileID:    id.ProfileID,
	})

	tokenString, err := token.SignedString(secretKey)
	if err != nil {
		return "", err
	}

	return tokenString, nil
}

// GetIdentityFromToken validates an HS256 token. Expired tokens yield
// common.ErrTokenExpired, anything else unusable common.ErrInvalidToken.
func GetIdentityFromToken(tokenString string, secretKey []byte) (Identity, error) {
	claims := &Claims{}

	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		return secretKey, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return Identity{}, common.ErrTokenExpired
		}
		return Identity{}, fmt.Errorf("%w: %v", common.ErrInvalidToken, err)
	}

	if !token.Valid {
		return Identity{}, common.ErrInvalidToken
	}

	return Identity{CredentialID: claims.CredentialID, ProfileID: claims.ProfileID}, nil
}
