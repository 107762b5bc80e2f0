package credentials

import (
	"crypto/sha256"
	"encoding/base64"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

const parentGrantPurpose = "parent_mode"

var (
	ErrGrantDisabled = errors.New("parent grants are disabled")
	ErrGrantInvalid  = errors.New("invalid parent grant")
	ErrGrantExpired  = errors.New("expired parent grant")
	ErrGrantRevoked  = errors.New("parent grant was issued for a different pin")
)

// ParentGrantClaims is carried by a token issued after a successful parent unlock.
// PINState ties the token to the PIN hash in force when it was issued, so
// changing the PIN revokes every outstanding grant.
type ParentGrantClaims struct {
	Purpose  string `json:"purpose"`
	PINState string `json:"pin_state"`
	jwt.RegisteredClaims
}

// IssueParentGrant signs a short-lived parent-mode token
func IssueParentGrant(secret []byte, pinHash string, ttl time.Duration, now time.Time) (string, error) {
	if len(secret) == 0 {
		return "", ErrGrantDisabled
	}
	if ttl <= 0 {
		ttl = 15 * time.Minute
	}

	claims := ParentGrantClaims{
		Purpose:  parentGrantPurpose,
		PINState: pinStateFingerprint(pinHash),
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   "parent",
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
			IssuedAt:  jwt.NewNumericDate(now),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(secret)
}

// VerifyParentGrant checks a token issued by IssueParentGrant against the current PIN hash
func VerifyParentGrant(secret []byte, rawToken, pinHash string, now time.Time) error {
	if len(secret) == 0 {
		return ErrGrantDisabled
	}
	if strings.TrimSpace(rawToken) == "" {
		return ErrGrantInvalid
	}

	claims := &ParentGrantClaims{}
	token, err := jwt.ParseWithClaims(rawToken, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method")
		}
		return secret, nil
	}, jwt.WithTimeFunc(func() time.Time { return now }))
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return ErrGrantExpired
		}
		return ErrGrantInvalid
	}
	if !token.Valid || claims.Purpose != parentGrantPurpose {
		return ErrGrantInvalid
	}
	if claims.PINState != pinStateFingerprint(pinHash) {
		return ErrGrantRevoked
	}
	return nil
}

func pinStateFingerprint(pinHash string) string {
	sum := sha256.Sum256([]byte("stickermissions.parent-grant.v1:" + pinHash))
	return base64.RawURLEncoding.EncodeToString(sum[:])
}
