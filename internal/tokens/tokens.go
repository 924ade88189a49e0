package tokens

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/Skotchmaster/leave_management/internal/models"
)

const (
	SessionTTL = 48 * time.Hour
	ResetTTL   = time.Hour
)

type Kind string

const (
	KindSession Kind = "session"
	KindReset   Kind = "reset"
)

var (
	ErrSecretMissing = errors.New("jwt secret is not configured")
	ErrTokenExpired  = errors.New("token expired")
	ErrTokenInvalid  = errors.New("token invalid")
)

type Claims struct {
	UserID string      `json:"id"`
	Email  string      `json:"email,omitempty"`
	Role   models.Role `json:"role,omitempty"`
	Kind   Kind        `json:"typ"`
	jwt.RegisteredClaims
}

// Issuer signs and verifies HS256 tokens with a shared secret.
type Issuer struct {
	Secret []byte
	Now    func() time.Time
}

func NewIssuer(secret []byte) *Issuer {
	return &Issuer{Secret: secret}
}

func (i *Issuer) now() time.Time {
	if i.Now != nil {
		return i.Now()
	}
	return time.Now()
}

func (i *Issuer) IssueSession(u models.User) (string, time.Time, error) {
	return i.issue(Claims{
		UserID: u.ID,
		Email:  u.Email,
		Role:   u.Role,
		Kind:   KindSession,
	}, SessionTTL)
}

func (i *Issuer) IssueReset(userID string) (string, time.Time, error) {
	return i.issue(Claims{UserID: userID, Kind: KindReset}, ResetTTL)
}

func (i *Issuer) issue(claims Claims, ttl time.Duration) (string, time.Time, error) {
	if len(i.Secret) == 0 {
		return "", time.Time{}, ErrSecretMissing
	}
	now := i.now()
	exp := now.Add(ttl)
	claims.RegisteredClaims = jwt.RegisteredClaims{
		Subject:   claims.UserID,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(exp),
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(i.Secret)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("sign token: %w", err)
	}
	return signed, exp, nil
}

// Parse verifies signature and expiry. Failures collapse to ErrTokenExpired or ErrTokenInvalid.
func (i *Issuer) Parse(tokenStr string) (*Claims, error) {
	if len(i.Secret) == 0 {
		return nil, ErrSecretMissing
	}

	var claims Claims
	tkn, err := jwt.ParseWithClaims(tokenStr, &claims, func(t *jwt.Token) (any, error) {
		return i.Secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithTimeFunc(i.now),
		jwt.WithExpirationRequired(),
	)
	switch {
	case err == nil && tkn.Valid:
	case errors.Is(err, jwt.ErrTokenExpired):
		return nil, ErrTokenExpired
	default:
		return nil, ErrTokenInvalid
	}
	if claims.UserID == "" {
		return nil, ErrTokenInvalid
	}
	return &claims, nil
}

func (i *Issuer) ParseSession(tokenStr string) (*Claims, error) {
	return i.parseKind(tokenStr, KindSession)
}

func (i *Issuer) ParseReset(tokenStr string) (*Claims, error) {
	return i.parseKind(tokenStr, KindReset)
}

func (i *Issuer) parseKind(tokenStr string, kind Kind) (*Claims, error) {
	claims, err := i.Parse(tokenStr)
	if err != nil {
		return nil, err
	}
	if claims.Kind != kind {
		return nil, ErrTokenInvalid
	}
	return claims, nil
}
