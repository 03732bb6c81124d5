package security

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/ashkelon/forum/internal/core/domain"
)

const defaultTokenTTL = 24 * time.Hour

// JWTCodec issues and decodes HS256 bearer tokens whose subject is the login.
type JWTCodec struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

func NewJWTCodec(secret string, ttl time.Duration) *JWTCodec {
	if ttl <= 0 {
		ttl = defaultTokenTTL
	}
	return &JWTCodec{secret: []byte(secret), ttl: ttl, now: time.Now}
}

// Issue returns a signed token for login.
func (c *JWTCodec) Issue(login string) (string, error) {
	now := c.now()
	claims := jwt.RegisteredClaims{
		Subject:   login,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(c.ttl)),
	}
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString(c.secret)
}

// Decode accepts "Bearer <jwt>". The returned credentials carry no secret
// but do carry the issue time.
func (c *JWTCodec) Decode(token string) (domain.Credentials, error) {
	scheme, raw, ok := strings.Cut(strings.TrimSpace(token), " ")
	if !ok || !strings.EqualFold(scheme, "bearer") {
		return domain.Credentials{}, fmt.Errorf("%w: expected bearer scheme", domain.ErrUnauthenticated)
	}

	claims := &jwt.RegisteredClaims{}
	parsed, err := jwt.ParseWithClaims(strings.TrimSpace(raw), claims, func(t *jwt.Token) (interface{}, error) {
		if t.Method.Alg() != jwt.SigningMethodHS256.Alg() {
			return nil, jwt.ErrTokenSignatureInvalid
		}
		return c.secret, nil
	}, jwt.WithTimeFunc(c.now), jwt.WithExpirationRequired())
	if err != nil || !parsed.Valid {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return domain.Credentials{}, fmt.Errorf("%w: token expired", domain.ErrUnauthenticated)
		}
		return domain.Credentials{}, fmt.Errorf("%w: invalid token", domain.ErrUnauthenticated)
	}
	if claims.Subject == "" {
		return domain.Credentials{}, fmt.Errorf("%w: token has no subject", domain.ErrUnauthenticated)
	}
	creds := domain.Credentials{Login: claims.Subject}
	if claims.IssuedAt != nil {
		creds.IssuedAt = claims.IssuedAt.Time
	}
	return creds, nil
}
