package ports

import "github.com/ashkelon/forum/internal/core/domain"

// TokenCodec turns an Authorization header value into credentials.
// Decode must fail with an error wrapping domain.ErrUnauthenticated for
// malformed, unsigned or expired tokens.
type TokenCodec interface {
	Decode(token string) (domain.Credentials, error)
}

// TokenIssuer mints bearer tokens for an authenticated login.
type TokenIssuer interface {
	Issue(login string) (string, error)
}

// PasswordHasher performs one-way salted hashing.
type PasswordHasher interface {
	Hash(secret string) (string, error)
	// Compare returns domain.ErrInvalidCredentials on mismatch.
	Compare(hash, secret string) error
}
