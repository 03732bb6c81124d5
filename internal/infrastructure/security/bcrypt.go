package security

import (
	"golang.org/x/crypto/bcrypt"

	"github.com/ashkelon/forum/internal/core/domain"
)

// BcryptHasher hashes passwords with bcrypt; each call draws a fresh salt.
type BcryptHasher struct {
	cost int
}

func NewBcryptHasher(cost int) *BcryptHasher {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = bcrypt.DefaultCost
	}
	return &BcryptHasher{cost: cost}
}

func (h *BcryptHasher) Hash(secret string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(secret), h.cost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

func (h *BcryptHasher) Compare(hash, secret string) error {
	if bcrypt.CompareHashAndPassword([]byte(hash), []byte(secret)) != nil {
		return domain.ErrInvalidCredentials
	}
	return nil
}
