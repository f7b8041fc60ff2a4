package service

import (
	"github.com/allisson/go-pwdhash"

	apperrors "github.com/allisson/employees/internal/errors"
)

// passwordService implements PasswordService using Argon2id.
type passwordService struct {
	hasher *pwdhash.PasswordHasher
}

// NewPasswordService creates a new PasswordService using Argon2id hashing.
// The policy name selects the work factor: "interactive" or "moderate".
// Unknown names fall back to the interactive policy, which is tuned for
// login-path latency.
func NewPasswordService(policy string) PasswordService {
	hasher, err := newHasher(policy)
	if err != nil {
		// This should never happen with valid policy
		panic(err)
	}

	return &passwordService{
		hasher: hasher,
	}
}

// HashPassword hashes a plain text password using Argon2id.
func (p *passwordService) HashPassword(plainPassword string) (string, error) {
	hashedPassword, err := p.hasher.Hash([]byte(plainPassword))
	if err != nil {
		return "", apperrors.Wrap(err, "failed to hash password")
	}
	return hashedPassword, nil
}

// ComparePassword performs a constant-time comparison between a plain password and its hash.
func (p *passwordService) ComparePassword(plainPassword string, hashedPassword string) bool {
	ok, err := p.hasher.Verify([]byte(plainPassword), hashedPassword)
	if err != nil {
		return false
	}
	return ok
}

func newHasher(policy string) (*pwdhash.PasswordHasher, error) {
	if policy == "moderate" {
		return pwdhash.New(pwdhash.WithPolicy(pwdhash.PolicyModerate))
	}
	return pwdhash.New(pwdhash.WithPolicy(pwdhash.PolicyInteractive))
}
