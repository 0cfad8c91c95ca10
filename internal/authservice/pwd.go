package authservice

import (
	"errors"

	"golang.org/x/crypto/bcrypt"
)

const bcryptCost = 12

// HashPassword returns the bcrypt hash of plain.
func HashPassword(plain string) ([]byte, error) {
	return bcrypt.GenerateFromPassword([]byte(plain), bcryptCost)
}

// ValidateHash reports whether plain matches hash. A malformed hash is a mismatch.
func ValidateHash(plain string, hash []byte) bool {
	ok, err := compareHash(plain, hash)
	return ok && err == nil
}

func compareHash(plain string, hash []byte) (bool, error) {
	err := bcrypt.CompareHashAndPassword(hash, []byte(plain))
	if err != nil {
		switch {
		case errors.Is(err, bcrypt.ErrMismatchedHashAndPassword):
			return false, nil
		default:
			return false, err
		}
	}

	return true, nil
}

func (p *Password) set(pwd string) error {
	hash, err := HashPassword(pwd)
	if err != nil {
		return err
	}

	p.Plain = pwd
	p.hash = hash

	return nil
}

func (p *Password) compare(pwd string) (bool, error) {
	return compareHash(pwd, p.hash)
}
