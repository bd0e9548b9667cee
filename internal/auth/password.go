package auth

import "golang.org/x/crypto/bcrypt"

// HashPassword produces the stored form of an account password. The development
// authority runs tests at low cost, so anything under bcrypt.MinCost is raised to it.
func HashPassword(password string, cost int) (string, error) {
	if cost < bcrypt.MinCost {
		cost = bcrypt.MinCost
	}
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), cost)
	if err != nil {
		return "", err
	}
	return string(hashed), nil
}

// ComparePassword returns bcrypt.ErrMismatchedHashAndPassword when plain does not
// match the stored hash.
func ComparePassword(hashed, plain string) error {
	return bcrypt.CompareHashAndPassword([]byte(hashed), []byte(plain))
}
