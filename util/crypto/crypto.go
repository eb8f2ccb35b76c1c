// Package crypto hashes account passwords for storage and verifies login
// attempts against the stored hash.
package crypto

import "golang.org/x/crypto/bcrypt"

// hashCost trades login latency for brute-force resistance. Cost 10 keeps
// a single verification well inside the request budget on small hosts.
const hashCost = 10

func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), hashCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// CheckPassword reports whether password matches the stored bcrypt hash.
func CheckPassword(hash, password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}
