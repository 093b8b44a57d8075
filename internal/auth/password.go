package auth

import "golang.org/x/crypto/bcrypt"

// hashCost is the bcrypt work factor. Fixed by design; raising it only
// affects newly stored hashes.
const hashCost = 10

// HashPassword produces a salted bcrypt digest of plain. The salt is
// randomized per call, so hashing the same password twice yields different
// outputs. A returned error is an internal crypto failure, not a rejection.
func HashPassword(plain string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(plain), hashCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// CheckPassword reports whether plain matches the stored bcrypt hash.
// Malformed hashes simply report false.
func CheckPassword(plain, hashed string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hashed), []byte(plain)) == nil
}
