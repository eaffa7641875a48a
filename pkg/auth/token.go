package auth

import (
	"crypto/rand"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"
	"fmt"
	"math/big"
	"strconv"
	"strings"
)

const (
	tokenSecretLength = 40
	alphanumeric      = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"
)

// RandomString returns n random alphanumeric characters from crypto/rand.
func RandomString(n int) (string, error) {
	var sb strings.Builder
	sb.Grow(n)
	max := big.NewInt(int64(len(alphanumeric)))
	for i := 0; i < n; i++ {
		idx, err := rand.Int(rand.Reader, max)
		if err != nil {
			return "", err
		}
		sb.WriteByte(alphanumeric[idx.Int64()])
	}
	return sb.String(), nil
}

// NewTokenSecret generates a bearer secret and the hash to persist.
func NewTokenSecret() (secret, hash string, err error) {
	secret, err = RandomString(tokenSecretLength)
	if err != nil {
		return "", "", err
	}
	return secret, HashToken(secret), nil
}

// HashToken is the hex sha256 of a secret. Only hashes are stored.
func HashToken(secret string) string {
	sum := sha256.Sum256([]byte(secret))
	return hex.EncodeToString(sum[:])
}

// TokenMatches compares a presented secret with a stored hash in constant time.
func TokenMatches(secret, storedHash string) bool {
	return subtle.ConstantTimeCompare([]byte(HashToken(secret)), []byte(storedHash)) == 1
}

// FormatBearer joins a token id and its secret as "<id>|<secret>".
func FormatBearer(id int64, secret string) string {
	return fmt.Sprintf("%d|%s", id, secret)
}

// ParseBearer splits "<id>|<secret>".
func ParseBearer(token string) (int64, string, bool) {
	idPart, secret, found := strings.Cut(token, "|")
	if !found || secret == "" {
		return 0, "", false
	}
	id, err := strconv.ParseInt(idPart, 10, 64)
	if err != nil || id <= 0 {
		return 0, "", false
	}
	return id, secret, true
}
