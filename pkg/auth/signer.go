package auth

import (
	"crypto/sha1"
	"encoding/hex"
	"errors"
	"fmt"
	"net/url"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var ErrInvalidSignature = errors.New("invalid signature")

// linkClaims bind a verification link to one user and one email address.
type linkClaims struct {
	Hash string `json:"hash"`
	jwt.RegisteredClaims
}

// LinkSigner produces and checks signed email verification links.
type LinkSigner struct {
	key     []byte
	ttl     time.Duration
	baseURL string
	now     func() time.Time
}

func NewLinkSigner(key string, ttl time.Duration, baseURL string) *LinkSigner {
	return &LinkSigner{key: []byte(key), ttl: ttl, baseURL: baseURL, now: time.Now}
}

// EmailHash is the sha1 hex of an email, the {hash} segment of the link.
func EmailHash(email string) string {
	sum := sha1.Sum([]byte(email))
	return hex.EncodeToString(sum[:])
}

// Sign returns the signature for (userID, hash).
func (s *LinkSigner) Sign(userID int64, hash string) (string, error) {
	now := s.now()
	claims := linkClaims{
		Hash: hash,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   strconv.FormatInt(userID, 10),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.key)
}

// VerificationURL builds {base}/v1/email/verify/{id}/{hash}?signature=...
func (s *LinkSigner) VerificationURL(userID int64, email string) (string, error) {
	hash := EmailHash(email)
	sig, err := s.Sign(userID, hash)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%s/v1/email/verify/%d/%s?signature=%s", s.baseURL, userID, hash, url.QueryEscape(sig)), nil
}

// Verify checks that signature was issued for (userID, hash) and has not expired.
func (s *LinkSigner) Verify(userID int64, hash, signature string) error {
	claims := &linkClaims{}
	token, err := jwt.ParseWithClaims(signature, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return s.key, nil
	}, jwt.WithTimeFunc(s.now))
	if err != nil || !token.Valid {
		return ErrInvalidSignature
	}
	if claims.Subject != strconv.FormatInt(userID, 10) || claims.Hash != hash {
		return ErrInvalidSignature
	}
	return nil
}
