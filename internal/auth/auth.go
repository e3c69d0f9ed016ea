// Package auth is the credential and identity service: bcrypt password
// hashing and HS256 token issuance/verification. It performs no I/O.
package auth

import (
	"errors"
	"fmt"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
)

var (
	// ErrTokenMissing means no credential was presented.
	ErrTokenMissing = errors.New("auth: missing token")
	// ErrTokenInvalid means the credential is malformed, tampered with
	// or signed with the wrong key.
	ErrTokenInvalid = errors.New("auth: invalid token")
)

// Identity is the payload carried by a token. Role is recorded and
// propagated but no route currently gates on it.
type Identity struct {
	ID   string
	Role string
}

// Service signs and verifies tokens with a shared HMAC secret and
// hashes passwords with bcrypt.
type Service struct {
	secret []byte
}

func NewService(secret string) *Service {
	return &Service{secret: []byte(secret)}
}

// HashPassword returns a salted one-way hash of the plaintext.
func (s *Service) HashPassword(plain string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(plain), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("hash password: %w", err)
	}
	return string(hash), nil
}

// VerifyPassword reports whether plain matches the stored hash.
func (s *Service) VerifyPassword(plain, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(plain)) == nil
}

// IssueToken signs an HS256 token carrying the identity. Tokens carry
// no expiry: session revocation is out of scope in the deployed
// configuration, so a token stays valid until the secret rotates.
func (s *Service) IssueToken(id Identity) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub":  id.ID,
		"role": id.Role,
	})
	signed, err := token.SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return signed, nil
}

// ResolveIdentity verifies the signature and decodes the identity
// payload of a token produced by IssueToken.
func (s *Service) ResolveIdentity(tokenStr string) (Identity, error) {
	if tokenStr == "" {
		return Identity{}, ErrTokenMissing
	}

	token, err := jwt.Parse(tokenStr, func(token *jwt.Token) (any, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return s.secret, nil
	})
	if err != nil || !token.Valid {
		return Identity{}, ErrTokenInvalid
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return Identity{}, ErrTokenInvalid
	}
	sub, _ := claims["sub"].(string)
	if sub == "" {
		return Identity{}, ErrTokenInvalid
	}
	role, _ := claims["role"].(string)

	return Identity{ID: sub, Role: role}, nil
}
