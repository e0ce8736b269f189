// Package cryptox implements the password hasher: a salted, memory-hard
// argon2id digest encoded in the PHC string format
//
//	$argon2id$v=19$m=65536,t=3,p=2$<salt>$<hash>
//
// Parameters travel with the encoded hash, so stored hashes keep verifying
// after DefaultParams change.
package cryptox

import (
	"crypto/subtle"
	"encoding/base64"
	"errors"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/photojournal/internal/common"
	"golang.org/x/crypto/argon2"
)

const algorithm = "argon2id"

// Upper bounds accepted when decoding a stored hash.
const (
	maxMemory      = 1024 * 1024 // KiB
	maxIterations  = 16
	maxParallelism = 16
	maxKeyLength   = 128
	minSaltLength  = 8
)

var ErrInvalidParams = errors.New("invalid argon2 parameters")

// Params are the argon2id cost parameters.
type Params struct {
	Memory      uint32 // KiB
	Iterations  uint32
	Parallelism uint8
	SaltLength  uint32
	KeyLength   uint32
}

// DefaultParams is used by HashPassword.
var DefaultParams = Params{
	Memory:      64 * 1024,
	Iterations:  3,
	Parallelism: 2,
	SaltLength:  16,
	KeyLength:   32,
}

func (p Params) validate() error {
	switch {
	case p.Memory == 0 || p.Memory > maxMemory:
		return ErrInvalidParams
	case p.Iterations == 0 || p.Iterations > maxIterations:
		return ErrInvalidParams
	case p.Parallelism == 0 || p.Parallelism > maxParallelism:
		return ErrInvalidParams
	case p.KeyLength == 0 || p.KeyLength > maxKeyLength:
		return ErrInvalidParams
	}
	return nil
}

func deriveKey(password, salt []byte, p Params) []byte {
	return argon2.IDKey(password, salt, p.Iterations, p.Memory, p.Parallelism, p.KeyLength)
}

// HashPassword hashes password with DefaultParams and a fresh random salt.
func HashPassword(password string) (string, error) {
	return HashPasswordWithParams(password, DefaultParams)
}

// HashPasswordWithParams hashes password with the given cost parameters.
func HashPasswordWithParams(password string, p Params) (string, error) {
	if err := p.validate(); err != nil {
		return "", err
	}
	if p.SaltLength < minSaltLength {
		return "", ErrInvalidParams
	}

	salt := common.GenerateRandByteArray(int(p.SaltLength))
	key := deriveKey([]byte(password), salt, p)

	return fmt.Sprintf("$%s$v=%d$m=%d,t=%d,p=%d$%s$%s",
		algorithm, argon2.Version, p.Memory, p.Iterations, p.Parallelism,
		base64.RawStdEncoding.EncodeToString(salt),
		base64.RawStdEncoding.EncodeToString(key),
	), nil
}

// VerifyPassword reports whether password matches encoded. Malformed or
// foreign encodings report false.
func VerifyPassword(encoded, password string) bool {
	p, salt, key, err := decodeHash(encoded)
	if err != nil {
		return false
	}

	candidate := deriveKey([]byte(password), salt, p)
	defer common.WipeByteArray(candidate)

	return subtle.ConstantTimeCompare(key, candidate) == 1
}

func decodeHash(encoded string) (Params, []byte, []byte, error) {
	var p Params

	parts := strings.Split(encoded, "$")
	if len(parts) != 6 || parts[0] != "" || parts[1] != algorithm {
		return p, nil, nil, ErrInvalidParams
	}

	var version int
	if _, err := fmt.Sscanf(parts[2], "v=%d", &version); err != nil || version != argon2.Version {
		return p, nil, nil, ErrInvalidParams
	}

	if _, err := fmt.Sscanf(parts[3], "m=%d,t=%d,p=%d", &p.Memory, &p.Iterations, &p.Parallelism); err != nil {
		return p, nil, nil, ErrInvalidParams
	}

	salt, err := base64.RawStdEncoding.DecodeString(parts[4])
	if err != nil || len(salt) < minSaltLength {
		return p, nil, nil, ErrInvalidParams
	}

	key, err := base64.RawStdEncoding.DecodeString(parts[5])
	if err != nil {
		return p, nil, nil, ErrInvalidParams
	}

	p.SaltLength = uint32(len(salt))
	p.KeyLength = uint32(len(key))
	if err := p.validate(); err != nil {
		return p, nil, nil, err
	}

	return p, salt, key, nil
}
