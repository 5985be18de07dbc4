package password

import (
	"crypto/rand"
	"crypto/subtle"
	"encoding/base64"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"golang.org/x/crypto/argon2"
)

const (
	minMemoryKB    uint32 = 8 * 1024
	minTimeCost    uint32 = 1
	minParallelism uint8  = 1
	minSaltLength  uint32 = 16
	minKeyLength   uint32 = 16
	minPassBytes          = 8
	algorithmID           = "argon2id"
)

// Params tunes the argon2id cost. Zero values are rejected; use
// [DefaultParams] as a starting point.
type Params struct {
	Memory      uint32
	Time        uint32
	Parallelism uint8
	SaltLength  uint32
	KeyLength   uint32
}

// DefaultParams returns moderate interactive-login costs: 64 MiB, 1 pass,
// 4 lanes, 16-byte salt, 32-byte key.
func DefaultParams() Params {
	return Params{
		Memory:      64 * 1024,
		Time:        1,
		Parallelism: 4,
		SaltLength:  16,
		KeyLength:   32,
	}
}

// Argon2 hashes and verifies passwords with a fixed parameter set. Safe for
// concurrent use.
type Argon2 struct {
	params Params
}

// NewArgon2 validates the parameters and returns a ready hasher.
func NewArgon2(p Params) (*Argon2, error) {
	if err := validateParams(p); err != nil {
		return nil, err
	}
	return &Argon2{params: p}, nil
}

type parsedPHC struct {
	memory      uint32
	time        uint32
	parallelism uint8
	salt        []byte
	hash        []byte
	keyLength   uint32
}

// Hash derives an argon2id hash of password with a fresh random salt and
// returns it PHC-encoded. Password bytes are used exactly as provided, with
// no Unicode normalization.
func (a *Argon2) Hash(password string) (string, error) {
	if len(password) < minPassBytes {
		return "", fmt.Errorf("password must be at least %d bytes", minPassBytes)
	}

	salt := make([]byte, a.params.SaltLength)
	if _, err := io.ReadFull(rand.Reader, salt); err != nil {
		return "", err
	}

	hash := argon2.IDKey(
		[]byte(password),
		salt,
		a.params.Time,
		a.params.Memory,
		a.params.Parallelism,
		a.params.KeyLength,
	)

	return fmt.Sprintf(
		"$%s$v=%d$m=%d,t=%d,p=%d$%s$%s",
		algorithmID,
		argon2.Version,
		a.params.Memory,
		a.params.Time,
		a.params.Parallelism,
		base64.StdEncoding.EncodeToString(salt),
		base64.StdEncoding.EncodeToString(hash),
	), nil
}

// Verify recomputes the hash with the parameters embedded in encodedHash and
// compares in constant time. A malformed hash string is an error; a wrong
// password is (false, nil).
func (a *Argon2) Verify(password, encodedHash string) (bool, error) {
	parsed, err := parsePHC(encodedHash)
	if err != nil {
		return false, err
	}

	computed := argon2.IDKey(
		[]byte(password),
		parsed.salt,
		parsed.time,
		parsed.memory,
		parsed.parallelism,
		parsed.keyLength,
	)

	return subtle.ConstantTimeCompare(computed, parsed.hash) == 1, nil
}

// NeedsUpgrade reports whether encodedHash was produced with weaker
// parameters than the hasher's active set.
func (a *Argon2) NeedsUpgrade(encodedHash string) (bool, error) {
	parsed, err := parsePHC(encodedHash)
	if err != nil {
		return false, err
	}

	if a.params.Memory > parsed.memory {
		return true, nil
	}
	if a.params.Time > parsed.time {
		return true, nil
	}
	if a.params.Parallelism > parsed.parallelism {
		return true, nil
	}
	if a.params.KeyLength != parsed.keyLength {
		return true, nil
	}
	return false, nil
}

func parsePHC(encodedHash string) (*parsedPHC, error) {
	parts := strings.Split(encodedHash, "$")
	if len(parts) != 6 || parts[0] != "" {
		return nil, errors.New("invalid PHC format")
	}
	if parts[1] != algorithmID {
		return nil, errors.New("unsupported algorithm")
	}

	if !strings.HasPrefix(parts[2], "v=") {
		return nil, errors.New("missing argon2 version")
	}
	version, err := strconv.Atoi(strings.TrimPrefix(parts[2], "v="))
	if err != nil {
		return nil, errors.New("invalid argon2 version")
	}
	if version != argon2.Version {
		return nil, errors.New("unsupported argon2 version")
	}

	memory, timeCost, parallelism, err := parseCostParams(parts[3])
	if err != nil {
		return nil, err
	}

	salt, err := base64.StdEncoding.DecodeString(parts[4])
	if err != nil {
		return nil, errors.New("invalid salt encoding")
	}
	if len(salt) < int(minSaltLength) {
		return nil, errors.New("invalid salt length")
	}

	hash, err := base64.StdEncoding.DecodeString(parts[5])
	if err != nil {
		return nil, errors.New("invalid hash encoding")
	}
	if len(hash) == 0 {
		return nil, errors.New("invalid hash length")
	}

	return &parsedPHC{
		memory:      memory,
		time:        timeCost,
		parallelism: parallelism,
		salt:        salt,
		hash:        hash,
		keyLength:   uint32(len(hash)),
	}, nil
}

func parseCostParams(part string) (memory, timeCost uint32, parallelism uint8, err error) {
	pairs := strings.Split(part, ",")
	if len(pairs) != 3 {
		return 0, 0, 0, errors.New("invalid parameter format")
	}

	var haveM, haveT, haveP bool
	for _, pair := range pairs {
		kv := strings.SplitN(pair, "=", 2)
		if len(kv) != 2 {
			return 0, 0, 0, errors.New("invalid parameter entry")
		}

		switch kv[0] {
		case "m":
			v, perr := strconv.ParseUint(kv[1], 10, 32)
			if perr != nil || v < uint64(minMemoryKB) {
				return 0, 0, 0, errors.New("invalid memory parameter")
			}
			memory = uint32(v)
			haveM = true
		case "t":
			v, perr := strconv.ParseUint(kv[1], 10, 32)
			if perr != nil || v < uint64(minTimeCost) {
				return 0, 0, 0, errors.New("invalid time parameter")
			}
			timeCost = uint32(v)
			haveT = true
		case "p":
			v, perr := strconv.ParseUint(kv[1], 10, 8)
			if perr != nil || v < uint64(minParallelism) {
				return 0, 0, 0, errors.New("invalid parallelism parameter")
			}
			parallelism = uint8(v)
			haveP = true
		default:
			return 0, 0, 0, errors.New("unsupported parameter")
		}
	}

	if !haveM || !haveT || !haveP {
		return 0, 0, 0, errors.New("missing parameters")
	}
	return memory, timeCost, parallelism, nil
}

func validateParams(p Params) error {
	if p.Memory < minMemoryKB {
		return errors.New("password memory must be >= 8192 KB")
	}
	if p.Time < minTimeCost {
		return errors.New("password time must be >= 1")
	}
	if p.Parallelism < minParallelism {
		return errors.New("password parallelism must be >= 1")
	}
	if p.SaltLength < minSaltLength {
		return errors.New("password salt length must be >= 16")
	}
	if p.KeyLength < minKeyLength {
		return errors.New("password key length must be >= 16")
	}
	return nil
}
