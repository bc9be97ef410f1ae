package hashutil

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"strings"

	"lukechampine.com/blake3"
)

type HashAlgo string

const (
	HashAlgoSHA256 HashAlgo = "sha256"
	HashAlgoBLAKE3 HashAlgo = "blake3"
)

// ParseHashAlgo accepts an algorithm name case-insensitively. An empty name
// selects BLAKE3.
func ParseHashAlgo(name string) (HashAlgo, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", string(HashAlgoBLAKE3):
		return HashAlgoBLAKE3, nil
	case string(HashAlgoSHA256):
		return HashAlgoSHA256, nil
	default:
		return "", fmt.Errorf("unsupported hash algorithm: %s", name)
	}
}

// HashBytes returns the hex digest of data.
func HashBytes(data []byte, algo HashAlgo) (string, error) {
	switch algo {
	case HashAlgoSHA256:
		sum := sha256.Sum256(data)
		return hex.EncodeToString(sum[:]), nil
	case HashAlgoBLAKE3:
		sum := blake3.Sum256(data)
		return hex.EncodeToString(sum[:]), nil
	default:
		return "", fmt.Errorf("unsupported hash algorithm: %s", algo)
	}
}

// ShortHash returns the first n hex characters of the digest of data.
func ShortHash(data []byte, algo HashAlgo, n int) (string, error) {
	digest, err := HashBytes(data, algo)
	if err != nil {
		return "", err
	}
	if n <= 0 || n > len(digest) {
		return "", fmt.Errorf("hash prefix length %d out of range", n)
	}
	return digest[:n], nil
}
