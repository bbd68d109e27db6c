package generate

import (
	"crypto/md5"
	"crypto/sha1"
	"crypto/sha256"
	"crypto/sha512"
	"encoding/hex"
	"hash"
	"strings"

	"golang.org/x/crypto/blake2b"
	"golang.org/x/crypto/sha3"

	"github.com/pstuifzand/go-textutils/transform/operr"
)

// Algorithm names a digest
type Algorithm string

const (
	MD5        Algorithm = "MD5"
	SHA1       Algorithm = "SHA-1"
	SHA256     Algorithm = "SHA-256"
	SHA384     Algorithm = "SHA-384"
	SHA512     Algorithm = "SHA-512"
	SHA3_256   Algorithm = "SHA3-256"
	SHA3_512   Algorithm = "SHA3-512"
	BLAKE2b256 Algorithm = "BLAKE2b-256"
)

var hashes = map[Algorithm]func() hash.Hash{
	MD5:      md5.New,
	SHA1:     sha1.New,
	SHA256:   sha256.New,
	SHA384:   sha512.New384,
	SHA512:   sha512.New,
	SHA3_256: sha3.New256,
	SHA3_512: sha3.New512,
	BLAKE2b256: func() hash.Hash {
		h, _ := blake2b.New256(nil)
		return h
	},
}

// Algorithms lists the supported digests in display order
func Algorithms() []Algorithm {
	return []Algorithm{MD5, SHA1, SHA256, SHA384, SHA512, SHA3_256, SHA3_512, BLAKE2b256}
}

// ParseAlgorithm matches names case-insensitively and without dashes, so
// "sha256" and "SHA-256" are the same.
func ParseAlgorithm(s string) (Algorithm, error) {
	norm := func(v string) string {
		return strings.ToLower(strings.NewReplacer("-", "", "_", "", " ", "").Replace(v))
	}
	want := norm(s)
	for _, a := range Algorithms() {
		if norm(string(a)) == want {
			return a, nil
		}
	}
	return "", operr.Config("hash-generator", "Unsupported hash algorithm %q.", s)
}

// Hash returns the lower-case hex digest of the UTF-8 bytes of input. Empty
// input gives empty output.
func Hash(input string, algorithm Algorithm) (string, error) {
	newHash, ok := hashes[algorithm]
	if !ok {
		return "", operr.Config("hash-generator", "Unsupported hash algorithm %q.", algorithm)
	}
	if input == "" {
		return "", nil
	}
	h := newHash()
	h.Write([]byte(input))
	return hex.EncodeToString(h.Sum(nil)), nil
}
