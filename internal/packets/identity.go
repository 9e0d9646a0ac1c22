package packets

import (
	"crypto/sha256"
	"encoding/binary"

	"github.com/google/uuid"
	"golang.org/x/crypto/chacha20"
)

// offlineUUID derives a deterministic, offline-mode UUID from username:
// a 64-bit FNV-1a hash of the username, stretched to a 256-bit key, keys
// a ChaCha20 stream (x/crypto's chacha20, zero nonce), whose first 16
// keystream bytes become the UUID. This is not ChaCha8, so the UUIDs
// differ from those of the Rust prototype's ChaCha8Rng::seed_from_u64.
// Online-mode identity is not implemented (spec.md §1 non-goal).
func offlineUUID(username string) (uuid.UUID, error) {
	seed := fnv1a64(username)

	var key [32]byte
	binary.LittleEndian.PutUint64(key[:8], seed)
	// chacha20 requires a full 256-bit key; the remaining bytes come
	// from a SHA-256 stretch of the seed so the stream is still a pure,
	// deterministic function of the username alone.
	stretched := sha256.Sum256(key[:8])
	copy(key[8:], stretched[:24])

	var nonce [chacha20.NonceSize]byte
	cipher, err := chacha20.NewUnauthenticatedCipher(key[:], nonce[:])
	if err != nil {
		return uuid.UUID{}, err
	}

	var keystream [16]byte
	cipher.XORKeyStream(keystream[:], keystream[:])

	return uuid.FromBytes(keystream[:])
}

// fnv1a64 is a 64-bit FNV-1a hash, standing in for the prototype's
// DefaultHasher — any stable, deterministic hash of the username
// satisfies Testable Property 9 (same username, same UUID, across
// runs).
func fnv1a64(s string) uint64 {
	const offset = 14695981039346656037
	const prime = 1099511628211
	h := uint64(offset)
	for i := 0; i < len(s); i++ {
		h ^= uint64(s[i])
		h *= prime
	}
	return h
}
