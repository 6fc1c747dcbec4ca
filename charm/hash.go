package charm

import "crypto/sha256"

// Hash digests a reference string into a 32-byte identity value. Creation
// rules bind a new entity's identity to the hash of the unique reference its
// transaction consumes.
func Hash(s string) B32 {
	return B32(sha256.Sum256([]byte(s)))
}

// HashBytes digests arbitrary bytes, used to verify hash-lock preimages.
func HashBytes(b []byte) B32 {
	return B32(sha256.Sum256(b))
}
