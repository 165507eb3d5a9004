// utils/utils.go

package utils

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/binary"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"math"
	"time"
)

func GenerateSha256Hash[T any](data T) string {
	// Convert data to a string assuming it implements fmt.Stringer or similar
	// For structs, you might want to serialize them to JSON or another stable format
	dataString := fmt.Sprintf("%v", data)

	// Compute SHA-256 hash of the data string
	hash := sha256.Sum256([]byte(dataString))

	// Return the hexadecimal string representation of the hash
	return hex.EncodeToString(hash[:])
}

func GenerateUniqueHash() string {
	// Combine the current time and random data for the hash input
	currentTime := time.Now().UnixNano()
	randomBytes := make([]byte, 16) // 128 bits of random data
	_, err := rand.Read(randomBytes)
	if err != nil {
		// Handle random generator failure
		// In a real application, consider how to handle this error properly.
		panic("random number generator failed")
	}

	// Convert both pieces of data to byte slices and concatenate
	hashInput := append([]byte(fmt.Sprintf("%d", currentTime)), randomBytes...)

	// Compute SHA-256 hash
	hash := sha256.Sum256(hashInput)

	// Return the hexadecimal string representation of the hash
	return hex.EncodeToString(hash[:])
}

// Fingerprint returns a stable SHA-256 hex digest over a sample buffer and any
// trailing parameter values. The digest hashes the raw float64 bit patterns,
// so the same audio decoded with the same parameters always yields the same
// key, making it suitable for result-cache lookups.
func Fingerprint(samples []float64, extra ...float64) string {
	h := sha256.New()
	var buf [8]byte
	for _, s := range samples {
		binary.LittleEndian.PutUint64(buf[:], math.Float64bits(s))
		h.Write(buf[:])
	}
	for _, e := range extra {
		binary.LittleEndian.PutUint64(buf[:], math.Float64bits(e))
		h.Write(buf[:])
	}
	return hex.EncodeToString(h.Sum(nil))
}

// DecodeJSON is a convenience function that decodes JSON from an io.Reader into a destination object.
func DecodeJSON(r io.Reader, dest interface{}) error {
	decoder := json.NewDecoder(r)
	return decoder.Decode(dest)
}
