package services

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"

	"github.com/google/uuid"
)

// SummaryExtension is appended to every stored summary key.
const SummaryExtension = ".txt"

// SummaryObjectName derives the storage key for a summary. A requested name
// gets an 8-hex-character random suffix so concurrent callers sharing a name
// never collide; without a name the key is a random UUID.
func SummaryObjectName(requested string) (string, error) {
	if requested == "" {
		return uuid.NewString() + SummaryExtension, nil
	}
	suffix, err := randomHex(4)
	if err != nil {
		return "", fmt.Errorf("failed to generate name suffix: %w", err)
	}
	return fmt.Sprintf("%s-%s%s", requested, suffix, SummaryExtension), nil
}

func randomHex(n int) (string, error) {
	buf := make([]byte, n)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return hex.EncodeToString(buf), nil
}
