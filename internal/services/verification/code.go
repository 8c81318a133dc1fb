// Copyright 2025 The Gastronomie-Verzeichnis Authors
// Licensed under the EUPL-1.2

package verification

import (
	"crypto/rand"
	"fmt"
	"strings"
)

const (
	// CodeLength is the number of characters in a generated code (without dashes).
	CodeLength = 8
	// groupSize is the number of characters between dashes.
	groupSize = 4
)

// alphabet for verification codes (uppercase + digits, excluding confusing chars: 0, O, I, 1).
const alphabet = "23456789ABCDEFGHJKLMNPQRSTUVWXYZ"

// GenerateCode returns a random code such as "K7QF-3MZA".
func GenerateCode() (string, error) {
	bytes := make([]byte, CodeLength)
	if _, err := rand.Read(bytes); err != nil {
		return "", fmt.Errorf("failed to generate code: %w", err)
	}

	for i := range bytes {
		bytes[i] = alphabet[int(bytes[i])%len(alphabet)]
	}

	return formatCode(string(bytes)), nil
}

// formatCode groups a code with dashes for readability.
func formatCode(code string) string {
	var parts []string
	for i := 0; i < len(code); i += groupSize {
		end := min(i+groupSize, len(code))
		parts = append(parts, code[i:end])
	}
	return strings.Join(parts, "-")
}
