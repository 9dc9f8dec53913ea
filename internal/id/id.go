// Package id generates prefixed NanoID identifiers.
package id

import (
	"fmt"

	gonanoid "github.com/matoous/go-nanoid/v2"
)

// RequestPrefix tags recommendation round-trips in logs and API responses.
const RequestPrefix = "req"

// requestAlphabet avoids '-' and '_' so request ids survive copy-paste and grep.
const (
	requestAlphabet = "0123456789abcdefghijklmnopqrstuvwxyz"
	requestLength   = 12
)

// Generate creates a prefixed unique ID using NanoID.
// Format: prefix-nanoid (e.g., "imp-V1StGXR8_Z5jdHi6B-myT").
//
// Returns an error if the system has insufficient entropy for secure random generation.
func Generate(prefix string) (string, error) {
	id, err := gonanoid.New()
	if err != nil {
		return "", fmt.Errorf("generate nanoid: %w", err)
	}
	return prefix + "-" + id, nil
}

// NewRequestID returns a short "req-" id for one recommendation query.
func NewRequestID() string {
	id, err := gonanoid.Generate(requestAlphabet, requestLength)
	if err != nil {
		panic(fmt.Sprintf("failed to generate request ID: %v", err))
	}
	return RequestPrefix + "-" + id
}

// MustGenerate is like Generate but panics if ID generation fails.
func MustGenerate(prefix string) string {
	id, err := Generate(prefix)
	if err != nil {
		panic(fmt.Sprintf("failed to generate ID: %v", err))
	}
	return id
}
