// Copyright (c) 2026 Crowdsignal Forms authors.
// Licensed under the GPL v2 or later; see LICENSE.

package auth

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"encoding/hex"
	"errors"
	"strings"
)

var ErrInvalidAPIKey = errors.New("invalid api key")

// GenerateAPIKey derives the write key for a poll from its
// client-generated id. Deterministic, so the key never needs to be
// stored: it can be re-derived and compared on every request.
func GenerateAPIKey(clientID, salt string) string {
	h := hmac.New(sha256.New, []byte(salt))
	h.Write([]byte("poll-api-key:"))
	h.Write([]byte(clientID))
	sum := h.Sum(nil)
	return strings.TrimRight(base64.URLEncoding.EncodeToString(sum), "=")
}

// ValidateAPIKey checks a presented key against the derived one in
// constant time.
func ValidateAPIKey(clientID, apiKey, salt string) error {
	expected := GenerateAPIKey(clientID, salt)
	if !hmac.Equal([]byte(apiKey), []byte(expected)) {
		return ErrInvalidAPIKey
	}
	return nil
}

// GenerateResultsSlug derives the short path segment of a poll's hosted
// results page. Base62 keeps the URL free of characters that need
// escaping.
func GenerateResultsSlug(clientID, salt string) string {
	h := hmac.New(sha256.New, []byte(salt))
	h.Write([]byte("results-slug:"))
	h.Write([]byte(clientID))
	sum := h.Sum(nil)
	return base62Encode(sum[:8])
}

// HashVoter produces a one-way salted hash of a voter's IP address.
// Used for the one-response-per-device check; the raw IP is never
// stored. 64 bits is enough for deduplication within one poll.
func HashVoter(ip, salt string) string {
	h := hmac.New(sha256.New, []byte(salt))
	h.Write([]byte("voter:"))
	h.Write([]byte(ip))
	sum := h.Sum(nil)
	return hex.EncodeToString(sum[:8])
}

const base62Chars = "0123456789abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ"

// base62Encode folds up to 8 bytes into an alphanumeric string.
func base62Encode(data []byte) string {
	var num uint64
	for i := 0; i < len(data) && i < 8; i++ {
		num = num<<8 | uint64(data[i])
	}

	if num == 0 {
		return "0"
	}

	result := make([]byte, 0, 11)
	for num > 0 {
		result = append(result, base62Chars[num%62])
		num /= 62
	}
	for i, j := 0, len(result)-1; i < j; i, j = i+1, j-1 {
		result[i], result[j] = result[j], result[i]
	}
	return string(result)
}
