// Copyright (c) 2026 Crowdsignal Forms authors.
// Licensed under the GPL v2 or later; see LICENSE.

/*
Package auth provides key derivation and hashing utilities.

# Poll API Keys

Each registered poll has a write key derived with HMAC-SHA256 from its
client-generated id:

	apiKey := auth.GenerateAPIKey(clientID, salt)
	err := auth.ValidateAPIKey(clientID, apiKey, salt)

Keys are URL-safe base64 without padding. Because derivation is
deterministic, the key is never stored; updates present it in the
X-Api-Key header and the server re-derives and compares.

# Results Slugs

The hosted results page for a poll lives at a short base62 slug:

	slug := auth.GenerateResultsSlug(clientID, salt)

Deterministic from the client id, so re-registering a poll always maps
to the same results URL.

# Voter Hashing

For the one-response-per-device check, voter IPs are reduced to a
salted 64-bit hash before touching the database:

	hash := auth.HashVoter(ip, salt)

The raw IP is never persisted.
*/
package auth
