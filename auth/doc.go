// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package auth provides key generation and fingerprint hashing utilities.

# Owner Keys

Owner keys use HMAC-SHA256 to create deterministic, verifiable keys:

	ownerKey := auth.GenerateOwnerKey(projectID, salt)
	err := auth.ValidateOwnerKey(projectID, ownerKey, salt)

The key is URL-safe base64 encoded without padding. Since it's deterministic,
the same project ID and salt always produce the same key. This allows
validation without storing the key in the database.

# Share Codes

Share codes create the public handle for a project's review URL:

	code, err := auth.GenerateShareCode()

Codes are random 8-byte values, base62 encoded (alphanumeric only) for easy
sharing, and deliberately decoupled from the internal project ID.

# ID Generation

Random hex IDs for database records:

	id, err := auth.GenerateID(16)  // 32 hex characters

# Fingerprint Hashing

Reviewers never authenticate. A weak fingerprint is derived from
client-observable signals for duplicate-submission deterrence:

	fp := auth.HashFingerprint(userAgent, locale, salt)

Same device and browser → same fingerprint. A different browser, or a
spoofed User-Agent, yields a different fingerprint; this is an accepted
limitation, not a security boundary.

# IP Hashing

For privacy-preserving abuse analysis:

	hash := auth.HashIP(ipAddress, salt)

Returns first 8 bytes (16 hex chars) of HMAC-SHA256.
*/
package auth
