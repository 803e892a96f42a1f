// Package signature verifies LINE webhook signatures.
//
// LINE signs every webhook request by computing HMAC-SHA256 over the raw
// request body with the channel secret as key and sending the base64 digest
// in the x-line-signature header. Verification must happen on the untouched
// body bytes, before any JSON decoding.
package signature

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
)

// Header is the HTTP header carrying the webhook signature.
const Header = "x-line-signature"

// Verify reports whether header carries a valid signature for body under
// secret. It returns false on an empty body, empty header, undecodable
// header, or digest mismatch; it never panics on malformed input.
// The comparison is constant-time.
func Verify(body []byte, header, secret string) bool {
	if len(body) == 0 || header == "" || secret == "" {
		return false
	}

	decoded, err := base64.StdEncoding.DecodeString(header)
	if err != nil {
		return false
	}

	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write(body)

	// hmac.Equal is constant-time
	return hmac.Equal(decoded, mac.Sum(nil))
}

// Sign computes the base64 HMAC-SHA256 signature for body under secret,
// in the exact form LINE sends in the x-line-signature header.
// Used by tests and local tooling to forge valid requests.
func Sign(body []byte, secret string) string {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write(body)
	return base64.StdEncoding.EncodeToString(mac.Sum(nil))
}
