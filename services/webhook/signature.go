package webhook

import (
	"crypto/hmac"
	"crypto/sha512"
	"encoding/hex"
	"strings"
)

// Signature headers sent by each provider.
const (
	PaystackSignatureHeader = "x-paystack-signature"
	MonnifySignatureHeader  = "monnify-signature"
)

// Sign returns the hex HMAC-SHA512 of body under secret.
func Sign(secret string, body []byte) string {
	mac := hmac.New(sha512.New, []byte(secret))
	mac.Write(body)
	return hex.EncodeToString(mac.Sum(nil))
}

// VerifySignature checks header against the HMAC of the raw request body in
// constant time.
func VerifySignature(secret string, body []byte, header string) error {
	if secret == "" || header == "" {
		return ErrSignature
	}
	got, err := hex.DecodeString(strings.TrimSpace(header))
	if err != nil {
		return ErrSignature
	}
	want, _ := hex.DecodeString(Sign(secret, body))
	if !hmac.Equal(got, want) {
		return ErrSignature
	}
	return nil
}
