// internal/adapters/shopify/webhook.go
package shopify

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
)

// VerifyWebhookHMAC verifies a webhook delivery against the shared
// secret. The HMAC is computed on the raw request body and the header
// value is base64-encoded.
func VerifyWebhookHMAC(body []byte, hmacHeader, secret string) bool {
	if hmacHeader == "" {
		return false
	}

	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write(body)
	expected := mac.Sum(nil)

	got, err := base64.StdEncoding.DecodeString(hmacHeader)
	if err != nil {
		return false
	}
	return hmac.Equal(expected, got)
}
