package shopify_test

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/ldplus/collsync/internal/adapters/shopify"
)

func sign(body []byte, secret string) string {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write(body)
	return base64.StdEncoding.EncodeToString(mac.Sum(nil))
}

func TestVerifyWebhookHMAC(t *testing.T) {
	secret := "shpss_webhook_secret"
	body := []byte(`{"id":42,"title":"Daily Drop"}`)

	tests := []struct {
		name       string
		body       []byte
		hmacHeader string
		secret     string
		expected   bool
	}{
		{
			name:       "valid_signature",
			body:       body,
			hmacHeader: sign(body, secret),
			secret:     secret,
			expected:   true,
		},
		{
			name:       "wrong_secret",
			body:       body,
			hmacHeader: sign(body, "other_secret"),
			secret:     secret,
			expected:   false,
		},
		{
			name:       "tampered_body",
			body:       []byte(`{"id":43,"title":"Daily Drop"}`),
			hmacHeader: sign(body, secret),
			secret:     secret,
			expected:   false,
		},
		{
			name:       "missing_header",
			body:       body,
			hmacHeader: "",
			secret:     secret,
			expected:   false,
		},
		{
			name:       "header_is_not_base64",
			body:       body,
			hmacHeader: "%%%not-base64%%%",
			secret:     secret,
			expected:   false,
		},
		{
			name:       "empty_body_still_verifies",
			body:       []byte{},
			hmacHeader: sign([]byte{}, secret),
			secret:     secret,
			expected:   true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, shopify.VerifyWebhookHMAC(tt.body, tt.hmacHeader, tt.secret))
		})
	}
}
