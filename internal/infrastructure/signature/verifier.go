package signature

import (
	"crypto/hmac"
	"crypto/sha512"
	"encoding/hex"
)

// Verifier validates webhook authenticity with HMAC-SHA512 over the exact
// raw request bytes. Re-serializing parsed JSON before verification breaks
// the signature and must never happen upstream of this call.
type Verifier struct {
	secret []byte
}

func NewVerifier(secret string) *Verifier {
	return &Verifier{secret: []byte(secret)}
}

// Verify compares the hex HMAC of body against provided in constant time.
// A missing signature fails immediately without any comparison.
func (v *Verifier) Verify(body []byte, provided string) bool {
	if provided == "" {
		return false
	}
	mac := hmac.New(sha512.New, v.secret)
	mac.Write(body)
	expected := hex.EncodeToString(mac.Sum(nil))
	return hmac.Equal([]byte(expected), []byte(provided))
}
