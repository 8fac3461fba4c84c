package discord

import (
	"crypto/ed25519"
	"encoding/hex"
)

// Request headers carrying the detached signature.
const (
	SignatureHeader = "X-Signature-Ed25519"
	TimestampHeader = "X-Signature-Timestamp"
)

// VerifyInteraction reports whether signatureHex is a valid Ed25519
// signature over timestamp||body under publicKeyHex. The signed message is
// the timestamp string immediately followed by the raw request bytes, no
// separator — body must be captured before any JSON parsing.
//
// Every failure mode (missing header, missing key, bad hex, wrong length,
// signature mismatch) returns false; nothing escapes to the caller.
func VerifyInteraction(publicKeyHex, signatureHex, timestamp string, body []byte) bool {
	if publicKeyHex == "" || signatureHex == "" || timestamp == "" {
		return false
	}

	key, err := hex.DecodeString(publicKeyHex)
	if err != nil || len(key) != ed25519.PublicKeySize {
		return false
	}

	sig, err := hex.DecodeString(signatureHex)
	if err != nil || len(sig) != ed25519.SignatureSize {
		return false
	}

	msg := make([]byte, 0, len(timestamp)+len(body))
	msg = append(msg, timestamp...)
	msg = append(msg, body...)

	return ed25519.Verify(ed25519.PublicKey(key), msg, sig)
}
