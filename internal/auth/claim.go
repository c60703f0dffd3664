package auth

import (
	"encoding/base64"
	"encoding/json"
	"fmt"
)

// raw (unpadded) url-safe base64: its alphabet contains no '.', so
// splitting a token on the delimiter is unambiguous
var claimEncoding = base64.RawURLEncoding

// SessionClaim is the unsigned payload of a session token. Its fields
// mean nothing until the signature over the encoded form is verified.
type SessionClaim struct {
	Subject   string `json:"sub"`
	IssuedAt  int64  `json:"iat"`
	ExpiresAt int64  `json:"exp"`
	Nonce     string `json:"nonce"`
}

func (c SessionClaim) Encode() (string, error) {
	claimJson, err := json.Marshal(c)
	if err != nil {
		return "", fmt.Errorf("marshal claim: %w", err)
	}
	return claimEncoding.EncodeToString(claimJson), nil
}

func DecodeSessionClaim(encodedClaim string) (SessionClaim, error) {
	claimJson, err := claimEncoding.DecodeString(encodedClaim)
	if err != nil {
		return SessionClaim{}, fmt.Errorf("decode claim: %w", err)
	}

	var claim SessionClaim
	if err := json.Unmarshal(claimJson, &claim); err != nil {
		return SessionClaim{}, fmt.Errorf("unmarshal claim: %w", err)
	}

	return claim, nil
}
