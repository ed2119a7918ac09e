package iyzico

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"encoding/hex"
	"strings"
)

const authScheme = "IYZWSv2"

// authorizationHeader builds the IYZWSv2 Authorization value.
//
// The signature is HMAC-SHA256(secret, randomKey + uriPath + body), hex encoded,
// and the header is: IYZWSv2 base64("apiKey:<key>&randomKey:<rnd>&signature:<sig>").
func authorizationHeader(apiKey, secretKey, randomKey, uriPath string, body []byte) string {
	signature := calculateHMAC(randomKey+uriPath+string(body), secretKey)

	params := strings.Join([]string{
		"apiKey:" + apiKey,
		"randomKey:" + randomKey,
		"signature:" + signature,
	}, "&")

	return authScheme + " " + base64.StdEncoding.EncodeToString([]byte(params))
}

// calculateHMAC computes HMAC-SHA256 of the payload.
func calculateHMAC(payload, secret string) string {
	h := hmac.New(sha256.New, []byte(secret))
	h.Write([]byte(payload))
	return hex.EncodeToString(h.Sum(nil))
}

// ValidateAuthorization checks an IYZWSv2 header against the expected signature.
// Used by the sandbox gateway in tests and by operators replaying requests.
func ValidateAuthorization(header, apiKey, secretKey, uriPath string, body []byte) bool {
	encoded, ok := strings.CutPrefix(header, authScheme+" ")
	if !ok {
		return false
	}
	raw, err := base64.StdEncoding.DecodeString(encoded)
	if err != nil {
		return false
	}

	var gotKey, randomKey, signature string
	for _, part := range strings.Split(string(raw), "&") {
		name, value, found := strings.Cut(part, ":")
		if !found {
			continue
		}
		switch name {
		case "apiKey":
			gotKey = value
		case "randomKey":
			randomKey = value
		case "signature":
			signature = value
		}
	}
	if gotKey != apiKey || randomKey == "" || signature == "" {
		return false
	}

	expected := calculateHMAC(randomKey+uriPath+string(body), secretKey)
	return hmac.Equal([]byte(signature), []byte(expected))
}
