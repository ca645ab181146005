package janus

import (
	"crypto/sha256"
	"encoding/hex"
	"strings"

	crerr "github.com/cockroachdb/errors"
)

func isCircuitFailure(err error) bool {
	return crerr.Is(err, errJanusTransient)
}

// hashToken keys the in-flight dedup map without holding raw tokens in memory
// longer than needed.
func hashToken(token string) string {
	sum := sha256.Sum256([]byte(token))
	return hex.EncodeToString(sum[:])
}

func buildURL(baseURL, path string) string {
	baseURL = strings.TrimSuffix(strings.TrimSpace(baseURL), "/")
	path = strings.TrimSpace(path)
	if path == "" {
		return baseURL
	}
	if strings.HasPrefix(path, "http://") || strings.HasPrefix(path, "https://") {
		return path
	}
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}

	return baseURL + path
}
