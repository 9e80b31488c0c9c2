package service

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/google/uuid"

	"smartschool_backend/internals/configs"
)

var (
	ErrSignatureInvalid = errors.New("signature is invalid")
	ErrSignatureExpired = errors.New("signature has expired")
)

// DefaultSignedURLTTL is how long a generated download link stays valid.
const DefaultSignedURLTTL = 15 * time.Minute

func signPayload(fileID uuid.UUID, expiresAt int64) string {
	mac := hmac.New(sha256.New, []byte(configs.FileSigningSecret))
	fmt.Fprintf(mac, "%s:%d", fileID, expiresAt)
	return hex.EncodeToString(mac.Sum(nil))
}

// SignDownloadURL builds a relative download URL whose signature covers the
// file id and the expiry timestamp. Anyone holding the URL can download
// until it expires, no session required.
func SignDownloadURL(fileID uuid.UUID, ttl time.Duration) (string, time.Time) {
	expiresAt := time.Now().Add(ttl)
	sig := signPayload(fileID, expiresAt.Unix())
	url := fmt.Sprintf("/api/files/%s/download?expires=%d&sig=%s", fileID, expiresAt.Unix(), sig)
	return url, expiresAt
}

// VerifyDownloadSignature checks the signature and the expiry carried in
// query parameters.
func VerifyDownloadSignature(fileID uuid.UUID, expiresRaw, sig string) error {
	expiresAt, err := strconv.ParseInt(expiresRaw, 10, 64)
	if err != nil {
		return ErrSignatureInvalid
	}
	expected := signPayload(fileID, expiresAt)
	if !hmac.Equal([]byte(expected), []byte(sig)) {
		return ErrSignatureInvalid
	}
	if time.Now().Unix() > expiresAt {
		return ErrSignatureExpired
	}
	return nil
}
