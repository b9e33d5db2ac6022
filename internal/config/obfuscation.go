package config

import (
	"encoding/base64"

	apperrors "github.com/swerner/grepo2/internal/errors"
)

// EncodeSecret reversibly encodes a secret for storage in a config file.
// This is obfuscation against casual inspection, not encryption; anyone
// with read access to the file can recover the value.
func EncodeSecret(plain string) string {
	return base64.StdEncoding.EncodeToString([]byte(plain))
}

// DecodeSecret reverses EncodeSecret.
func DecodeSecret(encoded string) (string, error) {
	plain, err := base64.StdEncoding.DecodeString(encoded)
	if err != nil {
		return "", apperrors.ErrDecodeSecret.WithError(err)
	}
	return string(plain), nil
}
