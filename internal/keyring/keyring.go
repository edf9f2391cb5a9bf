// Package keyring stores the model API key in the OS keyring.
package keyring

import (
	"errors"
	"fmt"

	gokeyring "github.com/zalando/go-keyring"
)

const (
	service = "bluum"
	account = "llm-api-key"
)

var (
	// ErrNotFound is returned when no key is stored.
	ErrNotFound = errors.New("api key not found in keyring")
	// ErrUnavailable is returned when the OS keyring cannot be used.
	ErrUnavailable = errors.New("OS keyring is not available")
)

// GetAPIKey returns the stored model API key.
func GetAPIKey() (string, error) {
	key, err := gokeyring.Get(service, account)
	if err != nil {
		if errors.Is(err, gokeyring.ErrNotFound) {
			return "", ErrNotFound
		}
		return "", fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	return key, nil
}

// SetAPIKey stores key, replacing any previous value.
func SetAPIKey(key string) error {
	if key == "" {
		return errors.New("api key cannot be empty")
	}
	if err := gokeyring.Set(service, account, key); err != nil {
		return fmt.Errorf("storing api key in keyring: %w", err)
	}
	return nil
}

// DeleteAPIKey removes the stored key.
func DeleteAPIKey() error {
	if err := gokeyring.Delete(service, account); err != nil {
		if errors.Is(err, gokeyring.ErrNotFound) {
			return ErrNotFound
		}
		return fmt.Errorf("deleting api key from keyring: %w", err)
	}
	return nil
}

// Available is a best-effort probe of the OS keyring.
func Available() bool {
	_, err := gokeyring.Get(service, "availability-probe")
	return err == nil || errors.Is(err, gokeyring.ErrNotFound)
}
